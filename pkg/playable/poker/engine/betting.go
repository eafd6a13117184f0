package engine

import (
	"fmt"

	"pokerengine/pkg/deck"
	"pokerengine/pkg/playable"
	"pokerengine/pkg/playable/poker/action"
	"pokerengine/pkg/playable/poker/handanalyzer"
	"pokerengine/pkg/playable/poker/potmanager"
	"pokerengine/pkg/rules"
	"pokerengine/pkg/table"
)

// betSize returns the bet of a round
// Limit uses the small or big bet. No Limit and Pot Limit use the big blind as the minimum bet
func (g *Game) betSize(t rules.BetType) int {
	s := g.options.Stakes
	if g.options.Structure == potmanager.Limit {
		if t == rules.BetBig {
			return s.BigBet
		}

		return s.SmallBet
	}

	if s.BigBlind > 0 {
		return s.BigBlind
	}

	return s.SmallBet
}

func (g *Game) postForcedBets(c rules.BetConfig) error {
	switch c.Type {
	case rules.BetAntes:
		g.pm.PostAntes()
		if total := g.pm.GetAnteTotal(); total > 0 {
			g.log(playable.SimpleLogMessage("", "Antes of ${%d} were posted", total))
		}
	case rules.BetBlinds:
		return g.postBlinds()
	}

	return nil
}

func (g *Game) postBlinds() error {
	if err := g.pm.StartRound(g.betSize(rules.BetSmall)); err != nil {
		return err
	}

	order := g.pm.TableOrder()
	small, big := order[0], order[1]
	if len(order) == 2 {
		// heads up, the button posts the small blind
		small, big = order[1], order[0]
	}

	stakes := g.options.Stakes
	blinds := []struct {
		pt       potmanager.Participant
		amount   int
		name     string
		position table.Position
	}{
		{small, stakes.SmallBlind, "small", table.PositionSmallBlind},
		{big, stakes.BigBlind, "big", table.PositionBigBlind},
	}

	for _, blind := range blinds {
		posted, err := g.pm.PostBlind(blind.pt, blind.amount)
		if err != nil {
			g.logger.WithError(err).WithField("player", blind.pt.ID()).Warn("could not post the blind")
			continue
		}

		g.participants[blind.pt.ID()].Position |= blind.position
		g.log(playable.SimpleLogMessage(blind.pt.ID(), "{} posted the %s blind of ${%d}", blind.name, posted))
	}

	g.bigBlind = big.ID()
	return nil
}

// startBetting opens a voluntary betting round and returns true if anybody must act
func (g *Game) startBetting(c rules.BetConfig) bool {
	if c.Type == rules.BetBringIn {
		return g.startBringIn()
	}

	g.openRound(c.Type)
	return !g.pm.IsRoundOver()
}

// openRound opens the round (or resizes the round the blinds opened) and gives the action to the first player
func (g *Game) openRound(t rules.BetType) potmanager.Participant {
	size := g.betSize(t)
	if g.pm.RoundOpen() {
		g.pm.SetBetSize(size)
	} else if err := g.pm.StartRound(size); err != nil {
		panic(fmt.Sprintf("could not start the betting round: %v", err))
	}

	first := g.firstToAct()
	if err := g.pm.SetFirstToAct(first); err != nil {
		panic(fmt.Sprintf("could not give the action to %s: %v", first.ID(), err))
	}

	g.bettingRounds++
	return first
}

func (g *Game) startBringIn() bool {
	if err := g.pm.StartRound(g.betSize(rules.BetSmall)); err != nil {
		panic(fmt.Sprintf("could not start the betting round: %v", err))
	}

	g.bettingRounds++
	p := g.bringInPlayer()
	if p == nil {
		_ = g.pm.SetFirstToAct(g.pm.TableOrder()[0])
		return !g.pm.IsRoundOver()
	}

	g.bringIn = p.ID()
	amount := g.options.Stakes.BringIn
	if amount == 0 {
		// without a bring-in, the low card opens the action
		_ = g.pm.SetFirstToAct(p)
		return !g.pm.IsRoundOver()
	}

	posted, err := g.pm.PostBringIn(p, amount)
	if err != nil {
		panic(fmt.Sprintf("could not post the bring-in: %v", err))
	}

	g.log(playable.SimpleLogMessage(p.ID(), "{} brought it in for ${%d}", posted))
	_ = g.pm.SetFirstToAct(g.after(p.ID()))
	return !g.pm.IsRoundOver()
}

// bringInPlayer returns the player whose upcard must bring it in
// card_low: the lowest card with aces high and clubs lowest. card_high: the highest card with aces low and spades highest
func (g *Game) bringInPlayer() *participant {
	high := g.rules.ForcedBets.BringInEval == rules.BringInHigh
	var chosen *participant
	var chosenCard deck.Card

	worse := func(c, o deck.Card) bool {
		if high {
			cr, or := c.AceLowRank(), o.AceLowRank()
			if c.IsJoker() {
				cr = 0
			}

			if o.IsJoker() {
				or = 0
			}

			if cr != or {
				return cr > or
			}

			return c.Suit.Order() > o.Suit.Order()
		}

		cr, or := c.Rank, o.Rank
		if c.IsJoker() {
			cr = deck.Ace + 1
		}

		if o.IsJoker() {
			or = deck.Ace + 1
		}

		if cr != or {
			return cr < or
		}

		return c.Suit.Order() < o.Suit.Order()
	}

	for _, p := range g.inHand() {
		if g.pm.IsAllIn(p) {
			continue
		}

		up := p.Hand.FaceUp()
		if len(up) == 0 {
			continue
		}

		card := up[0]
		if chosen == nil || worse(card, chosenCard) {
			chosen = p
			chosenCard = card
		}
	}

	return chosen
}

// firstToAct returns who starts the round
func (g *Game) firstToAct() potmanager.Participant {
	order := g.rules.BettingOrder.Subsequent
	if g.bettingRounds == 0 {
		order = g.rules.BettingOrder.Initial
	}

	switch order {
	case rules.OrderAfterBigBlind:
		if g.bigBlind != "" {
			return g.after(g.bigBlind)
		}
	case rules.OrderBringIn:
		if g.bringIn != "" {
			return g.after(g.bringIn)
		}
	case rules.OrderHighHand:
		if p := g.bestVisible(rules.EvalHigh); p != nil {
			return p
		}
	case rules.OrderLowHand:
		if p := g.bestVisible(rules.EvalA5Low); p != nil {
			return p
		}
	}

	return g.pm.TableOrder()[0]
}

// after returns the participant after id in table order
func (g *Game) after(id string) potmanager.Participant {
	order := g.pm.TableOrder()
	for i, pt := range order {
		if pt.ID() == id {
			return order[(i+1)%len(order)]
		}
	}

	return order[0]
}

// bestVisible returns the player with the best face-up cards for the evaluation
// Private wilds are read as their natural card. Ties go to the player closest to the button
func (g *Game) bestVisible(eval rules.EvaluationType) *participant {
	opts := handanalyzer.Options{LowRank: g.rules.Deck.Type.MinRank()}
	var best *participant
	var bestResult handanalyzer.Result
	for _, p := range g.inHand() {
		if g.pm.IsAllIn(p) {
			continue
		}

		up := publicCards(p.Hand.FaceUp())
		res, ok := handanalyzer.Evaluate(eval, up, opts)
		if !ok {
			continue
		}

		if best == nil || res.Beats(bestResult) {
			best = p
			bestResult = res
		}
	}

	return best
}

// publicCards returns the cards as everyone else sees them
func publicCards(cards deck.Cards) deck.Cards {
	public := make(deck.Cards, 0, len(cards))
	for _, c := range cards {
		if c.IsDie() {
			continue
		}

		if c.WildType == deck.PrivateWild {
			c = c.WithWildType(deck.NotWild)
		}

		public = append(public, c)
	}

	return public
}

// betDescriptors returns the betting actions of the player on the clock
func (g *Game) betDescriptors(p *participant) action.Descriptors {
	opts, ok := g.pm.GetOptions(p)
	if !ok {
		return nil
	}

	descs := action.Descriptors{}
	if opts.CanCheck {
		descs = append(descs, action.Descriptor{Action: action.Check})
	}

	if opts.CanCall {
		descs = append(descs, action.Descriptor{Action: action.Call, Min: opts.CallAmount, Max: opts.CallAmount})
	}

	if opts.CanRaise {
		act := action.Raise
		if opts.IsBet {
			act = action.Bet
		} else if opts.IsComplete {
			act = action.Complete
		}

		descs = append(descs, action.Descriptor{Action: act, Min: opts.MinRaise, Max: opts.MaxRaise})
	}

	if opts.CanFold && !opts.CanCheck {
		descs = append(descs, action.Descriptor{Action: action.Fold})
	}

	return descs
}

func (g *Game) handleBet(p *participant, req action.Request, desc action.Descriptor) error {
	before := p.Balance()
	var err error
	switch req.Action {
	case action.Fold:
		err = g.pm.ParticipantFolds(p)
	case action.Check:
		err = g.pm.ParticipantChecks(p)
	case action.Call:
		err = g.pm.ParticipantCalls(p)
	case action.Bet, action.Raise, action.Complete:
		amount := req.Amount
		if amount == 0 {
			amount = desc.Min
		}

		err = g.pm.ParticipantBetsOrRaises(p, amount)
	default:
		err = table.UserError(fmt.Sprintf("you cannot %s during a betting round", req.Action))
	}

	if err != nil {
		return err
	}

	amount := before - p.Balance()
	switch req.Action {
	case action.Fold:
		p.Folded = true
		g.table.MuckCards(p.Hand.Clear())
	case action.Bet, action.Raise, action.Complete:
		amount = p.AmountInPlay()
	}

	msg := "{} " + req.Action.LogMessage(amount)
	if g.pm.IsAllIn(p) && req.Action != action.Fold {
		msg += " and is all-in"
	}

	g.log(playable.SimpleLogMessage(p.ID(), "%s", msg))
	return nil
}

// potLog summarizes the pots after a betting round
func (g *Game) potLog() *playable.LogMessage {
	pots := g.pm.Pots()
	if len(pots) <= 1 {
		return playable.SimpleLogMessage("", "The pot is ${%d}", pots.Total())
	}

	return playable.SimpleLogMessage("", "The pot is ${%d} in %d pots", pots.Total(), len(pots))
}
