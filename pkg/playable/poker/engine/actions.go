package engine

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"pokerengine/pkg/deck"
	"pokerengine/pkg/playable"
	"pokerengine/pkg/playable/poker/action"
	"pokerengine/pkg/playable/poker/showdown"
	"pokerengine/pkg/rules"
	"pokerengine/pkg/table"
)

// ValidActions returns what the player may do right now
// Nothing is returned if it is not the player's turn
func (g *Game) ValidActions(playerID string) action.Descriptors {
	p, ok := g.participants[playerID]
	if !ok || g.currentPlayer() != playerID {
		return nil
	}

	step, _ := g.activeStep()
	switch c := step.Config.(type) {
	case rules.BetConfig:
		return g.betDescriptors(p)
	case rules.DrawConfig:
		return action.Descriptors{cardDescriptor(action.Draw, c.CardRange, p.Hand.Len())}
	case rules.DiscardConfig:
		return action.Descriptors{cardDescriptor(action.Discard, c.CardRange, p.Hand.Len())}
	case rules.ExposeConfig:
		return action.Descriptors{cardDescriptor(action.Expose, c.CardRange, len(p.Hand.FaceDown()))}
	case rules.SeparateConfig:
		options := make([]string, len(c.Subsets))
		for i, sub := range c.Subsets {
			options[i] = fmt.Sprintf("%s:%d", sub.Name, sub.Number)
		}

		return action.Descriptors{{Action: action.Separate, Min: c.Size(), Max: c.Size(), Options: options}}
	case rules.DeclareConfig:
		options := make([]string, len(c.Options))
		for i, d := range c.Options {
			options[i] = string(d)
		}

		return action.Descriptors{{Action: action.Declare, Options: options}}
	case rules.ChooseConfig:
		return action.Descriptors{{Action: action.Choose, Options: append([]string(nil), c.Options...)}}
	case rules.ProtectConfig:
		descs := action.Descriptors{}
		if p.Balance() >= c.Cost {
			descs = append(descs, action.Descriptor{Action: action.Protect, Min: c.Cost, Max: c.Cost})
		}

		return append(descs, action.Descriptor{Action: action.Decline})
	}

	return nil
}

func cardDescriptor(a action.Action, r rules.CardRange, available int) action.Descriptor {
	max := r.Max
	if max > available {
		max = available
	}

	min := r.Min
	if min > max {
		min = max
	}

	return action.Descriptor{Action: a, Min: min, Max: max}
}

// PlayerAction performs an action for the player
// A failed action changes nothing. The reason is in the result
func (g *Game) PlayerAction(playerID string, req action.Request) action.Result {
	logger := g.logger.WithFields(logrus.Fields{
		"hand":   g.handID,
		"player": playerID,
		"action": string(req.Action),
	})

	res := g.playerAction(playerID, req)
	if !res.Success {
		logger.WithError(res.Error).Debug("action rejected")
		return res
	}

	logger.Debug("action accepted")
	return res
}

func (g *Game) playerAction(playerID string, req action.Request) action.Result {
	if !g.InProgress() {
		return action.Failed(ErrHandNotStarted)
	}

	p, ok := g.participants[playerID]
	if !ok {
		return action.Failed(ErrUnknownPlayer)
	}

	if !req.Action.IsValid() {
		return action.Failed(ErrInvalidAction)
	}

	descs := g.ValidActions(playerID)
	if len(descs) == 0 {
		return action.Failed(ErrNotYourTurn)
	}

	desc, ok := descs.Find(req.Action)
	if !ok {
		return action.Failed(table.UserError(fmt.Sprintf("you cannot %s right now", strings.ToLower(req.Action.String()))))
	}

	step, _ := g.activeStep()
	var err error
	switch c := step.Config.(type) {
	case rules.BetConfig:
		err = g.handleBet(p, req, desc)
	case rules.DrawConfig:
		err = g.handleDraw(p, req, desc, true)
	case rules.DiscardConfig:
		err = g.handleDraw(p, req, desc, false)
	case rules.ExposeConfig:
		err = g.handleExpose(p, req, desc)
	case rules.SeparateConfig:
		err = g.handleSeparate(p, req, c)
	case rules.DeclareConfig:
		err = g.handleDeclare(p, req, desc)
	case rules.ChooseConfig:
		err = g.handleChoose(p, req, c)
	case rules.ProtectConfig:
		err = g.handleProtect(p, req, c)
	}

	if err != nil {
		return action.Failed(userError(err))
	}

	return action.OK(g.afterAction(step))
}

// afterAction moves the hand along after a successful action
// Returns true if the action finished the step (or the player's grouped sub-step)
func (g *Game) afterAction(acted rules.Step) bool {
	g.assertConserved()
	if g.pm.GetInHandParticipantCount() == 1 {
		g.finishUncontested()
		return true
	}

	step, _ := g.step()
	advanced := false
	if grouped, ok := step.Config.(rules.GroupedConfig); ok {
		advanced = g.advanceGrouped(grouped, acted)
		if !g.groupedDone(grouped) {
			return advanced
		}
	} else if _, isBet := acted.Config.(rules.BetConfig); isBet {
		if !g.pm.IsRoundOver() {
			return false
		}
	} else {
		g.turn.index++
		if g.turn.index < len(g.turn.order) {
			return false
		}
	}

	g.stepFinished(step)
	return true
}

func (g *Game) finishUncontested() {
	winner := g.pm.InHand()[0]
	g.pm.EndGame()
	g.turn = turn{}
	g.complete(showdown.Uncontested(winner.ID(), g.pm.Pots()))
}

// parseCards parses the cards of a request and checks the player holds all of them
func parseCards(p *participant, cards []string) (deck.Cards, error) {
	parsed := make(deck.Cards, 0, len(cards))
	for _, s := range cards {
		c, err := deck.ParseCard(s)
		if err != nil {
			return nil, table.UserError(err.Error())
		}

		parsed = append(parsed, c)
	}

	if !p.Hand.Contains(parsed) {
		return nil, ErrInvalidCards
	}

	return parsed, nil
}

func checkCount(n int, desc action.Descriptor) error {
	if n < desc.Min || n > desc.Max {
		if desc.Min == desc.Max {
			return table.UserError(fmt.Sprintf("you must select %d cards", desc.Min))
		}

		return table.UserError(fmt.Sprintf("you must select between %d and %d cards", desc.Min, desc.Max))
	}

	return nil
}

// handleDraw discards the cards and, when replace is set, draws as many new cards
// Replacements are dealt with the visibility of the cards they replace
func (g *Game) handleDraw(p *participant, req action.Request, desc action.Descriptor, replace bool) error {
	cards, err := parseCards(p, req.Cards)
	if err != nil {
		return err
	}

	if err := checkCount(len(cards), desc); err != nil {
		return err
	}

	if replace && !g.ensureCards(len(cards)) {
		return ErrNotEnoughCards
	}

	removed, err := p.Hand.Remove(cards)
	if err != nil {
		return ErrInvalidCards
	}

	g.table.MuckCards(removed)
	if replace {
		for _, old := range removed {
			card, err := g.deck.Draw()
			if err != nil {
				panic(fmt.Sprintf("deck ran out after checking it could draw: %v", err))
			}

			p.Hand.AddCard(card.WithVisibility(old.Visibility))
		}
	}

	g.applyWilds()
	g.log(playable.SimpleLogMessage(p.ID(), "{} %s", req.Action.LogMessage(len(removed))))
	return nil
}

func (g *Game) handleExpose(p *participant, req action.Request, desc action.Descriptor) error {
	cards, err := parseCards(p, req.Cards)
	if err != nil {
		return err
	}

	if err := checkCount(len(cards), desc); err != nil {
		return err
	}

	down := p.Hand.FaceDown()
	for _, c := range cards {
		if !down.Contains(c) {
			return table.UserError(fmt.Sprintf("%s is already face up", c))
		}
	}

	if err := p.Hand.Expose(cards); err != nil {
		return ErrInvalidCards
	}

	g.applyWilds()
	g.log(playable.CardsLogMessage(p.ID(), cardStrings(cards), "{} exposed %s", cards))
	return nil
}

// handleSeparate assigns every card of the request to its subset
// Every subset must be filled exactly and no card may be used twice
func (g *Game) handleSeparate(p *participant, req action.Request, c rules.SeparateConfig) error {
	if len(req.Subsets) != len(c.Subsets) {
		return table.UserError(fmt.Sprintf("you must separate your hand into %d subsets", len(c.Subsets)))
	}

	all := make([]string, 0, c.Size())
	assigned := make(map[string]deck.Cards, len(c.Subsets))
	for _, sub := range c.Subsets {
		cards, ok := req.Subsets[sub.Name]
		if !ok {
			return table.UserError(fmt.Sprintf("missing subset %s", sub.Name))
		}

		if len(cards) != sub.Number {
			return table.UserError(fmt.Sprintf("subset %s needs %d cards", sub.Name, sub.Number))
		}

		parsed, err := parseCards(p, cards)
		if err != nil {
			return err
		}

		assigned[sub.Name] = parsed
		all = append(all, cards...)
	}

	// the hand has a single copy of each card, so a repeated card cannot be found twice
	if _, err := parseCards(p, all); err != nil {
		return table.UserError("a card cannot be in more than one subset")
	}

	for _, sub := range c.Subsets {
		if err := p.Hand.Assign(sub.Name, assigned[sub.Name]); err != nil {
			panic(fmt.Sprintf("could not assign a validated subset: %v", err))
		}
	}

	g.log(playable.SimpleLogMessage(p.ID(), "{} %s", action.Separate.LogMessage(0)))
	return nil
}

func (g *Game) handleDeclare(p *participant, req action.Request, desc action.Descriptor) error {
	if !contains(desc.Options, string(req.Declaration)) {
		return table.UserError(fmt.Sprintf("you must declare one of %s", strings.Join(desc.Options, ", ")))
	}

	g.declarations[p.ID()] = rules.Declaration(req.Declaration)
	g.log(playable.SimpleLogMessage(p.ID(), "{} %s", action.Declare.LogMessage(0)))
	return nil
}

func (g *Game) handleChoose(p *participant, req action.Request, c rules.ChooseConfig) error {
	if !contains(c.Options, req.Choice) {
		return table.UserError(fmt.Sprintf("you must choose one of %s", strings.Join(c.Options, ", ")))
	}

	g.choices[c.Subject] = req.Choice
	g.applyWilds()
	g.log(playable.SimpleLogMessage(p.ID(), "{} chose %s", req.Choice))
	return nil
}

// handleProtect charges the protection cost and freezes the player's wild rank for the rest of the hand
func (g *Game) handleProtect(p *participant, req action.Request, c rules.ProtectConfig) error {
	rank := g.lowestHole(p)
	if req.Action == action.Decline {
		g.protected[p.ID()] = 0
		g.log(playable.SimpleLogMessage(p.ID(), "{} %s", action.Decline.LogMessage(0)))
		return nil
	}

	if err := g.pm.PostPayment(p, c.Cost); err != nil {
		return err
	}

	g.protected[p.ID()] = rank
	g.log(playable.SimpleLogMessage(p.ID(), "{} %s", action.Protect.LogMessage(c.Cost)))
	return nil
}

// ensureCards makes sure n cards can be drawn, shuffling the muck into the deck if needed
func (g *Game) ensureCards(n int) bool {
	if g.deck.CanDraw(n) {
		return true
	}

	if g.deck.CardsLeft()+len(g.table.Muck) < n {
		return false
	}

	g.deck.ShuffleDiscards(g.table.Muck)
	g.table.Muck = deck.Cards{}
	g.log(playable.SimpleLogMessage("", "The muck was shuffled into the deck"))
	return true
}

func cardStrings(cards deck.Cards) []string {
	s := make([]string, len(cards))
	for i, c := range cards {
		s[i] = deck.CardToString(c)
	}

	return s
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}

	return false
}
