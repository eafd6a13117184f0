package engine

import (
	"fmt"
	"strconv"

	"pokerengine/pkg/deck"
	"pokerengine/pkg/playable"
	"pokerengine/pkg/playable/poker/showdown"
	"pokerengine/pkg/rules"
)

// deal deals every batch of the step, one card at a time to each player starting left of the button
func (g *Game) deal(c rules.DealConfig) error {
	players := g.inHand()
	need := c.Total()
	if c.Location == rules.LocationPlayer {
		need *= len(players)
	}

	if !g.ensureCards(need) {
		return ErrNotEnoughCards
	}

	dealt := make(deck.Cards, 0)
	for _, batch := range c.Cards {
		visibility := batch.State.Visibility()
		for i := 0; i < batch.Number; i++ {
			if c.Location == rules.LocationCommunity {
				card := g.mustDraw().WithVisibility(visibility)
				g.table.Boards.Add(c.Board, card)
				dealt = append(dealt, card)
				continue
			}

			for _, p := range players {
				p.Hand.AddCard(g.mustDraw().WithVisibility(visibility))
			}
		}
	}

	g.applyWilds()
	if c.Location == rules.LocationCommunity {
		g.log(playable.CardsLogMessage("", cardStrings(dealt), "Dealt %s", dealt))
	} else {
		g.log(playable.SimpleLogMessage("", "Dealt %d cards to each player", c.Total()))
	}

	return nil
}

func (g *Game) mustDraw() deck.Card {
	card, err := g.deck.Draw()
	if err != nil {
		panic(fmt.Sprintf("deck ran out after checking it could deal: %v", err))
	}

	return card
}

// rollDie records the die face under the subject and, if configured, places it on a board
func (g *Game) rollDie(c rules.RollDieConfig) error {
	g.die.Shuffle(g.nextSeed())
	face, err := g.die.Draw()
	if err != nil {
		return err
	}

	g.choices[c.Subject] = strconv.Itoa(face.Rank)
	if c.Board != "" {
		g.table.Boards.Add(c.Board, face.WithVisibility(deck.FaceUp))
	}

	g.applyWilds()
	g.log(playable.SimpleLogMessage("", "The die rolled a %d", face.Rank))
	return nil
}

// replaceCommunity replaces board cards of the listed ranks until none remain
func (g *Game) replaceCommunity(c rules.ReplaceCommunityConfig) error {
	board, ok := g.table.Boards.Find(c.Board)
	if !ok {
		return nil
	}

	ranks := make(map[int]bool, len(c.Ranks))
	for _, r := range c.Ranks {
		rank, err := deck.ParseRank(r)
		if err != nil {
			return err
		}

		ranks[rank] = true
	}

	for i := range board.Cards {
		for {
			old := board.Cards[i]
			if old.IsDie() || old.IsJoker() || !ranks[old.Rank] {
				break
			}

			if !g.ensureCards(1) {
				return ErrNotEnoughCards
			}

			card := g.mustDraw().WithVisibility(old.Visibility)
			board.Cards[i] = card
			g.table.MuckCards(deck.Cards{old})
			g.log(playable.CardsLogMessage("", cardStrings(deck.Cards{card}), "%s was replaced with %s", old, card))
		}
	}

	g.applyWilds()
	return nil
}

func (g *Game) removeBoards(c rules.RemoveConfig) {
	for _, name := range showdown.RemoveBoards(&g.table.Boards, c) {
		g.log(playable.SimpleLogMessage("", "The %s board was removed", name))
	}
}

// showdown decides the hand and pays the pots
func (g *Game) showdown() {
	g.pm.EndGame()
	players := g.inHand()
	entrants := make([]showdown.Entrant, len(players))
	for i, p := range players {
		entrants[i] = showdown.Entrant{
			ID:          p.ID(),
			Seat:        p.Seat,
			Hand:        p.Hand,
			Declaration: g.declarations[p.ID()],
		}

		g.log(playable.CardsLogMessage(p.ID(), cardStrings(p.Hand.Cards()), "{} showed %s", p.Hand.Cards()))
	}

	result := showdown.Decide(showdown.Input{
		Showdown:   g.rules.Showdown,
		BestHands:  g.rules.Showdown.BestHandsFor(g.choices),
		DeckKind:   g.rules.Deck.Type,
		Boards:     &g.table.Boards,
		ButtonSeat: g.table.ButtonSeat,
		ChipUnit:   g.options.Stakes.ChipUnit,
		Entrants:   entrants,
		Pots:       g.pm.Pots(),
	})

	g.complete(result)
}
