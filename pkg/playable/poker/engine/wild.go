package engine

import (
	"strconv"

	"pokerengine/pkg/deck"
	"pokerengine/pkg/rules"
)

// applyWilds marks the wild cards of every hand and board
// Wildness is recomputed from the natural cards so a card can stop being wild (i.e., a new lowest hole card)
func (g *Game) applyWilds() {
	if len(g.rules.Showdown.WildCards) == 0 {
		return
	}

	for _, p := range g.inHand() {
		lowest := g.lowestHole(p)
		p.Hand.Update(func(c deck.Card) deck.Card {
			return g.wildFor(c.WithWildType(deck.NotWild), lowest)
		})
	}

	for _, b := range g.table.Boards.All() {
		for i, c := range b.Cards {
			b.Cards[i] = g.wildFor(c.WithWildType(deck.NotWild), 0)
		}
	}
}

// wildFor returns the card marked with the first wild policy it matches
func (g *Game) wildFor(c deck.Card, lowestHole int) deck.Card {
	if c.IsDie() {
		return c
	}

	for _, w := range g.rules.Showdown.WildCards {
		switch w.Type {
		case rules.WildJoker:
			if !c.IsJoker() {
				continue
			}

			if w.Role == rules.RoleBug {
				return c.WithWildType(deck.Bug)
			}

			return c.WithWildType(deck.Wild)
		case rules.WildRank:
			if rank, ok := g.wildRank(w); ok && !c.IsJoker() && c.Rank == rank {
				return c.WithWildType(deck.Wild)
			}
		case rules.WildLowestHole:
			if lowestHole > 0 && !c.IsJoker() && c.Rank == lowestHole {
				return c.WithWildType(deck.PrivateWild)
			}
		}
	}

	return c
}

// wildRank returns the rank a rank policy makes wild
// A die face of 1 is an ace
func (g *Game) wildRank(w rules.WildCard) (int, bool) {
	value := w.Rank
	if w.Subject != "" {
		v, ok := g.choices[w.Subject]
		if !ok {
			return 0, false
		}

		value = v
	}

	if n, err := strconv.Atoi(value); err == nil && n == 1 {
		return deck.Ace, true
	}

	rank, err := deck.ParseRank(value)
	if err != nil {
		return 0, false
	}

	return rank, true
}

// lowestHole returns the rank of the player's lowest face-down card, or the rank they protected
// 0 is returned if the variant has no lowest hole card wild or the player has no face-down card
func (g *Game) lowestHole(p *participant) int {
	if !g.rules.Showdown.HasWild(rules.WildLowestHole) {
		return 0
	}

	if rank := g.protected[p.ID()]; rank > 0 {
		return rank
	}

	lowest := 0
	for _, c := range p.Hand.FaceDown() {
		if c.IsJoker() || c.IsDie() {
			continue
		}

		if lowest == 0 || c.Rank < lowest {
			lowest = c.Rank
		}
	}

	return lowest
}
