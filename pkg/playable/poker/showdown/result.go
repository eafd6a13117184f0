package showdown

import (
	"encoding/json"
	"fmt"
	"strings"

	hashstructure "github.com/mitchellh/hashstructure/v2"
)

// Award is a chip amount paid to a player
type Award struct {
	ID     string `json:"id"`
	Amount int    `json:"amount"`
}

// PotResult is how one pot (or the share of a pot for one hand type) was paid
type PotResult struct {
	// Pot is the index of the pot. 0 is the main pot
	Pot      int      `json:"pot"`
	HandType string   `json:"handType,omitempty"`
	Amount   int      `json:"amount"`
	Winners  []string `json:"winners"`
	Split    bool     `json:"split"`
	Awards   []Award  `json:"awards"`
}

// HandResult is a player's hand for one hand type
type HandResult struct {
	HandType    string   `json:"handType"`
	Qualified   bool     `json:"qualified"`
	Description string   `json:"description"`
	Cards       []string `json:"cards,omitempty"`
	Board       string   `json:"board,omitempty"`
}

// PlayerHands are the hands a player showed down
type PlayerHands struct {
	ID          string       `json:"id"`
	Declaration string       `json:"declaration,omitempty"`
	Hands       []HandResult `json:"hands"`
}

// snapshot is the exported form of a result
type snapshot struct {
	Pots        []PotResult   `json:"pots"`
	Hands       []PlayerHands `json:"hands"`
	Uncontested bool          `json:"uncontested"`
	Complete    bool          `json:"complete"`
}

// GameResult is the outcome of a hand
// A GameResult is created once and never changes. Accessors return copies
type GameResult struct {
	pots        []PotResult
	hands       []PlayerHands
	uncontested bool
}

// Pots returns how each pot was paid
func (g *GameResult) Pots() []PotResult {
	pots := make([]PotResult, len(g.pots))
	for i, p := range g.pots {
		p.Winners = append([]string(nil), p.Winners...)
		p.Awards = append([]Award(nil), p.Awards...)
		pots[i] = p
	}

	return pots
}

// Hands returns every hand shown down
func (g *GameResult) Hands() []PlayerHands {
	hands := make([]PlayerHands, len(g.hands))
	for i, h := range g.hands {
		h.Hands = append([]HandResult(nil), h.Hands...)
		hands[i] = h
	}

	return hands
}

// Uncontested returns true if everyone else folded
func (g *GameResult) Uncontested() bool {
	return g.uncontested
}

// Complete returns true once the hand has been decided, which a result always is
func (g *GameResult) Complete() bool {
	return true
}

// Payouts returns the total won by each player
func (g *GameResult) Payouts() map[string]int {
	payouts := make(map[string]int)
	for _, p := range g.pots {
		for _, a := range p.Awards {
			payouts[a.ID] += a.Amount
		}
	}

	return payouts
}

// Total returns the number of chips paid out
func (g *GameResult) Total() int {
	total := 0
	for _, p := range g.pots {
		total += p.Amount
	}

	return total
}

func (g *GameResult) snapshot() snapshot {
	return snapshot{
		Pots:        g.Pots(),
		Hands:       g.Hands(),
		Uncontested: g.uncontested,
		Complete:    true,
	}
}

// MarshalJSON encodes the result
func (g *GameResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.snapshot())
}

// Fingerprint returns a hash of the result
// Identical hands played with identical actions have identical fingerprints
func (g *GameResult) Fingerprint() (uint64, error) {
	return hashstructure.Hash(g.snapshot(), hashstructure.FormatV2, nil)
}

func potName(i int) string {
	if i == 0 {
		return "Main pot"
	}

	return fmt.Sprintf("Side pot %d", i)
}

// String returns a human readable summary
func (g *GameResult) String() string {
	var b strings.Builder
	for _, p := range g.pots {
		b.WriteString(potName(p.Pot))
		if p.HandType != "" {
			b.WriteString(" (" + p.HandType + ")")
		}

		fmt.Fprintf(&b, " ${%d}: ", p.Amount)
		awards := make([]string, len(p.Awards))
		for i, a := range p.Awards {
			awards[i] = fmt.Sprintf("%s wins ${%d}", a.ID, a.Amount)
		}

		b.WriteString(strings.Join(awards, ", "))
		if g.uncontested {
			b.WriteString(" uncontested")
		}

		b.WriteString("\n")
	}

	for _, h := range g.hands {
		b.WriteString(h.ID)
		if h.Declaration != "" {
			b.WriteString(" [" + h.Declaration + "]")
		}

		b.WriteString(":")
		for _, hand := range h.Hands {
			fmt.Fprintf(&b, " %s: %s;", hand.HandType, hand.Description)
		}

		b.WriteString("\n")
	}

	return b.String()
}
