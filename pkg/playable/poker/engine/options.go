package engine

import (
	"fmt"

	"pokerengine/pkg/deck"
	"pokerengine/pkg/playable/poker/potmanager"
	"pokerengine/pkg/rules"
)

// Options configure a game
type Options struct {
	Structure potmanager.Structure `json:"structure"`
	Stakes    potmanager.Stakes    `json:"stakes"`

	// MinBuyIn and MaxBuyIn bound the stack a player may sit down with. 0 is unbounded
	MinBuyIn int `json:"minBuyIn"`
	MaxBuyIn int `json:"maxBuyIn"`

	// AutoProgress runs every step that needs no decision as soon as it is reached
	AutoProgress bool `json:"autoProgress"`

	// Seed makes every shuffle of the game deterministic. 0 seeds from crypto/rand
	Seed int64 `json:"seed"`

	// MaxSeats is the number of seats at the table. 0 uses the variant's maximum player count
	MaxSeats int `json:"maxSeats"`

	// Deck and Die replace the shuffled deck and die (i.e., a stacked deck)
	Deck *deck.Deck `json:"-"`
	Die  *deck.Deck `json:"-"`
}

// DefaultOptions returns $5/$10 Limit options with a $20 big bet
func DefaultOptions() Options {
	return Options{
		Structure: potmanager.Limit,
		Stakes: potmanager.Stakes{
			SmallBlind: 5,
			BigBlind:   10,
			Ante:       1,
			BringIn:    5,
			SmallBet:   10,
			BigBet:     20,
			BettingCap: 4,
			ChipUnit:   1,
		},
		MinBuyIn:     100,
		MaxBuyIn:     1000,
		AutoProgress: true,
	}
}

func (o *Options) validate(r *rules.Rules) error {
	fail := func(field, format string, a ...interface{}) error {
		return &rules.ConfigError{
			Variant: r.Game,
			Field:   "options." + field,
			Reason:  fmt.Sprintf(format, a...),
		}
	}

	if !r.Supports(o.Structure) {
		return fail("structure", "%q is not supported", o.Structure)
	}

	s := o.Stakes
	for name, v := range map[string]int{
		"smallBlind": s.SmallBlind,
		"bigBlind":   s.BigBlind,
		"ante":       s.Ante,
		"bringIn":    s.BringIn,
		"smallBet":   s.SmallBet,
		"bigBet":     s.BigBet,
		"bettingCap": s.BettingCap,
		"chipUnit":   s.ChipUnit,
	} {
		if v < 0 {
			return fail("stakes."+name, "cannot be negative")
		}
	}

	if r.ForcedBets.Style == rules.ForcedBlinds {
		if s.SmallBlind == 0 || s.BigBlind < s.SmallBlind {
			return fail("stakes.bigBlind", "blinds must be positive and the big blind at least the small blind")
		}
	}

	if o.Structure == potmanager.Limit {
		if s.SmallBet == 0 || s.BigBet < s.SmallBet {
			return fail("stakes.bigBet", "limit bets must be positive and the big bet at least the small bet")
		}

		if s.BringIn > s.SmallBet {
			return fail("stakes.bringIn", "cannot be more than the small bet")
		}
	} else if s.BigBlind == 0 && s.SmallBet == 0 {
		return fail("stakes.smallBet", "a minimum bet is required")
	}

	if o.MaxBuyIn > 0 && o.MinBuyIn > o.MaxBuyIn {
		return fail("minBuyIn", "cannot be more than the maximum buy-in")
	}

	if o.Seed < 0 {
		return fail("seed", "cannot be negative")
	}

	if o.MaxSeats == 0 {
		o.MaxSeats = r.Players.Max
	}

	if o.MaxSeats < r.Players.Min || o.MaxSeats > rules.MaxPlayers {
		return fail("maxSeats", "must be between %d and %d", r.Players.Min, rules.MaxPlayers)
	}

	if o.Deck != nil && o.Deck.Kind() != r.Deck.Type {
		return fail("deck", "expected a %s deck", r.Deck.Type)
	}

	if o.Stakes.ChipUnit == 0 {
		o.Stakes.ChipUnit = 1
	}

	return nil
}
