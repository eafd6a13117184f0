package rules

import (
	"bytes"
	"encoding/json"
	"strconv"

	"pokerengine/pkg/deck"
	"pokerengine/pkg/playable/poker/potmanager"
	"pokerengine/pkg/table"
)

// player limits a variant may ask for
const (
	MinPlayers = 2
	MaxPlayers = 10
)

// PlayerBounds is the number of players a variant supports
type PlayerBounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// DeckConfig is the deck a variant is played with
type DeckConfig struct {
	Type   deck.Kind `json:"type"`
	Jokers int       `json:"jokers,omitempty"`
}

// ForcedBetStyle is how the first betting round is opened
type ForcedBetStyle string

// forced bet styles
const (
	ForcedBlinds    ForcedBetStyle = "blinds"
	ForcedBringIn   ForcedBetStyle = "bring-in"
	ForcedAntesOnly ForcedBetStyle = "antes_only"
)

// BringInEval picks the bring-in by upcard
type BringInEval string

// bring-in evaluations
const (
	BringInLow  BringInEval = "card_low"
	BringInHigh BringInEval = "card_high"
)

// ForcedBets configures forced bets
type ForcedBets struct {
	Style       ForcedBetStyle `json:"style"`
	BringInEval BringInEval    `json:"bringInEval,omitempty"`
}

// Order is who acts first in a betting round
type Order string

// betting orders
const (
	OrderAfterBigBlind Order = "after_big_blind"
	OrderBringIn       Order = "bring_in"
	// OrderDealer starts left of the button
	OrderDealer Order = "dealer"
	// OrderHighHand starts with the best visible hand
	OrderHighHand Order = "high_hand"
	// OrderLowHand starts with the lowest visible hand
	OrderLowHand Order = "low_hand"
)

// BettingOrder configures who acts first
type BettingOrder struct {
	Initial    Order `json:"initial"`
	Subsequent Order `json:"subsequent"`
}

// Rules is a parsed and validated variant
// Rules are read-only once loaded and may be shared by many games
type Rules struct {
	Game              string                 `json:"game"`
	Players           PlayerBounds           `json:"players"`
	Deck              DeckConfig             `json:"deck"`
	BettingStructures []potmanager.Structure `json:"bettingStructures"`
	ForcedBets        ForcedBets             `json:"forcedBets"`
	BettingOrder      BettingOrder           `json:"bettingOrder"`
	GamePlay          []Step                 `json:"gamePlay"`
	Showdown          Showdown               `json:"showdown"`
}

// Parse decodes and validates a variant definition
func Parse(data []byte) (*Rules, error) {
	var r Rules
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&r); err != nil {
		cerr := &ConfigError{Variant: gameName(data), Reason: err.Error(), Err: err}
		return nil, cerr
	}

	if r.Deck.Type == "" {
		r.Deck.Type = deck.Standard
	}

	if r.Showdown.DeclarationMode == "" {
		r.Showdown.DeclarationMode = CardsSpeak
	}

	if r.Showdown.OddChip == "" {
		r.Showdown.OddChip = OddChipLeftOfButton
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	return &r, nil
}

func gameName(data []byte) string {
	var named struct {
		Game string `json:"game"`
	}

	_ = json.Unmarshal(data, &named)
	return named.Game
}

// Supports returns true if the variant can be played with the structure
func (r *Rules) Supports(s potmanager.Structure) bool {
	for _, bs := range r.BettingStructures {
		if bs == s {
			return true
		}
	}

	return false
}

// WalkSteps calls fn for every step, including the sub-steps of grouped steps
func (r *Rules) WalkSteps(fn func(path string, step Step)) {
	walkSteps(r.GamePlay, "gamePlay", fn)
}

func walkSteps(steps []Step, prefix string, fn func(path string, step Step)) {
	for i, step := range steps {
		path := prefix + "[" + strconv.Itoa(i) + "]"
		fn(path, step)
		if grouped, ok := step.Config.(GroupedConfig); ok {
			walkSteps(grouped.Steps, path+".groupedActions", fn)
		}
	}
}

// HasKind returns true if any step (or sub-step) is of the kind
func (r *Rules) HasKind(kind Kind) bool {
	found := false
	r.WalkSteps(func(_ string, step Step) {
		if step.Kind() == kind {
			found = true
		}
	})

	return found
}

// Choices returns the options of every recorded subject, including die rolls
func (r *Rules) Choices() map[string][]string {
	choices := make(map[string][]string)
	r.WalkSteps(func(_ string, step Step) {
		switch c := step.Config.(type) {
		case ChooseConfig:
			choices[c.Subject] = append(choices[c.Subject], c.Options...)
		case RollDieConfig:
			choices[c.Subject] = []string{"1", "2", "3", "4", "5", "6"}
		}
	})

	return choices
}

// Subsets returns the names of all subsets a hand can be separated into
func (r *Rules) Subsets() map[string]bool {
	subsets := make(map[string]bool)
	r.WalkSteps(func(_ string, step Step) {
		if c, ok := step.Config.(SeparateConfig); ok {
			for _, sub := range c.Subsets {
				subsets[sub.Name] = true
			}
		}
	})

	return subsets
}

// Boards returns the names of all boards cards are dealt to
func (r *Rules) Boards() map[string]bool {
	boards := make(map[string]bool)
	r.WalkSteps(func(_ string, step Step) {
		switch c := step.Config.(type) {
		case DealConfig:
			if c.Location == LocationCommunity {
				boards[boardName(c.Board)] = true
			}
		case RollDieConfig:
			if c.Board != "" {
				boards[c.Board] = true
			}
		}
	})

	return boards
}

func boardName(name string) string {
	if name == "" {
		return table.DefaultBoard
	}

	return name
}
