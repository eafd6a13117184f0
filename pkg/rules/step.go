package rules

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"pokerengine/pkg/deck"
)

// Kind is the kind of action a step performs
type Kind int

// step kinds
const (
	KindBet Kind = iota
	KindDeal
	KindDraw
	KindDiscard
	KindExpose
	KindSeparate
	KindDeclare
	KindChoose
	KindRollDie
	KindReplaceCommunity
	KindRemove
	KindProtect
	KindGrouped
	KindShowdown
)

var kindKeys = map[string]Kind{
	"bet":               KindBet,
	"deal":              KindDeal,
	"draw":              KindDraw,
	"discard":           KindDiscard,
	"expose":            KindExpose,
	"separate":          KindSeparate,
	"declare":           KindDeclare,
	"choose":            KindChoose,
	"roll_die":          KindRollDie,
	"replace_community": KindReplaceCommunity,
	"remove":            KindRemove,
	"protect":           KindProtect,
	"groupedActions":    KindGrouped,
	"showdown":          KindShowdown,
}

// String returns the config key of the kind
func (k Kind) String() string {
	for key, kind := range kindKeys {
		if kind == k {
			return key
		}
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Interactive returns true if the step needs a decision from a player
func (k Kind) Interactive() bool {
	switch k {
	case KindBet, KindDraw, KindDiscard, KindExpose, KindSeparate, KindDeclare, KindChoose, KindProtect, KindGrouped:
		return true
	}

	return false
}

// Step is a single step of a game
// Steps are fixed once loaded. Only the game's step pointer moves
type Step struct {
	Name      string
	Condition *Condition
	Config    StepConfig
}

// Kind returns the kind of the step's config
func (s Step) Kind() Kind {
	return s.Config.Kind()
}

// StepConfig is the kind-specific payload of a step
// The set of implementations is closed: BetConfig, DealConfig, DrawConfig, DiscardConfig,
// ExposeConfig, SeparateConfig, DeclareConfig, ChooseConfig, RollDieConfig,
// ReplaceCommunityConfig, RemoveConfig, ProtectConfig, GroupedConfig and ShowdownConfig
type StepConfig interface {
	Kind() Kind
	stepConfig()
}

// BetType is the type of a betting step
type BetType string

// bet types
const (
	BetAntes  BetType = "antes"
	BetBlinds BetType = "blinds"
	// BetBringIn is the first betting round of a stud game, opened by a forced bring-in
	BetBringIn BetType = "bring-in"
	// BetSmall is a betting round using the small bet
	BetSmall BetType = "small"
	// BetBig is a betting round using the big bet
	BetBig BetType = "big"
)

// Forced returns true if the bet type only posts forced bets
func (b BetType) Forced() bool {
	return b == BetAntes || b == BetBlinds
}

// BetConfig is a betting step
type BetConfig struct {
	Type BetType `json:"type"`
}

// Location is where dealt cards go
type Location string

// deal locations
const (
	LocationPlayer    Location = "player"
	LocationCommunity Location = "community"
)

// CardState is how a card is dealt
type CardState string

// card states
const (
	StateFaceUp   CardState = "face up"
	StateFaceDown CardState = "face down"
)

// Visibility returns the deck visibility for the state
func (c CardState) Visibility() deck.Visibility {
	if c == StateFaceUp {
		return deck.FaceUp
	}

	return deck.FaceDown
}

// DealCards is a batch of cards dealt in one state
type DealCards struct {
	Number int       `json:"number"`
	State  CardState `json:"state"`
}

// DealConfig is a dealing step
type DealConfig struct {
	Location Location    `json:"location"`
	Board    string      `json:"board,omitempty"`
	Cards    []DealCards `json:"cards"`
}

// Total returns how many cards are dealt to each recipient
func (d DealConfig) Total() int {
	total := 0
	for _, c := range d.Cards {
		total += c.Number
	}

	return total
}

// CardRange is a min and max card count
type CardRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// DrawConfig is a step where players exchange cards
type DrawConfig struct {
	CardRange
}

// DiscardConfig is a step where players discard without replacement
type DiscardConfig struct {
	CardRange
}

// ExposeConfig is a step where players turn cards face up
type ExposeConfig struct {
	CardRange
}

// Subset is a named group of cards in a separated hand
type Subset struct {
	Name   string `json:"name"`
	Number int    `json:"number"`
}

// SeparateConfig is a step where players split their hand into subsets
type SeparateConfig struct {
	Subsets []Subset `json:"subsets"`
}

// Size returns the total number of cards the subsets hold
func (s SeparateConfig) Size() int {
	total := 0
	for _, sub := range s.Subsets {
		total += sub.Number
	}

	return total
}

// Declaration is a player's commitment to a contest
type Declaration string

// declarations
const (
	DeclareHigh    Declaration = "high"
	DeclareLow     Declaration = "low"
	DeclareHighLow Declaration = "high_low"
)

// DeclareConfig is a step where players declare which pots they contest
type DeclareConfig struct {
	Options []Declaration `json:"options"`
}

// Chooser is who makes a choice
type Chooser string

// choosers
const (
	ChooserButton       Chooser = "button"
	ChooserLeftOfButton Chooser = "left_of_button"
)

// ChooseConfig is a step where one player picks from a list of options
// The chosen option is recorded under Subject
type ChooseConfig struct {
	Subject string   `json:"subject"`
	Options []string `json:"options"`
	Chooser Chooser  `json:"chooser,omitempty"`
}

// RollDieConfig rolls the die and records the face under Subject
// If Board is set, the die face is also placed on that board
type RollDieConfig struct {
	Subject string `json:"subject"`
	Board   string `json:"board,omitempty"`
}

// ReplaceCommunityConfig replaces community cards of the listed ranks with new cards
type ReplaceCommunityConfig struct {
	Board string   `json:"board,omitempty"`
	Ranks []string `json:"ranks"`
}

// RemoveType is the rule that picks which boards are removed
type RemoveType string

// remove types
const (
	RemoveLowestRiver  RemoveType = "lowest_river"
	RemoveHighestRiver RemoveType = "highest_river"
)

// RemoveConfig takes boards out of contention
// Boards limits the candidates. Empty means every live board
type RemoveConfig struct {
	Type   RemoveType `json:"type"`
	Boards []string   `json:"boards,omitempty"`
}

// ProtectConfig lets each player pay Cost to freeze their current wild rank
type ProtectConfig struct {
	Cost int `json:"cost"`
}

// GroupedConfig is a sequence of sub-steps each player completes before the next player acts
type GroupedConfig struct {
	Steps []Step
}

// ShowdownConfig is the final step of a hand
type ShowdownConfig struct {
	Type string `json:"type"`
}

func (BetConfig) Kind() Kind              { return KindBet }
func (DealConfig) Kind() Kind             { return KindDeal }
func (DrawConfig) Kind() Kind             { return KindDraw }
func (DiscardConfig) Kind() Kind          { return KindDiscard }
func (ExposeConfig) Kind() Kind           { return KindExpose }
func (SeparateConfig) Kind() Kind         { return KindSeparate }
func (DeclareConfig) Kind() Kind          { return KindDeclare }
func (ChooseConfig) Kind() Kind           { return KindChoose }
func (RollDieConfig) Kind() Kind          { return KindRollDie }
func (ReplaceCommunityConfig) Kind() Kind { return KindReplaceCommunity }
func (RemoveConfig) Kind() Kind           { return KindRemove }
func (ProtectConfig) Kind() Kind          { return KindProtect }
func (GroupedConfig) Kind() Kind          { return KindGrouped }
func (ShowdownConfig) Kind() Kind         { return KindShowdown }

func (BetConfig) stepConfig()              {}
func (DealConfig) stepConfig()             {}
func (DrawConfig) stepConfig()             {}
func (DiscardConfig) stepConfig()          {}
func (ExposeConfig) stepConfig()           {}
func (SeparateConfig) stepConfig()         {}
func (DeclareConfig) stepConfig()          {}
func (ChooseConfig) stepConfig()           {}
func (RollDieConfig) stepConfig()          {}
func (ReplaceCommunityConfig) stepConfig() {}
func (RemoveConfig) stepConfig()           {}
func (ProtectConfig) stepConfig()          {}
func (GroupedConfig) stepConfig()          {}
func (ShowdownConfig) stepConfig()         {}

// Range returns the min and max cards for draw, discard and expose steps
func Range(cfg StepConfig) (CardRange, bool) {
	switch c := cfg.(type) {
	case DrawConfig:
		return c.CardRange, true
	case DiscardConfig:
		return c.CardRange, true
	case ExposeConfig:
		return c.CardRange, true
	}

	return CardRange{}, false
}

func decodeStrict(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// UnmarshalJSON decodes a step, which must have exactly one kind key
func (s *Step) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if name, ok := raw["name"]; ok {
		if err := json.Unmarshal(name, &s.Name); err != nil {
			return fmt.Errorf("name: %w", err)
		}

		delete(raw, "name")
	}

	if cond, ok := raw["condition"]; ok {
		var c Condition
		if err := decodeStrict(cond, &c); err != nil {
			return fmt.Errorf("step %q: condition: %w", s.Name, err)
		}

		s.Condition = &c
		delete(raw, "condition")
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	if len(keys) != 1 {
		return fmt.Errorf("step %q must have exactly one action, found [%s]", s.Name, strings.Join(keys, ", "))
	}

	kind, ok := kindKeys[keys[0]]
	if !ok {
		return fmt.Errorf("step %q: unknown action: %s", s.Name, keys[0])
	}

	cfg, err := decodeConfig(kind, raw[keys[0]])
	if err != nil {
		return fmt.Errorf("step %q: %s: %w", s.Name, keys[0], err)
	}

	s.Config = cfg
	return nil
}

func decodeConfig(kind Kind, data json.RawMessage) (StepConfig, error) {
	switch kind {
	case KindBet:
		var c BetConfig
		err := decodeStrict(data, &c)
		return c, err
	case KindDeal:
		var c DealConfig
		err := decodeStrict(data, &c)
		return c, err
	case KindDraw:
		var c DrawConfig
		err := decodeStrict(data, &c)
		return c, err
	case KindDiscard:
		var c DiscardConfig
		err := decodeStrict(data, &c)
		return c, err
	case KindExpose:
		var c ExposeConfig
		err := decodeStrict(data, &c)
		return c, err
	case KindSeparate:
		var c SeparateConfig
		err := decodeStrict(data, &c)
		return c, err
	case KindDeclare:
		var c DeclareConfig
		err := decodeStrict(data, &c)
		return c, err
	case KindChoose:
		var c ChooseConfig
		err := decodeStrict(data, &c)
		return c, err
	case KindRollDie:
		var c RollDieConfig
		err := decodeStrict(data, &c)
		return c, err
	case KindReplaceCommunity:
		var c ReplaceCommunityConfig
		err := decodeStrict(data, &c)
		return c, err
	case KindRemove:
		var c RemoveConfig
		err := decodeStrict(data, &c)
		return c, err
	case KindProtect:
		var c ProtectConfig
		err := decodeStrict(data, &c)
		return c, err
	case KindGrouped:
		var c GroupedConfig
		err := json.Unmarshal(data, &c.Steps)
		return c, err
	case KindShowdown:
		var c ShowdownConfig
		err := decodeStrict(data, &c)
		return c, err
	}

	return nil, fmt.Errorf("unhandled kind: %s", kind)
}

// Condition gates a step (or a best hand) on a recorded choice
type Condition struct {
	Subject string   `json:"subject"`
	Equals  string   `json:"equals,omitempty"`
	In      []string `json:"in,omitempty"`
}

// Matches returns true if the recorded choices satisfy the condition
func (c *Condition) Matches(choices map[string]string) bool {
	if c == nil {
		return true
	}

	value, ok := choices[c.Subject]
	if !ok {
		return false
	}

	if c.Equals != "" && value == c.Equals {
		return true
	}

	for _, in := range c.In {
		if value == in {
			return true
		}
	}

	return false
}

func (c *Condition) key() string {
	if c == nil {
		return ""
	}

	values := append([]string{c.Equals}, c.In...)
	return c.Subject + "=" + strings.Join(values, "|")
}
