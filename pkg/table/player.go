package table

import (
	"encoding/json"

	"pokerengine/pkg/deck"
)

// Position is a flag for the special seats of a hand
type Position int

// position flags
const (
	PositionButton Position = 1 << iota
	PositionSmallBlind
	PositionBigBlind
)

// Player is a seated player
// The chip methods satisfy potmanager.Participant once wrapped with an ID method
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Seat int    `json:"seat"`

	// Active is false when the player is sitting out or has no chips
	Active bool `json:"active"`

	Hand     *deck.Hand `json:"-"`
	Folded   bool       `json:"folded"`
	Position Position   `json:"position"`

	stack        int
	amountInPlay int
}

func newPlayer(seat int, id, name string, stack int) *Player {
	return &Player{
		ID:     id,
		Name:   name,
		Seat:   seat,
		Active: true,
		Hand:   deck.NewHand(),
		stack:  stack,
	}
}

// Stack returns the chips the player has behind
func (p *Player) Stack() int {
	return p.stack
}

// AmountInPlay returns what the player has committed in the current betting round
func (p *Player) AmountInPlay() int {
	return p.amountInPlay
}

// Is returns true if the player holds the position
func (p *Player) Is(pos Position) bool {
	return p.Position&pos == pos
}

// InHand returns true if the player was dealt in and has not folded
func (p *Player) InHand() bool {
	return p.Active && !p.Folded
}

func (p *Player) resetHand() {
	p.Hand = deck.NewHand()
	p.Folded = false
	p.Position = 0
	p.amountInPlay = 0
	p.Active = p.stack > 0
}

// potmanager.Participant interface

// Balance returns the player's stack
func (p *Player) Balance() int {
	return p.stack
}

// AdjustBalance adjusts the player's stack
func (p *Player) AdjustBalance(amount int) {
	p.stack += amount
}

// SetAmountInPlay records the player's commitment to the current round
func (p *Player) SetAmountInPlay(amount int) {
	p.amountInPlay = amount
}

type playerJSON struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Seat         int        `json:"seat"`
	Active       bool       `json:"active"`
	Folded       bool       `json:"folded"`
	Stack        int        `json:"stack"`
	AmountInPlay int        `json:"amountInPlay"`
	Button       bool       `json:"button,omitempty"`
	Hand         *deck.Hand `json:"hand"`
}

// MarshalJSON includes the unexported chip counts
func (p *Player) MarshalJSON() ([]byte, error) {
	return json.Marshal(playerJSON{
		ID:           p.ID,
		Name:         p.Name,
		Seat:         p.Seat,
		Active:       p.Active,
		Folded:       p.Folded,
		Stack:        p.stack,
		AmountInPlay: p.amountInPlay,
		Button:       p.Is(PositionButton),
		Hand:         p.Hand,
	})
}
