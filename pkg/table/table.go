package table

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"pokerengine/pkg/deck"
)

// ErrPlayerNotAtTable happens when a player is not seated at the table
var ErrPlayerNotAtTable = errors.New("player is not seated at the table")

// ErrSeatTaken happens when a player tries to sit in an occupied seat
var ErrSeatTaken = UserError("seat is taken")

// Table represents a poker table
// A table has many seats, a dealer button, community boards and a muck
type Table struct {
	UUID     string `json:"uuid"`
	MaxSeats int    `json:"maxSeats"`

	// ButtonSeat is the seat of the dealer button, or -1 before the first hand
	ButtonSeat int `json:"buttonSeat"`

	Boards Boards     `json:"boards"`
	Muck   deck.Cards `json:"-"`

	seats map[int]*Player
}

// New returns a new table with the specified number of seats
func New(maxSeats int) *Table {
	return &Table{
		UUID:       uuid.New().String(),
		MaxSeats:   maxSeats,
		ButtonSeat: -1,
		Muck:       deck.Cards{},
		seats:      make(map[int]*Player),
	}
}

// AddPlayer seats a player
func (t *Table) AddPlayer(seat int, id, name string, stack int) (*Player, error) {
	if seat < 0 || seat >= t.MaxSeats {
		return nil, UserError(fmt.Sprintf("seat must be between 0 and %d", t.MaxSeats-1))
	}

	if _, taken := t.seats[seat]; taken {
		return nil, ErrSeatTaken
	}

	if _, ok := t.Player(id); ok {
		return nil, UserError(fmt.Sprintf("player %s is already seated", id))
	}

	if stack <= 0 {
		return nil, UserError("stack must be positive")
	}

	p := newPlayer(seat, id, name, stack)
	t.seats[seat] = p
	return p, nil
}

// RemovePlayer removes the player from their seat
func (t *Table) RemovePlayer(id string) error {
	p, ok := t.Player(id)
	if !ok {
		return ErrPlayerNotAtTable
	}

	delete(t.seats, p.Seat)
	return nil
}

// Player returns the player with the ID
func (t *Table) Player(id string) (*Player, bool) {
	for _, p := range t.seats {
		if p.ID == id {
			return p, true
		}
	}

	return nil, false
}

// PlayerAt returns the player in the seat
func (t *Table) PlayerAt(seat int) (*Player, bool) {
	p, ok := t.seats[seat]
	return p, ok
}

// Players returns every seated player in seat order
func (t *Table) Players() []*Player {
	players := make([]*Player, 0, len(t.seats))
	for _, p := range t.seats {
		players = append(players, p)
	}

	sort.Slice(players, func(i, j int) bool {
		return players[i].Seat < players[j].Seat
	})

	return players
}

// ActivePlayers returns the players dealt into the current hand in seat order
func (t *Table) ActivePlayers() []*Player {
	players := make([]*Player, 0, len(t.seats))
	for _, p := range t.Players() {
		if p.Active {
			players = append(players, p)
		}
	}

	return players
}

// InHand returns the players who have not folded, in seat order
func (t *Table) InHand() []*Player {
	players := make([]*Player, 0, len(t.seats))
	for _, p := range t.Players() {
		if p.InHand() {
			players = append(players, p)
		}
	}

	return players
}

// OrderFrom returns the active players clockwise, starting with the first active player after seat
func (t *Table) OrderFrom(seat int) []*Player {
	active := t.ActivePlayers()
	n := len(active)
	if n == 0 {
		return active
	}

	start := 0
	for i, p := range active {
		if p.Seat > seat {
			start = i
			break
		}
	}

	ordered := make([]*Player, 0, n)
	for i := 0; i < n; i++ {
		ordered = append(ordered, active[(start+i)%n])
	}

	return ordered
}

// LeftOfButton returns the active players clockwise starting left of the button
func (t *Table) LeftOfButton() []*Player {
	return t.OrderFrom(t.ButtonSeat)
}

// ResetHand clears everything from the previous hand and returns the cards that were in play
// Players without chips sit out
func (t *Table) ResetHand() deck.Cards {
	cards := t.Boards.Clear()
	for _, p := range t.Players() {
		cards = append(cards, p.Hand.Clear()...)
		p.resetHand()
	}

	cards = append(cards, t.Muck...)
	t.Muck = deck.Cards{}

	return cards
}

// MoveButton advances the button to the next active player and returns the new button seat
func (t *Table) MoveButton() (int, error) {
	order := t.OrderFrom(t.ButtonSeat)
	if len(order) == 0 {
		return -1, errors.New("no active players")
	}

	btn := order[0]
	t.ButtonSeat = btn.Seat
	for _, p := range t.seats {
		p.Position &^= PositionButton
	}

	btn.Position |= PositionButton
	return btn.Seat, nil
}

// MuckCards adds cards to the muck
func (t *Table) MuckCards(cards deck.Cards) {
	for _, c := range cards {
		t.Muck = append(t.Muck, c.Natural())
	}
}

// TotalChips returns the sum of every player's stack
func (t *Table) TotalChips() int {
	total := 0
	for _, p := range t.seats {
		total += p.stack
	}

	return total
}
