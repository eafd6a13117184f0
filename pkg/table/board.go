package table

import (
	"encoding/json"
	"fmt"

	"pokerengine/pkg/deck"
)

// DefaultBoard is the community board used when a deal step does not name one
const DefaultBoard = "board"

// Board is a named set of community cards
type Board struct {
	Name    string     `json:"name"`
	Cards   deck.Cards `json:"cards"`
	Removed bool       `json:"removed,omitempty"`
}

// Boards is an ordered collection of community boards
type Boards struct {
	boards []*Board
}

// Get returns the named board, creating it if it does not exist
func (b *Boards) Get(name string) *Board {
	if name == "" {
		name = DefaultBoard
	}

	for _, board := range b.boards {
		if board.Name == name {
			return board
		}
	}

	board := &Board{Name: name, Cards: deck.Cards{}}
	b.boards = append(b.boards, board)
	return board
}

// Find returns the named board if it exists
func (b *Boards) Find(name string) (*Board, bool) {
	if name == "" {
		name = DefaultBoard
	}

	for _, board := range b.boards {
		if board.Name == name {
			return board, true
		}
	}

	return nil, false
}

// Add deals a card onto the named board
func (b *Boards) Add(name string, card deck.Card) {
	board := b.Get(name)
	board.Cards = append(board.Cards, card)
}

// Remove takes the named board out of contention
func (b *Boards) Remove(name string) error {
	board, ok := b.Find(name)
	if !ok {
		return fmt.Errorf("unknown board: %s", name)
	}

	board.Removed = true
	return nil
}

// All returns every board in creation order, including removed boards
func (b *Boards) All() []*Board {
	all := make([]*Board, len(b.boards))
	copy(all, b.boards)

	return all
}

// Live returns the boards that are still in contention
func (b *Boards) Live() []*Board {
	live := make([]*Board, 0, len(b.boards))
	for _, board := range b.boards {
		if !board.Removed {
			live = append(live, board)
		}
	}

	return live
}

// Cards returns all community cards on the live boards
func (b *Boards) Cards() deck.Cards {
	cards := deck.Cards{}
	for _, board := range b.Live() {
		cards = append(cards, board.Cards...)
	}

	return cards
}

// Clear removes every board and returns all the cards that were on them
func (b *Boards) Clear() deck.Cards {
	cards := deck.Cards{}
	for _, board := range b.boards {
		cards = append(cards, board.Cards...)
	}

	b.boards = nil
	return cards
}

// MarshalJSON encodes the boards in creation order
func (b *Boards) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.All())
}
