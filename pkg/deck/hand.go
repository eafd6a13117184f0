package deck

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Unassigned is the subset a card belongs to until it is separated
const Unassigned = ""

type slot struct {
	card   Card
	subset string
}

// Hand represents a player's cards
// Every card belongs to exactly one subset, so subset sizes always sum to the hand size
type Hand struct {
	slots []slot
}

// NewHand returns a hand containing the cards
func NewHand(cards ...Card) *Hand {
	h := &Hand{}
	for _, c := range cards {
		h.AddCard(c)
	}

	return h
}

// AddCard adds a card to the hand
func (h *Hand) AddCard(card Card) {
	h.slots = append(h.slots, slot{card: card})
}

// Len returns the number of cards in the hand
func (h *Hand) Len() int {
	return len(h.slots)
}

// Card returns the card at index i
func (h *Hand) Card(i int) Card {
	return h.slots[i].card
}

// Cards returns a copy of all cards in deal order
func (h *Hand) Cards() Cards {
	cards := make(Cards, len(h.slots))
	for i, s := range h.slots {
		cards[i] = s.card
	}

	return cards
}

// FaceUp returns the cards everyone can see
func (h *Hand) FaceUp() Cards {
	return h.filter(func(s slot) bool { return s.card.IsFaceUp() })
}

// FaceDown returns the cards only the owner can see
func (h *Hand) FaceDown() Cards {
	return h.filter(func(s slot) bool { return !s.card.IsFaceUp() })
}

func (h *Hand) filter(fn func(s slot) bool) Cards {
	cards := make(Cards, 0, len(h.slots))
	for _, s := range h.slots {
		if fn(s) {
			cards = append(cards, s.card)
		}
	}

	return cards
}

// HasCard returns true if the hand contains the specified card
func (h *Hand) HasCard(card Card) bool {
	return h.indexOf(card, nil) >= 0
}

// Contains returns true if all the cards are in the hand (duplicates must appear as many times)
func (h *Hand) Contains(cards Cards) bool {
	_, err := h.indices(cards)
	return err == nil
}

func (h *Hand) indexOf(card Card, used map[int]bool) int {
	for i, s := range h.slots {
		if !used[i] && s.card.Equal(card) {
			return i
		}
	}

	return -1
}

func (h *Hand) indices(cards Cards) ([]int, error) {
	used := make(map[int]bool, len(cards))
	idx := make([]int, 0, len(cards))
	for _, c := range cards {
		i := h.indexOf(c, used)
		if i < 0 {
			return nil, fmt.Errorf("card %s is not in the hand", c)
		}

		used[i] = true
		idx = append(idx, i)
	}

	return idx, nil
}

// Remove removes the specified cards and returns them as they were held
// Nothing is removed if any card is missing
func (h *Hand) Remove(cards Cards) (Cards, error) {
	idx, err := h.indices(cards)
	if err != nil {
		return nil, err
	}

	remove := make(map[int]bool, len(idx))
	removed := make(Cards, 0, len(idx))
	for _, i := range idx {
		remove[i] = true
		removed = append(removed, h.slots[i].card)
	}

	slots := make([]slot, 0, len(h.slots)-len(idx))
	for i, s := range h.slots {
		if !remove[i] {
			slots = append(slots, s)
		}
	}

	h.slots = slots
	return removed, nil
}

// Expose turns the specified cards face up
// Nothing is changed if any card is missing
func (h *Hand) Expose(cards Cards) error {
	idx, err := h.indices(cards)
	if err != nil {
		return err
	}

	for _, i := range idx {
		h.slots[i].card = h.slots[i].card.WithVisibility(FaceUp)
	}

	return nil
}

// Update replaces every card with the result of fn
// Only visibility and wildness may change. The identity of the card must stay the same
func (h *Hand) Update(fn func(c Card) Card) {
	for i, s := range h.slots {
		updated := fn(s.card)
		if !updated.Equal(s.card) {
			panic(fmt.Sprintf("hand update changed card %s into %s", s.card, updated))
		}

		h.slots[i].card = updated
	}
}

// Assign moves the specified cards into the named subset
// Nothing is changed if any card is missing
func (h *Hand) Assign(subset string, cards Cards) error {
	idx, err := h.indices(cards)
	if err != nil {
		return err
	}

	for _, i := range idx {
		h.slots[i].subset = subset
	}

	return nil
}

// Subset returns the cards in the named subset
func (h *Hand) Subset(name string) Cards {
	return h.filter(func(s slot) bool { return s.subset == name })
}

// SubsetSizes returns the size of each non-empty subset
func (h *Hand) SubsetSizes() map[string]int {
	sizes := make(map[string]int)
	for _, s := range h.slots {
		sizes[s.subset]++
	}

	return sizes
}

// SubsetNames returns the names of the non-empty subsets, sorted
func (h *Hand) SubsetNames() []string {
	sizes := h.SubsetSizes()
	names := make([]string, 0, len(sizes))
	for name := range sizes {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Clear removes all cards and returns them
func (h *Hand) Clear() Cards {
	cards := h.Cards()
	h.slots = nil

	return cards
}

// Clone returns a deep copy of the hand
func (h *Hand) Clone() *Hand {
	slots := make([]slot, len(h.slots))
	copy(slots, h.slots)

	return &Hand{slots: slots}
}

func (h *Hand) String() string {
	return h.Cards().String()
}

type handJSON struct {
	Cards   Cards    `json:"cards"`
	Subsets []string `json:"subsets,omitempty"`
}

// MarshalJSON encodes the cards and, if the hand was separated, the subset of each card
func (h *Hand) MarshalJSON() ([]byte, error) {
	out := handJSON{Cards: h.Cards()}
	if len(h.SubsetSizes()) > 1 || (h.Len() > 0 && h.slots[0].subset != Unassigned) {
		out.Subsets = make([]string, len(h.slots))
		for i, s := range h.slots {
			out.Subsets[i] = s.subset
		}
	}

	return json.Marshal(out)
}
