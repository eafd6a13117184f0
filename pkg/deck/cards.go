package deck

import (
	"strings"
)

// Cards is an ordered collection of cards
type Cards []Card

func (c Cards) Len() int {
	return len(c)
}

func (c Cards) Less(i, j int) bool {
	if cmp := strings.Compare(string(c[i].Suit), string(c[j].Suit)); cmp != 0 {
		return cmp < 0
	}

	return c[i].Rank < c[j].Rank
}

func (c Cards) Swap(i, j int) {
	c[i], c[j] = c[j], c[i]
}

// IndexOf returns the index of the first card equal to card, or -1
func (c Cards) IndexOf(card Card) int {
	for i, cc := range c {
		if cc.Equal(card) {
			return i
		}
	}

	return -1
}

// Contains returns true if every card in sub is present. Duplicates must be present as many times
func (c Cards) Contains(sub ...Card) bool {
	used := make([]bool, len(c))
	for _, want := range sub {
		found := false
		for i, have := range c {
			if !used[i] && have.Equal(want) {
				used[i] = true
				found = true
				break
			}
		}

		if !found {
			return false
		}
	}

	return true
}

// FirstCard returns the first card and true, or false if there are no cards
func (c Cards) FirstCard() (Card, bool) {
	if len(c) == 0 {
		return Card{}, false
	}

	return c[0], true
}

// LastCard returns the last card and true, or false if there are no cards
func (c Cards) LastCard() (Card, bool) {
	n := len(c)
	if n == 0 {
		return Card{}, false
	}

	return c[n-1], true
}

func (c Cards) String() string {
	s := make([]string, len(c))
	for i, card := range c {
		s[i] = CardToString(card)
	}

	return strings.Join(s, ",")
}

// Clone returns a clone of the cards
func (c Cards) Clone() Cards {
	c2 := make(Cards, len(c))
	copy(c2, c)

	return c2
}
