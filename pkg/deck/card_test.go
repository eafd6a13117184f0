package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_constants(t *testing.T) {
	assert.Equal(t, 11, Jack)
	assert.Equal(t, 12, Queen)
	assert.Equal(t, 13, King)
	assert.Equal(t, 14, Ace)
}

func TestCard_String(t *testing.T) {
	a := assert.New(t)

	a.Equal("2h", NewCard(2, Hearts).String())
	a.Equal("Jc", NewCard(Jack, Clubs).String())
	a.Equal("Td", NewCard(10, Diamonds).String())
	a.Equal("As", NewCard(Ace, Spades).String())
	a.Equal("Jk", Joker().String())
	a.Equal("D4", Card{Rank: 4, Suit: DieSuit}.String())

	a.Equal("K♠", NewCard(King, Spades).Symbol())
	a.Equal("Q♢", NewCard(Queen, Diamonds).Symbol())
}

func TestParseCard(t *testing.T) {
	a := assert.New(t)

	c, err := ParseCard("As")
	a.NoError(err)
	a.Equal(NewCard(Ace, Spades), c)

	c, err = ParseCard("10h")
	a.NoError(err)
	a.Equal(NewCard(10, Hearts), c)

	c, err = ParseCard("14c")
	a.NoError(err)
	a.Equal(NewCard(Ace, Clubs), c)

	c, err = ParseCard("!2d")
	a.NoError(err)
	a.Equal(Wild, c.WildType)
	a.True(c.IsWild())

	c, err = ParseCard("jk")
	a.NoError(err)
	a.True(c.IsJoker())

	c, err = ParseCard("D6")
	a.NoError(err)
	a.True(c.IsDie())
	a.Equal(6, c.Rank)

	for _, bad := range []string{"", "1s", "15h", "Ax", "D7", "AsKs"} {
		_, err := ParseCard(bad)
		a.Error(err, bad)
	}

	a.Panics(func() {
		CardFromString("zz")
	})
}

func TestParseCards(t *testing.T) {
	a := assert.New(t)

	cards, err := ParseCards("As,Kd 2c")
	a.NoError(err)
	a.Equal(Cards{NewCard(Ace, Spades), NewCard(King, Diamonds), NewCard(2, Clubs)}, cards)

	_, err = ParseCards("As,Kx")
	a.Error(err)

	a.Equal("!As,Kd", CardsFromString("!As,Kd").String())
}

func TestParseRank(t *testing.T) {
	a := assert.New(t)

	for s, want := range map[string]int{"2": 2, "T": 10, "10": 10, "j": Jack, "Q": Queen, "K": King, "A": Ace, "14": Ace} {
		got, err := ParseRank(s)
		a.NoError(err, s)
		a.Equal(want, got, s)
	}

	_, err := ParseRank("1")
	a.Error(err)
	_, err = ParseRank("X")
	a.Error(err)
}

func TestCard_transitions(t *testing.T) {
	a := assert.New(t)

	c := NewCard(7, Hearts)
	up := c.WithVisibility(FaceUp)
	a.False(c.IsFaceUp(), "original must not change")
	a.True(up.IsFaceUp())

	w := up.WithWildType(PrivateWild)
	a.True(w.IsWild())
	a.True(w.Equal(c))
	a.Equal(c, w.Natural())

	a.Equal(LowAce, NewCard(Ace, Clubs).AceLowRank())
	a.Equal(5, NewCard(5, Clubs).AceLowRank())
}

func TestSuit_Order(t *testing.T) {
	a := assert.New(t)
	a.Less(Clubs.Order(), Diamonds.Order())
	a.Less(Diamonds.Order(), Hearts.Order())
	a.Less(Hearts.Order(), Spades.Order())
	a.Equal(-1, JokerSuit.Order())
}
