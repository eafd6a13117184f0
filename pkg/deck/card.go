package deck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Suit represents a card suit
type Suit string

// suit constants
const (
	Hearts   Suit = "hearts"
	Clubs    Suit = "clubs"
	Diamonds Suit = "diamonds"
	Spades   Suit = "spades"

	// JokerSuit is the suit of a joker. Jokers have a rank of 0
	JokerSuit Suit = "joker"
	// DieSuit is the suit of a die face. Die faces have ranks 1 through 6
	DieSuit Suit = "die"
)

// StandardSuits are the four suits of a standard deck in bring-in order (lowest first)
var StandardSuits = []Suit{Clubs, Diamonds, Hearts, Spades}

// Order returns the suit's position when breaking ties by suit (clubs lowest, spades highest)
func (s Suit) Order() int {
	switch s {
	case Clubs:
		return 0
	case Diamonds:
		return 1
	case Hearts:
		return 2
	case Spades:
		return 3
	}

	return -1
}

// Visibility is whether a card is seen by everyone or only its owner
type Visibility int

// visibility constants
const (
	FaceDown Visibility = iota
	FaceUp
)

func (v Visibility) String() string {
	if v == FaceUp {
		return "face up"
	}

	return "face down"
}

// WildType is how a card may substitute for other cards
type WildType int

// wild type constants
const (
	NotWild WildType = iota
	// Wild substitutes for any card. Everyone knows it is wild
	Wild
	// PrivateWild substitutes for any card, but only its owner knows it is wild (i.e., low hole card)
	PrivateWild
	// Bug may only be used as an ace, or to complete a straight or a flush
	Bug
)

func (w WildType) String() string {
	switch w {
	case Wild:
		return "wild"
	case PrivateWild:
		return "private wild"
	case Bug:
		return "bug"
	}

	return "natural"
}

// Card is an individual playing card
// Card is a value: changing visibility or wildness returns a new Card
type Card struct {
	Rank       int        `json:"rank"`
	Suit       Suit       `json:"suit"`
	Visibility Visibility `json:"visibility"`
	WildType   WildType   `json:"wildType"`
}

// face cards
const (
	Jack    = 11
	Queen   = 12
	King    = 13
	Ace     = 14
	HighAce = Ace
	LowAce  = 1
)

// NewCard returns a face-down natural card
func NewCard(rank int, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// Joker returns a face-down joker
func Joker() Card {
	return Card{Suit: JokerSuit}
}

// IsWild returns true if the card may substitute for another card
func (c Card) IsWild() bool {
	return c.WildType != NotWild
}

// IsJoker returns true if the card is a joker
func (c Card) IsJoker() bool {
	return c.Suit == JokerSuit
}

// IsDie returns true if the card is a die face
func (c Card) IsDie() bool {
	return c.Suit == DieSuit
}

// IsFaceUp returns true if the card is visible to everyone
func (c Card) IsFaceUp() bool {
	return c.Visibility == FaceUp
}

// WithVisibility returns a copy of the card with the specified visibility
func (c Card) WithVisibility(v Visibility) Card {
	c.Visibility = v
	return c
}

// WithWildType returns a copy of the card with the specified wild type
func (c Card) WithWildType(w WildType) Card {
	c.WildType = w
	return c
}

// Natural returns the card without visibility or wildness, which is its identity
func (c Card) Natural() Card {
	return Card{Rank: c.Rank, Suit: c.Suit}
}

// Equal returns true if the cards are equal (matches suit and rank)
func (c Card) Equal(card Card) bool {
	return c.Suit == card.Suit && c.Rank == card.Rank
}

// AceLowRank return the rank where Ace is considered low instead of high
func (c Card) AceLowRank() int {
	if c.Rank == Ace {
		return LowAce
	}

	return c.Rank
}

// RankString returns the short name of a rank, i.e., "T" or "A"
func RankString(rank int) string {
	switch rank {
	case 10:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace, LowAce:
		return "A"
	default:
		return strconv.Itoa(rank)
	}
}

// String returns the short form of the card, i.e., "As", "Td", "Jk"
func (c Card) String() string {
	switch c.Suit {
	case JokerSuit:
		return "Jk"
	case DieSuit:
		return fmt.Sprintf("D%d", c.Rank)
	}

	return RankString(c.Rank) + string(c.Suit[0])
}

// Symbol returns the card with a unicode suit, i.e., "A♠"
func (c Card) Symbol() string {
	var suit string
	switch c.Suit {
	case Clubs:
		suit = "♣"
	case Diamonds:
		suit = "♢"
	case Hearts:
		suit = "♡"
	case Spades:
		suit = "♠"
	case JokerSuit:
		return "🃏"
	case DieSuit:
		return fmt.Sprintf("⚀%d", c.Rank)
	default:
		panic("unknown suit")
	}

	return RankString(c.Rank) + suit
}

var cardRx = regexp.MustCompile(`(?i)^(!)?(10|1[1-4]|[2-9]|[tjqka])([cdhs])\z`)
var jokerRx = regexp.MustCompile(`(?i)^(!)?(jk|joker|\*)\z`)
var dieRx = regexp.MustCompile(`(?i)^d([1-6])\z`)

// ParseRank converts a rank token (2-9, T, 10, J, Q, K, A, or 2-14) into a rank
func ParseRank(s string) (int, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "T":
		return 10, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	case "A":
		return Ace, nil
	}

	rank, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || rank < 2 || rank > Ace {
		return 0, fmt.Errorf("invalid rank: %s", s)
	}

	return rank, nil
}

// ParseCard returns a Card from the string
// The format is <rank><suit> where rank is 2-9, T, J, Q, K, A (or 2-14) and suit in [cdhs].
// "Jk" is a joker and "D1" through "D6" are die faces. A "!" prefix marks the card as wild
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if match := jokerRx.FindStringSubmatch(s); match != nil {
		c := Joker()
		if match[1] == "!" {
			c.WildType = Wild
		}

		return c, nil
	}

	if match := dieRx.FindStringSubmatch(s); match != nil {
		rank, _ := strconv.Atoi(match[1])
		return Card{Rank: rank, Suit: DieSuit}, nil
	}

	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		return Card{}, fmt.Errorf("could not parse card: %s", s)
	}

	rank, err := ParseRank(match[2])
	if err != nil {
		return Card{}, fmt.Errorf("could not parse card `%s`: %w", s, err)
	}

	var suit Suit
	switch strings.ToLower(match[3]) {
	case "c":
		suit = Clubs
	case "d":
		suit = Diamonds
	case "h":
		suit = Hearts
	case "s":
		suit = Spades
	}

	c := Card{Rank: rank, Suit: suit}
	if match[1] == "!" {
		c.WildType = Wild
	}

	return c, nil
}

// CardFromString returns a Card from the string and panics if it cannot be parsed
// This is intended for tests and fixtures. Use ParseCard for user input
func CardFromString(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}

	return c
}

// ParseCards parses a comma (or space) separated list of cards
func ParseCards(s string) (Cards, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' '
	})

	cards := make(Cards, 0, len(fields))
	for _, field := range fields {
		c, err := ParseCard(field)
		if err != nil {
			return nil, err
		}

		cards = append(cards, c)
	}

	return cards, nil
}

// CardsFromString will returns a slice of cards and panics on bad input
func CardsFromString(s string) Cards {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}

	return cards
}

// CardToString converts a card to its parseable form, i.e., "!As" for a wild ace of spades
func CardToString(card Card) string {
	if card.IsWild() {
		return "!" + card.String()
	}

	return card.String()
}
