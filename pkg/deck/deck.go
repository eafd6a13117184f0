package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand"

	"pokerengine/internal/rng"
)

// ErrEndOfDeck is an error when Draw() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// Kind is the composition of a deck
type Kind string

// deck kinds
const (
	// Standard is a 52-card deck
	Standard Kind = "standard"
	// Short6A is a 36-card deck with ranks six through ace
	Short6A Kind = "short_6a"
	// ShortTA is a 20-card deck with ranks ten through ace
	ShortTA Kind = "short_ta"
	// Die is a six-sided die, modeled as six cards that are reshuffled every roll
	Die Kind = "die"
)

// MinRank returns the lowest natural rank in a deck of this kind
func (k Kind) MinRank() int {
	switch k {
	case Short6A:
		return 6
	case ShortTA:
		return 10
	case Die:
		return 1
	}

	return 2
}

// Valid returns true if the kind is known
func (k Kind) Valid() bool {
	switch k {
	case Standard, Short6A, ShortTA, Die:
		return true
	}

	return false
}

// Deck represents a playing deck
type Deck struct {
	Cards   Cards `json:"cards"`
	kind    Kind
	jokers  int
	stacked Cards
	seed    int64
	rng     *rand.Rand
}

// New returns a new standard deck of cards
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New() *Deck {
	d, _ := NewOfKind(Standard, 0)
	return d
}

// NewOfKind returns a new unshuffled deck of the specified kind with additional jokers
func NewOfKind(kind Kind, jokers int) (*Deck, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown deck type: %s", kind)
	}

	if jokers < 0 || (kind == Die && jokers > 0) {
		return nil, fmt.Errorf("invalid number of jokers: %d", jokers)
	}

	d := &Deck{
		kind:   kind,
		jokers: jokers,
		seed:   -1,
	}

	d.buildDeck()
	return d, nil
}

// NewStacked returns a deck that deals the cards in the specified order
// Shuffling a stacked deck restores the original order, so hands are fully reproducible
func NewStacked(kind Kind, cards Cards) *Deck {
	d := &Deck{
		kind:    kind,
		stacked: cards.Clone(),
		seed:    -1,
	}

	d.buildDeck()
	return d
}

// Kind returns the deck's composition
func (d *Deck) Kind() Kind {
	return d.kind
}

// Size returns the number of cards in a full deck
func (d *Deck) Size() int {
	if d.stacked != nil {
		return len(d.stacked)
	}

	switch d.kind {
	case Die:
		return 6
	case Standard:
		return 52 + d.jokers
	}

	return (15-d.kind.MinRank())*4 + d.jokers
}

// SetSeed will set the seed
// This should only be used by tests. Setting the seed is normally handled when you call Shuffle()
func (d *Deck) SetSeed(seed int64) {
	d.seed = seed
	d.rng = rand.New(rand.NewSource(seed))
}

func (d *Deck) buildDeck() {
	if d.stacked != nil {
		d.Cards = d.stacked.Clone()
		return
	}

	if d.kind == Die {
		cards := make(Cards, 0, 6)
		for rank := 1; rank <= 6; rank++ {
			cards = append(cards, Card{Rank: rank, Suit: DieSuit})
		}

		d.Cards = cards
		return
	}

	cards := make(Cards, 0, d.Size())
	for _, suit := range StandardSuits {
		for rank := d.kind.MinRank(); rank <= Ace; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}

	for i := 0; i < d.jokers; i++ {
		cards = append(cards, Joker())
	}

	d.Cards = cards
}

// Shuffle will rebuild and shuffle the deck of cards
// You can manually specify the seed, or you can leave it as 0 to use a random seed.
func (d *Deck) Shuffle(seed int64) {
	if seed < 0 {
		panic("seed cannot be < 0")
	}

	d.buildDeck()

	if seed == 0 {
		seed = rng.Crypto{}.Seed()
	}

	d.SetSeed(seed)
	if d.stacked != nil {
		return
	}

	d.shuffle(d.Cards)
}

func (d *Deck) shuffle(cards Cards) {
	if d.rng == nil {
		d.SetSeed(rng.Crypto{}.Seed())
	}

	for j := len(cards) - 1; j > 0; j-- {
		i := d.rng.Intn(j + 1)

		cards[i], cards[j] = cards[j], cards[i]
	}
}

// ShuffleDiscards will shuffle the discards and place them under the remaining cards
// Discards are reset to face down and natural
func (d *Deck) ShuffleDiscards(discards Cards) {
	cards := make(Cards, len(discards))
	for i, card := range discards {
		cards[i] = card.Natural()
	}

	if d.stacked == nil {
		d.shuffle(cards)
	}

	d.Cards = append(d.Cards, cards...)
}

// GetSeed returns the seed used to shuffle the deck
func (d *Deck) GetSeed() int64 {
	return d.seed
}

// HashCode returns a SHA1 hash code of the deck.
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.Cards {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil)[:])
}

// Draw will draw the next card
// If there are no more cards, an ErrEndOfDeck is returned
func (d *Deck) Draw() (Card, error) {
	if len(d.Cards) <= 0 {
		return Card{}, ErrEndOfDeck
	}

	card := d.Cards[0]
	d.Cards = d.Cards[1:]

	return card, nil
}

// CanDraw returns true if there are at least n cards left in the deck
func (d *Deck) CanDraw(n int) bool {
	return len(d.Cards) >= n
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}
