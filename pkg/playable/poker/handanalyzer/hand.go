package handanalyzer

import "fmt"

// Hand is a poker hand, i.e., royal flush
type Hand int

// Constants for hand
const (
	HighCard Hand = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
	FiveOfAKind
)

// String returns the string representation of a hand
func (h Hand) String() string {
	switch h {
	case HighCard:
		return "High card"
	case OnePair:
		return "Pair"
	case TwoPair:
		return "Two pair"
	case ThreeOfAKind:
		return "Three of a kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full house"
	case FourOfAKind:
		return "Four of a kind"
	case StraightFlush:
		return "Straight flush"
	case RoyalFlush:
		return "Royal flush"
	case FiveOfAKind:
		return "Five of a kind"
	default:
		panic(fmt.Sprintf("unknown hand: %d", h))
	}
}

// order returns the strength of the hand category
// A royal flush is the best straight flush, not a separate category
func (h Hand) order(flushBeatsFullHouse bool) int {
	if flushBeatsFullHouse {
		switch h {
		case Flush:
			return int(FullHouse)
		case FullHouse:
			return int(Flush)
		}
	}

	if h == RoyalFlush {
		return int(StraightFlush)
	}

	return int(h)
}
