package rules

// DeclarationMode is how players enter the contests at showdown
type DeclarationMode string

// declaration modes
const (
	CardsSpeak DeclarationMode = "cards_speak"
	Declare    DeclarationMode = "declare"
)

// EvaluationType is how a hand is ranked
type EvaluationType string

// evaluation types
const (
	EvalHigh EvaluationType = "high"
	// EvalA5Low is ace-to-five lowball, straights and flushes do not count
	EvalA5Low EvaluationType = "a5_low"
	// Eval27Low is deuce-to-seven lowball, aces are high and straights and flushes count
	Eval27Low EvaluationType = "27_low"
	EvalBadugi EvaluationType = "badugi"
	// EvalSuitHigh is the highest hole card of a suit
	EvalSuitHigh EvaluationType = "suit_high"
)

// IsLow returns true for lowball evaluations
func (e EvaluationType) IsLow() bool {
	return e == EvalA5Low || e == Eval27Low
}

// AnyBoard lets a best hand use whichever live board plays best
const AnyBoard = "any"

// RiverSuit makes the suit of a suit_high hand the suit of the last community card
const RiverSuit = "river"

// BestHand describes one contest at showdown
type BestHand struct {
	Name           string         `json:"name"`
	EvaluationType EvaluationType `json:"evaluationType"`

	// AnyCards is the number of cards used from any combination of hole and community cards
	AnyCards int `json:"anyCards,omitempty"`
	// HoleCards and CommunityCards require exact numbers from each source (i.e., Omaha)
	HoleCards      int `json:"holeCards,omitempty"`
	CommunityCards int `json:"communityCards,omitempty"`

	// Qualifier is the highest rank a low hand may have, i.e., [8] for eight-or-better
	Qualifier []int `json:"qualifier,omitempty"`

	HoleSubset string `json:"holeSubset,omitempty"`
	Board      string `json:"board,omitempty"`
	Suit       string `json:"suit,omitempty"`

	FaceDownOnly        bool `json:"faceDownOnly,omitempty"`
	FlushBeatsFullHouse bool `json:"flushBeatsFullHouse,omitempty"`
}

// HandSize returns the number of cards in the evaluated hand
func (b BestHand) HandSize() int {
	if b.EvaluationType == EvalSuitHigh {
		return 1
	}

	if b.AnyCards > 0 {
		return b.AnyCards
	}

	if b.HoleCards+b.CommunityCards > 0 {
		return b.HoleCards + b.CommunityCards
	}

	if b.EvaluationType == EvalBadugi {
		return 4
	}

	return 5
}

// ConditionalBestHand replaces the default best hands when its condition matches
type ConditionalBestHand struct {
	Condition Condition  `json:"condition"`
	BestHand  []BestHand `json:"bestHand"`
}

// WildType is how a wild card is chosen
type WildType string

// wild types
const (
	WildJoker WildType = "joker"
	WildRank  WildType = "rank"
	// WildLowestHole makes each player's lowest hole card (and all cards of that rank they hold) wild
	WildLowestHole WildType = "lowest_hole"
)

// WildRole is what a wild card may stand for
type WildRole string

// wild roles
const (
	RoleWild WildRole = "wild"
	// RoleBug may only be an ace, or complete a straight or flush
	RoleBug WildRole = "bug"
)

// WildCard is a wild-card policy
// A rank policy uses Rank, or the value recorded under Subject (i.e., a die roll)
type WildCard struct {
	Type    WildType `json:"type"`
	Rank    string   `json:"rank,omitempty"`
	Subject string   `json:"subject,omitempty"`
	Role    WildRole `json:"role"`
}

// OddChip is who receives the odd chip of a split pot
type OddChip string

// odd chip policies
const (
	OddChipLeftOfButton OddChip = "left_of_button"
	OddChipLowestSeat   OddChip = "lowest_seat"
)

// Showdown is how a hand is decided
type Showdown struct {
	DeclarationMode      DeclarationMode       `json:"declarationMode"`
	BestHand             []BestHand            `json:"bestHand"`
	ConditionalBestHands []ConditionalBestHand `json:"conditionalBestHands,omitempty"`
	WildCards            []WildCard            `json:"wildCards,omitempty"`
	OddChip              OddChip               `json:"oddChip,omitempty"`
}

// BestHandsFor returns the contests in effect for the recorded choices
func (s Showdown) BestHandsFor(choices map[string]string) []BestHand {
	for _, cond := range s.ConditionalBestHands {
		c := cond.Condition
		if c.Matches(choices) {
			return cond.BestHand
		}
	}

	return s.BestHand
}

// HasWild returns true if the showdown uses the wild type
func (s Showdown) HasWild(t WildType) bool {
	for _, w := range s.WildCards {
		if w.Type == t {
			return true
		}
	}

	return false
}
