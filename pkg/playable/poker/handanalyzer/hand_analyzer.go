package handanalyzer

import (
	"fmt"
	"sort"
	"strings"

	"pokerengine/pkg/deck"
	"pokerengine/pkg/rules"
)

// Options adjust an evaluation to the deck and the contest
type Options struct {
	// LowRank is the lowest natural rank in the deck, i.e., 6 in a short deck. 0 means 2
	LowRank int

	// NoWheel disallows the ace-low straight
	NoWheel             bool
	FlushBeatsFullHouse bool

	// Suit is the suit of a suit_high contest
	Suit         deck.Suit
	FaceDownOnly bool

	// Qualifier is the highest rank a low hand may hold. 0 means any low plays
	Qualifier int
}

func (o Options) lowRank() int {
	if o.LowRank < 2 {
		return 2
	}

	return o.LowRank
}

// OptionsFor returns the options for a contest played with the deck kind
// A "river" suit must be resolved by the caller
func OptionsFor(bh rules.BestHand, kind deck.Kind) Options {
	o := Options{
		LowRank:             kind.MinRank(),
		FlushBeatsFullHouse: bh.FlushBeatsFullHouse,
		FaceDownOnly:        bh.FaceDownOnly,
	}

	if len(bh.Qualifier) > 0 {
		o.Qualifier = bh.Qualifier[0]
	}

	if bh.Suit != "" && bh.Suit != rules.RiverSuit {
		o.Suit = deck.Suit(bh.Suit)
	}

	return o
}

// Result is an evaluated hand
type Result struct {
	Evaluation  rules.EvaluationType `json:"evaluation"`
	Hand        Hand                 `json:"-"`
	Score       Score                `json:"score"`
	Cards       deck.Cards           `json:"cards"`
	Description string               `json:"description"`
}

// Beats returns true if r is a better hand than o
func (r Result) Beats(o Result) bool {
	return r.Score.Beats(o.Score)
}

// Ties returns true if both hands are equal
func (r Result) Ties(o Result) bool {
	return r.Score.Compare(o.Score) == 0
}

// split separates the naturals from the wild cards
// Jokers that were not made wild play as bugs. Die faces are never part of a hand
func split(cards deck.Cards) (naturals deck.Cards, wilds, bugs int) {
	naturals = make(deck.Cards, 0, len(cards))
	for _, c := range cards {
		if c.IsDie() {
			continue
		}

		switch c.WildType {
		case deck.Wild, deck.PrivateWild:
			wilds++
		case deck.Bug:
			bugs++
		default:
			if c.IsJoker() {
				bugs++
			} else {
				naturals = append(naturals, c)
			}
		}
	}

	return naturals, wilds, bugs
}

// Evaluate scores exactly the given cards
// false is returned if the cards do not make a hand of the type, or do not qualify
func Evaluate(eval rules.EvaluationType, cards deck.Cards, opts Options) (Result, bool) {
	naturals, wilds, bugs := split(cards)
	if len(naturals)+wilds+bugs == 0 {
		return Result{}, false
	}

	r := Result{Evaluation: eval, Cards: sortCards(cards)}
	switch eval {
	case rules.EvalHigh:
		h, ok := highWithBugs(naturals, wilds, bugs, opts)
		if !ok {
			return Result{}, false
		}

		r.Hand = h.hand
		r.Score = h.score(opts)
		r.Description = fmt.Sprintf("%s (%s)", h.hand, joinCards(r.Cards))
	case rules.EvalA5Low:
		hand, values := lowAceToFive(naturals, wilds+bugs)
		if opts.Qualifier > 0 && (hand != HighCard || values[1] > opts.Qualifier) {
			return Result{}, false
		}

		r.Hand = hand
		r.Score = negate(values)
		r.Description = describeLow(hand, values[1:], r.Cards)
	case rules.Eval27Low:
		hand, score := lowDeuceToSeven(naturals, wilds+bugs, opts)
		if opts.Qualifier > 0 && (hand != HighCard || -score[1] > opts.Qualifier) {
			return Result{}, false
		}

		r.Hand = hand
		r.Score = score
		r.Description = describeLow(hand, negate(score[1:]), r.Cards)
	case rules.EvalBadugi:
		count, ranks := badugi(naturals, wilds+bugs)
		r.Score = append(Score{count}, negate(ranks)...)
		if count == 4 {
			r.Description = "Badugi " + joinRanks(ranks)
		} else {
			r.Description = fmt.Sprintf("%d-card %s", count, joinRanks(ranks))
		}
	case rules.EvalSuitHigh:
		var best deck.Card
		found := false
		for _, c := range naturals {
			if c.Suit == opts.Suit && (!found || c.Rank > best.Rank) {
				best = c
				found = true
			}
		}

		if !found {
			return Result{}, false
		}

		r.Score = Score{best.Rank}
		r.Cards = deck.Cards{best}
		r.Description = fmt.Sprintf("High %s: %s", strings.TrimSuffix(string(opts.Suit), "s"), best)
	default:
		panic(fmt.Sprintf("unknown evaluation type: %s", eval))
	}

	return r, true
}

// highWithBugs evaluates a high hand where each bug is either an ace or a wild
// that may only complete a straight or a flush
func highWithBugs(naturals deck.Cards, wilds, bugs int, opts Options) (highHand, bool) {
	if bugs == 0 {
		return high(naturals, wilds, opts, nil)
	}

	var best highHand
	found := false

	var choose func(naturals deck.Cards, asWild, left int)
	choose = func(naturals deck.Cards, asWild, left int) {
		if left == 0 {
			var allow func(Hand) bool
			if asWild > 0 {
				allow = completesStraightOrFlush
			}

			h, ok := high(naturals, wilds+asWild, opts, allow)
			if ok && (!found || h.score(opts).Beats(best.score(opts))) {
				best = h
				found = true
			}

			return
		}

		for _, suit := range deck.StandardSuits {
			choose(append(naturals.Clone(), deck.NewCard(deck.Ace, suit)), asWild, left-1)
		}

		choose(naturals, asWild+1, left-1)
	}

	choose(naturals, 0, bugs)
	return best, found
}

func completesStraightOrFlush(h Hand) bool {
	switch h {
	case Straight, Flush, StraightFlush, RoyalFlush:
		return true
	}

	return false
}

// Best finds the best hand for the contest from the player's cards and the community cards
// false is returned if the player cannot make a qualifying hand
func Best(bh rules.BestHand, hole, community deck.Cards, opts Options) (Result, bool) {
	if bh.EvaluationType == rules.EvalSuitHigh {
		if opts.FaceDownOnly {
			hole = faceDown(hole)
		}

		return Evaluate(rules.EvalSuitHigh, hole, opts)
	}

	hole = withoutDice(hole)
	community = withoutDice(community)

	var best Result
	found := false
	consider := func(cards deck.Cards) {
		r, ok := Evaluate(bh.EvaluationType, cards, opts)
		if ok && (!found || r.Beats(best)) {
			best = r
			found = true
		}
	}

	if bh.HoleCards+bh.CommunityCards > 0 {
		if len(hole) < bh.HoleCards || len(community) < bh.CommunityCards {
			return Result{}, false
		}

		combinations(hole, bh.HoleCards, func(h deck.Cards) {
			combinations(community, bh.CommunityCards, func(c deck.Cards) {
				consider(append(h, c...))
			})
		})

		return best, found
	}

	pool := append(hole.Clone(), community...)
	size := bh.HandSize()
	if len(pool) < size {
		size = len(pool)
	}

	combinations(pool, size, consider)
	return best, found
}

// combinations calls fn with every k sized combination of cards
// Each call receives a new slice
func combinations(cards deck.Cards, k int, fn func(deck.Cards)) {
	if k > len(cards) || k < 0 {
		return
	}

	idx := make([]int, k)
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == k {
			combo := make(deck.Cards, k, k+5)
			for i, j := range idx {
				combo[i] = cards[j]
			}

			fn(combo)
			return
		}

		for i := start; i <= len(cards)-(k-depth); i++ {
			idx[depth] = i
			rec(i+1, depth+1)
		}
	}

	rec(0, 0)
}

func withoutDice(cards deck.Cards) deck.Cards {
	out := make(deck.Cards, 0, len(cards))
	for _, c := range cards {
		if !c.IsDie() {
			out = append(out, c)
		}
	}

	return out
}

func faceDown(cards deck.Cards) deck.Cards {
	out := make(deck.Cards, 0, len(cards))
	for _, c := range cards {
		if !c.IsFaceUp() {
			out = append(out, c)
		}
	}

	return out
}

// sortCards returns the cards highest rank first, with wild cards last
func sortCards(cards deck.Cards) deck.Cards {
	sorted := cards.Clone()
	sort.SliceStable(sorted, func(i, j int) bool {
		wi := sorted[i].IsWild() || sorted[i].IsJoker()
		wj := sorted[j].IsWild() || sorted[j].IsJoker()
		if wi != wj {
			return wj
		}

		return sorted[i].Rank > sorted[j].Rank
	})

	return sorted
}

func joinCards(cards deck.Cards) string {
	s := make([]string, len(cards))
	for i, c := range cards {
		s[i] = deck.CardToString(c)
	}

	return strings.Join(s, " ")
}

func joinRanks(ranks []int) string {
	s := make([]string, len(ranks))
	for i, r := range ranks {
		s[i] = deck.RankString(r)
	}

	return strings.Join(s, "-")
}

func describeLow(hand Hand, ranks []int, cards deck.Cards) string {
	if hand == HighCard {
		return joinRanks(ranks) + " low"
	}

	return fmt.Sprintf("%s (%s)", hand, joinCards(cards))
}
