package handanalyzer

import (
	"sort"

	"pokerengine/pkg/deck"
)

// shape is a hand category expressed as groups of equal rank
// Trailing kickers are dropped when fewer cards are evaluated
type shape struct {
	hand    Hand
	groups  []int
	minSize int
}

var shapes = []shape{
	{FiveOfAKind, []int{5}, 5},
	{FourOfAKind, []int{4, 1}, 4},
	{FullHouse, []int{3, 2}, 5},
	{ThreeOfAKind, []int{3, 1, 1}, 3},
	{TwoPair, []int{2, 2, 1}, 4},
	{OnePair, []int{2, 1, 1, 1}, 2},
	{HighCard, []int{1, 1, 1, 1, 1}, 1},
}

// highHand is the best category (and its ranks) a set of cards can make
type highHand struct {
	hand   Hand
	values []int
}

// high evaluates naturals plus the given number of full wilds as a high hand
// allow limits which categories may be made. nil allows every category
func high(naturals deck.Cards, wilds int, opts Options, allow func(Hand) bool) (highHand, bool) {
	size := len(naturals) + wilds
	counts := rankCounts(naturals, false)

	var best highHand
	found := false
	try := func(h Hand, values []int) {
		if allow != nil && !allow(h) {
			return
		}

		if !found || h.order(opts.FlushBeatsFullHouse) > best.hand.order(opts.FlushBeatsFullHouse) {
			best = highHand{hand: h, values: values}
			found = true
		}
	}

	for _, s := range shapes {
		if size < s.minSize {
			continue
		}

		if values, ok := assign(trimGroups(s.groups, size), counts, opts.lowRank()); ok {
			try(s.hand, values)
		}
	}

	if size == 5 {
		flush, isFlush := flushValues(naturals, wilds, opts.lowRank())
		top, isStraight := straightTop(naturals, opts)
		if isFlush && isStraight {
			if top == deck.Ace {
				try(RoyalFlush, []int{top})
			} else {
				try(StraightFlush, []int{top})
			}
		}

		if isFlush {
			try(Flush, flush)
		}

		if isStraight {
			try(Straight, []int{top})
		}
	}

	return best, found
}

func (h highHand) score(opts Options) Score {
	return append(Score{h.hand.order(opts.FlushBeatsFullHouse)}, h.values...)
}

func trimGroups(groups []int, size int) []int {
	total := 0
	for i, g := range groups {
		if total+g > size {
			return groups[:i]
		}

		total += g
		if total == size {
			return groups[:i+1]
		}
	}

	return groups
}

// rankCounts counts the naturals by rank
func rankCounts(naturals deck.Cards, aceLow bool) map[int]int {
	counts := make(map[int]int)
	for _, c := range naturals {
		rank := c.Rank
		if aceLow {
			rank = c.AceLowRank()
		}

		counts[rank]++
	}

	return counts
}

// assign finds the best ranks for the groups such that every natural is used
// Wilds fill whatever the naturals leave open in each group
func assign(groups []int, counts map[int]int, low int) ([]int, bool) {
	ranks := make([]int, len(groups))
	used := make(map[int]bool)
	natural := len(counts)

	var search func(i, covered int) bool
	search = func(i, covered int) bool {
		if i == len(groups) {
			return covered == natural
		}

		if natural-covered > len(groups)-i {
			return false
		}

		hi := deck.Ace
		if i > 0 && groups[i] == groups[i-1] {
			hi = ranks[i-1] - 1
		}

		for r := hi; r >= low; r-- {
			if used[r] || counts[r] > groups[i] {
				continue
			}

			c := 0
			if counts[r] > 0 {
				c = 1
			}

			ranks[i] = r
			used[r] = true
			if search(i+1, covered+c) {
				return true
			}

			used[r] = false
		}

		return false
	}

	if !search(0, 0) {
		return nil, false
	}

	return ranks, true
}

// flushValues returns the ranks of the flush if every natural shares a suit
// Wilds become the highest ranks the flush is missing
func flushValues(naturals deck.Cards, wilds, low int) ([]int, bool) {
	have := make(map[int]bool)
	for i, c := range naturals {
		if i > 0 && c.Suit != naturals[0].Suit {
			return nil, false
		}

		have[c.Rank] = true
	}

	values := make([]int, 0, len(naturals)+wilds)
	for _, c := range naturals {
		values = append(values, c.Rank)
	}

	for r := deck.Ace; r >= low && wilds > 0; r-- {
		if !have[r] {
			values = append(values, r)
			wilds--
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(values)))
	return values, true
}

// straightTop returns the high card of the best straight the naturals fit in
// Wilds fill the gaps, so the naturals only need distinct ranks inside a five rank window
func straightTop(naturals deck.Cards, opts Options) (int, bool) {
	seen := make(map[int]bool)
	for _, c := range naturals {
		if seen[c.Rank] {
			return 0, false
		}

		seen[c.Rank] = true
	}

	low := opts.lowRank()
	fits := func(min, max int, aceLow bool) bool {
		for _, c := range naturals {
			rank := c.Rank
			if aceLow && rank == deck.Ace {
				continue
			}

			if rank < min || rank > max {
				return false
			}
		}

		return true
	}

	for top := deck.Ace; top-4 >= low; top-- {
		if fits(top-4, top, false) {
			return top, true
		}
	}

	// the wheel, i.e., A-2-3-4-5, or A-6-7-8-9 in a short deck
	if !opts.NoWheel && fits(low, low+3, true) {
		return low + 3, true
	}

	return 0, false
}
