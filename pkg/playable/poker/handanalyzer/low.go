package handanalyzer

import (
	"sort"

	"pokerengine/pkg/deck"
)

// group is a rank and how many cards of it a hand holds
type group struct {
	rank  int
	count int
}

// groupRanks orders ranks by group size, then by rank, both descending
func groupRanks(counts map[int]int) []group {
	groups := make([]group, 0, len(counts))
	for rank, count := range counts {
		groups = append(groups, group{rank: rank, count: count})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}

		return groups[i].rank > groups[j].rank
	})

	return groups
}

// pairing returns the paired category of the groups
func pairing(groups []group) Hand {
	if len(groups) == 0 {
		return HighCard
	}

	switch groups[0].count {
	case 1:
		return HighCard
	case 2:
		if len(groups) > 1 && groups[1].count == 2 {
			return TwoPair
		}

		return OnePair
	case 3:
		if len(groups) > 1 && groups[1].count >= 2 {
			return FullHouse
		}

		return ThreeOfAKind
	case 4:
		return FourOfAKind
	}

	return FiveOfAKind
}

// lowAceToFive evaluates an ace-to-five low hand, where straights and flushes do not count
// Wilds become the lowest ranks the hand does not hold
func lowAceToFive(naturals deck.Cards, wilds int) (Hand, []int) {
	counts := rankCounts(naturals, true)
	for r := deck.LowAce; r <= deck.King && wilds > 0; r++ {
		if counts[r] == 0 {
			counts[r] = 1
			wilds--
		}
	}

	groups := groupRanks(counts)
	hand := pairing(groups)
	values := []int{int(hand)}
	for _, g := range groups {
		values = append(values, g.rank)
	}

	return hand, values
}

// lowDeuceToSeven evaluates a deuce-to-seven low hand: the worst high hand wins
// Aces are high and there is no wheel. Wilds try every card and keep the lowest result
func lowDeuceToSeven(naturals deck.Cards, wilds int, opts Options) (Hand, Score) {
	opts.NoWheel = true
	if wilds == 0 {
		h, _ := high(naturals, 0, opts, nil)
		return h.hand, negate(h.score(opts))
	}

	var bestHand Hand
	var best Score
	for r := opts.lowRank(); r <= deck.Ace; r++ {
		for _, suit := range deck.StandardSuits {
			hand, score := lowDeuceToSeven(append(naturals.Clone(), deck.NewCard(r, suit)), wilds-1, opts)
			if best == nil || score.Beats(best) {
				bestHand, best = hand, score
			}
		}
	}

	return bestHand, best
}

// badugi evaluates up to four cards as a badugi hand
// The largest set of cards with no shared rank or suit plays, and the lowest such set wins among equals
// Wilds add the lowest rank the set is missing
func badugi(naturals deck.Cards, wilds int) (int, []int) {
	var bestCount int
	var bestRanks []int
	var best Score

	n := len(naturals)
	for mask := 0; mask < 1<<n; mask++ {
		ranks := make(map[int]bool)
		suits := make(map[deck.Suit]bool)
		valid := true
		for i := 0; i < n; i++ {
			if mask&(1<<i) == 0 {
				continue
			}

			c := naturals[i]
			if ranks[c.AceLowRank()] || suits[c.Suit] {
				valid = false
				break
			}

			ranks[c.AceLowRank()] = true
			suits[c.Suit] = true
		}

		if !valid {
			continue
		}

		for w, r := wilds, deck.LowAce; w > 0 && len(ranks) < 4 && r <= deck.King; r++ {
			if !ranks[r] {
				ranks[r] = true
				w--
			}
		}

		values := make([]int, 0, len(ranks))
		for r := range ranks {
			values = append(values, r)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(values)))

		score := append(Score{len(values)}, negate(values)...)
		if best == nil || score.Beats(best) {
			best = score
			bestCount = len(values)
			bestRanks = values
		}
	}

	return bestCount, bestRanks
}
