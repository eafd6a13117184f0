package handanalyzer

import (
	"math/rand"
	"testing"

	"github.com/paulhankin/poker"
	"github.com/stretchr/testify/assert"
	"pokerengine/pkg/deck"
	"pokerengine/pkg/rules"
)

func evalHigh(t *testing.T, cards string, opts Options) Result {
	t.Helper()

	r, ok := Evaluate(rules.EvalHigh, deck.CardsFromString(cards), opts)
	if !ok {
		t.Fatalf("%s did not evaluate", cards)
	}

	return r
}

func TestEvaluate_high(t *testing.T) {
	tests := []struct {
		cards string
		hand  Hand
		score Score
	}{
		{"2c,3c,3d,3h,3s", FourOfAKind, Score{7, 3, 2}},
		{"Kc,Kd,5h,5s,9c", TwoPair, Score{2, 13, 5, 9}},
		{"As,2d,3c,4h,5s", Straight, Score{4, 5}},
		{"Tc,Jd,Qh,Ks,Ac", Straight, Score{4, 14}},
		{"9c,8d,!2h,6s,5c", Straight, Score{4, 9}},
		{"Kc,Kd,Kh,Ks,!3c", FiveOfAKind, Score{10, 13}},
		{"Ah,Kh,!2c,!3d,Th", RoyalFlush, Score{8, 14}},
		{"9h,8h,7h,6h,5h", StraightFlush, Score{8, 9}},
		{"Ah,9h,5h,2h,!Jc", Flush, Score{5, 14, 13, 9, 5, 2}},
		{"Ac,Ad,Kh,Ks,!2c", FullHouse, Score{6, 14, 13}},
		{"Ac,Kd,!Qh,8s,2c", OnePair, Score{1, 14, 13, 8, 2}},
		{"Ac,Kd,!Qh,!8s,2c", ThreeOfAKind, Score{3, 14, 13, 2}},
		{"Ac,Kd,Qh,8s,2c", HighCard, Score{0, 14, 13, 12, 8, 2}},
		{"Jk,Kc,Kd,7h,2s", OnePair, Score{1, 13, 14, 7, 2}},
		{"Jk,2h,5h,9h,Jh", Flush, Score{5, 14, 11, 9, 5, 2}},
		{"Jk,9c,8d,7h,6s", Straight, Score{4, 10}},
		{"!Jk,!Jk,!Jk,!Jk,!Jk", FiveOfAKind, Score{10, 14}},
	}

	for _, test := range tests {
		t.Run(test.cards, func(t *testing.T) {
			r := evalHigh(t, test.cards, Options{})
			assert.Equal(t, test.hand, r.Hand)
			assert.Equal(t, test.score, r.Score)
		})
	}
}

func TestEvaluate_highOptions(t *testing.T) {
	a := assert.New(t)

	flush := evalHigh(t, "6h,8h,9h,Jh,Kh", Options{FlushBeatsFullHouse: true, LowRank: 6})
	boat := evalHigh(t, "6c,6d,6s,9c,9d", Options{FlushBeatsFullHouse: true, LowRank: 6})
	a.True(flush.Beats(boat))

	flush = evalHigh(t, "6h,8h,9h,Jh,Kh", Options{})
	boat = evalHigh(t, "6c,6d,6s,9c,9d", Options{})
	a.True(boat.Beats(flush))

	// the short deck wheel
	r := evalHigh(t, "As,6d,7c,8h,9s", Options{LowRank: 6})
	a.Equal(Straight, r.Hand)
	a.Equal(Score{4, 9}, r.Score)

	r = evalHigh(t, "As,6d,7c,8h,9s", Options{})
	a.Equal(HighCard, r.Hand)

	r = evalHigh(t, "As,2d,3c,4h,5s", Options{NoWheel: true})
	a.Equal(HighCard, r.Hand)
}

func TestEvaluate_description(t *testing.T) {
	a := assert.New(t)

	r := evalHigh(t, "5c,Kh,5d,Kd,Ks", Options{})
	a.Equal("Full house (Kh Kd Ks 5c 5d)", r.Description)

	r = evalHigh(t, "9c,8d,!2h,6s,5c", Options{})
	a.Equal("Straight (9c 8d 6s 5c !2h)", r.Description)
}

func TestEvaluate_aceToFive(t *testing.T) {
	a := assert.New(t)

	wheel, ok := Evaluate(rules.EvalA5Low, deck.CardsFromString("As,2d,3c,4h,5s"), Options{})
	a.True(ok)
	a.Equal(Score{0, -5, -4, -3, -2, -1}, wheel.Score)
	a.Equal("5-4-3-2-A low", wheel.Description)

	wild, ok := Evaluate(rules.EvalA5Low, deck.CardsFromString("!Kc,2d,3c,4h,5s"), Options{})
	a.True(ok)
	a.True(wild.Ties(wheel))

	eight, ok := Evaluate(rules.EvalA5Low, deck.CardsFromString("8c,6d,4c,2h,As"), Options{Qualifier: 8})
	a.True(ok)
	a.True(wheel.Beats(eight))
	a.Equal("8-6-4-2-A low", eight.Description)

	_, ok = Evaluate(rules.EvalA5Low, deck.CardsFromString("9c,2d,3c,4h,5s"), Options{Qualifier: 8})
	a.False(ok)

	_, ok = Evaluate(rules.EvalA5Low, deck.CardsFromString("2c,2d,3c,4h,5s"), Options{Qualifier: 8})
	a.False(ok)

	paired, ok := Evaluate(rules.EvalA5Low, deck.CardsFromString("2c,2d,3c,4h,5s"), Options{})
	a.True(ok)
	a.Equal(OnePair, paired.Hand)
	a.True(eight.Beats(paired))

	// straights and flushes do not count
	flush, _ := Evaluate(rules.EvalA5Low, deck.CardsFromString("6h,5h,4h,3h,2h"), Options{})
	a.Equal(HighCard, flush.Hand)
	a.True(flush.Beats(eight))
}

func TestEvaluate_deuceToSeven(t *testing.T) {
	a := assert.New(t)

	nuts, ok := Evaluate(rules.Eval27Low, deck.CardsFromString("7c,5d,4h,3s,2c"), Options{})
	a.True(ok)
	a.Equal("7-5-4-3-2 low", nuts.Description)
	a.Equal(Score{0, -7, -5, -4, -3, -2}, nuts.Score)

	aceHigh, _ := Evaluate(rules.Eval27Low, deck.CardsFromString("Ac,2d,3h,4s,5c"), Options{})
	a.Equal(HighCard, aceHigh.Hand)
	a.True(nuts.Beats(aceHigh))

	straight, _ := Evaluate(rules.Eval27Low, deck.CardsFromString("8c,7d,6h,5s,4c"), Options{})
	kingHigh, _ := Evaluate(rules.Eval27Low, deck.CardsFromString("Kc,Qd,Jh,9s,8c"), Options{})
	a.Equal(Straight, straight.Hand)
	a.True(kingHigh.Beats(straight))

	wild, _ := Evaluate(rules.Eval27Low, deck.CardsFromString("!Kc,5d,4h,3s,2c"), Options{})
	a.True(wild.Ties(nuts))
}

func TestEvaluate_badugi(t *testing.T) {
	a := assert.New(t)

	four, ok := Evaluate(rules.EvalBadugi, deck.CardsFromString("Ac,2d,3h,4s"), Options{})
	a.True(ok)
	a.Equal(Score{4, -4, -3, -2, -1}, four.Score)
	a.Equal("Badugi 4-3-2-A", four.Description)

	three, _ := Evaluate(rules.EvalBadugi, deck.CardsFromString("Ac,2c,3h,4s"), Options{})
	a.Equal(Score{3, -4, -3, -1}, three.Score)
	a.Equal("3-card 4-3-A", three.Description)
	a.True(four.Beats(three))

	one, _ := Evaluate(rules.EvalBadugi, deck.CardsFromString("Kc,Kd,Kh,Ks"), Options{})
	a.Equal(Score{1, -13}, one.Score)

	king, _ := Evaluate(rules.EvalBadugi, deck.CardsFromString("Kc,2d,3h,4s"), Options{})
	a.True(four.Beats(king))
	a.True(king.Beats(three))
}

func TestBest_suitHigh(t *testing.T) {
	a := assert.New(t)

	bh := rules.BestHand{Name: "High Spade", EvaluationType: rules.EvalSuitHigh, Suit: "spades", FaceDownOnly: true}
	hole := deck.CardsFromString("As,Ks,2s,Ah")
	hole[0] = hole[0].WithVisibility(deck.FaceUp)

	r, ok := Best(bh, hole, nil, OptionsFor(bh, deck.Standard))
	a.True(ok)
	a.Equal(Score{13}, r.Score)
	a.Equal("High spade: Ks", r.Description)

	_, ok = Best(bh, deck.CardsFromString("Ah,Kd"), nil, OptionsFor(bh, deck.Standard))
	a.False(ok)
}

func TestBest_holdem(t *testing.T) {
	a := assert.New(t)

	bh := rules.BestHand{Name: "High Hand", EvaluationType: rules.EvalHigh, AnyCards: 5}
	r, ok := Best(bh, deck.CardsFromString("Ac,2c"), deck.CardsFromString("Ad,5c,Ah,2d,5h"), Options{})
	a.True(ok)
	a.Equal(FullHouse, r.Hand)
	a.Equal(Score{6, 14, 5}, r.Score)
	a.Equal(5, len(r.Cards))

	// the die face is not part of the hand
	r, ok = Best(bh, deck.CardsFromString("Ac,Kc"), deck.CardsFromString("D3,Qc,Jc,Tc"), Options{})
	a.True(ok)
	a.Equal(RoyalFlush, r.Hand)
}

func TestBest_omaha(t *testing.T) {
	a := assert.New(t)

	bh := rules.BestHand{Name: "High Hand", EvaluationType: rules.EvalHigh, HoleCards: 2, CommunityCards: 3}
	r, ok := Best(bh, deck.CardsFromString("As,Ks,2c,3d"), deck.CardsFromString("Qs,Js,Ts,4h,5h"), Options{})
	a.True(ok)
	a.Equal(RoyalFlush, r.Hand)

	// exactly two hole cards must play
	r, ok = Best(bh, deck.CardsFromString("As,2c,3d,4h"), deck.CardsFromString("Ks,Qs,Js,Ts,9s"), Options{})
	a.True(ok)
	a.Equal(HighCard, r.Hand)
	a.Equal(Score{0, 14, 13, 12, 11, 4}, r.Score)

	_, ok = Best(bh, deck.CardsFromString("As"), deck.CardsFromString("Ks,Qs,Js,Ts,9s"), Options{})
	a.False(ok)

	low := rules.BestHand{Name: "Low Hand", EvaluationType: rules.EvalA5Low, HoleCards: 2, CommunityCards: 3, Qualifier: []int{8}}
	r, ok = Best(low, deck.CardsFromString("As,2c,Kd,Kh"), deck.CardsFromString("3s,6d,8h,Qc,Jc"), OptionsFor(low, deck.Standard))
	a.True(ok)
	a.Equal("8-6-3-2-A low", r.Description)

	_, ok = Best(low, deck.CardsFromString("As,Qd,Kd,Kh"), deck.CardsFromString("3s,6d,8h,Qc,Jc"), OptionsFor(low, deck.Standard))
	a.False(ok)
}

func TestCombinations(t *testing.T) {
	a := assert.New(t)

	n := 0
	seen := make(map[string]bool)
	combinations(deck.CardsFromString("2c,3c,4c,5c,6c,7c,8c"), 5, func(c deck.Cards) {
		n++
		seen[c.String()] = true
	})

	a.Equal(21, n)
	a.Equal(21, len(seen))

	n = 0
	combinations(deck.CardsFromString("2c,3c"), 3, func(deck.Cards) { n++ })
	a.Equal(0, n)
}

func toOracle(t *testing.T, c deck.Card) poker.Card {
	t.Helper()

	suits := map[deck.Suit]poker.Suit{
		deck.Clubs:    poker.Club,
		deck.Diamonds: poker.Diamond,
		deck.Hearts:   poker.Heart,
		deck.Spades:   poker.Spade,
	}

	card, err := poker.MakeCard(suits[c.Suit], poker.Rank(c.AceLowRank()))
	if err != nil {
		t.Fatal(err)
	}

	return card
}

// TestBest_oracle compares seven card high hands against an independent evaluator
func TestBest_oracle(t *testing.T) {
	bh := rules.BestHand{Name: "High Hand", EvaluationType: rules.EvalHigh, AnyCards: 5}
	full := make(deck.Cards, 0, 52)
	for _, suit := range deck.StandardSuits {
		for rank := 2; rank <= deck.Ace; rank++ {
			full = append(full, deck.NewCard(rank, suit))
		}
	}

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		r.Shuffle(len(full), func(i, j int) { full[i], full[j] = full[j], full[i] })
		board := full[4:9]

		var ours [2]Result
		var theirs [2]int16
		for p := 0; p < 2; p++ {
			hole := full[p*2 : p*2+2]
			res, ok := Best(bh, hole, board, Options{})
			if !assert.True(t, ok) {
				return
			}

			ours[p] = res

			var seven [7]poker.Card
			for j, c := range append(hole.Clone(), board...) {
				seven[j] = toOracle(t, c)
			}

			theirs[p] = poker.Eval7(&seven)
		}

		want := 0
		if theirs[0] > theirs[1] {
			want = 1
		} else if theirs[0] < theirs[1] {
			want = -1
		}

		if !assert.Equal(t, want, ours[0].Score.Compare(ours[1].Score), "%s vs %s", ours[0].Description, ours[1].Description) {
			return
		}
	}
}

func TestScore(t *testing.T) {
	a := assert.New(t)

	a.Equal(1, Score{3, 5}.Compare(Score{3, 4}))
	a.Equal(-1, Score{2, 14}.Compare(Score{3}))
	a.Equal(0, Score{1, 2}.Compare(Score{1, 2}))
	a.Equal(1, Score{1, 2}.Compare(Score{1}))
	a.Equal("6.13.-5", Score{6, 13, -5}.String())
}
