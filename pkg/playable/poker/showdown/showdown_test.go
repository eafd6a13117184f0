package showdown

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"pokerengine/pkg/deck"
	"pokerengine/pkg/playable/poker/potmanager"
	"pokerengine/pkg/rules"
	"pokerengine/pkg/table"
)

type participant string

func (p participant) ID() string        { return string(p) }
func (participant) Balance() int        { return 0 }
func (participant) AdjustBalance(int)   {}
func (participant) SetAmountInPlay(int) {}

var (
	highHand = rules.BestHand{Name: "High Hand", EvaluationType: rules.EvalHigh, AnyCards: 5}
	lowHand  = rules.BestHand{Name: "Low Hand", EvaluationType: rules.EvalA5Low, AnyCards: 5}
)

func entrant(id string, seat int, cards string) Entrant {
	return Entrant{ID: id, Seat: seat, Hand: deck.NewHand(deck.CardsFromString(cards)...)}
}

func pot(amount int, ids ...string) *potmanager.Pot {
	eligible := make([]potmanager.Participant, len(ids))
	for i, id := range ids {
		eligible[i] = participant(id)
	}

	return &potmanager.Pot{Amount: amount, Eligible: eligible}
}

func boards(named map[string]string) *table.Boards {
	b := &table.Boards{}
	for _, name := range []string{table.DefaultBoard, "top", "middle", "bottom"} {
		if cards, ok := named[name]; ok {
			for _, c := range deck.CardsFromString(cards) {
				b.Add(name, c)
			}
		}
	}

	return b
}

func cardsSpeak(bestHands ...rules.BestHand) Input {
	return Input{
		Showdown:  rules.Showdown{DeclarationMode: rules.CardsSpeak, OddChip: rules.OddChipLeftOfButton},
		BestHands: bestHands,
		DeckKind:  deck.Standard,
		ChipUnit:  1,
	}
}

func TestDecide_holdem(t *testing.T) {
	a := assert.New(t)

	in := cardsSpeak(highHand)
	in.Boards = boards(map[string]string{table.DefaultBoard: "2c,7h,9s,Jd,3c"})
	in.Entrants = []Entrant{entrant("alice", 1, "As,Ad"), entrant("bob", 2, "Kc,Kd")}
	in.Pots = potmanager.Pots{pot(100, "alice", "bob")}

	result := Decide(in)
	a.Equal(map[string]int{"alice": 100}, result.Payouts())
	a.False(result.Uncontested())
	a.True(result.Complete())

	pots := result.Pots()
	a.Equal(1, len(pots))
	a.Equal("High Hand", pots[0].HandType)
	a.Equal([]string{"alice"}, pots[0].Winners)
	a.False(pots[0].Split)

	hands := result.Hands()
	a.Equal("alice", hands[0].ID)
	a.Equal("Pair (As Ad Jd 9s 7h)", hands[0].Hands[0].Description)
	a.True(hands[0].Hands[0].Qualified)
	a.Equal("", hands[0].Hands[0].Board)
}

func TestDecide_split(t *testing.T) {
	a := assert.New(t)

	in := cardsSpeak(highHand)
	in.Boards = boards(map[string]string{table.DefaultBoard: "Tc,Jd,Qh,Ks,Ac"})
	in.Entrants = []Entrant{entrant("alice", 1, "2c,3d"), entrant("bob", 2, "4h,5s")}
	in.Pots = potmanager.Pots{pot(25, "alice", "bob")}

	in.ButtonSeat = 0
	result := Decide(in)
	a.Equal(map[string]int{"alice": 13, "bob": 12}, result.Payouts())
	a.True(result.Pots()[0].Split)

	// the odd chip goes to the first player left of the button
	in.ButtonSeat = 1
	result = Decide(in)
	a.Equal(map[string]int{"alice": 12, "bob": 13}, result.Payouts())

	in.Showdown.OddChip = rules.OddChipLowestSeat
	result = Decide(in)
	a.Equal(map[string]int{"alice": 13, "bob": 12}, result.Payouts())

	// split in units of 5
	in.ChipUnit = 5
	in.Pots = potmanager.Pots{pot(35, "alice", "bob")}
	result = Decide(in)
	a.Equal(map[string]int{"alice": 20, "bob": 15}, result.Payouts())
}

func TestDecide_sidePots(t *testing.T) {
	a := assert.New(t)

	in := cardsSpeak(highHand)
	in.Boards = boards(map[string]string{table.DefaultBoard: "2c,7h,9s,Jd,3c"})
	in.Entrants = []Entrant{
		entrant("alice", 1, "As,Ad"),
		entrant("bob", 2, "Kc,Kd"),
		entrant("carol", 3, "Qc,Qd"),
	}
	in.Pots = potmanager.Pots{
		pot(60, "alice", "bob", "carol"),
		pot(40, "bob", "carol"),
	}

	result := Decide(in)
	a.Equal(map[string]int{"alice": 60, "bob": 40}, result.Payouts())
	a.Equal(100, result.Total())

	pots := result.Pots()
	a.Equal(0, pots[0].Pot)
	a.Equal(1, pots[1].Pot)
	a.Equal([]string{"bob"}, pots[1].Winners)
}

func TestDecide_omahaHiLo(t *testing.T) {
	a := assert.New(t)

	high := rules.BestHand{Name: "High Hand", EvaluationType: rules.EvalHigh, HoleCards: 2, CommunityCards: 3}
	low := rules.BestHand{Name: "Low Hand", EvaluationType: rules.EvalA5Low, HoleCards: 2, CommunityCards: 3, Qualifier: []int{8}}

	in := cardsSpeak(high, low)
	in.Boards = boards(map[string]string{table.DefaultBoard: "2h,5h,7c,Kc,9h"})
	in.Entrants = []Entrant{entrant("alice", 1, "Ah,Th,Kd,Ks"), entrant("bob", 2, "3c,4d,Jc,Js")}
	in.Pots = potmanager.Pots{pot(100, "alice", "bob")}

	result := Decide(in)
	a.Equal(map[string]int{"alice": 50, "bob": 50}, result.Payouts())

	pots := result.Pots()
	a.Equal(2, len(pots))
	a.Equal("High Hand", pots[0].HandType)
	a.Equal("Low Hand", pots[1].HandType)
	a.Equal([]string{"bob"}, pots[1].Winners)

	hands := result.Hands()
	a.False(hands[0].Hands[1].Qualified)
	a.Equal("no qualifying hand", hands[0].Hands[1].Description)
	a.Equal("7-5-4-3-2 low", hands[1].Hands[1].Description)

	// without a qualifying low the high hand scoops
	in.Boards = boards(map[string]string{table.DefaultBoard: "Kh,Qh,9c,Jd,2s"})
	result = Decide(in)
	a.Equal(map[string]int{"alice": 100}, result.Payouts())
	a.Equal(1, len(result.Pots()))
}

func declare(in Input, declarations map[string]rules.Declaration) Input {
	in.Showdown.DeclarationMode = rules.Declare
	for i, e := range in.Entrants {
		e.Declaration = declarations[e.ID]
		in.Entrants[i] = e
	}

	return in
}

func TestDecide_declare(t *testing.T) {
	a := assert.New(t)

	in := cardsSpeak(highHand, lowHand)
	in.Entrants = []Entrant{
		entrant("alice", 1, "Ac,Ad,Ah,2c,3d"),
		entrant("bob", 2, "2d,3h,4s,5c,7d"),
		entrant("carol", 3, "Kc,Kd,Qs,Jh,9c"),
	}
	in.Pots = potmanager.Pots{pot(100, "alice", "bob", "carol")}

	// alice has the best high hand, but loses the low and forfeits everything
	result := Decide(declare(in, map[string]rules.Declaration{
		"alice": rules.DeclareHighLow,
		"bob":   rules.DeclareLow,
		"carol": rules.DeclareHigh,
	}))
	a.Equal(map[string]int{"bob": 50, "carol": 50}, result.Payouts())
	a.Equal("high_low", result.Hands()[0].Declaration)

	// both high_low declarers failed, so nobody contests the pot and the cards speak
	in.Entrants = in.Entrants[:2]
	in.Pots = potmanager.Pots{pot(100, "alice", "bob")}
	result = Decide(declare(in, map[string]rules.Declaration{
		"alice": rules.DeclareHighLow,
		"bob":   rules.DeclareHighLow,
	}))
	a.Equal(map[string]int{"alice": 50, "bob": 50}, result.Payouts())
}

func TestDecide_declareBothWays(t *testing.T) {
	a := assert.New(t)

	in := cardsSpeak(highHand, lowHand)
	in.Entrants = []Entrant{
		entrant("alice", 1, "Ac,2d,3h,4s,5c"),
		entrant("bob", 2, "2h,3s,4d,6c,7h"),
		entrant("carol", 3, "Kc,Kd,Qs,Jh,9c"),
	}
	in.Pots = potmanager.Pots{pot(100, "alice", "bob", "carol")}

	result := Decide(declare(in, map[string]rules.Declaration{
		"alice": rules.DeclareHighLow,
		"bob":   rules.DeclareLow,
		"carol": rules.DeclareHigh,
	}))
	a.Equal(map[string]int{"alice": 100}, result.Payouts())
}

func TestDecide_chicago(t *testing.T) {
	a := assert.New(t)

	spade := rules.BestHand{Name: "High Spade", EvaluationType: rules.EvalSuitHigh, Suit: "spades", FaceDownOnly: true}
	in := cardsSpeak(highHand, spade)

	bob := entrant("bob", 2, "Qs,As,5c,9d,Jh,8c,2d")
	bob.Hand.Update(func(c deck.Card) deck.Card {
		if c.Equal(deck.CardFromString("As")) {
			return c.WithVisibility(deck.FaceUp)
		}

		return c
	})

	in.Entrants = []Entrant{entrant("alice", 1, "Ac,Ad,Kh,Kd,2c,3d,7h"), bob}
	in.Pots = potmanager.Pots{pot(100, "alice", "bob")}

	result := Decide(in)
	a.Equal(map[string]int{"alice": 50, "bob": 50}, result.Payouts())
	a.Equal("High spade: Qs", result.Hands()[1].Hands[1].Description)
	a.False(result.Hands()[0].Hands[1].Qualified)
}

func TestDecide_anyBoard(t *testing.T) {
	a := assert.New(t)

	bh := highHand
	bh.Board = rules.AnyBoard
	in := cardsSpeak(bh)
	in.Boards = boards(map[string]string{
		"top":    "Ks,2h,7c,9d,3s",
		"bottom": "Ah,4c,8d,Jc,5s",
	})
	in.Entrants = []Entrant{entrant("alice", 1, "As,Ad"), entrant("bob", 2, "Kc,Kd")}
	in.Pots = potmanager.Pots{pot(100, "alice", "bob")}

	result := Decide(in)
	a.Equal(map[string]int{"alice": 100}, result.Payouts())
	a.Equal("bottom", result.Hands()[0].Hands[0].Board)
	a.Equal("top", result.Hands()[1].Hands[0].Board)

	a.Equal([]string{"top"}, RemoveBoards(in.Boards, rules.RemoveConfig{Type: rules.RemoveLowestRiver}))
	result = Decide(in)
	a.Equal("", result.Hands()[1].Hands[0].Board)
	a.Equal("Pair (Ah Kc Kd Jc 8d)", result.Hands()[1].Hands[0].Description)
}

func TestRemoveBoards(t *testing.T) {
	a := assert.New(t)

	b := boards(map[string]string{
		"top":    "2c,4c,6c,8c,3h",
		"middle": "2d,4d,6d,8d,3d",
		"bottom": "2h,4h,6h,8h,Kd",
	})

	a.Equal([]string{"top", "middle"}, RemoveBoards(b, rules.RemoveConfig{Type: rules.RemoveLowestRiver}))
	a.Equal(1, len(b.Live()))

	// the last board is never removed
	a.Nil(RemoveBoards(b, rules.RemoveConfig{Type: rules.RemoveLowestRiver}))

	b = boards(map[string]string{
		"top":    "2c,4c,6c,8c,3h",
		"middle": "2d,4d,6d,8d,3d",
		"bottom": "2h,4h,6h,8h,Kd",
	})
	a.Equal([]string{"bottom"}, RemoveBoards(b, rules.RemoveConfig{Type: rules.RemoveHighestRiver}))

	b = boards(map[string]string{
		"top":    "2c,4c,6c,8c,3h",
		"middle": "2d,4d,6d,8d,3d",
	})
	a.Nil(RemoveBoards(b, rules.RemoveConfig{Type: rules.RemoveHighestRiver}))
	a.Equal(2, len(b.Live()))
}

func TestUncontested(t *testing.T) {
	a := assert.New(t)

	result := Uncontested("alice", potmanager.Pots{pot(30, "alice"), pot(0)})
	a.True(result.Uncontested())
	a.Equal(map[string]int{"alice": 30}, result.Payouts())
	a.Equal(1, len(result.Pots()))
	a.Equal("Main pot ${30}: alice wins ${30} uncontested\n", result.String())
}

func TestGameResult(t *testing.T) {
	a := assert.New(t)

	build := func() *GameResult {
		in := cardsSpeak(highHand)
		in.Boards = boards(map[string]string{table.DefaultBoard: "2c,7h,9s,Jd,3c"})
		in.Entrants = []Entrant{entrant("alice", 1, "As,Ad"), entrant("bob", 2, "Kc,Kd")}
		in.Pots = potmanager.Pots{pot(100, "alice", "bob")}
		return Decide(in)
	}

	r1, r2 := build(), build()
	f1, err := r1.Fingerprint()
	a.NoError(err)
	f2, err := r2.Fingerprint()
	a.NoError(err)
	a.Equal(f1, f2)

	other := Uncontested("alice", potmanager.Pots{pot(100, "alice", "bob")})
	f3, err := other.Fingerprint()
	a.NoError(err)
	a.NotEqual(f1, f3)

	data, err := json.Marshal(r1)
	a.NoError(err)

	var decoded map[string]interface{}
	a.NoError(json.Unmarshal(data, &decoded))
	a.Equal(true, decoded["complete"])
	a.Equal(false, decoded["uncontested"])
	a.Equal(1, len(decoded["pots"].([]interface{})))

	a.Contains(r1.String(), "Main pot (High Hand) ${100}: alice wins ${100}")
	a.Contains(r1.String(), "bob: High Hand: Pair (Kc Kd Jd 9s 7h);")

	// accessors return copies
	pots := r1.Pots()
	pots[0].Winners[0] = "mallory"
	a.Equal([]string{"alice"}, r1.Pots()[0].Winners)
}
