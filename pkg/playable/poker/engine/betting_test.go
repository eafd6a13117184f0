package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pokerengine/pkg/playable/poker/action"
	"pokerengine/pkg/playable/poker/potmanager"
	"pokerengine/pkg/table"
)

func TestGame_limitHoldem(t *testing.T) {
	a := assert.New(t)

	opts := DefaultOptions()
	opts.Deck = stacked("2c 7d Ah 3c 8d Ad Kh Ks 9s 4h 5s")
	g := newGame(t, "holdem", opts, 100, 100, 100)
	startHand(t, g)

	a.Equal(StateBetting, g.CurrentState())
	a.Equal(15, g.pm.GetTotal())
	a.True(player(g, "p2").Is(table.PositionSmallBlind))
	a.True(player(g, "p3").Is(table.PositionBigBlind))
	a.Equal("p1", g.currentPlayer(), "the button acts first after the big blind")
	a.Equal(action.Descriptors{
		{Action: action.Call, Min: 10, Max: 10},
		{Action: action.Raise, Min: 20, Max: 20},
		{Action: action.Fold},
	}, g.ValidActions("p1"))
	a.Nil(g.ValidActions("p2"))

	res := act(t, g, "p1", action.Call, 0)
	a.False(res.AdvanceStep)
	act(t, g, "p2", action.Call, 0)
	a.Equal(action.Descriptors{
		{Action: action.Check},
		{Action: action.Raise, Min: 20, Max: 20},
	}, g.ValidActions("p3"), "the big blind has the option")

	res = act(t, g, "p3", action.Check, 0)
	a.True(res.AdvanceStep)

	a.Equal(30, g.pm.GetTotal())
	for _, id := range []string{"p1", "p2", "p3"} {
		a.Equal(90, player(g, id).Stack(), id)
	}

	a.Len(g.table.Boards.Get("").Cards, 3)
	a.Equal("p2", g.currentPlayer(), "left of the button acts first after the flop")

	playOut(t, g)
	a.Equal(StateComplete, g.CurrentState())
	result, ok := g.HandResults()
	a.True(ok)
	a.Equal(map[string]int{"p1": 30}, result.Payouts())
	a.Equal(120, player(g, "p1").Stack())
	a.Equal(90, player(g, "p2").Stack())
	a.Equal(90, player(g, "p3").Stack())

	msgs := messages(g.DrainLogs())
	a.Contains(msgs, "Hand #1 of Texas Hold'em started")
	a.Contains(msgs, "{} posted the big blind of ${10}")
	a.Contains(msgs, "{} called ${5}")
	a.Empty(g.DrainLogs())

	// the button moves to the next player
	startHand(t, g)
	a.Equal(1, g.table.ButtonSeat)
	a.Equal("p2", g.currentPlayer())
}

func TestGame_noLimitSidePot(t *testing.T) {
	a := assert.New(t)

	opts := noLimit()
	opts.Deck = stacked("Kc Qc As Kd Qd Ad 2h 7s 9c 3d Jh")
	g := newGame(t, "holdem", opts, 20, 25, 25)
	startHand(t, g)

	a.Equal(action.Descriptors{
		{Action: action.Call, Min: 10, Max: 10},
		{Action: action.Raise, Min: 20, Max: 20},
		{Action: action.Fold},
	}, g.ValidActions("p1"))
	act(t, g, "p1", action.Raise, 20)

	// an all-in for less than a full raise
	raise, ok := g.ValidActions("p2").Find(action.Raise)
	a.True(ok)
	a.Equal(25, raise.Min)
	a.Equal(25, raise.Max)
	act(t, g, "p2", action.Raise, 25)

	_, ok = g.ValidActions("p3").Find(action.Raise)
	a.False(ok, "p3 can only call")
	act(t, g, "p3", action.Call, 0)

	// everybody is all-in, so the board runs out
	a.Equal(StateComplete, g.CurrentState())
	result, _ := g.HandResults()
	pots := result.Pots()
	a.Len(pots, 2)
	a.Equal(60, pots[0].Amount)
	a.Equal([]string{"p1"}, pots[0].Winners)
	a.Equal(10, pots[1].Amount)
	a.Equal([]string{"p2"}, pots[1].Winners)

	a.Equal(60, player(g, "p1").Stack())
	a.Equal(10, player(g, "p2").Stack())
	a.Equal(0, player(g, "p3").Stack())
	a.Contains(messages(g.DrainLogs()), "{} raised to ${25} and is all-in")
}

func TestGame_noLimitIncompleteRaise(t *testing.T) {
	a := assert.New(t)

	opts := noLimit()
	opts.Deck = stacked("Kc Qc As Kd Qd Ad 2h 7s 9c 3d Jh")
	g := newGame(t, "holdem", opts, 25, 25, 25)
	startHand(t, g)

	// after the blinds the stacks are 25/20/15
	a.Equal(25, player(g, "p1").Stack())
	a.Equal(20, player(g, "p2").Stack())
	a.Equal(15, player(g, "p3").Stack())

	act(t, g, "p1", action.Raise, 20)
	a.Equal(5, player(g, "p1").Stack())

	// the small blind goes all-in for less than a full raise
	raise, ok := g.ValidActions("p2").Find(action.Raise)
	a.True(ok)
	a.Equal(25, raise.Min)
	a.Equal(25, raise.Max)
	act(t, g, "p2", action.Raise, 25)
	a.Equal(0, player(g, "p2").Stack())

	a.Equal(action.Descriptors{
		{Action: action.Call, Min: 15, Max: 15},
		{Action: action.Fold},
	}, g.ValidActions("p3"))
	act(t, g, "p3", action.Call, 0)
	a.Equal(0, player(g, "p3").Stack())
	a.Equal(70, g.pm.GetTotal())

	// the incomplete raise does not reopen the betting for the button
	a.Equal("p1", g.currentPlayer())
	a.Equal(action.Descriptors{
		{Action: action.Call, Min: 5, Max: 5},
		{Action: action.Fold},
	}, g.ValidActions("p1"))
	act(t, g, "p1", action.Call, 0)

	a.Equal(StateComplete, g.CurrentState())
	result, ok := g.HandResults()
	a.True(ok)
	a.Equal(map[string]int{"p1": 75}, result.Payouts())
	a.Equal(75, player(g, "p1").Stack())
}

func TestGame_potLimitMaxRaise(t *testing.T) {
	a := assert.New(t)

	opts := DefaultOptions()
	opts.Structure = potmanager.PotLimit
	g := newGame(t, "holdem", opts, 100, 100, 100)
	startHand(t, g)

	raise, ok := g.ValidActions("p1").Find(action.Raise)
	a.True(ok)
	a.Equal(20, raise.Min)
	a.Equal(35, raise.Max)

	before := g.State("p1").Hash
	res := g.PlayerAction("p1", action.Request{Action: action.Raise, Amount: 36})
	a.False(res.Success)
	a.Equal("your bet of ${36} cannot exceed ${35}", res.Reason())
	a.Equal(before, g.State("p1").Hash, "a rejected action changes nothing")
	a.Equal("p1", g.currentPlayer())

	act(t, g, "p1", action.Raise, 35)
	a.Equal(35, player(g, "p1").AmountInPlay())
	a.Equal(50, g.pm.GetTotal())
}

func TestGame_studBringIn(t *testing.T) {
	a := assert.New(t)

	opts := DefaultOptions()
	opts.Deck = stacked("Ah Kh Qh Jh Th 9h 2d 2c 8s")
	g := newGame(t, "stud", opts, 100, 100, 100)
	startHand(t, g)

	// two deuces showing, clubs bring it in
	a.Equal("p3", g.bringIn)
	a.Equal(8, g.pm.GetTotal())
	a.Equal("p1", g.currentPlayer())
	a.Equal(action.Descriptors{
		{Action: action.Call, Min: 5, Max: 5},
		{Action: action.Complete, Min: 10, Max: 10},
		{Action: action.Fold},
	}, g.ValidActions("p1"))

	act(t, g, "p1", action.Complete, 0)
	a.Equal(18, g.pm.GetTotal())
	a.Equal("p2", g.currentPlayer())

	logs := g.DrainLogs()
	msgs := messages(logs)
	a.Contains(msgs, "Antes of ${3} were posted")
	a.Contains(msgs, "{} brought it in for ${5}")
	a.Contains(msgs, "{} completed to ${10}")
}

func TestGame_foldToOne(t *testing.T) {
	a := assert.New(t)

	g := newGame(t, "holdem", DefaultOptions(), 100, 100, 100)
	startHand(t, g)

	res := act(t, g, "p1", action.Fold, 0)
	a.False(res.AdvanceStep)
	a.Equal(0, player(g, "p1").Hand.Len())

	res = act(t, g, "p2", action.Fold, 0)
	a.True(res.AdvanceStep)
	a.Equal(StateComplete, g.CurrentState())

	result, ok := g.HandResults()
	a.True(ok)
	a.True(result.Uncontested())
	a.Equal(map[string]int{"p3": 10}, result.Payouts())
	a.Equal(100, player(g, "p1").Stack())
	a.Equal(95, player(g, "p2").Stack())
	a.Equal(105, player(g, "p3").Stack())

	res = g.PlayerAction("p3", action.Request{Action: action.Check})
	a.Equal(ErrHandNotStarted, res.Error)
}

func TestGame_turns(t *testing.T) {
	a := assert.New(t)

	g := newGame(t, "holdem", DefaultOptions(), 100, 100, 100)
	res := g.PlayerAction("p1", action.Request{Action: action.Check})
	a.Equal(ErrHandNotStarted, res.Error)

	startHand(t, g)
	res = g.PlayerAction("p2", action.Request{Action: action.Call})
	a.Equal(ErrNotYourTurn, res.Error)

	res = g.PlayerAction("nobody", action.Request{Action: action.Call})
	a.Equal(ErrUnknownPlayer, res.Error)

	res = g.PlayerAction("p1", action.Request{Action: action.Action("muck")})
	a.Equal(ErrInvalidAction, res.Error)

	res = g.PlayerAction("p1", action.Request{Action: action.Check})
	a.Equal("you cannot check right now", res.Reason())

	res = g.PlayerAction("p1", action.Request{Action: action.Draw})
	a.Equal("you cannot draw right now", res.Reason())
}
