package engine

import (
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"pokerengine/pkg/deck"
	"pokerengine/pkg/playable"
	"pokerengine/pkg/playable/poker/action"
	"pokerengine/pkg/playable/poker/potmanager"
	"pokerengine/pkg/rules"
	"pokerengine/variants"
)

var repository = rules.NewRepository(logrus.StandardLogger(), variants.FS)

func loadRules(t *testing.T, name string) *rules.Rules {
	t.Helper()
	r, err := repository.GetOrLoad(name)
	if err != nil {
		t.Fatalf("could not load %s: %v", name, err)
	}

	return r
}

// newGame seats p1, p2, ... in seats 0, 1, ... with the stacks
// p1 has the button on the first hand
func newGame(t *testing.T, variant string, opts Options, stacks ...int) *Game {
	t.Helper()
	g, err := NewGame(logrus.StandardLogger(), loadRules(t, variant), opts)
	if err != nil {
		t.Fatalf("could not create the game: %v", err)
	}

	for i, stack := range stacks {
		if err := g.AddPlayer(i, fmt.Sprintf("p%d", i+1), fmt.Sprintf("Player %d", i+1), stack); err != nil {
			t.Fatalf("could not seat player %d: %v", i+1, err)
		}
	}

	return g
}

func startHand(t *testing.T, g *Game) {
	t.Helper()
	if err := g.StartHand(); err != nil {
		t.Fatalf("could not start the hand: %v", err)
	}
}

func stacked(cards string) *deck.Deck {
	return deck.NewStacked(deck.Standard, deck.CardsFromString(cards))
}

func act(t *testing.T, g *Game, id string, a action.Action, amount int, cards ...string) action.Result {
	t.Helper()
	res := g.PlayerAction(id, action.Request{Action: a, Amount: amount, Cards: cards})
	if !res.Success {
		t.Fatalf("%s could not %s: %v", id, a, res.Error)
	}

	return res
}

// playOut checks, or calls when checking is not allowed, until the hand needs something other than a bet
func playOut(t *testing.T, g *Game) {
	t.Helper()
	for g.CurrentState() == StateBetting {
		id := g.currentPlayer()
		if id == "" {
			t.Fatal("nobody is on the clock")
		}

		a := action.Call
		if _, ok := g.ValidActions(id).Find(action.Check); ok {
			a = action.Check
		}

		act(t, g, id, a, 0)
	}
}

func player(g *Game, id string) *participant {
	return g.participants[id]
}

func messages(logs []*playable.LogMessage) []string {
	msgs := make([]string, len(logs))
	for i, l := range logs {
		msgs[i] = l.Message
	}

	return msgs
}

func noLimit() Options {
	opts := DefaultOptions()
	opts.Structure = potmanager.NoLimit
	opts.MinBuyIn = 0
	opts.MaxBuyIn = 0
	return opts
}
