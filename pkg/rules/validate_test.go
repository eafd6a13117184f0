package rules

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mutate decodes the minimal variant, applies fn and re-encodes it
func mutate(t *testing.T, fn func(v map[string]interface{})) []byte {
	t.Helper()

	var v map[string]interface{}
	if err := json.Unmarshal([]byte(minimal), &v); err != nil {
		t.Fatal(err)
	}

	fn(v)
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}

	return data
}

func setStep(v map[string]interface{}, i int, step string) {
	var s interface{}
	if err := json.Unmarshal([]byte(step), &s); err != nil {
		panic(err)
	}

	steps := v["gamePlay"].([]interface{})
	steps[i] = s
}

func insertStep(v map[string]interface{}, i int, step string) {
	var s interface{}
	if err := json.Unmarshal([]byte(step), &s); err != nil {
		panic(err)
	}

	steps := v["gamePlay"].([]interface{})
	steps = append(steps[:i], append([]interface{}{s}, steps[i:]...)...)
	v["gamePlay"] = steps
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(v map[string]interface{})
		err    string
	}{
		{
			name:   "players below 2",
			mutate: func(v map[string]interface{}) { v["players"] = map[string]int{"min": 1, "max": 6} },
			err:    "Minimal: players: bounds 1..6 must be within 2..10",
		},
		{
			name:   "players above 10",
			mutate: func(v map[string]interface{}) { v["players"] = map[string]int{"min": 2, "max": 11} },
			err:    "Minimal: players: bounds 2..11 must be within 2..10",
		},
		{
			name:   "unknown structure",
			mutate: func(v map[string]interface{}) { v["bettingStructures"] = []string{"Spread Limit"} },
			err:    "Minimal: bettingStructures: unsupported betting structure: Spread Limit",
		},
		{
			name:   "unknown deck",
			mutate: func(v map[string]interface{}) { v["deck"] = map[string]string{"type": "pinochle"} },
			err:    "Minimal: deck.type: unknown deck type: pinochle",
		},
		{
			name:   "missing bet type",
			mutate: func(v map[string]interface{}) { setStep(v, 2, `{"name": "Bet", "bet": {}}`) },
			err:    "Minimal: gamePlay[2] (Bet): bet type is required",
		},
		{
			name:   "bring-in with blinds",
			mutate: func(v map[string]interface{}) { setStep(v, 2, `{"name": "Bet", "bet": {"type": "bring-in"}}`) },
			err:    "Minimal: gamePlay[2] (Bet): bring-in requires the bring-in forced bet style",
		},
		{
			name:   "deal without location",
			mutate: func(v map[string]interface{}) { setStep(v, 1, `{"name": "Deal", "deal": {"cards": [{"number": 2, "state": "face down"}]}}`) },
			err:    "Minimal: gamePlay[1] (Deal): deal needs a location",
		},
		{
			name:   "deal without cards",
			mutate: func(v map[string]interface{}) { setStep(v, 1, `{"name": "Deal", "deal": {"location": "player"}}`) },
			err:    "Minimal: gamePlay[1] (Deal): deal needs a card count",
		},
		{
			name:   "draw range",
			mutate: func(v map[string]interface{}) { insertStep(v, 3, `{"name": "Draw", "draw": {"min": 3, "max": 1}}`) },
			err:    "Minimal: gamePlay[3] (Draw): invalid card range 3..1",
		},
		{
			name:   "choose without options",
			mutate: func(v map[string]interface{}) { insertStep(v, 0, `{"name": "Choose", "choose": {"subject": "game", "options": []}}`) },
			err:    "Minimal: gamePlay[0] (Choose): choose needs a subject and options",
		},
		{
			name:   "unknown condition subject",
			mutate: func(v map[string]interface{}) { setStep(v, 2, `{"name": "Bet", "condition": {"subject": "game", "equals": "x"}, "bet": {"type": "small"}}`) },
			err:    "Minimal: gamePlay[2] (Bet).condition: unknown subject: game",
		},
		{
			name:   "protect without lowest hole wilds",
			mutate: func(v map[string]interface{}) { insertStep(v, 3, `{"name": "Protect", "protect": {"cost": 5}}`) },
			err:    "Minimal: gamePlay[3] (Protect): protect requires a lowest_hole wild card policy",
		},
		{
			name:   "grouped deal",
			mutate: func(v map[string]interface{}) { insertStep(v, 3, `{"name": "Group", "groupedActions": [{"name": "Deal", "deal": {"location": "player", "cards": [{"number": 1, "state": "face up"}]}}]}`) },
			err:    "Minimal: gamePlay[3] (Group): deal cannot be grouped",
		},
		{
			name:   "showdown not last",
			mutate: func(v map[string]interface{}) { insertStep(v, 4, `{"name": "Bet", "bet": {"type": "small"}}`) },
			err:    "Minimal: gamePlay: the last step must be the only showdown step",
		},
		{
			name: "declare mode without declare step",
			mutate: func(v map[string]interface{}) {
				v["showdown"].(map[string]interface{})["declarationMode"] = "declare"
			},
			err: "Minimal: showdown.declarationMode: declare mode requires a declare step",
		},
		{
			name: "unknown evaluation",
			mutate: func(v map[string]interface{}) {
				v["showdown"].(map[string]interface{})["bestHand"] = []map[string]string{{"name": "Odd", "evaluationType": "odd"}}
			},
			err: "Minimal: showdown.bestHand (Odd): unknown evaluation type: odd",
		},
		{
			name: "qualifier on a high hand",
			mutate: func(v map[string]interface{}) {
				v["showdown"].(map[string]interface{})["bestHand"] = []map[string]interface{}{{"name": "High", "evaluationType": "high", "qualifier": []int{8}}}
			},
			err: "Minimal: showdown.bestHand (High): invalid qualifier",
		},
		{
			name: "joker wild without jokers",
			mutate: func(v map[string]interface{}) {
				v["showdown"].(map[string]interface{})["wildCards"] = []map[string]string{{"type": "joker", "role": "bug"}}
			},
			err: "Minimal: showdown.wildCards: joker wild cards need jokers in the deck",
		},
		{
			name: "too many cards",
			mutate: func(v map[string]interface{}) {
				v["players"] = map[string]int{"min": 2, "max": 10}
				v["deck"] = map[string]string{"type": "short_ta"}
			},
			err: "Minimal: gamePlay: deals 50 cards from a 20 card deck with 10 players",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse(mutate(t, test.mutate))
			assert.EqualError(t, err, test.err)

			var cerr *ConfigError
			assert.True(t, errors.As(err, &cerr))
		})
	}
}

func TestValidate_unknownStepKind(t *testing.T) {
	a := assert.New(t)

	_, err := Parse(mutate(t, func(v map[string]interface{}) {
		setStep(v, 2, `{"name": "Bet", "wager": {"type": "small"}}`)
	}))

	var cerr *ConfigError
	a.True(errors.As(err, &cerr))
	a.Contains(err.Error(), "unknown action: wager")
}
