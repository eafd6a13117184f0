package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pokerengine/internal/config"
	"pokerengine/pkg/playable/poker/action"
	"pokerengine/pkg/playable/poker/potmanager"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want action.Request
		err  string
	}{
		{"fold", action.Request{Action: action.Fold}, ""},
		{"Call", action.Request{Action: action.Call}, ""},
		{"raise $40", action.Request{Action: action.Raise, Amount: 40}, ""},
		{"complete", action.Request{Action: action.Complete}, ""},
		{"draw 4d 6h", action.Request{Action: action.Draw, Cards: []string{"4d", "6h"}}, ""},
		{"draw", action.Request{Action: action.Draw}, ""},
		{"declare high_low", action.Request{Action: action.Declare, Declaration: "high_low"}, ""},
		{"choose omaha", action.Request{Action: action.Choose, Choice: "omaha"}, ""},
		{"separate Holdem:As,Ad Badugi:2c,3d,4h,5s", action.Request{
			Action: action.Separate,
			Subsets: map[string][]string{
				"Holdem": {"As", "Ad"},
				"Badugi": {"2c", "3d", "4h", "5s"},
			},
		}, ""},
		{"", action.Request{}, "enter an action"},
		{"muck", action.Request{}, "unknown action for identifier: muck"},
		{"bet lots", action.Request{}, "invalid amount: lots"},
		{"declare", action.Request{}, "Declare needs exactly one option"},
		{"separate Holdem", action.Request{}, "subsets look like Name:As,Kd"},
	}

	for _, test := range tests {
		t.Run(test.line, func(t *testing.T) {
			a := assert.New(t)
			req, err := parseCommand(test.line)
			if test.err != "" {
				a.EqualError(err, test.err)
				return
			}

			a.NoError(err)
			a.Equal(test.want, req)
		})
	}
}

func TestNewOptions(t *testing.T) {
	a := assert.New(t)

	cfg := config.DefaultConfig()
	cfg.Seed = 42
	opts := newOptions(cfg)
	a.Equal(potmanager.Limit, opts.Structure)
	a.Equal(5, opts.Stakes.SmallBlind)
	a.Equal(20, opts.Stakes.BigBet)
	a.Equal(int64(42), opts.Seed)
	a.True(opts.AutoProgress)
	a.Equal(9, opts.MaxSeats)
}
