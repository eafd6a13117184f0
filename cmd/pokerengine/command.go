package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"pokerengine/pkg/playable/poker/action"
)

// parseCommand turns a line typed at the prompt into an action request
//
//	fold | check | call | bet 20 | raise 40 | complete
//	draw 4d 6h | discard Kc | expose As
//	separate Holdem:As,Ad Badugi:2c,3d,4h,5s
//	declare high | choose omaha | protect | decline
func parseCommand(line string) (action.Request, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return action.Request{}, errors.New("enter an action")
	}

	a, err := action.FromString(strings.ToLower(fields[0]))
	if err != nil {
		return action.Request{}, err
	}

	req := action.Request{Action: a}
	args := fields[1:]
	switch a {
	case action.Bet, action.Raise, action.Complete:
		if len(args) == 0 {
			break
		}

		amount, err := strconv.Atoi(strings.TrimPrefix(args[0], "$"))
		if err != nil {
			return action.Request{}, fmt.Errorf("invalid amount: %s", args[0])
		}

		req.Amount = amount
	case action.Draw, action.Discard, action.Expose:
		if len(args) > 0 {
			req.Cards = args
		}
	case action.Separate:
		req.Subsets = make(map[string][]string, len(args))
		for _, arg := range args {
			name, cards, ok := strings.Cut(arg, ":")
			if !ok || name == "" {
				return action.Request{}, errors.New("subsets look like Name:As,Kd")
			}

			req.Subsets[name] = strings.Split(cards, ",")
		}
	case action.Declare, action.Choose:
		if len(args) != 1 {
			return action.Request{}, fmt.Errorf("%s needs exactly one option", a)
		}

		if a == action.Declare {
			req.Declaration = args[0]
		} else {
			req.Choice = args[0]
		}
	}

	return req, nil
}
