package action

import (
	"encoding/json"
	"fmt"
)

// Action represents an action a player can take
type Action string

// action constants
const (
	Fold     Action = "fold"
	Check    Action = "check"
	Call     Action = "call"
	Bet      Action = "bet"
	Raise    Action = "raise"
	Complete Action = "complete"
	Draw     Action = "draw"
	Discard  Action = "discard"
	Expose   Action = "expose"
	Separate Action = "separate"
	Declare  Action = "declare"
	Choose   Action = "choose"
	Protect  Action = "protect"
	Decline  Action = "decline"
)

var allowedActions = map[Action]string{
	Fold:     "Fold",
	Check:    "Check",
	Call:     "Call",
	Bet:      "Bet",
	Raise:    "Raise",
	Complete: "Complete",
	Draw:     "Draw",
	Discard:  "Discard",
	Expose:   "Expose",
	Separate: "Separate",
	Declare:  "Declare",
	Choose:   "Choose",
	Protect:  "Protect",
	Decline:  "Decline",
}

// FromString returns an action for the given string
func FromString(s string) (Action, error) {
	if _, ok := allowedActions[Action(s)]; ok {
		return Action(s), nil
	}

	return "", fmt.Errorf("unknown action for identifier: %s", s)
}

func (a Action) String() string {
	if name, ok := allowedActions[a]; ok {
		return name
	}

	panic(fmt.Sprintf("unknown action: %s", string(a)))
}

// MarshalJSON encodes the action into JSON
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}{
		ID:   string(a),
		Name: a.String(),
	})
}

// UnmarshalJSON decodes an action from its identifier
func (a *Action) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var obj struct {
			ID string `json:"id"`
		}

		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}

		s = obj.ID
	}

	act, err := FromString(s)
	if err != nil {
		return err
	}

	*a = act
	return nil
}

// IsValid returns true if the action is permitted
func (a Action) IsValid() bool {
	_, ok := allowedActions[a]
	return ok
}

// IsBetting returns true if the action belongs to a betting round
func (a Action) IsBetting() bool {
	switch a {
	case Fold, Check, Call, Bet, Raise, Complete:
		return true
	}

	return false
}

// LogMessage returns a message formatted for the log
func (a Action) LogMessage(amount int) string {
	switch a {
	case Fold:
		return "folded"
	case Check:
		return "checked"
	case Call:
		return fmt.Sprintf("called ${%d}", amount)
	case Bet:
		return fmt.Sprintf("bet ${%d}", amount)
	case Raise:
		return fmt.Sprintf("raised to ${%d}", amount)
	case Complete:
		return fmt.Sprintf("completed to ${%d}", amount)
	case Draw:
		return fmt.Sprintf("drew %d", amount)
	case Discard:
		return fmt.Sprintf("discarded %d", amount)
	case Expose:
		return fmt.Sprintf("exposed %d", amount)
	case Separate:
		return "separated their hand"
	case Declare:
		return "declared"
	case Choose:
		return "made a choice"
	case Protect:
		return fmt.Sprintf("paid ${%d} to protect their wild card", amount)
	case Decline:
		return "declined protection"
	}

	return ""
}
