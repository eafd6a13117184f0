package engine

import (
	"encoding/json"
	"fmt"
)

// State is the phase of a hand
type State int

// State constants
const (
	StateWaiting State = iota
	StateBetting
	StateDealing
	StateDrawing
	StateProtectionDecision
	StateShowdown
	StateComplete
)

var stateNames = map[State]string{
	StateWaiting:            "waiting",
	StateBetting:            "betting",
	StateDealing:            "dealing",
	StateDrawing:            "drawing",
	StateProtectionDecision: "protection-decision",
	StateShowdown:           "showdown",
	StateComplete:           "complete",
}

// String returns the name of the state
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}

	panic(fmt.Sprintf("unknown state: %d", int(s)))
}

// MarshalJSON encodes the state as an ID and a name
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(s),
		Name: s.String(),
	})
}
