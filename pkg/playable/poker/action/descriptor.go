package action

// Descriptor is a legal action for the player in turn
// Min and Max are chip amounts for betting actions and card counts for card actions
type Descriptor struct {
	Action  Action   `json:"action"`
	Min     int      `json:"min,omitempty"`
	Max     int      `json:"max,omitempty"`
	Options []string `json:"options,omitempty"`
}

// Descriptors is a list of legal actions
type Descriptors []Descriptor

// Find returns the descriptor for the action
func (d Descriptors) Find(a Action) (Descriptor, bool) {
	for _, desc := range d {
		if desc.Action == a {
			return desc, true
		}
	}

	return Descriptor{}, false
}

// Actions returns only the actions
func (d Descriptors) Actions() []Action {
	actions := make([]Action, len(d))
	for i, desc := range d {
		actions[i] = desc.Action
	}

	return actions
}

// Request is a player's attempt to act
// Only the fields used by Action are read
type Request struct {
	Action Action `json:"action"`

	// Amount is the total amount a bet or raise is to
	Amount int `json:"amount,omitempty"`

	// Cards are the cards to draw, discard or expose, or the cards of each subset
	Cards   []string            `json:"cards,omitempty"`
	Subsets map[string][]string `json:"subsets,omitempty"`

	Declaration string `json:"declaration,omitempty"`
	Choice      string `json:"choice,omitempty"`
}

// Result is the outcome of a player action
type Result struct {
	Success bool  `json:"success"`
	Error   error `json:"-"`

	// StateChanged is true if anything other players can see changed
	StateChanged bool `json:"stateChanged"`

	// AdvanceStep is true if the action finished the current step
	AdvanceStep bool `json:"advanceStep"`
}

// Failed returns a result for a rejected action
func Failed(err error) Result {
	return Result{Error: err}
}

// OK returns a result for an accepted action
func OK(advance bool) Result {
	return Result{Success: true, StateChanged: true, AdvanceStep: advance}
}

// Reason returns the error message, if any
func (r Result) Reason() string {
	if r.Error == nil {
		return ""
	}

	return r.Error.Error()
}
