package engine

import (
	"errors"

	"pokerengine/pkg/playable/poker/potmanager"
	"pokerengine/pkg/table"
)

// errors a player can cause
var (
	ErrHandNotStarted = table.UserError("no hand is in progress")
	ErrHandInProgress = table.UserError("a hand is already in progress")
	ErrNotYourTurn    = table.UserError("it is not your turn")
	ErrUnknownPlayer  = table.UserError("you are not seated in the game")
	ErrNotEnoughCards = table.UserError("there are not enough cards left in the deck")
	ErrInvalidAction  = table.UserError("unknown action")
	ErrInvalidCards   = table.UserError("you do not hold those cards")
)

// ErrWaitingForPlayer is returned by Advance when the current step needs a player decision
var ErrWaitingForPlayer = errors.New("the current step is waiting for a player")

// userError converts an error caused by a player into a table.UserError
func userError(err error) error {
	var ue table.UserError
	if errors.As(err, &ue) {
		return ue
	}

	var pe potmanager.ParticipantError
	if errors.As(err, &pe) {
		return table.UserError(pe.Error())
	}

	return table.UserError(err.Error())
}
