// Package playable holds the messages passed between a game and the session layer
package playable

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"pokerengine/pkg/playable/poker/action"
)

// LogMessage is the format a game records log messages in
// If PlayerIDs is empty, it's a general statement, otherwise the message reads like "{} did X, Y, Z"
type LogMessage struct {
	UUID      string    `json:"uuid"`
	PlayerIDs []string  `json:"playerIds"`
	Cards     []string  `json:"cards"`
	Message   string    `json:"message"`
	Time      time.Time `json:"time"`
}

// Format replaces the "{}" placeholders with player names, in order
// Unknown players keep their ID
func (l *LogMessage) Format(names map[string]string) string {
	msg := l.Message
	for _, id := range l.PlayerIDs {
		name, ok := names[id]
		if !ok {
			name = id
		}

		msg = strings.Replace(msg, "{}", name, 1)
	}

	return msg
}

// SimpleLogMessage returns a new LogMessage
func SimpleLogMessage(playerID string, format string, a ...interface{}) *LogMessage {
	var playerIDs []string
	if playerID != "" {
		playerIDs = []string{playerID}
	}

	return &LogMessage{
		UUID:      uuid.New().String(),
		PlayerIDs: playerIDs,
		Message:   fmt.Sprintf(format, a...),
		Time:      time.Now(),
	}
}

// SimpleLogMessageSlice returns a single log message
func SimpleLogMessageSlice(playerID string, format string, a ...interface{}) []*LogMessage {
	return []*LogMessage{SimpleLogMessage(playerID, format, a...)}
}

// CardsLogMessage returns a log message that shows cards
func CardsLogMessage(playerID string, cards []string, format string, a ...interface{}) *LogMessage {
	lm := SimpleLogMessage(playerID, format, a...)
	lm.Cards = cards
	return lm
}

// Response is a message sent to a client
// Context is copied from the request it answers
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value"`
	Data    interface{} `json:"data"`
	Context string      `json:"context"`
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		Key:   "status",
		Value: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

// ErrorResponse returns a response for a failed request
func ErrorResponse(ctx string, err error) *Response {
	return &Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}

// PayloadIn is the format we expect from a client
type PayloadIn struct {
	Action         string         `json:"action"`
	Cards          []string       `json:"cards"`
	AdditionalData AdditionalData `json:"additionalData"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// Request converts the payload into an action request
// The amount, declaration, choice and subsets are read from the additional data
func (p *PayloadIn) Request() (action.Request, error) {
	a, err := action.FromString(p.Action)
	if err != nil {
		return action.Request{}, err
	}

	req := action.Request{Action: a, Cards: p.Cards}
	if amount, ok := p.AdditionalData.GetInt("amount"); ok {
		req.Amount = amount
	}

	req.Declaration, _ = p.AdditionalData.GetString("declaration")
	req.Choice, _ = p.AdditionalData.GetString("choice")

	if raw, ok := p.AdditionalData["subsets"].(map[string]interface{}); ok {
		req.Subsets = make(map[string][]string, len(raw))
		sub := AdditionalData(raw)
		for name := range raw {
			cards, ok := sub.GetStringSlice(name)
			if !ok {
				return action.Request{}, fmt.Errorf("subset %s must be a list of cards", name)
			}

			req.Subsets[name] = cards
		}
	}

	return req, nil
}

// AdditionalData provides additional data in a payload
type AdditionalData map[string]interface{}

// GetString returns a string for the given key
func (a AdditionalData) GetString(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok
}

// GetInt returns an integer value for the given key
func (a AdditionalData) GetInt(key string) (int, bool) {
	switch val := a[key].(type) {
	case float64:
		return int(val), true
	case int:
		return val, true
	}

	return 0, false
}

// GetBool returns a boolean value for the given key
func (a AdditionalData) GetBool(key string) (bool, bool) {
	boolVal, ok := a[key].(bool)
	if !ok {
		return false, false
	}

	return boolVal, true
}

// GetIntSlice returns a slice of integers
func (a AdditionalData) GetIntSlice(key string) ([]int, bool) {
	switch slice := a[key].(type) {
	case []float64:
		ints := make([]int, len(slice))
		for i, val := range slice {
			ints[i] = int(val)
		}
		return ints, true
	case []interface{}:
		ints := make([]int, len(slice))
		for i, val := range slice {
			floatVal, ok := val.(float64)
			if !ok {
				return nil, false
			}

			ints[i] = int(floatVal)
		}
		return ints, true
	}

	return nil, false
}

// GetStringSlice returns a slice of strings
func (a AdditionalData) GetStringSlice(key string) ([]string, bool) {
	switch slice := a[key].(type) {
	case []string:
		return slice, true
	case []interface{}:
		strs := make([]string, len(slice))
		for i, val := range slice {
			s, ok := val.(string)
			if !ok {
				return nil, false
			}

			strs[i] = s
		}
		return strs, true
	}

	return nil, false
}
