package room

import (
	"pokerengine/pkg/playable"
	"pokerengine/pkg/playable/poker/engine"
)

// Response keys
const (
	keyGame    = "game"
	keyLogs    = "logs"
	keyResults = "results"
)

func newGameResponse(state *engine.GameState) *playable.Response {
	return &playable.Response{
		Key:  keyGame,
		Data: state,
	}
}

func newLogsResponse(logs []*playable.LogMessage) *playable.Response {
	return &playable.Response{
		Key:  keyLogs,
		Data: logs,
	}
}

func newResultsResponse(result interface{}) *playable.Response {
	return &playable.Response{
		Key:  keyResults,
		Data: result,
	}
}
