package engine

import "pokerengine/pkg/table"

// participant adapts a seated player to the pot manager
type participant struct {
	*table.Player
}

// ID returns the player's ID
func (p *participant) ID() string {
	return p.Player.ID
}
