package main

import (
	"pokerengine/internal/config"
	"pokerengine/pkg/playable/poker/engine"
	"pokerengine/pkg/playable/poker/potmanager"
)

// newOptions returns the game options the configuration describes
func newOptions(cfg config.Config) engine.Options {
	t := cfg.Table
	return engine.Options{
		Structure: potmanager.Structure(t.Structure),
		Stakes: potmanager.Stakes{
			SmallBlind: t.SmallBlind,
			BigBlind:   t.BigBlind,
			Ante:       t.Ante,
			BringIn:    t.BringIn,
			SmallBet:   t.SmallBet,
			BigBet:     t.BigBet,
			BettingCap: t.BettingCap,
			ChipUnit:   t.ChipUnit,
		},
		MinBuyIn:     t.MinBuyIn,
		MaxBuyIn:     t.MaxBuyIn,
		AutoProgress: cfg.AutoProgress,
		Seed:         cfg.Seed,
		MaxSeats:     t.MaxSeats,
	}
}
