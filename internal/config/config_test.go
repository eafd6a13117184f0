package config

import (
	"github.com/stretchr/testify/assert"
	"pokerengine/internal/util"
	"testing"
)

func TestInstance(t *testing.T) {
	clear1 := util.SetEnv("POKERENGINE_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := util.SetEnv("POKERENGINE_TABLE_BIG_BLIND", "4")
	defer clear2()

	config = Config{}

	a := assert.New(t)
	cfg := Instance()
	a.Equal("testdata/variants", cfg.RulesDir)
	a.False(cfg.AutoProgress)
	a.Equal(int64(99), cfg.Seed)
	a.Equal("debug", cfg.Log.Level)
	a.Equal("json", cfg.Log.Format)
	a.Equal("No Limit", cfg.Table.Structure)
	a.Equal(1, cfg.Table.SmallBlind)
	a.Equal(4, cfg.Table.BigBlind, "environment overrides the file")
	a.Equal(200, cfg.Table.MaxBuyIn)

	// values absent from the file keep their defaults
	a.Equal(1, cfg.Table.ChipUnit)
	a.Equal(4, cfg.Table.BettingCap)

	// ensure that it's only loaded once
	unset := util.SetEnv("POKERENGINE_TABLE_BIG_BLIND", "8")
	defer unset()
	// ensure we aren't using a pointer
	cfg.Table.BigBlind = 1000
	cfg = Instance()
	a.Equal(4, cfg.Table.BigBlind)
}

func TestLoad_missingExplicitFile(t *testing.T) {
	unset := util.SetEnv("POKERENGINE_CONFIG_FILE", "testdata/does-not-exist.yaml")
	defer unset()

	assert.Error(t, Load())
}

func TestDefaultConfig(t *testing.T) {
	a := assert.New(t)
	cfg := DefaultConfig()
	a.True(cfg.AutoProgress)
	a.Equal("Limit", cfg.Table.Structure)
	a.Equal(10, cfg.Table.BigBlind)
	a.Equal(20, cfg.Table.BigBet)
	a.Equal("info", cfg.Log.Level)
}
