package config

import (
	"errors"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
	"pokerengine/internal/util"
)

const defaultConfigFile = "config.yaml"

// Config provides configuration for the poker engine
type Config struct {
	loaded bool

	// RulesDir is a directory of variant definitions. If empty, the embedded variants are used
	RulesDir string `yaml:"rulesDir" envconfig:"rules_dir"`

	// AutoProgress will advance through steps without an explicit call to Advance()
	AutoProgress bool `yaml:"autoProgress" envconfig:"auto_progress"`

	// Seed is used to shuffle the first hand. Zero means a random seed is picked
	Seed int64 `yaml:"seed" envconfig:"seed"`

	Log struct {
		Level  string `yaml:"level" envconfig:"level"`
		Format string `yaml:"format" envconfig:"format"`
	} `yaml:"log" envconfig:"log"`

	Table Table `yaml:"table" envconfig:"table"`
}

// Table is the default stakes and limits for a table
type Table struct {
	Structure  string `yaml:"structure" envconfig:"structure"`
	SmallBlind int    `yaml:"smallBlind" envconfig:"small_blind"`
	BigBlind   int    `yaml:"bigBlind" envconfig:"big_blind"`
	Ante       int    `yaml:"ante" envconfig:"ante"`
	BringIn    int    `yaml:"bringIn" envconfig:"bring_in"`
	SmallBet   int    `yaml:"smallBet" envconfig:"small_bet"`
	BigBet     int    `yaml:"bigBet" envconfig:"big_bet"`
	MinBuyIn   int    `yaml:"minBuyIn" envconfig:"min_buy_in"`
	MaxBuyIn   int    `yaml:"maxBuyIn" envconfig:"max_buy_in"`
	ChipUnit   int    `yaml:"chipUnit" envconfig:"chip_unit"`
	BettingCap int    `yaml:"bettingCap" envconfig:"betting_cap"`
	MaxSeats   int    `yaml:"maxSeats" envconfig:"max_seats"`
}

var config Config

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() Config {
	cfg := Config{
		AutoProgress: true,
		Table: Table{
			Structure:  "Limit",
			SmallBlind: 5,
			BigBlind:   10,
			BringIn:    3,
			SmallBet:   10,
			BigBet:     20,
			MinBuyIn:   100,
			MaxBuyIn:   1000,
			ChipUnit:   1,
			BettingCap: 4,
			MaxSeats:   9,
		},
	}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"

	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// The file named by POKERENGINE_CONFIG_FILE must exist. If the variable is not set and
// config.yaml is missing, the defaults are used
func Load() error {
	configFile, explicit := os.LookupEnv("POKERENGINE_CONFIG_FILE")
	if !explicit {
		configFile = util.Getenv("POKERENGINE_CONFIG_FILE", defaultConfigFile)
	}

	cfg := DefaultConfig()

	file, err := os.Open(configFile)
	switch {
	case err == nil:
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// defaults only
	default:
		return err
	}

	if err := envconfig.Process("pokerengine", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}
