// Package config provides YAML-based configuration loading for the 2048
// engine and its command-line tools.
package config

import (
	"errors"
	"fmt"
	"math"
)

// Config contains all configuration for 2048.
type Config struct {
	Spawn    SpawnConfig    `yaml:"spawn"`
	Storage  StorageConfig  `yaml:"storage"`
	Simulate SimulateConfig `yaml:"simulate"`
	Log      LogConfig      `yaml:"log"`
}

// SpawnConfig defines tile spawning parameters.
type SpawnConfig struct {
	FourProbability float64 `yaml:"four_probability"` // Probability of spawning 4 instead of 2 (0.0-1.0)
}

// StorageConfig defines where finished episodes are recorded.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// SimulateConfig defines defaults for the random-play simulator.
type SimulateConfig struct {
	Episodes int `yaml:"episodes"`
	MaxSteps int `yaml:"max_steps"` // Step cap per episode
}

// LogConfig defines logging output.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Validate checks that all values are in range.
func (c Config) Validate() error {
	if p := c.Spawn.FourProbability; math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("%w: spawn.four_probability %v not in [0,1]", ErrInvalid, c.Spawn.FourProbability)
	}
	if c.Storage.DBPath == "" {
		return fmt.Errorf("%w: storage.db_path is empty", ErrInvalid)
	}
	if c.Simulate.Episodes <= 0 {
		return fmt.Errorf("%w: simulate.episodes must be positive, got %d", ErrInvalid, c.Simulate.Episodes)
	}
	if c.Simulate.MaxSteps <= 0 {
		return fmt.Errorf("%w: simulate.max_steps must be positive, got %d", ErrInvalid, c.Simulate.MaxSteps)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}
