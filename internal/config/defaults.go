package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// Default returns the default configuration.
func Default() Config {
	return Config{
		Spawn: SpawnConfig{
			FourProbability: 0.1,
		},
		Storage: StorageConfig{
			DBPath: "~/.arcade/scores.db",
		},
		Simulate: SimulateConfig{
			Episodes: 100,
			MaxSteps: 10000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
