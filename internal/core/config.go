package core

// RuntimeConfig contains configuration passed to a game session at start.
type RuntimeConfig struct {
	ScreenW         int     // Screen width in characters
	ScreenH         int     // Screen height in characters
	Seed            int64   // RNG seed for deterministic gameplay
	FourProbability float64 // Chance that a spawned tile is a 4
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:         80,
		ScreenH:         24,
		Seed:            0, // 0 means use current time in platform layer
		FourProbability: 0.1,
	}
}
