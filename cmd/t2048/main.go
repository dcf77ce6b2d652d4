// t2048 is a deterministic 2048 engine with terminal tooling.
//
// Usage:
//
//	t2048 play                      - Play in the terminal
//	t2048 replay --moves "wasd..."  - Replay a seeded move list
//	t2048 simulate                  - Run random-play episodes
//	t2048 scores                    - Show recorded episodes
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible games
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--config <path>      - Load a custom config YAML
//	--four-prob <p>      - Chance that a spawned tile is a 4
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagFourProb float64
	flagLogLevel string

	loadedConfig config.Config
	logger       *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - slide and merge tiles in your terminal",
	Long: `t2048 is a deterministic 2048 engine with a terminal front end.

Available commands:
  play      - Play interactively
  replay    - Replay a move list from a seed
  simulate  - Run random-play episodes
  scores    - View recorded episodes

Examples:
  t2048 play
  t2048 play --seed 42
  t2048 replay --seed 42 --moves "wasdwasd"
  t2048 simulate --episodes 1000 --trace ./traces/run.parquet
  t2048 scores --tui`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time for play)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().Float64Var(&flagFourProb, "four-prob", 0, "Chance that a spawned tile is a 4 (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setup loads the config, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Storage.DBPath = flagDBPath
	}
	if flags.Changed("four-prob") {
		cfg.Spawn.FourProbability = flagFourProb
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048",
		Level:           level,
	})
	loadedConfig = cfg
	return nil
}
