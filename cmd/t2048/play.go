package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play 2048 in the terminal",
	Long: `Start an interactive game of 2048.

Controls:
  Arrows/WASD  - Slide tiles
  R            - New game
  ?            - Toggle help
  Ctrl+S       - Save a screenshot
  Q/Esc        - Quit

Finished games are recorded in the scores database.

Examples:
  t2048 play
  t2048 play --seed 42
  t2048 play --four-prob 0.25`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	cfg.FourProbability = loadedConfig.Spawn.FourProbability

	// Open score storage
	store, err := storage.Open(loadedConfig.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(store, logger, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
