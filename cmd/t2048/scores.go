package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagLimit  int
	flagSource string
	flagTUI    bool
	flagClear  bool
	flagID     string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show recorded episodes",
	Long: `Display the top recorded episodes.

Sources:
  player     - Games played with 't2048 play'
  simulator  - Episodes saved by 't2048 simulate --save'

Examples:
  t2048 scores
  t2048 scores --source simulator --limit 20
  t2048 scores --tui
  t2048 scores --id 6f1c2f0e-8d7a-4c1e-9a57-3b0f4f3e2a10
  t2048 scores --clear --source simulator`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of episodes to show")
	scoresCmd.Flags().StringVar(&flagSource, "source", "", "Filter by source: player or simulator")
	scoresCmd.Flags().BoolVar(&flagTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete episodes of --source (all when empty)")
	scoresCmd.Flags().StringVar(&flagID, "id", "", "Show one episode by its ID")
}

func runScores(cmd *cobra.Command, _ []string) error {
	switch flagSource {
	case "", storage.SourcePlayer, storage.SourceSimulator:
	default:
		return fmt.Errorf("unknown source %q", flagSource)
	}

	// Open score storage
	store, err := storage.Open(loadedConfig.Storage.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.Clear(flagSource); err != nil {
			return err
		}
		logger.Info("episodes cleared", "source", flagSource)
		return nil
	}

	if flagID != "" {
		id, err := uuid.Parse(flagID)
		if err != nil {
			return fmt.Errorf("invalid episode id %q: %w", flagID, err)
		}
		ep, err := store.EpisodeByID(id)
		if err != nil {
			return err
		}
		if ep == nil {
			return fmt.Errorf("episode %s not found", id)
		}
		printEpisode(cmd.OutOrStdout(), *ep)
		return nil
	}

	if flagTUI {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		return tui.RunScoreboard(store, width, height)
	}

	episodes, err := store.TopEpisodes(flagSource, flagLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "High Scores - 2048")
	fmt.Fprintln(out)

	if len(episodes) == 0 {
		fmt.Fprintln(out, "No episodes recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 't2048 play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Fprintf(out, "  %-4s  %-8s  %-6s  %-6s  %-10s  %s\n", "Rank", "Score", "Max", "Moves", "Source", "Date")
	fmt.Fprintf(out, "  %-4s  %-8s  %-6s  %-6s  %-10s  %s\n", "----", "-----", "---", "-----", "------", "----")

	for i, ep := range episodes {
		fmt.Fprintf(out, "  %-4d  %-8d  %-6d  %-6d  %-10s  %s\n",
			i+1, ep.Score, ep.MaxTile, ep.Moves, ep.Source, ep.CreatedAt.Format("2006-01-02 15:04"))
	}

	// Show aggregate stats
	fmt.Fprintln(out)
	if stats, err := store.GetStats(); err == nil {
		fmt.Fprintf(out, "Best: %d  Average: %.0f  Best tile: %d  Episodes: %d\n",
			stats.HighScore, stats.AvgScore, stats.BestTile, stats.Episodes)
	}
	return nil
}

// printEpisode prints the details of one episode, including the seed to
// replay it from.
func printEpisode(w io.Writer, ep storage.Episode) {
	fmt.Fprintf(w, "Episode  %s\n", ep.EpisodeID)
	fmt.Fprintf(w, "Source   %s\n", ep.Source)
	fmt.Fprintf(w, "Seed     %d\n", ep.Seed)
	fmt.Fprintf(w, "Score    %d\n", ep.Score)
	fmt.Fprintf(w, "Max tile %d\n", ep.MaxTile)
	fmt.Fprintf(w, "Moves    %d\n", ep.Moves)
	fmt.Fprintf(w, "Date     %s\n", ep.CreatedAt.Format("2006-01-02 15:04"))
}
