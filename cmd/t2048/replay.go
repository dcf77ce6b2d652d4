package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/sim"
	"github.com/vovakirdan/tui-2048/internal/trace"
)

var (
	flagMoves       string
	flagFinalOnly   bool
	flagReplayTrace string
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a move list from a seed",
	Long: `Reset an engine with --seed and apply --moves in order, printing each board.

Moves are w/a/s/d letters (or 0-3 digits: 0=up, 1=left, 2=down, 3=right).
Whitespace is ignored. Moves after the game ends are skipped.

Examples:
  t2048 replay --seed 42 --moves "wasd"
  t2048 replay --seed 7 --moves "aaddssww" --final
  t2048 replay --seed 7 --moves "aaddssww" --trace ./traces/replay.parquet`,
	Args: cobra.NoArgs,
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagMoves, "moves", "", "Move string, e.g. \"wasd\"")
	replayCmd.Flags().BoolVar(&flagFinalOnly, "final", false, "Print only the final board")
	replayCmd.Flags().StringVar(&flagReplayTrace, "trace", "", "Write the replayed steps to this Parquet file")
}

func runReplay(cmd *cobra.Command, _ []string) error {
	moves, err := sim.ParseMoves(flagMoves)
	if sim.IsMoveError(err) {
		return fmt.Errorf("--moves: %w", err)
	}
	if err != nil {
		return err
	}

	rep, err := sim.RunReplay(flagSeed, loadedConfig.Spawn.FourProbability, moves)
	if err != nil {
		return err
	}

	if flagReplayTrace != "" {
		rows := replayRows(rep, uuid.NewString())
		if err := trace.WriteFile(flagReplayTrace, rows); err != nil {
			return err
		}
		logger.Info("trace written", "path", flagReplayTrace, "rows", len(rows))
	}

	printReplay(cmd.OutOrStdout(), rep, flagFinalOnly)
	return nil
}

// replayRows converts the applied steps of a replay to trace rows.
func replayRows(rep sim.Replay, episodeID string) []trace.Row {
	rows := make([]trace.Row, 0, len(rep.Steps))
	for i, step := range rep.Steps {
		rows = append(rows, trace.NewRow(episodeID, rep.Seed, i, step.Direction, step.Result))
	}
	return rows
}

func printReplay(w io.Writer, rep sim.Replay, finalOnly bool) {
	if !finalOnly {
		fmt.Fprintf(w, "Seed %d\n", rep.Seed)
		fmt.Fprintln(w, tui.BoardText(rep.Initial))

		for i, step := range rep.Steps {
			res := step.Result
			note := ""
			if !res.Info.Changed {
				note = "  (no change)"
			}
			fmt.Fprintf(w, "\n#%d %s %s  reward %d  score %d%s\n",
				i+1, step.Direction.Arrow(), step.Direction, res.Reward, res.Info.Score, note)
			fmt.Fprintln(w, tui.BoardText(res.Observation))
		}
		fmt.Fprintln(w)
	} else {
		fmt.Fprintln(w, tui.BoardText(rep.Final.Board))
	}

	status := "in progress"
	if rep.Done() {
		status = "game over"
	}
	fmt.Fprintf(w, "Score %d  Moves %d  Max tile %d  (%s)\n",
		rep.Final.Score, rep.Final.Moves, rep.Final.MaxTile, status)
	if !rep.Done() {
		fmt.Fprintf(w, "Legal moves: %s\n", formatMoves(t2048.LegalMoves(rep.Final.Board)))
	}
	if rep.Ignored > 0 {
		fmt.Fprintf(w, "%d moves after game over were skipped\n", rep.Ignored)
	}
}

func formatMoves(dirs []t2048.Direction) string {
	names := make([]string, len(dirs))
	for i, d := range dirs {
		names[i] = d.Arrow() + " " + d.String()
	}
	return strings.Join(names, ", ")
}
