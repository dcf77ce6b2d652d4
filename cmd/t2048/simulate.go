package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/sim"
	"github.com/vovakirdan/tui-2048/internal/storage"
	"github.com/vovakirdan/tui-2048/internal/trace"
)

var (
	flagEpisodes  int
	flagMaxSteps  int
	flagWorkers   int
	flagTracePath string
	flagSave      bool
	flagQuiet     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run random-play episodes",
	Long: `Play episodes with a uniform random direction driver.

Episode i uses seed+i, so a run is reproducible with the same --seed.
Each episode stops at game over or after --max-steps steps.
Ctrl+C stops the run and reports the episodes finished so far.

Examples:
  t2048 simulate --episodes 100
  t2048 simulate --seed 1 --episodes 1000 --save
  t2048 simulate --episodes 50 --trace ./traces/random.parquet`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagEpisodes, "episodes", 0, "Number of episodes (default from config)")
	simulateCmd.Flags().IntVar(&flagMaxSteps, "max-steps", 0, "Step cap per episode (default from config)")
	simulateCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Parallel episodes (0 = CPU count)")
	simulateCmd.Flags().StringVar(&flagTracePath, "trace", "", "Write per-step rows to this Parquet file")
	simulateCmd.Flags().BoolVar(&flagSave, "save", false, "Record finished episodes in the scores database")
	simulateCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Print only the summary")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	opts := sim.Options{
		Episodes:        loadedConfig.Simulate.Episodes,
		MaxSteps:        loadedConfig.Simulate.MaxSteps,
		Seed:            flagSeed,
		FourProbability: loadedConfig.Spawn.FourProbability,
		Workers:         flagWorkers,
	}
	if cmd.Flags().Changed("episodes") {
		opts.Episodes = flagEpisodes
	}
	if cmd.Flags().Changed("max-steps") {
		opts.MaxSteps = flagMaxSteps
	}
	if opts.Episodes <= 0 {
		return fmt.Errorf("episodes must be positive, got %d", opts.Episodes)
	}

	runOpts := []sim.Option{sim.WithLogger(logger)}

	if flagSave {
		store, err := storage.Open(loadedConfig.Storage.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		runOpts = append(runOpts, sim.WithStore(store))
	}

	var traceWriter *trace.Writer
	if flagTracePath != "" {
		w, err := trace.NewWriter(flagTracePath)
		if err != nil {
			return err
		}
		traceWriter = w
		runOpts = append(runOpts, sim.WithTrace(w))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting simulation", "episodes", opts.Episodes, "seed", opts.Seed, "max_steps", opts.MaxSteps)
	start := time.Now()
	results, runErr := sim.NewRunner(opts, runOpts...).Run(ctx)
	elapsed := time.Since(start)

	if traceWriter != nil {
		if err := traceWriter.Close(); err != nil {
			return err
		}
		logger.Info("trace written", "path", traceWriter.OutPath(), "rows", traceWriter.Rows())
	}

	out := cmd.OutOrStdout()
	if !flagQuiet {
		fmt.Fprintf(out, "  %-6s  %-12s  %-8s  %-6s  %-8s  %s\n", "#", "Seed", "Score", "Moves", "Max", "End")
		for _, res := range results {
			end := "game over"
			if !res.Done {
				end = "step cap"
			}
			fmt.Fprintf(out, "  %-6d  %-12d  %-8d  %-6d  %-8d  %s\n",
				res.Index, res.Seed, res.Score, res.Moves, res.MaxTile, end)
		}
		fmt.Fprintln(out)
	}

	sum := sim.Summarize(results)
	fmt.Fprintf(out, "Episodes %d (%d finished)  best %d  avg %.1f  best tile %d  avg moves %.1f  in %s\n",
		sum.Episodes, sum.Finished, sum.BestScore, sum.AvgScore, sum.BestTile, sum.AvgMoves,
		elapsed.Round(time.Millisecond))

	if errors.Is(runErr, context.Canceled) {
		logger.Warn("simulation interrupted", "completed", len(results))
		return nil
	}
	return runErr
}
