// Package sim drives 2048 engines without a terminal: batch random play for
// statistics and trace export, and deterministic replay of recorded moves.
package sim

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
	"github.com/vovakirdan/tui-2048/internal/trace"
)

// DefaultMaxSteps caps an episode when Options.MaxSteps is not set.
const DefaultMaxSteps = 10000

// Options controls a simulation run.
type Options struct {
	Episodes        int
	MaxSteps        int   // Step cap per episode, including no-op steps
	Seed            int64 // Episode i uses Seed+i
	FourProbability float64
	Workers         int // Parallel episodes; defaults to the CPU count
}

// EpisodeResult summarizes one simulated episode.
type EpisodeResult struct {
	Index     int
	EpisodeID uuid.UUID
	Seed      int64
	Score     int
	Moves     int // Board-changing steps
	Steps     int // All steps, including no-ops
	MaxTile   int
	Done      bool // False when the step cap ended the episode
	Board     t2048.Board
}

// Runner plays episodes with a uniform random direction driver.
type Runner struct {
	opts   Options
	store  *storage.Store
	trace  *trace.Writer
	logger *log.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithStore saves finished episodes to store.
func WithStore(store *storage.Store) Option {
	return func(r *Runner) {
		r.store = store
	}
}

// WithTrace writes one row per step to w.
func WithTrace(w *trace.Writer) Option {
	return func(r *Runner) {
		r.trace = w
	}
}

// WithLogger sets the logger used for per-episode reports.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// NewRunner creates a Runner. Zero MaxSteps and Workers take defaults.
func NewRunner(opts Options, options ...Option) *Runner {
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = DefaultMaxSteps
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Workers > opts.Episodes && opts.Episodes > 0 {
		opts.Workers = opts.Episodes
	}

	r := &Runner{opts: opts}
	for _, o := range options {
		o(r)
	}
	if r.logger == nil {
		r.logger = log.Default()
	}
	return r
}

// Run plays every episode and returns the results in episode order.
// On cancellation or failure it returns the episodes completed so far along
// with the first error.
func (r *Runner) Run(ctx context.Context) ([]EpisodeResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	results := make([]EpisodeResult, r.opts.Episodes)
	completed := make([]bool, r.opts.Episodes)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for range r.opts.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res, err := r.RunEpisode(ctx, i)
				mu.Lock()
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
					cancel()
				} else {
					results[i] = res
					completed[i] = true
				}
				mu.Unlock()
			}
		}()
	}

feed:
	for i := range r.opts.Episodes {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	done := make([]EpisodeResult, 0, len(results))
	for i, res := range results {
		if completed[i] {
			done = append(done, res)
		}
	}

	if firstErr == nil {
		firstErr = ctx.Err()
	}
	return done, firstErr
}

// RunEpisode plays episode index to the end or to the step cap.
// Cancellation is checked between steps.
func (r *Runner) RunEpisode(ctx context.Context, index int) (EpisodeResult, error) {
	seed := r.opts.Seed + int64(index)
	engine := t2048.New(t2048.NewSource(seed), t2048.WithFourProbability(r.opts.FourProbability))
	driver := t2048.NewSource(^seed)
	engine.Reset()

	res := EpisodeResult{
		Index:     index,
		EpisodeID: uuid.New(),
		Seed:      seed,
	}

	var rows []trace.Row
	for res.Steps < r.opts.MaxSteps && !engine.Done() {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		dir := t2048.Directions[driver.Intn(len(t2048.Directions))]
		step, err := engine.Step(dir)
		if err != nil {
			return res, fmt.Errorf("sim: episode %d step %d: %w", index, res.Steps, err)
		}
		if r.trace != nil {
			rows = append(rows, trace.NewRow(res.EpisodeID.String(), seed, res.Steps, dir, step))
		}
		res.Steps++
	}

	snap := engine.Snapshot()
	res.Score = snap.Score
	res.Moves = snap.Moves
	res.MaxTile = snap.MaxTile
	res.Done = engine.Done()
	res.Board = snap.Board

	if r.trace != nil {
		if err := r.trace.WriteRows(rows); err != nil {
			return res, fmt.Errorf("sim: episode %d: %w", index, err)
		}
	}

	if r.store != nil && res.Done {
		_, err := r.store.SaveEpisode(storage.Episode{
			EpisodeID: res.EpisodeID,
			Seed:      seed,
			Score:     res.Score,
			MaxTile:   res.MaxTile,
			Moves:     res.Moves,
			Source:    storage.SourceSimulator,
		})
		if err != nil {
			return res, fmt.Errorf("sim: episode %d: %w", index, err)
		}
	}

	r.logger.Debug("episode finished",
		"episode", index,
		"seed", seed,
		"score", res.Score,
		"moves", res.Moves,
		"max_tile", res.MaxTile,
		"done", res.Done,
	)
	return res, nil
}

// Summary aggregates a batch of episode results.
type Summary struct {
	Episodes  int
	Finished  int // Episodes that reached a terminal board
	BestScore int
	AvgScore  float64
	BestTile  int
	AvgMoves  float64
}

// Summarize aggregates results.
func Summarize(results []EpisodeResult) Summary {
	s := Summary{Episodes: len(results)}
	if len(results) == 0 {
		return s
	}

	var scores, moves int
	for _, res := range results {
		if res.Done {
			s.Finished++
		}
		s.BestScore = max(s.BestScore, res.Score)
		s.BestTile = max(s.BestTile, res.MaxTile)
		scores += res.Score
		moves += res.Moves
	}
	s.AvgScore = float64(scores) / float64(len(results))
	s.AvgMoves = float64(moves) / float64(len(results))
	return s
}
