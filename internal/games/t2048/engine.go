package t2048

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidAction is returned for a direction outside the four moves.
	ErrInvalidAction = errors.New("t2048: invalid action")
	// ErrNotReset is returned when stepping an engine that was never reset.
	ErrNotReset = errors.New("t2048: step before reset")
)

// GameState is the full mutable state of one episode.
// It is a plain value: copies never alias the engine's state.
type GameState struct {
	Board         Board
	PreviousBoard Board     // board right before the last resolved move
	MoveMap       MoveMap   // slide distance per source tile, last move
	MergedMap     MergeMap  // merge destinations, last move
	NewTileMap    TileMap   // cell that received the spawned tile
	LastAction    Direction // direction of the last step
	Score         int
	Moves         int // board-changing steps this episode
	Done          bool
}

// Info carries auxiliary step data.
type Info struct {
	Score   int
	Moves   int
	MaxTile int
	Changed bool
}

// StepResult is returned by Engine.Step.
type StepResult struct {
	Observation Board
	Reward      int
	Done        bool
	Info        Info
}

// Option configures an Engine.
type Option func(*Engine)

// WithFourProbability sets the chance of spawning a 4 instead of a 2.
// Values outside [0, 1], and NaN, leave the default in place.
func WithFourProbability(p float64) Option {
	return func(e *Engine) {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return
		}
		e.fourChance = p
	}
}

// Engine owns the game state and applies moves to it.
// It is not safe for concurrent use; separate engines share nothing.
type Engine struct {
	spawner    *Spawner
	fourChance float64
	state      GameState
	ready      bool
}

// New creates an engine drawing randomness from src. Call Reset before Step.
func New(src Source, opts ...Option) *Engine {
	e := &Engine{fourChance: DefaultFourProbability}
	for _, opt := range opts {
		opt(e)
	}
	e.spawner = NewSpawner(src, e.fourChance)
	return e
}

// Reset starts a fresh episode with two spawned tiles and returns the board.
func (e *Engine) Reset() Board {
	var board Board
	e.spawner.Spawn(&board)
	e.spawner.Spawn(&board)

	// LastAction starts at encoding 0, matching a freshly reset action slot.
	e.state = GameState{
		Board:         board,
		PreviousBoard: board,
		LastAction:    DirUp,
	}
	e.ready = true
	return board
}

// Step applies one move. Invalid directions are rejected before any state
// changes. A move that changes nothing is not an error: it yields zero reward.
func (e *Engine) Step(dir Direction) (StepResult, error) {
	if !dir.Valid() {
		return StepResult{}, fmt.Errorf("%w: %d", ErrInvalidAction, int(dir))
	}
	if !e.ready {
		return StepResult{}, ErrNotReset
	}

	if e.state.Done {
		return e.result(0, false), nil
	}

	res := Resolve(e.state.Board, dir)
	if !res.Changed {
		e.state.PreviousBoard = e.state.Board
		e.state.MoveMap = MoveMap{}
		e.state.MergedMap = MergeMap{}
		e.state.NewTileMap = TileMap{}
		e.state.LastAction = dir
		// A board with an empty cell always has some legal move.
		if !e.state.Board.HasEmptyCell() {
			e.state.Done = IsTerminal(e.state.Board)
		}
		return e.result(0, false), nil
	}

	reward := ScoreDelta(res.Board, res.Merged)

	next := res.Board
	cell := e.spawner.Spawn(&next)
	var spawned TileMap
	spawned[cell.Row][cell.Col] = true

	e.state = GameState{
		Board:         next,
		PreviousBoard: e.state.Board,
		MoveMap:       res.Moves,
		MergedMap:     res.Merged,
		NewTileMap:    spawned,
		LastAction:    dir,
		Score:         e.state.Score + reward,
		Moves:         e.state.Moves + 1,
		Done:          IsTerminal(next),
	}

	return e.result(reward, true), nil
}

func (e *Engine) result(reward int, changed bool) StepResult {
	return StepResult{
		Observation: e.state.Board,
		Reward:      reward,
		Done:        e.state.Done,
		Info: Info{
			Score:   e.state.Score,
			Moves:   e.state.Moves,
			MaxTile: e.state.Board.MaxTile(),
			Changed: changed,
		},
	}
}

// Ready reports whether Reset has been called.
func (e *Engine) Ready() bool { return e.ready }

// State returns a copy of the full game state.
func (e *Engine) State() GameState { return e.state }

func (e *Engine) Board() Board { return e.state.Board }
func (e *Engine) PreviousBoard() Board { return e.state.PreviousBoard }
func (e *Engine) MoveMap() MoveMap { return e.state.MoveMap }
func (e *Engine) MergedMap() MergeMap { return e.state.MergedMap }
func (e *Engine) NewTileMap() TileMap { return e.state.NewTileMap }
func (e *Engine) LastAction() Direction { return e.state.LastAction }
func (e *Engine) Score() int { return e.state.Score }
func (e *Engine) Done() bool { return e.state.Done }
