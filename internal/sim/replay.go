package sim

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// MoveError reports an unparseable move letter.
type MoveError struct {
	Pos  int // 1-based position in the move string
	Char rune
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("sim: invalid move %q at position %d", e.Char, e.Pos)
}

func (e *MoveError) Unwrap() error {
	return t2048.ErrInvalidAction
}

// ParseMoves parses a move string of w/a/s/d letters or 0-3 digits.
// Whitespace is ignored.
func ParseMoves(s string) ([]t2048.Direction, error) {
	var moves []t2048.Direction
	pos := 0
	for _, c := range s {
		pos++
		if unicode.IsSpace(c) {
			continue
		}
		dir, err := t2048.ParseDirection(string(c))
		if err != nil {
			return nil, &MoveError{Pos: pos, Char: c}
		}
		moves = append(moves, dir)
	}
	return moves, nil
}

// ReplayStep is one applied move.
type ReplayStep struct {
	Direction t2048.Direction
	Result    t2048.StepResult
}

// Replay is the outcome of applying a move list to a seeded engine.
type Replay struct {
	Seed    int64
	Initial t2048.Board
	Steps   []ReplayStep
	Ignored int // Moves left over after the episode ended
	Final   t2048.Snapshot
}

// Done reports whether the replay reached a terminal board.
func (r Replay) Done() bool {
	return r.Final.State == t2048.StateGameOver
}

// RunReplay resets an engine seeded with seed and applies moves in order.
// Moves after the episode ends are counted in Ignored.
func RunReplay(seed int64, fourProbability float64, moves []t2048.Direction) (Replay, error) {
	engine := t2048.New(t2048.NewSource(seed), t2048.WithFourProbability(fourProbability))

	rep := Replay{
		Seed:    seed,
		Initial: engine.Reset(),
	}

	for i, dir := range moves {
		if engine.Done() {
			rep.Ignored = len(moves) - i
			break
		}
		res, err := engine.Step(dir)
		if err != nil {
			return rep, fmt.Errorf("sim: replay move %d: %w", i+1, err)
		}
		rep.Steps = append(rep.Steps, ReplayStep{Direction: dir, Result: res})
	}

	rep.Final = engine.Snapshot()
	return rep, nil
}

// IsMoveError reports whether err came from a bad move letter.
func IsMoveError(err error) bool {
	var me *MoveError
	return errors.As(err, &me)
}
