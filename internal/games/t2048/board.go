// Package t2048 implements the deterministic state-transition engine of the
// 2048 sliding-tile puzzle on a fixed 4x4 grid.
//
// Cells hold log-values: 0 is empty and v > 0 is a tile showing 2^v.
// The engine is pure and synchronous; randomness comes only from the Source
// handed to New.
package t2048

import (
	"errors"
	"fmt"
)

// BoardSize is the board dimension.
const BoardSize = 4

// CellCount is the number of cells on the board.
const CellCount = BoardSize * BoardSize

// MaxLogValue is the largest log-value a 4x4 board can hold.
const MaxLogValue = CellCount

// Board is the 4x4 grid of log-values, indexed [row][col].
type Board [BoardSize][BoardSize]int

// MoveMap holds the number of slide steps each source tile travelled.
type MoveMap [BoardSize][BoardSize]int

// MergeMap marks cells that received a merged tile.
type MergeMap [BoardSize][BoardSize]bool

// TileMap marks cells that received a freshly spawned tile.
type TileMap [BoardSize][BoardSize]bool

// Cell addresses one board position.
type Cell struct {
	Row, Col int
}

// ErrBadCells is returned when decoding a malformed cell list.
var ErrBadCells = errors.New("t2048: malformed board cells")

// TileValue returns the displayed value of a log-value (0 for empty).
func TileValue(v int) int {
	if v <= 0 {
		return 0
	}
	return 1 << v
}

// Cells returns the board as 16 log-values in row-major order.
func (b Board) Cells() []int {
	cells := make([]int, 0, CellCount)
	for r := range BoardSize {
		cells = append(cells, b[r][:]...)
	}
	return cells
}

// BoardFromCells decodes 16 row-major log-values.
func BoardFromCells(cells []int) (Board, error) {
	var b Board
	if len(cells) != CellCount {
		return b, fmt.Errorf("%w: got %d cells, want %d", ErrBadCells, len(cells), CellCount)
	}
	for i, v := range cells {
		if v < 0 || v > MaxLogValue {
			return b, fmt.Errorf("%w: cell %d has log-value %d", ErrBadCells, i, v)
		}
		b[i/BoardSize][i%BoardSize] = v
	}
	return b, nil
}

// EmptyCells returns coordinates of all empty cells in row-major order.
func (b Board) EmptyCells() []Cell {
	var cells []Cell
	for r := range BoardSize {
		for c := range BoardSize {
			if b[r][c] == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// HasEmptyCell returns true if there's at least one empty cell.
func (b Board) HasEmptyCell() bool {
	for r := range BoardSize {
		for c := range BoardSize {
			if b[r][c] == 0 {
				return true
			}
		}
	}
	return false
}

// TileCount returns the number of non-empty cells.
func (b Board) TileCount() int {
	n := 0
	for r := range BoardSize {
		for c := range BoardSize {
			if b[r][c] != 0 {
				n++
			}
		}
	}
	return n
}

// MaxTile returns the largest displayed tile value on the board.
func (b Board) MaxTile() int {
	maxVal := 0
	for r := range BoardSize {
		for c := range BoardSize {
			if b[r][c] > maxVal {
				maxVal = b[r][c]
			}
		}
	}
	return TileValue(maxVal)
}

// Total returns the sum of displayed tile values. Moves conserve it.
func (b Board) Total() int {
	sum := 0
	for r := range BoardSize {
		for c := range BoardSize {
			sum += TileValue(b[r][c])
		}
	}
	return sum
}

// String renders the board as rows of displayed values.
func (b Board) String() string {
	out := make([]byte, 0, CellCount*6)
	for r := range BoardSize {
		if r > 0 {
			out = append(out, '\n')
		}
		for c := range BoardSize {
			if c > 0 {
				out = append(out, ' ')
			}
			if b[r][c] == 0 {
				out = fmt.Appendf(out, "%5s", ".")
				continue
			}
			out = fmt.Appendf(out, "%5d", TileValue(b[r][c]))
		}
	}
	return string(out)
}

// rotate turns a grid counter-clockwise by steps quarter-turns.
func rotate[G ~[BoardSize][BoardSize]T, T any](g G, steps int) G {
	steps = ((steps % 4) + 4) % 4
	for range steps {
		var out G
		for r := range BoardSize {
			for c := range BoardSize {
				out[r][c] = g[c][BoardSize-1-r]
			}
		}
		g = out
	}
	return g
}
