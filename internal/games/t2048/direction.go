package t2048

import (
	"fmt"
	"strconv"
	"strings"
)

// Direction represents a move direction. The numeric values are the wire
// encoding of actions.
type Direction int

const (
	DirUp Direction = iota
	DirLeft
	DirDown
	DirRight
)

// Directions lists every valid direction in encoding order.
var Directions = [...]Direction{DirUp, DirLeft, DirDown, DirRight}

// Axis is the board axis a move travels along.
type Axis int

const (
	AxisRow Axis = iota // vertical moves change the row index
	AxisCol             // horizontal moves change the column index
)

// directionInfo is the single source of truth for how a direction is
// normalized for compaction and how a renderer should animate it.
type directionInfo struct {
	name  string
	turns int // counter-clockwise quarter-turns that make the move "toward column 0"
	axis  Axis
	sign  int
}

var directionTable = [...]directionInfo{
	DirUp:    {name: "up", turns: 1, axis: AxisRow, sign: -1},
	DirLeft:  {name: "left", turns: 0, axis: AxisCol, sign: -1},
	DirDown:  {name: "down", turns: 3, axis: AxisRow, sign: 1},
	DirRight: {name: "right", turns: 2, axis: AxisCol, sign: 1},
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// String returns the lowercase direction name.
func (d Direction) String() string {
	if !d.Valid() {
		return "Direction(" + strconv.Itoa(int(d)) + ")"
	}
	return directionTable[d].name
}

// Rotations returns the counter-clockwise quarter-turns applied before compaction.
// It is 0 for an invalid direction.
func (d Direction) Rotations() int {
	if !d.Valid() {
		return 0
	}
	return directionTable[d].turns
}

// InverseRotations returns the quarter-turns that restore orientation.
func (d Direction) InverseRotations() int {
	return (4 - d.Rotations()) % 4
}

// Vector returns the animation axis and sign of travel.
// An invalid direction has sign 0.
func (d Direction) Vector() (Axis, int) {
	if !d.Valid() {
		return AxisRow, 0
	}
	info := directionTable[d]
	return info.axis, info.sign
}

// Delta returns the per-step (row, col) displacement of a sliding tile.
func (d Direction) Delta() (dRow, dCol int) {
	axis, sign := d.Vector()
	if axis == AxisRow {
		return sign, 0
	}
	return 0, sign
}

// Arrow returns a single glyph for the direction.
func (d Direction) Arrow() string {
	switch d {
	case DirUp:
		return "↑"
	case DirLeft:
		return "←"
	case DirDown:
		return "↓"
	case DirRight:
		return "→"
	default:
		return "?"
	}
}

// ParseDirection parses a direction name, a w/a/s/d key letter or the
// numeric encoding.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "w", "0":
		return DirUp, nil
	case "left", "a", "1":
		return DirLeft, nil
	case "down", "s", "2":
		return DirDown, nil
	case "right", "d", "3":
		return DirRight, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAction, s)
}
