package t2048

import (
	"errors"
	"testing"
)

// TestRotationMatchesVector checks that the compaction rotation and the
// animation vector describe the same move for every direction.
func TestRotationMatchesVector(t *testing.T) {
	for _, dir := range Directions {
		t.Run(dir.String(), func(t *testing.T) {
			var board Board
			board[1][2] = 3

			res := Resolve(board, dir)
			if !res.Changed {
				t.Fatalf("tile at (1,2) should move %s", dir)
			}

			steps := res.Moves[1][2]
			dRow, dCol := dir.Delta()
			row, col := 1+dRow*steps, 2+dCol*steps
			if res.Board[row][col] != 3 {
				t.Errorf("vector says tile lands at (%d,%d), board is\n%v", row, col, res.Board)
			}

			// The tile must finish against the edge it moved toward.
			axis, sign := dir.Vector()
			edge := 0
			if sign > 0 {
				edge = BoardSize - 1
			}
			pos := col
			if axis == AxisRow {
				pos = row
			}
			if pos != edge {
				t.Errorf("tile stopped at %d along %v, want edge %d", pos, axis, edge)
			}
		})
	}
}

func TestRotateRoundTrip(t *testing.T) {
	board := Board{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	}

	for _, dir := range Directions {
		got := rotate(rotate(board, dir.Rotations()), dir.InverseRotations())
		if got != board {
			t.Errorf("%s: rotate round trip gave\n%v", dir, got)
		}
	}

	if rotate(board, 4) != board {
		t.Error("four quarter-turns should be the identity")
	}

	quarter := rotate(board, 1)
	if quarter[0] != [4]int{4, 8, 12, 16} {
		t.Errorf("counter-clockwise turn should bring the last column to the top row, got %v", quarter[0])
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
	}{
		{"up", DirUp},
		{"UP", DirUp},
		{"w", DirUp},
		{"0", DirUp},
		{"left", DirLeft},
		{"a", DirLeft},
		{"1", DirLeft},
		{" down ", DirDown},
		{"s", DirDown},
		{"2", DirDown},
		{"Right", DirRight},
		{"d", DirRight},
		{"3", DirRight},
	}

	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if err != nil {
			t.Errorf("ParseDirection(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "4", "north", "x"} {
		if _, err := ParseDirection(bad); !errors.Is(err, ErrInvalidAction) {
			t.Errorf("ParseDirection(%q) error = %v, want ErrInvalidAction", bad, err)
		}
	}
}

func TestDirectionString(t *testing.T) {
	if DirRight.String() != "right" {
		t.Errorf("DirRight.String() = %q", DirRight.String())
	}
	if Direction(9).Valid() {
		t.Error("Direction(9) should be invalid")
	}
	if Direction(9).String() != "Direction(9)" {
		t.Errorf("Direction(9).String() = %q", Direction(9).String())
	}
}

func TestInvalidDirectionAccessors(t *testing.T) {
	for _, d := range []Direction{-1, 4, 99} {
		if r := d.Rotations(); r != 0 {
			t.Errorf("%v.Rotations() = %d, want 0", d, r)
		}
		if r := d.InverseRotations(); r != 0 {
			t.Errorf("%v.InverseRotations() = %d, want 0", d, r)
		}
		if _, sign := d.Vector(); sign != 0 {
			t.Errorf("%v.Vector() sign = %d, want 0", d, sign)
		}
		if dRow, dCol := d.Delta(); dRow != 0 || dCol != 0 {
			t.Errorf("%v.Delta() = (%d,%d), want (0,0)", d, dRow, dCol)
		}
	}
}
