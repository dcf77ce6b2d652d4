package t2048

// compactRow slides a single row toward index 0 and merges equal neighbours.
// A tile merges at most once per move: the write cursor advances past every
// merge result. moves is indexed by source position, merged by destination.
func compactRow(row [BoardSize]int) (out [BoardSize]int, moves [BoardSize]int, merged [BoardSize]bool) {
	last := 0
	out[0] = row[0]

	for i := 1; i < BoardSize; i++ {
		val := row[i]
		if val == 0 {
			continue
		}

		switch out[last] {
		case val:
			out[last] = val + 1
			merged[last] = true
			moves[i] = i - last
			last++
		case 0:
			out[last] = val
			moves[i] = i - last
		default:
			out[last+1] = val
			moves[i] = i - last - 1
			last++
		}
	}

	return out, moves, merged
}

// Resolution is the outcome of applying one direction to a board, before any
// tile is spawned.
type Resolution struct {
	Board   Board
	Moves   MoveMap
	Merged  MergeMap
	Changed bool
}

// Resolve slides every row toward the requested direction.
// The board is rotated so the move points toward column 0, each row is
// compacted, and the board and both maps are rotated back.
// An invalid direction resolves to the unchanged board.
func Resolve(board Board, dir Direction) Resolution {
	if !dir.Valid() {
		return Resolution{Board: board}
	}

	rotated := rotate(board, dir.Rotations())

	var (
		out    Board
		moves  MoveMap
		merged MergeMap
	)
	for r := range BoardSize {
		row := rotated[r]
		if row == ([BoardSize]int{}) {
			continue
		}
		out[r], moves[r], merged[r] = compactRow(row)
	}

	back := dir.InverseRotations()
	res := Resolution{
		Board:  rotate(out, back),
		Moves:  rotate(moves, back),
		Merged: rotate(merged, back),
	}
	res.Changed = res.Board != board
	return res
}

// ScoreDelta sums the displayed value of every tile produced by a merge.
// after must be the board right after the move, before spawning.
func ScoreDelta(after Board, merged MergeMap) int {
	score := 0
	for r := range BoardSize {
		for c := range BoardSize {
			if merged[r][c] {
				score += TileValue(after[r][c])
			}
		}
	}
	return score
}

// IsTerminal returns true if the board is full and no direction changes it.
func IsTerminal(board Board) bool {
	if board.HasEmptyCell() {
		return false
	}
	for _, dir := range Directions {
		if Resolve(board, dir).Changed {
			return false
		}
	}
	return true
}

// CanMove returns true if dir would change the board.
func CanMove(board Board, dir Direction) bool {
	return Resolve(board, dir).Changed
}

// LegalMoves returns the directions that change the board, in encoding order.
func LegalMoves(board Board) []Direction {
	var dirs []Direction
	for _, dir := range Directions {
		if CanMove(board, dir) {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
