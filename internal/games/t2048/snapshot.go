package t2048

// GameStateType labels the episode status for display.
type GameStateType string

const (
	StatePlaying  GameStateType = "playing"
	StateGameOver GameStateType = "game_over"
)

// Snapshot captures everything a renderer needs between steps.
type Snapshot struct {
	Board         Board
	PreviousBoard Board
	MoveMap       MoveMap
	MergedMap     MergeMap
	NewTileMap    TileMap
	LastAction    Direction
	Score         int
	Moves         int
	MaxTile       int
	State         GameStateType
}

// Snapshot returns a consistent copy of the engine state.
func (e *Engine) Snapshot() Snapshot {
	state := StatePlaying
	if e.state.Done {
		state = StateGameOver
	}

	return Snapshot{
		Board:         e.state.Board,
		PreviousBoard: e.state.PreviousBoard,
		MoveMap:       e.state.MoveMap,
		MergedMap:     e.state.MergedMap,
		NewTileMap:    e.state.NewTileMap,
		LastAction:    e.state.LastAction,
		Score:         e.state.Score,
		Moves:         e.state.Moves,
		MaxTile:       e.state.Board.MaxTile(),
		State:         state,
	}
}

// Destinations maps each tile that moved during the last step to the cell it
// slid into, following the direction vector.
func (s Snapshot) Destinations() map[Cell]Cell {
	dRow, dCol := s.LastAction.Delta()
	out := make(map[Cell]Cell)
	for r := range BoardSize {
		for c := range BoardSize {
			steps := s.MoveMap[r][c]
			if steps == 0 {
				continue
			}
			out[Cell{Row: r, Col: c}] = Cell{Row: r + dRow*steps, Col: c + dCol*steps}
		}
	}
	return out
}
