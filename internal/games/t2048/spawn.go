package t2048

import (
	"errors"
	"math/rand"
)

// Source is the random source used for tile spawning.
// *rand.Rand satisfies it; tests substitute scripted sequences.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// NewSource returns a seeded source for reproducible games.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// DefaultFourProbability is the chance of spawning log-value 2 (a "4").
const DefaultFourProbability = 0.1

// ErrSpawnPrecondition means a spawn was attempted on a full board.
// The engine never does this; seeing it is a bug.
var ErrSpawnPrecondition = errors.New("t2048: spawn on a board with no empty cell")

// Spawner places new tiles.
type Spawner struct {
	src        Source
	fourChance float64
}

// NewSpawner creates a spawner drawing from src.
func NewSpawner(src Source, fourChance float64) *Spawner {
	return &Spawner{src: src, fourChance: fourChance}
}

// Spawn puts one tile on a uniformly chosen empty cell and returns that cell.
// The value is log-value 1 with probability 1-fourChance, else 2.
func (s *Spawner) Spawn(board *Board) Cell {
	empty := board.EmptyCells()
	if len(empty) == 0 {
		panic(ErrSpawnPrecondition)
	}

	cell := empty[s.src.Intn(len(empty))]

	value := 1
	if s.src.Float64() < s.fourChance {
		value = 2
	}

	board[cell.Row][cell.Col] = value
	return cell
}
