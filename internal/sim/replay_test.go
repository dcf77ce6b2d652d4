package sim

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

func TestParseMoves(t *testing.T) {
	moves, err := ParseMoves("wa sd\n0123 WASD")
	require.NoError(t, err)
	assert.Equal(t, []t2048.Direction{
		t2048.DirUp, t2048.DirLeft, t2048.DirDown, t2048.DirRight,
		t2048.DirUp, t2048.DirLeft, t2048.DirDown, t2048.DirRight,
		t2048.DirUp, t2048.DirLeft, t2048.DirDown, t2048.DirRight,
	}, moves)

	empty, err := ParseMoves("")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestParseMovesReportsPosition(t *testing.T) {
	_, err := ParseMoves("wa x")
	require.Error(t, err)

	var me *MoveError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, 4, me.Pos)
	assert.Equal(t, 'x', me.Char)
	assert.ErrorIs(t, err, t2048.ErrInvalidAction)
	assert.True(t, IsMoveError(err))
	assert.Contains(t, err.Error(), "position 4")
}

func TestRunReplayMatchesEngine(t *testing.T) {
	moves, err := ParseMoves("asdwasdwaassddww")
	require.NoError(t, err)

	rep, err := RunReplay(77, t2048.DefaultFourProbability, moves)
	require.NoError(t, err)

	e := t2048.New(t2048.NewSource(77))
	assert.Equal(t, e.Reset(), rep.Initial)
	for i, dir := range moves {
		res, err := e.Step(dir)
		require.NoError(t, err)
		assert.Equal(t, res, rep.Steps[i].Result, "step %d", i)
		assert.Equal(t, dir, rep.Steps[i].Direction)
	}
	assert.Equal(t, e.Snapshot(), rep.Final)
	assert.Zero(t, rep.Ignored)
	assert.False(t, rep.Done())
}

func TestRunReplayStopsAtGameOver(t *testing.T) {
	moves, err := ParseMoves(strings.Repeat("asdw", 5000))
	require.NoError(t, err)

	rep, err := RunReplay(5, t2048.DefaultFourProbability, moves)
	require.NoError(t, err)

	require.True(t, rep.Done(), "cycling moves should end the game")
	assert.Positive(t, rep.Ignored)
	assert.Equal(t, len(moves), len(rep.Steps)+rep.Ignored)
	assert.True(t, rep.Steps[len(rep.Steps)-1].Result.Done)
}
