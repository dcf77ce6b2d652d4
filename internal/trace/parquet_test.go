package trace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

func playRows(t *testing.T, seed int64, steps int) []Row {
	t.Helper()

	e := t2048.New(t2048.NewSource(seed))
	e.Reset()

	var rows []Row
	for i := 0; i < steps && !e.Done(); i++ {
		dir := t2048.Directions[i%len(t2048.Directions)]
		res, err := e.Step(dir)
		require.NoError(t, err)
		rows = append(rows, NewRow("ep-1", seed, i, dir, res))
	}
	return rows
}

func TestWriterRoundTrip(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "trace.parquet")
	rows := playRows(t, 11, 20)

	w, err := NewWriter(out)
	require.NoError(t, err)
	require.NoError(t, w.WriteRows(rows[:5]))
	require.NoError(t, w.WriteRows(rows[5:]))
	assert.Equal(t, len(rows), w.Rows())
	require.NoError(t, w.Close())

	_, err = os.Stat(out + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be gone")

	got, err := ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, rows, got)

	schema, err := Schema(out)
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, schema)

	assert.ErrorIs(t, w.WriteRows(rows), ErrClosed)
	assert.NoError(t, w.Close(), "closing twice is a no-op")
}

func TestWriterWithoutRowsLeavesNoFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "empty.parquet")

	w, err := NewWriter(out)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(out + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestWriteFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "trace.parquet")
	rows := playRows(t, 4, 8)

	require.NoError(t, WriteFile(out, rows))

	got, err := ReadFile(out)
	require.NoError(t, err)
	require.Len(t, got, len(rows))

	schema, err := Schema(out)
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, schema)
}

func TestReadFileRejectsForeignSchema(t *testing.T) {
	dir := t.TempDir()
	rows := playRows(t, 5, 4)

	bare := filepath.Join(dir, "bare.parquet")
	require.NoError(t, parquet.WriteFile(bare, rows))
	_, err := ReadFile(bare)
	require.ErrorIs(t, err, ErrSchema)

	old := filepath.Join(dir, "old.parquet")
	require.NoError(t, parquet.WriteFile(old, rows, parquet.KeyValueMetadata("schema", "t2048_step_v0")))
	_, err = ReadFile(old)
	require.ErrorIs(t, err, ErrSchema)
}

func TestNewRow(t *testing.T) {
	res := t2048.StepResult{
		Observation: t2048.Board{{1, 2, 0, 0}, {0, 0, 0, 11}},
		Reward:      8,
		Done:        true,
		Info:        t2048.Info{Score: 40},
	}

	row := NewRow("ep", 9, 3, t2048.DirRight, res)
	assert.Equal(t, int32(3), row.Action)
	assert.Equal(t, int32(8), row.Reward)
	assert.Equal(t, int32(40), row.Score)
	assert.True(t, row.Done)
	require.Len(t, row.Board, t2048.CellCount)
	assert.Equal(t, int32(11), row.Board[7])

	board, err := row.DecodeBoard()
	require.NoError(t, err)
	assert.Equal(t, res.Observation, board)
}
