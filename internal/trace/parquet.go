// Package trace writes per-step 2048 episode traces as zstd-compressed
// Parquet files for offline analysis.
package trace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// SchemaVersion is stored under the "schema" key of every trace file.
const SchemaVersion = "t2048_step_v1"

var (
	// ErrClosed is returned when writing to a finalized Writer.
	ErrClosed = errors.New("trace: writer is closed")
	// ErrSchema is returned for files without a matching schema version.
	ErrSchema = errors.New("trace: unsupported schema")
)

// Row is one engine step.
//
// Board holds the 16 cell log-values after the step in row-major order.
// Action uses the engine encoding: 0=Up, 1=Left, 2=Down, 3=Right.
type Row struct {
	EpisodeID string  `parquet:"episode_id,dict"`
	Seed      int64   `parquet:"seed"`
	Step      int32   `parquet:"step"`
	Board     []int32 `parquet:"board"`
	Action    int32   `parquet:"action"`
	Reward    int32   `parquet:"reward"`
	Score     int32   `parquet:"score"`
	Done      bool    `parquet:"done"`
}

// NewRow builds the trace row for one step result.
func NewRow(episodeID string, seed int64, step int, action t2048.Direction, res t2048.StepResult) Row {
	cells := res.Observation.Cells()
	board := make([]int32, len(cells))
	for i, v := range cells {
		board[i] = int32(v)
	}

	return Row{
		EpisodeID: episodeID,
		Seed:      seed,
		Step:      int32(step),
		Board:     board,
		Action:    int32(action),
		Reward:    int32(res.Reward),
		Score:     int32(res.Info.Score),
		Done:      res.Done,
	}
}

// Writer streams rows into a temporary file and moves it into place on Close.
// It is safe for concurrent use.
type Writer struct {
	mu sync.Mutex

	tmpPath string
	outPath string

	file   *os.File
	writer *parquet.GenericWriter[Row]
	rows   int
}

// NewWriter creates a writer for outPath, creating parent directories.
func NewWriter(outPath string) (*Writer, error) {
	if outPath == "" {
		return nil, fmt.Errorf("trace: output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return nil, fmt.Errorf("trace: create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("trace: open tmp parquet: %w", err)
	}

	w := parquet.NewGenericWriter[Row](
		f,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
	)
	w.SetKeyValueMetadata("schema", SchemaVersion)

	return &Writer{
		tmpPath: tmpPath,
		outPath: outPath,
		file:    f,
		writer:  w,
	}, nil
}

func (w *Writer) OutPath() string { return w.outPath }

// Rows returns how many rows have been written so far.
func (w *Writer) Rows() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rows
}

// WriteRows appends rows to the trace.
func (w *Writer) WriteRows(rows []Row) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.writer == nil {
		return ErrClosed
	}
	if len(rows) == 0 {
		return nil
	}
	if _, err := w.writer.Write(rows); err != nil {
		return fmt.Errorf("trace: write rows: %w", err)
	}
	w.rows += len(rows)
	return nil
}

// Close flushes the file and renames it to the output path.
// If no rows were written the temporary file is removed and no output is left.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.writer == nil {
		return nil
	}

	closeErr := w.writer.Close()
	w.writer = nil
	_ = w.file.Sync()
	fileErr := w.file.Close()
	w.file = nil

	if closeErr != nil {
		_ = os.Remove(w.tmpPath)
		return fmt.Errorf("trace: close parquet writer: %w", closeErr)
	}
	if fileErr != nil {
		_ = os.Remove(w.tmpPath)
		return fmt.Errorf("trace: close parquet file: %w", fileErr)
	}

	if w.rows == 0 {
		return os.Remove(w.tmpPath)
	}
	if err := os.Rename(w.tmpPath, w.outPath); err != nil {
		return fmt.Errorf("trace: rename parquet: %w", err)
	}
	return nil
}

// WriteFile writes rows to outPath in one shot through a temporary file.
func WriteFile(outPath string, rows []Row) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("trace: create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", SchemaVersion),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("trace: write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("trace: rename parquet: %w", err)
	}
	return nil
}

// ReadFile loads every row of a trace file written with SchemaVersion.
func ReadFile(path string) ([]Row, error) {
	schema, err := Schema(path)
	if err != nil {
		return nil, err
	}
	if schema != SchemaVersion {
		return nil, fmt.Errorf("%w: %s has %q, want %q", ErrSchema, path, schema, SchemaVersion)
	}

	rows, err := parquet.ReadFile[Row](path)
	if err != nil {
		return nil, fmt.Errorf("trace: read %s: %w", path, err)
	}
	return rows, nil
}

// Schema returns the schema version recorded in a trace file.
func Schema(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("trace: open %s: %w", path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("trace: stat %s: %w", path, err)
	}

	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		return "", fmt.Errorf("trace: open parquet %s: %w", path, err)
	}

	schema, ok := pf.Lookup("schema")
	if !ok {
		return "", fmt.Errorf("%w: %s has no schema metadata", ErrSchema, path)
	}
	return schema, nil
}

// DecodeBoard decodes a row's cells back into a board.
func (r Row) DecodeBoard() (t2048.Board, error) {
	cells := make([]int, len(r.Board))
	for i, v := range r.Board {
		cells[i] = int(v)
	}
	return t2048.BoardFromCells(cells)
}
