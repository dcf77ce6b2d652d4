package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/sim"
	"github.com/vovakirdan/tui-2048/internal/trace"
)

func TestPrintReplay(t *testing.T) {
	moves, err := sim.ParseMoves("adws")
	if err != nil {
		t.Fatalf("ParseMoves failed: %v", err)
	}
	rep, err := sim.RunReplay(42, t2048.DefaultFourProbability, moves)
	if err != nil {
		t.Fatalf("RunReplay failed: %v", err)
	}

	var buf bytes.Buffer
	printReplay(&buf, rep, false)
	out := buf.String()

	for _, want := range []string{"Seed 42", "#1 ← left", "#4 ↓ down", "Score ", "(in progress)", "Legal moves: "} {
		if !strings.Contains(out, want) {
			t.Errorf("replay output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	printReplay(&buf, rep, true)
	if strings.Contains(buf.String(), "#1") {
		t.Errorf("final-only output should not list steps:\n%s", buf.String())
	}
}

func TestFormatMoves(t *testing.T) {
	got := formatMoves([]t2048.Direction{t2048.DirUp, t2048.DirRight})
	if got != "↑ up, → right" {
		t.Errorf("formatMoves = %q", got)
	}
	if got := formatMoves(nil); got != "" {
		t.Errorf("formatMoves(nil) = %q, want empty", got)
	}
}

func TestReplayRowsWriteTrace(t *testing.T) {
	moves, err := sim.ParseMoves("wasdwasd")
	if err != nil {
		t.Fatalf("ParseMoves failed: %v", err)
	}
	rep, err := sim.RunReplay(3, t2048.DefaultFourProbability, moves)
	if err != nil {
		t.Fatalf("RunReplay failed: %v", err)
	}

	out := filepath.Join(t.TempDir(), "replay.parquet")
	if err := trace.WriteFile(out, replayRows(rep, "ep-3")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	rows, err := trace.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(rows) != len(rep.Steps) {
		t.Fatalf("got %d rows, want %d", len(rows), len(rep.Steps))
	}
	for i, row := range rows {
		if row.Step != int32(i) || row.Seed != 3 || row.EpisodeID != "ep-3" {
			t.Errorf("row %d = %+v", i, row)
		}
	}

	last, err := rows[len(rows)-1].DecodeBoard()
	if err != nil {
		t.Fatalf("DecodeBoard failed: %v", err)
	}
	if last != rep.Final.Board {
		t.Errorf("last traced board = %v, want %v", last, rep.Final.Board)
	}
}
