package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

func TestBoardText(t *testing.T) {
	board := t2048.Board{
		{1, 0, 0, 11},
		{0, 0, 0, 0},
		{0, 16, 0, 0},
		{0, 0, 0, 0},
	}

	lines := strings.Split(BoardText(board), "\n")
	if len(lines) != boardHeight {
		t.Fatalf("BoardText has %d lines, want %d", len(lines), boardHeight)
	}

	if lines[0] != "┌──────┬──────┬──────┬──────┐" {
		t.Errorf("top border = %q", lines[0])
	}
	if lines[1] != "│  2   │      │      │ 2048 │" {
		t.Errorf("first row = %q", lines[1])
	}
	if lines[5] != "│      │65536 │      │      │" {
		t.Errorf("third row = %q", lines[5])
	}
	if lines[boardHeight-1] != "└──────┴──────┴──────┴──────┘" {
		t.Errorf("bottom border = %q", lines[boardHeight-1])
	}
}

func TestRenderGameMarkers(t *testing.T) {
	snap := t2048.Snapshot{
		Board: t2048.Board{{2, 0, 0, 1}},
		State: t2048.StatePlaying,
	}
	snap.MergedMap[0][0] = true
	snap.NewTileMap[0][3] = true

	s := core.NewScreen(MinScreenW, MinScreenH)
	boardX := (s.Width() - boardWidth) / 2
	rowY := hudHeight + 2
	markerX := func(col int) int { return boardX + col*cellWidth + cellWidth - 1 }

	RenderGame(s, snap, true)
	if got := s.Get(markerX(0), rowY); got != markMerged {
		t.Errorf("merged marker = %q, want %q", got, markMerged)
	}
	if got := s.Get(markerX(3), rowY); got != markNew {
		t.Errorf("new tile marker = %q, want %q", got, markNew)
	}
	if c := s.GetCell(boardX+3, rowY).Color; c != TileColor(2) {
		t.Errorf("tile color = %v, want %v", c, TileColor(2))
	}
	// The whole tile block carries the tile color, padding included
	for x := boardX + 1; x < markerX(0); x++ {
		if c := s.GetCell(x, rowY).Color; c != TileColor(2) {
			t.Errorf("tile block at x=%d has color %v, want %v", x, c, TileColor(2))
		}
	}
	if c := s.GetCell(markerX(0), rowY).Color; c != markerColor {
		t.Errorf("marker color = %v, want %v", c, markerColor)
	}

	RenderGame(s, snap, false)
	if got := s.Get(markerX(0), rowY); got != ' ' {
		t.Errorf("markers should be hidden without highlight, got %q", got)
	}
}

func TestRenderGameOverlayAndHUD(t *testing.T) {
	snap := t2048.Snapshot{
		Score:      1234,
		Moves:      7,
		MaxTile:    128,
		LastAction: t2048.DirLeft,
		State:      t2048.StateGameOver,
	}

	s := core.NewScreen(60, 20)
	RenderGame(s, snap, false)
	out := s.String()

	for _, want := range []string{"Score: 1234", "Max: 128", "Moves: 7", "Last: ← left", "GAME OVER", "Max tile: 128"} {
		if !strings.Contains(out, want) {
			t.Errorf("screen is missing %q:\n%s", want, out)
		}
	}
}

func TestRenderGameTooSmall(t *testing.T) {
	s := core.NewScreen(20, 5)
	RenderGame(s, t2048.Snapshot{}, false)
	if !strings.Contains(s.String(), "Window too small") {
		t.Errorf("expected too-small message, got:\n%s", s.String())
	}
}

func TestTileColor(t *testing.T) {
	if TileColor(0) != core.ColorDefault {
		t.Error("empty cells should use the default color")
	}
	if TileColor(11) != core.ColorBrightMagenta {
		t.Errorf("2048 color = %v", TileColor(11))
	}
	if TileColor(t2048.MaxLogValue) != tilePalette[len(tilePalette)-1].color {
		t.Error("large tiles should share the last color")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 1)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")

	out := RenderScreen(s)
	if !strings.Contains(out, "ab") || !strings.Contains(out, "cd") {
		t.Errorf("RenderScreen lost text: %q", out)
	}
}

func TestTileStyles(t *testing.T) {
	for v := 1; v < len(tilePalette); v++ {
		style := styleFor(TileColor(v))
		if _, ok := style.GetBackground().(lipgloss.NoColor); ok {
			t.Errorf("tile %d has no background", t2048.TileValue(v))
		}
		if got, want := style.GetBold(), v >= 7; got != want {
			t.Errorf("tile %d bold = %v, want %v", t2048.TileValue(v), got, want)
		}
	}

	if !styleFor(markerColor).GetBold() {
		t.Error("markers should be bold")
	}
	if _, ok := styleFor(gridColor).GetBackground().(lipgloss.NoColor); !ok {
		t.Error("grid lines should not have a background")
	}
}

func TestTilePaletteColorsAreDistinct(t *testing.T) {
	seen := map[core.Color]int{}
	for v, shade := range tilePalette {
		if prev, ok := seen[shade.color]; ok {
			t.Errorf("log-values %d and %d share color %v", prev, v, shade.color)
		}
		seen[shade.color] = v
	}
	for _, c := range []core.Color{titleColor, gridColor, markerColor} {
		if v, ok := seen[c]; ok {
			t.Errorf("chrome color %v is also the color of log-value %d", c, v)
		}
	}
}

func TestRenderScreenSplitsRunsByColor(t *testing.T) {
	s := core.NewScreen(8, 1)
	s.DrawTextColored(0, 0, " 2  ", TileColor(1))
	s.DrawTextColored(4, 0, " 4  ", TileColor(2))

	want := styleFor(TileColor(1)).Render(" 2  ") + styleFor(TileColor(2)).Render(" 4  ")
	if got := RenderScreen(s); got != want {
		t.Errorf("RenderScreen = %q, want %q", got, want)
	}
}
