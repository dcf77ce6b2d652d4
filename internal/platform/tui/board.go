package tui

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3

	boardWidth  = t2048.BoardSize*cellWidth + 1  // +1 for right border
	boardHeight = t2048.BoardSize*cellHeight + 1 // +1 for bottom border

	// MinScreenW and MinScreenH are the smallest screen that fits the game.
	MinScreenW = boardWidth + 2
	MinScreenH = hudHeight + 1 + boardHeight + 1
)

const (
	markMerged = '+'
	markNew    = '*'
)

// TileColor returns the display color for a cell log-value.
func TileColor(v int) core.Color {
	if v <= 0 {
		return core.ColorDefault
	}
	return tilePalette[min(v, len(tilePalette)-1)].color
}

// RenderGame draws the HUD, the board and any overlay for snap.
// When highlight is set, merged and freshly spawned tiles carry a marker.
func RenderGame(dst *core.Screen, snap t2048.Snapshot, highlight bool) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		renderTooSmall(dst)
		return
	}

	boardX := (dst.Width() - boardWidth) / 2
	boardY := hudHeight + 1

	renderHUD(dst, snap, boardX)
	DrawBoard(dst, boardX, boardY, snap.Board, func(r, c int) rune {
		if !highlight {
			return 0
		}
		switch {
		case snap.MergedMap[r][c]:
			return markMerged
		case snap.NewTileMap[r][c]:
			return markNew
		}
		return 0
	})

	if snap.State == t2048.StateGameOver {
		drawOverlay(dst, boardX+boardWidth/2, boardY+boardHeight/2,
			"GAME OVER",
			fmt.Sprintf("Max tile: %d", snap.MaxTile),
			"Press R to restart",
		)
	}
}

// renderTooSmall shows a "window too small" message.
func renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, score and last move above the board.
func renderHUD(dst *core.Screen, snap t2048.Snapshot, boardX int) {
	title := "2048"
	dst.DrawTextColored(boardX+(boardWidth-len(title))/2, 0, title, titleColor)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", snap.Score))

	maxStr := fmt.Sprintf("Max: %d", snap.MaxTile)
	dst.DrawText(core.Max(boardX, boardX+boardWidth-len(maxStr)), 1, maxStr)

	dst.DrawText(boardX, 2, fmt.Sprintf("Moves: %d", snap.Moves))
	if snap.Moves > 0 {
		last := fmt.Sprintf("Last: %s %s", snap.LastAction.Arrow(), snap.LastAction)
		dst.DrawTextColored(core.Max(boardX, boardX+boardWidth-len([]rune(last))), 2, last, gridColor)
	}
}

// DrawBoard draws the grid and tiles with the top-left corner at (x, y).
// mark, when non-nil, returns a marker rune for a cell or 0 for none.
func DrawBoard(dst *core.Screen, x, y int, board t2048.Board, mark func(r, c int) rune) {
	const n = t2048.BoardSize

	// Draw grid borders
	for gy := range n + 1 {
		for gx := range n + 1 {
			px := x + gx*cellWidth
			py := y + gy*cellHeight

			var corner rune
			switch {
			case gy == 0 && gx == 0:
				corner = '┌'
			case gy == 0 && gx == n:
				corner = '┐'
			case gy == n && gx == 0:
				corner = '└'
			case gy == n && gx == n:
				corner = '┘'
			case gy == 0:
				corner = '┬'
			case gy == n:
				corner = '┴'
			case gx == 0:
				corner = '├'
			case gx == n:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, gridColor)

			if gx < n {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', gridColor)
				}
			}
			if gy < n {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', gridColor)
				}
			}
		}
	}

	// Draw tiles
	inner := cellWidth - 1
	for r := range n {
		for c := range n {
			v := board[r][c]
			if v == 0 {
				continue
			}

			cellX := x + c*cellWidth + 1
			cellY := y + r*cellHeight + 1

			color := TileColor(v)
			for i := range inner {
				dst.SetColored(cellX+i, cellY, ' ', color)
			}

			valStr := strconv.Itoa(t2048.TileValue(v))
			padLeft := core.Max(0, (inner-len(valStr))/2)
			dst.DrawTextColored(cellX+padLeft, cellY, valStr, color)

			if mark != nil {
				if m := mark(r, c); m != 0 {
					dst.SetColored(cellX+inner-1, cellY, m, markerColor)
				}
			}
		}
	}
}

// BoardText renders a board as plain text without colors or markers.
func BoardText(board t2048.Board) string {
	s := core.NewScreen(boardWidth, boardHeight)
	DrawBoard(s, 0, 0, board, nil)
	return s.String()
}

// drawOverlay draws a centered text overlay.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := centerX - boxW/2
	boxY := centerY - boxH/2

	// Clear area behind overlay
	for y := boxY; y < boxY+boxH; y++ {
		for x := boxX; x < boxX+boxW; x++ {
			dst.Set(x, y, ' ')
		}
	}

	dst.DrawBox(core.Rect{X: boxX, Y: boxY, W: boxW, H: boxH})

	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, boxY+1+i, line)
	}
}
