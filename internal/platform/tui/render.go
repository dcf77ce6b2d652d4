package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// tileShade is the screen color of a tile and the terminal color painted
// behind it.
type tileShade struct {
	color core.Color
	bg    lipgloss.Color
}

// tilePalette is indexed by log-value. Larger tiles use the last entry.
var tilePalette = []tileShade{
	{core.ColorDefault, ""},
	{core.ColorWhite, "255"},         // 2
	{core.ColorBrightWhite, "230"},   // 4
	{core.ColorYellow, "222"},        // 8
	{core.ColorOrange, "215"},        // 16
	{core.ColorBrightRed, "209"},     // 32
	{core.ColorRed, "196"},           // 64
	{core.ColorBrightYellow, "228"},  // 128
	{core.ColorBrightGreen, "156"},   // 256
	{core.ColorGreen, "70"},          // 512
	{core.ColorCyan, "44"},           // 1024
	{core.ColorBrightMagenta, "213"}, // 2048
	{core.ColorMagenta, "127"},
}

const (
	titleColor  = core.ColorBrightBlue
	gridColor   = core.ColorGray
	markerColor = core.ColorBrightCyan
)

// screenStyles maps every color the board renderer emits to its style.
var screenStyles = buildScreenStyles()

func buildScreenStyles() map[core.Color]lipgloss.Style {
	styles := map[core.Color]lipgloss.Style{
		core.ColorDefault: lipgloss.NewStyle(),
		titleColor:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		gridColor:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		markerColor:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
	}
	for v := 1; v < len(tilePalette); v++ {
		styles[tilePalette[v].color] = tileStyle(v)
	}
	return styles
}

// tileStyle returns the block style of a tile. Small tiles get dark digits
// on a light block; from 128 up the digits are bold.
func tileStyle(v int) lipgloss.Style {
	shade := tilePalette[min(v, len(tilePalette)-1)]
	fg := lipgloss.Color("231")
	if v <= 2 {
		fg = lipgloss.Color("236")
	}
	return lipgloss.NewStyle().
		Background(shade.bg).
		Foreground(fg).
		Bold(v >= 7)
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Cells are flushed in runs of one color so each tile block is a single
// styled span.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	run := make([]rune, 0, s.Width())
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		run = run[:0]
		runColor := core.ColorDefault
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != runColor && len(run) > 0 {
				sb.WriteString(styleFor(runColor).Render(string(run)))
				run = run[:0]
			}
			runColor = cell.Color
			run = append(run, cell.Rune)
		}
		if len(run) > 0 {
			sb.WriteString(styleFor(runColor).Render(string(run)))
		}
	}
	return sb.String()
}

func styleFor(c core.Color) lipgloss.Style {
	if style, ok := screenStyles[c]; ok {
		return style
	}
	return screenStyles[core.ColorDefault]
}
