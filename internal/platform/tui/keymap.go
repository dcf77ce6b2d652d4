package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// PlayKeyMap defines the key bindings for a game of 2048.
// This centralizes key bindings and makes them testable.
type PlayKeyMap struct {
	Up    key.Binding
	Left  key.Binding
	Down  key.Binding
	Right key.Binding
	Reset key.Binding
	Help  key.Binding
	Quit  key.Binding

	Screenshot key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PlayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reset, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PlayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Left, k.Down, k.Right},
		{k.Reset, k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultPlayKeyMap returns default key bindings.
func DefaultPlayKeyMap() PlayKeyMap {
	return PlayKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w", "up"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "down"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "new game"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
	}
}

// Direction translates a key message to a move.
// Returns false for keys that are not bound to a direction.
func (k PlayKeyMap) Direction(msg tea.KeyMsg) (t2048.Direction, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return t2048.DirUp, true
	case key.Matches(msg, k.Left):
		return t2048.DirLeft, true
	case key.Matches(msg, k.Down):
		return t2048.DirDown, true
	case key.Matches(msg, k.Right):
		return t2048.DirRight, true
	}
	return 0, false
}
