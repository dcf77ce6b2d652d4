// Package tui provides the Bubble Tea front end for 2048.
// It handles the terminal UI loop, key bindings, board rendering and the
// episode scoreboard.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for an interactive game of 2048.
type Model struct {
	engine   *t2048.Engine
	screen   *core.Screen
	store    *storage.Store
	logger   *log.Logger
	config   core.RuntimeConfig
	keys     PlayKeyMap
	help     help.Model
	width    int
	height   int
	seed     int64 // Seed of the current episode
	saved    bool  // Whether the current finished episode has been saved
	quitting bool
}

// NewModel creates a new Bubble Tea model and starts the first episode.
// store and logger may be nil.
func NewModel(store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) Model {
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	m := Model{
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		logger: logger,
		config: cfg,
		keys:   DefaultPlayKeyMap(),
		help:   help.New(),
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
	}
	m.resizeScreen()

	// Use time-based seed if not specified
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m.newGame(seed)
	return m
}

// newGame replaces the engine with a fresh one seeded with seed.
func (m *Model) newGame(seed int64) {
	m.seed = seed
	m.engine = t2048.New(t2048.NewSource(seed), t2048.WithFourProbability(m.config.FourProbability))
	m.engine.Reset()
	m.saved = false
	m.logger.Debug("new game", "seed", seed)
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeScreen()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizeScreen()
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.newGame(time.Now().UnixNano())
		return m, nil

	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	dir, ok := m.keys.Direction(msg)
	if !ok || m.engine.Done() {
		return m, nil
	}
	return m.move(dir)
}

// move applies one step to the engine.
func (m Model) move(dir t2048.Direction) (tea.Model, tea.Cmd) {
	res, err := m.engine.Step(dir)
	if err != nil {
		m.logger.Error("step failed", "direction", dir, "error", err)
		return m, nil
	}

	if res.Done {
		m.saveEpisode()
	}
	return m, nil
}

// saveEpisode records the finished episode once.
func (m *Model) saveEpisode() {
	if m.saved || m.store == nil {
		return
	}
	m.saved = true

	snap := m.engine.Snapshot()
	_, err := m.store.SaveEpisode(storage.Episode{
		Seed:    m.seed,
		Score:   snap.Score,
		MaxTile: snap.MaxTile,
		Moves:   snap.Moves,
		Source:  storage.SourcePlayer,
	})
	if err != nil {
		m.logger.Warn("could not save episode", "error", err)
		return
	}
	m.logger.Debug("episode saved", "score", snap.Score, "max_tile", snap.MaxTile)
}

// resizeScreen fits the screen buffer above the help bar.
func (m *Model) resizeScreen() {
	helpLines := 1
	if m.help.ShowAll {
		helpLines = len(m.keys.FullHelp()[1])
	}
	m.screen.Resize(m.width, core.Max(0, m.height-helpLines-1))
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	RenderGame(m.screen, m.engine.Snapshot(), false)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("t2048_%s.txt", timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
	}
}

// Snapshot returns the state of the current episode.
func (m Model) Snapshot() t2048.Snapshot {
	return m.engine.Snapshot()
}

// Seed returns the seed of the current episode.
func (m Model) Seed() int64 {
	return m.seed
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	RenderGame(m.screen, m.engine.Snapshot(), true)

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for an interactive game.
func Run(store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	model := NewModel(store, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
