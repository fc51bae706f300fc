package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Options carries the per-session settings of a Model.
type Options struct {
	// Player is stored with finished games. Empty falls back to $USER.
	Player string

	// Logger receives session events. Nil discards them.
	Logger *log.Logger

	// Renderer styles the output. SSH sessions pass the client's renderer;
	// nil uses the local terminal.
	Renderer *lipgloss.Renderer

	// ScreenshotDir is where ctrl+s writes the screen. Empty means
	// ~/.tetris/screenshots.
	ScreenshotDir string
}

// Model is the Bubble Tea model that runs one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	renderer   *ScreenRenderer
	store      *storage.Store
	logger     *log.Logger
	keys       KeyMap
	help       help.Model
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState

	termW, termH int

	player        string
	screenshotDir string
	runID         uuid.UUID
	best          int
	notice        string

	quitting   bool
	scoreSaved bool // Whether the current game over has been recorded
}

// NewModel creates a model for the given game. store may be nil.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	player := opts.Player
	if player == "" {
		player = os.Getenv("USER")
	}

	m := Model{
		game:          game,
		renderer:      NewScreenRenderer(opts.Renderer),
		store:         store,
		logger:        logger,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		config:        cfg,
		inputFrame:    core.NewInputFrame(),
		player:        player,
		screenshotDir: opts.ScreenshotDir,
		runID:         uuid.New(),
	}
	m.termW, m.termH = cfg.ScreenW, cfg.ScreenH
	m.help.Width = cfg.ScreenW
	m.config.ScreenH = m.playHeight()
	m.screen = core.NewScreen(m.config.ScreenW, m.config.ScreenH)

	if store != nil {
		best, err := store.HighScore(game.ID())
		if err != nil {
			logger.Warn("cannot read high score", "err", err)
		}
		m.best = best
	}

	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("game started", "game", m.game.ID(), "run", m.runID, "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey queues the key's action for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.logger.Info("quit", "run", m.runID, "score", m.gameState.Score)
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	}

	if action := m.keys.Action(msg); action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize keeps the running game and only changes the layout.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.termW, m.termH = msg.Width, msg.Height
	m.help.Width = msg.Width
	m.layout()
	return m, nil
}

// layout fits the screen buffer and the game into the terminal, leaving
// room for the footer.
func (m *Model) layout() {
	m.config.ScreenW = m.termW
	m.config.ScreenH = m.playHeight()
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
		return
	}
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.gameState.GameOver

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if wasOver && !m.gameState.GameOver {
		m.runID = uuid.New()
		m.scoreSaved = false
		m.notice = ""
		m.logger.Info("game restarted", "run", m.runID)
	}

	if m.gameState.GameOver && !m.scoreSaved {
		m.recordResult()
		m.scoreSaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// recordResult stores the finished game. Empty games are not recorded.
func (m *Model) recordResult() {
	st := m.gameState
	m.logger.Info("game over",
		"run", m.runID,
		"score", st.Score,
		"level", st.Level,
		"lines", st.Lines,
		"time", core.FormatClock(st.Elapsed),
	)
	if m.store == nil || st.Score <= 0 {
		return
	}

	id := m.game.ID()
	rank, err := m.store.Rank(id, st.Score)
	if err != nil {
		m.logger.Warn("cannot compute rank", "err", err)
	}

	_, err = m.store.SaveScore(storage.Result{
		RunID:    m.runID,
		GameID:   id,
		Player:   m.player,
		Score:    st.Score,
		Level:    st.Level,
		Lines:    st.Lines,
		Duration: st.Elapsed,
	})
	if err != nil {
		m.logger.Error("cannot save score", "run", m.runID, "err", err)
		return
	}

	switch {
	case st.Score > m.best:
		m.notice = "NEW HIGH SCORE!"
	case rank > 0:
		m.notice = fmt.Sprintf("RANK #%d", rank)
	}
	m.best = core.Max(m.best, st.Score)
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := m.screenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.logger.Warn("cannot resolve screenshot dir", "err", err)
			return
		}
		dir = filepath.Join(home, ".tetris", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot dir", "dir", dir, "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "path", path, "err", err)
		return
	}
	m.notice = "saved " + filepath.Base(path)
}

// footer renders the key help and the status on the right.
func (m Model) footer() string {
	statusStyle := m.renderer.NewStyle().Foreground(lipgloss.Color("241"))
	noticeStyle := m.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	status := fmt.Sprintf("BEST %d", core.Max(m.best, m.gameState.Score))
	if m.notice != "" {
		status = noticeStyle.Render(m.notice) + statusStyle.Render("  "+status)
	} else {
		status = statusStyle.Render(status)
	}

	helpView := statusStyle.Render(m.help.View(m.keys))
	gap := m.config.ScreenW - lipgloss.Width(helpView) - lipgloss.Width(status)
	if m.help.ShowAll || gap < 1 {
		return helpView
	}
	return helpView + strings.Repeat(" ", gap) + status
}

// footerHeight is the number of rows the footer takes.
func (m Model) footerHeight() int {
	if !m.help.ShowAll {
		return 1
	}
	return lipgloss.Height(m.help.View(m.keys))
}

// playHeight is the game area left above the footer.
func (m Model) playHeight() int {
	return core.Max(0, m.termH-m.footerHeight())
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.renderer.Render(m.screen) + "\n" + m.footer()
}

// State returns the last game state seen by the model.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
