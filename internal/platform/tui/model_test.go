package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

func newTestModel(t *testing.T, store *storage.Store) (Model, *tetris.Game) {
	t.Helper()
	game := tetris.New()
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
	m := NewModel(game, store, cfg, Options{Player: "alice", ScreenshotDir: t.TempDir()})
	m.Init()
	return m, game
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm, cmd
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// playUntilOver hard-drops every tick until the game ends.
func playUntilOver(t *testing.T, m Model) Model {
	t.Helper()
	for i := 0; i < 1000; i++ {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		m, _ = send(t, m, TickMsg{})
		if m.State().GameOver {
			return m
		}
	}
	t.Fatal("game did not end")
	return m
}

func TestModelLeavesRoomForFooter(t *testing.T) {
	m, _ := newTestModel(t, nil)

	if m.screen.Width() != 80 || m.screen.Height() != 23 {
		t.Errorf("screen = %dx%d, expected 80x23", m.screen.Width(), m.screen.Height())
	}

	view := m.View()
	if lines := strings.Count(view, "\n") + 1; lines != 24 {
		t.Errorf("view has %d lines, expected 24", lines)
	}
	if !strings.Contains(view, "T E T R I S") {
		t.Error("view missing title")
	}
	if !strings.Contains(view, "quit") {
		t.Error("view missing key help")
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	m, game := newTestModel(t, nil)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, _ = send(t, m, TickMsg{})
	before := game.Engine()
	score := m.State().Score

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if game.Engine() != before {
		t.Error("resize restarted the game")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 29 {
		t.Errorf("screen = %dx%d, expected 100x29", m.screen.Width(), m.screen.Height())
	}

	m, _ = send(t, m, TickMsg{})
	if m.State().Score != score {
		t.Errorf("score = %d after resize, expected %d", m.State().Score, score)
	}
}

func TestModelHelpToggle(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, _ = send(t, m, runes("?"))
	if !m.help.ShowAll {
		t.Fatal("help not expanded")
	}
	if m.screen.Height() >= 23 {
		t.Errorf("screen height = %d, expected less than 23 with full help", m.screen.Height())
	}

	m, _ = send(t, m, runes("?"))
	if m.screen.Height() != 23 {
		t.Errorf("screen height = %d, expected 23", m.screen.Height())
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, cmd := send(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command did not quit")
	}
	if m.View() != "" {
		t.Error("view not empty after quit")
	}
}

func TestModelKeysReachGame(t *testing.T) {
	m, game := newTestModel(t, nil)
	cur, _ := game.Engine().Current()

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = send(t, m, TickMsg{})

	moved, _ := game.Engine().Current()
	if moved.X != cur.X-1 {
		t.Errorf("piece x = %d, expected %d", moved.X, cur.X-1)
	}

	m, _ = send(t, m, runes("p"))
	m, _ = send(t, m, TickMsg{})
	if !m.State().Paused {
		t.Error("pause key did not pause")
	}
}

func TestModelRecordsScoreOnce(t *testing.T) {
	store := openTestStore(t)
	m, _ := newTestModel(t, store)

	m = playUntilOver(t, m)
	final := m.State()
	if final.Score <= 0 {
		t.Fatalf("score = %d, expected positive", final.Score)
	}

	for range 5 {
		m, _ = send(t, m, TickMsg{})
	}

	scores, err := store.TopScores(tetris.ID, 0)
	if err != nil {
		t.Fatalf("TopScores failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("stored %d results, expected 1", len(scores))
	}

	got := scores[0]
	if got.Score != final.Score || got.Level != final.Level || got.Lines != final.Lines {
		t.Errorf("stored %d/%d/%d, expected %d/%d/%d",
			got.Score, got.Level, got.Lines, final.Score, final.Level, final.Lines)
	}
	if got.Player != "alice" {
		t.Errorf("player = %q, expected alice", got.Player)
	}
	if got.RunID != m.runID.String() {
		t.Errorf("run id = %q, expected %q", got.RunID, m.runID)
	}
	if m.notice != "NEW HIGH SCORE!" {
		t.Errorf("notice = %q, expected NEW HIGH SCORE!", m.notice)
	}
	if m.best != final.Score {
		t.Errorf("best = %d, expected %d", m.best, final.Score)
	}
}

func TestModelRestartStartsNewRun(t *testing.T) {
	store := openTestStore(t)
	m, _ := newTestModel(t, store)

	m = playUntilOver(t, m)
	firstRun := m.runID

	m, _ = send(t, m, runes("r"))
	m, _ = send(t, m, TickMsg{})

	if m.State().GameOver {
		t.Fatal("restart did not start a new game")
	}
	if m.runID == firstRun {
		t.Error("restart kept the run id")
	}
	if m.scoreSaved || m.notice != "" {
		t.Error("restart kept the previous result state")
	}

	m = playUntilOver(t, m)
	scores, err := store.TopScores(tetris.ID, 0)
	if err != nil {
		t.Fatalf("TopScores failed: %v", err)
	}
	if len(scores) != 2 {
		t.Errorf("stored %d results, expected 2", len(scores))
	}
}

func TestModelScreenshot(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	files, err := os.ReadDir(m.screenshotDir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("found %d screenshots, expected 1", len(files))
	}
	data, err := os.ReadFile(filepath.Join(m.screenshotDir, files[0].Name()))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "T E T R I S") {
		t.Error("screenshot missing title")
	}
	if !strings.HasPrefix(m.notice, "saved ") {
		t.Errorf("notice = %q, expected saved message", m.notice)
	}
}
