package tetris

import (
	"io"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 12345}
}

// newTestGame isolates the game from any config file on the machine.
func newTestGame(t *testing.T) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	SetConfigPath("")
	SetDifficultyPreset(config.DifficultyNormal)

	g := New()
	g.Reset(testConfig())
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func playUntilOver(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 500 && !g.State().GameOver; i++ {
		g.Step(frame(core.ActionHardDrop))
	}
	if !g.State().GameOver {
		t.Fatal("stacking hard drops should end the game")
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(ID) {
		t.Fatalf("%q should be registered", ID)
	}
	g, err := registry.Create(ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.Title() != "Tetris" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(t)
	g2 := New()
	g2.Reset(testConfig())

	script := []core.Action{
		core.ActionLeft, core.ActionRotateCW, core.ActionNone, core.ActionRight,
		core.ActionSoftDrop, core.ActionHold, core.ActionRotateCCW, core.ActionHardDrop,
	}
	for i := 0; i < 600; i++ {
		in := frame()
		if i%7 == 0 {
			in.Set(script[(i/7)%len(script)])
		}
		g1.Step(in)
		g2.Step(in)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Score != s2.Score || s1.Lines != s2.Lines || s1.Current != s2.Current {
		t.Errorf("snapshots diverged: %+v vs %+v", s1, s2)
	}
	for y := range s1.Board {
		for x := range s1.Board[y] {
			if s1.Board[y][x] != s2.Board[y][x] {
				t.Fatalf("board mismatch at (%d, %d)", x, y)
			}
		}
	}
}

func TestStepMapsActions(t *testing.T) {
	g := newTestGame(t)
	start := g.Snapshot().Current

	g.Step(frame(core.ActionLeft, core.ActionLeft))
	if got := g.Snapshot().Current.X; got != start.X-2 {
		t.Errorf("two Left presses: X = %d, expected %d", got, start.X-2)
	}

	g.Step(frame(core.ActionRotateCW))
	if got := g.Snapshot().Current.Rotation; got != 1 {
		t.Errorf("RotateCW: rotation = %d, expected 1", got)
	}

	g.Step(frame(core.ActionRotateCCW))
	if got := g.Snapshot().Current.Rotation; got != 0 {
		t.Errorf("RotateCCW: rotation = %d, expected 0", got)
	}

	g.Step(frame(core.ActionSoftDrop))
	if g.State().Score != 1 {
		t.Errorf("soft drop score = %d, expected 1", g.State().Score)
	}

	g.Step(frame(core.ActionHold))
	s := g.Snapshot()
	if s.Hold != start.Type || !s.HoldUsed {
		t.Errorf("after hold: hold = %v used = %v, expected %v", s.Hold, s.HoldUsed, start.Type)
	}

	before := g.State().Score
	g.Step(frame(core.ActionHardDrop))
	if g.State().Score <= before {
		t.Error("hard drop should add distance points")
	}
	if g.Snapshot().HoldUsed {
		t.Error("a new piece should be holdable again")
	}
}

func TestElapsedFollowsTicks(t *testing.T) {
	g := newTestGame(t)
	for i := 0; i < 60; i++ {
		g.Step(frame())
	}

	elapsed := g.State().Elapsed
	if elapsed < 999*time.Millisecond || elapsed > time.Second {
		t.Errorf("Elapsed after 60 ticks at 60 fps = %v, expected ~1s", elapsed)
	}
}

func TestGravityPullsPiece(t *testing.T) {
	g := newTestGame(t)
	y := g.Snapshot().Current.Y

	// 0.8 s per row at level 1
	for i := 0; i < 49; i++ {
		g.Step(frame())
	}
	if got := g.Snapshot().Current.Y; got != y+1 {
		t.Errorf("after 49 ticks Y = %d, expected %d", got, y+1)
	}
}

func TestPause(t *testing.T) {
	g := newTestGame(t)

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("Pause should pause the game")
	}

	before := g.Snapshot()
	for i := 0; i < 120; i++ {
		g.Step(frame(core.ActionHardDrop, core.ActionLeft))
	}
	after := g.Snapshot()
	if after.Score != before.Score || after.Elapsed != before.Elapsed || after.Current != before.Current {
		t.Error("a paused game must not change")
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("second Pause should resume")
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g := newTestGame(t)

	g.Step(frame(core.ActionRestart))
	if g.State().GameOver {
		t.Fatal("restart while playing should be ignored")
	}

	playUntilOver(t, g)
	over := g.State()
	if over.Score == 0 {
		t.Error("hard drops should have scored")
	}

	g.Step(frame(core.ActionHardDrop))
	if g.State() != over {
		t.Error("a finished game ignores input other than restart")
	}

	g.Step(frame(core.ActionRestart))
	st := g.State()
	if st.GameOver || st.Score != 0 || st.Lines != 0 || st.Level != 1 {
		t.Errorf("state after restart = %+v", st)
	}
}

func TestTooSmallAndResize(t *testing.T) {
	g := newTestGame(t)
	g.Step(frame(core.ActionSoftDrop))
	score := g.State().Score

	g.Resize(30, 10)
	g.Step(frame(core.ActionHardDrop))
	if g.State().Score != score {
		t.Error("game should be frozen while the window is too small")
	}

	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("expected too-small message, got:\n%s", screen.String())
	}

	g.Resize(100, 30)
	g.Step(frame(core.ActionHardDrop))
	if g.State().Score <= score {
		t.Error("resizing back should resume the same game")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t)
	g.Step(frame(core.ActionHold))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"T E T R I S", "HOLD", "NEXT", "SCORE", "LEVEL", "LINES", "TIME", "00:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("render should contain %q:\n%s", want, out)
		}
	}
	if !strings.ContainsRune(out, ghostRune) {
		t.Error("render should show the ghost piece")
	}
	if !strings.ContainsRune(out, blockRune) {
		t.Error("render should show blocks")
	}

	// The bottom-left well cell sits two characters right of the border.
	w, h := requiredSize(g.Engine().Rules())
	ox, oy := (80-w)/2, (24-h)/2
	wellX, wellBottom := ox+panelW+gap, oy+1+g.Engine().Rules().Height
	if got := screen.Get(wellX, wellBottom+1); got != '└' {
		t.Errorf("well corner = %q, expected '└'", got)
	}
	if got := screen.GetCell(wellX+2, wellBottom); got.Rune != emptyRune || got.Color != core.ColorGray {
		t.Errorf("empty cell = %+v", got)
	}
}

func TestRenderOverlays(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(80, 24)

	g.Step(frame(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused game should show the pause overlay")
	}

	g.Step(frame(core.ActionPause))
	playUntilOver(t, g)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("finished game should show the game over overlay")
	}
}

func TestConfigFileAndPreset(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	data := "display:\n  preview: 2\n  ghost: false\n  colors:\n    T: white\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	SetConfigPath(path)
	SetDifficultyPreset(config.DifficultyHard)
	t.Cleanup(func() {
		SetConfigPath("")
		SetDifficultyPreset(config.DifficultyNormal)
	})

	g := New()
	g.Reset(testConfig())

	if n := len(g.Snapshot().Queue); n != 2 {
		t.Errorf("preview = %d, expected 2", n)
	}
	if g.ghost {
		t.Error("ghost should be disabled by config")
	}
	if g.palette[engine.T] != core.ColorWhite || g.palette[engine.I] != core.ColorCyan {
		t.Error("palette should merge config colors over defaults")
	}
	if got := g.Engine().Rules().Gravity[0]; math.Abs(got-0.56) > 1e-9 {
		t.Errorf("hard preset first interval = %v, expected 0.56", got)
	}
}

func TestBrokenConfigFallsBackToDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	if err := os.WriteFile(path, []byte("gravity: []\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	g := New()
	g.Reset(testConfig())

	if got := g.Engine().Rules().Gravity; len(got) != len(engine.DefaultGravity) {
		t.Errorf("gravity = %v, expected defaults", got)
	}
	if g.State().GameOver {
		t.Error("game should start normally")
	}
}

func TestRulesFromConfig(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	config.ApplyTetrisPreset(&cfg, config.DifficultyFixed)

	rules, err := RulesFromConfig(cfg)
	if err != nil {
		t.Fatalf("RulesFromConfig() error = %v", err)
	}
	if len(rules.Gravity) != 1 || rules.GravityInterval(12) != 0.8 {
		t.Errorf("fixed preset gravity = %v", rules.Gravity)
	}
	if rules.LineClearScore(4) != 800 || rules.HardDropBonus != 2 {
		t.Errorf("scoring not carried over: %+v", rules)
	}

	cfg.Board.SpawnX = 9
	if _, err := RulesFromConfig(cfg); err == nil {
		t.Error("spawn outside the board should be rejected")
	}
}

func TestHUDBanner(t *testing.T) {
	eng := engine.New(engine.DefaultRules(), rand.New(rand.NewSource(1)), nil)
	h := &hud{logger: log.New(io.Discard), game: eng}

	h.OnEvent(engine.Event{Type: engine.EventLineClear, Count: 4})
	if h.banner != "TETRIS!" {
		t.Errorf("banner = %q, expected TETRIS!", h.banner)
	}
	if h.clears[4] != 1 {
		t.Errorf("clears = %v", h.clears)
	}

	for i := 0; i < bannerTicks-1; i++ {
		h.tick()
	}
	if h.banner == "" {
		t.Error("banner cleared too early")
	}
	h.tick()
	if h.banner != "" {
		t.Errorf("banner = %q after %d ticks, expected empty", h.banner, bannerTicks)
	}

	h.OnEvent(engine.Event{Type: engine.EventSpawn, Piece: engine.T})
	h.OnEvent(engine.Event{Type: engine.EventGameOver})
	if h.pieces != 1 {
		t.Errorf("pieces = %d, expected 1", h.pieces)
	}
}
