// Package tetris adapts the falling-block engine to the terminal platform:
// it maps input actions to engine commands, turns ticks into elapsed time,
// keeps the pause state and draws the well, queue, hold box and HUD.
package tetris

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// ID is the registry and score-table key of the game.
const ID = "tetris"

// Package-level settings applied on the next Reset, set from CLI flags.
var (
	configPath       string
	difficultyPreset = config.DifficultyNormal
	logger           = log.New(io.Discard)
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset used by new games.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// SetLogger sets the logger new games report to.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// Game implements registry.Game on top of engine.Game.
type Game struct {
	eng     *engine.Game
	rng     *rand.Rand
	hud     *hud
	logger  *log.Logger
	palette map[engine.PieceType]core.Color
	preview int
	ghost   bool

	tickMs  float64
	screenW int
	screenH int

	paused   bool
	tooSmall bool
}

// New creates a game. Reset must be called before Step.
func New() *Game {
	return &Game{logger: logger.WithPrefix(ID)}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset loads configuration and starts a new game.
// A broken config file is reported and the defaults are used instead.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	tcfg, err := config.LoadTetris(configPath)
	if err == nil {
		config.ApplyTetrisPreset(&tcfg, difficultyPreset)
		err = tcfg.Validate()
	}
	if err != nil {
		g.logger.Warn("using default config", "path", configPath, "err", err)
		tcfg = config.DefaultTetrisConfig()
		config.ApplyTetrisPreset(&tcfg, difficultyPreset)
	}

	rules, err := RulesFromConfig(tcfg)
	if err != nil {
		g.logger.Warn("using default rules", "err", err)
		rules = engine.DefaultRules()
	}

	g.start(cfg, rules, tcfg.Display)
}

// start builds a fresh engine with the given rules.
func (g *Game) start(cfg core.RuntimeConfig, rules engine.Rules, display config.DisplayConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.hud = &hud{logger: g.logger}
	g.eng = engine.New(rules, g.rng, g.hud)
	g.hud.game = g.eng

	g.palette = paletteFromConfig(display)
	g.preview = display.Preview
	g.ghost = display.Ghost
	g.tickMs = float64(cfg.TickDuration()) / float64(time.Millisecond)
	g.paused = false
	g.Resize(cfg.ScreenW, cfg.ScreenH)

	g.eng.NewGame()
	g.logger.Debug("new game", "seed", cfg.Seed, "gravity", rules.GravityInterval(1))
}

// Resize adapts the layout to a new terminal size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	if g.eng == nil {
		return
	}
	minW, minH := requiredSize(g.eng.Rules())
	g.tooSmall = w < minW || h < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.eng.GameOver() {
		if in.Has(core.ActionRestart) {
			g.restart()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	level := g.eng.Level()
	g.apply(in)
	g.eng.Update(g.tickMs)
	if g.eng.Level() != level {
		g.logger.Debug("level up", "level", g.eng.Level(), "lines", g.eng.Lines())
	}
	g.hud.tick()

	return core.StepResult{State: g.State()}
}

// apply forwards the frame's actions to the engine. Hold and rotation come
// before shifting, drops last, so a hard drop sees the final column.
func (g *Game) apply(in core.InputFrame) {
	if in.Has(core.ActionHold) {
		g.eng.Hold()
	}
	for range in.Count(core.ActionRotateCW) {
		g.eng.Rotate(1)
	}
	for range in.Count(core.ActionRotateCCW) {
		g.eng.Rotate(-1)
	}
	for range in.Count(core.ActionLeft) {
		g.eng.Move(-1)
	}
	for range in.Count(core.ActionRight) {
		g.eng.Move(1)
	}
	for range in.Count(core.ActionSoftDrop) {
		g.eng.SoftDrop()
	}
	if in.Has(core.ActionHardDrop) {
		g.eng.HardDrop()
	}
}

// restart begins a new game with the same rules and a fresh seed.
func (g *Game) restart() {
	g.hud.reset()
	g.paused = false
	g.eng = engine.New(g.eng.Rules(), rand.New(rand.NewSource(g.rng.Int63())), g.hud)
	g.hud.game = g.eng
	g.eng.NewGame()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.eng == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.eng.Score(),
		Level:    g.eng.Level(),
		Lines:    g.eng.Lines(),
		Elapsed:  g.eng.Elapsed(),
		GameOver: g.eng.GameOver(),
		Paused:   g.paused,
	}
}

// Engine exposes the underlying engine for tools and tests.
func (g *Game) Engine() *engine.Game {
	return g.eng
}

// Snapshot returns the engine snapshot with the configured preview length.
func (g *Game) Snapshot() engine.Snapshot {
	return g.eng.Snapshot(g.preview)
}

var _ registry.Resizer = (*Game)(nil)
