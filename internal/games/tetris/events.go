package tetris

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// bannerTicks is how long a line-clear banner stays up, in ticks at 60 fps.
const bannerTicks = 60

var clearNames = [...]string{1: "SINGLE", 2: "DOUBLE", 3: "TRIPLE", 4: "TETRIS!"}

// hud consumes engine events for presentation and logging.
type hud struct {
	logger *log.Logger
	game   *engine.Game

	banner      string
	bannerTicks int
	pieces      int
	clears      [5]int // index = rows cleared at once, 4 covers 4+
}

func (h *hud) reset() {
	h.banner = ""
	h.bannerTicks = 0
	h.pieces = 0
	h.clears = [5]int{}
}

// OnEvent implements engine.Listener.
func (h *hud) OnEvent(e engine.Event) {
	switch e.Type {
	case engine.EventSpawn:
		h.pieces++
	case engine.EventLineClear:
		n := min(e.Count, 4)
		h.clears[n]++
		h.banner = clearNames[n]
		h.bannerTicks = bannerTicks
		h.logger.Debug("lines cleared", "rows", e.Count, "total", h.game.Lines(), "score", h.game.Score())
	case engine.EventGameOver:
		h.logger.Info("game over",
			"score", h.game.Score(),
			"level", h.game.Level(),
			"lines", h.game.Lines(),
			"pieces", h.pieces,
			"elapsed", h.game.Elapsed().Round(time.Millisecond),
		)
	}
}

// tick ages the banner by one frame.
func (h *hud) tick() {
	if h.bannerTicks > 0 {
		h.bannerTicks--
		if h.bannerTicks == 0 {
			h.banner = ""
		}
	}
}
