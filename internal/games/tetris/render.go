package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// Layout: hold and stats panel | well | next panel, with a title row on top.
// Every board cell is two characters wide so blocks look square.
const (
	cellW  = 2
	panelW = 12
	gap    = 1
)

const (
	blockRune = '█'
	ghostRune = '░'
	emptyRune = '.'
)

// requiredSize returns the smallest screen that fits the layout.
func requiredSize(r engine.Rules) (w, h int) {
	wellW := r.Width*cellW + 2
	wellH := r.Height + 2
	return panelW + gap + wellW + gap + panelW, wellH + 1
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.eng == nil {
		return
	}

	if g.tooSmall {
		w, h := requiredSize(g.eng.Rules())
		mid := dst.Height() / 2
		dst.DrawTextCentered(mid-1, "Window too small", core.ColorBrightRed)
		dst.DrawTextCentered(mid+1, fmt.Sprintf("Need %dx%d, have %dx%d", w, h, dst.Width(), dst.Height()), core.ColorGray)
		return
	}

	s := g.Snapshot()
	rules := g.eng.Rules()
	totalW, totalH := requiredSize(rules)
	ox := core.Max(0, (dst.Width()-totalW)/2)
	oy := core.Max(0, (dst.Height()-totalH)/2)

	well := core.NewRect(ox+panelW+gap, oy+1, rules.Width*cellW+2, rules.Height+2)
	dst.DrawTextColored(well.X+(well.W-len("T E T R I S"))/2, oy, "T E T R I S", core.ColorBrightWhite)

	g.renderWell(dst, well, s)
	g.renderHold(dst, core.NewRect(ox, oy+1, panelW, 4), s)
	g.renderStats(dst, ox+1, oy+6, s)
	g.renderNext(dst, core.NewRect(well.Right()+gap, oy+1, panelW, 0), s, oy+totalH)

	switch {
	case s.GameOver:
		g.renderOverlay(dst, well, "GAME OVER", fmt.Sprintf("Score %d", s.Score), "R restart")
	case g.paused:
		g.renderOverlay(dst, well, "PAUSED", "P resume")
	}
}

// renderWell draws the border, locked cells, ghost and active piece.
func (g *Game) renderWell(dst *core.Screen, well core.Rect, s engine.Snapshot) {
	dst.DrawBox(well, core.ColorGray)

	inner := well.Inset(1)
	at := func(x, y int) (int, int) {
		return inner.X + x*cellW, inner.Y + y
	}

	for y, row := range s.Board {
		for x, p := range row {
			sx, sy := at(x, y)
			if p == engine.Empty {
				dst.SetColored(sx+1, sy, emptyRune, core.ColorGray)
				continue
			}
			g.drawCell(dst, sx, sy, blockRune, g.palette[p])
		}
	}

	if !s.HasPiece || s.GameOver {
		return
	}

	shape := s.Current.Shape()
	color := g.palette[s.Current.Type]
	if g.ghost && s.GhostY != s.Current.Y {
		for _, c := range shape {
			if sx, sy := at(s.Current.X+c.X, s.GhostY+c.Y); inner.Contains(sx, sy) {
				g.drawCell(dst, sx, sy, ghostRune, color)
			}
		}
	}
	// Cells still above the well are not drawn.
	for _, c := range shape {
		if sx, sy := at(s.Current.X+c.X, s.Current.Y+c.Y); inner.Contains(sx, sy) {
			g.drawCell(dst, sx, sy, blockRune, color)
		}
	}
}

func (g *Game) drawCell(dst *core.Screen, x, y int, r rune, c core.Color) {
	for i := range cellW {
		dst.SetColored(x+i, y, r, c)
	}
}

// drawMini draws a piece in its spawn rotation with its top-left cell at
// (x, y), centered horizontally in a span of width w.
func (g *Game) drawMini(dst *core.Screen, x, y, w int, p engine.PieceType, c core.Color) {
	shape := engine.ShapeOf(p, 0)
	minX, minY, maxX := shape[0].X, shape[0].Y, shape[0].X
	for _, o := range shape[1:] {
		minX = core.Min(minX, o.X)
		minY = core.Min(minY, o.Y)
		maxX = core.Max(maxX, o.X)
	}
	x += (w - (maxX-minX+1)*cellW) / 2
	for _, o := range shape {
		g.drawCell(dst, x+(o.X-minX)*cellW, y+(o.Y-minY), blockRune, c)
	}
}

func (g *Game) renderHold(dst *core.Screen, box core.Rect, s engine.Snapshot) {
	dst.DrawBox(box, core.ColorGray)
	dst.DrawTextColored(box.X+2, box.Y, "HOLD", core.ColorWhite)
	if s.Hold == engine.Empty {
		return
	}
	color := g.palette[s.Hold]
	if s.HoldUsed {
		color = core.ColorGray
	}
	g.drawMini(dst, box.X+1, box.Y+1, box.W-2, s.Hold, color)
}

func (g *Game) renderStats(dst *core.Screen, x, y int, s engine.Snapshot) {
	stats := []struct {
		label, value string
	}{
		{"SCORE", fmt.Sprintf("%d", s.Score)},
		{"LEVEL", fmt.Sprintf("%d", s.Level)},
		{"LINES", fmt.Sprintf("%d", s.Lines)},
		{"TIME", core.FormatClock(s.Elapsed)},
	}
	for i, st := range stats {
		dst.DrawTextColored(x, y+i*3, st.label, core.ColorGray)
		dst.DrawTextColored(x, y+i*3+1, st.value, core.ColorBrightWhite)
	}

	if g.hud.banner != "" {
		dst.DrawTextColored(x, y+len(stats)*3, g.hud.banner, core.ColorBrightYellow)
	}
}

// renderNext draws the preview queue and, space permitting, a key legend.
func (g *Game) renderNext(dst *core.Screen, box core.Rect, s engine.Snapshot, bottom int) {
	y := box.Y
	if len(s.Queue) > 0 {
		box.H = len(s.Queue)*3 + 1
		dst.DrawBox(box, core.ColorGray)
		dst.DrawTextColored(box.X+2, box.Y, "NEXT", core.ColorWhite)
		for i, p := range s.Queue {
			g.drawMini(dst, box.X+1, box.Y+1+i*3, box.W-2, p, g.palette[p])
		}
		y = box.Bottom() + 1
	}

	legend := []string{
		"←→  move",
		"↑ x rotate",
		"z   rotate",
		"↓   soft",
		"spc hard",
		"c   hold",
		"p   pause",
	}
	if bottom-y < len(legend) {
		return
	}
	for i, line := range legend {
		dst.DrawTextColored(box.X+1, y+i, line, core.ColorGray)
	}
}

// renderOverlay draws a framed message centered on the well.
func (g *Game) renderOverlay(dst *core.Screen, well core.Rect, lines ...string) {
	inner := 0
	for _, l := range lines {
		inner = core.Max(inner, len([]rune(l)))
	}
	box := core.NewRect(0, 0, inner+4, len(lines)*2+1)
	box.X = well.X + (well.W-box.W)/2
	box.Y = well.Y + (well.H-box.H)/2

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)
	for i, l := range lines {
		x := box.X + (box.W-len([]rune(l)))/2
		color := core.ColorWhite
		if i == 0 {
			color = core.ColorBrightYellow
		}
		dst.DrawTextColored(x, box.Y+1+i*2, l, color)
	}
}
