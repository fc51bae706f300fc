// Package engine implements the rules of a falling-block puzzle game: the
// board, piece movement with SRS wall kicks, the 7-bag randomizer, locking,
// line clears, scoring and level-based gravity.
//
// The engine is driven entirely from outside. Callers issue discrete commands
// (Move, Rotate, SoftDrop, HardDrop, Hold) and advance time with Update; the
// engine never starts goroutines or timers and is not safe for concurrent use.
package engine

import "time"

// Phase is the lifecycle state of a Game.
type Phase int

const (
	PhaseIdle     Phase = iota // before the first NewGame
	PhaseActive                // a piece is falling
	PhaseLocking               // a piece is being written to the board
	PhaseGameOver              // terminal until NewGame
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseLocking:
		return "locking"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// ActivePiece is the piece under player control.
type ActivePiece struct {
	Type     PieceType
	Rotation int
	X, Y     int
}

// Shape returns the cells of the piece in its current rotation.
func (p ActivePiece) Shape() Shape {
	return ShapeOf(p.Type, p.Rotation)
}

// Game owns the board, the active piece, the hold slot, the piece queue and
// the score state, and runs spawn -> move -> lock -> clear -> spawn.
type Game struct {
	rules    Rules
	board    *Board
	bag      *Bag
	listener Listener

	phase    Phase
	cur      ActivePiece
	hold     PieceType
	holdUsed bool

	score     int
	level     int
	lines     int
	elapsedMs float64
	gravity   float64 // seconds accumulated towards the next gravity step
}

// New creates a game in the idle phase. Call NewGame to start playing.
// A nil listener discards events.
func New(rules Rules, rng Randomizer, listener Listener) *Game {
	if listener == nil {
		listener = nopListener{}
	}
	return &Game{
		rules:    rules,
		board:    NewBoard(rules.Width, rules.Height),
		bag:      NewBag(rng),
		listener: listener,
		level:    1,
	}
}

// NewGame resets all state and spawns the first piece.
func (g *Game) NewGame() {
	g.board.Reset()
	g.score = 0
	g.level = 1
	g.lines = 0
	g.elapsedMs = 0
	g.gravity = 0
	g.hold = Empty
	g.holdUsed = false
	g.bag.Reset()
	g.bag.Refill()
	g.spawn()
}

func (g *Game) emit(e Event) {
	g.listener.OnEvent(e)
}

// active reports whether the game accepts commands.
func (g *Game) active() bool {
	return g.phase == PhaseActive
}

// Move shifts the piece one column left (dir < 0) or right (dir > 0).
// Blocked moves are ignored.
func (g *Game) Move(dir int) {
	if !g.active() || dir == 0 {
		return
	}
	dx := 1
	if dir < 0 {
		dx = -1
	}
	if !g.board.Collides(g.cur.Shape(), g.cur.X+dx, g.cur.Y) {
		g.cur.X += dx
	}
}

// Rotate turns the piece clockwise (dir > 0) or counter-clockwise (dir < 0),
// trying each kick offset in order. If no offset fits the piece is unchanged.
func (g *Game) Rotate(dir int) {
	if !g.active() || dir == 0 {
		return
	}
	from := g.cur.Rotation
	to := (from + 3) % RotationStates
	if dir > 0 {
		to = (from + 1) % RotationStates
	}

	shape := ShapeOf(g.cur.Type, to)
	for _, k := range KickTrials(g.cur.Type, from, to) {
		x, y := g.cur.X+k.X, g.cur.Y+k.Y
		if !g.board.Collides(shape, x, y) {
			g.cur.Rotation = to
			g.cur.X = x
			g.cur.Y = y
			return
		}
	}
}

// SoftDrop moves the piece down one row, locking it if it cannot move.
// Every call scores the soft drop bonus.
func (g *Game) SoftDrop() {
	if !g.active() {
		return
	}
	if !g.step(1) {
		g.lockPiece()
	}
	g.score += g.rules.SoftDropBonus
}

// HardDrop drops the piece as far as it goes, scores the hard drop bonus for
// every row travelled and locks it.
func (g *Game) HardDrop() {
	if !g.active() {
		return
	}
	dist := 0
	for g.step(1) {
		dist++
	}
	g.score += g.rules.HardDropBonus * dist
	g.lockPiece()
}

// Hold stores the current piece. An empty slot takes the piece and a new one
// spawns; an occupied slot swaps with it and the held piece returns at the
// spawn pose. Only one hold is allowed per piece.
func (g *Game) Hold() {
	if !g.active() || g.holdUsed {
		return
	}
	curType := g.cur.Type
	if g.hold == Empty {
		g.hold = curType
		g.spawn()
	} else {
		g.cur = g.spawnPose(g.hold)
		g.hold = curType
		if g.board.Collides(g.cur.Shape(), g.cur.X, g.cur.Y) {
			g.endGame()
		}
	}
	g.holdUsed = true
}

// Update advances time by dtMs milliseconds and applies gravity. At most one
// gravity step happens per call; leftover time carries over to the next call.
func (g *Game) Update(dtMs float64) {
	if !g.active() || dtMs < 0 {
		return
	}
	g.elapsedMs += dtMs
	g.gravity += dtMs / 1000

	interval := g.rules.GravityInterval(g.level)
	if g.gravity >= interval {
		g.gravity -= interval
		if !g.step(1) {
			g.lockPiece()
		}
	}
}

// step moves the piece down by dy rows if it fits.
func (g *Game) step(dy int) bool {
	ny := g.cur.Y + dy
	if g.board.Collides(g.cur.Shape(), g.cur.X, ny) {
		return false
	}
	g.cur.Y = ny
	return true
}

func (g *Game) lockPiece() {
	g.phase = PhaseLocking
	g.board.Lock(g.cur.Shape(), g.cur.X, g.cur.Y, g.cur.Type)
	g.emit(Event{Type: EventLock})

	if cleared := g.board.ClearLines(); cleared > 0 {
		g.score += g.rules.LineClearScore(cleared)
		g.lines += cleared
		g.emit(Event{Type: EventLineClear, Count: cleared})
		// One level per threshold crossed.
		for g.lines >= g.level*g.rules.LinesPerLevel {
			g.level++
		}
	}

	g.spawn()
}

func (g *Game) spawnPose(p PieceType) ActivePiece {
	return ActivePiece{Type: p, Rotation: 0, X: g.rules.SpawnX, Y: g.rules.SpawnY}
}

func (g *Game) spawn() {
	g.cur = g.spawnPose(g.bag.Next())
	if g.board.Collides(g.cur.Shape(), g.cur.X, g.cur.Y) {
		g.endGame()
		return
	}
	g.phase = PhaseActive
	g.holdUsed = false
	g.emit(Event{Type: EventSpawn, Piece: g.cur.Type})
}

func (g *Game) endGame() {
	g.phase = PhaseGameOver
	g.emit(Event{Type: EventGameOver})
}

// Board returns the playfield. Callers must treat it as read-only.
func (g *Game) Board() *Board {
	return g.board
}

// Rules returns the rules the game was created with.
func (g *Game) Rules() Rules {
	return g.rules
}

// Current returns the active piece. ok is false before the first NewGame.
func (g *Game) Current() (p ActivePiece, ok bool) {
	return g.cur, g.phase != PhaseIdle
}

// Held returns the piece in the hold slot, or Empty.
func (g *Game) Held() PieceType {
	return g.hold
}

// HoldUsed reports whether the current piece has already been held.
func (g *Game) HoldUsed() bool {
	return g.holdUsed
}

// Queue returns up to n upcoming pieces. n < 0 returns the whole queue.
func (g *Game) Queue(n int) []PieceType {
	return g.bag.Peek(n)
}

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// Level returns the current level, starting at 1.
func (g *Game) Level() int { return g.level }

// Lines returns the total number of cleared rows.
func (g *Game) Lines() int { return g.lines }

// Elapsed returns the game time accumulated through Update.
func (g *Game) Elapsed() time.Duration {
	return time.Duration(g.elapsedMs * float64(time.Millisecond))
}

// Phase returns the lifecycle phase.
func (g *Game) Phase() Phase { return g.phase }

// GameOver reports whether the game has ended.
func (g *Game) GameOver() bool { return g.phase == PhaseGameOver }

// CanResume reports whether there is a game in progress.
func (g *Game) CanResume() bool {
	return g.phase == PhaseActive
}

// GhostY returns the row the active piece would land on if hard dropped.
func (g *Game) GhostY() int {
	shape := g.cur.Shape()
	y := g.cur.Y
	for !g.board.Collides(shape, g.cur.X, y+1) {
		y++
	}
	return y
}
