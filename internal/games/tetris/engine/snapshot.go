package engine

import "time"

// Snapshot is a read-only copy of everything a renderer or HUD needs.
type Snapshot struct {
	Board    [][]PieceType
	Current  ActivePiece
	HasPiece bool
	GhostY   int
	Hold     PieceType
	HoldUsed bool
	Queue    []PieceType
	Score    int
	Level    int
	Lines    int
	Elapsed  time.Duration
	Phase    Phase
	GameOver bool
}

// Snapshot copies the current state. previewLen limits the queue copy;
// a negative value copies the whole queue.
func (g *Game) Snapshot(previewLen int) Snapshot {
	cur, ok := g.Current()
	s := Snapshot{
		Board:    g.board.Rows(),
		Current:  cur,
		HasPiece: ok,
		Hold:     g.hold,
		HoldUsed: g.holdUsed,
		Queue:    g.Queue(previewLen),
		Score:    g.score,
		Level:    g.level,
		Lines:    g.lines,
		Elapsed:  g.Elapsed(),
		Phase:    g.phase,
		GameOver: g.GameOver(),
	}
	if ok {
		s.GhostY = g.GhostY()
	}
	return s
}
