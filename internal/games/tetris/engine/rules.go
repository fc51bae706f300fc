package engine

import (
	"errors"
	"fmt"
)

// Rules holds the tunable numbers of a game. The zero value is not usable;
// start from DefaultRules.
type Rules struct {
	Width  int
	Height int

	// SpawnX and SpawnY are the origin of a freshly spawned piece.
	// A negative SpawnY places the piece partly above the visible field.
	SpawnX int
	SpawnY int

	// Gravity is seconds per cell, indexed by level-1. Levels past the end
	// of the table use the last entry.
	Gravity []float64

	// LineScores awards points for clearing 1, 2, 3 and 4+ rows in one lock.
	LineScores [4]int

	SoftDropBonus int // per SoftDrop call
	HardDropBonus int // per row travelled

	LinesPerLevel int
}

// DefaultGravity is the standard seconds-per-cell table.
var DefaultGravity = []float64{0.8, 0.72, 0.63, 0.55, 0.47, 0.4, 0.33, 0.27, 0.22, 0.18, 0.15, 0.12, 0.1}

// DefaultRules returns the standard marathon rules on a 10x20 field.
func DefaultRules() Rules {
	return Rules{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		SpawnX:        3,
		SpawnY:        -2,
		Gravity:       append([]float64(nil), DefaultGravity...),
		LineScores:    [4]int{100, 300, 500, 800},
		SoftDropBonus: 1,
		HardDropBonus: 2,
		LinesPerLevel: 10,
	}
}

// GravityInterval returns the seconds per cell at the given level.
func (r Rules) GravityInterval(level int) float64 {
	idx := level - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(r.Gravity) {
		idx = len(r.Gravity) - 1
	}
	return r.Gravity[idx]
}

// LineClearScore returns the points for clearing n rows in one lock.
// Four or more rows score at the four-row rate.
func (r Rules) LineClearScore(n int) int {
	switch {
	case n <= 0:
		return 0
	case n >= len(r.LineScores):
		return r.LineScores[len(r.LineScores)-1]
	default:
		return r.LineScores[n-1]
	}
}

// Validate checks that the rules describe a playable game.
func (r Rules) Validate() error {
	if r.Width < 4 || r.Height < 4 {
		return fmt.Errorf("engine: board %dx%d is too small", r.Width, r.Height)
	}
	if r.SpawnX < 0 || r.SpawnX+4 > r.Width {
		return fmt.Errorf("engine: spawn column %d does not fit a %d wide board", r.SpawnX, r.Width)
	}
	if len(r.Gravity) == 0 {
		return errors.New("engine: gravity table is empty")
	}
	for i, v := range r.Gravity {
		if v <= 0 {
			return fmt.Errorf("engine: gravity[%d] = %v, must be positive", i, v)
		}
		if i > 0 && v > r.Gravity[i-1] {
			return fmt.Errorf("engine: gravity[%d] = %v is slower than level %d", i, v, i)
		}
	}
	for i, v := range r.LineScores {
		if v < 0 {
			return fmt.Errorf("engine: line score for %d rows is negative", i+1)
		}
	}
	if r.SoftDropBonus < 0 || r.HardDropBonus < 0 {
		return errors.New("engine: drop bonuses must not be negative")
	}
	if r.LinesPerLevel <= 0 {
		return fmt.Errorf("engine: lines per level must be positive, got %d", r.LinesPerLevel)
	}
	return nil
}
