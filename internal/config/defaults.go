package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultGravity is the gravity interval table in seconds per row.
var DefaultGravity = []float64{0.8, 0.72, 0.63, 0.55, 0.47, 0.4, 0.33, 0.27, 0.22, 0.18, 0.15, 0.12, 0.1}

// DefaultTetrisConfig returns the default tetris configuration.
func DefaultTetrisConfig() TetrisConfig {
	gravity := make([]float64, len(DefaultGravity))
	copy(gravity, DefaultGravity)

	return TetrisConfig{
		Board: BoardConfig{
			Width:  10,
			Height: 20,
			SpawnX: 3,
			SpawnY: -2,
		},
		Gravity: gravity,
		Scoring: ScoringConfig{
			Single:   100,
			Double:   300,
			Triple:   500,
			Tetris:   800,
			SoftDrop: 1,
			HardDrop: 2,
		},
		Levels: LevelConfig{
			LinesPerLevel: 10,
		},
		Display: DisplayConfig{
			Preview: 5,
			Ghost:   true,
			Colors: map[string]string{
				"I": "cyan",
				"J": "blue",
				"L": "orange",
				"O": "yellow",
				"S": "green",
				"T": "magenta",
				"Z": "red",
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			GravityScale: 1.0,
		},
	}
}
