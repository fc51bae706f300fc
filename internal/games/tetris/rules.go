package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// RulesFromConfig converts a loaded configuration into engine rules, with
// the difficulty preset already applied to the gravity table.
func RulesFromConfig(cfg config.TetrisConfig) (engine.Rules, error) {
	rules := engine.Rules{
		Width:         cfg.Board.Width,
		Height:        cfg.Board.Height,
		SpawnX:        cfg.Board.SpawnX,
		SpawnY:        cfg.Board.SpawnY,
		Gravity:       config.GravityTable(cfg),
		LineScores:    cfg.Scoring.LineScores(),
		SoftDropBonus: cfg.Scoring.SoftDrop,
		HardDropBonus: cfg.Scoring.HardDrop,
		LinesPerLevel: cfg.Levels.LinesPerLevel,
	}
	if err := rules.Validate(); err != nil {
		return engine.Rules{}, fmt.Errorf("tetris: %w", err)
	}
	return rules, nil
}

// defaultPalette is used for pieces the config leaves out.
var defaultPalette = map[engine.PieceType]core.Color{
	engine.I: core.ColorCyan,
	engine.J: core.ColorBlue,
	engine.L: core.ColorOrange,
	engine.O: core.ColorYellow,
	engine.S: core.ColorGreen,
	engine.T: core.ColorMagenta,
	engine.Z: core.ColorRed,
}

// paletteFromConfig resolves piece colors by name.
func paletteFromConfig(cfg config.DisplayConfig) map[engine.PieceType]core.Color {
	palette := make(map[engine.PieceType]core.Color, len(defaultPalette))
	for p, c := range defaultPalette {
		palette[p] = c
	}
	for letter, name := range cfg.Colors {
		p, err := engine.ParsePieceType(letter)
		if err != nil {
			continue
		}
		if c, ok := core.ParseColor(name); ok {
			palette[p] = c
		}
	}
	return palette
}
