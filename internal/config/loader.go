package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

const tetrisFile = "tetris.yaml"

// LoadTetris loads tetris configuration.
// Search order: customPath -> ~/.tetris/configs/tetris.yaml -> ./configs/tetris.yaml -> embedded default.
// Keys missing from a file keep their default values.
func LoadTetris(customPath string) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(tetrisFile), filepath.Join("configs", tetrisFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		loaded := DefaultTetrisConfig()
		if err := yaml.Unmarshal(data, &loaded); err == nil {
			return loaded, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultTetrisYAML, &cfg); err != nil {
		return DefaultTetrisConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tetris", "configs", filename)
}

// ApplyTetrisPreset modifies the config based on a difficulty preset.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	cfg.Difficulty.Enabled = !IsFixedPreset(preset)
	cfg.Difficulty.GravityScale = GravityScaleForPreset(preset)
}

// pieceLetters are the keys accepted in display.colors.
var pieceLetters = map[string]bool{"I": true, "J": true, "L": true, "O": true, "S": true, "T": true, "Z": true}

// Validate reports every problem found in the configuration.
func (c TetrisConfig) Validate() error {
	var errs []error

	if c.Board.Width < 4 || c.Board.Height < 4 {
		errs = append(errs, fmt.Errorf("board must be at least 4x4, got %dx%d", c.Board.Width, c.Board.Height))
	}
	if c.Board.SpawnX < 0 || c.Board.SpawnX+4 > c.Board.Width {
		errs = append(errs, fmt.Errorf("spawn_x %d does not fit a board %d wide", c.Board.SpawnX, c.Board.Width))
	}

	if len(c.Gravity) == 0 {
		errs = append(errs, errors.New("gravity table is empty"))
	}
	for i, v := range c.Gravity {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("gravity[%d] = %v must be positive", i, v))
		}
		if i > 0 && v > c.Gravity[i-1] {
			errs = append(errs, fmt.Errorf("gravity[%d] = %v is slower than the level before", i, v))
		}
	}

	for i, v := range c.Scoring.LineScores() {
		if v < 0 {
			errs = append(errs, fmt.Errorf("score for %d lines must not be negative", i+1))
		}
	}
	if c.Scoring.SoftDrop < 0 || c.Scoring.HardDrop < 0 {
		errs = append(errs, errors.New("drop bonuses must not be negative"))
	}

	if c.Levels.LinesPerLevel <= 0 {
		errs = append(errs, fmt.Errorf("lines_per_level must be positive, got %d", c.Levels.LinesPerLevel))
	}
	if c.Display.Preview < 0 || c.Display.Preview > 7 {
		errs = append(errs, fmt.Errorf("preview must be between 0 and 7, got %d", c.Display.Preview))
	}
	for piece, color := range c.Display.Colors {
		if !pieceLetters[piece] {
			errs = append(errs, fmt.Errorf("colors: unknown piece %q", piece))
		}
		if _, ok := core.ParseColor(color); !ok {
			errs = append(errs, fmt.Errorf("colors: unknown color %q for %s", color, piece))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid tetris config: %w", err)
	}
	return nil
}
