package config

import (
	"fmt"
	"strings"
)

// ParseDifficulty converts a flag value into a preset. An empty string is
// the normal preset.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// GravityScaleForPreset returns the interval multiplier for a preset.
func GravityScaleForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 1.25
	case DifficultyHard:
		return 0.7
	default:
		return 1.0
	}
}

// GravityTable returns the effective gravity table after difficulty is
// applied. With progression disabled only the first interval remains, so
// every level falls at the same speed.
func GravityTable(cfg TetrisConfig) []float64 {
	src := cfg.Gravity
	if !cfg.Difficulty.Enabled && len(src) > 0 {
		src = src[:1]
	}

	scale := cfg.Difficulty.GravityScale
	if scale <= 0 {
		scale = 1.0
	}

	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = v * scale
	}
	return out
}
