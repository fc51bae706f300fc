// Package config provides YAML-based game configuration loading and
// difficulty presets for the tetris game.
package config

// TetrisConfig contains all configuration for the tetris game.
type TetrisConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Gravity    []float64        `yaml:"gravity"` // seconds per row, indexed by level-1
	Scoring    ScoringConfig    `yaml:"scoring"`
	Levels     LevelConfig      `yaml:"levels"`
	Display    DisplayConfig    `yaml:"display"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the well size and the spawn pose.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	SpawnX int `yaml:"spawn_x"`
	SpawnY int `yaml:"spawn_y"`
}

// ScoringConfig defines points for line clears and drops.
type ScoringConfig struct {
	Single   int `yaml:"single"`
	Double   int `yaml:"double"`
	Triple   int `yaml:"triple"`
	Tetris   int `yaml:"tetris"`
	SoftDrop int `yaml:"soft_drop"` // per soft drop command
	HardDrop int `yaml:"hard_drop"` // per row travelled
}

// LineScores returns the clear scores indexed by rows-1.
func (s ScoringConfig) LineScores() [4]int {
	return [4]int{s.Single, s.Double, s.Triple, s.Tetris}
}

// LevelConfig defines level progression.
type LevelConfig struct {
	LinesPerLevel int `yaml:"lines_per_level"`
}

// DisplayConfig defines presentation options.
type DisplayConfig struct {
	Preview int               `yaml:"preview"` // upcoming pieces shown, 0-7
	Ghost   bool              `yaml:"ghost"`
	Colors  map[string]string `yaml:"colors"` // piece letter -> color name
}

// DifficultyConfig controls how gravity reacts to the level.
type DifficultyConfig struct {
	Enabled      bool    `yaml:"enabled"`       // false keeps the first gravity interval forever
	GravityScale float64 `yaml:"gravity_scale"` // multiplies every interval; >1 is slower
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
