package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGravityInterval(t *testing.T) {
	r := DefaultRules()

	tests := []struct {
		level    int
		expected float64
	}{
		{0, 0.8},
		{1, 0.8},
		{2, 0.72},
		{10, 0.18},
		{13, 0.1},
		{14, 0.1},
		{99, 0.1},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, r.GravityInterval(tc.level), "level %d", tc.level)
	}
}

func TestGravityTableDecreases(t *testing.T) {
	for i := 1; i < len(DefaultGravity); i++ {
		assert.Less(t, DefaultGravity[i], DefaultGravity[i-1])
	}
}

func TestLineClearScore(t *testing.T) {
	r := DefaultRules()

	tests := []struct {
		rows     int
		expected int
	}{
		{0, 0},
		{1, 100},
		{2, 300},
		{3, 500},
		{4, 800},
		{5, 800},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, r.LineClearScore(tc.rows), "rows %d", tc.rows)
	}
}

func TestRulesValidate(t *testing.T) {
	assert.NoError(t, DefaultRules().Validate())

	tests := []struct {
		name   string
		mutate func(r *Rules)
	}{
		{"tiny board", func(r *Rules) { r.Width = 3 }},
		{"spawn off board", func(r *Rules) { r.SpawnX = 7 }},
		{"negative spawn column", func(r *Rules) { r.SpawnX = -1 }},
		{"empty gravity", func(r *Rules) { r.Gravity = nil }},
		{"zero interval", func(r *Rules) { r.Gravity = []float64{0.5, 0} }},
		{"increasing gravity", func(r *Rules) { r.Gravity = []float64{0.5, 0.6} }},
		{"negative line score", func(r *Rules) { r.LineScores[2] = -1 }},
		{"negative drop bonus", func(r *Rules) { r.HardDropBonus = -2 }},
		{"zero lines per level", func(r *Rules) { r.LinesPerLevel = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := DefaultRules()
			tc.mutate(&r)
			assert.Error(t, r.Validate())
		})
	}
}

func TestDefaultRulesOwnGravityTable(t *testing.T) {
	r := DefaultRules()
	r.Gravity[0] = 99
	assert.Equal(t, 0.8, DefaultGravity[0])
}
