package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreBar(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tests := []struct {
		score  float64
		filled int
		label  string
	}{
		{0, 0, "0.0/10"},
		{5, 5, "5.0/10"},
		{7.5, 7, "7.5/10"},
		{10, 10, "10.0/10"},
		{14, 10, "14.0/10"},
		{-2, 0, "-2.0/10"},
	}
	for _, tc := range tests {
		bar := ScoreBar(tc.score, 10)
		assert.Equal(t, tc.filled, strings.Count(bar, "█"), bar)
		assert.Equal(t, 10-tc.filled, strings.Count(bar, "░"), bar)
		assert.True(t, strings.HasSuffix(bar, tc.label), bar)
	}
}

func TestTrendArrow(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	assert.Equal(t, "─", TrendArrow(0, true))
	assert.Equal(t, "▲ +1.5", TrendArrow(1.5, true))
	assert.Equal(t, "▼ -0.3", TrendArrow(-0.3, true))
	assert.Equal(t, "▲ +40%", TrendArrowPercent(40, true))
}

func TestNeglectBadge(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	assert.Equal(t, "● serious", NeglectBadge("serious"))
	assert.Equal(t, "● medium", NeglectBadge("medium"))
	assert.Equal(t, "● ok", NeglectBadge("none"))
}

func TestSectionUsesWidth(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)
	defer SetWidth(width)

	SetWidth(12)
	assert.Contains(t, Section("Today"), strings.Repeat("─", 12))
	SetWidth(0)
	assert.Contains(t, Section("Today"), strings.Repeat("─", 12))
}

func TestNudgeIncludesMessage(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	out := Nudge("corrective", "move")
	assert.Contains(t, out, "Corrective")
	assert.Contains(t, out, "move")
}
