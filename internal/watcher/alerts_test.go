package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/lifewheel/internal/engine"
)

func baseState() *WatchState {
	return &WatchState{
		Timestamp: time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC),
		DayKey:    "2024-01-10",
		WeekKey:   "2024-W02",
		AvgScore:  5,
		Momentum:  0.1,
		Pending:   4,
		Nudge:     &engine.Nudge{Type: engine.NudgeSoft, Message: "All good.", Target: "Social"},
		Serious:   map[string]float64{},
	}
}

func clone(s *WatchState) *WatchState {
	c := *s
	c.Serious = make(map[string]float64, len(s.Serious))
	for k, v := range s.Serious {
		c.Serious[k] = v
	}
	return &c
}

func titles(alerts []Alert) []string {
	out := make([]string, len(alerts))
	for i, a := range alerts {
		out[i] = a.Title
	}
	return out
}

func TestCompare_NoChange(t *testing.T) {
	prev := baseState()
	assert.Empty(t, Compare(prev, clone(prev)))
}

func TestCompare_NewlySeriousDomains(t *testing.T) {
	prev := baseState()
	prev.Serious["Physical"] = 0.5
	curr := clone(prev)
	curr.Serious["Social"] = 1
	curr.Serious["Mental"] = 0

	alerts := Compare(prev, curr)
	require.Len(t, alerts, 2)
	assert.Equal(t, []string{"Neglected: Mental", "Neglected: Social"}, titles(alerts))
	for _, a := range alerts {
		assert.Equal(t, "critical", a.Level)
		assert.Contains(t, a.Message, "2024-W02")
	}
}

func TestCompare_NudgeEscalation(t *testing.T) {
	prev := baseState()
	curr := clone(prev)
	curr.Nudge = &engine.Nudge{Type: engine.NudgeCorrective, Message: "Social needs you.", Target: "Social"}

	alerts := Compare(prev, curr)
	require.Len(t, alerts, 1)
	assert.Equal(t, "warning", alerts[0].Level)
	assert.Equal(t, "Nudge: Social", alerts[0].Title)
	assert.Equal(t, "Social needs you.", alerts[0].Message)

	// De-escalation is quiet.
	assert.Empty(t, Compare(curr, prev))
}

func TestCompare_MomentumTurnsNegative(t *testing.T) {
	prev := baseState()
	curr := clone(prev)
	curr.Momentum = -0.25

	alerts := Compare(prev, curr)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Momentum dropped", alerts[0].Title)
	assert.Equal(t, "Now -25% against last week", alerts[0].Message)
}

func TestCompare_Rollovers(t *testing.T) {
	prev := baseState()
	curr := clone(prev)
	curr.DayKey = "2024-01-15"
	curr.WeekKey = "2024-W03"
	curr.Momentum = -1
	curr.Pending = 3

	alerts := Compare(prev, curr)
	assert.Equal(t, []string{"New week 2024-W03", "New task pack"}, titles(alerts))
	assert.Equal(t, "3 tasks ready for 2024-01-15", alerts[1].Message)
}

func TestCompare_Progress(t *testing.T) {
	prev := baseState()
	curr := clone(prev)
	curr.Done = 2
	curr.AvgScore = 5.4

	alerts := Compare(prev, curr)
	require.Len(t, alerts, 1)
	assert.Equal(t, "info", alerts[0].Level)
	assert.Equal(t, "2 done today, average 5.4", alerts[0].Message)
}

func TestNudgeRank(t *testing.T) {
	assert.Equal(t, 0, nudgeRank(nil))
	assert.Less(t, nudgeRank(&engine.Nudge{Type: engine.NudgeSoft}), nudgeRank(&engine.Nudge{Type: engine.NudgeStandard}))
	assert.Less(t, nudgeRank(&engine.Nudge{Type: engine.NudgeStandard}), nudgeRank(&engine.Nudge{Type: engine.NudgeCorrective}))
}
