package watcher

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/lifewheel/internal/engine"
	"github.com/blackwell-systems/lifewheel/internal/log"
	"github.com/blackwell-systems/lifewheel/internal/store"
	"github.com/blackwell-systems/lifewheel/internal/timeframe"
)

// sequence returns a SnapshotFunc that yields states in order and then
// repeats the last one.
func sequence(states ...*WatchState) SnapshotFunc {
	i := 0
	return func(context.Context) (*WatchState, error) {
		st := states[min(i, len(states)-1)]
		i++
		return st, nil
	}
}

func TestCapture(t *testing.T) {
	// Sunday: anything under 4 is serious.
	sunday := time.Date(2024, 1, 14, 20, 0, 0, 0, time.UTC)
	e := engine.New(engine.Options{
		Gateway: store.NewMemory(),
		Clock:   timeframe.FixedClock(sunday),
		Rand:    rand.New(rand.NewSource(1)),
		Logger:  log.Discard(),
		DefaultDomains: []engine.Domain{
			{Name: "Body", Subdomains: []string{"Sleep"}},
			{Name: "Mind", Subdomains: []string{"Reading"}},
		},
	})
	e.Init(context.Background())
	require.NoError(t, e.SetWeeklyScore(context.Background(), 0, 8))
	require.NoError(t, e.SetWeeklyScore(context.Background(), 1, 2))

	st := Capture(e)
	assert.Equal(t, "2024-01-14", st.DayKey)
	assert.Equal(t, "2024-W02", st.WeekKey)
	assert.Equal(t, 5.0, st.AvgScore)
	assert.Equal(t, map[string]float64{"Mind": 2}, st.Serious)
	assert.Positive(t, st.Pending)
	require.NotNil(t, st.Nudge)
	assert.Equal(t, engine.NudgeCorrective, st.Nudge.Type)
}

func TestCheck_ReturnsAlertsAndDeduplicates(t *testing.T) {
	prev := baseState()
	worse := clone(prev)
	worse.Serious["Social"] = 0.5

	w := New(sequence(prev, worse, worse), time.Minute, nil)
	_, err := w.Baseline(context.Background())
	require.NoError(t, err)

	alerts := w.Check(context.Background())
	require.Len(t, alerts, 1)
	assert.Equal(t, "Neglected: Social", alerts[0].Title)

	assert.Empty(t, w.Check(context.Background()))
}

func TestCheck_SnapshotError(t *testing.T) {
	w := New(func(context.Context) (*WatchState, error) {
		return nil, errors.New("database is locked")
	}, time.Minute, nil)

	alerts := w.Check(context.Background())
	require.Len(t, alerts, 1)
	assert.Equal(t, "warning", alerts[0].Level)
	assert.Contains(t, alerts[0].Message, "database is locked")
}

func TestRun_EmitsAlertsUntilCancelled(t *testing.T) {
	prev := baseState()
	next := clone(prev)
	next.Done = 1

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan Alert, 4)
	w := New(sequence(prev, next), 10*time.Millisecond, func(a Alert) { received <- a })

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case a := <-received:
		assert.Equal(t, "Progress", a.Title)
	case <-time.After(2 * time.Second):
		t.Fatal("no alert received")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_BaselineError(t *testing.T) {
	w := New(func(context.Context) (*WatchState, error) {
		return nil, errors.New("boom")
	}, time.Minute, nil)
	err := w.Run(context.Background())
	assert.ErrorContains(t, err, "initial snapshot")
}
