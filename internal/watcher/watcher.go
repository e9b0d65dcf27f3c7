// Package watcher polls the life wheel in the background and emits alerts
// when a domain slips into serious neglect, the nudge escalates or a new day
// or week starts.
package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/blackwell-systems/lifewheel/internal/engine"
)

// WatchState is a point-in-time summary of the wheel.
type WatchState struct {
	Timestamp time.Time
	DayKey    string
	WeekKey   string
	AvgScore  float64
	Momentum  float64
	Pending   int
	Done      int
	Nudge     *engine.Nudge

	// Serious maps each seriously neglected domain to its weekly score.
	Serious map[string]float64
}

// Alert represents a notable event detected by the watcher.
type Alert struct {
	Level   string // "info", "warning", "critical"
	Title   string
	Message string
	Time    time.Time
}

// SnapshotFunc reads the current state of the wheel.
type SnapshotFunc func(ctx context.Context) (*WatchState, error)

// Watcher polls a SnapshotFunc at a regular interval and emits alerts when
// notable changes are detected.
type Watcher struct {
	snapshot      SnapshotFunc
	interval      time.Duration
	previous      *WatchState
	alertFn       func(Alert)
	lastAlertKeys map[string]bool
}

// New creates a Watcher.
func New(snapshot SnapshotFunc, interval time.Duration, alertFn func(Alert)) *Watcher {
	return &Watcher{
		snapshot:      snapshot,
		interval:      interval,
		alertFn:       alertFn,
		lastAlertKeys: make(map[string]bool),
	}
}

// Capture summarizes an initialized engine.
func Capture(e *engine.Engine) *WatchState {
	view := e.TodayView()
	st := &WatchState{
		Timestamp: e.Now(),
		DayKey:    e.State().TodayKey,
		WeekKey:   view.Period.WeekKey,
		AvgScore:  view.AvgScore,
		Momentum:  e.Momentum(),
		Pending:   len(view.Pending),
		Done:      len(view.Done),
		Nudge:     view.Nudge,
		Serious:   make(map[string]float64),
	}
	for _, d := range view.Domains {
		if d.Neglect == engine.NeglectSerious {
			st.Serious[d.Name] = d.Score
		}
	}
	return st
}

// Baseline takes the initial snapshot without emitting alerts.
func (w *Watcher) Baseline(ctx context.Context) (*WatchState, error) {
	st, err := w.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("initial snapshot: %w", err)
	}
	w.previous = st
	return st, nil
}

// Run takes a baseline if none exists, then checks at every interval until
// ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if w.previous == nil {
		if _, err := w.Baseline(ctx); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			for _, a := range w.Check(ctx) {
				if w.alertFn != nil {
					w.alertFn(a)
				}
			}
		}
	}
}

// Check performs a single cycle: takes a snapshot, compares it with the
// previous one and returns the alerts. An alert identical to one raised in
// the previous cycle is suppressed.
func (w *Watcher) Check(ctx context.Context) []Alert {
	curr, err := w.snapshot(ctx)
	if err != nil {
		return []Alert{{
			Level:   "warning",
			Title:   "Snapshot failed",
			Message: fmt.Sprintf("Could not read the wheel: %v", err),
			Time:    time.Now(),
		}}
	}

	var raw []Alert
	if w.previous != nil {
		raw = Compare(w.previous, curr)
	}

	currentKeys := make(map[string]bool, len(raw))
	var alerts []Alert
	for _, a := range raw {
		key := a.Level + ":" + a.Title + ":" + a.Message
		currentKeys[key] = true
		if !w.lastAlertKeys[key] {
			alerts = append(alerts, a)
		}
	}
	w.lastAlertKeys = currentKeys

	w.previous = curr
	return alerts
}
