package watcher

import (
	"fmt"
	"sort"

	"github.com/blackwell-systems/lifewheel/internal/engine"
)

// Compare detects notable changes between two watch states. Critical alerts
// come first, then warnings, then info.
func Compare(prev, curr *WatchState) []Alert {
	var alerts []Alert

	alerts = append(alerts, compareCritical(prev, curr)...)
	alerts = append(alerts, compareWarning(prev, curr)...)
	alerts = append(alerts, compareInfo(prev, curr)...)

	return alerts
}

// compareCritical reports domains that slipped into serious neglect.
func compareCritical(prev, curr *WatchState) []Alert {
	var names []string
	for name := range curr.Serious {
		if _, was := prev.Serious[name]; !was {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	alerts := make([]Alert, 0, len(names))
	for _, name := range names {
		alerts = append(alerts, Alert{
			Level:   "critical",
			Title:   fmt.Sprintf("Neglected: %s", name),
			Message: fmt.Sprintf("Weekly score is %.1f, well behind pace for %s", curr.Serious[name], curr.WeekKey),
			Time:    curr.Timestamp,
		})
	}
	return alerts
}

// compareWarning reports nudge escalation and momentum turning negative.
func compareWarning(prev, curr *WatchState) []Alert {
	var alerts []Alert

	if curr.Nudge != nil && nudgeRank(curr.Nudge) > nudgeRank(prev.Nudge) {
		alerts = append(alerts, Alert{
			Level:   "warning",
			Title:   fmt.Sprintf("Nudge: %s", curr.Nudge.Target),
			Message: curr.Nudge.Message,
			Time:    curr.Timestamp,
		})
	}

	if curr.WeekKey == prev.WeekKey && curr.Momentum < 0 && prev.Momentum >= 0 {
		alerts = append(alerts, Alert{
			Level:   "warning",
			Title:   "Momentum dropped",
			Message: fmt.Sprintf("Now %+.0f%% against last week", curr.Momentum*100),
			Time:    curr.Timestamp,
		})
	}

	return alerts
}

// compareInfo reports rollovers and progress.
func compareInfo(prev, curr *WatchState) []Alert {
	var alerts []Alert

	if curr.WeekKey != prev.WeekKey {
		alerts = append(alerts, Alert{
			Level:   "info",
			Title:   fmt.Sprintf("New week %s", curr.WeekKey),
			Message: "Rate each domain with 'lifewheel score week'",
			Time:    curr.Timestamp,
		})
	}

	switch {
	case curr.DayKey != prev.DayKey:
		alerts = append(alerts, Alert{
			Level:   "info",
			Title:   "New task pack",
			Message: fmt.Sprintf("%d tasks ready for %s", curr.Pending, curr.DayKey),
			Time:    curr.Timestamp,
		})
	case curr.Done > prev.Done:
		alerts = append(alerts, Alert{
			Level:   "info",
			Title:   "Progress",
			Message: fmt.Sprintf("%d done today, average %.1f", curr.Done, curr.AvgScore),
			Time:    curr.Timestamp,
		})
	}

	return alerts
}

func nudgeRank(n *engine.Nudge) int {
	if n == nil {
		return 0
	}
	switch n.Type {
	case engine.NudgeCorrective:
		return 3
	case engine.NudgeStandard:
		return 2
	case engine.NudgeSoft:
		return 1
	default:
		return 0
	}
}
