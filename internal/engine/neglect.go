package engine

import "slices"

// Neglect is how under-attended a domain is this week, relative to how much
// of the week has elapsed.
type Neglect string

const (
	NeglectNone    Neglect = "none"
	NeglectMedium  Neglect = "medium"
	NeglectSerious Neglect = "serious"
)

// Rank orders neglect by severity: serious=2, medium=1, none=0.
func (n Neglect) Rank() int {
	switch n {
	case NeglectSerious:
		return 2
	case NeglectMedium:
		return 1
	default:
		return 0
	}
}

const (
	neglectNoneBase   = 7.0
	neglectMediumBase = 4.0

	// MomentumDeepThreshold is the momentum at or above which a deep task is
	// generated for the strongest domain.
	MomentumDeepThreshold = 0.3
)

// DeriveNeglect classifies score given the ISO weekday (Monday=1..Sunday=7).
// Thresholds scale with the elapsed fraction of the week, so Monday is
// lenient and Sunday expects the full 7/4.
func DeriveNeglect(score float64, weekday int) Neglect {
	weekday = max(1, min(7, weekday))
	frac := float64(weekday) / 7
	switch {
	case score >= neglectNoneBase*frac:
		return NeglectNone
	case score >= neglectMediumBase*frac:
		return NeglectMedium
	default:
		return NeglectSerious
	}
}

// ComputeWeeklyMomentum maps the average of the first domainCount scores in
// frame (missing entries count as 0) from 0..10 onto -1..1. The result is
// always clamped to [-1,1]; an empty domain list has momentum 0.
func ComputeWeeklyMomentum(frame WeekFrame, domainCount int) float64 {
	if domainCount <= 0 {
		return 0
	}
	total := 0.0
	for i := 0; i < domainCount; i++ {
		total += frame[i]
	}
	avg := total / float64(domainCount)
	return max(-1, min(1, (avg-5)/5))
}

// DeriveNeglect classifies score against today's weekday.
func (e *Engine) DeriveNeglect(score float64) Neglect {
	return DeriveNeglect(score, e.frames.Weekday())
}

// Momentum returns this week's momentum across all domains.
func (e *Engine) Momentum() float64 {
	return ComputeWeeklyMomentum(e.state.WeeklyScores[e.state.WeekKey], len(e.state.Domains))
}

// DomainStatus is one domain's standing this week.
type DomainStatus struct {
	Index       int      `json:"idx"`
	Name        string   `json:"name"`
	Score       float64  `json:"score"`
	Neglect     Neglect  `json:"neglect"`
	NeglectRank int      `json:"neglect_rank"`
	LastWeek    *float64 `json:"last_week"`
}

// domainStatuses returns every domain's status in index order.
func (e *Engine) domainStatuses() []DomainStatus {
	scores := e.weekScores()
	out := make([]DomainStatus, len(scores))
	for i, score := range scores {
		n := e.DeriveNeglect(score)
		out[i] = DomainStatus{
			Index:       i,
			Name:        e.state.Domains[i].Name,
			Score:       score,
			Neglect:     n,
			NeglectRank: n.Rank(),
		}
	}
	return out
}

// SortByNeglect orders statuses worst first: higher neglect rank, then lower
// score. Ties keep their original order.
func SortByNeglect(statuses []DomainStatus) {
	slices.SortStableFunc(statuses, func(a, b DomainStatus) int {
		if a.NeglectRank != b.NeglectRank {
			return b.NeglectRank - a.NeglectRank
		}
		switch {
		case a.Score < b.Score:
			return -1
		case a.Score > b.Score:
			return 1
		default:
			return 0
		}
	})
}
