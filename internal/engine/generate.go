package engine

import (
	"context"
	"fmt"
)

const maxFocusDomains = 2

// GenerateBaseTaskPack builds a fresh pending list for today from this
// week's scores:
//   - one micro task for each of the (at most two) worst domains, preferring
//     neglected ones;
//   - one standard task for the single worst domain;
//   - one deep task for the strongest domain when momentum is at least
//     MomentumDeepThreshold.
//
// Template labels are used where available, otherwise a generic label naming
// the domain.
func (e *Engine) GenerateBaseTaskPack() []Task {
	day := e.state.TodayKey
	statuses := e.domainStatuses()
	ranked := append([]DomainStatus(nil), statuses...)
	SortByNeglect(ranked)

	var focus []DomainStatus
	for _, s := range ranked {
		if s.NeglectRank > 0 {
			focus = append(focus, s)
		}
	}
	if len(focus) == 0 {
		focus = ranked
	}
	if len(focus) > maxFocusDomains {
		focus = focus[:maxFocusDomains]
	}

	pending := make([]Task, 0, len(focus)+2)
	for pos, d := range focus {
		id := fmt.Sprintf("%s-%d-%d-m", day, d.Index, pos)
		fallback := fmt.Sprintf("Do one small 5-10 min action for %s (your choice).", d.Name)
		pending = append(pending, e.taskFromTemplate(id, d.Index, DifficultyMicro, fallback))
	}

	if len(focus) > 0 {
		worst := focus[0]
		id := fmt.Sprintf("%s-%d-std", day, worst.Index)
		fallback := fmt.Sprintf("Spend 15-20 mins deliberately improving %s in a concrete way.", worst.Name)
		pending = append(pending, e.taskFromTemplate(id, worst.Index, DifficultyStandard, fallback))
	}

	// Deep work rewards the strongest domain, not the most neglected one.
	if len(statuses) > 0 && e.Momentum() >= MomentumDeepThreshold {
		best := statuses[0]
		for _, s := range statuses[1:] {
			if s.Score > best.Score {
				best = s
			}
		}
		id := fmt.Sprintf("%s-%d-deep", day, best.Index)
		fallback := fmt.Sprintf("Optional 20-30 min deep block for %s (only if you have the energy).", best.Name)
		pending = append(pending, e.taskFromTemplate(id, best.Index, DifficultyDeep, fallback))
	}

	return pending
}

// EnsureTasksForToday fills today's pending list. Without force it does
// nothing while pending is non-empty; with force it always replaces pending.
// The done list is never touched. It reports whether pending was rebuilt.
func (e *Engine) EnsureTasksForToday(force bool) bool {
	pack := e.todayPack()
	if !force && len(pack.Pending) > 0 {
		return false
	}
	pack.Pending = e.GenerateBaseTaskPack()
	return true
}

// RegenerateTodayTasks refreshes the frames, rebuilds today's pending list and
// saves.
func (e *Engine) RegenerateTodayTasks(ctx context.Context) {
	e.EnsureFrames()
	e.EnsureTasksForToday(true)
	e.persist(ctx)
}

// GenerateReplacement builds one pending task for domain d at difficulty,
// with a randomized id that cannot collide with the base pack ids.
func (e *Engine) GenerateReplacement(d int, difficulty Difficulty) Task {
	name := "Domain"
	if e.validDomain(d) {
		name = e.state.Domains[d].Name
	}
	id := fmt.Sprintf("%s-%d-%s-extra-%d", e.state.TodayKey, d, difficulty, e.rng.Intn(100000))

	var fallback string
	switch difficulty {
	case DifficultyMicro:
		fallback = fmt.Sprintf("Another small 5-10 min action for %s.", name)
	case DifficultyStandard:
		fallback = fmt.Sprintf("Another 15-20 min block improving %s.", name)
	default:
		fallback = fmt.Sprintf("Optional deep 20-30+ min block for %s.", name)
	}
	return e.taskFromTemplate(id, d, difficulty, fallback)
}

func (e *Engine) taskFromTemplate(id string, d int, difficulty Difficulty, fallback string) Task {
	t := e.newTask(id, d, difficulty, fallback, StatusPending)
	if c, ok := e.PickTemplate(d, difficulty); ok {
		t.Label = c.Label
		t.SubdomainIndex = intPtr(c.SubdomainIndex)
	}
	return t
}

func (e *Engine) newTask(id string, d int, difficulty Difficulty, label string, status TaskStatus) Task {
	return Task{
		ID:                      id,
		DomainIndex:             d,
		Difficulty:              difficulty,
		Label:                   label,
		EnergyCost:              difficulty.EnergyCost(),
		ExpectedDurationMinutes: difficulty.ExpectedDuration(),
		Status:                  status,
		CreatedAt:               e.Now().UTC(),
	}
}
