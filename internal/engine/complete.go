package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ApplyDelta adds delta to score and clamps the result to [0,10].
func ApplyDelta(score, delta float64) float64 {
	return clampScore(score + delta)
}

// applyCompletionImpact raises the task domain's weekly score by the
// difficulty's completion delta. This is the only automatic score change.
func (e *Engine) applyCompletionImpact(t Task) {
	wk := e.state.WeeklyScores[e.state.WeekKey]
	if wk == nil {
		wk = make(WeekFrame)
		e.state.WeeklyScores[e.state.WeekKey] = wk
	}
	wk[t.DomainIndex] = ApplyDelta(wk[t.DomainIndex], t.Difficulty.CompletionDelta())
}

// CompleteTask moves the pending task id to today's done list, applies its
// score impact, queues a replacement of the same domain and difficulty and
// saves. Only today's pending tasks are addressable; any other id is a no-op
// and ok is false.
func (e *Engine) CompleteTask(ctx context.Context, id string) (done Task, ok bool) {
	pack := e.state.Tasks[e.state.TodayKey]
	if pack == nil {
		e.logger.Debug("complete: no task pack for today", "day", e.state.TodayKey)
		return Task{}, false
	}

	idx := -1
	for i, t := range pack.Pending {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		e.logger.Debug("complete: task not pending", "id", id)
		return Task{}, false
	}

	done = pack.Pending[idx]
	pack.Pending = append(pack.Pending[:idx], pack.Pending[idx+1:]...)
	done.Status = StatusDone
	pack.Done = append(pack.Done, done)

	e.applyCompletionImpact(done)
	pack.Pending = append(pack.Pending, e.GenerateReplacement(done.DomainIndex, done.Difficulty))

	e.persist(ctx)
	return done, true
}

// LogTask records an ad hoc activity straight into today's done list and
// applies the same score impact as a completion. Unknown difficulties are
// treated as micro.
func (e *Engine) LogTask(ctx context.Context, d int, sub *int, difficulty, label string) (Task, error) {
	if !e.validDomain(d) {
		return Task{}, ErrUnknownDomain
	}
	if sub != nil && !e.validSubdomain(d, *sub) {
		return Task{}, ErrUnknownSubdomain
	}
	e.EnsureFrames()

	diff := NormalizeDifficulty(difficulty)
	id := fmt.Sprintf("%s-log-%s", e.state.TodayKey, e.newID())
	t := e.newTask(id, d, diff, strings.TrimSpace(label), StatusDone)
	if sub != nil {
		t.SubdomainIndex = intPtr(*sub)
	}

	pack := e.todayPack()
	pack.Done = append(pack.Done, t)
	e.applyCompletionImpact(t)
	e.persist(ctx)
	return t, nil
}

// newID draws a UUID from the engine's random source so ids are
// reproducible under a seeded generator.
func (e *Engine) newID() string {
	id, err := uuid.NewRandomFromReader(e.rng)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
