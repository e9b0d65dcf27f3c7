package engine

import "context"

// EnsureFrames re-derives today's, this week's and this month's keys from the
// clock and guarantees a score entry for every domain (and every subdomain in
// the month frame) plus a task pack for today. It is idempotent and handles
// day rollover on every call.
func (e *Engine) EnsureFrames() {
	st := e.state
	st.repair(e.defaults)

	st.TodayKey = e.frames.TodayKey()
	st.WeekKey = e.frames.WeekKey()
	st.MonthKey = e.frames.MonthKey()

	wk := st.WeeklyScores[st.WeekKey]
	if wk == nil {
		wk = make(WeekFrame, len(st.Domains))
		st.WeeklyScores[st.WeekKey] = wk
	}
	for i := range st.Domains {
		if _, ok := wk[i]; !ok {
			wk[i] = 0
		}
	}

	mk := st.MonthlyScores[st.MonthKey]
	if mk == nil {
		mk = make(MonthFrame, len(st.Domains))
		st.MonthlyScores[st.MonthKey] = mk
	}
	for d, dom := range st.Domains {
		if mk[d] == nil {
			mk[d] = make(map[int]float64, len(dom.Subdomains))
		}
		for s := range dom.Subdomains {
			if _, ok := mk[d][s]; !ok {
				mk[d][s] = 0
			}
		}
	}

	e.todayPack()
}

// todayPack returns today's pack, creating it if needed.
func (e *Engine) todayPack() *DayTaskPack {
	st := e.state
	pack := st.Tasks[st.TodayKey]
	if pack == nil {
		pack = newDayTaskPack()
		st.Tasks[st.TodayKey] = pack
	}
	if pack.Pending == nil {
		pack.Pending = []Task{}
	}
	if pack.Done == nil {
		pack.Done = []Task{}
	}
	return pack
}

func (e *Engine) validDomain(d int) bool {
	return d >= 0 && d < len(e.state.Domains)
}

func (e *Engine) validSubdomain(d, s int) bool {
	return e.validDomain(d) && s >= 0 && s < len(e.state.Domains[d].Subdomains)
}

// WeeklyScore returns this week's score for domain d, 0 when unset.
func (e *Engine) WeeklyScore(d int) float64 {
	return e.state.WeeklyScores[e.state.WeekKey][d]
}

// weekScores returns this week's score for every domain in index order.
func (e *Engine) weekScores() []float64 {
	scores := make([]float64, len(e.state.Domains))
	wk := e.state.WeeklyScores[e.state.WeekKey]
	for i := range scores {
		scores[i] = wk[i]
	}
	return scores
}

// SetWeeklyScore records a manual score for domain d in the current week.
// The value is stored as given unless manual clamping is enabled.
func (e *Engine) SetWeeklyScore(ctx context.Context, d int, value float64) error {
	if !e.validDomain(d) {
		return ErrUnknownDomain
	}
	if e.clampManual {
		value = clampScore(value)
	}
	wk := e.state.WeeklyScores[e.state.WeekKey]
	if wk == nil {
		wk = make(WeekFrame)
		e.state.WeeklyScores[e.state.WeekKey] = wk
	}
	wk[d] = value
	e.persist(ctx)
	return nil
}

// MonthlySubScore returns this month's score for subdomain s of domain d.
func (e *Engine) MonthlySubScore(d, s int) float64 {
	return e.state.MonthlyScores[e.state.MonthKey][d][s]
}

// SetMonthlySubScore records a manual score for subdomain s of domain d in
// the current month.
func (e *Engine) SetMonthlySubScore(ctx context.Context, d, s int, value float64) error {
	if !e.validDomain(d) {
		return ErrUnknownDomain
	}
	if !e.validSubdomain(d, s) {
		return ErrUnknownSubdomain
	}
	if e.clampManual {
		value = clampScore(value)
	}
	mk := e.state.MonthlyScores[e.state.MonthKey]
	if mk == nil {
		mk = make(MonthFrame)
		e.state.MonthlyScores[e.state.MonthKey] = mk
	}
	if mk[d] == nil {
		mk[d] = make(map[int]float64)
	}
	mk[d][s] = value
	e.persist(ctx)
	return nil
}

func clampScore(v float64) float64 {
	if v > 10 {
		return 10
	}
	if v < 0 {
		return 0
	}
	return v
}
