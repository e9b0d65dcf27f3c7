package engine

// DomainRef names one domain and its score.
type DomainRef struct {
	Index int     `json:"idx"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// TodayView is the dashboard for the current day.
type TodayView struct {
	Period      PeriodInfo     `json:"period"`
	AvgScore    float64        `json:"avg_score"`
	Strongest   *DomainRef     `json:"strongest,omitempty"`
	Weakest     *DomainRef     `json:"weakest,omitempty"`
	Domains     []DomainStatus `json:"domains"`
	Nudge       *Nudge         `json:"nudge,omitempty"`
	Pending     []Task         `json:"pending"`
	Done        []Task         `json:"done"`
	PrevWeekKey string         `json:"prev_week_key"`
}

// WeeklyDomain is one row of the weekly score editor.
type WeeklyDomain struct {
	Index      int      `json:"idx"`
	Name       string   `json:"name"`
	Subdomains []string `json:"sub"`
	Score      float64  `json:"score"`
}

// WeeklyView lists this week's score for every domain.
type WeeklyView struct {
	WeekKey string         `json:"week_key"`
	Domains []WeeklyDomain `json:"domains"`
}

// DomainDelta compares one domain's score with the previous week. Prev and
// Delta are nil when the previous week has no entry for the domain.
type DomainDelta struct {
	Index int      `json:"idx"`
	Name  string   `json:"name"`
	Cur   float64  `json:"cur"`
	Prev  *float64 `json:"prev"`
	Delta *float64 `json:"delta"`
}

// InsightsView compares this week with the previous one and suggests a
// focus domain for next week.
type InsightsView struct {
	AvgScore    float64       `json:"avg_score"`
	Strongest   *DomainRef    `json:"strongest,omitempty"`
	Weakest     *DomainRef    `json:"weakest,omitempty"`
	Deltas      []DomainDelta `json:"deltas"`
	FocusIndex  *int          `json:"focus_idx"`
	HasPrevWeek bool          `json:"has_prev_week"`
}

// SubScore is one subdomain's monthly value.
type SubScore struct {
	Index int     `json:"idx"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// MonthlyDomain groups the subdomain scores of one domain.
type MonthlyDomain struct {
	Index int        `json:"idx"`
	Name  string     `json:"name"`
	Subs  []SubScore `json:"subs"`
}

// MonthlyView lists this month's subdomain scores.
type MonthlyView struct {
	MonthKey string          `json:"month_key"`
	Domains  []MonthlyDomain `json:"domains"`
}

// Radar is the label/value series for a radar chart.
type Radar struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// extremes returns the first highest and first lowest scoring domains.
func (e *Engine) extremes(scores []float64) (strongest, weakest *DomainRef) {
	if len(scores) == 0 {
		return nil, nil
	}
	maxIdx, minIdx := 0, 0
	for i, v := range scores {
		if v > scores[maxIdx] {
			maxIdx = i
		}
		if v < scores[minIdx] {
			minIdx = i
		}
	}
	return e.domainRef(maxIdx, scores[maxIdx]), e.domainRef(minIdx, scores[minIdx])
}

func (e *Engine) domainRef(i int, score float64) *DomainRef {
	return &DomainRef{Index: i, Name: e.state.Domains[i].Name, Score: score}
}

func average(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range scores {
		total += v
	}
	return total / float64(len(scores))
}

// previousWeek returns last week's frame, or nil if that week was never seen.
func (e *Engine) previousWeek() (string, WeekFrame) {
	key := e.frames.PreviousWeekKey()
	return key, e.state.WeeklyScores[key]
}

// TodayView builds the dashboard for today.
func (e *Engine) TodayView() TodayView {
	scores := e.weekScores()
	prevKey, prev := e.previousWeek()

	statuses := e.domainStatuses()
	for i := range statuses {
		if v, ok := prev[i]; ok {
			statuses[i].LastWeek = &v
		}
	}
	SortByNeglect(statuses)

	v := TodayView{
		Period:      e.PeriodInfo(),
		AvgScore:    average(scores),
		Domains:     statuses,
		Nudge:       e.BuildNudge(),
		Pending:     []Task{},
		Done:        []Task{},
		PrevWeekKey: prevKey,
	}
	v.Strongest, v.Weakest = e.extremes(scores)
	if pack := e.state.Tasks[e.state.TodayKey]; pack != nil {
		v.Pending = append(v.Pending, pack.Pending...)
		v.Done = append(v.Done, pack.Done...)
	}
	return v
}

// WeeklyView returns every domain's score for the current week.
func (e *Engine) WeeklyView() WeeklyView {
	scores := e.weekScores()
	out := WeeklyView{WeekKey: e.state.WeekKey, Domains: make([]WeeklyDomain, len(scores))}
	for i, score := range scores {
		d := e.state.Domains[i]
		out.Domains[i] = WeeklyDomain{
			Index:      i,
			Name:       d.Name,
			Subdomains: append([]string{}, d.Subdomains...),
			Score:      score,
		}
	}
	return out
}

// InsightsView compares this week against the previous one. The focus
// domain is the lowest current score; among ties the one that dropped the
// most since last week wins, when last week exists.
func (e *Engine) InsightsView() InsightsView {
	scores := e.weekScores()
	_, prev := e.previousWeek()

	v := InsightsView{
		AvgScore:    average(scores),
		Deltas:      make([]DomainDelta, len(scores)),
		HasPrevWeek: prev != nil,
	}
	v.Strongest, v.Weakest = e.extremes(scores)

	for i, cur := range scores {
		dd := DomainDelta{Index: i, Name: e.state.Domains[i].Name, Cur: cur}
		if p, ok := prev[i]; ok {
			delta := cur - p
			dd.Prev = &p
			dd.Delta = &delta
		}
		v.Deltas[i] = dd
	}

	if len(scores) == 0 {
		return v
	}
	var candidates []int
	for i, cur := range scores {
		switch {
		case len(candidates) == 0 || cur < scores[candidates[0]]:
			candidates = []int{i}
		case cur == scores[candidates[0]]:
			candidates = append(candidates, i)
		}
	}
	focus := candidates[0]
	if prev != nil {
		var best *float64
		for _, c := range candidates {
			d := v.Deltas[c].Delta
			if d == nil {
				continue
			}
			if best == nil || *d < *best {
				best = d
				focus = c
			}
		}
	}
	v.FocusIndex = &focus
	return v
}

// MonthlyView returns every subdomain score for the current month.
func (e *Engine) MonthlyView() MonthlyView {
	mk := e.state.MonthlyScores[e.state.MonthKey]
	out := MonthlyView{MonthKey: e.state.MonthKey, Domains: make([]MonthlyDomain, len(e.state.Domains))}
	for i, d := range e.state.Domains {
		subs := make([]SubScore, len(d.Subdomains))
		for s, name := range d.Subdomains {
			subs[s] = SubScore{Index: s, Name: name, Value: mk[i][s]}
		}
		out.Domains[i] = MonthlyDomain{Index: i, Name: d.Name, Subs: subs}
	}
	return out
}

// RadarData returns domain names and this week's scores in index order.
func (e *Engine) RadarData() Radar {
	scores := e.weekScores()
	r := Radar{Labels: make([]string, len(scores)), Values: scores}
	for i := range scores {
		r.Labels[i] = e.state.Domains[i].Name
	}
	return r
}
