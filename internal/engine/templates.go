package engine

import "context"

// Candidate is one template label eligible for a generated task.
type Candidate struct {
	DomainIndex    int
	SubdomainIndex int
	Label          string
}

// EnsureSlot returns the template slot for (d, s), creating an empty one.
func (e *Engine) EnsureSlot(d, s int) *TemplateSlot {
	byDomain := e.state.Templates[d]
	if byDomain == nil {
		byDomain = make(map[int]*TemplateSlot)
		e.state.Templates[d] = byDomain
	}
	slot := byDomain[s]
	if slot == nil {
		slot = newTemplateSlot()
		byDomain[s] = slot
	}
	return slot
}

// PickTemplate pools the labels for difficulty across every subdomain of
// domain d and returns one chosen uniformly at random. ok is false when the
// pool is empty or d is unknown.
func (e *Engine) PickTemplate(d int, difficulty Difficulty) (Candidate, bool) {
	if !e.validDomain(d) {
		return Candidate{}, false
	}
	var pool []Candidate
	for s := range e.state.Domains[d].Subdomains {
		for _, label := range e.EnsureSlot(d, s).Labels(difficulty) {
			pool = append(pool, Candidate{DomainIndex: d, SubdomainIndex: s, Label: label})
		}
	}
	if len(pool) == 0 {
		return Candidate{}, false
	}
	return pool[e.rng.Intn(len(pool))], true
}

// UpdateTaskTemplateBlock replaces the label list for one difficulty of the
// (d, s) slot wholesale.
func (e *Engine) UpdateTaskTemplateBlock(ctx context.Context, d, s int, difficulty Difficulty, labels []string) error {
	if !e.validDomain(d) {
		return ErrUnknownDomain
	}
	if !e.validSubdomain(d, s) {
		return ErrUnknownSubdomain
	}
	if !difficulty.IsValid() {
		return ErrInvalidDifficulty
	}
	e.EnsureSlot(d, s).setLabels(difficulty, append([]string{}, labels...))
	e.persist(ctx)
	return nil
}

// SubdomainTemplates is the template block of one subdomain.
type SubdomainTemplates struct {
	SubIndex int      `json:"sub_idx"`
	SubName  string   `json:"sub_name"`
	Micro    []string `json:"micro"`
	Standard []string `json:"standard"`
	Deep     []string `json:"deep"`
}

// Labels returns the list for d.
func (t SubdomainTemplates) Labels(d Difficulty) []string {
	switch d {
	case DifficultyMicro:
		return t.Micro
	case DifficultyStandard:
		return t.Standard
	case DifficultyDeep:
		return t.Deep
	default:
		return nil
	}
}

// TaskTemplatesForDomain returns copies of every subdomain's labels for d.
func (e *Engine) TaskTemplatesForDomain(d int) []SubdomainTemplates {
	if !e.validDomain(d) {
		return nil
	}
	subs := e.state.Domains[d].Subdomains
	out := make([]SubdomainTemplates, 0, len(subs))
	for s, name := range subs {
		slot := e.EnsureSlot(d, s)
		out = append(out, SubdomainTemplates{
			SubIndex: s,
			SubName:  name,
			Micro:    append([]string{}, slot.Micro...),
			Standard: append([]string{}, slot.Standard...),
			Deep:     append([]string{}, slot.Deep...),
		})
	}
	return out
}

// HasAnyTemplates reports whether any slot holds at least one label.
func (e *Engine) HasAnyTemplates() bool {
	for _, byDomain := range e.state.Templates {
		for _, slot := range byDomain {
			if slot != nil && !slot.empty() {
				return true
			}
		}
	}
	return false
}
