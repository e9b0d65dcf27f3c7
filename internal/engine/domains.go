package engine

import (
	"context"
	"fmt"
	"strings"
)

// Domains returns a copy of the domain list.
func (e *Engine) Domains() []Domain {
	return cloneDomains(e.state.Domains)
}

// DomainIndex returns the index of the domain named name (exact match).
func (e *Engine) DomainIndex(name string) (int, bool) {
	for i, d := range e.state.Domains {
		if d.Name == name {
			return i, true
		}
	}
	return -1, false
}

// SubdomainIndex returns the index of subdomain name under domain d.
func (e *Engine) SubdomainIndex(d int, name string) (int, bool) {
	if !e.validDomain(d) {
		return -1, false
	}
	for i, s := range e.state.Domains[d].Subdomains {
		if s == name {
			return i, true
		}
	}
	return -1, false
}

// UpdateDomainName renames domain d. A blank name becomes "Domain <n>".
func (e *Engine) UpdateDomainName(ctx context.Context, d int, name string) error {
	if !e.validDomain(d) {
		return ErrUnknownDomain
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Domain %d", d+1)
	}
	e.state.Domains[d].Name = name
	e.persist(ctx)
	return nil
}

// UpdateDomainSubdomains replaces the subdomain list of domain d. Month scores
// and template slots for indices still in range are kept; newly exposed
// indices get a 0 month score and an empty template slot. An empty list is
// ignored.
func (e *Engine) UpdateDomainSubdomains(ctx context.Context, d int, subs []string) error {
	if !e.validDomain(d) {
		return ErrUnknownDomain
	}
	if len(subs) == 0 {
		return nil
	}
	e.state.Domains[d].Subdomains = append([]string(nil), subs...)

	mk := e.state.MonthlyScores[e.state.MonthKey]
	if mk == nil {
		mk = make(MonthFrame)
		e.state.MonthlyScores[e.state.MonthKey] = mk
	}
	if mk[d] == nil {
		mk[d] = make(map[int]float64, len(subs))
	}
	for s := range subs {
		if _, ok := mk[d][s]; !ok {
			mk[d][s] = 0
		}
		e.EnsureSlot(d, s)
	}
	e.persist(ctx)
	return nil
}
