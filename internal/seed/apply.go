package seed

import (
	"context"
	"fmt"

	"github.com/blackwell-systems/lifewheel/internal/engine"
	"github.com/blackwell-systems/lifewheel/internal/log"
)

// Target is the part of the engine seeding writes to.
type Target interface {
	Domains() []engine.Domain
	HasAnyTemplates() bool
	UpdateTaskTemplateBlock(ctx context.Context, d, s int, difficulty engine.Difficulty, labels []string) error
}

// Block is every label for one domain/subdomain pair.
type Block struct {
	Domain    string
	Subdomain string
	Labels    map[engine.Difficulty][]string
}

// Group collects entries into blocks in first-seen order.
func Group(entries []Entry) []Block {
	var blocks []Block
	index := make(map[[2]string]int)
	for _, e := range entries {
		key := [2]string{e.Domain, e.Subdomain}
		i, ok := index[key]
		if !ok {
			i = len(blocks)
			index[key] = i
			blocks = append(blocks, Block{
				Domain:    e.Domain,
				Subdomain: e.Subdomain,
				Labels:    make(map[engine.Difficulty][]string, len(engine.Difficulties)),
			})
		}
		blocks[i].Labels[e.Difficulty] = append(blocks[i].Labels[e.Difficulty], e.Label)
	}
	return blocks
}

// Result summarizes a seeding run.
type Result struct {
	// Ran is false when templates already existed and nothing was written.
	Ran bool
	// Applied counts blocks written to the template store.
	Applied int
	// Unresolved lists "Domain/Subdomain" pairs with no matching name.
	Unresolved []string
}

// Apply resolves each block's domain and subdomain by exact name and writes
// its micro, standard and deep lists. Unknown names are logged and skipped.
func Apply(ctx context.Context, t Target, blocks []Block, logger *log.Logger) (Result, error) {
	if logger == nil {
		logger = log.Default()
	}
	res := Result{Ran: true}
	domains := t.Domains()

	for _, b := range blocks {
		d := domainIndex(domains, b.Domain)
		if d < 0 {
			logger.Warn("unknown domain in master list", "domain", b.Domain)
			res.Unresolved = append(res.Unresolved, b.Domain+"/"+b.Subdomain)
			continue
		}
		s := subdomainIndex(domains[d], b.Subdomain)
		if s < 0 {
			logger.Warn("unknown subdomain in master list", "domain", b.Domain, "subdomain", b.Subdomain)
			res.Unresolved = append(res.Unresolved, b.Domain+"/"+b.Subdomain)
			continue
		}
		for _, diff := range engine.Difficulties {
			labels := b.Labels[diff]
			if labels == nil {
				labels = []string{}
			}
			if err := t.UpdateTaskTemplateBlock(ctx, d, s, diff, labels); err != nil {
				return res, fmt.Errorf("seeding %s/%s: %w", b.Domain, b.Subdomain, err)
			}
		}
		res.Applied++
	}
	logger.Info("seeded task templates", "blocks", res.Applied, "unresolved", len(res.Unresolved))
	return res, nil
}

// SeedIfEmpty applies entries only when the template store is entirely
// empty.
func SeedIfEmpty(ctx context.Context, t Target, entries []Entry, logger *log.Logger) (Result, error) {
	if logger == nil {
		logger = log.Default()
	}
	if len(t.Domains()) == 0 {
		return Result{}, nil
	}
	if t.HasAnyTemplates() {
		logger.Debug("task templates already present, seeding skipped")
		return Result{}, nil
	}
	return Apply(ctx, t, Group(entries), logger)
}

func domainIndex(domains []engine.Domain, name string) int {
	for i, d := range domains {
		if d.Name == name {
			return i
		}
	}
	return -1
}

func subdomainIndex(d engine.Domain, name string) int {
	for i, s := range d.Subdomains {
		if s == name {
			return i
		}
	}
	return -1
}
