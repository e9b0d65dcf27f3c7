package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/blackwell-systems/lifewheel/internal/config"
	"github.com/blackwell-systems/lifewheel/internal/engine"
	"github.com/blackwell-systems/lifewheel/internal/log"
	"github.com/blackwell-systems/lifewheel/internal/output"
	"github.com/blackwell-systems/lifewheel/internal/seed"
	"github.com/blackwell-systems/lifewheel/internal/store"
)

// session is one command's view of the persisted wheel.
type session struct {
	cfg    *config.Config
	db     *store.DB
	engine *engine.Engine
	logger *log.Logger
}

// openSession loads config, opens the database, initializes the engine and
// seeds templates on first use.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	setupOutput(cfg)

	logger := newLogger(cfg)
	log.SetDefault(logger)

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &session{cfg: cfg, db: db, logger: logger}
	s.engine = s.reload(ctx)
	if cfg.Seed.Auto {
		if _, err := s.seed(ctx, cfg.Seed.Files, true); err != nil {
			logger.WithError(err).Warn("template seeding failed")
		}
	}
	return s, nil
}

// reload builds a fresh engine over the session's database, picking up any
// state another process saved since the last load.
func (s *session) reload(ctx context.Context) *engine.Engine {
	e := engine.New(engine.Options{
		Gateway:           s.db,
		StateKey:          s.cfg.StateKey,
		Logger:            s.logger,
		DefaultDomains:    domainsFromConfig(s.cfg.Domains),
		ClampManualScores: s.cfg.Scores.ClampManual,
	})
	e.Init(ctx)
	return e
}

func (s *session) Close() {
	_ = s.db.Close()
}

// seed loads the master lists and applies them if the template store is
// empty. When seeding wrote anything, today's pending tasks are rebuilt so
// they pick up the new templates.
func (s *session) seed(ctx context.Context, files []string, withEmbedded bool) (seed.Result, error) {
	if s.engine.HasAnyTemplates() {
		return seed.Result{}, nil
	}
	var entries []seed.Entry
	if withEmbedded {
		builtin, err := seed.Embedded(s.logger)
		if err != nil {
			return seed.Result{}, err
		}
		entries = append(entries, builtin...)
	}
	if len(files) > 0 {
		extra, err := seed.LoadFiles(ctx, files, s.logger)
		if err != nil {
			return seed.Result{}, err
		}
		entries = append(entries, extra...)
	}

	res, err := seed.SeedIfEmpty(ctx, s.engine, entries, s.logger)
	if err != nil {
		return res, err
	}
	if res.Applied > 0 {
		s.engine.RegenerateTodayTasks(ctx)
	}
	return res, nil
}

func setupOutput(cfg *config.Config) {
	if flagNoColor || !cfg.Output.Color {
		output.SetNoColor(true)
	} else {
		output.AutoColor()
	}
	output.SetWidth(cfg.Output.Width)
}

func newLogger(cfg *config.Config) *log.Logger {
	lc := log.Config{
		Level:  log.ParseLevel(cfg.Log.Level),
		Format: log.ParseFormat(cfg.Log.Format),
		Output: os.Stderr,
	}
	if flagVerbose {
		lc.Level = log.LevelDebug
	}
	return log.New(lc)
}

func domainsFromConfig(in []config.DomainConfig) []engine.Domain {
	out := make([]engine.Domain, 0, len(in))
	for _, d := range in {
		out = append(out, engine.Domain{Name: d.Name, Subdomains: append([]string{}, d.Subdomains...)})
	}
	return out
}

// resolveDomain accepts a domain index or its exact name.
func resolveDomain(e *engine.Engine, arg string) (int, error) {
	if i, err := strconv.Atoi(arg); err == nil {
		if i < 0 || i >= len(e.Domains()) {
			return 0, fmt.Errorf("domain %d: %w", i, engine.ErrUnknownDomain)
		}
		return i, nil
	}
	if i, ok := e.DomainIndex(arg); ok {
		return i, nil
	}
	return 0, fmt.Errorf("domain %q: %w", arg, engine.ErrUnknownDomain)
}

// resolveSubdomain accepts a subdomain index or its exact name under d.
func resolveSubdomain(e *engine.Engine, d int, arg string) (int, error) {
	if i, err := strconv.Atoi(arg); err == nil {
		if i < 0 || i >= len(e.Domains()[d].Subdomains) {
			return 0, fmt.Errorf("subdomain %d: %w", i, engine.ErrUnknownSubdomain)
		}
		return i, nil
	}
	if i, ok := e.SubdomainIndex(d, arg); ok {
		return i, nil
	}
	return 0, fmt.Errorf("subdomain %q: %w", arg, engine.ErrUnknownSubdomain)
}

func parseScore(arg string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid score %q: %w", arg, err)
	}
	return v, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
