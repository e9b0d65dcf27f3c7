// Package engine scores life domains, derives neglect and momentum from the
// weekly scores, and builds the daily task pack biased toward neglected
// domains.
//
// An Engine owns exactly one State and is not safe for concurrent use. Every
// mutating call persists a snapshot through the Gateway; a failed save is
// logged and the in-memory state stays authoritative until the next save.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"slices"
	"time"

	"github.com/blackwell-systems/lifewheel/internal/log"
	"github.com/blackwell-systems/lifewheel/internal/timeframe"
)

// DefaultStateKey is the gateway key snapshots are stored under.
const DefaultStateKey = "LifeWheelState_v1"

var (
	// ErrUnknownDomain is returned when a domain index is out of range.
	ErrUnknownDomain = errors.New("engine: unknown domain")
	// ErrUnknownSubdomain is returned when a subdomain index is out of range.
	ErrUnknownSubdomain = errors.New("engine: unknown subdomain")
	// ErrInvalidDifficulty is returned for a difficulty outside micro/standard/deep.
	ErrInvalidDifficulty = errors.New("engine: invalid difficulty")
)

// Gateway loads and saves serialized state snapshots by key. Load reports an
// absent key with any error; the engine treats every load failure as "no
// prior state".
type Gateway interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Options configures an Engine. Zero values select production defaults.
type Options struct {
	Gateway  Gateway
	StateKey string
	Clock    timeframe.Clock
	Rand     *rand.Rand
	Logger   *log.Logger

	// DefaultDomains seeds a fresh state and repairs a state whose domain
	// list is missing. Empty means DefaultDomains().
	DefaultDomains []Domain

	// ClampManualScores clamps SetWeeklyScore and SetMonthlySubScore input
	// to [0,10]. Completion deltas are always clamped.
	ClampManualScores bool

	// State, when set, is adopted by Init instead of loading from Gateway.
	State *State
}

// Engine is the scoring and task-generation engine.
type Engine struct {
	state       *State
	adopted     bool
	gw          Gateway
	key         string
	frames      *timeframe.Resolver
	rng         *rand.Rand
	logger      *log.Logger
	defaults    []Domain
	clampManual bool
}

// New creates an Engine. Call Init before using it.
func New(opts Options) *Engine {
	e := &Engine{
		gw:          opts.Gateway,
		key:         opts.StateKey,
		frames:      timeframe.NewResolver(opts.Clock),
		rng:         opts.Rand,
		logger:      opts.Logger,
		defaults:    cloneDomains(opts.DefaultDomains),
		clampManual: opts.ClampManualScores,
	}
	if e.key == "" {
		e.key = DefaultStateKey
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	if len(e.defaults) == 0 {
		e.defaults = DefaultDomains()
	}
	if opts.State != nil {
		e.state = opts.State
		e.adopted = true
	} else {
		e.state = NewState(e.defaults)
	}
	return e
}

// Init rehydrates state from the gateway (or builds a default one), repairs
// it, refreshes the current frames, makes sure today has a task pack and
// saves.
func (e *Engine) Init(ctx context.Context) {
	if !e.adopted {
		e.state = e.load(ctx)
	}
	if fixed := e.state.repair(e.defaults); len(fixed) > 0 {
		e.logger.Info("repaired state containers", "containers", fixed)
	}
	e.EnsureFrames()
	e.EnsureTasksForToday(false)
	e.persist(ctx)
}

func (e *Engine) load(ctx context.Context) *State {
	if e.gw == nil {
		return NewState(e.defaults)
	}
	data, err := e.gw.Load(ctx, e.key)
	if err != nil {
		e.logger.WithError(err).Debug("no stored state, starting fresh", "key", e.key)
		return NewState(e.defaults)
	}
	st, repaired, err := decodeState(data)
	if err != nil {
		e.logger.WithError(err).Warn("failed to load state, starting fresh", "key", e.key)
		return NewState(e.defaults)
	}
	if len(repaired) > 0 {
		e.logger.Info("dropped malformed state containers", "containers", repaired)
	}
	return st
}

// persist saves a snapshot. Failures are logged, never returned.
func (e *Engine) persist(ctx context.Context) {
	if e.gw == nil {
		return
	}
	data, err := e.Snapshot()
	if err != nil {
		e.logger.WithError(err).Warn("failed to encode state")
		return
	}
	if err := e.gw.Save(ctx, e.key, data); err != nil {
		e.logger.WithError(err).Warn("failed to save state", "key", e.key)
	}
}

// Snapshot serializes the current state.
func (e *Engine) Snapshot() ([]byte, error) {
	return json.Marshal(e.state)
}

// State returns the live state. Callers must treat it as read-only.
func (e *Engine) State() *State {
	return e.state
}

// Now returns the engine clock's current instant.
func (e *Engine) Now() time.Time {
	return e.frames.Now()
}

// PeriodInfo identifies the frames the engine is currently writing to.
type PeriodInfo struct {
	WeekKey    string `json:"week_key"`
	MonthKey   string `json:"month_key"`
	AppVersion string `json:"app_version"`
}

// PeriodInfo returns the current week and month keys.
func (e *Engine) PeriodInfo() PeriodInfo {
	return PeriodInfo{
		WeekKey:    e.state.WeekKey,
		MonthKey:   e.state.MonthKey,
		AppVersion: e.state.AppVersion,
	}
}

// Refresh rolls the frames forward for long-running callers. When the day
// has changed since the last call, today's pack is filled and the state is
// saved. It reports whether a rollover happened.
func (e *Engine) Refresh(ctx context.Context) bool {
	before := e.state.TodayKey
	e.EnsureFrames()
	if e.state.TodayKey == before {
		return false
	}
	e.EnsureTasksForToday(false)
	e.persist(ctx)
	return true
}

// CheckSnapshot decodes a stored snapshot without adopting it. It returns
// the repaired state and lists the containers that were dropped or rebuilt.
func CheckSnapshot(data []byte) (st *State, repaired []string, err error) {
	st, repaired, err = decodeState(data)
	if err != nil {
		return nil, nil, err
	}
	for _, name := range st.repair(DefaultDomains()) {
		if !slices.Contains(repaired, name) {
			repaired = append(repaired, name)
		}
	}
	return st, repaired, nil
}
