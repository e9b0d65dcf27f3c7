package engine

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/lifewheel/internal/log"
	"github.com/blackwell-systems/lifewheel/internal/store"
	"github.com/blackwell-systems/lifewheel/internal/timeframe"
)

// wednesday is 2024-01-10, ISO weekday 3, week key 2024-W02.
var wednesday = time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)

func domainsN(n int) []Domain {
	out := make([]Domain, n)
	for i := range out {
		out[i] = Domain{Name: "D" + string(rune('A'+i)), Subdomains: []string{"one", "two"}}
	}
	return out
}

type engineOpts struct {
	domains []Domain
	gw      Gateway
	clock   timeframe.Clock
	seed    int64
	logger  *log.Logger
}

func newTestEngine(t *testing.T, o engineOpts) *Engine {
	t.Helper()
	if o.clock == nil {
		o.clock = timeframe.FixedClock(wednesday)
	}
	if o.gw == nil {
		o.gw = store.NewMemory()
	}
	if o.seed == 0 {
		o.seed = 1
	}
	if o.logger == nil {
		o.logger = log.Discard()
	}
	e := New(Options{
		Gateway:        o.gw,
		Clock:          o.clock,
		Rand:           rand.New(rand.NewSource(o.seed)),
		Logger:         o.logger,
		DefaultDomains: o.domains,
	})
	e.Init(context.Background())
	return e
}

func setScores(t *testing.T, e *Engine, scores ...float64) {
	t.Helper()
	for i, v := range scores {
		require.NoError(t, e.SetWeeklyScore(context.Background(), i, v))
	}
}

func TestInitFreshState(t *testing.T) {
	e := newTestEngine(t, engineOpts{})
	st := e.State()

	assert.Equal(t, "2024-01-10", st.TodayKey)
	assert.Equal(t, "2024-W02", st.WeekKey)
	assert.Equal(t, "2024-01", st.MonthKey)
	assert.Equal(t, StateVersion, st.Version)
	assert.Equal(t, AppVersion, st.AppVersion)
	require.Len(t, st.Domains, 7)
	assert.Equal(t, "Mental", st.Domains[0].Name)

	wk := st.WeeklyScores["2024-W02"]
	require.Len(t, wk, 7)
	for i := range st.Domains {
		assert.Zero(t, wk[i])
		assert.Len(t, st.MonthlyScores["2024-01"][i], len(st.Domains[i].Subdomains))
	}

	pack := st.Tasks["2024-01-10"]
	require.NotNil(t, pack)
	assert.NotEmpty(t, pack.Pending)
	assert.Empty(t, pack.Done)
}

func TestInitPersistsSnapshot(t *testing.T) {
	gw := store.NewMemory()
	e := newTestEngine(t, engineOpts{gw: gw})

	data, err := gw.Load(context.Background(), DefaultStateKey)
	require.NoError(t, err)
	snap, err := e.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, snap, data)
}

func TestRoundTripThroughGateway(t *testing.T) {
	ctx := context.Background()
	gw := store.NewMemory()
	e := newTestEngine(t, engineOpts{gw: gw})

	setScores(t, e, 3, 7.5, 1, 9)
	require.NoError(t, e.SetMonthlySubScore(ctx, 1, 2, 6))
	require.NoError(t, e.UpdateTaskTemplateBlock(ctx, 0, 1, DifficultyMicro, []string{"sketch a proof"}))
	pending := e.State().Tasks["2024-01-10"].Pending
	_, ok := e.CompleteTask(ctx, pending[0].ID)
	require.True(t, ok)
	_, err := e.LogTask(ctx, 3, intPtr(0), "deep", "long ride")
	require.NoError(t, err)

	before, err := e.Snapshot()
	require.NoError(t, err)

	reloaded := newTestEngine(t, engineOpts{gw: gw, seed: 42})
	after, err := reloaded.Snapshot()
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
	assert.Equal(t, before, after)
}

func TestRoundTripThroughSQLite(t *testing.T) {
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	e := newTestEngine(t, engineOpts{gw: db})
	setScores(t, e, 4, 4, 4)
	before, err := e.Snapshot()
	require.NoError(t, err)

	after, err := newTestEngine(t, engineOpts{gw: db}).Snapshot()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestInitRepairsMalformedState(t *testing.T) {
	ctx := context.Background()
	gw := store.NewMemory()
	raw := `{
		"version": "one",
		"domains": 5,
		"weeklyScores": {"2024-W02": {"0": "x", "1": 3, "zz": 4}, "2024-W01": 7},
		"monthlyScores": [],
		"tasks": {"2024-01-09": {"pending": "nope", "done": []}},
		"templates": {"0": {"0": {"micro": ["a"], "deep": 3}}}
	}`
	require.NoError(t, gw.Save(ctx, DefaultStateKey, []byte(raw)))

	e := newTestEngine(t, engineOpts{gw: gw})
	st := e.State()

	require.Len(t, st.Domains, 7)
	assert.Equal(t, StateVersion, st.Version)
	assert.Zero(t, st.WeeklyScores["2024-W02"][0])
	assert.Equal(t, 3.0, st.WeeklyScores["2024-W02"][1])
	assert.NotContains(t, st.WeeklyScores, "2024-W01")
	assert.NotNil(t, st.MonthlyScores["2024-01"])

	old := st.Tasks["2024-01-09"]
	require.NotNil(t, old)
	assert.NotNil(t, old.Pending)
	assert.Empty(t, old.Pending)

	slot := st.Templates[0][0]
	require.NotNil(t, slot)
	assert.Equal(t, []string{"a"}, slot.Micro)
	assert.Empty(t, slot.Deep)
	assert.NotEmpty(t, st.Tasks["2024-01-10"].Pending)
}

func TestInitWithUnreadablePayloadStartsFresh(t *testing.T) {
	for _, raw := range []string{"", "[]", "null", "not json", `"str"`} {
		t.Run(raw, func(t *testing.T) {
			gw := store.NewMemory()
			require.NoError(t, gw.Save(context.Background(), DefaultStateKey, []byte(raw)))

			e := newTestEngine(t, engineOpts{gw: gw})
			assert.Len(t, e.State().Domains, 7)
			assert.NotEmpty(t, e.State().Tasks["2024-01-10"].Pending)
		})
	}
}

type failingGateway struct {
	saves int
}

func (g *failingGateway) Load(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk on fire")
}

func (g *failingGateway) Save(context.Context, string, []byte) error {
	g.saves++
	return errors.New("disk on fire")
}

func TestFailingGatewayIsNotFatal(t *testing.T) {
	var buf bytes.Buffer
	gw := &failingGateway{}
	logger := log.New(log.Config{Level: log.LevelWarn, Format: log.FormatText, Output: &buf})
	e := newTestEngine(t, engineOpts{gw: gw, domains: domainsN(3), logger: logger})

	require.NoError(t, e.SetWeeklyScore(context.Background(), 1, 6))
	assert.Equal(t, 6.0, e.WeeklyScore(1))
	assert.Equal(t, 2, gw.saves)
	assert.Contains(t, buf.String(), "failed to save state")
	assert.Contains(t, buf.String(), "disk on fire")
}

func TestAdoptedStateSkipsLoad(t *testing.T) {
	st := NewState(domainsN(2))
	st.WeeklyScores["2024-W02"] = WeekFrame{0: 8, 1: 2}
	e := New(Options{
		Gateway: &failingGateway{},
		Clock:   timeframe.FixedClock(wednesday),
		Rand:    rand.New(rand.NewSource(1)),
		Logger:  log.Discard(),
		State:   st,
	})
	e.Init(context.Background())

	assert.Same(t, st, e.State())
	assert.Equal(t, 8.0, e.WeeklyScore(0))
}

func TestPeriodInfo(t *testing.T) {
	e := newTestEngine(t, engineOpts{})
	p := e.PeriodInfo()
	assert.Equal(t, "2024-W02", p.WeekKey)
	assert.Equal(t, "2024-01", p.MonthKey)
	assert.True(t, strings.HasPrefix(p.AppVersion, "LW-"))
}

func TestRefreshRollsOverDay(t *testing.T) {
	now := wednesday
	gw := store.NewMemory()
	e := newTestEngine(t, engineOpts{
		gw:    gw,
		clock: timeframe.ClockFunc(func() time.Time { return now }),
	})
	ctx := context.Background()

	assert.False(t, e.Refresh(ctx))

	now = wednesday.Add(24 * time.Hour)
	assert.True(t, e.Refresh(ctx))
	assert.Equal(t, "2024-01-11", e.State().TodayKey)
	assert.NotEmpty(t, e.State().Tasks["2024-01-11"].Pending)

	stored, err := gw.Load(ctx, DefaultStateKey)
	require.NoError(t, err)
	assert.Contains(t, string(stored), `"todayKey":"2024-01-11"`)
	assert.False(t, e.Refresh(ctx))
}

func TestCheckSnapshot(t *testing.T) {
	e := newTestEngine(t, engineOpts{})
	data, err := e.Snapshot()
	require.NoError(t, err)

	st, repaired, err := CheckSnapshot(data)
	require.NoError(t, err)
	assert.Empty(t, repaired)
	assert.Equal(t, "2024-01-10", st.TodayKey)

	st, repaired, err = CheckSnapshot([]byte(`{"version":"one","weeklyScores":{"2024-W02":{"0":3}}}`))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"version", "domains", "monthlyScores", "tasks", "templates"}, repaired)
	assert.Len(t, st.Domains, 7)
	assert.Equal(t, 3.0, st.WeeklyScores["2024-W02"][0])

	_, _, err = CheckSnapshot([]byte(`[]`))
	assert.Error(t, err)
}
