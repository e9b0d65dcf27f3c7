package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskIDs(tasks []Task) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

func TestGenerateAllSeriousOnWednesday(t *testing.T) {
	e := newTestEngine(t, engineOpts{domains: domainsN(6)})

	pending := e.GenerateBaseTaskPack()
	assert.Equal(t, []string{
		"2024-01-10-0-0-m",
		"2024-01-10-1-1-m",
		"2024-01-10-0-std",
	}, taskIDs(pending))

	assert.Equal(t, "Do one small 5-10 min action for DA (your choice).", pending[0].Label)
	assert.Equal(t, "Spend 15-20 mins deliberately improving DA in a concrete way.", pending[2].Label)
	for _, task := range pending {
		assert.Equal(t, StatusPending, task.Status)
		assert.Nil(t, task.SubdomainIndex)
		assert.Equal(t, wednesday, task.CreatedAt)
	}
	assert.Equal(t, 3, pending[0].EnergyCost)
	assert.Equal(t, 10, pending[0].ExpectedDurationMinutes)
	assert.Equal(t, 5, pending[2].EnergyCost)
	assert.Equal(t, 20, pending[2].ExpectedDurationMinutes)

	n := e.BuildNudge()
	require.NotNil(t, n)
	assert.Equal(t, NudgeCorrective, n.Type)
	assert.Equal(t, "DA", n.Target)
}

func TestGenerateDeepForSingleStrongDomain(t *testing.T) {
	e := newTestEngine(t, engineOpts{domains: domainsN(1)})
	setScores(t, e, 10)
	assert.Equal(t, 1.0, e.Momentum())

	e.RegenerateTodayTasks(context.Background())
	pending := e.State().Tasks["2024-01-10"].Pending

	assert.Equal(t, []string{
		"2024-01-10-0-0-m",
		"2024-01-10-0-std",
		"2024-01-10-0-deep",
	}, taskIDs(pending))
	deep := pending[2]
	assert.Equal(t, DifficultyDeep, deep.Difficulty)
	assert.Equal(t, 7, deep.EnergyCost)
	assert.Equal(t, 25, deep.ExpectedDurationMinutes)
	assert.Equal(t, "Optional 20-30 min deep block for DA (only if you have the energy).", deep.Label)
}

func TestGenerateFocusPrefersNeglected(t *testing.T) {
	e := newTestEngine(t, engineOpts{domains: domainsN(4)})
	// Wednesday: none >= 3, medium >= ~1.71.
	setScores(t, e, 9, 2, 9, 9)

	pending := e.GenerateBaseTaskPack()
	assert.Equal(t, []string{
		"2024-01-10-1-0-m",
		"2024-01-10-1-std",
		"2024-01-10-0-deep",
	}, taskIDs(pending))
}

func TestGenerateFocusFallsBackToAllDomains(t *testing.T) {
	e := newTestEngine(t, engineOpts{domains: domainsN(4)})
	setScores(t, e, 10, 4, 10, 3.5)

	pending := e.GenerateBaseTaskPack()
	assert.Equal(t, []string{
		"2024-01-10-3-0-m",
		"2024-01-10-1-1-m",
		"2024-01-10-3-std",
		"2024-01-10-0-deep",
	}, taskIDs(pending))
}

func TestGenerateNoDeepBelowMomentumThreshold(t *testing.T) {
	e := newTestEngine(t, engineOpts{domains: domainsN(2)})
	setScores(t, e, 6, 6)
	assert.InDelta(t, 0.2, e.Momentum(), 1e-9)

	for _, task := range e.GenerateBaseTaskPack() {
		assert.NotEqual(t, DifficultyDeep, task.Difficulty)
	}
}

func TestGenerateUsesTemplates(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, engineOpts{domains: domainsN(1)})
	require.NoError(t, e.UpdateTaskTemplateBlock(ctx, 0, 1, DifficultyMicro, []string{"stretch"}))

	pending := e.GenerateBaseTaskPack()
	require.NotEmpty(t, pending)
	assert.Equal(t, "stretch", pending[0].Label)
	require.NotNil(t, pending[0].SubdomainIndex)
	assert.Equal(t, 1, *pending[0].SubdomainIndex)
	assert.True(t, strings.HasPrefix(pending[1].Label, "Spend 15-20 mins"))
}

func TestGenerateDeterministicWithSingleTemplates(t *testing.T) {
	build := func(seed int64) []Task {
		ctx := context.Background()
		e := newTestEngine(t, engineOpts{domains: domainsN(3), seed: seed})
		for d := 0; d < 3; d++ {
			for _, diff := range Difficulties {
				label := string(diff) + " for " + e.Domains()[d].Name
				require.NoError(t, e.UpdateTaskTemplateBlock(ctx, d, 1, diff, []string{label}))
			}
		}
		setScores(t, e, 9, 9, 6)
		return e.GenerateBaseTaskPack()
	}

	a, b := build(1), build(7)
	assert.Equal(t, a, b)
	assert.Equal(t, []string{
		"2024-01-10-2-0-m",
		"2024-01-10-0-1-m",
		"2024-01-10-2-std",
		"2024-01-10-0-deep",
	}, taskIDs(a))
	assert.Equal(t, "deep for DA", a[3].Label)
}

func TestEnsureTasksForTodayNonForcedIsNoop(t *testing.T) {
	e := newTestEngine(t, engineOpts{domains: domainsN(3)})
	before := append([]Task(nil), e.State().Tasks["2024-01-10"].Pending...)

	setScores(t, e, 9, 9, 9)
	assert.False(t, e.EnsureTasksForToday(false))
	assert.Equal(t, before, e.State().Tasks["2024-01-10"].Pending)

	assert.True(t, e.EnsureTasksForToday(true))
	assert.NotEqual(t, before, e.State().Tasks["2024-01-10"].Pending)
}

func TestRegenerateLeavesDoneUntouched(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, engineOpts{domains: domainsN(3)})
	pack := e.State().Tasks["2024-01-10"]

	_, ok := e.CompleteTask(ctx, pack.Pending[0].ID)
	require.True(t, ok)
	_, err := e.LogTask(ctx, 2, nil, "standard", "errand")
	require.NoError(t, err)
	done := append([]Task(nil), pack.Done...)

	e.RegenerateTodayTasks(ctx)
	assert.Equal(t, done, e.State().Tasks["2024-01-10"].Done)
	assert.NotEmpty(t, e.State().Tasks["2024-01-10"].Pending)
}

func TestGenerateReplacement(t *testing.T) {
	e := newTestEngine(t, engineOpts{domains: domainsN(2)})

	tests := []struct {
		domain int
		diff   Difficulty
		label  string
	}{
		{1, DifficultyMicro, "Another small 5-10 min action for DB."},
		{1, DifficultyStandard, "Another 15-20 min block improving DB."},
		{0, DifficultyDeep, "Optional deep 20-30+ min block for DA."},
		{9, DifficultyStandard, "Another 15-20 min block improving Domain."},
	}
	for _, tt := range tests {
		t.Run(string(tt.diff), func(t *testing.T) {
			task := e.GenerateReplacement(tt.domain, tt.diff)
			prefix := "2024-01-10-" + string(rune('0'+tt.domain)) + "-" + string(tt.diff) + "-extra-"
			assert.True(t, strings.HasPrefix(task.ID, prefix), task.ID)
			assert.Equal(t, tt.label, task.Label)
			assert.Equal(t, tt.domain, task.DomainIndex)
			assert.Equal(t, tt.diff, task.Difficulty)
			assert.Equal(t, StatusPending, task.Status)
		})
	}
}

func TestPickTemplatePoolsSubdomains(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, engineOpts{domains: domainsN(1)})

	_, ok := e.PickTemplate(0, DifficultyMicro)
	assert.False(t, ok)
	_, ok = e.PickTemplate(5, DifficultyMicro)
	assert.False(t, ok)

	require.NoError(t, e.UpdateTaskTemplateBlock(ctx, 0, 0, DifficultyMicro, []string{"a"}))
	require.NoError(t, e.UpdateTaskTemplateBlock(ctx, 0, 1, DifficultyMicro, []string{"b", "c"}))

	seen := map[string]int{}
	for i := 0; i < 200; i++ {
		c, ok := e.PickTemplate(0, DifficultyMicro)
		require.True(t, ok)
		seen[c.Label] = c.SubdomainIndex
	}
	assert.Equal(t, map[string]int{"a": 0, "b": 1, "c": 1}, seen)
}

func TestUpdateTaskTemplateBlock(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, engineOpts{domains: domainsN(1)})
	assert.False(t, e.HasAnyTemplates())

	labels := []string{"x", "y"}
	require.NoError(t, e.UpdateTaskTemplateBlock(ctx, 0, 0, DifficultyStandard, labels))
	labels[0] = "mutated"
	assert.True(t, e.HasAnyTemplates())

	blocks := e.TaskTemplatesForDomain(0)
	require.Len(t, blocks, 2)
	assert.Equal(t, "one", blocks[0].SubName)
	assert.Equal(t, []string{"x", "y"}, blocks[0].Standard)
	assert.Empty(t, blocks[1].Standard)

	require.NoError(t, e.UpdateTaskTemplateBlock(ctx, 0, 0, DifficultyStandard, []string{"z"}))
	assert.Equal(t, []string{"z"}, e.TaskTemplatesForDomain(0)[0].Standard)

	assert.ErrorIs(t, e.UpdateTaskTemplateBlock(ctx, 1, 0, DifficultyMicro, nil), ErrUnknownDomain)
	assert.ErrorIs(t, e.UpdateTaskTemplateBlock(ctx, 0, 2, DifficultyMicro, nil), ErrUnknownSubdomain)
	assert.ErrorIs(t, e.UpdateTaskTemplateBlock(ctx, 0, 0, "huge", nil), ErrInvalidDifficulty)
}
