package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveNeglect(t *testing.T) {
	tests := []struct {
		name    string
		score   float64
		weekday int
		want    Neglect
	}{
		{"monday lenient", 1.1, 1, NeglectNone},
		{"monday medium", 0.6, 1, NeglectMedium},
		{"monday zero", 0, 1, NeglectSerious},
		{"wednesday none", 3.1, 3, NeglectNone},
		{"wednesday medium", 2, 3, NeglectMedium},
		{"wednesday serious", 1.5, 3, NeglectSerious},
		{"sunday none", 7, 7, NeglectNone},
		{"sunday medium", 4, 7, NeglectMedium},
		{"sunday serious", 3.9, 7, NeglectSerious},
		{"weekday below range", 0.6, 0, NeglectMedium},
		{"weekday above range", 6.9, 12, NeglectMedium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveNeglect(tt.score, tt.weekday))
		})
	}
}

func TestDeriveNeglectMonotonic(t *testing.T) {
	for wd := 1; wd <= 7; wd++ {
		prev := NeglectSerious.Rank() + 1
		for s := 0.0; s <= 10; s += 0.25 {
			rank := DeriveNeglect(s, wd).Rank()
			assert.LessOrEqual(t, rank, prev, "weekday %d score %.2f", wd, s)
			prev = rank
		}
	}
}

func TestNeglectRank(t *testing.T) {
	assert.Equal(t, 2, NeglectSerious.Rank())
	assert.Equal(t, 1, NeglectMedium.Rank())
	assert.Equal(t, 0, NeglectNone.Rank())
}

func TestComputeWeeklyMomentum(t *testing.T) {
	tests := []struct {
		name  string
		frame WeekFrame
		n     int
		want  float64
	}{
		{"no domains", WeekFrame{0: 10}, 0, 0},
		{"all zero", WeekFrame{}, 3, -1},
		{"all ten", WeekFrame{0: 10, 1: 10}, 2, 1},
		{"midline", WeekFrame{0: 5, 1: 5}, 2, 0},
		{"missing counts as zero", WeekFrame{0: 10}, 2, 0},
		{"above range clamps", WeekFrame{0: 40}, 1, 1},
		{"below range clamps", WeekFrame{0: -20}, 1, -1},
		{"nil frame", nil, 4, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeWeeklyMomentum(tt.frame, tt.n)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, -1.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestSortByNeglectIsStable(t *testing.T) {
	statuses := []DomainStatus{
		{Index: 0, Score: 5, NeglectRank: 0},
		{Index: 1, Score: 1, NeglectRank: 2},
		{Index: 2, Score: 5, NeglectRank: 0},
		{Index: 3, Score: 3, NeglectRank: 1},
		{Index: 4, Score: 1, NeglectRank: 2},
		{Index: 5, Score: 4, NeglectRank: 0},
	}
	SortByNeglect(statuses)

	order := make([]int, len(statuses))
	for i, s := range statuses {
		order[i] = s.Index
	}
	assert.Equal(t, []int{1, 4, 3, 5, 0, 2}, order)
}
