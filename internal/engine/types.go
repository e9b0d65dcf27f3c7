package engine

import (
	"strings"
	"time"
)

// Difficulty is the effort tier of a task.
type Difficulty string

const (
	DifficultyMicro    Difficulty = "micro"
	DifficultyStandard Difficulty = "standard"
	DifficultyDeep     Difficulty = "deep"
)

// Difficulties lists every tier in ascending effort.
var Difficulties = []Difficulty{DifficultyMicro, DifficultyStandard, DifficultyDeep}

// IsValid reports whether d is a known tier.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyMicro, DifficultyStandard, DifficultyDeep:
		return true
	default:
		return false
	}
}

// ParseDifficulty parses a tier name case-insensitively.
func ParseDifficulty(s string) (Difficulty, bool) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	return d, d.IsValid()
}

// NormalizeDifficulty parses s and falls back to micro for unknown input.
func NormalizeDifficulty(s string) Difficulty {
	if d, ok := ParseDifficulty(s); ok {
		return d
	}
	return DifficultyMicro
}

// EnergyCost is the fixed energy cost of a task at this tier.
func (d Difficulty) EnergyCost() int {
	switch d {
	case DifficultyStandard:
		return 5
	case DifficultyDeep:
		return 7
	default:
		return 3
	}
}

// ExpectedDuration is the fixed expected duration in minutes.
func (d Difficulty) ExpectedDuration() int {
	switch d {
	case DifficultyStandard:
		return 20
	case DifficultyDeep:
		return 25
	default:
		return 10
	}
}

// CompletionDelta is how much completing a task at this tier raises the
// domain's weekly score.
func (d Difficulty) CompletionDelta() float64 {
	switch d {
	case DifficultyMicro:
		return 0.3
	case DifficultyStandard:
		return 0.5
	case DifficultyDeep:
		return 0.8
	default:
		return 0
	}
}

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending TaskStatus = "pending"
	StatusDone    TaskStatus = "done"
)

// Task is one suggested or logged action.
type Task struct {
	ID                      string     `json:"id"`
	DomainIndex             int        `json:"domainIdx"`
	SubdomainIndex          *int       `json:"subdomainIdx"`
	Difficulty              Difficulty `json:"difficulty"`
	Label                   string     `json:"label"`
	EnergyCost              int        `json:"energyCost"`
	ExpectedDurationMinutes int        `json:"expectedDuration"`
	Status                  TaskStatus `json:"state"`
	CreatedAt               time.Time  `json:"createdAt"`
}

// DayTaskPack holds one day's pending and done tasks. A task id lives in at
// most one of the two lists and never leaves Done.
type DayTaskPack struct {
	Pending []Task `json:"pending"`
	Done    []Task `json:"done"`
}

func newDayTaskPack() *DayTaskPack {
	return &DayTaskPack{Pending: []Task{}, Done: []Task{}}
}

// TemplateSlot holds candidate task labels for one domain/subdomain pair.
type TemplateSlot struct {
	Micro    []string `json:"micro"`
	Standard []string `json:"standard"`
	Deep     []string `json:"deep"`
}

func newTemplateSlot() *TemplateSlot {
	return &TemplateSlot{Micro: []string{}, Standard: []string{}, Deep: []string{}}
}

// Labels returns the list for d.
func (s *TemplateSlot) Labels(d Difficulty) []string {
	switch d {
	case DifficultyMicro:
		return s.Micro
	case DifficultyStandard:
		return s.Standard
	case DifficultyDeep:
		return s.Deep
	default:
		return nil
	}
}

func (s *TemplateSlot) setLabels(d Difficulty, labels []string) {
	switch d {
	case DifficultyMicro:
		s.Micro = labels
	case DifficultyStandard:
		s.Standard = labels
	case DifficultyDeep:
		s.Deep = labels
	}
}

func (s *TemplateSlot) empty() bool {
	return len(s.Micro) == 0 && len(s.Standard) == 0 && len(s.Deep) == 0
}

func intPtr(v int) *int { return &v }
