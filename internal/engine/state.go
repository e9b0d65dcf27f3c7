package engine

// AppVersion identifies the snapshot layout written by this engine.
const AppVersion = "LW-SQLite-1"

// StateVersion is the schema version stored in every snapshot.
const StateVersion = 1

// Domain is a top-level life area. Its position in State.Domains is the key
// used by scores, tasks and templates.
type Domain struct {
	Name       string   `json:"name"`
	Subdomains []string `json:"sub"`
}

// WeekFrame maps domain index to weekly score.
type WeekFrame map[int]float64

// MonthFrame maps domain index to subdomain index to monthly score.
type MonthFrame map[int]map[int]float64

// State is the aggregate root the engine owns.
type State struct {
	Version       int                           `json:"version"`
	AppVersion    string                        `json:"appVersion"`
	TodayKey      string                        `json:"todayKey"`
	WeekKey       string                        `json:"weekKey"`
	MonthKey      string                        `json:"monthKey"`
	Domains       []Domain                      `json:"domains"`
	WeeklyScores  map[string]WeekFrame          `json:"weeklyScores"`
	MonthlyScores map[string]MonthFrame         `json:"monthlyScores"`
	Tasks         map[string]*DayTaskPack       `json:"tasks"`
	Templates     map[int]map[int]*TemplateSlot `json:"templates"`
}

// DefaultDomains returns a fresh copy of the built-in domain list.
func DefaultDomains() []Domain {
	return cloneDomains([]Domain{
		{Name: "Mental", Subdomains: []string{"Logic", "Knowledge", "Skill"}},
		{Name: "Physical", Subdomains: []string{"Strength", "Stamina", "Mobility", "Health"}},
		{Name: "Work & Purpose", Subdomains: []string{"Career", "Mastery", "Finance", "Legacy"}},
		{Name: "Social", Subdomains: []string{"Family", "Friends", "Colleagues", "Civic Contribution"}},
		{Name: "Emotional", Subdomains: []string{"Emotional Stability & Regulation", "Joy", "Identity"}},
		{Name: "Spiritual", Subdomains: []string{"Philosophy", "Virtue"}},
		{Name: "Systems & Structure", Subdomains: []string{
			"Planning & Review",
			"Workflow & Systems Architecture",
			"Cognitive Tools & Decision Frameworks",
			"AI Utilisation & Delegation",
			"Boundaries & Time Governance",
		}},
	})
}

// NewState builds an empty state for domains. Frame keys are filled in by
// EnsureFrames.
func NewState(domains []Domain) *State {
	return &State{
		Version:       StateVersion,
		AppVersion:    AppVersion,
		Domains:       cloneDomains(domains),
		WeeklyScores:  make(map[string]WeekFrame),
		MonthlyScores: make(map[string]MonthFrame),
		Tasks:         make(map[string]*DayTaskPack),
		Templates:     make(map[int]map[int]*TemplateSlot),
	}
}

func cloneDomains(in []Domain) []Domain {
	out := make([]Domain, len(in))
	for i, d := range in {
		subs := make([]string, len(d.Subdomains))
		copy(subs, d.Subdomains)
		out[i] = Domain{Name: d.Name, Subdomains: subs}
	}
	return out
}

// repair replaces every missing container with an empty one and reports
// which ones it touched.
func (s *State) repair(defaults []Domain) []string {
	var fixed []string
	if len(s.Domains) == 0 {
		s.Domains = cloneDomains(defaults)
		fixed = append(fixed, "domains")
	}
	for i := range s.Domains {
		if s.Domains[i].Subdomains == nil {
			s.Domains[i].Subdomains = []string{}
		}
	}
	if s.WeeklyScores == nil {
		s.WeeklyScores = make(map[string]WeekFrame)
		fixed = append(fixed, "weeklyScores")
	}
	if s.MonthlyScores == nil {
		s.MonthlyScores = make(map[string]MonthFrame)
		fixed = append(fixed, "monthlyScores")
	}
	if s.Tasks == nil {
		s.Tasks = make(map[string]*DayTaskPack)
		fixed = append(fixed, "tasks")
	}
	for key, pack := range s.Tasks {
		if pack == nil {
			s.Tasks[key] = newDayTaskPack()
			continue
		}
		if pack.Pending == nil {
			pack.Pending = []Task{}
		}
		if pack.Done == nil {
			pack.Done = []Task{}
		}
	}
	if s.Templates == nil {
		s.Templates = make(map[int]map[int]*TemplateSlot)
		fixed = append(fixed, "templates")
	}
	if s.Version == 0 {
		s.Version = StateVersion
	}
	if s.AppVersion == "" {
		s.AppVersion = AppVersion
	}
	return fixed
}
