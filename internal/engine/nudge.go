package engine

import "fmt"

// NudgeType is the severity of a coaching message.
type NudgeType string

const (
	NudgeCorrective NudgeType = "corrective"
	NudgeStandard   NudgeType = "standard"
	NudgeSoft       NudgeType = "soft"
)

// Nudge is a single coaching message aimed at the worst domain.
type Nudge struct {
	Type    NudgeType `json:"type"`
	Message string    `json:"message"`
	Target  string    `json:"target"`
}

// ComposeNudge derives a nudge from the week's domain statuses and momentum.
// It returns nil when there are no domains. statuses is not modified.
func ComposeNudge(statuses []DomainStatus, momentum float64) *Nudge {
	if len(statuses) == 0 {
		return nil
	}
	ranked := append([]DomainStatus(nil), statuses...)
	SortByNeglect(ranked)
	worst := ranked[0]

	total := 0.0
	for _, s := range ranked {
		total += s.Score
	}
	avg := total / float64(len(ranked))

	var n Nudge
	n.Target = worst.Name
	switch {
	case worst.Neglect == NeglectSerious || avg < 4:
		n.Type = NudgeCorrective
		n.Message = fmt.Sprintf("You've been neglecting %s. Ring-fence one simple action today so this domain doesn't keep sliding.", worst.Name)
	case worst.Neglect == NeglectMedium || avg < 6:
		n.Type = NudgeStandard
		n.Message = fmt.Sprintf("%s is falling behind this week. Protect 5-10 minutes today to nudge it forward.", worst.Name)
	default:
		n.Type = NudgeSoft
		n.Message = fmt.Sprintf("You're broadly on track. If you can, do one small thing today that supports %s.", worst.Name)
	}

	if momentum < 0 && n.Type != NudgeCorrective {
		n.Message += " Keep it very small - the aim is just to get moving again."
	}
	return &n
}

// BuildNudge composes the nudge for the current week.
func (e *Engine) BuildNudge() *Nudge {
	return ComposeNudge(e.domainStatuses(), e.Momentum())
}
