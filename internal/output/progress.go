package output

import (
	"fmt"
	"strings"
)

// width is the rule width used by Section and the default bar width base.
var width = 66

// SetWidth sets the terminal width used for rules. Non-positive values are
// ignored.
func SetWidth(w int) {
	if w > 0 {
		width = w
	}
}

// ScoreBar renders a visual progress bar for a 0-10 score.
// Example: "████████░░ 8.0/10"
func ScoreBar(score float64, barWidth int) string {
	if barWidth <= 0 {
		barWidth = 20
	}
	filled := int((score / 10.0) * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	var style func(string) string
	switch {
	case score >= 7:
		style = func(s string) string { return StyleSuccess.Render(s) }
	case score >= 4:
		style = func(s string) string { return StyleWarning.Render(s) }
	default:
		style = func(s string) string { return StyleError.Render(s) }
	}

	return fmt.Sprintf("%s %s", style(bar), StyleMuted.Render(fmt.Sprintf("%.1f/10", score)))
}

// TrendArrow returns a styled trend indicator for a delta value.
// Positive delta shows an up arrow, negative shows down, zero shows a dash.
// The improved parameter indicates whether higher values are better.
func TrendArrow(delta float64, higherIsBetter bool) string {
	if delta == 0 {
		return StyleMuted.Render("─")
	}

	isPositive := delta > 0
	isImproved := (isPositive && higherIsBetter) || (!isPositive && !higherIsBetter)

	var arrow string
	if isPositive {
		arrow = fmt.Sprintf("▲ +%.1f", delta)
	} else {
		arrow = fmt.Sprintf("▼ %.1f", delta)
	}

	if isImproved {
		return StyleSuccess.Render(arrow)
	}
	return StyleError.Render(arrow)
}

// TrendArrowPercent returns a styled trend indicator for a percentage delta.
func TrendArrowPercent(delta float64, higherIsBetter bool) string {
	if delta == 0 {
		return StyleMuted.Render("─")
	}

	isPositive := delta > 0
	isImproved := (isPositive && higherIsBetter) || (!isPositive && !higherIsBetter)

	var arrow string
	if isPositive {
		arrow = fmt.Sprintf("▲ +%.0f%%", delta)
	} else {
		arrow = fmt.Sprintf("▼ %.0f%%", delta)
	}

	if isImproved {
		return StyleSuccess.Render(arrow)
	}
	return StyleError.Render(arrow)
}

// NeglectBadge renders a neglect level ("none", "medium", "serious").
func NeglectBadge(level string) string {
	switch level {
	case "serious":
		return StyleError.Render("● serious")
	case "medium":
		return StyleWarning.Render("● medium")
	default:
		return StyleSuccess.Render("● ok")
	}
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", width))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}

// Nudge frames a coaching message, prefixed by its kind.
func Nudge(kind, message string) string {
	var label string
	switch kind {
	case "corrective":
		label = StyleError.Render("Corrective")
	case "standard":
		label = StyleWarning.Render("Nudge")
	default:
		label = StyleSuccess.Render("On track")
	}
	return StyleNudge.Width(width).Render(label + "  " + message)
}
