// Package output provides styled terminal rendering helpers for lifewheel.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color constants for consistent styling across the CLI.
var (
	// ColorPrimary is used for headers and emphasis.
	ColorPrimary = lipgloss.Color("#64b5f6")

	// ColorSuccess is used for healthy scores and completed tasks.
	ColorSuccess = lipgloss.Color("#66bb6a")

	// ColorError is used for serious neglect and score drops.
	ColorError = lipgloss.Color("#ef5350")

	// ColorWarning is used for medium neglect.
	ColorWarning = lipgloss.Color("#fff59d")

	// ColorMuted is used for secondary text and borders.
	ColorMuted = lipgloss.Color("#888888")

	// ColorWhite is used for primary text.
	ColorWhite = lipgloss.Color("#ffffff")
)

// Styles provides reusable lipgloss styles.
var (
	// StyleHeader is used for section headers.
	StyleHeader lipgloss.Style

	// StyleSuccess is used for positive values.
	StyleSuccess lipgloss.Style

	// StyleError is used for negative values.
	StyleError lipgloss.Style

	// StyleWarning is used for cautionary values.
	StyleWarning lipgloss.Style

	// StyleMuted is used for de-emphasized text.
	StyleMuted lipgloss.Style

	// StyleBold is used for emphasized text.
	StyleBold lipgloss.Style

	// StyleLabel is used for metric labels.
	StyleLabel lipgloss.Style

	// StyleValue is used for metric values.
	StyleValue lipgloss.Style

	// StyleNudge frames the coaching message on the dashboard.
	StyleNudge lipgloss.Style
)

func init() {
	applyStyles(false)
}

// noColor tracks whether color output is disabled.
var noColor bool

// SetNoColor disables or enables color output globally.
// When disabled, all package-level styles are reassigned to unstyled renderers.
func SetNoColor(disabled bool) {
	noColor = disabled
	applyStyles(disabled)
}

// IsNoColor returns whether color output is currently disabled.
func IsNoColor() bool {
	return noColor
}

// AutoColor disables color when stdout is not a terminal or NO_COLOR is set.
// It reports whether color stayed enabled.
func AutoColor() bool {
	fd := os.Stdout.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	if !tty || os.Getenv("NO_COLOR") != "" {
		SetNoColor(true)
		return false
	}
	return true
}

func applyStyles(plain bool) {
	if plain {
		p := lipgloss.NewStyle()
		StyleHeader = p
		StyleSuccess = p
		StyleError = p
		StyleWarning = p
		StyleMuted = p
		StyleBold = p
		StyleLabel = p.Width(24)
		StyleValue = p.Width(12)
		StyleNudge = p.PaddingLeft(1)
		return
	}

	StyleHeader = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	StyleSuccess = lipgloss.NewStyle().
		Foreground(ColorSuccess)
	StyleError = lipgloss.NewStyle().
		Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().
		Foreground(ColorWarning)
	StyleMuted = lipgloss.NewStyle().
		Foreground(ColorMuted)
	StyleBold = lipgloss.NewStyle().
		Bold(true)
	StyleLabel = lipgloss.NewStyle().
		Width(24)
	StyleValue = lipgloss.NewStyle().
		Bold(true).
		Width(12)
	StyleNudge = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 1)
}
