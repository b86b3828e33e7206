package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Every color used by the CLI is named here.
var (
	// ColorCyan is used for identifiable nouns: coordinates, paths, versions.
	ColorCyan = lipgloss.Color("14")

	// colorGreen is used for the "released" and "valid" statuses.
	colorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "modified" status.
	ColorYellow = lipgloss.Color("220")

	// colorRed is used for snapshot offenders.
	colorRed = lipgloss.Color("196")

	// colorBoldRed is used for the "failed" status (matches ERROR level).
	colorBoldRed = lipgloss.Color("204")

	// colorGreenCheck is used for the completion checkmark.
	colorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (coordinates, paths, versions).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs (releasing, verifying, writing).
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (scope prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Module status values.
const (
	StatusModified  = "modified"
	StatusUnchanged = "unchanged"
	StatusValid     = "valid"
	StatusSnapshot  = "snapshot"
	StatusFailed    = "failed"
)

func statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusValid:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case StatusModified:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusUnchanged:
		return lipgloss.NewStyle().Faint(true)
	case StatusSnapshot:
		return lipgloss.NewStyle().Foreground(colorRed)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(colorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minModuleColumnWidth keeps status words aligned across module lines.
const minModuleColumnWidth = 48

// FormatModuleLine renders a module coordinate with a right-aligned,
// color-coded status suffix:
//
//	m:<group:artifact>  <status>
func FormatModuleLine(coordinate, status string) string {
	padding := minModuleColumnWidth - len(coordinate)
	if padding < 2 {
		padding = 2
	}

	return StyleDim.Render("m:") +
		StyleNoun.Render(coordinate) +
		strings.Repeat(" ", padding) +
		statusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(colorGreenCheck).Render("✔")
	return check + " " + msg
}

// vetLabelWidth aligns the detail column of FormatVetCheck lines.
const vetLabelWidth = 30

// FormatVetCheck renders a passed check with an optional aligned detail.
func FormatVetCheck(label, detail string) string {
	line := FormatCheckmark(label)
	if detail == "" {
		return line
	}
	padding := vetLabelWidth - len(label)
	if padding < 2 {
		padding = 2
	}
	return line + strings.Repeat(" ", padding) + StyleNoun.Render(detail)
}

// FormatVersionChange renders "from → to" with the target highlighted.
func FormatVersionChange(from, to string) string {
	if from == "" {
		from = "-"
	}
	return StyleDim.Render(from) + " → " + StyleNoun.Render(to)
}
