// Package ui provides the terminal styling and table rendering used by the
// preview and summarize commands.
package ui

import "github.com/charmbracelet/lipgloss"

// Semantic colors.
var (
	Accent  = lipgloss.Color("#4db6ac") // teal
	Warning = lipgloss.Color("#FFC107") // yellow
	Danger  = lipgloss.Color("#e53935") // red
	Dim     = lipgloss.Color("240")
)

// Styles holds the render styles used by the table component.
type Styles struct {
	Title lipgloss.Style
	Bold  lipgloss.Style
	Body  lipgloss.Style
	Muted lipgloss.Style
}

// DefaultStyles returns the standard claimforge terminal styles.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(Accent).MarginTop(1),
		Bold:  lipgloss.NewStyle().Bold(true),
		Body:  lipgloss.NewStyle(),
		Muted: lipgloss.NewStyle().Foreground(Dim),
	}
}

// LossRatioStyle colors a loss ratio: healthy under 0.85, warning up to
// 1.0, red above (claims outrunning capitation).
func LossRatioStyle(ratio float64) lipgloss.Style {
	switch {
	case ratio > 1.0:
		return lipgloss.NewStyle().Foreground(Danger)
	case ratio > 0.85:
		return lipgloss.NewStyle().Foreground(Warning)
	default:
		return lipgloss.NewStyle().Foreground(Accent)
	}
}
