// Package ui holds the shared look of the interactive screens.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	Primary = lipgloss.Color("99")  // Violet
	Success = lipgloss.Color("35")  // Green
	Surface = lipgloss.Color("236") // Dark gray
	Text    = lipgloss.Color("252") // Light gray
	TextDim = lipgloss.Color("244") // Dimmer text

	// Footer hints
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextDim).
			Background(Surface).
			Padding(0, 1)

	StatusBarKeyStyle = lipgloss.NewStyle().
				Foreground(Text).
				Background(Surface).
				Bold(true)

	// General
	BoldStyle     = lipgloss.NewStyle().Bold(true)
	DimStyle      = lipgloss.NewStyle().Foreground(TextDim)
	SelectedStyle = lipgloss.NewStyle().Foreground(Primary).Bold(true)
)
