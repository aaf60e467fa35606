package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Panel draws content inside a rounded border with the title let into the
// top edge. width is the outer width including the border.
func Panel(title, content string, width int) string {
	frame := lipgloss.NewStyle().Foreground(Primary)

	// The top edge is drawn by hand so the title can sit in it:
	// ╭─ title ────╮. Corner, dash, spaced title, then dashes out to width.
	dashes := width - lipgloss.Width(title) - 5
	if dashes < 0 {
		dashes = 0
	}
	top := frame.Render("╭─ ") + title + frame.Render(" "+strings.Repeat("─", dashes)+"╮")

	inner := width - 4
	if inner < 0 {
		inner = 0
	}
	body := lipgloss.NewStyle().
		Width(inner).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderTop(false).
		BorderLeft(true).
		BorderRight(true).
		BorderBottom(true).
		BorderForeground(Primary).
		Padding(0, 1).
		Render(content)

	return top + "\n" + body
}

// StatusKey renders one key hint for the footer.
func StatusKey(k, action string) string {
	return StatusBarKeyStyle.Render(k) + StatusBarStyle.Render(":"+action)
}

// Badge renders text on a colored pill.
func Badge(text string, color lipgloss.Color) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("231")).
		Background(color).
		Padding(0, 1).
		Render(text)
}

// SuccessBadge is the green variant.
func SuccessBadge(text string) string {
	return Badge(text, Success)
}
