package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/guardianshield/shieldplan/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar with key hints on the left
// and context on the right.
func RenderStatusBar(width int, hints, right string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	left := " " + hints
	if right != "" {
		right += " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return style.Render(left + lipgloss.NewStyle().Width(padding).Render("") + right)
}
