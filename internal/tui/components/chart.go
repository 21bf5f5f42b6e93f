package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/guardianshield/shieldplan/internal/tui/theme"
)

// BarItem is one row of a horizontal bar chart.
type BarItem struct {
	Label string
	Value float64
	Text  string // formatted value shown after the bar
	Color lipgloss.Color
}

// HBarChart renders labelled horizontal bars scaled to the largest value.
func HBarChart(items []BarItem, width int) string {
	if len(items) == 0 {
		return ""
	}
	t := theme.Active

	labelW, textW := 0, 0
	peak := 0.0
	for _, it := range items {
		labelW = max(labelW, lipgloss.Width(it.Label))
		textW = max(textW, lipgloss.Width(it.Text))
		peak = max(peak, it.Value)
	}
	if peak <= 0 {
		peak = 1
	}

	barW := width - labelW - textW - 2
	if barW < 5 {
		barW = 5
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Background(t.Surface)

	lines := make([]string, len(items))
	for i, it := range items {
		n := int(it.Value / peak * float64(barW))
		if n < 0 {
			n = 0
		}
		if it.Value > 0 && n == 0 {
			n = 1
		}
		color := it.Color
		if color == "" {
			color = t.Accent
		}
		barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

		lines[i] = labelStyle.Render(fmt.Sprintf("%-*s", labelW, it.Label)) +
			emptyStyle.Render(" ") +
			barStyle.Render(strings.Repeat("█", n)) +
			emptyStyle.Render(strings.Repeat(" ", barW-n)) +
			emptyStyle.Render(" ") +
			textStyle.Render(fmt.Sprintf("%*s", textW, it.Text))
	}
	return strings.Join(lines, "\n")
}
