package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/guardianshield/shieldplan/internal/tui/theme"
)

func clampPct(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 1 {
		return 1
	}
	return pct
}

func solidBar(color lipgloss.Color, width int) progress.Model {
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(theme.Active.TextDim)
	return bar
}

// StepProgress renders "Section n of total" with a bar.
func StepProgress(current, total, width int) string {
	t := theme.Active
	if total <= 0 {
		return ""
	}
	label := fmt.Sprintf("Section %d of %d", current, total)
	pctStr := fmt.Sprintf("%3.0f%%", float64(current)/float64(total)*100)

	barW := width - lipgloss.Width(label) - lipgloss.Width(pctStr) - 2
	if barW < 10 {
		barW = 10
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	pctStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	return labelStyle.Render(label) + " " +
		solidBar(t.Accent, barW).ViewAs(clampPct(float64(current)/float64(total))) + " " +
		pctStyle.Render(pctStr)
}

// ScoreColor maps a 0-100 suitability score to a tone.
func ScoreColor(score int) lipgloss.Color {
	t := theme.Active
	switch {
	case score >= 80:
		return t.Good
	case score >= 60:
		return t.Accent
	default:
		return t.Warn
	}
}

// ScoreGauge renders a suitability score bar with "n/100".
func ScoreGauge(score, width int) string {
	t := theme.Active
	color := ScoreColor(score)
	scoreStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return solidBar(color, width).ViewAs(clampPct(float64(score)/100)) +
		spaceStyle.Render(" ") +
		scoreStyle.Render(fmt.Sprintf("%d/100", score))
}

// ShareBar renders a labelled allocation bar for a 0-100 percentage.
func ShareBar(label string, pct float64, color lipgloss.Color, labelW, barW int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		solidBar(color, barW).ViewAs(clampPct(pct/100)) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%5.1f%%", pct))
}
