package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/guardianshield/shieldplan/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToWidth(t *testing.T) {
	for _, tc := range []struct{ total, n int }{{100, 3}, {81, 4}, {7, 7}, {10, 1}} {
		widths := LayoutRow(tc.total, tc.n)
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tc.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tc.total, tc.n, sum)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow(10, 0) should be nil")
	}
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("shield")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))
	if shortLines >= tallLines {
		t.Fatal("Test setup error: short card should be shorter than tall card")
	}

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")
	if len(lines) != tallLines {
		t.Fatalf("Joined height = %d, want %d", len(lines), tallLines)
	}
	for i := shortLines; i < len(lines); i++ {
		if !strings.Contains(lines[i], "\x1b[") {
			t.Errorf("Line %d has no ANSI codes; padding is unstyled", i)
		}
	}
	w := lipgloss.Width(lines[0])
	for i, line := range lines {
		if lipgloss.Width(line) != w {
			t.Errorf("Line %d width = %d, want %d", i, lipgloss.Width(line), w)
		}
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	row := MetricCardRow([]Metric{
		{Label: "Need", Value: "$1,720,000"},
		{Label: "Gap", Value: "$1,220,000", Tone: theme.Active.Alert},
		{Label: "Score", Value: "100", Note: "Excellent fit"},
	}, 90)
	if got := lipgloss.Width(row); got != 90 {
		t.Fatalf("row width = %d, want 90", got)
	}
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range Tabs {
		pos := 0
		for i, tab := range Tabs {
			w := TabVisualWidth(tab, i == active)
			if got := TabAtX(pos+w/2, active); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, pos+w/2, got, i)
			}
			pos += w + 1
		}
		if got := TabAtX(pos+50, active); got != -1 {
			t.Fatalf("x past the last tab = %d, want -1", got)
		}
	}
}

func TestRenderTabBarWidthMatchesHitboxes(t *testing.T) {
	for active := range Tabs {
		total := 0
		for i, tab := range Tabs {
			total += TabVisualWidth(tab, i == active)
		}
		total += len(Tabs) - 1
		row := RenderTabBar(active, total)
		if got := lipgloss.Width(row); got != total {
			t.Fatalf("active=%d: bar width = %d, want %d", active, got, total)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('t'); got != 2 {
		t.Errorf("TabIdxByKey('t') = %d, want 2", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
}

func TestHBarChartScales(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	defer lipgloss.SetColorProfile(termenv.TrueColor)

	out := HBarChart([]BarItem{
		{Label: "Income", Value: 100, Text: "$100"},
		{Label: "Debt", Value: 50, Text: "$50"},
		{Label: "Mortgage", Value: 0, Text: "$0"},
	}, 40)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	full := strings.Count(lines[0], "█")
	half := strings.Count(lines[1], "█")
	if full == 0 || half != full/2 {
		t.Errorf("bars = %d and %d, want second half of first", full, half)
	}
	if strings.Count(lines[2], "█") != 0 {
		t.Error("zero value drew a bar")
	}
}
