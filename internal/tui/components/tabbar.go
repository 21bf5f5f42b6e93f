package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/guardianshield/shieldplan/internal/tui/theme"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs defines the report tabs.
var Tabs = []Tab{
	{Name: "Summary", Key: 's', KeyPos: 0},
	{Name: "Recommendations", Key: 'r', KeyPos: 0},
	{Name: "Tax Buckets", Key: 't', KeyPos: 0},
	{Name: "Coverage", Key: 'c', KeyPos: 0},
}

const tabPadding = 1

// TabVisualWidth is the rendered width of tab, including its padding.
func TabVisualWidth(tab Tab, active bool) int {
	w := lipgloss.Width(tab.Name) + 2*tabPadding
	if !active && (tab.KeyPos < 0 || tab.KeyPos >= len(tab.Name)) {
		w += 3 // "[k]" suffix
	}
	return w
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.SurfaceHover).
		Bold(true).
		Padding(0, tabPadding)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true).
		Underline(true)

	padStyle := lipgloss.NewStyle().Background(t.Surface)
	sepStyle := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface)

	parts := make([]string, 0, len(Tabs))
	for i, tab := range Tabs {
		if i == activeIdx {
			parts = append(parts, activeStyle.Render(tab.Name))
			continue
		}
		pad := padStyle.Render(strings.Repeat(" ", tabPadding))
		if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
			parts = append(parts, pad+
				inactiveStyle.Render(tab.Name[:tab.KeyPos])+
				keyStyle.Render(string(tab.Name[tab.KeyPos]))+
				inactiveStyle.Render(tab.Name[tab.KeyPos+1:])+pad)
		} else {
			parts = append(parts, pad+inactiveStyle.Render(tab.Name+"["+string(tab.Key)+"]")+pad)
		}
	}

	row := strings.Join(parts, sepStyle.Render("│"))
	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(row)
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}

// TabAtX returns the tab index at column x of a bar rendered with activeIdx,
// or -1 if none.
func TabAtX(x, activeIdx int) int {
	pos := 0
	for i, tab := range Tabs {
		w := TabVisualWidth(tab, i == activeIdx)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 1 // separator
	}
	return -1
}
