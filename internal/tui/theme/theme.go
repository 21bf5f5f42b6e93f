// Package theme defines color themes for the shieldplan TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name         string
	Background   lipgloss.Color // Main app background
	Surface      lipgloss.Color // Card/panel backgrounds
	SurfaceHover lipgloss.Color // Highlighted surface (active tab, selected row)
	Border       lipgloss.Color // Subtle borders
	BorderAccent lipgloss.Color // Accent-colored borders for focus states
	TextDim      lipgloss.Color // Lowest contrast text (hints, disabled)
	TextMuted    lipgloss.Color // Secondary text (labels, metadata)
	TextPrimary  lipgloss.Color // Primary content text
	Accent       lipgloss.Color // Primary accent (links, active states)
	AccentBright lipgloss.Color
	Good         lipgloss.Color // Covered, adequate, recommended
	Warn         lipgloss.Color // Opportunities
	Alert        lipgloss.Color // Gaps
	TaxFree      lipgloss.Color
	TaxDeferred  lipgloss.Color
	Taxable      lipgloss.Color
}

// Active is the currently selected theme.
var Active = Shield

// Shield is the default navy and gold theme.
var Shield = Theme{
	Name:         "shield",
	Background:   lipgloss.Color("#0B1526"),
	Surface:      lipgloss.Color("#12213A"),
	SurfaceHover: lipgloss.Color("#1C2F4F"),
	Border:       lipgloss.Color("#2C4166"),
	BorderAccent: lipgloss.Color("#D4A537"),
	TextDim:      lipgloss.Color("#52627F"),
	TextMuted:    lipgloss.Color("#8D9AB3"),
	TextPrimary:  lipgloss.Color("#F4F1E8"),
	Accent:       lipgloss.Color("#D4A537"),
	AccentBright: lipgloss.Color("#F0C75E"),
	Good:         lipgloss.Color("#4CAF7A"),
	Warn:         lipgloss.Color("#E39B3B"),
	Alert:        lipgloss.Color("#E05A4F"),
	TaxFree:      lipgloss.Color("#4CAF7A"),
	TaxDeferred:  lipgloss.Color("#5A8FD8"),
	Taxable:      lipgloss.Color("#E39B3B"),
}

// FlexokiDark is a warm, paper-inspired dark theme.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   lipgloss.Color("#100F0F"),
	Surface:      lipgloss.Color("#1C1B1A"),
	SurfaceHover: lipgloss.Color("#282726"),
	Border:       lipgloss.Color("#403E3C"),
	BorderAccent: lipgloss.Color("#3AA99F"),
	TextDim:      lipgloss.Color("#575653"),
	TextMuted:    lipgloss.Color("#878580"),
	TextPrimary:  lipgloss.Color("#FFFCF0"),
	Accent:       lipgloss.Color("#3AA99F"),
	AccentBright: lipgloss.Color("#5BC8BE"),
	Good:         lipgloss.Color("#879A39"),
	Warn:         lipgloss.Color("#DA702C"),
	Alert:        lipgloss.Color("#D14D41"),
	TaxFree:      lipgloss.Color("#879A39"),
	TaxDeferred:  lipgloss.Color("#4385BE"),
	Taxable:      lipgloss.Color("#D0A215"),
}

// Terminal uses ANSI 16 colors only - maximum compatibility.
var Terminal = Theme{
	Name:         "terminal",
	Background:   lipgloss.Color("0"),
	Surface:      lipgloss.Color("0"),
	SurfaceHover: lipgloss.Color("8"),
	Border:       lipgloss.Color("8"),
	BorderAccent: lipgloss.Color("6"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("6"),
	AccentBright: lipgloss.Color("14"),
	Good:         lipgloss.Color("2"),
	Warn:         lipgloss.Color("3"),
	Alert:        lipgloss.Color("1"),
	TaxFree:      lipgloss.Color("2"),
	TaxDeferred:  lipgloss.Color("4"),
	Taxable:      lipgloss.Color("3"),
}

// All available themes.
var All = []Theme{Shield, FlexokiDark, Terminal}

// ByName returns a theme by its name, defaulting to Shield.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return Shield
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
