// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatCurrency formats a USD amount as whole dollars with separators.
// e.g., 1295000 -> "$1,295,000", -42.6 -> "-$43"
func FormatCurrency(v float64) string {
	if v < 0 {
		return "-" + FormatCurrency(-v)
	}
	return "$" + humanize.Comma(int64(math.Round(v)))
}

// FormatCurrencyCents keeps two decimals, for monthly figures.
// e.g., 1145.833 -> "$1,145.83"
func FormatCurrencyCents(v float64) string {
	if v < 0 {
		return "-" + FormatCurrencyCents(-v)
	}
	return "$" + humanize.CommafWithDigits(math.Round(v*100)/100, 2)
}

// FormatCompact abbreviates large amounts for cards and charts.
// e.g., 1234567 -> "$1.2M", 85000 -> "$85K", 950 -> "$950"
func FormatCompact(v float64) string {
	abs := math.Abs(v)
	sign := ""
	if v < 0 {
		sign = "-"
	}
	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%s$%.1fB", sign, abs/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%s$%.1fM", sign, abs/1_000_000)
	case abs >= 10_000:
		return fmt.Sprintf("%s$%.0fK", sign, abs/1_000)
	case abs >= 1_000:
		return fmt.Sprintf("%s$%.1fK", sign, abs/1_000)
	default:
		return fmt.Sprintf("%s$%.0f", sign, abs)
	}
}

// FormatPercent formats a 0-100 value as a percentage string.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDelta formats a signed currency difference.
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatCurrency(delta)
	}
	return "-" + FormatCurrency(-delta)
}

// FormatYears pluralizes a year count.
func FormatYears(n int) string {
	if n == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", n)
}

// FormatDate renders a report timestamp as a calendar date.
// e.g., "March 1, 2025"
func FormatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}
