package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/guardianshield/shieldplan/internal/calc"
	"github.com/guardianshield/shieldplan/internal/cli"
	"github.com/guardianshield/shieldplan/internal/model"
	"github.com/guardianshield/shieldplan/internal/tui/components"
	"github.com/guardianshield/shieldplan/internal/tui/theme"
)

func (a App) renderSummaryTab(cw int) string {
	t := theme.Active
	r := a.report

	gapTone, gapValue, gapNote := t.Alert, cli.FormatCurrency(r.Coverage.Gap), "additional coverage needed"
	if r.Coverage.Covered() {
		gapTone, gapValue, gapNote = t.Good, "Fully Covered", "need is met"
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Insurance Need", Value: cli.FormatCompact(r.Coverage.Need.Total), Note: "DIME method"},
		{Label: "Current Coverage", Value: cli.FormatCompact(r.Coverage.CurrentCoverage), Note: "term + permanent"},
		{Label: "Coverage Gap", Value: gapValue, Note: gapNote, Tone: gapTone},
		{Label: "Net Worth", Value: cli.FormatCompact(r.NetWorth), Note: cli.FormatCompact(r.TotalLiabilities) + " owed"},
	}, cw))
	b.WriteString("\n")

	halves := components.LayoutRow(cw, 2)

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	good := lipgloss.NewStyle().Foreground(t.Good).Background(t.Surface).Bold(true)
	warn := lipgloss.NewStyle().Foreground(t.Warn).Background(t.Surface).Bold(true)

	s := r.Suitability
	var sb strings.Builder
	sb.WriteString(components.ScoreGauge(s.Score, max(10, components.CardInnerWidth(halves[0])-8)))
	sb.WriteString("\n\n")
	sb.WriteString(muted.Render("Fit       ") + value.Render(string(s.Fit)))
	sb.WriteString("\n")
	sb.WriteString(muted.Render("Age       ") + value.Render(fmt.Sprintf("%d, retiring in %s", s.Age, cli.FormatYears(s.YearsToRetirement))))
	sb.WriteString("\n")
	if s.Recommend {
		sb.WriteString(good.Render("IUL recommended") + muted.Render("  press i to explore"))
	} else {
		sb.WriteString(warn.Render("IUL not recommended at this time"))
	}
	suitCard := components.ContentCard("IUL Suitability", sb.String(), halves[0])

	ef := r.EmergencyFund
	var eb strings.Builder
	eb.WriteString(muted.Render("Held      ") + value.Render(fmt.Sprintf("%d months (%s)", ef.Months, cli.FormatCurrency(ef.Current))))
	eb.WriteString("\n")
	eb.WriteString(muted.Render("Target    ") + value.Render(cli.FormatCurrency(ef.RecommendedMin)+" - "+cli.FormatCurrency(ef.RecommendedMax)))
	eb.WriteString("\n\n")
	if ef.Adequate {
		eb.WriteString(good.Render("Adequate reserve"))
	} else {
		eb.WriteString(warn.Render("Below three months of expenses"))
	}
	efCard := components.ContentCard("Emergency Fund", eb.String(), halves[1])

	b.WriteString(components.CardRow([]string{suitCard, efCard}))
	return b.String()
}

func (a App) renderRecommendationsTab(cw int) string {
	t := theme.Active
	r := a.report

	if len(r.Recommendations) == 0 {
		return components.ContentCard("Recommendations", "No actions needed. Your plan is on track.", cw)
	}

	detail := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Width(components.CardInnerWidth(cw))
	action := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)

	cards := make([]string, 0, len(r.Recommendations))
	for i, rec := range r.Recommendations {
		body := detail.Render(rec.Detail)
		if rec.Action != "" {
			body += "\n\n" + action.Render("→ "+rec.Action)
		}
		cards = append(cards, components.ContentCard(fmt.Sprintf("%d. %s", i+1, rec.Title), body, cw))
	}
	return strings.Join(cards, "\n")
}

func (a App) renderBucketsTab(cw int) string {
	t := theme.Active
	bk := a.report.Buckets

	inner := components.CardInnerWidth(cw)
	labelW := 12
	barW := max(10, inner-labelW-9)

	rows := []struct {
		label string
		pct   float64
		color lipgloss.Color
	}{
		{"Tax-Free", bk.TaxFreePercent, t.TaxFree},
		{"Tax-Deferred", bk.TaxDeferredPercent, t.TaxDeferred},
		{"Taxable", bk.TaxablePercent, t.Taxable},
	}
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = components.ShareBar(row.label, row.pct, row.color, labelW, barW)
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Tax-Free", Value: cli.FormatCompact(bk.TaxFree), Note: "never pay", Tone: t.TaxFree},
		{Label: "Tax-Deferred", Value: cli.FormatCompact(bk.TaxDeferred), Note: "pay later", Tone: t.TaxDeferred},
		{Label: "Taxable", Value: cli.FormatCompact(bk.Taxable), Note: "pay now", Tone: t.Taxable},
		{Label: "Total Assets", Value: cli.FormatCompact(bk.TotalAssets)},
	}, cw))
	b.WriteString("\n")

	body := strings.Join(lines, "\n")
	if a.report.DiversificationOpportunity {
		note := lipgloss.NewStyle().Foreground(t.Warn).Background(t.Surface)
		body += "\n\n" + note.Render("Under 30% of assets are tax-free. Consider diversifying.")
	}
	b.WriteString(components.ContentCard("Tax Allocation", body, cw))
	return b.String()
}

func (a App) renderCoverageTab(cw int) string {
	t := theme.Active
	c := a.report.Coverage
	n := c.Need

	inner := components.CardInnerWidth(cw)
	items := []components.BarItem{
		{Label: "Final expenses", Value: n.FinalExpenses, Text: cli.FormatCurrency(n.FinalExpenses)},
		{Label: "Debt", Value: n.Debt, Text: cli.FormatCurrency(n.Debt)},
		{Label: "Income", Value: n.IncomeReplacement, Text: cli.FormatCurrency(n.IncomeReplacement)},
		{Label: "Mortgage", Value: n.Mortgage, Text: cli.FormatCurrency(n.Mortgage)},
		{Label: "Education", Value: n.Education, Text: cli.FormatCurrency(n.Education)},
	}

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	dime := components.HBarChart(items, inner) + "\n\n" +
		muted.Render("Total need  ") + value.Render(cli.FormatCurrency(n.Total))

	r := a.report
	have := []components.BarItem{
		{Label: "Term", Value: r.TermLife, Text: cli.FormatCurrency(r.TermLife), Color: t.Accent},
		{Label: "Permanent", Value: r.PermanentLife, Text: cli.FormatCurrency(r.PermanentLife), Color: t.Accent},
		{Label: "Gap", Value: c.Gap, Text: cli.FormatCurrency(c.Gap), Color: t.Alert},
	}

	return components.ContentCard("DIME Insurance Need", dime, cw) + "\n" +
		components.ContentCard("In-force Coverage", components.HBarChart(have, inner), cw)
}

// renderIUL shows the illustration once the IUL flow is entered.
func (a App) renderIUL(cw int) string {
	t := theme.Active
	res := a.iul

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Contributed", Value: cli.FormatCompact(res.TotalContributed), Note: cli.FormatCurrencyCents(res.Input.MonthlyContribution) + "/mo"},
		{Label: "401(k) at " + fmt.Sprint(res.RetirementAge), Value: cli.FormatCompact(res.Value401k), Note: fmt.Sprintf("%.1f%% market return", res.Input.MarketReturn)},
		{Label: "IUL at " + fmt.Sprint(res.RetirementAge), Value: cli.FormatCompact(res.ValueIUL), Note: fmt.Sprintf("capped at %.0f%%", calc.IULCap), Tone: t.TaxFree},
	}, cw))
	b.WriteString("\n")

	items := []components.BarItem{
		{Label: "401(k)", Value: res.WorstCase401k, Text: cli.FormatCurrency(res.WorstCase401k), Color: t.Alert},
		{Label: "IUL", Value: res.WorstCaseIUL, Text: cli.FormatCurrency(res.WorstCaseIUL), Color: t.Good},
	}
	note := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
		Render(fmt.Sprintf("A %.0f%% crash before retirement. The IUL floor keeps credited value.", calc.MarketCrashCut*100))
	b.WriteString(components.ContentCard("Worst Case", components.HBarChart(items, components.CardInnerWidth(cw))+"\n\n"+note, cw))
	return b.String()
}

// illustrate builds the IUL comparison for a report's client.
func illustrate(r model.Report) calc.IULResult {
	return calc.IULComparison(calc.IllustrationInput(r.Suitability.Age, r.Suitability.YearsToRetirement, r.AnnualIncome))
}
