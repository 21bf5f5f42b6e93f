package cli

import (
	"fmt"
	"strings"

	"github.com/guardianshield/shieldplan/internal/model"
)

// ReportSection selects part of the rendered report.
type ReportSection string

const (
	SectionAll             ReportSection = "all"
	SectionSummary         ReportSection = "summary"
	SectionCoverage        ReportSection = "coverage"
	SectionBuckets         ReportSection = "buckets"
	SectionRecommendations ReportSection = "recommendations"
)

// ReportSections lists the selectable sections in render order.
var ReportSections = []ReportSection{SectionSummary, SectionCoverage, SectionBuckets, SectionRecommendations}

// ParseReportSection validates a --section value.
func ParseReportSection(s string) (ReportSection, error) {
	sec := ReportSection(strings.ToLower(strings.TrimSpace(s)))
	if sec == "" || sec == SectionAll {
		return SectionAll, nil
	}
	for _, known := range ReportSections {
		if sec == known {
			return sec, nil
		}
	}
	return "", fmt.Errorf("unknown report section %q", s)
}

// RenderReport renders the selected sections of r.
func RenderReport(r model.Report, section ReportSection) string {
	var b strings.Builder
	b.WriteString(RenderTitle("YOUR FINANCIAL RISK ASSESSMENT"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  Prepared for %s  %s", r.ClientName, FormatDate(r.GeneratedAt))))
	b.WriteString("\n\n")

	for _, sec := range ReportSections {
		if section != SectionAll && section != sec {
			continue
		}
		switch sec {
		case SectionSummary:
			b.WriteString(RenderSummary(r))
		case SectionCoverage:
			b.WriteString(RenderCoverage(r.Coverage))
		case SectionBuckets:
			b.WriteString(RenderBuckets(r.Buckets))
		case SectionRecommendations:
			b.WriteString(RenderRecommendations(r.Recommendations))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderSummary renders the headline figures and the suitability score.
func RenderSummary(r model.Report) string {
	gap := goodStyle.Render("Fully Covered")
	if !r.Coverage.Covered() {
		gap = alertStyle.Render(FormatCurrency(r.Coverage.Gap))
	}
	emergency := fmt.Sprintf("%d months", r.EmergencyFund.Months)
	if !r.EmergencyFund.Adequate {
		emergency = warnStyle.Render(emergency + " (below 3)")
	}

	rows := [][]string{
		{"Primary Goal", r.PrimaryGoal.Label()},
		{"Annual Income", FormatCurrency(r.AnnualIncome)},
		{"Dependents", fmt.Sprint(r.Dependents)},
		{"---"},
		{"Total Assets", FormatCurrency(r.Buckets.TotalAssets)},
		{"Total Liabilities", FormatCurrency(r.TotalLiabilities)},
		{"Net Worth", FormatCurrency(r.NetWorth)},
		{"Emergency Fund", emergency},
		{"---"},
		{"Insurance Need (DIME)", FormatCurrency(r.Coverage.Need.Total)},
		{"Protection Gap", gap},
		{"Tax-Free Share", FormatPercent(r.Buckets.TaxFreePercent)},
		{"---"},
		{"Age", fmt.Sprint(r.Suitability.Age)},
		{"Years to Retirement", fmt.Sprint(r.Suitability.YearsToRetirement)},
		{"IUL Fit", string(r.Suitability.Fit)},
	}

	var b strings.Builder
	b.WriteString(RenderTable(Table{Title: "Summary", Headers: []string{"Metric", "Value"}, Rows: rows}))
	b.WriteString("  IUL Suitability ")
	b.WriteString(RenderScoreBar(r.Suitability.Score, 30))
	b.WriteString("\n")
	if r.Suitability.Recommend {
		b.WriteString("  " + goodStyle.Render("You're a strong candidate for Indexed Universal Life.") + "\n")
	}
	return b.String()
}

// RenderCoverage renders the DIME breakdown against in-force coverage.
func RenderCoverage(c model.Coverage) string {
	rows := [][]string{
		{"Debt (incl. final expenses)", FormatCurrency(c.Need.Debt)},
		{"Income Replacement (10 yrs)", FormatCurrency(c.Need.IncomeReplacement)},
		{"Mortgage", FormatCurrency(c.Need.Mortgage)},
		{"Education", FormatCurrency(c.Need.Education)},
		{"---"},
		{"Total Need", FormatCurrency(c.Need.Total)},
		{"Current Coverage", FormatCurrency(c.CurrentCoverage)},
		{"Gap", FormatCurrency(c.Gap)},
	}
	return RenderTable(Table{Title: "Life Insurance Needs (DIME)", Headers: []string{"Component", "Amount"}, Rows: rows})
}

// RenderBuckets renders the tax bucket allocation with a bar per bucket.
func RenderBuckets(tb model.TaxBuckets) string {
	rows := [][]string{
		{"Tax-Free", FormatCurrency(tb.TaxFree), FormatPercent(tb.TaxFreePercent)},
		{"Tax-Deferred", FormatCurrency(tb.TaxDeferred), FormatPercent(tb.TaxDeferredPercent)},
		{"Taxable", FormatCurrency(tb.Taxable), FormatPercent(tb.TaxablePercent)},
		{"---"},
		{"Total", FormatCurrency(tb.TotalAssets), ""},
	}

	var b strings.Builder
	b.WriteString(RenderTable(Table{Title: "Tax Buckets", Headers: []string{"Bucket", "Amount", "Share"}, Rows: rows}))
	if tb.TotalAssets > 0 {
		b.WriteString(RenderHorizontalBar("Tax-Free    ", tb.TaxFreePercent, 100, 30, FormatPercent(tb.TaxFreePercent)) + "\n")
		b.WriteString(RenderHorizontalBar("Tax-Deferred", tb.TaxDeferredPercent, 100, 30, FormatPercent(tb.TaxDeferredPercent)) + "\n")
		b.WriteString(RenderHorizontalBar("Taxable     ", tb.TaxablePercent, 100, 30, FormatPercent(tb.TaxablePercent)) + "\n")
	}
	return b.String()
}

// RenderRecommendations renders the numbered action list.
func RenderRecommendations(recs []model.Recommendation) string {
	var b strings.Builder
	b.WriteString("  " + headerStyle.Render("Recommendations") + "\n")
	for i, rec := range recs {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, valueStyle.Bold(true).Render(rec.Title))
		fmt.Fprintf(&b, "     %s\n", mutedStyle.Render(rec.Detail))
		if rec.Action != "" {
			fmt.Fprintf(&b, "     %s\n", moneyStyle.Render("→ "+rec.Action))
		}
	}
	return b.String()
}

// RenderTotals renders the collector's running totals.
func RenderTotals(t model.RunningTotals) string {
	rows := [][]string{
		{"Total Assets", FormatCurrency(t.TotalAssets)},
		{"  Tax-Free", FormatCurrency(t.TaxFreeAssets)},
		{"  Tax-Deferred", FormatCurrency(t.TaxDeferredAssets)},
		{"  Taxable", FormatCurrency(t.TaxableAssets)},
		{"---"},
		{"Total Liabilities", FormatCurrency(t.TotalLiabilities)},
		{"  Mortgage", FormatCurrency(t.MortgageDebt)},
		{"  Credit Card", FormatCurrency(t.CreditCardDebt)},
		{"  Student Loans", FormatCurrency(t.StudentLoanDebt)},
		{"  Auto Loans", FormatCurrency(t.AutoLoanDebt)},
		{"  Personal Loans", FormatCurrency(t.PersonalLoanDebt)},
	}
	return RenderTable(Table{Title: "Running Totals", Headers: []string{"Category", "Amount"}, Rows: rows})
}
