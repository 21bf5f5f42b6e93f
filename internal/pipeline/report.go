package pipeline

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/guardianshield/shieldplan/internal/model"
)

// Emergency fund recommendation in months of expenses.
const (
	EmergencyMinMonths = 3
	EmergencyMaxMonths = 6
)

// Derive builds the full report for a committed profile. It holds no state;
// two calls with the same inputs return identical reports.
func Derive(p model.Profile, now time.Time) model.Report {
	coverage := ComputeDIME(p)
	buckets := ComputeBuckets(p.Assets)
	suit := ComputeSuitability(p, buckets.TaxFreePercent, now)
	totals := Totals(p)

	r := model.Report{
		ClientName:   p.FullName(),
		GeneratedAt:  now,
		PrimaryGoal:  p.PrimaryGoal,
		FilingStatus: p.FilingStatus,
		State:        p.State,
		AnnualIncome: p.AnnualIncome,
		Dependents:   p.Dependents,
		Retirement:   p.RetirementAge,
		Health:       p.HealthStatus,

		TermLife:           p.TermLifeDeathBenefit,
		TermYearsRemaining: p.TermYearsRemaining,
		PermanentLife:      p.PermanentLifeDeathBenefit,
		PermanentCashValue: p.PermanentCashValue,

		Coverage:      coverage,
		Buckets:       buckets,
		Suitability:   suit,
		EmergencyFund: emergencyFund(p),

		TotalLiabilities: totals.TotalLiabilities,
		NetWorth:         totals.TotalAssets - totals.TotalLiabilities,

		DiversificationOpportunity: buckets.TaxFreePercent < TaxFreeShareThreshold,
	}
	r.Recommendations = recommendations(r)
	return r
}

func emergencyFund(p model.Profile) model.EmergencyFund {
	return model.EmergencyFund{
		Months:         p.EmergencyFundMonths,
		Current:        float64(p.EmergencyFundMonths) * p.MonthlyExpenses,
		RecommendedMin: EmergencyMinMonths * p.MonthlyExpenses,
		RecommendedMax: EmergencyMaxMonths * p.MonthlyExpenses,
		Adequate:       p.EmergencyFundMonths >= EmergencyMinMonths,
	}
}

func recommendations(r model.Report) []model.Recommendation {
	var recs []model.Recommendation

	if r.Coverage.Gap > 0 {
		recs = append(recs, model.Recommendation{
			Title: "Protection Gap Identified",
			Detail: fmt.Sprintf("You have a $%s gap in life insurance coverage. "+
				"Consider increasing your protection to ensure your family's financial security.",
				humanize.Commaf(r.Coverage.Gap)),
			Action: "Get Term Quote Now",
		})
	}

	if r.DiversificationOpportunity {
		recs = append(recs, model.Recommendation{
			Title: "Tax Diversification Opportunity",
			Detail: fmt.Sprintf("Your tax-free bucket is only %.1f%%. "+
				"Increasing this allocation to 30-40%% could save you thousands in retirement taxes.",
				r.Buckets.TaxFreePercent),
		})
	}

	if !r.EmergencyFund.Adequate {
		recs = append(recs, model.Recommendation{
			Title: "Build Your Emergency Fund",
			Detail: fmt.Sprintf("You hold %d months of expenses. Recommended: %d-%d months ($%s to $%s).",
				r.EmergencyFund.Months, EmergencyMinMonths, EmergencyMaxMonths,
				humanize.Commaf(r.EmergencyFund.RecommendedMin), humanize.Commaf(r.EmergencyFund.RecommendedMax)),
		})
	}

	recs = append(recs, model.Recommendation{
		Title:  "Book Strategy Session",
		Detail: "Schedule a complimentary consultation with a licensed advisor to create your personalized financial strategy and implementation plan.",
		Action: "Book Strategy Session",
	})

	if r.Suitability.Recommend {
		recs = append(recs, model.Recommendation{
			Title: "Explore Infinite Banking with IUL",
			Detail: "Based on your assessment, you're a strong candidate for Indexed Universal Life insurance. " +
				"Learn how IUL can provide tax-free retirement income, downside protection, and lifetime wealth building.",
			Action: "Learn About IUL Banking",
		})
	}

	return recs
}
