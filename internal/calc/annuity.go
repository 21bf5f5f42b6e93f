package calc

import "math"

// LifeExpectancy is the planning horizon used by the income calculators.
const LifeExpectancy = 85

// AnnuityInput drives the annuity income calculator.
type AnnuityInput struct {
	PurchaseAmount float64 `json:"purchase_amount"`
	Age            int     `json:"age"`
	PayoutRate     float64 `json:"payout_rate"`
	Inflation      float64 `json:"inflation"`
}

// DefaultAnnuityInput returns the calculator's starting values.
func DefaultAnnuityInput() AnnuityInput {
	return AnnuityInput{PurchaseAmount: 250000, Age: 65, PayoutRate: 5.5, Inflation: 2}
}

// AnnuityResult is the projected income stream.
type AnnuityResult struct {
	Input                   AnnuityInput `json:"input"`
	AnnualIncome            float64      `json:"annual_income"`
	MonthlyIncome           float64      `json:"monthly_income"`
	YearsOfPayments         int          `json:"years_of_payments"`
	TotalPayments           float64      `json:"total_payments"`
	InflationAdjustedIncome float64      `json:"inflation_adjusted_income"`
	BreakEvenYears          float64      `json:"break_even_years"`
	BreakEvenAge            int          `json:"break_even_age"`
}

// Annuity projects a single-premium immediate annuity to age 85.
func Annuity(in AnnuityInput) AnnuityResult {
	in.PurchaseAmount = nonNeg(in.PurchaseAmount)
	in.Age = clampInt(in.Age, 50, 80)
	in.PayoutRate = clamp(in.PayoutRate, 3, 8)
	in.Inflation = clamp(in.Inflation, 0, 3)

	annual := in.PurchaseAmount * in.PayoutRate / 100
	years := LifeExpectancy - in.Age

	r := AnnuityResult{
		Input:                   in,
		AnnualIncome:            annual,
		MonthlyIncome:           annual / 12,
		YearsOfPayments:         years,
		TotalPayments:           annual * float64(years),
		InflationAdjustedIncome: annual * math.Pow(1+in.Inflation/100, 10),
	}
	if annual > 0 {
		r.BreakEvenYears = in.PurchaseAmount / annual
		r.BreakEvenAge = int(math.Ceil(float64(in.Age) + r.BreakEvenYears))
	}
	return r
}
