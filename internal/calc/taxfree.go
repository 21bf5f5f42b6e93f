package calc

// Withdrawal and horizon assumptions for the tax bucket estimator.
const (
	SafeWithdrawalRate = 0.04
	RetirementYears    = 30
)

// TaxFreeInput drives the tax-free retirement estimator.
type TaxFreeInput struct {
	CurrentAge          int     `json:"current_age"`
	RetirementAge       int     `json:"retirement_age"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	TaxBracket          float64 `json:"tax_bracket"`
	ExpectedReturn      float64 `json:"expected_return"`
}

// DefaultTaxFreeInput returns the estimator's starting values.
func DefaultTaxFreeInput() TaxFreeInput {
	return TaxFreeInput{
		CurrentAge:          35,
		RetirementAge:       65,
		MonthlyContribution: 500,
		TaxBracket:          24,
		ExpectedReturn:      7,
	}
}

// TaxFreeResult compares the three tax buckets at retirement.
type TaxFreeResult struct {
	Input              TaxFreeInput `json:"input"`
	YearsToRetirement  int          `json:"years_to_retirement"`
	AnnualContribution float64      `json:"annual_contribution"`
	TotalContributed   float64      `json:"total_contributed"`
	TaxFreeValue       float64      `json:"tax_free_value"`
	TaxDeferredValue   float64      `json:"tax_deferred_value"`
	TaxableValue       float64      `json:"taxable_value"`
	TaxFreeIncome      float64      `json:"tax_free_income"`
	TaxDeferredIncome  float64      `json:"tax_deferred_income"`
	TaxableIncome      float64      `json:"taxable_income"`
	LifetimeTaxSavings float64      `json:"lifetime_tax_savings"`
}

// TaxFreeEstimate projects the same monthly contribution into tax-free,
// tax-deferred and taxable accounts. Taxable growth is dragged by the bracket
// every year; its withdrawals are taxed at half the bracket as capital gains.
func TaxFreeEstimate(in TaxFreeInput) TaxFreeResult {
	in.CurrentAge = clampInt(in.CurrentAge, 18, 70)
	in.RetirementAge = clampInt(in.RetirementAge, in.CurrentAge+5, 80)
	in.MonthlyContribution = nonNeg(in.MonthlyContribution)
	in.TaxBracket = clamp(in.TaxBracket, 10, 37)
	in.ExpectedReturn = clamp(in.ExpectedReturn, 3, 12)

	years := in.RetirementAge - in.CurrentAge
	months := years * 12
	bracket := in.TaxBracket / 100

	r := TaxFreeResult{
		Input:              in,
		YearsToRetirement:  years,
		AnnualContribution: in.MonthlyContribution * 12,
		TotalContributed:   in.MonthlyContribution * float64(months),
		TaxFreeValue:       futureValue(in.MonthlyContribution, in.ExpectedReturn, months),
		TaxDeferredValue:   futureValue(in.MonthlyContribution, in.ExpectedReturn, months),
		TaxableValue:       futureValue(in.MonthlyContribution, in.ExpectedReturn*(1-bracket), months),
	}
	r.TaxFreeIncome = r.TaxFreeValue * SafeWithdrawalRate
	r.TaxDeferredIncome = r.TaxDeferredValue * SafeWithdrawalRate * (1 - bracket)
	r.TaxableIncome = r.TaxableValue * SafeWithdrawalRate * (1 - bracket*0.5)
	r.LifetimeTaxSavings = (r.TaxFreeIncome - r.TaxDeferredIncome) * RetirementYears
	return r
}
