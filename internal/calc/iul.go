package calc

// IUL crediting assumptions.
const (
	IULCap         = 12.0
	IULFloor       = 0.0
	IULCostLoad    = 0.05
	MarketCrashCut = 0.40
)

// IULInput drives the IUL versus 401(k) comparison.
type IULInput struct {
	Age                 int     `json:"age"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	YearsContributing   int     `json:"years_contributing"`
	MarketReturn        float64 `json:"market_return"`
	MarketVolatility    float64 `json:"market_volatility"`
}

// DefaultIULInput returns the comparison's starting values.
func DefaultIULInput() IULInput {
	return IULInput{
		Age:                 40,
		MonthlyContribution: 1000,
		YearsContributing:   20,
		MarketReturn:        8,
		MarketVolatility:    15,
	}
}

// IULResult compares account values at retirement.
type IULResult struct {
	Input            IULInput `json:"input"`
	TotalContributed float64  `json:"total_contributed"`
	Value401k        float64  `json:"value_401k"`
	ValueIUL         float64  `json:"value_iul"`
	WorstCase401k    float64  `json:"worst_case_401k"`
	WorstCaseIUL     float64  `json:"worst_case_iul"`
	RetirementAge    int      `json:"retirement_age"`
}

// IULComparison compounds the same contribution monthly in a 401(k) at the
// market return and in an IUL credited at the capped return after a cost
// load. The worst case applies a market crash to the 401(k) only, since the
// IUL floor protects credited value. Volatility is reported but does not
// change the projection.
func IULComparison(in IULInput) IULResult {
	in.Age = clampInt(in.Age, 25, 60)
	in.MonthlyContribution = nonNeg(in.MonthlyContribution)
	in.YearsContributing = clampInt(in.YearsContributing, 10, 40)
	in.MarketReturn = clamp(in.MarketReturn, 4, 12)
	in.MarketVolatility = clamp(in.MarketVolatility, 5, 30)

	months := in.YearsContributing * 12
	credited := in.MarketReturn
	if credited > IULCap {
		credited = IULCap
	}
	if credited < IULFloor {
		credited = IULFloor
	}

	r := IULResult{
		Input:            in,
		TotalContributed: in.MonthlyContribution * float64(months),
		Value401k:        simulateMonthly(in.MonthlyContribution, in.MarketReturn, months),
		ValueIUL:         simulateMonthly(in.MonthlyContribution*(1-IULCostLoad), credited, months),
		RetirementAge:    in.Age + in.YearsContributing,
	}
	r.WorstCase401k = r.Value401k * (1 - MarketCrashCut)
	r.WorstCaseIUL = r.ValueIUL
	return r
}

// IllustrationInput seeds the comparison from a client's age and horizon.
// Contributions default to 10% of annual income.
func IllustrationInput(age, yearsToRetirement int, annualIncome float64) IULInput {
	in := DefaultIULInput()
	in.Age = age
	in.YearsContributing = yearsToRetirement
	if annualIncome > 0 {
		in.MonthlyContribution = annualIncome * 0.10 / 12
	}
	return in
}
