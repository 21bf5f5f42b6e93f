package calc

// MaxLongevityYears bounds the depletion simulation.
const MaxLongevityYears = 50

// LongevityInput drives the savings longevity calculator.
type LongevityInput struct {
	CurrentSavings   float64 `json:"current_savings"`
	CurrentAge       int     `json:"current_age"`
	AnnualWithdrawal float64 `json:"annual_withdrawal"`
	ExpectedReturn   float64 `json:"expected_return"`
	Inflation        float64 `json:"inflation"`
}

// DefaultLongevityInput returns the calculator's starting values.
func DefaultLongevityInput() LongevityInput {
	return LongevityInput{
		CurrentSavings:   500000,
		CurrentAge:       65,
		AnnualWithdrawal: 40000,
		ExpectedReturn:   5,
		Inflation:        3,
	}
}

// LongevityResult reports how long savings last.
type LongevityResult struct {
	Input                LongevityInput `json:"input"`
	YearsRemaining       int            `json:"years_remaining"`
	DepletionAge         int            `json:"depletion_age"`
	WithdrawalRate       float64        `json:"withdrawal_rate"`
	SafeWithdrawalRate   float64        `json:"safe_withdrawal_rate"`
	SafeAnnualWithdrawal float64        `json:"safe_annual_withdrawal"`
	Shortfall            float64        `json:"shortfall"`
	YearsNeeded          int            `json:"years_needed"`
	AtRisk               bool           `json:"at_risk"`
}

// Longevity simulates yearly growth then an inflation-indexed withdrawal
// until the balance runs out or the horizon is reached.
func Longevity(in LongevityInput) LongevityResult {
	in.CurrentSavings = nonNeg(in.CurrentSavings)
	in.CurrentAge = clampInt(in.CurrentAge, 50, 80)
	in.AnnualWithdrawal = nonNeg(in.AnnualWithdrawal)
	in.ExpectedReturn = clamp(in.ExpectedReturn, 2, 10)
	in.Inflation = clamp(in.Inflation, 1, 5)

	balance := in.CurrentSavings
	withdrawal := in.AnnualWithdrawal
	years := 0
	for balance > 0 && years < MaxLongevityYears {
		balance = balance*(1+in.ExpectedReturn/100) - withdrawal
		withdrawal *= 1 + in.Inflation/100
		years++
	}

	r := LongevityResult{
		Input:                in,
		YearsRemaining:       years,
		DepletionAge:         in.CurrentAge + years,
		SafeWithdrawalRate:   SafeWithdrawalRate * 100,
		SafeAnnualWithdrawal: in.CurrentSavings * SafeWithdrawalRate,
		YearsNeeded:          LifeExpectancy - in.CurrentAge,
	}
	if in.CurrentSavings > 0 {
		r.WithdrawalRate = in.AnnualWithdrawal / in.CurrentSavings * 100
	}
	r.Shortfall = in.AnnualWithdrawal - r.SafeAnnualWithdrawal
	r.AtRisk = r.YearsRemaining < r.YearsNeeded
	return r
}
