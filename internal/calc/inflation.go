package calc

import "math"

// HighInflationRate is the stress scenario's inflation.
const HighInflationRate = 5.0

// InflationInput drives the inflation stress test.
type InflationInput struct {
	CurrentSavings    float64 `json:"current_savings"`
	YearsInRetirement int     `json:"years_in_retirement"`
	AnnualExpenses    float64 `json:"annual_expenses"`
	Inflation         float64 `json:"inflation"`
	PortfolioReturn   float64 `json:"portfolio_return"`
}

// DefaultInflationInput returns the stress test's starting values.
func DefaultInflationInput() InflationInput {
	return InflationInput{
		CurrentSavings:    500000,
		YearsInRetirement: 25,
		AnnualExpenses:    50000,
		Inflation:         3,
		PortfolioReturn:   6,
	}
}

// InflationResult compares expected and high-inflation retirement costs.
type InflationResult struct {
	Input                 InflationInput `json:"input"`
	FutureExpenses        float64        `json:"future_expenses"`
	PurchasingPowerLoss   float64        `json:"purchasing_power_loss"`
	TotalNeeded           float64        `json:"total_needed"`
	Shortfall             float64        `json:"shortfall"`
	RealReturn            float64        `json:"real_return"`
	HighInflationExpenses float64        `json:"high_inflation_expenses"`
	HighInflationTotal    float64        `json:"high_inflation_total"`
	AdditionalNeeded      float64        `json:"additional_needed"`
}

// InflationStress totals inflated expenses over retirement and compares them
// with savings and with a 5% inflation scenario.
func InflationStress(in InflationInput) InflationResult {
	in.CurrentSavings = nonNeg(in.CurrentSavings)
	in.YearsInRetirement = clampInt(in.YearsInRetirement, 10, 40)
	in.AnnualExpenses = nonNeg(in.AnnualExpenses)
	in.Inflation = clamp(in.Inflation, 1, 6)
	in.PortfolioReturn = clamp(in.PortfolioReturn, 3, 10)

	growth := 1 + in.Inflation/100
	years := float64(in.YearsInRetirement)

	r := InflationResult{
		Input:          in,
		FutureExpenses: in.AnnualExpenses * math.Pow(growth, years),
		RealReturn:     in.PortfolioReturn - in.Inflation,
	}
	if in.AnnualExpenses > 0 {
		r.PurchasingPowerLoss = (r.FutureExpenses - in.AnnualExpenses) / in.AnnualExpenses * 100
	}
	for year := 1; year <= in.YearsInRetirement; year++ {
		r.TotalNeeded += in.AnnualExpenses * math.Pow(growth, float64(year))
	}
	r.Shortfall = math.Max(0, r.TotalNeeded-in.CurrentSavings)

	high := 1 + HighInflationRate/100
	r.HighInflationExpenses = in.AnnualExpenses * math.Pow(high, years)
	r.HighInflationTotal = in.AnnualExpenses * ((math.Pow(high, years) - 1) / (HighInflationRate / 100)) * high
	r.AdditionalNeeded = r.HighInflationTotal - r.TotalNeeded
	return r
}
