// Package calc holds the standalone planning calculators. Each calculator is
// a pure function of its input; inputs are clamped to the ranges the
// interactive sliders allow before anything is computed.
package calc

import "math"

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func nonNeg(v float64) float64 {
	return math.Max(0, v)
}

// futureValue is the value of level monthly contributions after months at
// annualRate percent, compounded monthly.
func futureValue(monthly, annualRate float64, months int) float64 {
	r := annualRate / 100 / 12
	if r == 0 {
		return monthly * float64(months)
	}
	return monthly * ((math.Pow(1+r, float64(months)) - 1) / r)
}

// simulateMonthly compounds a balance month by month with a contribution
// added at each month end.
func simulateMonthly(contribution, annualRate float64, months int) float64 {
	r := annualRate / 100 / 12
	balance := 0.0
	for i := 0; i < months; i++ {
		balance = balance*(1+r) + contribution
	}
	return balance
}
