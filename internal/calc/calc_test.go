package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDIMEDefaults(t *testing.T) {
	r := DIME(DefaultDIMEInput())
	assert.Equal(t, 80000.0, r.Debt)
	assert.Equal(t, 750000.0, r.Income)
	assert.Equal(t, 250000.0, r.Mortgage)
	assert.Equal(t, 215000.0, r.Education)
	assert.Equal(t, 1295000.0, r.Total)
}

func TestDIMEClampsYears(t *testing.T) {
	in := DefaultDIMEInput()
	in.YearsOfIncome = 99
	in.CreditCardDebt = -500
	r := DIME(in)
	assert.Equal(t, 30, r.Input.YearsOfIncome)
	assert.Equal(t, 75000.0*30, r.Income)
	assert.Equal(t, 65000.0, r.Debt)

	in.YearsOfIncome = 1
	assert.Equal(t, 5, DIME(in).Input.YearsOfIncome)
}

func TestTaxFreeEstimate(t *testing.T) {
	r := TaxFreeEstimate(DefaultTaxFreeInput())
	assert.Equal(t, 30, r.YearsToRetirement)
	assert.Equal(t, 6000.0, r.AnnualContribution)
	assert.Equal(t, 180000.0, r.TotalContributed)
	assert.Equal(t, r.TaxFreeValue, r.TaxDeferredValue)
	assert.Less(t, r.TaxableValue, r.TaxFreeValue)
	assert.InDelta(t, 609985, r.TaxFreeValue, 1)
	assert.InDelta(t, r.TaxFreeValue*0.04, r.TaxFreeIncome, 1e-6)
	assert.InDelta(t, r.TaxFreeValue*0.04*0.76, r.TaxDeferredIncome, 1e-6)
	assert.InDelta(t, (r.TaxFreeIncome-r.TaxDeferredIncome)*30, r.LifetimeTaxSavings, 1e-6)
}

func TestTaxFreeRetirementFloor(t *testing.T) {
	in := DefaultTaxFreeInput()
	in.CurrentAge = 60
	in.RetirementAge = 55
	r := TaxFreeEstimate(in)
	assert.Equal(t, 65, r.Input.RetirementAge)
	assert.Equal(t, 5, r.YearsToRetirement)
}

func TestFutureValueZeroRate(t *testing.T) {
	assert.Equal(t, 1200.0, futureValue(100, 0, 12))
	assert.Equal(t, 1200.0, simulateMonthly(100, 0, 12))
}

func TestAnnuity(t *testing.T) {
	r := Annuity(DefaultAnnuityInput())
	assert.Equal(t, 13750.0, r.AnnualIncome)
	assert.InDelta(t, 1145.83, r.MonthlyIncome, 0.01)
	assert.Equal(t, 20, r.YearsOfPayments)
	assert.Equal(t, 275000.0, r.TotalPayments)
	assert.InDelta(t, 18.18, r.BreakEvenYears, 0.01)
	assert.Equal(t, 84, r.BreakEvenAge)
	assert.InDelta(t, 13750*math.Pow(1.02, 10), r.InflationAdjustedIncome, 1e-6)
}

func TestAnnuityZeroPurchase(t *testing.T) {
	in := DefaultAnnuityInput()
	in.PurchaseAmount = 0
	r := Annuity(in)
	assert.Zero(t, r.BreakEvenYears)
	assert.Zero(t, r.BreakEvenAge)
}

func TestLongevity(t *testing.T) {
	r := Longevity(DefaultLongevityInput())
	assert.Equal(t, 8.0, r.WithdrawalRate)
	assert.Equal(t, 20000.0, r.SafeAnnualWithdrawal)
	assert.Equal(t, 20000.0, r.Shortfall)
	assert.Equal(t, 20, r.YearsNeeded)
	assert.Greater(t, r.YearsRemaining, 10)
	assert.Less(t, r.YearsRemaining, 20)
	assert.True(t, r.AtRisk)
	assert.Equal(t, 65+r.YearsRemaining, r.DepletionAge)
}

func TestLongevityHorizonCap(t *testing.T) {
	in := DefaultLongevityInput()
	in.AnnualWithdrawal = 0
	r := Longevity(in)
	assert.Equal(t, MaxLongevityYears, r.YearsRemaining)
	assert.False(t, r.AtRisk)
}

func TestLongevityNoSavings(t *testing.T) {
	in := DefaultLongevityInput()
	in.CurrentSavings = 0
	r := Longevity(in)
	assert.Zero(t, r.YearsRemaining)
	assert.Zero(t, r.WithdrawalRate)
}

func TestInflationStress(t *testing.T) {
	r := InflationStress(DefaultInflationInput())
	assert.InDelta(t, 50000*math.Pow(1.03, 25), r.FutureExpenses, 1e-6)
	assert.InDelta(t, (math.Pow(1.03, 25)-1)*100, r.PurchasingPowerLoss, 1e-9)
	assert.Equal(t, 3.0, r.RealReturn)

	var want float64
	for y := 1; y <= 25; y++ {
		want += 50000 * math.Pow(1.03, float64(y))
	}
	assert.InDelta(t, want, r.TotalNeeded, 1e-6)
	assert.InDelta(t, want-500000, r.Shortfall, 1e-6)
	assert.Greater(t, r.AdditionalNeeded, 0.0)
}

func TestInflationNoShortfall(t *testing.T) {
	in := DefaultInflationInput()
	in.CurrentSavings = 1e9
	assert.Zero(t, InflationStress(in).Shortfall)
}

func TestIULComparison(t *testing.T) {
	r := IULComparison(DefaultIULInput())
	assert.Equal(t, 60, r.RetirementAge)
	assert.Equal(t, 240000.0, r.TotalContributed)
	assert.Greater(t, r.Value401k, r.ValueIUL)
	assert.InDelta(t, r.Value401k*0.6, r.WorstCase401k, 1e-6)
	assert.Equal(t, r.ValueIUL, r.WorstCaseIUL)
}

func TestIULCapLimitsCrediting(t *testing.T) {
	in := DefaultIULInput()
	in.MarketReturn = 12
	atCap := IULComparison(in)
	in.MarketReturn = 40
	clamped := IULComparison(in)
	assert.Equal(t, 12.0, clamped.Input.MarketReturn)
	assert.Equal(t, atCap.ValueIUL, clamped.ValueIUL)
}

func TestIllustrationInputFromIncome(t *testing.T) {
	in := IllustrationInput(40, 25, 150000)
	assert.Equal(t, 40, in.Age)
	assert.Equal(t, 25, in.YearsContributing)
	assert.InDelta(t, 1250, in.MonthlyContribution, 1e-9)

	in = IllustrationInput(40, 25, 0)
	assert.Equal(t, DefaultIULInput().MonthlyContribution, in.MonthlyContribution)
}
