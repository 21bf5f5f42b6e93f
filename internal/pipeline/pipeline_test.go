package pipeline

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/guardianshield/shieldplan/internal/model"
)

var testNow = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

func baseProfile() model.Profile {
	p := model.NewProfile()
	p.FirstName = "Dana"
	p.LastName = "Reyes"
	p.Email = "dana@example.com"
	p.DateOfBirth = "1985-06-01"
	p.State = "TX"
	return p
}

func TestComputeDIME_ScenarioA(t *testing.T) {
	p := baseProfile()
	p.AnnualIncome = 75000
	p.Dependents = 2
	p.Liabilities = []model.Liability{
		{ID: "m", Type: model.LiabilityMortgage, Balance: 250000},
		{ID: "c", Type: model.LiabilityCreditCard, Balance: 15000},
	}
	p.TermLifeDeathBenefit = 300000

	c := ComputeDIME(p)

	checks := []struct {
		name      string
		got, want float64
	}{
		{"Debt", c.Need.Debt, 35000},
		{"IncomeReplacement", c.Need.IncomeReplacement, 750000},
		{"Mortgage", c.Need.Mortgage, 250000},
		{"Education", c.Need.Education, 200000},
		{"Total", c.Need.Total, 1235000},
		{"CurrentCoverage", c.CurrentCoverage, 300000},
		{"Gap", c.Gap, 935000},
	}
	for _, ck := range checks {
		if ck.got != ck.want {
			t.Errorf("%s = %v, want %v", ck.name, ck.got, ck.want)
		}
	}
}

func TestComputeDIME_GapClampedAtZero(t *testing.T) {
	p := baseProfile()
	p.AnnualIncome = 50000
	p.TermLifeDeathBenefit = 400000
	p.PermanentLifeDeathBenefit = 500000

	c := ComputeDIME(p)
	if c.Gap != 0 {
		t.Fatalf("Gap = %v, want 0 (need %v, coverage %v)", c.Gap, c.Need.Total, c.CurrentCoverage)
	}
	if !c.Covered() {
		t.Fatal("Covered() = false, want true")
	}
}

func TestComputeBuckets_NoAssets(t *testing.T) {
	b := ComputeBuckets(nil)
	if b.TaxFreePercent != 0 || b.TaxDeferredPercent != 0 || b.TaxablePercent != 0 {
		t.Fatalf("percents = %v/%v/%v, want all 0", b.TaxFreePercent, b.TaxDeferredPercent, b.TaxablePercent)
	}
	if b.TotalAssets != 0 {
		t.Fatalf("TotalAssets = %v, want 0", b.TotalAssets)
	}
}

func TestComputeBuckets_Split(t *testing.T) {
	b := ComputeBuckets([]model.Asset{
		{ID: "1", Type: model.AssetRothIRA, Value: 10000, TaxTreatment: model.TaxFree},
		{ID: "2", Type: model.Asset401k, Value: 60000, TaxTreatment: model.TaxDeferred},
		{ID: "3", Type: model.AssetChecking, Value: 30000, TaxTreatment: model.Taxable},
	})
	if math.Abs(b.TaxFreePercent-10) > 1e-9 {
		t.Errorf("TaxFreePercent = %v, want 10", b.TaxFreePercent)
	}
	if math.Abs(b.TaxDeferredPercent-60) > 1e-9 {
		t.Errorf("TaxDeferredPercent = %v, want 60", b.TaxDeferredPercent)
	}
	if math.Abs(b.TaxablePercent-30) > 1e-9 {
		t.Errorf("TaxablePercent = %v, want 30", b.TaxablePercent)
	}
}

func TestComputeSuitability_ScenarioC(t *testing.T) {
	p := baseProfile()
	p.DateOfBirth = "1985-11-30"
	p.AnnualIncome = 120000
	p.RetirementAge = 65
	p.HealthStatus = model.HealthExcellent

	s := ComputeSuitability(p, 10, testNow)
	if s.Age != 40 {
		t.Fatalf("Age = %d, want 40", s.Age)
	}
	if s.YearsToRetirement != 25 {
		t.Fatalf("YearsToRetirement = %d, want 25", s.YearsToRetirement)
	}
	if s.Score != 100 {
		t.Fatalf("Score = %d, want 100", s.Score)
	}
	if !s.Recommend {
		t.Fatal("Recommend = false, want true")
	}
	if s.Fit != model.FitExcellent {
		t.Fatalf("Fit = %q, want %q", s.Fit, model.FitExcellent)
	}
}

func TestComputeSuitability_ScenarioD(t *testing.T) {
	p := baseProfile()
	p.DateOfBirth = "1967-02-14"
	p.AnnualIncome = 60000
	p.RetirementAge = 63
	p.HealthStatus = model.HealthExcellent

	s := ComputeSuitability(p, 0, testNow)
	if s.Age != 58 || s.YearsToRetirement != 5 {
		t.Fatalf("Age/Years = %d/%d, want 58/5", s.Age, s.YearsToRetirement)
	}
	// health 20 + tax-free 15
	if s.Score != 35 {
		t.Fatalf("Score = %d, want 35", s.Score)
	}
	if s.Recommend {
		t.Fatal("Recommend = true, want false")
	}
}

func TestRecommendRequiresHorizonEvenWithHighScore(t *testing.T) {
	// 25 + 20 + 20 + 15 = 80 without the horizon points.
	f := Factors{Age: 50, AnnualIncome: 200000, YearsToRetirement: 9, Health: model.HealthGood, TaxFreePercent: 0}
	if got := ScoreFromFactors(f); got != 80 {
		t.Fatalf("ScoreFromFactors = %d, want 80", got)
	}

	p := baseProfile()
	p.DateOfBirth = "1975-01-01"
	p.AnnualIncome = 200000
	p.RetirementAge = 59
	s := ComputeSuitability(p, 0, testNow)
	if s.Recommend {
		t.Fatalf("Recommend = true with %d years to retirement", s.YearsToRetirement)
	}
}

func TestAgeUsesCalendarYear(t *testing.T) {
	p := baseProfile()
	p.DateOfBirth = "1985-12-31"
	// Birthday not reached yet on March 1, but the calendar-year rule still says 40.
	if got := p.AgeAt(testNow); got != 40 {
		t.Fatalf("AgeAt = %d, want 40", got)
	}
}

func TestFitFor(t *testing.T) {
	tests := []struct {
		score int
		want  model.Fit
	}{
		{100, model.FitExcellent},
		{80, model.FitExcellent},
		{79, model.FitGood},
		{60, model.FitGood},
		{59, model.FitFair},
		{0, model.FitFair},
	}
	for _, tt := range tests {
		if got := FitFor(tt.score); got != tt.want {
			t.Errorf("FitFor(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func randomProfile(r *rand.Rand) model.Profile {
	p := baseProfile()
	p.DateOfBirth = time.Date(1940+r.Intn(70), time.Month(1+r.Intn(12)), 1+r.Intn(28), 0, 0, 0, 0, time.UTC).Format(model.DateLayout)
	p.RetirementAge = 40 + r.Intn(45)
	p.AnnualIncome = float64(r.Intn(400000))
	p.Dependents = r.Intn(6)
	p.HealthStatus = model.HealthStatuses[r.Intn(len(model.HealthStatuses))]
	p.TermLifeDeathBenefit = float64(r.Intn(3_000_000))
	p.PermanentLifeDeathBenefit = float64(r.Intn(1_000_000))
	p.MonthlyExpenses = float64(r.Intn(15000))
	p.EmergencyFundMonths = r.Intn(13)

	nAssets := r.Intn(8)
	for i := 0; i < nAssets; i++ {
		p.Assets = append(p.Assets, model.Asset{
			ID:           string(rune('a' + i)),
			Type:         model.AssetTypes[r.Intn(len(model.AssetTypes))],
			Value:        float64(r.Intn(500000)) + r.Float64(),
			TaxTreatment: model.TaxTreatments[r.Intn(len(model.TaxTreatments))],
		})
	}
	nLiabilities := r.Intn(6)
	for i := 0; i < nLiabilities; i++ {
		p.Liabilities = append(p.Liabilities, model.Liability{
			ID:      string(rune('a' + i)),
			Type:    model.LiabilityTypes[r.Intn(len(model.LiabilityTypes))],
			Balance: float64(r.Intn(400000)),
		})
	}
	return p
}

func TestDeriveProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		p := randomProfile(r)
		rep := Derive(p, testNow)

		if rep.Coverage.Gap < 0 {
			t.Fatalf("profile %d: Gap = %v, want >= 0", i, rep.Coverage.Gap)
		}
		if rep.Coverage.CurrentCoverage >= rep.Coverage.Need.Total && rep.Coverage.Gap != 0 {
			t.Fatalf("profile %d: Gap = %v with coverage above need", i, rep.Coverage.Gap)
		}

		b := rep.Buckets
		sum := b.TaxFreePercent + b.TaxDeferredPercent + b.TaxablePercent
		if b.TotalAssets > 0 && math.Abs(sum-100) > 1e-6 {
			t.Fatalf("profile %d: bucket percents sum to %v, want 100", i, sum)
		}
		if b.TotalAssets == 0 && sum != 0 {
			t.Fatalf("profile %d: bucket percents sum to %v with no assets", i, sum)
		}

		if s := rep.Suitability.Score; s < 0 || s > 100 {
			t.Fatalf("profile %d: Score = %d, out of [0,100]", i, s)
		}

		again := Derive(p, testNow)
		if !reflect.DeepEqual(rep, again) {
			t.Fatalf("profile %d: Derive not idempotent", i)
		}
	}
}

func TestDerive_ReportExtras(t *testing.T) {
	p := baseProfile()
	p.AnnualIncome = 90000
	p.MonthlyExpenses = 4000
	p.EmergencyFundMonths = 2
	p.Assets = []model.Asset{{ID: "a", Type: model.AssetSavings, Value: 50000, TaxTreatment: model.Taxable}}
	p.Liabilities = []model.Liability{{ID: "l", Type: model.LiabilityAutoLoan, Balance: 20000}}

	rep := Derive(p, testNow)

	if rep.ClientName != "Dana Reyes" {
		t.Errorf("ClientName = %q, want %q", rep.ClientName, "Dana Reyes")
	}
	if rep.NetWorth != 30000 {
		t.Errorf("NetWorth = %v, want 30000", rep.NetWorth)
	}
	if rep.EmergencyFund.Current != 8000 || rep.EmergencyFund.Adequate {
		t.Errorf("EmergencyFund = %+v, want current 8000 and inadequate", rep.EmergencyFund)
	}
	if !rep.DiversificationOpportunity {
		t.Error("DiversificationOpportunity = false, want true")
	}

	titles := make(map[string]bool)
	for _, rec := range rep.Recommendations {
		titles[rec.Title] = true
	}
	for _, want := range []string{"Protection Gap Identified", "Tax Diversification Opportunity", "Build Your Emergency Fund", "Book Strategy Session"} {
		if !titles[want] {
			t.Errorf("missing recommendation %q", want)
		}
	}
}

func TestTotals(t *testing.T) {
	p := baseProfile()
	p.Assets = []model.Asset{
		{ID: "1", Value: 100, TaxTreatment: model.TaxFree},
		{ID: "2", Value: 200, TaxTreatment: model.TaxDeferred},
		{ID: "3", Value: 300, TaxTreatment: model.Taxable},
	}
	p.Liabilities = []model.Liability{
		{ID: "1", Type: model.LiabilityMortgage, Balance: 1000},
		{ID: "2", Type: model.LiabilityCreditCard, Balance: 50},
		{ID: "3", Type: model.LiabilityStudentLoan, Balance: 70},
		{ID: "4", Type: model.LiabilityAutoLoan, Balance: 30},
	}

	got := Totals(p)
	want := model.RunningTotals{
		TotalAssets:       600,
		TaxFreeAssets:     100,
		TaxDeferredAssets: 200,
		TaxableAssets:     300,
		TotalLiabilities:  1150,
		MortgageDebt:      1000,
		CreditCardDebt:    50,
		StudentLoanDebt:   70,
		AutoLoanDebt:      30,
	}
	if got != want {
		t.Fatalf("Totals = %+v, want %+v", got, want)
	}
}
