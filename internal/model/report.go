package model

import "time"

// RunningTotals are the live sums shown while the collections are edited.
type RunningTotals struct {
	TotalAssets       float64 `json:"total_assets"`
	TaxFreeAssets     float64 `json:"tax_free_assets"`
	TaxDeferredAssets float64 `json:"tax_deferred_assets"`
	TaxableAssets     float64 `json:"taxable_assets"`
	TotalLiabilities  float64 `json:"total_liabilities"`
	MortgageDebt      float64 `json:"mortgage_debt"`
	CreditCardDebt    float64 `json:"credit_card_debt"`
	StudentLoanDebt   float64 `json:"student_loan_debt"`
	AutoLoanDebt      float64 `json:"auto_loan_debt"`
	PersonalLoanDebt  float64 `json:"personal_loan_debt"`
}

// InsuranceNeed is the DIME breakdown of life insurance need.
type InsuranceNeed struct {
	FinalExpenses     float64 `json:"final_expenses"`
	Debt              float64 `json:"debt"`
	IncomeReplacement float64 `json:"income_replacement"`
	Mortgage          float64 `json:"mortgage"`
	Education         float64 `json:"education"`
	Total             float64 `json:"total"`
}

// Coverage compares the DIME need against in-force death benefits.
type Coverage struct {
	Need            InsuranceNeed `json:"need"`
	CurrentCoverage float64       `json:"current_coverage"`
	Gap             float64       `json:"gap"`
}

// Covered reports whether in-force coverage meets the need.
func (c Coverage) Covered() bool { return c.Gap <= 0 }

// TaxBuckets is the allocation of assets across tax treatments.
type TaxBuckets struct {
	TaxFree            float64 `json:"tax_free"`
	TaxDeferred        float64 `json:"tax_deferred"`
	Taxable            float64 `json:"taxable"`
	TotalAssets        float64 `json:"total_assets"`
	TaxFreePercent     float64 `json:"tax_free_percent"`
	TaxDeferredPercent float64 `json:"tax_deferred_percent"`
	TaxablePercent     float64 `json:"taxable_percent"`
}

// Fit labels a suitability score band.
type Fit string

const (
	FitExcellent Fit = "Excellent"
	FitGood      Fit = "Good"
	FitFair      Fit = "Fair"
)

// Suitability is the IUL suitability assessment.
type Suitability struct {
	Age               int  `json:"age"`
	YearsToRetirement int  `json:"years_to_retirement"`
	Score             int  `json:"score"`
	Recommend         bool `json:"recommend"`
	Fit               Fit  `json:"fit"`
}

// EmergencyFund compares the held reserve with the recommended range.
type EmergencyFund struct {
	Months         int     `json:"months"`
	Current        float64 `json:"current"`
	RecommendedMin float64 `json:"recommended_min"`
	RecommendedMax float64 `json:"recommended_max"`
	Adequate       bool    `json:"adequate"`
}

// Recommendation is one actionable line of the report.
type Recommendation struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Action string `json:"action,omitempty"`
}

// Report is everything derived from a committed profile.
type Report struct {
	ClientName   string       `json:"client_name"`
	GeneratedAt  time.Time    `json:"generated_at"`
	PrimaryGoal  Goal         `json:"primary_goal"`
	FilingStatus FilingStatus `json:"filing_status"`
	State        string       `json:"state"`
	AnnualIncome float64      `json:"annual_income"`
	Dependents   int          `json:"dependents"`
	Retirement   int          `json:"retirement_age"`
	Health       HealthStatus `json:"health_status"`

	TermLife           float64 `json:"term_life"`
	TermYearsRemaining int     `json:"term_years_remaining"`
	PermanentLife      float64 `json:"permanent_life"`
	PermanentCashValue float64 `json:"permanent_cash_value"`

	Coverage      Coverage      `json:"coverage"`
	Buckets       TaxBuckets    `json:"buckets"`
	Suitability   Suitability   `json:"suitability"`
	EmergencyFund EmergencyFund `json:"emergency_fund"`

	TotalLiabilities float64 `json:"total_liabilities"`
	NetWorth         float64 `json:"net_worth"`

	// DiversificationOpportunity is set when under 30% of assets are tax-free.
	DiversificationOpportunity bool             `json:"diversification_opportunity"`
	Recommendations            []Recommendation `json:"recommendations"`
}
