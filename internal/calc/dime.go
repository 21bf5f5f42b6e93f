package calc

// DIMEInput drives the life insurance needs explorer.
type DIMEInput struct {
	AnnualIncome    float64 `json:"annual_income"`
	YearsOfIncome   int     `json:"years_of_income"`
	MortgageBalance float64 `json:"mortgage_balance"`
	CreditCardDebt  float64 `json:"credit_card_debt"`
	AutoLoans       float64 `json:"auto_loans"`
	StudentLoans    float64 `json:"student_loans"`
	OtherDebts      float64 `json:"other_debts"`
	Dependents      int     `json:"dependents"`
	CollegePerChild float64 `json:"college_per_child"`
	FinalExpenses   float64 `json:"final_expenses"`
}

// DefaultDIMEInput returns the explorer's starting values.
func DefaultDIMEInput() DIMEInput {
	return DIMEInput{
		AnnualIncome:    75000,
		YearsOfIncome:   10,
		MortgageBalance: 250000,
		CreditCardDebt:  15000,
		AutoLoans:       25000,
		StudentLoans:    30000,
		OtherDebts:      10000,
		Dependents:      2,
		CollegePerChild: 100000,
		FinalExpenses:   15000,
	}
}

// DIMEResult is the explorer's breakdown.
type DIMEResult struct {
	Input     DIMEInput `json:"input"`
	Debt      float64   `json:"debt"`
	Income    float64   `json:"income"`
	Mortgage  float64   `json:"mortgage"`
	Education float64   `json:"education"`
	Total     float64   `json:"total"`
}

// DIME computes the explorer's life insurance need. Final expenses are added
// to the education component here, unlike the assessment report.
func DIME(in DIMEInput) DIMEResult {
	in.YearsOfIncome = clampInt(in.YearsOfIncome, 5, 30)
	in.AnnualIncome = nonNeg(in.AnnualIncome)
	in.MortgageBalance = nonNeg(in.MortgageBalance)
	in.CreditCardDebt = nonNeg(in.CreditCardDebt)
	in.AutoLoans = nonNeg(in.AutoLoans)
	in.StudentLoans = nonNeg(in.StudentLoans)
	in.OtherDebts = nonNeg(in.OtherDebts)
	in.Dependents = clampInt(in.Dependents, 0, 20)
	in.CollegePerChild = nonNeg(in.CollegePerChild)
	in.FinalExpenses = nonNeg(in.FinalExpenses)

	r := DIMEResult{
		Input:     in,
		Debt:      in.CreditCardDebt + in.AutoLoans + in.StudentLoans + in.OtherDebts,
		Income:    in.AnnualIncome * float64(in.YearsOfIncome),
		Mortgage:  in.MortgageBalance,
		Education: float64(in.Dependents)*in.CollegePerChild + in.FinalExpenses,
	}
	r.Total = r.Debt + r.Income + r.Mortgage + r.Education
	return r
}
