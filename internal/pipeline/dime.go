package pipeline

import (
	"fmt"

	"github.com/guardianshield/shieldplan/internal/model"
)

// DIME constants.
const (
	FinalExpenses         = 20000.0
	IncomeMultiple        = 10.0
	EducationPerDependent = 100000.0
)

// ComputeDIME computes the DIME insurance need and the gap against in-force
// death benefits. The gap is clamped at zero.
func ComputeDIME(p model.Profile) model.Coverage {
	var mortgage, nonMortgage float64
	for _, l := range p.Liabilities {
		switch l.Type {
		case model.LiabilityMortgage:
			mortgage += l.Balance
		case model.LiabilityCreditCard, model.LiabilityStudentLoan,
			model.LiabilityAutoLoan, model.LiabilityPersonalLoan:
			nonMortgage += l.Balance
		default:
			panic(fmt.Sprintf("pipeline: unhandled liability type %q", l.Type))
		}
	}

	need := model.InsuranceNeed{
		FinalExpenses:     FinalExpenses,
		Debt:              nonMortgage + FinalExpenses,
		IncomeReplacement: p.AnnualIncome * IncomeMultiple,
		Mortgage:          mortgage,
		Education:         float64(p.Dependents) * EducationPerDependent,
	}
	need.Total = need.Debt + need.IncomeReplacement + need.Mortgage + need.Education

	current := p.TermLifeDeathBenefit + p.PermanentLifeDeathBenefit
	gap := need.Total - current
	if gap < 0 {
		gap = 0
	}

	return model.Coverage{
		Need:            need,
		CurrentCoverage: current,
		Gap:             gap,
	}
}
