// Package pipeline derives insurance need, tax-bucket allocation and IUL
// suitability from a committed profile. Every function is pure.
package pipeline

import (
	"fmt"

	"github.com/guardianshield/shieldplan/internal/model"
)

// Totals computes the running totals shown while assets and liabilities are
// being edited. It is recomputed on every call.
func Totals(p model.Profile) model.RunningTotals {
	var t model.RunningTotals

	for _, a := range p.Assets {
		t.TotalAssets += a.Value
		switch a.TaxTreatment {
		case model.TaxFree:
			t.TaxFreeAssets += a.Value
		case model.TaxDeferred:
			t.TaxDeferredAssets += a.Value
		case model.Taxable:
			t.TaxableAssets += a.Value
		default:
			panic(fmt.Sprintf("pipeline: unhandled tax treatment %q", a.TaxTreatment))
		}
	}

	for _, l := range p.Liabilities {
		t.TotalLiabilities += l.Balance
		switch l.Type {
		case model.LiabilityMortgage:
			t.MortgageDebt += l.Balance
		case model.LiabilityCreditCard:
			t.CreditCardDebt += l.Balance
		case model.LiabilityStudentLoan:
			t.StudentLoanDebt += l.Balance
		case model.LiabilityAutoLoan:
			t.AutoLoanDebt += l.Balance
		case model.LiabilityPersonalLoan:
			t.PersonalLoanDebt += l.Balance
		default:
			panic(fmt.Sprintf("pipeline: unhandled liability type %q", l.Type))
		}
	}

	return t
}
