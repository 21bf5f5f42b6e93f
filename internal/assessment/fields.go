package assessment

import (
	"fmt"
	"math"
	"strings"

	"github.com/guardianshield/shieldplan/internal/model"
)

func (w *Wizard) set(fn func(p *model.Profile)) error {
	if w.submitted {
		return ErrSubmitted
	}
	fn(&w.profile)
	return nil
}

func (w *Wizard) SetFirstName(v string) error {
	return w.set(func(p *model.Profile) { p.FirstName = v })
}

func (w *Wizard) SetLastName(v string) error {
	return w.set(func(p *model.Profile) { p.LastName = v })
}

func (w *Wizard) SetEmail(v string) error {
	return w.set(func(p *model.Profile) { p.Email = v })
}

// SetDateOfBirth accepts YYYY-MM-DD.
func (w *Wizard) SetDateOfBirth(v string) error {
	if v = strings.TrimSpace(v); v != "" {
		if _, err := (model.Profile{DateOfBirth: v}).BirthYear(); err != nil {
			return err
		}
	}
	return w.set(func(p *model.Profile) { p.DateOfBirth = v })
}

func (w *Wizard) SetState(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code != "" && !model.ValidState(code) {
		return fmt.Errorf("unknown state %q", code)
	}
	return w.set(func(p *model.Profile) { p.State = code })
}

func (w *Wizard) SetFilingStatus(v model.FilingStatus) error {
	if !v.Valid() {
		return fmt.Errorf("unknown filing status %q", v)
	}
	return w.set(func(p *model.Profile) { p.FilingStatus = v })
}

func (w *Wizard) SetDependents(n int) error {
	if n < 0 {
		return fmt.Errorf("dependents must be non-negative, got %d", n)
	}
	return w.set(func(p *model.Profile) { p.Dependents = n })
}

func (w *Wizard) SetRetirementAge(age int) error {
	if age < 0 {
		return fmt.Errorf("retirement age must be non-negative, got %d", age)
	}
	return w.set(func(p *model.Profile) { p.RetirementAge = age })
}

func (w *Wizard) SetPrimaryGoal(g model.Goal) error {
	if !g.Valid() {
		return fmt.Errorf("unknown goal %q", g)
	}
	return w.set(func(p *model.Profile) { p.PrimaryGoal = g })
}

func (w *Wizard) SetAnnualIncome(v float64) error {
	if err := nonNegative("annual income", v); err != nil {
		return err
	}
	return w.set(func(p *model.Profile) { p.AnnualIncome = v })
}

func (w *Wizard) SetMonthlyExpenses(v float64) error {
	if err := nonNegative("monthly expenses", v); err != nil {
		return err
	}
	return w.set(func(p *model.Profile) { p.MonthlyExpenses = v })
}

func (w *Wizard) SetTermLife(deathBenefit float64, yearsRemaining int) error {
	if err := nonNegative("term death benefit", deathBenefit); err != nil {
		return err
	}
	if yearsRemaining < 0 {
		return fmt.Errorf("term years remaining must be non-negative, got %d", yearsRemaining)
	}
	return w.set(func(p *model.Profile) {
		p.TermLifeDeathBenefit = deathBenefit
		p.TermYearsRemaining = yearsRemaining
	})
}

func (w *Wizard) SetPermanentLife(deathBenefit, cashValue float64) error {
	if err := nonNegative("permanent death benefit", deathBenefit); err != nil {
		return err
	}
	if err := nonNegative("cash value", cashValue); err != nil {
		return err
	}
	return w.set(func(p *model.Profile) {
		p.PermanentLifeDeathBenefit = deathBenefit
		p.PermanentCashValue = cashValue
	})
}

func (w *Wizard) SetEmergencyFundMonths(n int) error {
	if n < 0 {
		return fmt.Errorf("emergency fund months must be non-negative, got %d", n)
	}
	return w.set(func(p *model.Profile) { p.EmergencyFundMonths = n })
}

func (w *Wizard) SetHealthStatus(h model.HealthStatus) error {
	if !h.Valid() {
		return fmt.Errorf("unknown health status %q", h)
	}
	return w.set(func(p *model.Profile) { p.HealthStatus = h })
}

func nonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be a finite amount, got %v", name, v)
	}
	if v < 0 {
		return fmt.Errorf("%s must be non-negative, got %v", name, v)
	}
	return nil
}
