package tui

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/guardianshield/shieldplan/internal/assessment"
	"github.com/guardianshield/shieldplan/internal/model"
)

// sectionValues holds every scalar profile field as text for huh bindings.
type sectionValues struct {
	FirstName     string
	LastName      string
	Email         string
	DateOfBirth   string
	State         string
	FilingStatus  string
	Dependents    string
	RetirementAge string
	PrimaryGoal   string

	AnnualIncome    string
	MonthlyExpenses string

	TermBenefit     string
	TermYears       string
	PermBenefit     string
	CashValue       string
	EmergencyMonths string
	Health          string
}

func valuesFrom(p model.Profile) sectionValues {
	return sectionValues{
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Email:         p.Email,
		DateOfBirth:   p.DateOfBirth,
		State:         p.State,
		FilingStatus:  string(p.FilingStatus),
		Dependents:    strconv.Itoa(p.Dependents),
		RetirementAge: strconv.Itoa(p.RetirementAge),
		PrimaryGoal:   string(p.PrimaryGoal),

		AnnualIncome:    fmtAmount(p.AnnualIncome),
		MonthlyExpenses: fmtAmount(p.MonthlyExpenses),

		TermBenefit:     fmtAmount(p.TermLifeDeathBenefit),
		TermYears:       strconv.Itoa(p.TermYearsRemaining),
		PermBenefit:     fmtAmount(p.PermanentLifeDeathBenefit),
		CashValue:       fmtAmount(p.PermanentCashValue),
		EmergencyMonths: strconv.Itoa(p.EmergencyFundMonths),
		Health:          string(p.HealthStatus),
	}
}

func fmtAmount(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseAmount accepts "$1,250.50" style input. Blank is zero.
func parseAmount(s string) (float64, error) {
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not an amount", s)
	}
	if v < 0 {
		return 0, errors.New("amount must not be negative")
	}
	return v, nil
}

func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	if n < 0 {
		return 0, errors.New("must not be negative")
	}
	return n, nil
}

func validateAmount(s string) error {
	_, err := parseAmount(s)
	return err
}

func validateCount(s string) error {
	_, err := parseCount(s)
	return err
}

func validateDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := model.Profile{DateOfBirth: strings.TrimSpace(s)}.BirthYear()
	if err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

// applySection writes one section's text values through the wizard setters.
func applySection(w *assessment.Wizard, section assessment.Section, v sectionValues) error {
	switch section {
	case assessment.SectionProfile:
		deps, err := parseCount(v.Dependents)
		if err != nil {
			return fmt.Errorf("dependents: %w", err)
		}
		retire, err := parseCount(v.RetirementAge)
		if err != nil {
			return fmt.Errorf("retirement age: %w", err)
		}
		return errors.Join(
			w.SetFirstName(strings.TrimSpace(v.FirstName)),
			w.SetLastName(strings.TrimSpace(v.LastName)),
			w.SetEmail(strings.TrimSpace(v.Email)),
			w.SetDateOfBirth(v.DateOfBirth),
			w.SetState(v.State),
			w.SetFilingStatus(model.FilingStatus(v.FilingStatus)),
			w.SetDependents(deps),
			w.SetRetirementAge(retire),
			w.SetPrimaryGoal(model.Goal(v.PrimaryGoal)),
		)

	case assessment.SectionIncome:
		income, err := parseAmount(v.AnnualIncome)
		if err != nil {
			return fmt.Errorf("annual income: %w", err)
		}
		expenses, err := parseAmount(v.MonthlyExpenses)
		if err != nil {
			return fmt.Errorf("monthly expenses: %w", err)
		}
		return errors.Join(w.SetAnnualIncome(income), w.SetMonthlyExpenses(expenses))

	case assessment.SectionProtection:
		term, err := parseAmount(v.TermBenefit)
		if err != nil {
			return fmt.Errorf("term death benefit: %w", err)
		}
		termYears, err := parseCount(v.TermYears)
		if err != nil {
			return fmt.Errorf("term years: %w", err)
		}
		perm, err := parseAmount(v.PermBenefit)
		if err != nil {
			return fmt.Errorf("permanent death benefit: %w", err)
		}
		cash, err := parseAmount(v.CashValue)
		if err != nil {
			return fmt.Errorf("cash value: %w", err)
		}
		months, err := parseCount(v.EmergencyMonths)
		if err != nil {
			return fmt.Errorf("emergency fund months: %w", err)
		}
		return errors.Join(
			w.SetTermLife(term, termYears),
			w.SetPermanentLife(perm, cash),
			w.SetEmergencyFundMonths(months),
			w.SetHealthStatus(model.HealthStatus(v.Health)),
		)
	}
	return nil
}

func stateOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(model.States))
	for _, s := range model.States {
		opts = append(opts, huh.NewOption(s.Name, s.Code))
	}
	return opts
}

func filingOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(model.FilingStatuses))
	for _, f := range model.FilingStatuses {
		opts = append(opts, huh.NewOption(f.Label(), string(f)))
	}
	return opts
}

func goalOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(model.Goals))
	for _, g := range model.Goals {
		opts = append(opts, huh.NewOption(g.Label(), string(g)))
	}
	return opts
}

func healthOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(model.HealthStatuses))
	for _, h := range model.HealthStatuses {
		opts = append(opts, huh.NewOption(h.Label(), string(h)))
	}
	return opts
}

// newSectionForm builds the form for a scalar section. The collection
// sections use the row menu instead.
func newSectionForm(section assessment.Section, v *sectionValues) *huh.Form {
	var groups []*huh.Group

	switch section {
	case assessment.SectionProfile:
		groups = []*huh.Group{
			huh.NewGroup(
				huh.NewInput().Title("First name").Value(&v.FirstName),
				huh.NewInput().Title("Last name").Value(&v.LastName),
				huh.NewInput().Title("Email").Value(&v.Email),
				huh.NewInput().Title("Date of birth").Placeholder("YYYY-MM-DD").
					Value(&v.DateOfBirth).Validate(validateDate),
				huh.NewSelect[string]().Title("State").
					Options(stateOptions()...).Height(8).Value(&v.State),
			).Title("Client information"),
			huh.NewGroup(
				huh.NewSelect[string]().Title("Filing status").
					Options(filingOptions()...).Value(&v.FilingStatus),
				huh.NewInput().Title("Dependents").Value(&v.Dependents).Validate(validateCount),
				huh.NewInput().Title("Target retirement age").Value(&v.RetirementAge).Validate(validateCount),
				huh.NewSelect[string]().Title("Primary goal").
					Options(goalOptions()...).Value(&v.PrimaryGoal),
			).Title("Goals"),
		}

	case assessment.SectionIncome:
		groups = []*huh.Group{
			huh.NewGroup(
				huh.NewInput().Title("Annual income").Placeholder("$0").
					Value(&v.AnnualIncome).Validate(validateAmount),
				huh.NewInput().Title("Monthly expenses").Placeholder("$0").
					Value(&v.MonthlyExpenses).Validate(validateAmount),
			).Title("Income & expenses"),
		}

	case assessment.SectionProtection:
		groups = []*huh.Group{
			huh.NewGroup(
				huh.NewInput().Title("Term life death benefit").Placeholder("$0").
					Value(&v.TermBenefit).Validate(validateAmount),
				huh.NewInput().Title("Term years remaining").Value(&v.TermYears).Validate(validateCount),
				huh.NewInput().Title("Permanent life death benefit").Placeholder("$0").
					Value(&v.PermBenefit).Validate(validateAmount),
				huh.NewInput().Title("Permanent cash value").Placeholder("$0").
					Value(&v.CashValue).Validate(validateAmount),
			).Title("Current coverage"),
			huh.NewGroup(
				huh.NewInput().Title("Emergency fund (months of expenses)").
					Value(&v.EmergencyMonths).Validate(validateCount),
				huh.NewSelect[string]().Title("Health status").
					Options(healthOptions()...).Value(&v.Health),
			).Title("Health"),
		}

	default:
		return nil
	}

	return huh.NewForm(groups...).WithShowHelp(true)
}
