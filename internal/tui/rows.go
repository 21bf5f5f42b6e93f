package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/guardianshield/shieldplan/internal/assessment"
	"github.com/guardianshield/shieldplan/internal/cli"
	"github.com/guardianshield/shieldplan/internal/model"
)

// Row menu actions. Edit and remove carry the row id after the colon.
const (
	actionAdd      = "add"
	actionContinue = "next"
	actionBack     = "back"
	actionEdit     = "edit:"
	actionRemove   = "remove:"
)

type assetValues struct {
	Type      string
	Title     string
	Value     string
	Treatment string // blank means the type's default
}

type liabilityValues struct {
	Type    string
	Balance string
	Rate    string
	Payment string
	Term    string
}

func assetValuesFrom(a model.Asset) assetValues {
	return assetValues{
		Type:      string(a.Type),
		Title:     a.Title,
		Value:     fmtAmount(a.Value),
		Treatment: string(a.TaxTreatment),
	}
}

func liabilityValuesFrom(l model.Liability) liabilityValues {
	v := liabilityValues{
		Type:    string(l.Type),
		Balance: fmtAmount(l.Balance),
		Rate:    fmtAmount(l.InterestRate),
		Payment: fmtAmount(l.MonthlyPayment),
	}
	if l.TermMonths != nil {
		v.Term = strconv.Itoa(*l.TermMonths)
	}
	return v
}

func assetLabel(a model.Asset) string {
	name := a.Type.Label()
	if a.Title != "" {
		name = a.Title + " (" + name + ")"
	}
	return fmt.Sprintf("%s  %s  %s", name, cli.FormatCurrency(a.Value), a.TaxTreatment.Label())
}

func liabilityLabel(l model.Liability) string {
	return fmt.Sprintf("%s  %s  %.2f%%", l.Type.Label(), cli.FormatCurrency(l.Balance), l.InterestRate)
}

// newRowMenu lists the rows of a collection section with edit and remove
// actions for each.
func newRowMenu(section assessment.Section, p model.Profile, choice *string) *huh.Form {
	var opts []huh.Option[string]
	noun := "asset"

	switch section {
	case assessment.SectionAssets:
		for _, a := range p.Assets {
			opts = append(opts, huh.NewOption("Edit   "+assetLabel(a), actionEdit+a.ID))
		}
		for _, a := range p.Assets {
			opts = append(opts, huh.NewOption("Remove "+assetLabel(a), actionRemove+a.ID))
		}
	case assessment.SectionLiabilities:
		noun = "liability"
		for _, l := range p.Liabilities {
			opts = append(opts, huh.NewOption("Edit   "+liabilityLabel(l), actionEdit+l.ID))
		}
		for _, l := range p.Liabilities {
			opts = append(opts, huh.NewOption("Remove "+liabilityLabel(l), actionRemove+l.ID))
		}
	default:
		return nil
	}

	opts = append([]huh.Option[string]{
		huh.NewOption("Add "+noun, actionAdd),
		huh.NewOption("Continue", actionContinue),
		huh.NewOption("Back", actionBack),
	}, opts...)

	*choice = actionAdd
	return huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(section.Info().Name).
			Description(section.Info().Description).
			Options(opts...).
			Value(choice),
	)).WithShowHelp(true)
}

func newAssetForm(v *assetValues) *huh.Form {
	typeOpts := make([]huh.Option[string], 0, len(model.AssetTypes))
	for _, t := range model.AssetTypes {
		typeOpts = append(typeOpts, huh.NewOption(t.Label(), string(t)))
	}
	treatOpts := []huh.Option[string]{huh.NewOption("Default for type", "")}
	for _, t := range model.TaxTreatments {
		treatOpts = append(treatOpts, huh.NewOption(t.Label(), string(t)))
	}

	return huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title("Asset type").Options(typeOpts...).Height(6).Value(&v.Type),
		huh.NewInput().Title("Description").Placeholder("optional").Value(&v.Title),
		huh.NewInput().Title("Current value").Placeholder("$0").Value(&v.Value).Validate(validateAmount),
		huh.NewSelect[string]().Title("Tax treatment").Options(treatOpts...).Value(&v.Treatment),
	).Title("Asset")).WithShowHelp(true)
}

func newLiabilityForm(v *liabilityValues) *huh.Form {
	typeOpts := make([]huh.Option[string], 0, len(model.LiabilityTypes))
	for _, t := range model.LiabilityTypes {
		typeOpts = append(typeOpts, huh.NewOption(t.Label(), string(t)))
	}

	return huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title("Liability type").Options(typeOpts...).Value(&v.Type),
		huh.NewInput().Title("Balance").Placeholder("$0").Value(&v.Balance).Validate(validateAmount),
		huh.NewInput().Title("Interest rate (%)").Value(&v.Rate).Validate(validateAmount),
		huh.NewInput().Title("Monthly payment").Placeholder("$0").Value(&v.Payment).Validate(validateAmount),
		huh.NewInput().Title("Term (months)").Placeholder("optional").Value(&v.Term).Validate(validateCount),
	).Title("Liability")).WithShowHelp(true)
}

// applyAsset adds a row when id is blank, then writes v into it. A new row
// that fails validation is removed again.
func applyAsset(w *assessment.Wizard, id string, v assetValues) error {
	value, err := parseAmount(v.Value)
	if err != nil {
		return fmt.Errorf("value: %w", err)
	}
	typ := model.AssetType(v.Type)
	treatment := model.TaxTreatment(v.Treatment)
	if treatment == "" {
		treatment = typ.DefaultTaxTreatment()
	}

	added := false
	if id == "" {
		if id, err = w.AddAsset(); err != nil {
			return err
		}
		added = true
	}
	err = w.UpdateAsset(id, func(a *model.Asset) {
		a.Type = typ
		a.Title = strings.TrimSpace(v.Title)
		a.Value = value
		a.TaxTreatment = treatment
	})
	if err != nil && added {
		w.RemoveAsset(id)
	}
	return err
}

// applyLiability mirrors applyAsset for debts.
func applyLiability(w *assessment.Wizard, id string, v liabilityValues) error {
	balance, err := parseAmount(v.Balance)
	if err != nil {
		return fmt.Errorf("balance: %w", err)
	}
	rate, err := parseAmount(v.Rate)
	if err != nil {
		return fmt.Errorf("interest rate: %w", err)
	}
	payment, err := parseAmount(v.Payment)
	if err != nil {
		return fmt.Errorf("monthly payment: %w", err)
	}
	var term *int
	if strings.TrimSpace(v.Term) != "" {
		n, err := parseCount(v.Term)
		if err != nil {
			return fmt.Errorf("term: %w", err)
		}
		term = &n
	}

	added := false
	if id == "" {
		if id, err = w.AddLiability(); err != nil {
			return err
		}
		added = true
	}
	err = w.UpdateLiability(id, func(l *model.Liability) {
		l.Type = model.LiabilityType(v.Type)
		l.Balance = balance
		l.InterestRate = rate
		l.MonthlyPayment = payment
		l.TermMonths = term
	})
	if err != nil && added {
		w.RemoveLiability(id)
	}
	return err
}
