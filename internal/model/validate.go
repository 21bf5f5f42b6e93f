package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidProfile is returned when a profile breaks a structural invariant.
var ErrInvalidProfile = errors.New("invalid profile")

// SectionCount is the number of wizard sections.
const SectionCount = 5

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		mustRegister(v, "enum", func(fl validator.FieldLevel) bool {
			e, ok := fl.Field().Interface().(interface{ Valid() bool })
			return ok && e.Valid()
		})
		mustRegister(v, "nonblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		mustRegister(v, "finite", func(fl validator.FieldLevel) bool {
			f := fl.Field().Float()
			return !math.IsNaN(f) && !math.IsInf(f, 0)
		})
		mustRegister(v, "date", func(fl validator.FieldLevel) bool {
			_, err := Profile{DateOfBirth: fl.Field().String()}.BirthYear()
			return err == nil
		})
		mustRegister(v, "state", func(fl validator.FieldLevel) bool {
			return ValidState(strings.TrimSpace(fl.Field().String()))
		})
		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("registering %s validation: %v", tag, err))
	}
}

// GateError lists the fields that keep a section from advancing.
type GateError struct {
	Section int
	Fields  []string
}

func (e *GateError) Error() string {
	return fmt.Sprintf("section %d incomplete: %s", e.Section, strings.Join(e.Fields, ", "))
}

type identityGate struct {
	FirstName   string `validate:"nonblank"`
	LastName    string `validate:"nonblank"`
	Email       string `validate:"nonblank"`
	DateOfBirth string `validate:"nonblank"`
	State       string `validate:"nonblank"`
}

type incomeGate struct {
	AnnualIncome float64 `validate:"finite,gt=0"`
}

// sectionView projects the fields a section's gate looks at. Sections without
// a gate return nil.
func sectionView(section int, p Profile) any {
	switch section {
	case 1:
		return identityGate{
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			Email:       p.Email,
			DateOfBirth: p.DateOfBirth,
			State:       p.State,
		}
	case 2:
		return incomeGate{AnnualIncome: p.AnnualIncome}
	}
	return nil
}

// CheckSection evaluates the gate for one wizard section. It returns nil or a
// *GateError naming every failing field.
func CheckSection(section int, p Profile) error {
	if section < 1 || section > SectionCount {
		return fmt.Errorf("section %d out of range", section)
	}
	view := sectionView(section, p)
	if view == nil {
		return nil
	}
	err := validatorInstance().Struct(view)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ge := &GateError{Section: section}
	for _, fe := range verrs {
		ge.Fields = append(ge.Fields, fe.Field())
	}
	return ge
}

// Complete reports whether every section gate passes.
func (p Profile) Complete() bool {
	for s := 1; s <= SectionCount; s++ {
		if CheckSection(s, p) != nil {
			return false
		}
	}
	return true
}

// Validate checks the structural invariants of a committed profile: enum
// membership, non-negative amounts, unique collection IDs and completeness.
// Errors wrap ErrInvalidProfile.
func (p Profile) Validate() error {
	if err := validatorInstance().Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Namespace())
			}
			return fmt.Errorf("%w: %s", ErrInvalidProfile, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	seen := make(map[string]struct{}, len(p.Assets))
	for _, a := range p.Assets {
		if _, dup := seen[a.ID]; dup {
			return fmt.Errorf("%w: duplicate asset id %q", ErrInvalidProfile, a.ID)
		}
		seen[a.ID] = struct{}{}
	}
	seen = make(map[string]struct{}, len(p.Liabilities))
	for _, l := range p.Liabilities {
		if _, dup := seen[l.ID]; dup {
			return fmt.Errorf("%w: duplicate liability id %q", ErrInvalidProfile, l.ID)
		}
		seen[l.ID] = struct{}{}
	}

	for s := 1; s <= SectionCount; s++ {
		if err := CheckSection(s, p); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
		}
	}
	return nil
}

// ValidateAt runs Validate and additionally requires the retirement age to be
// after the client's current age. The age check depends on the clock, so it is
// applied when a profile is committed and not when one is read back.
func (p Profile) ValidateAt(now time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if age := p.AgeAt(now); p.RetirementAge <= age {
		return fmt.Errorf("%w: retirement age %d is not after current age %d", ErrInvalidProfile, p.RetirementAge, age)
	}
	return nil
}

// Validate checks a single asset row.
func (a Asset) Validate() error {
	if err := validatorInstance().Struct(a); err != nil {
		return fmt.Errorf("%w: asset %s: %v", ErrInvalidProfile, a.ID, err)
	}
	return nil
}

// Validate checks a single liability row.
func (l Liability) Validate() error {
	if err := validatorInstance().Struct(l); err != nil {
		return fmt.Errorf("%w: liability %s: %v", ErrInvalidProfile, l.ID, err)
	}
	return nil
}
