// Package model defines domain types for shieldplan profiles and reports.
package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for DateOfBirth.
const DateLayout = "2006-01-02"

// Asset is one holding entered in the assets section.
type Asset struct {
	ID           string       `json:"id" validate:"required"`
	Title        string       `json:"title"`
	Type         AssetType    `json:"type" validate:"enum"`
	Value        float64      `json:"value" validate:"finite,gte=0"`
	TaxTreatment TaxTreatment `json:"taxTreatment" validate:"enum"`
}

// Liability is one debt entered in the liabilities section.
type Liability struct {
	ID             string        `json:"id" validate:"required"`
	Type           LiabilityType `json:"type" validate:"enum"`
	Balance        float64       `json:"balance" validate:"finite,gte=0"`
	InterestRate   float64       `json:"interestRate" validate:"finite,gte=0"`
	MonthlyPayment float64       `json:"monthlyPayment" validate:"finite,gte=0"`
	TermMonths     *int          `json:"term,omitempty" validate:"omitempty,gte=0"`
}

// Profile is the complete user-entered financial picture.
type Profile struct {
	// Profile & goals
	FirstName     string       `json:"firstName"`
	LastName      string       `json:"lastName"`
	Email         string       `json:"email"`
	DateOfBirth   string       `json:"dateOfBirth" validate:"omitempty,date"`
	State         string       `json:"state" validate:"omitempty,state"`
	FilingStatus  FilingStatus `json:"filingStatus" validate:"enum"`
	Dependents    int          `json:"dependents" validate:"gte=0"`
	RetirementAge int          `json:"retirementAge" validate:"gte=0"`
	PrimaryGoal   Goal         `json:"primaryGoal" validate:"enum"`

	// Income & expenses
	AnnualIncome    float64 `json:"annualIncome" validate:"finite,gte=0"`
	MonthlyExpenses float64 `json:"monthlyExpenses" validate:"finite,gte=0"`

	Assets      []Asset     `json:"assets" validate:"dive"`
	Liabilities []Liability `json:"liabilities" validate:"dive"`

	// Protection & health
	TermLifeDeathBenefit      float64      `json:"termLifeInsurance" validate:"finite,gte=0"`
	TermYearsRemaining        int          `json:"termYearsRemaining" validate:"gte=0"`
	PermanentLifeDeathBenefit float64      `json:"permanentLifeInsurance" validate:"finite,gte=0"`
	PermanentCashValue        float64      `json:"permanentCashValue" validate:"finite,gte=0"`
	EmergencyFundMonths       int          `json:"emergencyFundMonths" validate:"gte=0"`
	HealthStatus              HealthStatus `json:"healthStatus" validate:"enum"`
}

// NewProfile returns an empty profile carrying the collector's defaults.
func NewProfile() Profile {
	return Profile{
		FilingStatus:  FilingSingle,
		RetirementAge: 65,
		PrimaryGoal:   GoalRetirement,
		HealthStatus:  HealthGood,
		Assets:        []Asset{},
		Liabilities:   []Liability{},
	}
}

// FullName joins first and last name.
func (p Profile) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

// BirthYear returns the calendar year of DateOfBirth.
func (p Profile) BirthYear() (int, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(p.DateOfBirth))
	if err != nil {
		// Accept a bare year or a full timestamp; both appear in imported data.
		if y, yerr := strconv.Atoi(strings.TrimSpace(p.DateOfBirth)); yerr == nil && y > 0 {
			return y, nil
		}
		if ts, terr := time.Parse(time.RFC3339, strings.TrimSpace(p.DateOfBirth)); terr == nil {
			return ts.Year(), nil
		}
		return 0, fmt.Errorf("parsing date of birth %q: %w", p.DateOfBirth, err)
	}
	return d.Year(), nil
}

// AgeAt returns the age used by every derived figure: the calendar year of now
// minus the birth year. Birthdays later in the year are deliberately ignored.
func (p Profile) AgeAt(now time.Time) int {
	y, err := p.BirthYear()
	if err != nil {
		return 0
	}
	return now.Year() - y
}

// Clone returns a deep copy so callers can hand out snapshots safely.
func (p Profile) Clone() Profile {
	out := p
	out.Assets = append([]Asset(nil), p.Assets...)
	out.Liabilities = make([]Liability, len(p.Liabilities))
	for i, l := range p.Liabilities {
		if l.TermMonths != nil {
			term := *l.TermMonths
			l.TermMonths = &term
		}
		out.Liabilities[i] = l
	}
	if out.Assets == nil {
		out.Assets = []Asset{}
	}
	return out
}

// AssetByID returns the index of the asset with the given id, or -1.
func (p Profile) AssetByID(id string) int {
	for i, a := range p.Assets {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// LiabilityByID returns the index of the liability with the given id, or -1.
func (p Profile) LiabilityByID(id string) int {
	for i, l := range p.Liabilities {
		if l.ID == id {
			return i
		}
	}
	return -1
}
