package pipeline

import (
	"fmt"
	"time"

	"github.com/guardianshield/shieldplan/internal/model"
)

// Scoring thresholds and point values.
const (
	MinIdealAge           = 30
	MaxIdealAge           = 55
	IncomeThreshold       = 100000.0
	MinYearsToRetirement  = 10
	TaxFreeShareThreshold = 30.0
	RecommendScore        = 60
)

const (
	ageScore                = 25
	incomeScore             = 20
	horizonScore            = 20
	healthScore             = 20
	taxDiversificationScore = 15
	maxScore                = 100
)

// Factors are the only inputs the suitability score depends on.
type Factors struct {
	Age               int
	AnnualIncome      float64
	YearsToRetirement int
	Health            model.HealthStatus
	TaxFreePercent    float64
}

// ScoreFromFactors returns the additive 0..100 suitability score.
func ScoreFromFactors(f Factors) int {
	score := 0
	if f.Age >= MinIdealAge && f.Age <= MaxIdealAge {
		score += ageScore
	}
	if f.AnnualIncome >= IncomeThreshold {
		score += incomeScore
	}
	if f.YearsToRetirement >= MinYearsToRetirement {
		score += horizonScore
	}
	switch f.Health {
	case model.HealthExcellent, model.HealthGood:
		score += healthScore
	case model.HealthFair, model.HealthPoor:
	default:
		panic(fmt.Sprintf("pipeline: unhandled health status %q", f.Health))
	}
	if f.TaxFreePercent < TaxFreeShareThreshold {
		score += taxDiversificationScore
	}
	if score > maxScore {
		score = maxScore
	}
	return score
}

// FitFor labels a score band.
func FitFor(score int) model.Fit {
	switch {
	case score >= 80:
		return model.FitExcellent
	case score >= RecommendScore:
		return model.FitGood
	default:
		return model.FitFair
	}
}

// ComputeSuitability scores the profile for an IUL recommendation. Age is the
// calendar-year difference between now and the birth year.
func ComputeSuitability(p model.Profile, taxFreePercent float64, now time.Time) model.Suitability {
	age := p.AgeAt(now)
	years := p.RetirementAge - age

	score := ScoreFromFactors(Factors{
		Age:               age,
		AnnualIncome:      p.AnnualIncome,
		YearsToRetirement: years,
		Health:            p.HealthStatus,
		TaxFreePercent:    taxFreePercent,
	})

	return model.Suitability{
		Age:               age,
		YearsToRetirement: years,
		Score:             score,
		Recommend:         score >= RecommendScore && years >= MinYearsToRetirement,
		Fit:               FitFor(score),
	}
}
