// Package assessment implements the five-section profile collector. Sections
// advance only when their gate passes; the last transition commits the
// profile to a store exactly once.
package assessment

import "github.com/guardianshield/shieldplan/internal/model"

// Section is a 1-based wizard section number.
type Section int

const (
	SectionProfile Section = iota + 1
	SectionIncome
	SectionAssets
	SectionLiabilities
	SectionProtection
)

// SectionInfo describes a section for rendering.
type SectionInfo struct {
	Number      Section `json:"number"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
}

// Sections lists every section in order.
var Sections = []SectionInfo{
	{SectionProfile, "Profile & Goals", "Client information and retirement goals"},
	{SectionIncome, "Income & Expenses", "Annual income and monthly expenses"},
	{SectionAssets, "Assets", "All investments and holdings"},
	{SectionLiabilities, "Liabilities", "Debts and obligations"},
	{SectionProtection, "Protection & Health", "Current coverage and health status"},
}

// Info returns the descriptor for s.
func (s Section) Info() SectionInfo {
	if s < SectionProfile || int(s) > model.SectionCount {
		return SectionInfo{Number: s}
	}
	return Sections[s-1]
}

func (s Section) String() string { return s.Info().Name }
