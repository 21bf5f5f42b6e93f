package model

// FilingStatus is the federal tax filing status.
type FilingStatus string

const (
	FilingSingle          FilingStatus = "single"
	FilingMarriedJoint    FilingStatus = "married"
	FilingMarriedSeparate FilingStatus = "married-separate"
	FilingHeadOfHousehold FilingStatus = "head"
)

// FilingStatuses lists every filing status in display order.
var FilingStatuses = []FilingStatus{FilingSingle, FilingMarriedJoint, FilingMarriedSeparate, FilingHeadOfHousehold}

// Valid reports whether f is a known filing status.
func (f FilingStatus) Valid() bool {
	switch f {
	case FilingSingle, FilingMarriedJoint, FilingMarriedSeparate, FilingHeadOfHousehold:
		return true
	}
	return false
}

// Label returns the human-readable name.
func (f FilingStatus) Label() string {
	switch f {
	case FilingSingle:
		return "Single"
	case FilingMarriedJoint:
		return "Married Filing Jointly"
	case FilingMarriedSeparate:
		return "Married Filing Separately"
	case FilingHeadOfHousehold:
		return "Head of Household"
	}
	return string(f)
}

// Goal is the client's primary financial goal.
type Goal string

const (
	GoalRetirement Goal = "retirement"
	GoalWealth     Goal = "wealth"
	GoalProtection Goal = "protection"
	GoalLegacy     Goal = "legacy"
	GoalBusiness   Goal = "business"
)

// Goals lists every goal in display order.
var Goals = []Goal{GoalRetirement, GoalWealth, GoalProtection, GoalLegacy, GoalBusiness}

// Valid reports whether g is a known goal.
func (g Goal) Valid() bool {
	switch g {
	case GoalRetirement, GoalWealth, GoalProtection, GoalLegacy, GoalBusiness:
		return true
	}
	return false
}

// Label returns the human-readable name.
func (g Goal) Label() string {
	switch g {
	case GoalRetirement:
		return "Tax-free retirement income"
	case GoalWealth:
		return "Wealth accumulation"
	case GoalProtection:
		return "Family protection"
	case GoalLegacy:
		return "Legacy/estate planning"
	case GoalBusiness:
		return "Business continuity"
	}
	return string(g)
}

// AssetType tags what kind of holding an asset is.
type AssetType string

const (
	AssetChecking    AssetType = "checking"
	AssetSavings     AssetType = "savings"
	AssetCD          AssetType = "cd"
	AssetMoneyMarket AssetType = "money-market"
	AssetStocks      AssetType = "stocks"
	AssetETFs        AssetType = "etfs"
	AssetMutualFunds AssetType = "mutual-funds"
	AssetBonds       AssetType = "bonds"
	Asset401k        AssetType = "401k"
	AssetIRA         AssetType = "ira"
	AssetRothIRA     AssetType = "roth-ira"
	AssetIUL         AssetType = "iul"
)

// AssetTypes lists every asset type in display order.
var AssetTypes = []AssetType{
	AssetChecking, AssetSavings, AssetCD, AssetMoneyMarket,
	AssetStocks, AssetETFs, AssetMutualFunds, AssetBonds,
	Asset401k, AssetIRA, AssetRothIRA, AssetIUL,
}

// Valid reports whether a is a known asset type.
func (a AssetType) Valid() bool {
	for _, known := range AssetTypes {
		if a == known {
			return true
		}
	}
	return false
}

// Label returns the human-readable name.
func (a AssetType) Label() string {
	switch a {
	case AssetChecking:
		return "Checking Account"
	case AssetSavings:
		return "Savings Account"
	case AssetCD:
		return "Certificate of Deposit"
	case AssetMoneyMarket:
		return "Money Market"
	case AssetStocks:
		return "Individual Stocks"
	case AssetETFs:
		return "ETFs"
	case AssetMutualFunds:
		return "Mutual Funds"
	case AssetBonds:
		return "Bonds"
	case Asset401k:
		return "401(k)"
	case AssetIRA:
		return "IRA"
	case AssetRothIRA:
		return "Roth IRA"
	case AssetIUL:
		return "IUL Policy"
	}
	return string(a)
}

// DefaultTaxTreatment suggests a treatment for a freshly added asset of this type.
func (a AssetType) DefaultTaxTreatment() TaxTreatment {
	switch a {
	case Asset401k, AssetIRA:
		return TaxDeferred
	case AssetRothIRA, AssetIUL:
		return TaxFree
	default:
		return Taxable
	}
}

// TaxTreatment classifies when an asset's growth is taxed.
type TaxTreatment string

const (
	Taxable     TaxTreatment = "taxable"
	TaxDeferred TaxTreatment = "tax-deferred"
	TaxFree     TaxTreatment = "tax-free"
)

// TaxTreatments lists every treatment in display order.
var TaxTreatments = []TaxTreatment{Taxable, TaxDeferred, TaxFree}

// Valid reports whether t is a known treatment.
func (t TaxTreatment) Valid() bool {
	switch t {
	case Taxable, TaxDeferred, TaxFree:
		return true
	}
	return false
}

// Label returns the human-readable name.
func (t TaxTreatment) Label() string {
	switch t {
	case Taxable:
		return "Taxable (Pay Now)"
	case TaxDeferred:
		return "Tax-Deferred (Pay Later)"
	case TaxFree:
		return "Tax-Free (Never Pay)"
	}
	return string(t)
}

// LiabilityType tags what kind of debt a liability is.
type LiabilityType string

const (
	LiabilityCreditCard   LiabilityType = "credit-card"
	LiabilityMortgage     LiabilityType = "mortgage"
	LiabilityStudentLoan  LiabilityType = "student-loan"
	LiabilityAutoLoan     LiabilityType = "auto-loan"
	LiabilityPersonalLoan LiabilityType = "personal-loan"
)

// LiabilityTypes lists every liability type in display order.
var LiabilityTypes = []LiabilityType{
	LiabilityCreditCard, LiabilityMortgage, LiabilityStudentLoan, LiabilityAutoLoan, LiabilityPersonalLoan,
}

// Valid reports whether l is a known liability type.
func (l LiabilityType) Valid() bool {
	switch l {
	case LiabilityCreditCard, LiabilityMortgage, LiabilityStudentLoan, LiabilityAutoLoan, LiabilityPersonalLoan:
		return true
	}
	return false
}

// Label returns the human-readable name.
func (l LiabilityType) Label() string {
	switch l {
	case LiabilityCreditCard:
		return "Credit Card (Consumer)"
	case LiabilityMortgage:
		return "Mortgage"
	case LiabilityStudentLoan:
		return "Student Loan"
	case LiabilityAutoLoan:
		return "Auto Loan"
	case LiabilityPersonalLoan:
		return "Personal Loan"
	}
	return string(l)
}

// HealthStatus is the self-reported health class.
type HealthStatus string

const (
	HealthExcellent HealthStatus = "excellent"
	HealthGood      HealthStatus = "good"
	HealthFair      HealthStatus = "fair"
	HealthPoor      HealthStatus = "poor"
)

// HealthStatuses lists every health status in display order.
var HealthStatuses = []HealthStatus{HealthExcellent, HealthGood, HealthFair, HealthPoor}

// Valid reports whether h is a known health status.
func (h HealthStatus) Valid() bool {
	switch h {
	case HealthExcellent, HealthGood, HealthFair, HealthPoor:
		return true
	}
	return false
}

// Label returns the human-readable name.
func (h HealthStatus) Label() string {
	switch h {
	case HealthExcellent:
		return "Excellent - No health issues"
	case HealthGood:
		return "Good - Minor manageable conditions"
	case HealthFair:
		return "Fair - Some health concerns"
	case HealthPoor:
		return "Poor - Significant health issues"
	}
	return string(h)
}

// States maps two-letter codes to state names for residence selection.
var States = []struct{ Code, Name string }{
	{"AL", "Alabama"}, {"AK", "Alaska"}, {"AZ", "Arizona"}, {"AR", "Arkansas"},
	{"CA", "California"}, {"CO", "Colorado"}, {"CT", "Connecticut"}, {"DE", "Delaware"},
	{"DC", "District of Columbia"}, {"FL", "Florida"}, {"GA", "Georgia"}, {"HI", "Hawaii"},
	{"ID", "Idaho"}, {"IL", "Illinois"}, {"IN", "Indiana"}, {"IA", "Iowa"},
	{"KS", "Kansas"}, {"KY", "Kentucky"}, {"LA", "Louisiana"}, {"ME", "Maine"},
	{"MD", "Maryland"}, {"MA", "Massachusetts"}, {"MI", "Michigan"}, {"MN", "Minnesota"},
	{"MS", "Mississippi"}, {"MO", "Missouri"}, {"MT", "Montana"}, {"NE", "Nebraska"},
	{"NV", "Nevada"}, {"NH", "New Hampshire"}, {"NJ", "New Jersey"}, {"NM", "New Mexico"},
	{"NY", "New York"}, {"NC", "North Carolina"}, {"ND", "North Dakota"}, {"OH", "Ohio"},
	{"OK", "Oklahoma"}, {"OR", "Oregon"}, {"PA", "Pennsylvania"}, {"RI", "Rhode Island"},
	{"SC", "South Carolina"}, {"SD", "South Dakota"}, {"TN", "Tennessee"}, {"TX", "Texas"},
	{"UT", "Utah"}, {"VT", "Vermont"}, {"VA", "Virginia"}, {"WA", "Washington"},
	{"WV", "West Virginia"}, {"WI", "Wisconsin"}, {"WY", "Wyoming"},
}

// ValidState reports whether code is a known state code.
func ValidState(code string) bool {
	for _, s := range States {
		if s.Code == code {
			return true
		}
	}
	return false
}
