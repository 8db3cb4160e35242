package domain

import "github.com/shopspring/decimal"

// MaritalStatus of the taxpayer.
type MaritalStatus string

const (
	Single  MaritalStatus = "single"
	Married MaritalStatus = "married"
)

// IncomeTaxData holds the personal adjustments of a (company, year).
type IncomeTaxData struct {
	CompanyID        string          `json:"companyID"`
	Year             int             `json:"year"`
	MaritalStatus    MaritalStatus   `json:"maritalStatus"`
	OtherIncome      decimal.Decimal `json:"otherIncome"`
	MortgageInterest decimal.Decimal `json:"mortgageInterest"`
	HealthcareCosts  decimal.Decimal `json:"healthcareCosts"`
	EducationCosts   decimal.Decimal `json:"educationCosts"`
	OtherDeductions  decimal.Decimal `json:"otherDeductions"`
	AuditFields
}

// BracketResult is the income and tax falling into one bracket.
type BracketResult struct {
	Ceiling *decimal.Decimal `json:"ceiling,omitempty"`
	Rate    decimal.Decimal  `json:"rate"`
	Amount  decimal.Decimal  `json:"amount"`
	Tax     decimal.Decimal  `json:"tax"`
}

// IncomeTaxResult is the full breakdown of the income-tax calculation.
type IncomeTaxResult struct {
	Year               int             `json:"year"`
	ProfitFromBusiness decimal.Decimal `json:"profitFromBusiness"`
	TotalIncome        decimal.Decimal `json:"totalIncome"`
	SmeExemption       decimal.Decimal `json:"smeExemption"`
	TotalDeductions    decimal.Decimal `json:"totalDeductions"`
	TaxableIncome      decimal.Decimal `json:"taxableIncome"`
	Brackets           []BracketResult `json:"brackets"`
	GrossTax           decimal.Decimal `json:"grossTax"`
	TaxCredits         decimal.Decimal `json:"taxCredits"`
	FinalTax           decimal.Decimal `json:"finalTax"`
}
