package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxRules is a row of the tax_rules table. The four bracket column pairs are
// nullable; a missing ceiling marks the top bracket and a missing rate an unused one.
type TaxRules struct {
	TaxRulesID            string          `db:"tax_rules_id"`
	CompanyID             string          `db:"company_id"`
	Year                  int             `db:"year"`
	VatStandard           decimal.Decimal `db:"vat_standard"`
	VatReduced            decimal.Decimal `db:"vat_reduced"`
	VatZero               decimal.Decimal `db:"vat_zero"`
	GeneralTaxCredit      decimal.Decimal `db:"general_tax_credit"`
	EmploymentTaxCredit   decimal.Decimal `db:"employment_tax_credit"`
	SelfEmployedDeduction decimal.Decimal `db:"self_employed_deduction"`
	SmeExemptionPct       decimal.Decimal `db:"sme_exemption_pct"`
	FilingFrequency       string          `db:"filing_frequency"`
	Source                string          `db:"source"`
	RefreshedAt           *time.Time      `db:"refreshed_at"`

	// bracket1_ceiling .. bracket4_ceiling and bracket1_rate .. bracket4_rate
	BracketCeilings [4]*decimal.Decimal
	BracketRates    [4]*decimal.Decimal
	AuditFields
}

// IncomeTaxData is a row of the income_tax_data table.
type IncomeTaxData struct {
	CompanyID        string          `db:"company_id"`
	Year             int             `db:"year"`
	MaritalStatus    string          `db:"marital_status"`
	OtherIncome      decimal.Decimal `db:"other_income"`
	MortgageInterest decimal.Decimal `db:"mortgage_interest"`
	HealthcareCosts  decimal.Decimal `db:"healthcare_costs"`
	EducationCosts   decimal.Decimal `db:"education_costs"`
	OtherDeductions  decimal.Decimal `db:"other_deductions"`
	AuditFields
}

// VatPeriod is a row of the vat_periods table.
type VatPeriod struct {
	PeriodID  string    `db:"period_id"`
	CompanyID string    `db:"company_id"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	Status    string    `db:"status"`
	AuditFields
}
