package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FilingFrequency of the VAT return.
type FilingFrequency string

const (
	FilingMonthly   FilingFrequency = "monthly"
	FilingQuarterly FilingFrequency = "quarterly"
	FilingYearly    FilingFrequency = "yearly"
)

// MaxTaxBrackets is the number of progressive income-tax brackets.
const MaxTaxBrackets = 4

// TaxBracket is one progressive bracket. A nil Ceiling marks the open-ended top bracket.
type TaxBracket struct {
	Ceiling *decimal.Decimal `json:"ceiling,omitempty"`
	Rate    decimal.Decimal  `json:"rate"` // percentage, e.g. 37.48
}

// TaxRules are the statutory rates of one fiscal year for one company.
type TaxRules struct {
	TaxRulesID            string          `json:"taxRulesID"`
	CompanyID             string          `json:"companyID"`
	Year                  int             `json:"year"`
	VatStandard           decimal.Decimal `json:"vatStandard"`
	VatReduced            decimal.Decimal `json:"vatReduced"`
	VatZero               decimal.Decimal `json:"vatZero"`
	Brackets              []TaxBracket    `json:"brackets"`
	GeneralTaxCredit      decimal.Decimal `json:"generalTaxCredit"`
	EmploymentTaxCredit   decimal.Decimal `json:"employmentTaxCredit"`
	SelfEmployedDeduction decimal.Decimal `json:"selfEmployedDeduction"`
	SmeExemptionPct       decimal.Decimal `json:"smeExemptionPct"`
	FilingFrequency       FilingFrequency `json:"filingFrequency"`
	Source                string          `json:"source"` // "static" or "static+external"
	RefreshedAt           *time.Time      `json:"refreshedAt,omitempty"`
	AuditFields
}

// VatRate returns the rate (percentage) for a symbolic code.
func (r TaxRules) VatRate(code VatCode) decimal.Decimal {
	switch code {
	case VatLow:
		return r.VatReduced
	case VatZero:
		return r.VatZero
	default:
		return r.VatStandard
	}
}

// KnownVatRates lists the rates accepted from untrusted collaborators.
func (r TaxRules) KnownVatRates() []decimal.Decimal {
	return []decimal.Decimal{r.VatStandard, r.VatReduced, r.VatZero}
}

// TaxRulesData is a best-effort partial rule set returned by the external lookup.
// Nil fields were not provided.
type TaxRulesData struct {
	VatStandard           *decimal.Decimal   `json:"vatStandard,omitempty"`
	VatReduced            *decimal.Decimal   `json:"vatReduced,omitempty"`
	BracketCeilings       []*decimal.Decimal `json:"bracketCeilings,omitempty"`
	BracketRates          []*decimal.Decimal `json:"bracketRates,omitempty"`
	GeneralTaxCredit      *decimal.Decimal   `json:"generalTaxCredit,omitempty"`
	EmploymentTaxCredit   *decimal.Decimal   `json:"employmentTaxCredit,omitempty"`
	SelfEmployedDeduction *decimal.Decimal   `json:"selfEmployedDeduction,omitempty"`
	SmeExemptionPct       *decimal.Decimal   `json:"smeExemptionPct,omitempty"`
}
