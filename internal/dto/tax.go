package dto

import (
	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertIncomeTaxDataRequest holds the personal adjustments for one year.
type UpsertIncomeTaxDataRequest struct {
	MaritalStatus    domain.MaritalStatus `json:"maritalStatus" binding:"omitempty,oneof=single married"`
	OtherIncome      decimal.Decimal      `json:"otherIncome"`
	MortgageInterest decimal.Decimal      `json:"mortgageInterest"`
	HealthcareCosts  decimal.Decimal      `json:"healthcareCosts"`
	EducationCosts   decimal.Decimal      `json:"educationCosts"`
	OtherDeductions  decimal.Decimal      `json:"otherDeductions"`
}

// YearParams selects a fiscal year; zero means the current year.
type YearParams struct {
	Year int `form:"year" binding:"omitempty,min=2000,max=2100"`
}

// VatSplitParams selects the amount to split and how. Amount is a decimal string.
type VatSplitParams struct {
	Amount    string `form:"amount" binding:"required"`
	VatCode   string `form:"vatCode"`
	Inclusive bool   `form:"inclusive"`
}

// VatSplitResponse is the net/VAT/gross breakdown of an amount.
type VatSplitResponse struct {
	VatCode domain.VatCode  `json:"vatCode"`
	Rate    decimal.Decimal `json:"rate"`
	Net     decimal.Decimal `json:"net"`
	Vat     decimal.Decimal `json:"vat"`
	Gross   decimal.Decimal `json:"gross"`
}
