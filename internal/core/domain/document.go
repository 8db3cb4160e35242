package domain

import "github.com/shopspring/decimal"

// DocumentSuggestion is the untrusted output of the OCR/categorisation collaborator.
type DocumentSuggestion struct {
	Category            string          `json:"category" validate:"required"`
	SuggestedLedgerCode string          `json:"suggestedLedgerCode" validate:"required,numeric,len=4"`
	ExtractedAmount     decimal.Decimal `json:"extractedAmount"`
	Vendor              string          `json:"vendor" validate:"required,max=200"`
	VatPercentage       decimal.Decimal `json:"vatPercentage"`
}

// DocumentBookingResult holds the postings created from a document.
type DocumentBookingResult struct {
	CostBooking Booking  `json:"costBooking"`
	VatBooking  *Booking `json:"vatBooking,omitempty"`
}
