package dto

import "github.com/SscSPs/freelance_ledger/internal/core/domain"

// ProcessDocumentRequest carries the OCR suggestion and the account the expense was paid from.
type ProcessDocumentRequest struct {
	Suggestion         domain.DocumentSuggestion `json:"suggestion"`
	PaymentAccountCode string                    `json:"paymentAccountCode" binding:"omitempty,numeric,max=10"`
}

// ProcessDocumentResponse returns the generated postings.
type ProcessDocumentResponse struct {
	CostBooking BookingResponse  `json:"costBooking"`
	VatBooking  *BookingResponse `json:"vatBooking,omitempty"`
}

// ToProcessDocumentResponse converts a domain.DocumentBookingResult.
func ToProcessDocumentResponse(res *domain.DocumentBookingResult) ProcessDocumentResponse {
	resp := ProcessDocumentResponse{CostBooking: ToBookingResponse(&res.CostBooking)}
	if res.VatBooking != nil {
		vat := ToBookingResponse(res.VatBooking)
		resp.VatBooking = &vat
	}
	return resp
}
