package dto

import "github.com/SscSPs/freelance_ledger/internal/core/domain"

// UpdateVatPeriodStatusRequest moves a VAT period to ready or filed.
type UpdateVatPeriodStatusRequest struct {
	Status domain.VatPeriodStatus `json:"status" binding:"required,oneof=open ready filed"`
}

// ListVatPeriodsResponse wraps the VAT periods of a company.
type ListVatPeriodsResponse struct {
	Periods []domain.VatPeriod `json:"periods"`
}
