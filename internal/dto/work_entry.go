package dto

import (
	"time"

	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTimeEntryRequest records billable hours.
type CreateTimeEntryRequest struct {
	Date        time.Time       `json:"date" binding:"required"`
	Description string          `json:"description" binding:"required,max=500"`
	Hours       decimal.Decimal `json:"hours"`
	HourlyRate  decimal.Decimal `json:"hourlyRate"`
}

// UpdateTimeEntryRequest changes an uninvoiced time entry.
type UpdateTimeEntryRequest struct {
	Date        *time.Time       `json:"date"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
	Hours       *decimal.Decimal `json:"hours"`
	HourlyRate  *decimal.Decimal `json:"hourlyRate"`
}

// CreateMileageEntryRequest records business travel.
type CreateMileageEntryRequest struct {
	Date        time.Time       `json:"date" binding:"required"`
	Description string          `json:"description" binding:"required,max=500"`
	Kilometers  decimal.Decimal `json:"kilometers"`
	RatePerKm   decimal.Decimal `json:"ratePerKm"`
}

// ListTimeEntriesParams filters the time entry listing.
type ListTimeEntriesParams struct {
	UninvoicedOnly bool `form:"uninvoiced"`
}

// ListTimeEntriesResponse wraps time entries.
type ListTimeEntriesResponse struct {
	Entries []domain.TimeEntry `json:"entries"`
}

// ListMileageEntriesResponse wraps mileage entries.
type ListMileageEntriesResponse struct {
	Entries []domain.MileageEntry `json:"entries"`
}

// BookMileageResponse returns the booked entry and the generated booking.
type BookMileageResponse struct {
	Entry   domain.MileageEntry `json:"entry"`
	Booking BookingResponse     `json:"booking"`
}
