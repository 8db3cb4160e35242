package dto

import (
	"time"

	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBookingRequest defines the data needed to post a manual booking.
type CreateBookingRequest struct {
	Date            time.Time       `json:"date" binding:"required"`
	Description     string          `json:"description" binding:"required,max=500"`
	DebitAccountID  string          `json:"debitAccountID" binding:"required"`
	CreditAccountID string          `json:"creditAccountID" binding:"required"`
	Amount          decimal.Decimal `json:"amount"`
	VatCode         *string         `json:"vatCode"` // Optional: HOOG, LAAG, NUL
}

// UpdateBookingRequest defines the fields of a manual booking that may change.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateBookingRequest struct {
	Date        *time.Time       `json:"date"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
	Amount      *decimal.Decimal `json:"amount"`
	VatCode     *string          `json:"vatCode"`
}

// ListBookingsParams defines the query parameters for listing bookings.
type ListBookingsParams struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// BookingResponse defines the data returned for a booking.
type BookingResponse struct {
	BookingID       string                `json:"bookingID"`
	Date            time.Time             `json:"date"`
	Description     string                `json:"description"`
	DebitAccountID  string                `json:"debitAccountID"`
	CreditAccountID string                `json:"creditAccountID"`
	Amount          decimal.Decimal       `json:"amount"`
	VatCode         *domain.VatCode       `json:"vatCode,omitempty"`
	Source          *domain.BookingSource `json:"source,omitempty"`
	Locked          bool                  `json:"locked"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
}

// ListBookingsResponse wraps a page of bookings.
type ListBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToBookingResponse converts a domain.Booking to BookingResponse DTO.
func ToBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		BookingID:       b.BookingID,
		Date:            b.Date,
		Description:     b.Description,
		DebitAccountID:  b.DebitAccountID,
		CreditAccountID: b.CreditAccountID,
		Amount:          b.Amount,
		VatCode:         b.VatCode,
		Source:          b.Source,
		Locked:          b.IsLinked(),
		CreatedAt:       b.CreatedAt,
		CreatedBy:       b.CreatedBy,
	}
}

// ToBookingResponses converts a slice of domain.Booking.
func ToBookingResponses(bookings []domain.Booking) []BookingResponse {
	responses := make([]BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = ToBookingResponse(&bookings[i])
	}
	return responses
}
