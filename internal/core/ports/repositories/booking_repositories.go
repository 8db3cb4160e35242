package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/freelance_ledger/internal/core/domain"
)

// BookingReader defines read operations for booking data
type BookingReader interface {
	// FindBookingByID retrieves a booking of a company.
	FindBookingByID(ctx context.Context, companyID, bookingID string) (*domain.Booking, error)

	// ListBookings retrieves bookings of a company newest first using token-based pagination.
	// It returns the bookings, a token for the next page, and an error.
	ListBookings(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Booking, *string, error)
}

// BookingWriter defines write operations for booking data
type BookingWriter interface {
	// SaveBookings persists all bookings in a single transaction.
	SaveBookings(ctx context.Context, bookings []domain.Booking) error

	// UpdateBooking overwrites the mutable fields of an unlinked booking.
	UpdateBooking(ctx context.Context, booking domain.Booking) error

	// DeleteBooking removes an unlinked booking.
	DeleteBooking(ctx context.Context, companyID, bookingID string) error
}

// BookingRepositoryFacade combines all booking repository interfaces
type BookingRepositoryFacade interface {
	BookingReader
	BookingWriter
}

// ReportingRepository reads the joined posting lines reports are replayed from.
type ReportingRepository interface {
	// ListPostingLines returns every booking of the company dated within [from, to]
	// joined with its debit and credit account. A zero from means no lower bound.
	ListPostingLines(ctx context.Context, companyID string, from, to time.Time) ([]domain.PostingLine, error)
}
