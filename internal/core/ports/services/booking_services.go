package services

import (
	"context"

	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	"github.com/SscSPs/freelance_ledger/internal/dto"
)

// BookingReaderSvc defines read operations for bookings
type BookingReaderSvc interface {
	GetBooking(ctx context.Context, companyID, bookingID, userID string) (*domain.Booking, error)

	// ListBookings returns a page of bookings and the token of the next page.
	ListBookings(ctx context.Context, companyID string, limit int, nextToken *string, userID string) ([]domain.Booking, *string, error)
}

// BookingWriterSvc defines write operations for bookings
type BookingWriterSvc interface {
	// CreateBooking posts one manual double-entry booking.
	CreateBooking(ctx context.Context, companyID string, req dto.CreateBookingRequest, userID string) (*domain.Booking, error)

	// UpdateBooking changes a manual booking. Linked bookings fail with ErrLocked.
	UpdateBooking(ctx context.Context, companyID, bookingID string, req dto.UpdateBookingRequest, userID string) (*domain.Booking, error)

	// DeleteBooking removes a manual booking. Linked bookings fail with ErrLocked.
	DeleteBooking(ctx context.Context, companyID, bookingID, userID string) error
}

// BookingSvcFacade combines all booking service interfaces
type BookingSvcFacade interface {
	BookingReaderSvc
	BookingWriterSvc
}
