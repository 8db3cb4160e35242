package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/freelance_ledger/internal/apperrors"
	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/freelance_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/freelance_ledger/internal/core/ports/services"
	"github.com/SscSPs/freelance_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// bookingSpec holds the inputs of a single posting.
type bookingSpec struct {
	companyID   string
	date        time.Time
	description string
	debit       string // account ID
	credit      string // account ID
	amount      decimal.Decimal
	vatCode     *domain.VatCode
	source      *domain.BookingSource
}

// newBooking validates one posting and stamps it. Every booking in the system,
// manual or generated, is built here.
func newBooking(spec bookingSpec, userID string, now time.Time) (domain.Booking, error) {
	if strings.TrimSpace(spec.description) == "" {
		return domain.Booking{}, fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}
	amount := spec.amount.Round(2)
	if !amount.IsPositive() {
		return domain.Booking{}, fmt.Errorf("%w: amount must be at least 0.01", apperrors.ErrValidation)
	}
	if spec.debit == "" || spec.credit == "" {
		return domain.Booking{}, fmt.Errorf("%w: debit and credit account are required", apperrors.ErrValidation)
	}
	if spec.debit == spec.credit {
		return domain.Booking{}, fmt.Errorf("%w: debit and credit account must differ", apperrors.ErrValidation)
	}
	return domain.Booking{
		BookingID:       uuid.NewString(),
		CompanyID:       spec.companyID,
		Date:            truncateDate(spec.date),
		Description:     strings.TrimSpace(spec.description),
		DebitAccountID:  spec.debit,
		CreditAccountID: spec.credit,
		Amount:          amount,
		VatCode:         spec.vatCode,
		Source:          spec.source,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}, nil
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// parseVatCode normalizes an optional code from a request. Unknown codes fall
// back to the standard rate.
func parseVatCode(raw *string) *domain.VatCode {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	code, _ := domain.NormalizeVatCode(*raw)
	return &code
}

// bookingService implements the BookingSvcFacade interface
type bookingService struct {
	BaseService
	bookingRepo portsrepo.BookingRepositoryFacade
	accountRepo portsrepo.LedgerAccountReader
}

// NewBookingService creates a new booking service
func NewBookingService(bookingRepo portsrepo.BookingRepositoryFacade, accountRepo portsrepo.LedgerAccountReader, options ...ServiceOption) portssvc.BookingSvcFacade {
	svc := &bookingService{bookingRepo: bookingRepo, accountRepo: accountRepo}
	svc.apply(options)
	return svc
}

var _ portssvc.BookingSvcFacade = (*bookingService)(nil)

// checkAccountsOwned makes sure both legs reference accounts of the company.
func (s *bookingService) checkAccountsOwned(ctx context.Context, companyID, debitID, creditID string) error {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, companyID, []string{debitID, creditID})
	if err != nil {
		s.LogError(ctx, err, "Failed to load booking accounts")
		return err
	}
	for _, id := range []string{debitID, creditID} {
		if _, ok := accounts[id]; !ok {
			return fmt.Errorf("%w: account %s does not belong to company %s", apperrors.ErrValidation, id, companyID)
		}
	}
	return nil
}

func (s *bookingService) CreateBooking(ctx context.Context, companyID string, req dto.CreateBookingRequest, userID string) (*domain.Booking, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}

	booking, err := newBooking(bookingSpec{
		companyID:   companyID,
		date:        req.Date,
		description: req.Description,
		debit:       req.DebitAccountID,
		credit:      req.CreditAccountID,
		amount:      req.Amount,
		vatCode:     parseVatCode(req.VatCode),
	}, userID, s.Now())
	if err != nil {
		return nil, err
	}
	if err := s.checkAccountsOwned(ctx, companyID, booking.DebitAccountID, booking.CreditAccountID); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.SaveBookings(ctx, []domain.Booking{booking}); err != nil {
		s.LogError(ctx, err, "Failed to save booking", slog.String("company_id", companyID))
		return nil, err
	}

	s.LogInfo(ctx, "Booking created",
		slog.String("booking_id", booking.BookingID),
		slog.String("amount", booking.Amount.String()))
	return &booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, companyID, bookingID, userID string) (*domain.Booking, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}
	booking, err := s.bookingRepo.FindBookingByID(ctx, companyID, bookingID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find booking", slog.String("booking_id", bookingID))
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, companyID string, limit int, nextToken *string, userID string) ([]domain.Booking, *string, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, nil, err
	}
	bookings, next, err := s.bookingRepo.ListBookings(ctx, companyID, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bookings", slog.String("company_id", companyID))
		return nil, nil, err
	}
	return bookings, next, nil
}

// findMutable loads a booking and rejects generated ones.
func (s *bookingService) findMutable(ctx context.Context, companyID, bookingID string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.FindBookingByID(ctx, companyID, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.IsLinked() {
		s.LogDebug(ctx, "Rejected mutation of linked booking",
			slog.String("booking_id", bookingID),
			slog.String("source_type", string(booking.Source.Type)))
		return nil, fmt.Errorf("%w: booking %s was generated from %s %s", apperrors.ErrLocked, bookingID, booking.Source.Type, booking.Source.ID)
	}
	return booking, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, companyID, bookingID string, req dto.UpdateBookingRequest, userID string) (*domain.Booking, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}
	current, err := s.findMutable(ctx, companyID, bookingID)
	if err != nil {
		return nil, err
	}

	spec := bookingSpec{
		companyID:   companyID,
		date:        current.Date,
		description: current.Description,
		debit:       current.DebitAccountID,
		credit:      current.CreditAccountID,
		amount:      current.Amount,
		vatCode:     current.VatCode,
	}
	if req.Date != nil {
		spec.date = *req.Date
	}
	if req.Description != nil {
		spec.description = *req.Description
	}
	if req.Amount != nil {
		spec.amount = *req.Amount
	}
	if req.VatCode != nil {
		spec.vatCode = parseVatCode(req.VatCode)
	}

	now := s.Now()
	updated, err := newBooking(spec, userID, now)
	if err != nil {
		return nil, err
	}
	updated.BookingID = current.BookingID
	updated.CreatedAt = current.CreatedAt
	updated.CreatedBy = current.CreatedBy

	if err := s.bookingRepo.UpdateBooking(ctx, updated); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Linked or removed between the read and the write.
			return nil, fmt.Errorf("%w: booking %s changed concurrently", apperrors.ErrLocked, bookingID)
		}
		s.LogError(ctx, err, "Failed to update booking", slog.String("booking_id", bookingID))
		return nil, err
	}

	s.LogInfo(ctx, "Booking updated", slog.String("booking_id", bookingID))
	return &updated, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, companyID, bookingID, userID string) error {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return err
	}
	if _, err := s.findMutable(ctx, companyID, bookingID); err != nil {
		return err
	}
	if err := s.bookingRepo.DeleteBooking(ctx, companyID, bookingID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: booking %s changed concurrently", apperrors.ErrLocked, bookingID)
		}
		s.LogError(ctx, err, "Failed to delete booking", slog.String("booking_id", bookingID))
		return err
	}
	s.LogInfo(ctx, "Booking deleted", slog.String("booking_id", bookingID))
	return nil
}
