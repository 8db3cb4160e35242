package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/freelance_ledger/internal/apperrors"
	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/freelance_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/freelance_ledger/internal/core/ports/services"
	"github.com/SscSPs/freelance_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// defaultRatePerKm applies when a mileage entry is recorded without a rate.
var defaultRatePerKm = decimal.RequireFromString("0.23")

// workEntryService implements the WorkEntrySvcFacade interface
type workEntryService struct {
	BaseService
	workRepo portsrepo.WorkEntryRepository
	accounts portssvc.LedgerAccountEnsurerSvc
}

// NewWorkEntryService creates a new time and mileage entry service
func NewWorkEntryService(workRepo portsrepo.WorkEntryRepository, accounts portssvc.LedgerAccountEnsurerSvc, options ...ServiceOption) portssvc.WorkEntrySvcFacade {
	svc := &workEntryService{workRepo: workRepo, accounts: accounts}
	svc.apply(options)
	return svc
}

var _ portssvc.WorkEntrySvcFacade = (*workEntryService)(nil)

func validateTimeEntry(entry domain.TimeEntry) error {
	if strings.TrimSpace(entry.Description) == "" {
		return fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}
	if !entry.Hours.IsPositive() {
		return fmt.Errorf("%w: hours must be greater than zero", apperrors.ErrValidation)
	}
	if entry.HourlyRate.IsNegative() {
		return fmt.Errorf("%w: hourly rate must not be negative", apperrors.ErrValidation)
	}
	return nil
}

func (s *workEntryService) CreateTimeEntry(ctx context.Context, companyID string, req dto.CreateTimeEntryRequest, userID string) (*domain.TimeEntry, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}
	entry := domain.TimeEntry{
		TimeEntryID: uuid.NewString(),
		CompanyID:   companyID,
		Date:        truncateDate(req.Date),
		Description: strings.TrimSpace(req.Description),
		Hours:       req.Hours,
		HourlyRate:  req.HourlyRate,
		AuditFields: newAuditFields(userID, s.Now()),
	}
	if err := validateTimeEntry(entry); err != nil {
		return nil, err
	}
	if err := s.workRepo.SaveTimeEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save time entry", slog.String("company_id", companyID))
		return nil, err
	}
	s.LogInfo(ctx, "Time entry created", slog.String("time_entry_id", entry.TimeEntryID))
	return &entry, nil
}

func (s *workEntryService) ListTimeEntries(ctx context.Context, companyID string, uninvoicedOnly bool, userID string) ([]domain.TimeEntry, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}
	entries, err := s.workRepo.ListTimeEntries(ctx, companyID, uninvoicedOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list time entries", slog.String("company_id", companyID))
		return nil, err
	}
	return entries, nil
}

func (s *workEntryService) findMutableTimeEntry(ctx context.Context, companyID, timeEntryID string) (*domain.TimeEntry, error) {
	entry, err := s.workRepo.FindTimeEntryByID(ctx, companyID, timeEntryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find time entry", slog.String("time_entry_id", timeEntryID))
		}
		return nil, err
	}
	if entry.IsLocked() {
		return nil, fmt.Errorf("%w: time entry %s is on invoice %s", apperrors.ErrLocked, timeEntryID, *entry.InvoiceID)
	}
	return entry, nil
}

func (s *workEntryService) UpdateTimeEntry(ctx context.Context, companyID, timeEntryID string, req dto.UpdateTimeEntryRequest, userID string) (*domain.TimeEntry, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}
	entry, err := s.findMutableTimeEntry(ctx, companyID, timeEntryID)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		entry.Date = truncateDate(*req.Date)
	}
	if req.Description != nil {
		entry.Description = strings.TrimSpace(*req.Description)
	}
	if req.Hours != nil {
		entry.Hours = *req.Hours
	}
	if req.HourlyRate != nil {
		entry.HourlyRate = *req.HourlyRate
	}
	if err := validateTimeEntry(*entry); err != nil {
		return nil, err
	}
	entry.LastUpdatedAt = s.Now()
	entry.LastUpdatedBy = userID

	if err := s.workRepo.UpdateTimeEntry(ctx, *entry); err != nil {
		if !errors.Is(err, apperrors.ErrLocked) {
			s.LogError(ctx, err, "Failed to update time entry", slog.String("time_entry_id", timeEntryID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *workEntryService) DeleteTimeEntry(ctx context.Context, companyID, timeEntryID, userID string) error {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return err
	}
	if _, err := s.findMutableTimeEntry(ctx, companyID, timeEntryID); err != nil {
		return err
	}
	if err := s.workRepo.DeleteTimeEntry(ctx, companyID, timeEntryID); err != nil {
		if !errors.Is(err, apperrors.ErrLocked) {
			s.LogError(ctx, err, "Failed to delete time entry", slog.String("time_entry_id", timeEntryID))
		}
		return err
	}
	s.LogInfo(ctx, "Time entry deleted", slog.String("time_entry_id", timeEntryID))
	return nil
}

func (s *workEntryService) CreateMileageEntry(ctx context.Context, companyID string, req dto.CreateMileageEntryRequest, userID string) (*domain.MileageEntry, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}
	if !req.Kilometers.IsPositive() {
		return nil, fmt.Errorf("%w: kilometers must be greater than zero", apperrors.ErrValidation)
	}
	if req.RatePerKm.IsNegative() {
		return nil, fmt.Errorf("%w: rate per km must not be negative", apperrors.ErrValidation)
	}
	rate := req.RatePerKm
	if rate.IsZero() {
		rate = defaultRatePerKm
	}

	entry := domain.MileageEntry{
		MileageEntryID: uuid.NewString(),
		CompanyID:      companyID,
		Date:           truncateDate(req.Date),
		Description:    strings.TrimSpace(req.Description),
		Kilometers:     req.Kilometers,
		RatePerKm:      rate,
		AuditFields:    newAuditFields(userID, s.Now()),
	}
	if err := s.workRepo.SaveMileageEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save mileage entry", slog.String("company_id", companyID))
		return nil, err
	}
	s.LogInfo(ctx, "Mileage entry created", slog.String("mileage_entry_id", entry.MileageEntryID))
	return &entry, nil
}

func (s *workEntryService) ListMileageEntries(ctx context.Context, companyID, userID string) ([]domain.MileageEntry, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}
	entries, err := s.workRepo.ListMileageEntries(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list mileage entries", slog.String("company_id", companyID))
		return nil, err
	}
	return entries, nil
}

func (s *workEntryService) findUnbookedMileage(ctx context.Context, companyID, mileageEntryID string) (*domain.MileageEntry, error) {
	entry, err := s.workRepo.FindMileageEntryByID(ctx, companyID, mileageEntryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find mileage entry", slog.String("mileage_entry_id", mileageEntryID))
		}
		return nil, err
	}
	if entry.IsLocked() {
		return nil, fmt.Errorf("%w: mileage entry %s is booked", apperrors.ErrLocked, mileageEntryID)
	}
	return entry, nil
}

func (s *workEntryService) DeleteMileageEntry(ctx context.Context, companyID, mileageEntryID, userID string) error {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return err
	}
	if _, err := s.findUnbookedMileage(ctx, companyID, mileageEntryID); err != nil {
		return err
	}
	if err := s.workRepo.DeleteMileageEntry(ctx, companyID, mileageEntryID); err != nil {
		if !errors.Is(err, apperrors.ErrLocked) {
			s.LogError(ctx, err, "Failed to delete mileage entry", slog.String("mileage_entry_id", mileageEntryID))
		}
		return err
	}
	return nil
}

func (s *workEntryService) BookMileageEntry(ctx context.Context, companyID, mileageEntryID, userID string) (*domain.MileageEntry, *domain.Booking, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, nil, err
	}
	entry, err := s.findUnbookedMileage(ctx, companyID, mileageEntryID)
	if err != nil {
		return nil, nil, err
	}

	travel, err := s.accounts.EnsureAccount(ctx, companyID, domain.TravelCostAccountCode, userID)
	if err != nil {
		return nil, nil, err
	}
	equity, err := s.accounts.EnsureAccount(ctx, companyID, domain.EquityAccountCode, userID)
	if err != nil {
		return nil, nil, err
	}

	now := s.Now()
	booking, err := newBooking(bookingSpec{
		companyID:   companyID,
		date:        entry.Date,
		description: fmt.Sprintf("Kilometers: %s (%s km)", entry.Description, entry.Kilometers),
		debit:       travel.AccountID,
		credit:      equity.AccountID,
		amount:      entry.Amount(),
		source:      &domain.BookingSource{Type: domain.SourceMileageEntry, ID: entry.MileageEntryID},
	}, userID, now)
	if err != nil {
		return nil, nil, err
	}

	entry.BookingID = &booking.BookingID
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	if err := s.workRepo.BookMileageEntry(ctx, *entry, booking); err != nil {
		if !errors.Is(err, apperrors.ErrLocked) {
			s.LogError(ctx, err, "Failed to book mileage entry", slog.String("mileage_entry_id", mileageEntryID))
		}
		return nil, nil, err
	}

	s.LogInfo(ctx, "Mileage entry booked",
		slog.String("mileage_entry_id", mileageEntryID),
		slog.String("booking_id", booking.BookingID),
		slog.String("amount", booking.Amount.String()))
	return entry, &booking, nil
}
