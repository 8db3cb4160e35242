package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/freelance_ledger/internal/apperrors"
	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/freelance_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/freelance_ledger/internal/core/ports/services"
	"github.com/SscSPs/freelance_ledger/internal/utils/accounting"
	"github.com/google/uuid"
)

// vatPeriodService implements the VatPeriodSvc interface
type vatPeriodService struct {
	BaseService
	periodRepo    portsrepo.VatPeriodRepository
	reportingRepo portsrepo.ReportingRepository
}

// NewVatPeriodService creates a new VAT period service
func NewVatPeriodService(periodRepo portsrepo.VatPeriodRepository, reportingRepo portsrepo.ReportingRepository, options ...ServiceOption) portssvc.VatPeriodSvc {
	svc := &vatPeriodService{periodRepo: periodRepo, reportingRepo: reportingRepo}
	svc.apply(options)
	return svc
}

var _ portssvc.VatPeriodSvc = (*vatPeriodService)(nil)

func (s *vatPeriodService) GetOrCreateCurrentPeriod(ctx context.Context, companyID, userID string) (*domain.VatPeriod, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}

	quarter := domain.QuarterOf(s.Today())
	period, err := s.periodRepo.FindOverlappingVatPeriod(ctx, companyID, quarter)
	if err == nil {
		return period, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up VAT period", slog.String("company_id", companyID))
		return nil, err
	}

	created := domain.VatPeriod{
		PeriodID:    uuid.NewString(),
		CompanyID:   companyID,
		StartDate:   quarter.From,
		EndDate:     quarter.To,
		Status:      domain.VatPeriodOpen,
		AuditFields: newAuditFields(userID, s.Now()),
	}
	if err := s.periodRepo.SaveVatPeriod(ctx, created); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogDebug(ctx, "VAT period created concurrently, re-reading", slog.String("company_id", companyID))
			return s.periodRepo.FindOverlappingVatPeriod(ctx, companyID, quarter)
		}
		s.LogError(ctx, err, "Failed to save VAT period", slog.String("company_id", companyID))
		return nil, err
	}

	s.LogInfo(ctx, "VAT period created",
		slog.String("period_id", created.PeriodID),
		slog.Time("start", created.StartDate))
	return &created, nil
}

func (s *vatPeriodService) ListPeriods(ctx context.Context, companyID, userID string) ([]domain.VatPeriod, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}
	periods, err := s.periodRepo.ListVatPeriods(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list VAT periods", slog.String("company_id", companyID))
		return nil, err
	}
	return periods, nil
}

func (s *vatPeriodService) findPeriod(ctx context.Context, companyID, periodID string) (*domain.VatPeriod, error) {
	period, err := s.periodRepo.FindVatPeriodByID(ctx, companyID, periodID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to find VAT period", slog.String("period_id", periodID))
	}
	return period, err
}

func (s *vatPeriodService) GetVatReturn(ctx context.Context, companyID, periodID, userID string) (*domain.VatReturn, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}
	period, err := s.findPeriod(ctx, companyID, periodID)
	if err != nil {
		return nil, err
	}
	lines, err := s.reportingRepo.ListPostingLines(ctx, companyID, period.StartDate, period.EndDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to load postings for VAT return", slog.String("period_id", periodID))
		return nil, err
	}
	ret := accounting.BuildVatReturn(*period, lines)
	return &ret, nil
}

func (s *vatPeriodService) UpdateStatus(ctx context.Context, companyID, periodID string, status domain.VatPeriodStatus, userID string) (*domain.VatPeriod, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}
	period, err := s.findPeriod(ctx, companyID, periodID)
	if err != nil {
		return nil, err
	}
	if period.Status == domain.VatPeriodFiled {
		return nil, fmt.Errorf("%w: VAT period %s is filed", apperrors.ErrLocked, periodID)
	}
	if !period.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: VAT period cannot move from %s to %s", apperrors.ErrValidation, period.Status, status)
	}

	period.Status = status
	period.LastUpdatedAt = s.Now()
	period.LastUpdatedBy = userID
	if err := s.periodRepo.UpdateVatPeriodStatus(ctx, *period); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: VAT period %s was filed concurrently", apperrors.ErrLocked, periodID)
		}
		s.LogError(ctx, err, "Failed to update VAT period", slog.String("period_id", periodID))
		return nil, err
	}

	s.LogInfo(ctx, "VAT period status updated",
		slog.String("period_id", periodID),
		slog.String("status", string(status)))
	return period, nil
}
