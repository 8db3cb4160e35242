package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/freelance_ledger/internal/apperrors"
	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/freelance_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/freelance_ledger/internal/core/ports/services"
	"github.com/SscSPs/freelance_ledger/internal/dto"
	"github.com/SscSPs/freelance_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type incomeTaxService struct {
	BaseService
	dataRepo  portsrepo.IncomeTaxDataRepository
	taxRules  portssvc.TaxRulesSvc
	reporting portssvc.ReportingService
}

// NewIncomeTaxService creates a new income tax service
func NewIncomeTaxService(dataRepo portsrepo.IncomeTaxDataRepository, taxRules portssvc.TaxRulesSvc, reporting portssvc.ReportingService, options ...ServiceOption) portssvc.IncomeTaxSvc {
	svc := &incomeTaxService{dataRepo: dataRepo, taxRules: taxRules, reporting: reporting}
	svc.apply(options)
	return svc
}

var _ portssvc.IncomeTaxSvc = (*incomeTaxService)(nil)

func (s *incomeTaxService) year(year int) int {
	if year == 0 {
		return s.Now().Year()
	}
	return year
}

// loadData returns the stored adjustments or an all-zero single-filer set.
func (s *incomeTaxService) loadData(ctx context.Context, companyID string, year int) (domain.IncomeTaxData, error) {
	data, err := s.dataRepo.FindIncomeTaxData(ctx, companyID, year)
	if err == nil {
		return *data, nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return domain.IncomeTaxData{
			CompanyID:        companyID,
			Year:             year,
			MaritalStatus:    domain.Single,
			OtherIncome:      decimal.Zero,
			MortgageInterest: decimal.Zero,
			HealthcareCosts:  decimal.Zero,
			EducationCosts:   decimal.Zero,
			OtherDeductions:  decimal.Zero,
		}, nil
	}
	return domain.IncomeTaxData{}, err
}

func (s *incomeTaxService) GetIncomeTaxData(ctx context.Context, companyID string, year int, userID string) (*domain.IncomeTaxData, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}
	data, err := s.loadData(ctx, companyID, s.year(year))
	if err != nil {
		s.LogError(ctx, err, "Failed to load income tax data", slog.String("company_id", companyID))
		return nil, err
	}
	return &data, nil
}

func (s *incomeTaxService) UpsertIncomeTaxData(ctx context.Context, companyID string, year int, req dto.UpsertIncomeTaxDataRequest, userID string) (*domain.IncomeTaxData, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}
	year = s.year(year)

	for name, amount := range map[string]decimal.Decimal{
		"mortgageInterest": req.MortgageInterest,
		"healthcareCosts":  req.HealthcareCosts,
		"educationCosts":   req.EducationCosts,
		"otherDeductions":  req.OtherDeductions,
	} {
		if amount.IsNegative() {
			return nil, fmt.Errorf("%w: %s must not be negative", apperrors.ErrValidation, name)
		}
	}

	existing, err := s.loadData(ctx, companyID, year)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	data := domain.IncomeTaxData{
		CompanyID:        companyID,
		Year:             year,
		MaritalStatus:    req.MaritalStatus,
		OtherIncome:      req.OtherIncome,
		MortgageInterest: req.MortgageInterest,
		HealthcareCosts:  req.HealthcareCosts,
		EducationCosts:   req.EducationCosts,
		OtherDeductions:  req.OtherDeductions,
		AuditFields: domain.AuditFields{
			CreatedAt:     existing.CreatedAt,
			CreatedBy:     existing.CreatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if data.MaritalStatus == "" {
		data.MaritalStatus = domain.Single
	}
	if data.CreatedBy == "" {
		data.CreatedAt = now
		data.CreatedBy = userID
	}

	if err := s.dataRepo.UpsertIncomeTaxData(ctx, data); err != nil {
		s.LogError(ctx, err, "Failed to store income tax data", slog.Int("year", year))
		return nil, err
	}
	return &data, nil
}

// EstimateIncomeTax runs the calculator over the profit of the whole fiscal year.
func (s *incomeTaxService) EstimateIncomeTax(ctx context.Context, companyID string, year int, userID string) (*domain.IncomeTaxResult, error) {
	year = s.year(year)
	fiscal := domain.YearOf(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))

	pnl, err := s.reporting.ProfitAndLoss(ctx, companyID, fiscal.From, fiscal.To, userID)
	if err != nil {
		return nil, err
	}
	rules, err := s.taxRules.GetOrCreateForYear(ctx, companyID, year, userID)
	if err != nil {
		return nil, err
	}
	data, err := s.loadData(ctx, companyID, year)
	if err != nil {
		s.LogError(ctx, err, "Failed to load income tax data", slog.Int("year", year))
		return nil, err
	}

	result, err := accounting.CalculateIncomeTax(pnl.Profit, data, *rules)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvariantViolation) {
			s.LogError(ctx, err, "Income tax calculation invariant violated", slog.Int("year", year))
		}
		return nil, err
	}
	return &result, nil
}
