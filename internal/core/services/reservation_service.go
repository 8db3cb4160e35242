package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/freelance_ledger/internal/apperrors"
	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/freelance_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/freelance_ledger/internal/core/ports/services"
	"github.com/SscSPs/freelance_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

const hoursPerDay = 24

// reservationService advises how much to set aside on the savings account.
type reservationService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	dataRepo      portsrepo.IncomeTaxDataRepository
	taxRules      portssvc.TaxRulesSvc
	fallbackRatio decimal.Decimal
}

// NewReservationService creates a new reservation advisor. fallbackRatio is
// clamped to 30-50% and used when no income tax breakdown can be computed.
func NewReservationService(
	reportingRepo portsrepo.ReportingRepository,
	dataRepo portsrepo.IncomeTaxDataRepository,
	taxRules portssvc.TaxRulesSvc,
	fallbackRatio decimal.Decimal,
	options ...ServiceOption,
) portssvc.ReservationSvc {
	svc := &reservationService{
		reportingRepo: reportingRepo,
		dataRepo:      dataRepo,
		taxRules:      taxRules,
		fallbackRatio: accounting.ClampRatio(fallbackRatio),
	}
	svc.apply(options)
	return svc
}

var _ portssvc.ReservationSvc = (*reservationService)(nil)

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours()/hoursPerDay) + 1
}

func (s *reservationService) Advise(ctx context.Context, companyID, userID string) (*domain.ReservationAdvice, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}

	today := s.Today()
	quarter := domain.QuarterOf(today)
	year := domain.YearOf(today)

	lines, err := s.reportingRepo.ListPostingLines(ctx, companyID, time.Time{}, quarter.To)
	if err != nil {
		s.LogError(ctx, err, "Failed to load postings for reservation advice", slog.String("company_id", companyID))
		return nil, err
	}

	vatReturn := accounting.BuildVatReturn(domain.VatPeriod{CompanyID: companyID, StartDate: quarter.From, EndDate: quarter.To}, lines)
	ytd := accounting.BuildProfitAndLoss(domain.Period{From: year.From, To: today}, lines)

	advice := domain.ReservationAdvice{
		Quarter:          quarter,
		VatOwed:          decimal.Max(decimal.Zero, vatReturn.VatOwed),
		YearToDateProfit: ytd.Profit,
		DaysElapsed:      daysBetween(quarter.From, today),
		DaysTotal:        daysBetween(quarter.From, quarter.To),
	}

	estimate, err := s.estimateIncomeTax(ctx, companyID, today.Year(), ytd.Profit, userID)
	if err != nil {
		s.LogInfo(ctx, "Income tax breakdown unavailable, using fallback ratio",
			slog.String("company_id", companyID),
			slog.String("reason", err.Error()),
			slog.String("ratio", s.fallbackRatio.String()))
		advice.UsedFallbackRatio = true
		advice.FallbackRatio = s.fallbackRatio
		advice.IncomeTaxReservation = decimal.Max(decimal.Zero, ytd.Profit).Mul(s.fallbackRatio).Round(2)
	} else {
		advice.IncomeTaxReservation = estimate.FinalTax.Round(2)
	}

	advice.RecommendedReservation = advice.VatOwed.Add(advice.IncomeTaxReservation)
	// Straight line over the calendar days of the quarter.
	advice.ShouldBeReservedNow = advice.RecommendedReservation.
		Mul(decimal.NewFromInt(int64(advice.DaysElapsed))).
		Div(decimal.NewFromInt(int64(advice.DaysTotal))).
		Round(2)
	advice.CurrentlyReserved = accounting.AccountBalance(domain.SavingsAccountCode, today, lines)
	advice.Shortfall = decimal.Max(decimal.Zero, advice.ShouldBeReservedNow.Sub(advice.CurrentlyReserved))

	return &advice, nil
}

// estimateIncomeTax returns an error whenever the full breakdown cannot be
// produced; the caller then falls back to the ratio.
func (s *reservationService) estimateIncomeTax(ctx context.Context, companyID string, year int, profit decimal.Decimal, userID string) (*domain.IncomeTaxResult, error) {
	rules, err := s.taxRules.GetOrCreateForYear(ctx, companyID, year, userID)
	if err != nil {
		return nil, err
	}
	data := domain.IncomeTaxData{CompanyID: companyID, Year: year, MaritalStatus: domain.Single}
	stored, err := s.dataRepo.FindIncomeTaxData(ctx, companyID, year)
	switch {
	case err == nil:
		data = *stored
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, err
	}
	result, err := accounting.CalculateIncomeTax(profit, data, *rules)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
