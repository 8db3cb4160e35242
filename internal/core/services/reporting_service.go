package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/freelance_ledger/internal/apperrors"
	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/freelance_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/freelance_ledger/internal/core/ports/services"
	"github.com/SscSPs/freelance_ledger/internal/utils/accounting"
)

const (
	defaultTrendMonths = 12
	maxTrendMonths     = 36
)

// reportingService implements the ReportingService interface. Every report is
// a replay of the posting lines read outside any transaction.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service
func NewReportingService(reportingRepo portsrepo.ReportingRepository, options ...ServiceOption) portssvc.ReportingService {
	svc := &reportingService{reportingRepo: reportingRepo}
	svc.apply(options)
	return svc
}

var _ portssvc.ReportingService = (*reportingService)(nil)

func validatePeriod(from, to time.Time) (domain.Period, error) {
	if from.IsZero() || to.IsZero() {
		return domain.Period{}, fmt.Errorf("%w: from and to are required", apperrors.ErrValidation)
	}
	period := domain.Period{From: truncateDate(from), To: truncateDate(to)}
	if period.From.After(period.To) {
		return domain.Period{}, fmt.Errorf("%w: from must not be after to", apperrors.ErrValidation)
	}
	return period, nil
}

func (s *reportingService) ProfitAndLoss(ctx context.Context, companyID string, from, to time.Time, userID string) (*domain.PAndLReport, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}
	period, err := validatePeriod(from, to)
	if err != nil {
		return nil, err
	}
	lines, err := s.reportingRepo.ListPostingLines(ctx, companyID, period.From, period.To)
	if err != nil {
		s.LogError(ctx, err, "Failed to load postings for profit and loss", slog.String("company_id", companyID))
		return nil, err
	}
	report := accounting.BuildProfitAndLoss(period, lines)
	return &report, nil
}

func (s *reportingService) BalanceSheet(ctx context.Context, companyID string, asOf time.Time, userID string) (*domain.BalanceSheetReport, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}
	if asOf.IsZero() {
		asOf = s.Today()
	}
	asOf = truncateDate(asOf)
	lines, err := s.reportingRepo.ListPostingLines(ctx, companyID, time.Time{}, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to load postings for balance sheet", slog.String("company_id", companyID))
		return nil, err
	}
	report := accounting.BuildBalanceSheet(asOf, lines)
	if !report.Balanced {
		// Unreachable while every posting has equal legs.
		s.LogWarn(ctx, "Balance sheet does not balance",
			slog.String("company_id", companyID),
			slog.String("assets", report.TotalAssets.String()),
			slog.String("liabilities", report.TotalLiabilities.String()),
			slog.String("equity", report.TotalEquity.String()))
	}
	return &report, nil
}

func (s *reportingService) CashFlow(ctx context.Context, companyID string, from, to time.Time, userID string) (*domain.CashFlowReport, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}
	period, err := validatePeriod(from, to)
	if err != nil {
		return nil, err
	}
	lines, err := s.reportingRepo.ListPostingLines(ctx, companyID, period.From, period.To)
	if err != nil {
		s.LogError(ctx, err, "Failed to load postings for cash flow", slog.String("company_id", companyID))
		return nil, err
	}
	report := accounting.BuildCashFlow(period, lines)
	return &report, nil
}

// Trends replays the profit and loss of each month separately.
func (s *reportingService) Trends(ctx context.Context, companyID string, monthsBack int, userID string) ([]domain.TrendPoint, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}
	if monthsBack <= 0 {
		monthsBack = defaultTrendMonths
	}
	if monthsBack > maxTrendMonths {
		return nil, fmt.Errorf("%w: at most %d months", apperrors.ErrValidation, maxTrendMonths)
	}

	current := domain.MonthOf(s.Today()).From
	points := make([]domain.TrendPoint, 0, monthsBack)
	for i := monthsBack - 1; i >= 0; i-- {
		month := domain.MonthOf(current.AddDate(0, -i, 0))
		lines, err := s.reportingRepo.ListPostingLines(ctx, companyID, month.From, month.To)
		if err != nil {
			s.LogError(ctx, err, "Failed to load postings for trend month",
				slog.String("company_id", companyID),
				slog.String("month", month.From.Format("2006-01")))
			return nil, err
		}
		report := accounting.BuildProfitAndLoss(month, lines)
		points = append(points, domain.TrendPoint{
			Month:   month.From.Format("2006-01"),
			Revenue: report.Revenue.Total,
			Costs:   report.Costs.Total,
			Profit:  report.Profit,
		})
	}
	return points, nil
}
