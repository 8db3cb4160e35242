package services

import (
	"context"
	"time"

	"github.com/SscSPs/freelance_ledger/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// ProfitAndLoss generates a profit and loss report for a specific period
	ProfitAndLoss(ctx context.Context, companyID string, from, to time.Time, userID string) (*domain.PAndLReport, error)

	// BalanceSheet generates a balance sheet report as of a specific date
	BalanceSheet(ctx context.Context, companyID string, asOf time.Time, userID string) (*domain.BalanceSheetReport, error)

	// CashFlow generates the operating cash flow for a specific period
	CashFlow(ctx context.Context, companyID string, from, to time.Time, userID string) (*domain.CashFlowReport, error)

	// Trends returns one P&L summary per calendar month, oldest first, ending with the current month
	Trends(ctx context.Context, companyID string, monthsBack int, userID string) ([]domain.TrendPoint, error)
}
