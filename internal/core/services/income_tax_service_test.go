package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/freelance_ledger/internal/apperrors"
	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/freelance_ledger/internal/core/ports/services"
	"github.com/SscSPs/freelance_ledger/internal/core/services"
	"github.com/SscSPs/freelance_ledger/internal/dto"
	"github.com/SscSPs/freelance_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

func (m *MockReportingService) ProfitAndLoss(ctx context.Context, companyID string, from, to time.Time, userID string) (*domain.PAndLReport, error) {
	args := m.Called(ctx, companyID, from, to, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PAndLReport), args.Error(1)
}

func (m *MockReportingService) BalanceSheet(ctx context.Context, companyID string, asOf time.Time, userID string) (*domain.BalanceSheetReport, error) {
	args := m.Called(ctx, companyID, asOf, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetReport), args.Error(1)
}

func (m *MockReportingService) CashFlow(ctx context.Context, companyID string, from, to time.Time, userID string) (*domain.CashFlowReport, error) {
	args := m.Called(ctx, companyID, from, to, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashFlowReport), args.Error(1)
}

func (m *MockReportingService) Trends(ctx context.Context, companyID string, monthsBack int, userID string) ([]domain.TrendPoint, error) {
	args := m.Called(ctx, companyID, monthsBack, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrendPoint), args.Error(1)
}

func TestIncomeTaxService_EstimateIncomeTax(t *testing.T) {
	ctx := context.Background()
	dataRepo := new(MockIncomeTaxDataRepository)
	taxRules := new(MockTaxRulesSvc)
	reporting := new(MockReportingService)
	svc := services.NewIncomeTaxService(dataRepo, taxRules, reporting, services.WithClock(fixedClock))

	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)
	reporting.On("ProfitAndLoss", ctx, "c1", from, to, "u1").
		Return(&domain.PAndLReport{Profit: decimal.NewFromInt(80000)}, nil).Once()
	rules := accounting.StaticTaxRules(2025)
	taxRules.On("GetOrCreateForYear", ctx, "c1", 2025, "u1").Return(&rules, nil).Once()
	dataRepo.On("FindIncomeTaxData", ctx, "c1", 2025).Return(nil, apperrors.ErrNotFound).Once()

	result, err := svc.EstimateIncomeTax(ctx, "c1", 0, "u1")
	require.NoError(t, err)

	expected, err := accounting.CalculateIncomeTax(decimal.NewFromInt(80000), domain.IncomeTaxData{
		CompanyID:        "c1",
		Year:             2025,
		MaritalStatus:    domain.Single,
		OtherIncome:      decimal.Zero,
		MortgageInterest: decimal.Zero,
		HealthcareCosts:  decimal.Zero,
		EducationCosts:   decimal.Zero,
		OtherDeductions:  decimal.Zero,
	}, rules)
	require.NoError(t, err)

	assert.Equal(t, 2025, result.Year)
	assert.True(t, result.ProfitFromBusiness.Equal(decimal.NewFromInt(80000)))
	assert.True(t, result.FinalTax.Equal(expected.FinalTax))
	assert.False(t, result.FinalTax.IsNegative())
	reporting.AssertExpectations(t)
	taxRules.AssertExpectations(t)
}

func TestIncomeTaxService_EstimateIncomeTax_PropagatesForbidden(t *testing.T) {
	ctx := context.Background()
	reporting := new(MockReportingService)
	taxRules := new(MockTaxRulesSvc)
	svc := services.NewIncomeTaxService(new(MockIncomeTaxDataRepository), taxRules, reporting, services.WithClock(fixedClock))

	reporting.On("ProfitAndLoss", ctx, "c1", mock.Anything, mock.Anything, "u1").Return(nil, apperrors.ErrForbidden).Once()

	_, err := svc.EstimateIncomeTax(ctx, "c1", 2025, "u1")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	taxRules.AssertNotCalled(t, "GetOrCreateForYear", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestIncomeTaxService_UpsertIncomeTaxData(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

	t.Run("keeps creation audit of existing data", func(t *testing.T) {
		dataRepo := new(MockIncomeTaxDataRepository)
		svc := services.NewIncomeTaxService(dataRepo, new(MockTaxRulesSvc), new(MockReportingService), services.WithClock(fixedClock))

		dataRepo.On("FindIncomeTaxData", ctx, "c1", 2025).Return(&domain.IncomeTaxData{
			CompanyID:   "c1",
			Year:        2025,
			AuditFields: domain.AuditFields{CreatedAt: created, CreatedBy: "first"},
		}, nil).Once()
		dataRepo.On("UpsertIncomeTaxData", ctx, mock.MatchedBy(func(d domain.IncomeTaxData) bool {
			return d.CreatedBy == "first" && d.LastUpdatedBy == "u1" && d.MaritalStatus == domain.Single &&
				d.MortgageInterest.Equal(decimal.NewFromInt(4000))
		})).Return(nil).Once()

		data, err := svc.UpsertIncomeTaxData(ctx, "c1", 2025, dto.UpsertIncomeTaxDataRequest{
			MortgageInterest: decimal.NewFromInt(4000),
		}, "u1")
		require.NoError(t, err)
		assert.True(t, data.CreatedAt.Equal(created))
		assert.True(t, data.LastUpdatedAt.Equal(fixedNow))
		dataRepo.AssertExpectations(t)
	})

	t.Run("rejects negative deductions", func(t *testing.T) {
		dataRepo := new(MockIncomeTaxDataRepository)
		svc := services.NewIncomeTaxService(dataRepo, new(MockTaxRulesSvc), new(MockReportingService))

		_, err := svc.UpsertIncomeTaxData(ctx, "c1", 2025, dto.UpsertIncomeTaxDataRequest{
			HealthcareCosts: decimal.NewFromInt(-1),
		}, "u1")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		dataRepo.AssertNotCalled(t, "UpsertIncomeTaxData", mock.Anything, mock.Anything)
	})
}
