package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/freelance_ledger/internal/apperrors"
	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	"github.com/SscSPs/freelance_ledger/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var q2 = domain.Period{
	From: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
	To:   time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
}

func TestGetOrCreateCurrentPeriod_CreatesQuarter(t *testing.T) {
	ctx := context.Background()
	repo := new(MockVatPeriodRepository)
	svc := services.NewVatPeriodService(repo, new(MockReportingRepository), services.WithClock(fixedClock))
	companyID := uuid.NewString()

	repo.On("FindOverlappingVatPeriod", ctx, companyID, q2).Return(nil, apperrors.ErrNotFound).Once()
	repo.On("SaveVatPeriod", ctx, mock.MatchedBy(func(p domain.VatPeriod) bool {
		return p.StartDate.Equal(q2.From) && p.EndDate.Equal(q2.To) && p.Status == domain.VatPeriodOpen
	})).Return(nil).Once()

	period, err := svc.GetOrCreateCurrentPeriod(ctx, companyID, "user")

	require.NoError(t, err)
	assert.Equal(t, q2.From, period.StartDate)
	repo.AssertExpectations(t)
}

func TestGetOrCreateCurrentPeriod_ReturnsOverlapping(t *testing.T) {
	ctx := context.Background()
	repo := new(MockVatPeriodRepository)
	svc := services.NewVatPeriodService(repo, new(MockReportingRepository), services.WithClock(fixedClock))
	companyID := uuid.NewString()
	monthly := &domain.VatPeriod{
		PeriodID:  uuid.NewString(),
		CompanyID: companyID,
		StartDate: time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC),
		Status:    domain.VatPeriodOpen,
	}
	repo.On("FindOverlappingVatPeriod", ctx, companyID, q2).Return(monthly, nil).Once()

	period, err := svc.GetOrCreateCurrentPeriod(ctx, companyID, "user")

	require.NoError(t, err)
	assert.Equal(t, monthly.PeriodID, period.PeriodID)
	repo.AssertNotCalled(t, "SaveVatPeriod", mock.Anything, mock.Anything)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		current domain.VatPeriodStatus
		next    domain.VatPeriodStatus
		wantErr error
	}{
		{"open to ready", domain.VatPeriodOpen, domain.VatPeriodReady, nil},
		{"ready to filed", domain.VatPeriodReady, domain.VatPeriodFiled, nil},
		{"open to filed", domain.VatPeriodOpen, domain.VatPeriodFiled, apperrors.ErrValidation},
		{"filed is immutable", domain.VatPeriodFiled, domain.VatPeriodOpen, apperrors.ErrLocked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := new(MockVatPeriodRepository)
			svc := services.NewVatPeriodService(repo, new(MockReportingRepository), services.WithClock(fixedClock))
			period := &domain.VatPeriod{PeriodID: uuid.NewString(), CompanyID: "c1", StartDate: q2.From, EndDate: q2.To, Status: tt.current}

			repo.On("FindVatPeriodByID", ctx, "c1", period.PeriodID).Return(period, nil).Once()
			repo.On("UpdateVatPeriodStatus", ctx, mock.AnythingOfType("domain.VatPeriod")).Return(nil).Maybe()

			updated, err := svc.UpdateStatus(ctx, "c1", period.PeriodID, tt.next, "user")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "UpdateVatPeriodStatus", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.next, updated.Status)
		})
	}
}

func TestGetVatReturn(t *testing.T) {
	ctx := context.Background()
	repo := new(MockVatPeriodRepository)
	reporting := new(MockReportingRepository)
	svc := services.NewVatPeriodService(repo, reporting)
	period := &domain.VatPeriod{PeriodID: uuid.NewString(), CompanyID: "c1", StartDate: q2.From, EndDate: q2.To, Status: domain.VatPeriodOpen}

	repo.On("FindVatPeriodByID", ctx, "c1", period.PeriodID).Return(period, nil).Once()
	reporting.On("ListPostingLines", ctx, "c1", q2.From, q2.To).Return(reservationLedger(), nil).Once()

	ret, err := svc.GetVatReturn(ctx, "c1", period.PeriodID, "user")

	require.NoError(t, err)
	assert.Equal(t, "6300", ret.VatCollected.String())
	assert.Equal(t, "210", ret.InputVat.String())
	assert.Equal(t, "6090", ret.VatOwed.String())
	assert.Equal(t, 2, ret.PostingsCount)
}
