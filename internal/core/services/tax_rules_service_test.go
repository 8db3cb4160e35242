package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/freelance_ledger/internal/apperrors"
	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	"github.com/SscSPs/freelance_ledger/internal/core/services"
	"github.com/SscSPs/freelance_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedRules(companyID string, year int) *domain.TaxRules {
	rules := accounting.StaticTaxRules(year)
	rules.TaxRulesID = uuid.NewString()
	rules.CompanyID = companyID
	rules.CreatedBy = "seed"
	return &rules
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestGetOrCreate_SeedsStaticRules(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTaxRulesRepository)
	svc := services.NewTaxRulesService(repo, nil, services.WithClock(fixedClock))
	companyID := uuid.NewString()

	repo.On("FindTaxRules", ctx, companyID, 2025).Return(nil, apperrors.ErrNotFound).Once()
	repo.On("SaveTaxRules", ctx, mock.MatchedBy(func(r domain.TaxRules) bool {
		return r.Year == 2025 && r.CompanyID == companyID && r.Source == "static"
	})).Return(nil).Once()

	rules, err := svc.GetOrCreate(ctx, companyID, "user")

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(21).Equal(rules.VatStandard))
	assert.Len(t, rules.Brackets, 3)
	repo.AssertExpectations(t)
}

func TestGetOrCreate_RereadsAfterConflict(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTaxRulesRepository)
	svc := services.NewTaxRulesService(repo, nil, services.WithClock(fixedClock))
	companyID := uuid.NewString()
	winner := storedRules(companyID, 2025)

	repo.On("FindTaxRules", ctx, companyID, 2025).Return(nil, apperrors.ErrNotFound).Once()
	repo.On("SaveTaxRules", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()
	repo.On("FindTaxRules", ctx, companyID, 2025).Return(winner, nil).Once()

	rules, err := svc.GetOrCreateForYear(ctx, companyID, 2025, "user")

	require.NoError(t, err)
	assert.Equal(t, winner.TaxRulesID, rules.TaxRulesID)
}

func TestRefreshFromExternalSource_LookupFailureKeepsRules(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTaxRulesRepository)
	lookup := new(MockTaxRulesLookup)
	svc := services.NewTaxRulesService(repo, lookup, services.WithClock(fixedClock))
	companyID := uuid.NewString()
	current := storedRules(companyID, 2025)

	repo.On("FindTaxRules", ctx, companyID, 2025).Return(current, nil).Once()
	lookup.On("FetchTaxRules", ctx, 2025).Return(nil, errors.New("connection refused")).Once()

	rules, err := svc.RefreshFromExternalSource(ctx, companyID, 2025, "user")

	require.NoError(t, err)
	assert.Equal(t, current, rules)
	repo.AssertNotCalled(t, "UpdateTaxRules", mock.Anything, mock.Anything)
}

func TestRefreshFromExternalSource_WithoutLookup(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTaxRulesRepository)
	svc := services.NewTaxRulesService(repo, nil)
	companyID := uuid.NewString()
	current := storedRules(companyID, 2025)

	repo.On("FindTaxRules", ctx, companyID, 2025).Return(current, nil).Once()

	rules, err := svc.RefreshFromExternalSource(ctx, companyID, 2025, "user")

	require.NoError(t, err)
	assert.Equal(t, "static", rules.Source)
	repo.AssertNotCalled(t, "UpdateTaxRules", mock.Anything, mock.Anything)
}

func TestRefreshFromExternalSource_MergesPlausibleValues(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTaxRulesRepository)
	lookup := new(MockTaxRulesLookup)
	svc := services.NewTaxRulesService(repo, lookup, services.WithClock(fixedClock))
	companyID := uuid.NewString()
	current := storedRules(companyID, 2025)

	repo.On("FindTaxRules", ctx, companyID, 2025).Return(current, nil).Once()
	lookup.On("FetchTaxRules", ctx, 2025).Return(&domain.TaxRulesData{
		VatStandard:      decPtr("22"),
		GeneralTaxCredit: decPtr("999999"), // implausible, keeps the static value
	}, nil).Once()
	repo.On("UpdateTaxRules", ctx, mock.AnythingOfType("domain.TaxRules")).Return(nil).Once()

	rules, err := svc.RefreshFromExternalSource(ctx, companyID, 2025, "user")

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(22).Equal(rules.VatStandard))
	assert.True(t, decimal.NewFromInt(3068).Equal(rules.GeneralTaxCredit))
	assert.Equal(t, "static+external", rules.Source)
	assert.Equal(t, current.TaxRulesID, rules.TaxRulesID)
	assert.Equal(t, "seed", rules.CreatedBy)
	require.NotNil(t, rules.RefreshedAt)
	assert.Equal(t, fixedNow, *rules.RefreshedAt)
	repo.AssertExpectations(t)
}

func TestVatService_ResolveAndSplit(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTaxRulesRepository)
	svc := services.NewVatService(repo, services.WithClock(fixedClock))
	companyID := uuid.NewString()

	repo.On("FindTaxRules", ctx, companyID, 2025).Return(nil, apperrors.ErrNotFound)

	rate, err := svc.Resolve(ctx, companyID, domain.VatLow, "user")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(9).Equal(rate))

	rate, err = svc.Resolve(ctx, companyID, domain.VatCode("unknown"), "user")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(21).Equal(rate))

	net, vat, err := svc.SplitInclusive(ctx, companyID, decimal.RequireFromString("100"), domain.VatHigh, "user")
	require.NoError(t, err)
	assert.Equal(t, "82.64", net.StringFixed(2))
	assert.Equal(t, "17.36", vat.StringFixed(2))

	vat, err = svc.SplitExclusive(ctx, companyID, decimal.RequireFromString("100"), domain.VatLow, "user")
	require.NoError(t, err)
	assert.Equal(t, "9.00", vat.StringFixed(2))

	repo.AssertNotCalled(t, "SaveTaxRules", mock.Anything, mock.Anything)
}

func TestVatService_SplitChecksCompanyAccess(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTaxRulesRepository)
	authorizer := new(MockCompanyAuthorizer)
	svc := services.NewVatService(repo, services.WithCompanyAuthorizer(authorizer), services.WithClock(fixedClock))

	authorizer.On("AuthorizeCompanyAccess", ctx, "stranger", "c1").Return(apperrors.ErrForbidden)

	_, _, err := svc.SplitInclusive(ctx, "c1", decimal.NewFromInt(121), domain.VatHigh, "stranger")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	_, err = svc.SplitExclusive(ctx, "c1", decimal.NewFromInt(100), domain.VatHigh, "stranger")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	repo.AssertNotCalled(t, "FindTaxRules", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "SaveTaxRules", mock.Anything, mock.Anything)
}
