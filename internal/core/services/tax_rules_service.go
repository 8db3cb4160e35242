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
	"github.com/SscSPs/freelance_ledger/internal/utils/accounting"
	"github.com/google/uuid"
)

const sourceStaticExternal = "static+external"

// effectiveRules returns the stored rules of a year, or the static rules when
// none are stored yet. Nothing is persisted.
func effectiveRules(ctx context.Context, repo portsrepo.TaxRulesRepository, companyID string, year int) (domain.TaxRules, error) {
	rules, err := repo.FindTaxRules(ctx, companyID, year)
	if err == nil {
		return *rules, nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return accounting.StaticTaxRules(year), nil
	}
	return domain.TaxRules{}, err
}

// taxRulesService implements the TaxRulesSvc interface
type taxRulesService struct {
	BaseService
	rulesRepo portsrepo.TaxRulesRepository
	lookup    portsrepo.TaxRulesLookup
}

// NewTaxRulesService creates a new tax rules service. lookup may be nil, in
// which case refreshing keeps the static rules.
func NewTaxRulesService(repo portsrepo.TaxRulesRepository, lookup portsrepo.TaxRulesLookup, options ...ServiceOption) portssvc.TaxRulesSvc {
	svc := &taxRulesService{rulesRepo: repo, lookup: lookup}
	svc.apply(options)
	return svc
}

var _ portssvc.TaxRulesSvc = (*taxRulesService)(nil)

func (s *taxRulesService) GetOrCreate(ctx context.Context, companyID, userID string) (*domain.TaxRules, error) {
	return s.GetOrCreateForYear(ctx, companyID, s.Now().Year(), userID)
}

func (s *taxRulesService) GetOrCreateForYear(ctx context.Context, companyID string, year int, userID string) (*domain.TaxRules, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}
	return s.getOrCreate(ctx, companyID, year, userID)
}

func (s *taxRulesService) getOrCreate(ctx context.Context, companyID string, year int, userID string) (*domain.TaxRules, error) {
	rules, err := s.rulesRepo.FindTaxRules(ctx, companyID, year)
	if err == nil {
		return rules, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to load tax rules", slog.Int("year", year))
		return nil, err
	}

	now := s.Now()
	created := accounting.StaticTaxRules(year)
	created.TaxRulesID = uuid.NewString()
	created.CompanyID = companyID
	created.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	err = s.rulesRepo.SaveTaxRules(ctx, created)
	switch {
	case err == nil:
		s.LogInfo(ctx, "Tax rules seeded from static table",
			slog.String("company_id", companyID),
			slog.Int("year", year))
		return &created, nil
	case errors.Is(err, apperrors.ErrDuplicate):
		return s.rulesRepo.FindTaxRules(ctx, companyID, year)
	default:
		s.LogError(ctx, err, "Failed to save tax rules", slog.Int("year", year))
		return nil, err
	}
}

// RefreshFromExternalSource overlays validated external values on the static
// floor of the year. A failing lookup keeps the current rules.
func (s *taxRulesService) RefreshFromExternalSource(ctx context.Context, companyID string, year int, userID string) (*domain.TaxRules, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}
	current, err := s.getOrCreate(ctx, companyID, year, userID)
	if err != nil {
		return nil, err
	}
	if s.lookup == nil {
		s.LogDebug(ctx, "No tax rule lookup configured, keeping static rules", slog.Int("year", year))
		return current, nil
	}

	data, err := s.lookup.FetchTaxRules(ctx, year)
	if err == nil && data == nil {
		err = errors.New("empty response")
	}
	if err != nil {
		lookupErr := fmt.Errorf("%w: %v", apperrors.ErrExternalLookup, err)
		s.LogError(ctx, lookupErr, "Tax rule lookup failed, keeping current rules",
			slog.String("company_id", companyID),
			slog.Int("year", year))
		return current, nil
	}

	merged, rejected := accounting.MergeTaxRules(accounting.StaticTaxRules(year), *data)
	if len(rejected) > 0 {
		s.LogWarn(ctx, "Rejected implausible external tax rule fields",
			slog.Int("year", year),
			slog.String("fields", strings.Join(rejected, ",")))
	}

	now := s.Now()
	merged.TaxRulesID = current.TaxRulesID
	merged.CompanyID = companyID
	merged.Source = sourceStaticExternal
	merged.RefreshedAt = &now
	merged.CreatedAt = current.CreatedAt
	merged.CreatedBy = current.CreatedBy
	merged.LastUpdatedAt = now
	merged.LastUpdatedBy = userID

	if err := s.rulesRepo.UpdateTaxRules(ctx, merged); err != nil {
		s.LogError(ctx, err, "Failed to store refreshed tax rules", slog.Int("year", year))
		return nil, err
	}

	s.LogInfo(ctx, "Tax rules refreshed",
		slog.String("company_id", companyID),
		slog.Int("year", year),
		slog.Int("rejected_fields", len(rejected)))
	return &merged, nil
}
