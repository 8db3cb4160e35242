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
)

// companyService implements the CompanySvcFacade interface. It is also the
// authorizer every other service checks company ownership with.
type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewCompanyService creates a new company service
func NewCompanyService(repo portsrepo.CompanyRepositoryFacade, options ...ServiceOption) portssvc.CompanySvcFacade {
	svc := &companyService{companyRepo: repo}
	svc.apply(options)
	return svc
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, userID string) (*domain.Company, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: company name is required", apperrors.ErrValidation)
	}

	now := s.Now()
	company := domain.Company{
		CompanyID:   uuid.NewString(),
		Name:        name,
		OwnerUserID: userID,
		VatNumber:   strings.TrimSpace(req.VatNumber),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		s.LogError(ctx, err, "Failed to save company", slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Company created", slog.String("company_id", company.CompanyID))
	return &company, nil
}

func (s *companyService) GetCompany(ctx context.Context, companyID, userID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find company", slog.String("company_id", companyID))
		}
		return nil, err
	}
	if company.OwnerUserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return company, nil
}

func (s *companyService) ListCompanies(ctx context.Context, userID string) ([]domain.Company, error) {
	companies, err := s.companyRepo.ListCompaniesByOwner(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list companies", slog.String("user_id", userID))
		return nil, err
	}
	return companies, nil
}

// AuthorizeCompanyAccess allows only the owner of an existing company.
func (s *companyService) AuthorizeCompanyAccess(ctx context.Context, userID, companyID string) error {
	_, err := s.GetCompany(ctx, companyID, userID)
	if errors.Is(err, apperrors.ErrForbidden) {
		s.LogDebug(ctx, "Company access denied",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
	}
	return err
}
