package repositories

import (
	"context"

	"github.com/SscSPs/freelance_ledger/internal/core/domain"
)

// CompanyReader defines read operations for company data
type CompanyReader interface {
	// FindCompanyByID retrieves a specific company by its ID.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// ListCompaniesByOwner retrieves all companies owned by a user.
	ListCompaniesByOwner(ctx context.Context, ownerUserID string) ([]domain.Company, error)
}

// CompanyWriter defines write operations for company data
type CompanyWriter interface {
	// SaveCompany persists a new company.
	SaveCompany(ctx context.Context, company domain.Company) error
}

// CompanyRepositoryFacade combines all company repository interfaces
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}
