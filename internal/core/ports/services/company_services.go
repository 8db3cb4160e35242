package services

import (
	"context"

	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	"github.com/SscSPs/freelance_ledger/internal/dto"
)

// CompanyReaderSvc defines read operations for company data
type CompanyReaderSvc interface {
	// GetCompany retrieves a company the user owns.
	GetCompany(ctx context.Context, companyID, userID string) (*domain.Company, error)

	// ListCompanies retrieves all companies owned by the user.
	ListCompanies(ctx context.Context, userID string) ([]domain.Company, error)
}

// CompanyWriterSvc defines write operations for company data
type CompanyWriterSvc interface {
	// CreateCompany registers a company owned by the user. No accounts are seeded.
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, userID string) (*domain.Company, error)
}

// CompanyAuthorizerSvc defines operations for company authorization
type CompanyAuthorizerSvc interface {
	// AuthorizeCompanyAccess returns ErrNotFound for unknown companies and
	// ErrForbidden when the user does not own the company.
	AuthorizeCompanyAccess(ctx context.Context, userID, companyID string) error
}

// CompanySvcFacade combines all company-related service interfaces
type CompanySvcFacade interface {
	CompanyReaderSvc
	CompanyWriterSvc
	CompanyAuthorizerSvc
}
