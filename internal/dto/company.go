package dto

import (
	"time"

	"github.com/SscSPs/freelance_ledger/internal/core/domain"
)

// CreateCompanyRequest defines the data needed to register a company.
type CreateCompanyRequest struct {
	Name      string `json:"name" binding:"required,max=200"`
	VatNumber string `json:"vatNumber" binding:"omitempty,max=20"`
}

// CompanyResponse defines the data returned for a company.
type CompanyResponse struct {
	CompanyID   string    `json:"companyID"`
	Name        string    `json:"name"`
	OwnerUserID string    `json:"ownerUserID"`
	VatNumber   string    `json:"vatNumber,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ListCompaniesResponse wraps a list of companies.
type ListCompaniesResponse struct {
	Companies []CompanyResponse `json:"companies"`
}

// ToCompanyResponse converts a domain.Company to CompanyResponse.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:   c.CompanyID,
		Name:        c.Name,
		OwnerUserID: c.OwnerUserID,
		VatNumber:   c.VatNumber,
		CreatedAt:   c.CreatedAt,
	}
}

// ToListCompaniesResponse converts a slice of domain.Company.
func ToListCompaniesResponse(companies []domain.Company) ListCompaniesResponse {
	resp := ListCompaniesResponse{Companies: make([]CompanyResponse, len(companies))}
	for i := range companies {
		resp.Companies[i] = ToCompanyResponse(&companies[i])
	}
	return resp
}
