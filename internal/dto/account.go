package dto

import (
	"time"

	"github.com/SscSPs/freelance_ledger/internal/core/domain"
)

// EnsureAccountRequest asks for the account with the given code, creating it on first use.
type EnsureAccountRequest struct {
	Code string `json:"code" binding:"required,numeric,max=10"`
}

// AccountResponse defines the data returned for a ledger account.
type AccountResponse struct {
	AccountID     string                 `json:"accountID"`
	Code          string                 `json:"code"`
	Name          string                 `json:"name"`
	Type          domain.AccountType     `json:"type"`
	Category      domain.AccountCategory `json:"category"`
	CreatedAt     time.Time              `json:"createdAt"`
	CreatedBy     string                 `json:"createdBy"`
	LastUpdatedAt time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy string                 `json:"lastUpdatedBy"`
}

// ListAccountsResponse wraps the chart of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.LedgerAccount to AccountResponse DTO
func ToAccountResponse(acc *domain.LedgerAccount) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Code:          acc.Code,
		Name:          acc.Name,
		Type:          acc.Type,
		Category:      acc.Category,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToListAccountsResponse converts a slice of domain.LedgerAccount.
func ToListAccountsResponse(accounts []domain.LedgerAccount) ListAccountsResponse {
	resp := ListAccountsResponse{Accounts: make([]AccountResponse, len(accounts))}
	for i := range accounts {
		resp.Accounts[i] = ToAccountResponse(&accounts[i])
	}
	return resp
}
