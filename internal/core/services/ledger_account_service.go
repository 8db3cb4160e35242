package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/freelance_ledger/internal/apperrors"
	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/freelance_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/freelance_ledger/internal/core/ports/services"
	"github.com/SscSPs/freelance_ledger/internal/utils/accounting"
	"github.com/google/uuid"
)

// ledgerAccountService is the single place accounts are looked up or created by code.
type ledgerAccountService struct {
	BaseService
	accountRepo portsrepo.LedgerAccountRepositoryFacade
}

// NewLedgerAccountService creates a new ledger account service
func NewLedgerAccountService(repo portsrepo.LedgerAccountRepositoryFacade, options ...ServiceOption) portssvc.LedgerAccountSvcFacade {
	svc := &ledgerAccountService{accountRepo: repo}
	svc.apply(options)
	return svc
}

var _ portssvc.LedgerAccountSvcFacade = (*ledgerAccountService)(nil)

func (s *ledgerAccountService) GetAccountByID(ctx context.Context, companyID, accountID, userID string) (*domain.LedgerAccount, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *ledgerAccountService) ListAccounts(ctx context.Context, companyID, userID string) ([]domain.LedgerAccount, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list accounts for company %s: %w", companyID, err)
	}
	return accounts, nil
}

// EnsureAccount returns the account with code, creating it from the standard
// chart when it does not exist yet. A writer losing the creation race re-reads
// the winner's row.
func (s *ledgerAccountService) EnsureAccount(ctx context.Context, companyID, code, userID string) (*domain.LedgerAccount, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}

	existing, err := s.accountRepo.FindAccountByCode(ctx, companyID, code)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up account", slog.String("code", code))
		return nil, err
	}

	name, category, err := accounting.AccountTemplate(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	now := s.Now()
	account := domain.LedgerAccount{
		AccountID: uuid.NewString(),
		CompanyID: companyID,
		Code:      code,
		Name:      name,
		Type:      domain.TypeFor(category),
		Category:  category,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	err = s.accountRepo.SaveAccount(ctx, account)
	switch {
	case err == nil:
		s.LogInfo(ctx, "Ledger account created",
			slog.String("company_id", companyID),
			slog.String("code", code),
			slog.String("category", string(category)))
		return &account, nil
	case errors.Is(err, apperrors.ErrDuplicate):
		s.LogDebug(ctx, "Account created concurrently, re-reading", slog.String("code", code))
		return s.accountRepo.FindAccountByCode(ctx, companyID, code)
	default:
		s.LogError(ctx, err, "Failed to save account", slog.String("code", code))
		return nil, err
	}
}
