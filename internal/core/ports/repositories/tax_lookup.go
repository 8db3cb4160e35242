package repositories

import (
	"context"

	"github.com/SscSPs/freelance_ledger/internal/core/domain"
)

// TaxRulesLookup is the external collaborator publishing statutory rates.
// Its answers are best effort and partial; callers validate every field.
type TaxRulesLookup interface {
	FetchTaxRules(ctx context.Context, year int) (*domain.TaxRulesData, error)
}
