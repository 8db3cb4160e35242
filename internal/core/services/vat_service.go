package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/freelance_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/freelance_ledger/internal/core/ports/services"
	"github.com/SscSPs/freelance_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// vatService resolves VAT codes against the company's rules of the current year.
type vatService struct {
	BaseService
	rulesRepo portsrepo.TaxRulesRepository
}

// NewVatService creates a new VAT service
func NewVatService(rulesRepo portsrepo.TaxRulesRepository, options ...ServiceOption) portssvc.VatSvc {
	svc := &vatService{rulesRepo: rulesRepo}
	svc.apply(options)
	return svc
}

var _ portssvc.VatSvc = (*vatService)(nil)

func (s *vatService) Resolve(ctx context.Context, companyID string, code domain.VatCode, userID string) (decimal.Decimal, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return decimal.Zero, err
	}
	rules, err := effectiveRules(ctx, s.rulesRepo, companyID, s.Now().Year())
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve VAT rate", slog.String("company_id", companyID))
		return decimal.Zero, err
	}
	normalized, ok := domain.NormalizeVatCode(string(code))
	if !ok {
		s.LogDebug(ctx, "Unknown VAT code, using standard rate", slog.String("vat_code", string(code)))
	}
	return rules.VatRate(normalized), nil
}

func (s *vatService) SplitInclusive(ctx context.Context, companyID string, gross decimal.Decimal, code domain.VatCode, userID string) (decimal.Decimal, decimal.Decimal, error) {
	rate, err := s.Resolve(ctx, companyID, code, userID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	net, vat := accounting.SplitInclusive(gross, rate)
	return net, vat, nil
}

func (s *vatService) SplitExclusive(ctx context.Context, companyID string, net decimal.Decimal, code domain.VatCode, userID string) (decimal.Decimal, error) {
	rate, err := s.Resolve(ctx, companyID, code, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return accounting.SplitExclusive(net, rate), nil
}
