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
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var maxDocumentAmount = decimal.NewFromInt(1_000_000)

// documentIntakeService implements the DocumentIntakeSvc interface
type documentIntakeService struct {
	BaseService
	bookingRepo portsrepo.BookingWriter
	rulesRepo   portsrepo.TaxRulesRepository
	accounts    portssvc.LedgerAccountEnsurerSvc
	validate    *validator.Validate
}

// NewDocumentIntakeService creates a new document intake service
func NewDocumentIntakeService(
	bookingRepo portsrepo.BookingWriter,
	rulesRepo portsrepo.TaxRulesRepository,
	accounts portssvc.LedgerAccountEnsurerSvc,
	options ...ServiceOption,
) portssvc.DocumentIntakeSvc {
	svc := &documentIntakeService{
		bookingRepo: bookingRepo,
		rulesRepo:   rulesRepo,
		accounts:    accounts,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
	svc.apply(options)
	return svc
}

var _ portssvc.DocumentIntakeSvc = (*documentIntakeService)(nil)

// vatCodeForRate maps a percentage back onto the symbolic code of the rules.
func vatCodeForRate(rules domain.TaxRules, rate decimal.Decimal) (domain.VatCode, bool) {
	for _, code := range []domain.VatCode{domain.VatHigh, domain.VatLow, domain.VatZero} {
		if rules.VatRate(code).Equal(rate) {
			return code, true
		}
	}
	return "", false
}

// checkSuggestion rejects anything the collaborator got wrong before a posting
// is attempted.
func (s *documentIntakeService) checkSuggestion(suggestion domain.DocumentSuggestion, rules domain.TaxRules) (domain.VatCode, error) {
	if err := s.validate.Struct(suggestion); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			fields := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return "", fmt.Errorf("%w: invalid suggestion fields: %s", apperrors.ErrValidation, strings.Join(fields, ", "))
		}
		return "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if !suggestion.ExtractedAmount.IsPositive() || suggestion.ExtractedAmount.GreaterThan(maxDocumentAmount) {
		return "", fmt.Errorf("%w: amount %s is outside (0, %s]", apperrors.ErrValidation, suggestion.ExtractedAmount, maxDocumentAmount)
	}
	if !suggestion.ExtractedAmount.Equal(suggestion.ExtractedAmount.Round(2)) {
		return "", fmt.Errorf("%w: amount %s has more than two decimals", apperrors.ErrValidation, suggestion.ExtractedAmount)
	}
	category, err := accounting.CategoryOf(suggestion.SuggestedLedgerCode)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if category != domain.Cost {
		return "", fmt.Errorf("%w: ledger code %s is not a cost account", apperrors.ErrValidation, suggestion.SuggestedLedgerCode)
	}
	code, ok := vatCodeForRate(rules, suggestion.VatPercentage)
	if !ok {
		return "", fmt.Errorf("%w: VAT percentage %s is not a known rate", apperrors.ErrValidation, suggestion.VatPercentage)
	}
	return code, nil
}

func (s *documentIntakeService) ProcessDocumentSuggestion(ctx context.Context, companyID string, suggestion domain.DocumentSuggestion, paymentAccountCode string, userID string) (*domain.DocumentBookingResult, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}

	today := s.Today()
	rules, err := effectiveRules(ctx, s.rulesRepo, companyID, today.Year())
	if err != nil {
		s.LogError(ctx, err, "Failed to load tax rules for document", slog.String("company_id", companyID))
		return nil, err
	}
	vatCode, err := s.checkSuggestion(suggestion, rules)
	if err != nil {
		s.LogDebug(ctx, "Rejected document suggestion", slog.String("reason", err.Error()))
		return nil, err
	}

	if strings.TrimSpace(paymentAccountCode) == "" {
		paymentAccountCode = domain.BankAccountCode
	}
	paymentCategory, err := accounting.CategoryOf(paymentAccountCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if paymentCategory != domain.Asset && paymentCategory != domain.Liability {
		return nil, fmt.Errorf("%w: payment account %s must be a balance sheet account", apperrors.ErrValidation, paymentAccountCode)
	}

	costAccount, err := s.accounts.EnsureAccount(ctx, companyID, suggestion.SuggestedLedgerCode, userID)
	if err != nil {
		return nil, err
	}
	payment, err := s.accounts.EnsureAccount(ctx, companyID, paymentAccountCode, userID)
	if err != nil {
		return nil, err
	}

	net, vat := accounting.SplitInclusive(suggestion.ExtractedAmount, suggestion.VatPercentage)
	source := &domain.BookingSource{Type: domain.SourceDocument, ID: uuid.NewString()}
	description := fmt.Sprintf("%s: %s", strings.TrimSpace(suggestion.Vendor), strings.TrimSpace(suggestion.Category))
	now := s.Now()

	cost, err := newBooking(bookingSpec{
		companyID:   companyID,
		date:        today,
		description: description,
		debit:       costAccount.AccountID,
		credit:      payment.AccountID,
		amount:      net,
		vatCode:     &vatCode,
		source:      source,
	}, userID, now)
	if err != nil {
		return nil, err
	}
	result := &domain.DocumentBookingResult{CostBooking: cost}
	bookings := []domain.Booking{cost}

	if vat.IsPositive() {
		inputVat, err := s.accounts.EnsureAccount(ctx, companyID, domain.InputVatAccountCode, userID)
		if err != nil {
			return nil, err
		}
		vatBooking, err := newBooking(bookingSpec{
			companyID:   companyID,
			date:        today,
			description: description + " (btw)",
			debit:       inputVat.AccountID,
			credit:      payment.AccountID,
			amount:      vat,
			vatCode:     &vatCode,
			source:      source,
		}, userID, now)
		if err != nil {
			return nil, err
		}
		result.VatBooking = &vatBooking
		bookings = append(bookings, vatBooking)
	}

	if err := s.bookingRepo.SaveBookings(ctx, bookings); err != nil {
		s.LogError(ctx, err, "Failed to save document bookings", slog.String("company_id", companyID))
		return nil, err
	}

	s.LogInfo(ctx, "Document booked",
		slog.String("document_ref", source.ID),
		slog.String("gross", suggestion.ExtractedAmount.String()),
		slog.String("net", net.String()))
	return result, nil
}
