package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/SscSPs/freelance_ledger/internal/apperrors"
	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/freelance_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/freelance_ledger/internal/core/ports/services"
	"github.com/SscSPs/freelance_ledger/internal/dto"
	"github.com/SscSPs/freelance_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// invoiceService implements the InvoiceSvcFacade interface
type invoiceService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	workRepo    portsrepo.WorkEntryRepository
	rulesRepo   portsrepo.TaxRulesRepository
	accounts    portssvc.LedgerAccountEnsurerSvc
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	workRepo portsrepo.WorkEntryRepository,
	rulesRepo portsrepo.TaxRulesRepository,
	accounts portssvc.LedgerAccountEnsurerSvc,
	options ...ServiceOption,
) portssvc.InvoiceSvcFacade {
	svc := &invoiceService{
		invoiceRepo: invoiceRepo,
		workRepo:    workRepo,
		rulesRepo:   rulesRepo,
		accounts:    accounts,
	}
	svc.apply(options)
	return svc
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// priceLine computes the net and VAT parts of one line.
func priceLine(line domain.InvoiceLine, inclusive bool) (domain.InvoiceLine, error) {
	if !line.Quantity.IsPositive() {
		return line, fmt.Errorf("%w: quantity of %q must be greater than zero", apperrors.ErrValidation, line.Description)
	}
	if line.UnitPrice.IsNegative() {
		return line, fmt.Errorf("%w: unit price of %q must not be negative", apperrors.ErrValidation, line.Description)
	}
	amount := line.Quantity.Mul(line.UnitPrice).Round(2)
	if inclusive {
		line.NetAmount, line.VatAmount = accounting.SplitInclusive(amount, line.VatRate)
	} else {
		line.NetAmount = amount
		line.VatAmount = accounting.SplitExclusive(amount, line.VatRate)
	}
	return line, nil
}

// timeEntryLines turns uninvoiced time entries into net priced lines.
func (s *invoiceService) timeEntryLines(ctx context.Context, companyID string, ids []string, code domain.VatCode, rules domain.TaxRules) ([]domain.InvoiceLine, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	unique := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	if len(unique) != len(ids) {
		return nil, fmt.Errorf("%w: time entries are listed more than once", apperrors.ErrValidation)
	}

	entries, err := s.workRepo.FindTimeEntriesByIDs(ctx, companyID, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load time entries for invoice")
		return nil, err
	}
	if len(entries) != len(ids) {
		return nil, fmt.Errorf("%w: %d of %d time entries found", apperrors.ErrNotFound, len(entries), len(ids))
	}

	lines := make([]domain.InvoiceLine, 0, len(entries))
	for _, entry := range entries {
		if entry.IsLocked() {
			return nil, fmt.Errorf("%w: time entry %s is already on invoice %s", apperrors.ErrLocked, entry.TimeEntryID, *entry.InvoiceID)
		}
		entryID := entry.TimeEntryID
		line, err := priceLine(domain.InvoiceLine{
			Description: entry.Description,
			Quantity:    entry.Hours,
			UnitPrice:   entry.HourlyRate,
			VatCode:     code,
			VatRate:     rules.VatRate(code),
			TimeEntryID: &entryID,
		}, false)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// invoiceBookings builds the revenue postings (one per revenue account) and the
// VAT posting. Together they add up to the invoice total.
func (s *invoiceService) invoiceBookings(ctx context.Context, invoice domain.Invoice, userID string) ([]domain.Booking, error) {
	receivables, err := s.accounts.EnsureAccount(ctx, invoice.CompanyID, domain.ReceivablesAccountCode, userID)
	if err != nil {
		return nil, err
	}

	netByCode := map[string]decimal.Decimal{}
	for _, line := range invoice.Lines {
		code := accounting.RevenueCodeFor(line.VatCode)
		netByCode[code] = netByCode[code].Add(line.NetAmount)
	}
	codes := make([]string, 0, len(netByCode))
	for code := range netByCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	source := &domain.BookingSource{Type: domain.SourceInvoice, ID: invoice.InvoiceID}
	now := s.Now()
	var bookings []domain.Booking
	for _, code := range codes {
		net := netByCode[code]
		if net.IsZero() {
			continue
		}
		revenue, err := s.accounts.EnsureAccount(ctx, invoice.CompanyID, code, userID)
		if err != nil {
			return nil, err
		}
		b, err := newBooking(bookingSpec{
			companyID:   invoice.CompanyID,
			date:        invoice.Date,
			description: fmt.Sprintf("Factuur %s omzet", invoice.Number),
			debit:       receivables.AccountID,
			credit:      revenue.AccountID,
			amount:      net,
			source:      source,
		}, userID, now)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}

	if invoice.VatTotal.IsPositive() {
		vatPayable, err := s.accounts.EnsureAccount(ctx, invoice.CompanyID, domain.VatPayableAccountCode, userID)
		if err != nil {
			return nil, err
		}
		b, err := newBooking(bookingSpec{
			companyID:   invoice.CompanyID,
			date:        invoice.Date,
			description: fmt.Sprintf("Factuur %s btw", invoice.Number),
			debit:       receivables.AccountID,
			credit:      vatPayable.AccountID,
			amount:      invoice.VatTotal,
			source:      source,
		}, userID, now)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}

	sum := decimal.Zero
	for _, b := range bookings {
		sum = sum.Add(b.Amount)
	}
	if !sum.Equal(invoice.Total) {
		return nil, apperrors.Invariant("invoice %s postings sum to %s, total is %s", invoice.Number, sum, invoice.Total)
	}
	return bookings, nil
}

func (s *invoiceService) CreateInvoice(ctx context.Context, companyID string, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}

	number := strings.TrimSpace(req.Number)
	if number == "" {
		return nil, fmt.Errorf("%w: invoice number is required", apperrors.ErrValidation)
	}
	date := truncateDate(req.Date)
	dueDate := truncateDate(req.DueDate)
	if dueDate.Before(date) {
		return nil, fmt.Errorf("%w: due date is before the invoice date", apperrors.ErrValidation)
	}
	if len(req.Lines) == 0 && len(req.TimeEntryIDs) == 0 {
		return nil, fmt.Errorf("%w: an invoice needs at least one line", apperrors.ErrValidation)
	}

	rules, err := effectiveRules(ctx, s.rulesRepo, companyID, date.Year())
	if err != nil {
		s.LogError(ctx, err, "Failed to load tax rules for invoice", slog.String("company_id", companyID))
		return nil, err
	}

	lines := make([]domain.InvoiceLine, 0, len(req.Lines)+len(req.TimeEntryIDs))
	for _, l := range req.Lines {
		code, _ := domain.NormalizeVatCode(l.VatCode)
		line, err := priceLine(domain.InvoiceLine{
			Description: strings.TrimSpace(l.Description),
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			VatCode:     code,
			VatRate:     rules.VatRate(code),
		}, req.PricesIncludeVat)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	entryCode, _ := domain.NormalizeVatCode(req.TimeEntryVatCode)
	entryLines, err := s.timeEntryLines(ctx, companyID, req.TimeEntryIDs, entryCode, rules)
	if err != nil {
		return nil, err
	}
	lines = append(lines, entryLines...)

	invoice := domain.Invoice{
		InvoiceID:        uuid.NewString(),
		CompanyID:        companyID,
		CustomerID:       req.CustomerID,
		Number:           number,
		Date:             date,
		DueDate:          dueDate,
		PricesIncludeVat: req.PricesIncludeVat,
		Lines:            lines,
		Total:            decimal.Zero,
		VatTotal:         decimal.Zero,
		Status:           domain.InvoiceDraft,
		AuditFields:      newAuditFields(userID, s.Now()),
	}
	for _, line := range lines {
		invoice.Total = invoice.Total.Add(line.NetAmount).Add(line.VatAmount)
		invoice.VatTotal = invoice.VatTotal.Add(line.VatAmount)
	}
	if !invoice.Total.IsPositive() {
		return nil, fmt.Errorf("%w: invoice total must be greater than zero", apperrors.ErrValidation)
	}

	bookings, err := s.invoiceBookings(ctx, invoice, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvariantViolation) {
			s.LogError(ctx, err, "Invoice postings do not add up", slog.String("number", number))
		}
		return nil, err
	}

	if err := s.invoiceRepo.SaveInvoiceWithBookings(ctx, invoice, bookings, req.TimeEntryIDs); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			return nil, fmt.Errorf("%w: invoice number %s is already used", apperrors.ErrDuplicate, number)
		case errors.Is(err, apperrors.ErrLocked):
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save invoice", slog.String("company_id", companyID))
		return nil, err
	}

	s.LogInfo(ctx, "Invoice created",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("number", number),
		slog.String("total", invoice.Total.String()),
		slog.Int("bookings", len(bookings)))
	return &invoice, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, companyID, invoiceID, userID string) (*domain.Invoice, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, err
	}
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, companyID, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find invoice", slog.String("invoice_id", invoiceID))
		}
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, companyID string, limit int, nextToken *string, userID string) ([]domain.Invoice, *string, error) {
	if err := s.AuthorizeCompany(ctx, userID, companyID); err != nil {
		return nil, nil, err
	}
	invoices, next, err := s.invoiceRepo.ListInvoices(ctx, companyID, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices", slog.String("company_id", companyID))
		return nil, nil, err
	}
	return invoices, next, nil
}

func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, companyID, invoiceID string, status domain.InvoiceStatus, userID string) (*domain.Invoice, error) {
	invoice, err := s.GetInvoice(ctx, companyID, invoiceID, userID)
	if err != nil {
		return nil, err
	}
	if invoice.Status == domain.InvoicePaid {
		return nil, fmt.Errorf("%w: invoice %s is paid", apperrors.ErrLocked, invoice.Number)
	}
	if !invoice.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: invoice cannot move from %s to %s", apperrors.ErrValidation, invoice.Status, status)
	}

	var bookings []domain.Booking
	if status == domain.InvoicePaid {
		receipt, err := s.receiptBooking(ctx, *invoice, userID)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, receipt)
	}

	invoice.Status = status
	invoice.LastUpdatedAt = s.Now()
	invoice.LastUpdatedBy = userID
	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, *invoice, bookings); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invoice %s changed concurrently", apperrors.ErrLocked, invoice.Number)
		}
		s.LogError(ctx, err, "Failed to update invoice status", slog.String("invoice_id", invoiceID))
		return nil, err
	}

	s.LogInfo(ctx, "Invoice status updated",
		slog.String("invoice_id", invoiceID),
		slog.String("status", string(status)))
	return invoice, nil
}

// receiptBooking moves the receivable to the bank account on payment.
func (s *invoiceService) receiptBooking(ctx context.Context, invoice domain.Invoice, userID string) (domain.Booking, error) {
	bank, err := s.accounts.EnsureAccount(ctx, invoice.CompanyID, domain.BankAccountCode, userID)
	if err != nil {
		return domain.Booking{}, err
	}
	receivables, err := s.accounts.EnsureAccount(ctx, invoice.CompanyID, domain.ReceivablesAccountCode, userID)
	if err != nil {
		return domain.Booking{}, err
	}
	return newBooking(bookingSpec{
		companyID:   invoice.CompanyID,
		date:        s.Today(),
		description: fmt.Sprintf("Ontvangst factuur %s", invoice.Number),
		debit:       bank.AccountID,
		credit:      receivables.AccountID,
		amount:      invoice.Total,
		source:      &domain.BookingSource{Type: domain.SourceInvoice, ID: invoice.InvoiceID},
	}, userID, s.Now())
}
