package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/freelance_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/freelance_ledger/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock CompanyAuthorizer ---
type MockCompanyAuthorizer struct {
	mock.Mock
}

var _ portssvc.CompanyAuthorizerSvc = (*MockCompanyAuthorizer)(nil)

func (m *MockCompanyAuthorizer) AuthorizeCompanyAccess(ctx context.Context, userID, companyID string) error {
	args := m.Called(ctx, userID, companyID)
	return args.Error(0)
}

// --- Mock LedgerAccountRepository ---
type MockLedgerAccountRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerAccountRepositoryFacade = (*MockLedgerAccountRepository)(nil)

func (m *MockLedgerAccountRepository) FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, companyID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockLedgerAccountRepository) FindAccountByCode(ctx context.Context, companyID, code string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockLedgerAccountRepository) FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.LedgerAccount, error) {
	args := m.Called(ctx, companyID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.LedgerAccount), args.Error(1)
}

func (m *MockLedgerAccountRepository) ListAccounts(ctx context.Context, companyID string) ([]domain.LedgerAccount, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerAccount), args.Error(1)
}

func (m *MockLedgerAccountRepository) SaveAccount(ctx context.Context, account domain.LedgerAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// --- Mock BookingRepository ---
type MockBookingRepository struct {
	mock.Mock
}

var _ portsrepo.BookingRepositoryFacade = (*MockBookingRepository)(nil)

func (m *MockBookingRepository) FindBookingByID(ctx context.Context, companyID, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, companyID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListBookings(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Booking, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Booking), returnedNextToken, args.Error(2)
}

func (m *MockBookingRepository) SaveBookings(ctx context.Context, bookings []domain.Booking) error {
	args := m.Called(ctx, bookings)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateBooking(ctx context.Context, booking domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) DeleteBooking(ctx context.Context, companyID, bookingID string) error {
	args := m.Called(ctx, companyID, bookingID)
	return args.Error(0)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) ListPostingLines(ctx context.Context, companyID string, from, to time.Time) ([]domain.PostingLine, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PostingLine), args.Error(1)
}

// --- Mock TaxRulesRepository ---
type MockTaxRulesRepository struct {
	mock.Mock
}

var _ portsrepo.TaxRulesRepository = (*MockTaxRulesRepository)(nil)

func (m *MockTaxRulesRepository) FindTaxRules(ctx context.Context, companyID string, year int) (*domain.TaxRules, error) {
	args := m.Called(ctx, companyID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxRules), args.Error(1)
}

func (m *MockTaxRulesRepository) SaveTaxRules(ctx context.Context, rules domain.TaxRules) error {
	args := m.Called(ctx, rules)
	return args.Error(0)
}

func (m *MockTaxRulesRepository) UpdateTaxRules(ctx context.Context, rules domain.TaxRules) error {
	args := m.Called(ctx, rules)
	return args.Error(0)
}

// --- Mock TaxRulesLookup ---
type MockTaxRulesLookup struct {
	mock.Mock
}

var _ portsrepo.TaxRulesLookup = (*MockTaxRulesLookup)(nil)

func (m *MockTaxRulesLookup) FetchTaxRules(ctx context.Context, year int) (*domain.TaxRulesData, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxRulesData), args.Error(1)
}

// --- Mock IncomeTaxDataRepository ---
type MockIncomeTaxDataRepository struct {
	mock.Mock
}

var _ portsrepo.IncomeTaxDataRepository = (*MockIncomeTaxDataRepository)(nil)

func (m *MockIncomeTaxDataRepository) FindIncomeTaxData(ctx context.Context, companyID string, year int) (*domain.IncomeTaxData, error) {
	args := m.Called(ctx, companyID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeTaxData), args.Error(1)
}

func (m *MockIncomeTaxDataRepository) UpsertIncomeTaxData(ctx context.Context, data domain.IncomeTaxData) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

// --- Mock VatPeriodRepository ---
type MockVatPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.VatPeriodRepository = (*MockVatPeriodRepository)(nil)

func (m *MockVatPeriodRepository) FindVatPeriodByID(ctx context.Context, companyID, periodID string) (*domain.VatPeriod, error) {
	args := m.Called(ctx, companyID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VatPeriod), args.Error(1)
}

func (m *MockVatPeriodRepository) FindOverlappingVatPeriod(ctx context.Context, companyID string, period domain.Period) (*domain.VatPeriod, error) {
	args := m.Called(ctx, companyID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VatPeriod), args.Error(1)
}

func (m *MockVatPeriodRepository) ListVatPeriods(ctx context.Context, companyID string) ([]domain.VatPeriod, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VatPeriod), args.Error(1)
}

func (m *MockVatPeriodRepository) SaveVatPeriod(ctx context.Context, period domain.VatPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockVatPeriodRepository) UpdateVatPeriodStatus(ctx context.Context, period domain.VatPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, companyID, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, companyID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Invoice), returnedNextToken, args.Error(2)
}

func (m *MockInvoiceRepository) SaveInvoiceWithBookings(ctx context.Context, invoice domain.Invoice, bookings []domain.Booking, timeEntryIDs []string) error {
	args := m.Called(ctx, invoice, bookings, timeEntryIDs)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoice domain.Invoice, bookings []domain.Booking) error {
	args := m.Called(ctx, invoice, bookings)
	return args.Error(0)
}

// --- Mock WorkEntryRepository ---
type MockWorkEntryRepository struct {
	mock.Mock
}

var _ portsrepo.WorkEntryRepository = (*MockWorkEntryRepository)(nil)

func (m *MockWorkEntryRepository) FindTimeEntryByID(ctx context.Context, companyID, timeEntryID string) (*domain.TimeEntry, error) {
	args := m.Called(ctx, companyID, timeEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeEntry), args.Error(1)
}

func (m *MockWorkEntryRepository) FindTimeEntriesByIDs(ctx context.Context, companyID string, ids []string) ([]domain.TimeEntry, error) {
	args := m.Called(ctx, companyID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimeEntry), args.Error(1)
}

func (m *MockWorkEntryRepository) ListTimeEntries(ctx context.Context, companyID string, uninvoicedOnly bool) ([]domain.TimeEntry, error) {
	args := m.Called(ctx, companyID, uninvoicedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimeEntry), args.Error(1)
}

func (m *MockWorkEntryRepository) SaveTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockWorkEntryRepository) UpdateTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockWorkEntryRepository) DeleteTimeEntry(ctx context.Context, companyID, timeEntryID string) error {
	args := m.Called(ctx, companyID, timeEntryID)
	return args.Error(0)
}

func (m *MockWorkEntryRepository) FindMileageEntryByID(ctx context.Context, companyID, mileageEntryID string) (*domain.MileageEntry, error) {
	args := m.Called(ctx, companyID, mileageEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MileageEntry), args.Error(1)
}

func (m *MockWorkEntryRepository) ListMileageEntries(ctx context.Context, companyID string) ([]domain.MileageEntry, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MileageEntry), args.Error(1)
}

func (m *MockWorkEntryRepository) SaveMileageEntry(ctx context.Context, entry domain.MileageEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockWorkEntryRepository) DeleteMileageEntry(ctx context.Context, companyID, mileageEntryID string) error {
	args := m.Called(ctx, companyID, mileageEntryID)
	return args.Error(0)
}

func (m *MockWorkEntryRepository) BookMileageEntry(ctx context.Context, entry domain.MileageEntry, booking domain.Booking) error {
	args := m.Called(ctx, entry, booking)
	return args.Error(0)
}

// --- Mock LedgerAccountEnsurer (as used by the generating services) ---
type MockAccountEnsurer struct {
	mock.Mock
}

var _ portssvc.LedgerAccountEnsurerSvc = (*MockAccountEnsurer)(nil)

func (m *MockAccountEnsurer) EnsureAccount(ctx context.Context, companyID, code, userID string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, companyID, code, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

// --- Mock TaxRulesSvc ---
type MockTaxRulesSvc struct {
	mock.Mock
}

var _ portssvc.TaxRulesSvc = (*MockTaxRulesSvc)(nil)

func (m *MockTaxRulesSvc) GetOrCreate(ctx context.Context, companyID, userID string) (*domain.TaxRules, error) {
	args := m.Called(ctx, companyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxRules), args.Error(1)
}

func (m *MockTaxRulesSvc) GetOrCreateForYear(ctx context.Context, companyID string, year int, userID string) (*domain.TaxRules, error) {
	args := m.Called(ctx, companyID, year, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxRules), args.Error(1)
}

func (m *MockTaxRulesSvc) RefreshFromExternalSource(ctx context.Context, companyID string, year int, userID string) (*domain.TaxRules, error) {
	args := m.Called(ctx, companyID, year, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxRules), args.Error(1)
}
