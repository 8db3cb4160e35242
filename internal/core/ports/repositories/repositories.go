package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	CompanyRepo       CompanyRepositoryFacade
	AccountRepo       LedgerAccountRepositoryFacade
	BookingRepo       BookingRepositoryFacade
	ReportingRepo     ReportingRepository
	TaxRulesRepo      TaxRulesRepository
	IncomeTaxDataRepo IncomeTaxDataRepository
	VatPeriodRepo     VatPeriodRepository
	InvoiceRepo       InvoiceRepositoryFacade
	WorkEntryRepo     WorkEntryRepository
}
