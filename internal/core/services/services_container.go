package services

import (
	portsrepo "github.com/SscSPs/freelance_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/freelance_ledger/internal/core/ports/services"
	"github.com/SscSPs/freelance_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// taxLookup may be nil when the external lookup is disabled.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, taxLookup portsrepo.TaxRulesLookup) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Initialize company service first since every other service authorizes through it
	container.Company = NewCompanyService(repos.CompanyRepo)
	authorized := WithCompanyAuthorizer(container.Company)

	container.Account = NewLedgerAccountService(repos.AccountRepo, authorized)
	container.Booking = NewBookingService(repos.BookingRepo, repos.AccountRepo, authorized)
	container.TaxRules = NewTaxRulesService(repos.TaxRulesRepo, taxLookup, authorized)
	container.Vat = NewVatService(repos.TaxRulesRepo, authorized)
	container.Reporting = NewReportingService(repos.ReportingRepo, authorized)
	container.IncomeTax = NewIncomeTaxService(repos.IncomeTaxDataRepo, container.TaxRules, container.Reporting, authorized)
	container.Reservation = NewReservationService(
		repos.ReportingRepo,
		repos.IncomeTaxDataRepo,
		container.TaxRules,
		cfg.ReservationFallbackRatio,
		authorized,
	)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.WorkEntryRepo, repos.TaxRulesRepo, container.Account, authorized)
	container.VatPeriod = NewVatPeriodService(repos.VatPeriodRepo, repos.ReportingRepo, authorized)
	container.DocumentIntake = NewDocumentIntakeService(repos.BookingRepo, repos.TaxRulesRepo, container.Account, authorized)
	container.WorkEntry = NewWorkEntryService(repos.WorkEntryRepo, container.Account, authorized)

	return container
}
