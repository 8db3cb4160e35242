package pgsql

import (
	portsrepo "github.com/SscSPs/freelance_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CompanyRepo:       newPgxCompanyRepository(dbPool),
		AccountRepo:       newPgxLedgerAccountRepository(dbPool),
		BookingRepo:       newPgxBookingRepository(dbPool),
		ReportingRepo:     newReportingRepository(dbPool),
		TaxRulesRepo:      newPgxTaxRulesRepository(dbPool),
		IncomeTaxDataRepo: newPgxIncomeTaxDataRepository(dbPool),
		VatPeriodRepo:     newPgxVatPeriodRepository(dbPool),
		InvoiceRepo:       newPgxInvoiceRepository(dbPool),
		WorkEntryRepo:     newPgxWorkEntryRepository(dbPool),
	}
}
