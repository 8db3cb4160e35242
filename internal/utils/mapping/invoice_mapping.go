package mapping

import (
	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	"github.com/SscSPs/freelance_ledger/internal/models"
)

// ToModelInvoice converts a domain Invoice to its header row and line rows.
func ToModelInvoice(d domain.Invoice) (models.Invoice, []models.InvoiceLine) {
	header := models.Invoice{
		InvoiceID:        d.InvoiceID,
		CompanyID:        d.CompanyID,
		CustomerID:       d.CustomerID,
		Number:           d.Number,
		InvoiceDate:      d.Date,
		DueDate:          d.DueDate,
		PricesIncludeVat: d.PricesIncludeVat,
		Total:            d.Total,
		VatTotal:         d.VatTotal,
		Status:           string(d.Status),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
	lines := make([]models.InvoiceLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = models.InvoiceLine{
			InvoiceID:   d.InvoiceID,
			LineNo:      i + 1,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			VatCode:     string(l.VatCode),
			VatRate:     l.VatRate,
			NetAmount:   l.NetAmount,
			VatAmount:   l.VatAmount,
			TimeEntryID: l.TimeEntryID,
		}
	}
	return header, lines
}

// ToDomainInvoice converts a header row and its line rows to a domain Invoice.
func ToDomainInvoice(m models.Invoice, lines []models.InvoiceLine) domain.Invoice {
	d := domain.Invoice{
		InvoiceID:        m.InvoiceID,
		CompanyID:        m.CompanyID,
		CustomerID:       m.CustomerID,
		Number:           m.Number,
		Date:             m.InvoiceDate,
		DueDate:          m.DueDate,
		PricesIncludeVat: m.PricesIncludeVat,
		Total:            m.Total,
		VatTotal:         m.VatTotal,
		Status:           domain.InvoiceStatus(m.Status),
		Lines:            make([]domain.InvoiceLine, len(lines)),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
	for i, l := range lines {
		d.Lines[i] = domain.InvoiceLine{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			VatCode:     domain.VatCode(l.VatCode),
			VatRate:     l.VatRate,
			NetAmount:   l.NetAmount,
			VatAmount:   l.VatAmount,
			TimeEntryID: l.TimeEntryID,
		}
	}
	return d
}

// ToModelTimeEntry converts a domain TimeEntry to its model
func ToModelTimeEntry(d domain.TimeEntry) models.TimeEntry {
	return models.TimeEntry{
		TimeEntryID: d.TimeEntryID,
		CompanyID:   d.CompanyID,
		EntryDate:   d.Date,
		Description: d.Description,
		Hours:       d.Hours,
		HourlyRate:  d.HourlyRate,
		InvoiceID:   d.InvoiceID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTimeEntry converts a model TimeEntry to its domain form
func ToDomainTimeEntry(m models.TimeEntry) domain.TimeEntry {
	return domain.TimeEntry{
		TimeEntryID: m.TimeEntryID,
		CompanyID:   m.CompanyID,
		Date:        m.EntryDate,
		Description: m.Description,
		Hours:       m.Hours,
		HourlyRate:  m.HourlyRate,
		InvoiceID:   m.InvoiceID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelMileageEntry converts a domain MileageEntry to its model
func ToModelMileageEntry(d domain.MileageEntry) models.MileageEntry {
	return models.MileageEntry{
		MileageEntryID: d.MileageEntryID,
		CompanyID:      d.CompanyID,
		EntryDate:      d.Date,
		Description:    d.Description,
		Kilometers:     d.Kilometers,
		RatePerKm:      d.RatePerKm,
		BookingID:      d.BookingID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMileageEntry converts a model MileageEntry to its domain form
func ToDomainMileageEntry(m models.MileageEntry) domain.MileageEntry {
	return domain.MileageEntry{
		MileageEntryID: m.MileageEntryID,
		CompanyID:      m.CompanyID,
		Date:           m.EntryDate,
		Description:    m.Description,
		Kilometers:     m.Kilometers,
		RatePerKm:      m.RatePerKm,
		BookingID:      m.BookingID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
