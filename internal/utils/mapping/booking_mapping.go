package mapping

import (
	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	"github.com/SscSPs/freelance_ledger/internal/models"
)

// ToModelBooking converts a domain Booking to a model Booking
func ToModelBooking(d domain.Booking) models.Booking {
	m := models.Booking{
		BookingID:       d.BookingID,
		CompanyID:       d.CompanyID,
		BookingDate:     d.Date,
		Description:     d.Description,
		DebitAccountID:  d.DebitAccountID,
		CreditAccountID: d.CreditAccountID,
		Amount:          d.Amount,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
	if d.VatCode != nil {
		code := string(*d.VatCode)
		m.VatCode = &code
	}
	if d.Source != nil {
		sourceType := string(d.Source.Type)
		sourceID := d.Source.ID
		m.SourceType = &sourceType
		m.SourceID = &sourceID
	}
	return m
}

// ToDomainBooking converts a model Booking to a domain Booking
func ToDomainBooking(m models.Booking) domain.Booking {
	d := domain.Booking{
		BookingID:       m.BookingID,
		CompanyID:       m.CompanyID,
		Date:            m.BookingDate,
		Description:     m.Description,
		DebitAccountID:  m.DebitAccountID,
		CreditAccountID: m.CreditAccountID,
		Amount:          m.Amount,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
	if m.VatCode != nil {
		code := domain.VatCode(*m.VatCode)
		d.VatCode = &code
	}
	if m.SourceType != nil && m.SourceID != nil {
		d.Source = &domain.BookingSource{Type: domain.SourceType(*m.SourceType), ID: *m.SourceID}
	}
	return d
}

// ToDomainBookingSlice converts a slice of model Bookings to domain Bookings
func ToDomainBookingSlice(ms []models.Booking) []domain.Booking {
	ds := make([]domain.Booking, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBooking(m)
	}
	return ds
}
