package mapping

import (
	"testing"

	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxRulesBracketColumns(t *testing.T) {
	ceiling := decimal.RequireFromString("38441")
	rules := domain.TaxRules{
		Year: 2025,
		Brackets: []domain.TaxBracket{
			{Ceiling: &ceiling, Rate: decimal.RequireFromString("35.82")},
			{Rate: decimal.RequireFromString("49.50")},
		},
	}

	m := ToModelTaxRules(rules)
	assert.NotNil(t, m.BracketCeilings[0])
	assert.Nil(t, m.BracketCeilings[1])
	assert.Nil(t, m.BracketRates[2])

	back := ToDomainTaxRules(m)
	require.Len(t, back.Brackets, 2)
	assert.True(t, back.Brackets[0].Ceiling.Equal(ceiling))
	assert.Nil(t, back.Brackets[1].Ceiling)
	assert.True(t, back.Brackets[1].Rate.Equal(decimal.RequireFromString("49.5")))
}

func TestBookingSourceMapping(t *testing.T) {
	code := domain.VatLow
	b := domain.Booking{
		BookingID: "b1",
		Amount:    decimal.NewFromInt(10),
		VatCode:   &code,
		Source:    &domain.BookingSource{Type: domain.SourceInvoice, ID: "inv-1"},
	}

	back := ToDomainBooking(ToModelBooking(b))
	require.NotNil(t, back.Source)
	assert.Equal(t, domain.SourceInvoice, back.Source.Type)
	assert.Equal(t, "inv-1", back.Source.ID)
	assert.True(t, back.IsLinked())
	require.NotNil(t, back.VatCode)
	assert.Equal(t, domain.VatLow, *back.VatCode)

	manual := ToDomainBooking(ToModelBooking(domain.Booking{BookingID: "b2"}))
	assert.False(t, manual.IsLinked())
	assert.Nil(t, manual.VatCode)
}
