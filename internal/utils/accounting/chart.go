package accounting

import (
	"fmt"

	"github.com/SscSPs/freelance_ledger/internal/core/domain"
)

type chartEntry struct {
	Name     string
	Category domain.AccountCategory // empty means derive from the code prefix
}

// standardChart is the static chart of accounts used to name accounts on first use.
var standardChart = map[string]chartEntry{
	domain.EquityAccountCode:      {Name: "Eigen vermogen", Category: domain.Equity},
	"0510":                        {Name: "Privéstortingen en -opnamen", Category: domain.Equity},
	domain.CashAccountCode:        {Name: "Kas"},
	domain.BankAccountCode:        {Name: "Bank"},
	domain.SavingsAccountCode:     {Name: "Spaarrekening"},
	domain.ReceivablesAccountCode: {Name: "Debiteuren"},
	domain.VatPayableAccountCode:  {Name: "Af te dragen btw", Category: domain.Liability},
	domain.InputVatAccountCode:    {Name: "Te vorderen btw"},
	domain.CreditorsAccountCode:   {Name: "Crediteuren", Category: domain.Liability},
	"4000":                        {Name: "Algemene kosten"},
	"4100":                        {Name: "Huisvestingskosten"},
	"4200":                        {Name: "Kantoorkosten"},
	"4300":                        {Name: "Software en abonnementen"},
	"4400":                        {Name: "Telefoon en internet"},
	domain.TravelCostAccountCode:  {Name: "Reiskosten"},
	"4600":                        {Name: "Representatiekosten"},
	"4700":                        {Name: "Verzekeringen"},
	"4800":                        {Name: "Afschrijvingen"},
	"4900":                        {Name: "Overige kosten"},
	domain.RevenueAccountCode:     {Name: "Omzet"},
	"8100":                        {Name: "Omzet laag tarief"},
	"8200":                        {Name: "Omzet vrijgesteld"},
}

// AccountTemplate returns the name and category a new account with code gets.
func AccountTemplate(code string) (string, domain.AccountCategory, error) {
	derived, err := CategoryOf(code)
	if err != nil {
		return "", "", err
	}
	if entry, ok := standardChart[code]; ok {
		return entry.Name, derived, nil
	}
	return fmt.Sprintf("Rekening %s", code), derived, nil
}

// CategoryOf returns the pinned category of a catalog code or the prefix category.
func CategoryOf(code string) (domain.AccountCategory, error) {
	category, err := domain.CategoryForCode(code)
	if err != nil {
		return "", err
	}
	if entry, ok := standardChart[code]; ok && entry.Category != "" {
		return entry.Category, nil
	}
	return category, nil
}

// RevenueCodeFor picks the revenue account for a VAT code.
func RevenueCodeFor(code domain.VatCode) string {
	switch code {
	case domain.VatLow:
		return "8100"
	case domain.VatZero:
		return "8200"
	default:
		return domain.RevenueAccountCode
	}
}
