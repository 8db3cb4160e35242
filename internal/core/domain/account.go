package domain

import (
	"fmt"
	"strings"
)

// AccountCategory is the accounting category of a ledger account.
// It is derived from the account code once, at creation, and stored.
type AccountCategory string

const (
	Asset     AccountCategory = "ASSET"
	Liability AccountCategory = "LIABILITY"
	Equity    AccountCategory = "EQUITY"
	Cost      AccountCategory = "COST"
	Revenue   AccountCategory = "REVENUE"
)

// AccountType tells balance sheet accounts apart from result accounts.
type AccountType string

const (
	BalanceAccount AccountType = "balance"
	ResultAccount  AccountType = "result"
)

// Designated account codes used by the booking flows and reports.
const (
	CashAccountCode        = "1000"
	BankAccountCode        = "1100"
	SavingsAccountCode     = "1200"
	ReceivablesAccountCode = "1300"
	VatPayableAccountCode  = "1500"
	InputVatAccountCode    = "1510"
	CreditorsAccountCode   = "1600"
	EquityAccountCode      = "0500"
	RevenueAccountCode     = "8000"
	TravelCostAccountCode  = "4500"
)

// LedgerAccount is a chart-of-accounts entry of a company.
type LedgerAccount struct {
	AccountID string          `json:"accountID"` // Primary Key (UUID)
	CompanyID string          `json:"companyID"`
	Code      string          `json:"code"` // Numeric string, unique per company
	Name      string          `json:"name"`
	Type      AccountType     `json:"type"`
	Category  AccountCategory `json:"category"`
	AuditFields
}

// IsCash reports whether the account is one of the designated cash/bank accounts.
func (a LedgerAccount) IsCash() bool {
	return a.Code == CashAccountCode || a.Code == BankAccountCode
}

// DebitNormal reports whether the account balance is debit minus credit.
func (c AccountCategory) DebitNormal() bool {
	return c == Asset || c == Cost
}

// TypeFor returns the account type implied by a category.
func TypeFor(c AccountCategory) AccountType {
	if c == Cost || c == Revenue {
		return ResultAccount
	}
	return BalanceAccount
}

// ValidateAccountCode checks that code is a non-empty digit string.
func ValidateAccountCode(code string) error {
	if code == "" {
		return fmt.Errorf("account code is required")
	}
	if strings.IndexFunc(code, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return fmt.Errorf("account code %q must be numeric", code)
	}
	return nil
}

// CategoryForCode applies the code-prefix seeding rule.
func CategoryForCode(code string) (AccountCategory, error) {
	if err := ValidateAccountCode(code); err != nil {
		return "", err
	}
	switch code[0] {
	case '0', '1':
		return Asset, nil
	case '2', '3':
		return Liability, nil
	case '4', '5', '6', '7':
		return Cost, nil
	case '8':
		return Revenue, nil
	default:
		return "", fmt.Errorf("account code %q has no category", code)
	}
}
