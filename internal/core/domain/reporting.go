package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountAmount represents an account with its net amount for financial reports
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// AmountGroup is a list of accounts with their total.
type AmountGroup struct {
	Accounts []AccountAmount `json:"accounts"`
	Total    decimal.Decimal `json:"total"`
}

// PAndLReport represents a profit and loss report
type PAndLReport struct {
	Period  Period          `json:"period"`
	Revenue AmountGroup     `json:"revenue"`
	Costs   AmountGroup     `json:"costs"`
	Profit  decimal.Decimal `json:"profit"` // Revenue total minus costs total
	Margin  decimal.Decimal `json:"margin"` // Percentage, zero without revenue
}

// BalanceSheetReport represents a balance sheet report
type BalanceSheetReport struct {
	AsOf             time.Time       `json:"asOf"`
	Assets           AmountGroup     `json:"assets"`
	Liabilities      AmountGroup     `json:"liabilities"`
	EquityAccount    decimal.Decimal `json:"equityAccount"` // Balance of the dedicated equity account
	CurrentResult    decimal.Decimal `json:"currentResult"` // Undistributed result of all result accounts
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	Balanced         bool            `json:"balanced"`
}

// CashFlowReport is the operating cash-flow view of a period.
type CashFlowReport struct {
	Period  Period          `json:"period"`
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	NetFlow decimal.Decimal `json:"netFlow"`
}

// TrendPoint is the P&L summary of one calendar month.
type TrendPoint struct {
	Month   string          `json:"month"` // YYYY-MM
	Revenue decimal.Decimal `json:"revenue"`
	Costs   decimal.Decimal `json:"costs"`
	Profit  decimal.Decimal `json:"profit"`
}
