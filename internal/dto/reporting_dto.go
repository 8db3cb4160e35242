package dto

import (
	"time"

	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PeriodParams selects an inclusive date range. Missing bounds default to the current year.
type PeriodParams struct {
	From time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To   time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
}

// AsOfParams selects the balance sheet date; zero means today.
type AsOfParams struct {
	AsOf time.Time `form:"asOf" time_format:"2006-01-02" time_utc:"1"`
}

// TrendsParams selects how many months back the trend goes.
type TrendsParams struct {
	Months int `form:"months" binding:"omitempty,min=1,max=36"`
}

// AccountAmountResponse represents an account with its amount in a financial report
type AccountAmountResponse struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// ProfitAndLossResponse represents the profit and loss report response
type ProfitAndLossResponse struct {
	FromDate string                  `json:"fromDate"`
	ToDate   string                  `json:"toDate"`
	Revenue  []AccountAmountResponse `json:"revenue"`
	Costs    []AccountAmountResponse `json:"costs"`
	Summary  struct {
		TotalRevenue decimal.Decimal `json:"totalRevenue"`
		TotalCosts   decimal.Decimal `json:"totalCosts"`
		Profit       decimal.Decimal `json:"profit"`
		Margin       decimal.Decimal `json:"margin"`
	} `json:"summary"`
}

// BalanceSheetResponse represents the balance sheet report response
type BalanceSheetResponse struct {
	AsOf        string                  `json:"asOf"`
	Assets      []AccountAmountResponse `json:"assets"`
	Liabilities []AccountAmountResponse `json:"liabilities"`
	Summary     struct {
		TotalAssets      decimal.Decimal `json:"totalAssets"`
		TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
		EquityAccount    decimal.Decimal `json:"equityAccount"`
		CurrentResult    decimal.Decimal `json:"currentResult"`
		TotalEquity      decimal.Decimal `json:"totalEquity"`
		Balanced         bool            `json:"balanced"`
	} `json:"summary"`
}

// TrendsResponse wraps the monthly trend points, oldest first.
type TrendsResponse struct {
	Months []domain.TrendPoint `json:"months"`
}

func toAccountAmountResponses(group domain.AmountGroup) []AccountAmountResponse {
	out := make([]AccountAmountResponse, len(group.Accounts))
	for i, a := range group.Accounts {
		out[i] = AccountAmountResponse{
			AccountID: a.AccountID,
			Code:      a.Code,
			Name:      a.Name,
			Amount:    a.NetAmount,
		}
	}
	return out
}

// ToProfitAndLossResponse converts a domain P&L report to a DTO response
func ToProfitAndLossResponse(report *domain.PAndLReport) ProfitAndLossResponse {
	response := ProfitAndLossResponse{
		FromDate: report.Period.From.Format("2006-01-02"),
		ToDate:   report.Period.To.Format("2006-01-02"),
		Revenue:  toAccountAmountResponses(report.Revenue),
		Costs:    toAccountAmountResponses(report.Costs),
	}
	response.Summary.TotalRevenue = report.Revenue.Total
	response.Summary.TotalCosts = report.Costs.Total
	response.Summary.Profit = report.Profit
	response.Summary.Margin = report.Margin
	return response
}

// ToBalanceSheetResponse converts a domain balance sheet report to a DTO response
func ToBalanceSheetResponse(report *domain.BalanceSheetReport) BalanceSheetResponse {
	response := BalanceSheetResponse{
		AsOf:        report.AsOf.Format("2006-01-02"),
		Assets:      toAccountAmountResponses(report.Assets),
		Liabilities: toAccountAmountResponses(report.Liabilities),
	}
	response.Summary.TotalAssets = report.TotalAssets
	response.Summary.TotalLiabilities = report.TotalLiabilities
	response.Summary.EquityAccount = report.EquityAccount
	response.Summary.CurrentResult = report.CurrentResult
	response.Summary.TotalEquity = report.TotalEquity
	response.Summary.Balanced = report.Balanced
	return response
}
