package accounting

import (
	"sort"
	"time"

	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

var balanceTolerance = decimal.NewFromFloat(0.01)

type accountTotals struct {
	account domain.LedgerAccount
	debit   decimal.Decimal
	credit  decimal.Decimal
}

func (t accountTotals) balance() decimal.Decimal {
	if t.account.Category.DebitNormal() {
		return t.debit.Sub(t.credit)
	}
	return t.credit.Sub(t.debit)
}

type amountCollector map[string]*domain.AccountAmount

func (c amountCollector) add(acc domain.LedgerAccount, amount decimal.Decimal) {
	entry, ok := c[acc.AccountID]
	if !ok {
		entry = &domain.AccountAmount{AccountID: acc.AccountID, Code: acc.Code, Name: acc.Name, NetAmount: decimal.Zero}
		c[acc.AccountID] = entry
	}
	entry.NetAmount = entry.NetAmount.Add(amount)
}

func (c amountCollector) group() domain.AmountGroup {
	accounts := make([]domain.AccountAmount, 0, len(c))
	total := decimal.Zero
	for _, a := range c {
		accounts = append(accounts, *a)
		total = total.Add(a.NetAmount)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
	return domain.AmountGroup{Accounts: accounts, Total: total}
}

// BuildProfitAndLoss replays postings of a period. Revenue is every amount credited
// to a revenue account, costs every amount debited to a cost account.
func BuildProfitAndLoss(period domain.Period, lines []domain.PostingLine) domain.PAndLReport {
	revenue := amountCollector{}
	costs := amountCollector{}
	for _, l := range lines {
		if !period.Contains(l.Date) {
			continue
		}
		if l.Credit.Category == domain.Revenue {
			revenue.add(l.Credit, l.Amount)
		}
		if l.Debit.Category == domain.Cost {
			costs.add(l.Debit, l.Amount)
		}
	}

	report := domain.PAndLReport{
		Period:  period,
		Revenue: revenue.group(),
		Costs:   costs.group(),
		Margin:  decimal.Zero,
	}
	report.Profit = report.Revenue.Total.Sub(report.Costs.Total)
	if !report.Revenue.Total.IsZero() {
		report.Margin = report.Profit.Div(report.Revenue.Total).Mul(hundred).Round(2)
	}
	return report
}

// BuildBalanceSheet replays every posting up to and including asOf.
// Result accounts are folded into equity as the current result so that a ledger
// of balanced postings always yields a balanced sheet.
func BuildBalanceSheet(asOf time.Time, lines []domain.PostingLine) domain.BalanceSheetReport {
	totals := map[string]*accountTotals{}
	touch := func(acc domain.LedgerAccount) *accountTotals {
		t, ok := totals[acc.AccountID]
		if !ok {
			t = &accountTotals{account: acc, debit: decimal.Zero, credit: decimal.Zero}
			totals[acc.AccountID] = t
		}
		return t
	}
	for _, l := range lines {
		if l.Date.After(asOf) {
			continue
		}
		d := touch(l.Debit)
		d.debit = d.debit.Add(l.Amount)
		c := touch(l.Credit)
		c.credit = c.credit.Add(l.Amount)
	}

	assets := amountCollector{}
	liabilities := amountCollector{}
	equity := decimal.Zero
	result := decimal.Zero
	for _, t := range totals {
		switch t.account.Category {
		case domain.Asset:
			assets.add(t.account, t.balance())
		case domain.Liability:
			liabilities.add(t.account, t.balance())
		case domain.Equity:
			equity = equity.Add(t.balance())
		case domain.Revenue:
			result = result.Add(t.balance())
		case domain.Cost:
			result = result.Sub(t.balance())
		}
	}

	report := domain.BalanceSheetReport{
		AsOf:          asOf,
		Assets:        assets.group(),
		Liabilities:   liabilities.group(),
		EquityAccount: equity,
		CurrentResult: result,
		TotalEquity:   equity.Add(result),
	}
	report.TotalAssets = report.Assets.Total
	report.TotalLiabilities = report.Liabilities.Total
	diff := report.TotalAssets.Sub(report.TotalLiabilities.Add(report.TotalEquity)).Abs()
	report.Balanced = diff.LessThan(balanceTolerance)
	return report
}

// BuildCashFlow computes the operating cash flow from postings that touch a
// cash/bank account directly. Postings routed through intermediate accounts such
// as VAT receivable are not reflected.
func BuildCashFlow(period domain.Period, lines []domain.PostingLine) domain.CashFlowReport {
	inflow := decimal.Zero
	outflow := decimal.Zero
	for _, l := range lines {
		if !period.Contains(l.Date) {
			continue
		}
		if l.Debit.IsCash() && l.Credit.Category == domain.Revenue {
			inflow = inflow.Add(l.Amount)
		}
		if l.Credit.IsCash() && l.Debit.Category == domain.Cost {
			outflow = outflow.Add(l.Amount)
		}
	}
	return domain.CashFlowReport{
		Period:  period,
		Inflow:  inflow,
		Outflow: outflow,
		NetFlow: inflow.Sub(outflow),
	}
}

// BuildVatReturn sums VAT collected on the VAT payable account and input VAT
// paid on the input VAT account within the period.
func BuildVatReturn(period domain.VatPeriod, lines []domain.PostingLine) domain.VatReturn {
	ret := domain.VatReturn{Period: period, VatCollected: decimal.Zero, InputVat: decimal.Zero}
	window := domain.Period{From: period.StartDate, To: period.EndDate}
	for _, l := range lines {
		if !window.Contains(l.Date) {
			continue
		}
		touched := false
		switch {
		case l.Credit.Code == domain.VatPayableAccountCode:
			ret.VatCollected = ret.VatCollected.Add(l.Amount)
			touched = true
		case l.Debit.Code == domain.VatPayableAccountCode:
			ret.VatCollected = ret.VatCollected.Sub(l.Amount)
			touched = true
		}
		switch {
		case l.Debit.Code == domain.InputVatAccountCode:
			ret.InputVat = ret.InputVat.Add(l.Amount)
			touched = true
		case l.Credit.Code == domain.InputVatAccountCode:
			ret.InputVat = ret.InputVat.Sub(l.Amount)
			touched = true
		}
		if touched {
			ret.PostingsCount++
		}
	}
	ret.VatOwed = ret.VatCollected.Sub(ret.InputVat)
	return ret
}

// AccountBalance returns the balance of the account with the given code as of asOf.
func AccountBalance(code string, asOf time.Time, lines []domain.PostingLine) decimal.Decimal {
	var t *accountTotals
	for _, l := range lines {
		if l.Date.After(asOf) {
			continue
		}
		if l.Debit.Code == code {
			if t == nil {
				t = &accountTotals{account: l.Debit, debit: decimal.Zero, credit: decimal.Zero}
			}
			t.debit = t.debit.Add(l.Amount)
		}
		if l.Credit.Code == code {
			if t == nil {
				t = &accountTotals{account: l.Credit, debit: decimal.Zero, credit: decimal.Zero}
			}
			t.credit = t.credit.Add(l.Amount)
		}
	}
	if t == nil {
		return decimal.Zero
	}
	return t.balance()
}
