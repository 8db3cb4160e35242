package domain

import "github.com/shopspring/decimal"

// ReservationAdvice recommends how much to set aside for VAT and income tax.
type ReservationAdvice struct {
	Quarter                Period          `json:"quarter"`
	VatOwed                decimal.Decimal `json:"vatOwed"`
	IncomeTaxReservation   decimal.Decimal `json:"incomeTaxReservation"`
	UsedFallbackRatio      bool            `json:"usedFallbackRatio"`
	FallbackRatio          decimal.Decimal `json:"fallbackRatio,omitempty"`
	YearToDateProfit       decimal.Decimal `json:"yearToDateProfit"`
	RecommendedReservation decimal.Decimal `json:"recommendedReservation"`
	DaysElapsed            int             `json:"daysElapsed"`
	DaysTotal              int             `json:"daysTotal"`
	ShouldBeReservedNow    decimal.Decimal `json:"shouldBeReservedNow"`
	CurrentlyReserved      decimal.Decimal `json:"currentlyReserved"`
	Shortfall              decimal.Decimal `json:"shortfall"`
}
