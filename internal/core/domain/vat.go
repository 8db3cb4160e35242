package domain

import "strings"

// VatCode selects which statutory VAT rate applies.
type VatCode string

const (
	VatHigh VatCode = "HOOG"
	VatLow  VatCode = "LAAG"
	VatZero VatCode = "NUL"
)

// NormalizeVatCode maps symbolic and legacy numeric codes onto the symbolic set.
// Unknown or empty codes yield VatHigh and false.
func NormalizeVatCode(raw string) (VatCode, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "HOOG", "21":
		return VatHigh, true
	case "LAAG", "9":
		return VatLow, true
	case "NUL", "0":
		return VatZero, true
	default:
		return VatHigh, false
	}
}

// VatPeriodStatus is the filing state of a VAT period.
type VatPeriodStatus string

const (
	VatPeriodOpen  VatPeriodStatus = "open"
	VatPeriodReady VatPeriodStatus = "ready"
	VatPeriodFiled VatPeriodStatus = "filed"
)
