package sheet

import "strings"

// Standard number format codes. These are format-agnostic codes that
// adapters translate; custom strings pass through to the adapter verbatim.
const (
	NumFmtGeneral           = "General"
	NumFmtInteger           = "0"
	NumFmtDecimal1          = "0.0"
	NumFmtDecimal2          = "0.00"
	NumFmtThousands         = "#,##0"
	NumFmtThousandsDecimal2 = "#,##0.00"
	NumFmtCurrencyBRL       = "R$ #,##0.00"
	NumFmtCurrencyUSD       = "$#,##0.00"
	NumFmtCurrencyEUR       = "€#,##0.00"
	NumFmtAccountingBRL     = `_-R$ * #,##0.00_-;-R$ * #,##0.00_-;_-R$ * "-"??_-;_-@_-`
	NumFmtAccountingUSD     = `_-$* #,##0.00_-;-$* #,##0.00_-;_-$* "-"??_-;_-@_-`
	NumFmtPercent           = "0%"
	NumFmtPercent1          = "0.0%"
	NumFmtPercent2          = "0.00%"
	NumFmtDateISO           = "YYYY-MM-DD"
	NumFmtDateBR            = "DD/MM/YYYY"
	NumFmtDateUS            = "MM/DD/YYYY"
	NumFmtDatetimeISO       = "YYYY-MM-DD HH:MM:SS"
	NumFmtDatetimeBR        = "DD/MM/YYYY HH:MM:SS"
	NumFmtTime              = "HH:MM:SS"
	NumFmtText              = "@"
)

// CurrencyFormat returns the currency format code for an ISO currency
// code, defaulting to BRL.
func CurrencyFormat(code string) string {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "USD":
		return NumFmtCurrencyUSD
	case "EUR":
		return NumFmtCurrencyEUR
	default:
		return NumFmtCurrencyBRL
	}
}

// AccountingFormat returns the accounting format code for an ISO
// currency code, defaulting to BRL.
func AccountingFormat(code string) string {
	if strings.EqualFold(strings.TrimSpace(code), "USD") {
		return NumFmtAccountingUSD
	}
	return NumFmtAccountingBRL
}
