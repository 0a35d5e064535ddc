package utils

import (
	"github.com/shopspring/decimal"

	"github.com/bce-online/bce_backend/internal/core/domain"
)

// FormatCents renders an integer cents amount as a display string with two
// decimal places, e.g. 50000 -> "500.00".
func FormatCents(amountCents int64) string {
	return decimal.NewFromInt(amountCents).Shift(-2).StringFixed(2)
}

// FormatCentsWithCurrency renders a cents amount with the currency code
// appended, e.g. 50000 -> "500.00 BCE".
func FormatCentsWithCurrency(amountCents int64, currency string) string {
	if currency == "" {
		currency = domain.CurrencyBCE
	}
	return FormatCents(amountCents) + " " + currency
}
