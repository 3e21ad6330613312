package utils

import "github.com/shopspring/decimal"

// Round2 rounds a monetary amount to 2 decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatAmount renders a monetary amount with exactly two decimals ("9.90").
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatQuantity renders a quantity without trailing zeros ("2", "1.5").
func FormatQuantity(d decimal.Decimal) string {
	return d.String()
}
