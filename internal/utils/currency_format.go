package utils

import (
	"github.com/shopspring/decimal"
)

// BusinessCurrency is the currency every amount in the ledger is recorded in.
const BusinessCurrency = "QAR"

// CurrencyPrecision is the number of minor-unit digits used for display.
const CurrencyPrecision = 2

// FormatAmount formats an amount with the business currency precision
// Example: 1500 returns "1500.00", 12.345 returns "12.35"
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(CurrencyPrecision)
}

// FormatWithCurrency prefixes the formatted amount with the currency code, e.g. "QAR 1500.00"
func FormatWithCurrency(amount decimal.Decimal) string {
	return BusinessCurrency + " " + FormatAmount(amount)
}

// FormatWithPrecision formats an amount with the given precision
// This is a convenience function when you only have the precision value
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}
