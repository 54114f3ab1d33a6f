package utils

import (
	"github.com/shopspring/decimal"
)

// RoundToPrecision rounds a monetary amount to the given number of decimal
// places (half away from zero). All currency amounts must pass through here
// before being persisted so that no sub-precision residue reaches storage.
func RoundToPrecision(amount decimal.Decimal, precision int) decimal.Decimal {
	return amount.Round(int32(precision))
}

// FormatWithPrecision formats an amount with the given precision.
// Example: 12.3456 with precision 2 returns "12.35", with precision 0 "12".
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}
