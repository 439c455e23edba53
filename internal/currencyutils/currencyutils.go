// Package currencyutils provides the amount parsing and formatting
// shared by extraction and goal messaging.
package currencyutils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts an extracted amount string to a decimal, stripping
// thousands separators. Indian digit grouping ("1,23,456.78") is handled
// by the same rule since separators carry no positional meaning here.
// Malformed or negative input yields (Zero, false) rather than an error
// so callers can treat it as a failed match.
func ParseAmount(amountStr string) (decimal.Decimal, bool) {
	cleaned := strings.TrimSpace(amountStr)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return decimal.Zero, false
	}
	dec, err := decimal.NewFromString(cleaned)
	if err != nil || dec.IsNegative() {
		return decimal.Zero, false
	}
	return dec, true
}

// FormatINR renders an amount the way user-facing goal messages show
// money, with the rupee sign and two decimal places.
func FormatINR(amount decimal.Decimal) string {
	return "₹" + amount.StringFixed(2)
}
