package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatPercent renders a percentage value as "NN.NN%"
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// ParsePercent reads a value produced by FormatPercent back into a
// number. Used by the chart mapper, which needs numeric series.
func ParsePercent(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0
	}
	return v
}

// FormatMoney renders a monetary amount with the shop currency code
// and two decimal places, e.g. "LKR 12500.00".
func FormatMoney(amount decimal.Decimal, currencyCode string) string {
	return currencyCode + " " + amount.StringFixed(2)
}

// MoneyValue converts a decimal amount to the two-decimal float used
// in JSON payloads
func MoneyValue(amount decimal.Decimal) float64 {
	return amount.Round(2).InexactFloat64()
}
