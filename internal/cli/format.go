// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatMoney formats a dollar amount with thousands separators, rounding to
// whole dollars once the amount reaches $1,000.
// e.g., 4050000 -> "$4,050,000", 248.5 -> "$248.50"
func FormatMoney(v float64) string {
	if math.IsNaN(v) {
		return "$-"
	}
	if v < 0 {
		return "-" + FormatMoney(-v)
	}
	if v >= 1000 {
		return "$" + FormatNumber(int64(math.Round(v)))
	}
	return fmt.Sprintf("$%.2f", v)
}

// FormatDecimal formats an exact money amount the same way as FormatMoney.
func FormatDecimal(d decimal.Decimal) string {
	return FormatMoney(d.InexactFloat64())
}

// FormatCompact abbreviates a dollar amount for axis labels and cards.
// e.g., 4200000 -> "$4.2M", 53414 -> "$53K", 950 -> "$950"
func FormatCompact(v float64) string {
	abs := math.Abs(v)
	sign := ""
	if v < 0 {
		sign = "-"
	}

	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%s$%.1fB", sign, abs/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%s$%.1fM", sign, abs/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%s$%.0fK", sign, abs/1_000)
	default:
		return fmt.Sprintf("%s$%.0f", sign, abs)
	}
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatMonths formats a runway length.
func FormatMonths(n int) string {
	if n == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", n)
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// ParseMoney parses user input such as "$1,200,000" or "4000000".
func ParseMoney(s string) (float64, error) {
	clean := strings.NewReplacer("$", "", ",", "", "_", "", " ", "").Replace(s)
	if clean == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	v := d.InexactFloat64()
	if math.IsInf(v, 0) {
		return 0, fmt.Errorf("amount %q is out of range", s)
	}
	return v, nil
}
