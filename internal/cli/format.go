// Package cli provides the command-line interface for the application.
package cli

import (
	"fmt"
	"strings"
)

// FormatUSD formats a dollar amount with thousands separators and two
// decimal places, e.g. 1500 -> "$1,500.00".
func FormatUSD(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	str := fmt.Sprintf("%.2f", amount)
	parts := strings.Split(str, ".")
	intPart := groupThousands(parts[0])

	result := "$" + intPart + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	return groupThousands(s[:n-3]) + "," + s[n-3:]
}

// FormatOptionalUSD formats an optional dollar amount, "-" when absent.
func FormatOptionalUSD(amount *float64) string {
	if amount == nil {
		return "-"
	}
	return FormatUSD(*amount)
}

// FormatPercent formats a ratio percentage, e.g. 5 -> "5.00%".
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}
