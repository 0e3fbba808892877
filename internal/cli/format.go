// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/budgetsplit/internal/model"
)

// FormatMoney formats an amount with two decimals and thousands separators.
// e.g., 1234.5 -> "$1,234.50", -20 -> "-$20.00"
func FormatMoney(d decimal.Decimal, symbol string) string {
	if d.IsNegative() {
		return "-" + FormatMoney(d.Neg(), symbol)
	}
	s := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return symbol + s
	}
	return symbol + FormatNumber(n) + "." + frac
}

// FormatSigned formats a transaction amount with its direction:
// expenses as "-$12.00", income as "+$12.00".
func FormatSigned(t model.Transaction, symbol string) string {
	if t.Type == model.TypeIncome {
		return "+" + FormatMoney(t.Amount, symbol)
	}
	return "-" + FormatMoney(t.Amount, symbol)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-100 value with one decimal.
func FormatPercent(pct decimal.Decimal) string {
	return pct.StringFixed(1) + "%"
}

// FormatDays formats a day count, e.g. "10.5d".
func FormatDays(days decimal.Decimal) string {
	return days.StringFixed(1) + "d"
}

// FormatDate formats a transaction date in local time.
func FormatDate(t time.Time) string {
	return t.Local().Format("2006-01-02")
}

// FormatAge describes how long ago t was relative to now.
// e.g., "today", "1d ago", "12d ago"
func FormatAge(t, now time.Time) string {
	days := int(now.Sub(t).Hours() / 24)
	switch {
	case days <= 0:
		return "today"
	default:
		return strconv.Itoa(days) + "d ago"
	}
}
