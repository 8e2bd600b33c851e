// Package utils provides calendar and number formatting helpers shared by the
// CLI, the API and the benchmark engine.
package utils

import (
	"fmt"
	"math"
	"strings"
)

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round3 rounds to three decimal places.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// FormatUSD formats a number as US dollars with thousands grouping ($1,234,567.89).
func FormatUSD(amount float64) string {
	negative := amount < 0
	amount = math.Abs(amount)

	s := fmt.Sprintf("%.2f", amount)
	intPart, decPart := s[:len(s)-3], s[len(s)-3:]
	formatted := groupThousands(intPart) + decPart

	if negative {
		return "-$" + formatted
	}
	return "$" + formatted
}

// FormatPct formats a percentage value with sign and suffix.
// e.g., 2.45 → "+2.45%", -1.23 → "-1.23%"
func FormatPct(pct float64) string {
	if pct >= 0 {
		return fmt.Sprintf("+%.2f%%", pct)
	}
	return fmt.Sprintf("%.2f%%", pct)
}

// FormatRatio formats a 0–1 fraction as a percentage, e.g. 0.0825 → "8.25%".
func FormatRatio(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// FormatMetricValue picks a rendering from the metric name: ratio-style
// metrics (rates, margins, percentages, satisfaction scores) are shown as
// percentages, money-style metrics as dollars, everything else as a plain
// number with two decimals.
func FormatMetricValue(metric string, v float64) string {
	switch {
	case isRatioMetric(metric):
		return FormatRatio(v)
	case isCurrencyMetric(metric):
		return FormatUSD(v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

func isRatioMetric(metric string) bool {
	for _, suffix := range []string{"_rate", "_margin", "_percentage", "satisfaction", "efficiency"} {
		if strings.HasSuffix(metric, suffix) {
			return true
		}
	}
	return false
}

func isCurrencyMetric(metric string) bool {
	for _, marker := range []string{"revenue", "cost"} {
		if strings.Contains(metric, marker) {
			return true
		}
	}
	return false
}

// groupThousands inserts a comma every three digits from the right.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
