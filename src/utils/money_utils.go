package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseBRL parses Brazilian currency text ("R$ 1.234,50") into a decimal.
// The literal R$ prefix is stripped, '.' is a thousands separator and ','
// the decimal separator. Empty input is an error, not zero.
func ParseBRL(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty monetary value")
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid monetary value %q: %w", s, err)
	}
	return d, nil
}

// FormatBRL renders a decimal in the Brazilian display convention:
// R$ prefix, '.' for thousands, ',' for decimals, always two decimal places.
func FormatBRL(d decimal.Decimal) string {
	fixed := d.StringFixed(2) // e.g. "-1234567.50"
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("R$ %s%s,%s", sign, b.String(), fracPart)
}
