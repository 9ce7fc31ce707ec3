package config

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SanitizeNumber parses caller-typed numeric text. Thousands separators and
// surrounding whitespace are stripped; empty or unparseable input yields zero.
func SanitizeNumber(raw string) decimal.Decimal {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}
