package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Monetary token grammar: 1-3 digits, optional comma-grouped thousands,
// exactly two decimals. "12,345.67", "529.00", "1.00". A token with no digit
// before the decimal point never matches.
var amountPattern = regexp.MustCompile(`\d{1,3}(?:,\d{3})*\.\d{2}`)

// FindAmounts returns every monetary token on the line, left to right.
func FindAmounts(line string) []string {
	return amountPattern.FindAllString(line, -1)
}

// StripAmounts removes all monetary tokens from the line and trims the rest.
// Used to isolate description text from the amount columns on a header line.
func StripAmounts(line string) string {
	return strings.TrimSpace(amountPattern.ReplaceAllString(line, ""))
}

// ParseAmount normalizes a monetary token to a decimal by stripping the
// grouping commas. Returns nil only for the empty token.
func ParseAmount(tok string) *decimal.Decimal {
	if tok == "" {
		return nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(tok, ",", ""))
	if err != nil {
		return nil
	}
	return &d
}
