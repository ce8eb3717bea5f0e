package parser

import (
	"fmt"

	"github.com/movsmx/bbva-statement-extractor/internal/models"
)

// Parser defines the interface for statement-layout parsers.
type Parser interface {
	// Parse takes the ordered, trimmed text lines of a statement and
	// returns the structured movements. Malformed lines are skipped, never
	// rejected: the worst outcome is an empty movement list.
	Parse(lines []string) (*models.StatementInfo, error)
	// AccountName returns the human-readable layout name.
	AccountName() string
}

// New returns the parser for the given account type.
func New(account models.AccountType) (Parser, error) {
	switch account {
	case models.AccountDebito:
		return &DebitoParser{}, nil
	case models.AccountCredito:
		return &CreditoParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported account type: %q", account)
	}
}

// AutoDetect identifies the statement layout by counting lines that match
// each variant's transaction grammar. Crédito lines are a strict superset
// test (full-line match with a signed amount), so they win ties.
func AutoDetect(lines []string) (models.AccountType, error) {
	debito, credito := 0, 0
	for _, line := range lines {
		if creditoLinePattern.MatchString(line) {
			credito++
		} else if debitoHeaderPattern.MatchString(line) {
			debito++
		}
	}

	switch {
	case credito == 0 && debito == 0:
		return "", fmt.Errorf("could not detect account type from statement content; specify debito or credito explicitly")
	case credito >= debito:
		return models.AccountCredito, nil
	default:
		return models.AccountDebito, nil
	}
}
