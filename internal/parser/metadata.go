package parser

import (
	"regexp"
	"strings"

	"github.com/movsmx/bbva-statement-extractor/internal/models"
)

// BBVA account numbers are 10 digits; CLABE is 18. Prefer the account number.
var (
	cuentaPattern = regexp.MustCompile(`\b\d{10}\b`)
	periodoDates  = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
)

// scrapeMetadata fills the statement metadata from label lines that appear
// before the transaction table. Best effort: missing labels stay empty.
func scrapeMetadata(info *models.StatementInfo, lines []string) {
	for _, line := range lines {
		lower := strings.ToLower(line)
		switch {
		case info.NumCuenta == "" && strings.Contains(lower, "no. de cuenta"):
			info.NumCuenta = cuentaPattern.FindString(line)
		case info.Periodo == "" && strings.Contains(lower, "periodo"):
			if dates := periodoDates.FindAllString(line, 2); len(dates) == 2 {
				info.Periodo = dates[0] + " al " + dates[1]
			} else {
				info.Periodo = afterLabel(line, "periodo")
			}
		case info.Titular == "" && strings.Contains(lower, "titular"):
			info.Titular = afterLabel(line, "titular")
		}
	}
}

// afterLabel returns the text following a case-insensitive label, with any
// leading colon removed.
func afterLabel(line, label string) string {
	idx := strings.Index(strings.ToLower(line), label)
	if idx < 0 {
		return ""
	}
	rest := strings.TrimSpace(line[idx+len(label):])
	rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
	return rest
}
