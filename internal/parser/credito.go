package parser

import (
	"regexp"

	"github.com/movsmx/bbva-statement-extractor/internal/models"
)

// CreditoParser handles BBVA crédito (tarjeta) statement text.
//
// Crédito statements print one transaction per line:
//
//	03-Mar-2025 03-Mar-2025 COMPRA TIENDA - $529.00
//
// so no continuation-line grouping is needed: a line either matches the
// full grammar end to end or it is not a transaction.
type CreditoParser struct{}

func (p *CreditoParser) AccountName() string {
	return "BBVA Crédito"
}

// Full-line grammar: operation date, charge date, non-greedy description,
// sign, optional currency marker, one amount anchored at line end.
var creditoLinePattern = regexp.MustCompile(
	`^(\d{2}-[A-Za-z]{3}-\d{4})\s+(\d{2}-[A-Za-z]{3}-\d{4})\s+(.+?)` +
		`\s+([+-])\s*\$?\s*(\d{1,3}(?:,\d{3})*\.\d{2})$`,
)

func (p *CreditoParser) Parse(lines []string) (*models.StatementInfo, error) {
	info := &models.StatementInfo{Account: models.AccountCredito}
	scrapeMetadata(info, lines)

	for _, line := range lines {
		m := creditoLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		monto := ParseAmount(m[5])
		if m[4] == "-" {
			neg := monto.Neg()
			monto = &neg
		}
		if monto.IsZero() {
			continue
		}

		info.Movimientos = append(info.Movimientos, models.Movement{
			FechaOper:   m[1],
			FechaCargo:  m[2],
			Descripcion: m[3],
			Monto:       monto,
		})
	}

	return info, nil
}
