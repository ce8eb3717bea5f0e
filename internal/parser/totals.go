package parser

import "github.com/movsmx/bbva-statement-extractor/internal/models"

// Sum reduces the movements to the two report totals.
//
// Débito: Total cargos = sum of set Cargo columns, Total abonos = sum of set
// Abono columns. Crédito: positive Monto values feed Total cargos and the
// magnitude of negative values feeds Total abonos — this pairing is kept
// verbatim from the legacy report output (see DESIGN.md).
func Sum(account models.AccountType, movs []models.Movement) models.Totals {
	var t models.Totals

	if account == models.AccountCredito {
		for _, m := range movs {
			if m.Monto == nil {
				continue
			}
			if m.Monto.IsPositive() {
				t.TotalCargos = t.TotalCargos.Add(*m.Monto)
			} else {
				t.TotalAbonos = t.TotalAbonos.Sub(*m.Monto)
			}
		}
		return t
	}

	for _, m := range movs {
		if m.Cargo != nil {
			t.TotalCargos = t.TotalCargos.Add(*m.Cargo)
		}
		if m.Abono != nil {
			t.TotalAbonos = t.TotalAbonos.Add(*m.Abono)
		}
	}
	return t
}
