package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"

	"github.com/movsmx/bbva-statement-extractor/internal/models"
	"github.com/movsmx/bbva-statement-extractor/internal/parser"
)

// Column headers are part of the output contract: downstream reports read
// them by name.
var (
	debitoColumns  = []string{"Fecha Oper", "Fecha Liq", "Descripción", "Cargo", "Abono"}
	creditoColumns = []string{"Fecha de la operación", "Fecha de cargo", "Descripción del movimiento", "Monto"}
)

// CSVWriter writes movements to CSV format.
type CSVWriter struct {
	IncludeHeader bool // statement metadata as leading comment rows
	IncludeTotals bool // Total cargos / Total abonos as trailing comment rows
}

// WriteToFile writes the statement to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, info *models.StatementInfo) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, info)
}

// Write writes the statement in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, info *models.StatementInfo) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()

	if w.IncludeHeader {
		if info.Account != "" {
			cw.Write([]string{"# Cuenta", string(info.Account)})
		}
		if info.Titular != "" {
			cw.Write([]string{"# Titular", info.Titular})
		}
		if info.NumCuenta != "" {
			cw.Write([]string{"# No. de Cuenta", info.NumCuenta})
		}
		if info.Periodo != "" {
			cw.Write([]string{"# Periodo", info.Periodo})
		}
	}

	columns := debitoColumns
	if info.Account == models.AccountCredito {
		columns = creditoColumns
	}
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, mov := range info.Movimientos {
		var row []string
		if info.Account == models.AccountCredito {
			row = []string{mov.FechaOper, mov.FechaCargo, mov.Descripcion, formatAmount(mov.Monto)}
		} else {
			row = []string{mov.FechaOper, mov.FechaCargo, mov.Descripcion, formatAmount(mov.Cargo), formatAmount(mov.Abono)}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	if w.IncludeTotals {
		totals := parser.Sum(info.Account, info.Movimientos)
		cw.Write([]string{"# Total cargos", totals.TotalCargos.StringFixed(2)})
		cw.Write([]string{"# Total abonos", totals.TotalAbonos.StringFixed(2)})
	}

	cw.Flush()
	return cw.Error()
}

func formatAmount(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}
