package writer

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/movsmx/bbva-statement-extractor/internal/models"
	"github.com/movsmx/bbva-statement-extractor/internal/parser"
)

const (
	sheetMovimientos = "Movimientos"
	sheetTotales     = "Totales"
)

// XLSXWriter writes an Excel workbook with a Movimientos sheet holding the
// movement table and a Totales sheet holding the two aggregate sums.
type XLSXWriter struct{}

// WriteToFile writes the workbook to the given path.
func (w *XLSXWriter) WriteToFile(path string, info *models.StatementInfo) error {
	f, err := w.build(info)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %q: %w", path, err)
	}
	return nil
}

// Write streams the workbook to the given writer.
func (w *XLSXWriter) Write(out io.Writer, info *models.StatementInfo) error {
	f, err := w.build(info)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (w *XLSXWriter) build(info *models.StatementInfo) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", sheetMovimientos); err != nil {
		return nil, err
	}

	columns := toRow(debitoColumns)
	if info.Account == models.AccountCredito {
		columns = toRow(creditoColumns)
	}
	if err := f.SetSheetRow(sheetMovimientos, "A1", &columns); err != nil {
		return nil, err
	}

	for i, mov := range info.Movimientos {
		var row []interface{}
		if info.Account == models.AccountCredito {
			row = []interface{}{mov.FechaOper, mov.FechaCargo, mov.Descripcion, cellAmount(mov.Monto)}
		} else {
			row = []interface{}{mov.FechaOper, mov.FechaCargo, mov.Descripcion, cellAmount(mov.Cargo), cellAmount(mov.Abono)}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetMovimientos, cell, &row); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(sheetTotales); err != nil {
		return nil, err
	}
	totals := parser.Sum(info.Account, info.Movimientos)
	totalRows := [][]interface{}{
		{"Concepto", "Monto"},
		{"Total cargos", totals.TotalCargos.InexactFloat64()},
		{"Total abonos", totals.TotalAbonos.InexactFloat64()},
	}
	for i, row := range totalRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		r := row
		if err := f.SetSheetRow(sheetTotales, cell, &r); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// cellAmount maps an unset column to an empty cell, not 0.00.
func cellAmount(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return d.InexactFloat64()
}

func toRow(columns []string) []interface{} {
	row := make([]interface{}, len(columns))
	for i, c := range columns {
		row[i] = c
	}
	return row
}
