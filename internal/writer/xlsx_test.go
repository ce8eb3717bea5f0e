package writer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/movsmx/bbva-statement-extractor/internal/models"
)

func TestXLSXWriter_Debito(t *testing.T) {
	var buf bytes.Buffer
	w := &XLSXWriter{}
	require.NoError(t, w.Write(&buf, debitoInfo()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{sheetMovimientos, sheetTotales}, f.GetSheetList())

	cell := func(sheet, ref string) string {
		v, err := f.GetCellValue(sheet, ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Fecha Oper", cell(sheetMovimientos, "A1"))
	assert.Equal(t, "Abono", cell(sheetMovimientos, "E1"))
	assert.Equal(t, "PAGO SERVICIO", cell(sheetMovimientos, "C2"))
	// Unset Cargo column stays an empty cell.
	assert.Equal(t, "", cell(sheetMovimientos, "D2"))
	assert.Equal(t, "1234.56", cell(sheetMovimientos, "E2"))
	assert.Equal(t, "1500", cell(sheetMovimientos, "D3"))

	assert.Equal(t, "Concepto", cell(sheetTotales, "A1"))
	assert.Equal(t, "Total cargos", cell(sheetTotales, "A2"))
	assert.Equal(t, "1500", cell(sheetTotales, "B2"))
	assert.Equal(t, "Total abonos", cell(sheetTotales, "A3"))
	assert.Equal(t, "1234.56", cell(sheetTotales, "B3"))
}

func TestXLSXWriter_Credito(t *testing.T) {
	info := &models.StatementInfo{
		Account: models.AccountCredito,
		Movimientos: []models.Movement{
			{FechaOper: "03-Mar-2025", FechaCargo: "03-Mar-2025", Descripcion: "COMPRA TIENDA", Monto: dec("-529.00")},
			{FechaOper: "04-Mar-2025", FechaCargo: "05-Mar-2025", Descripcion: "PAGO RECIBIDO", Monto: dec("1200.50")},
		},
	}

	var buf bytes.Buffer
	w := &XLSXWriter{}
	require.NoError(t, w.Write(&buf, info))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue(sheetMovimientos, ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Monto", cell("D1"))
	assert.Equal(t, "-529", cell("D2"))
	assert.Equal(t, "1200.5", cell("D3"))

	// Crédito totals keep the legacy label pairing: positives under cargos.
	v, err := f.GetCellValue(sheetTotales, "B2")
	require.NoError(t, err)
	assert.Equal(t, "1200.5", v)
}
