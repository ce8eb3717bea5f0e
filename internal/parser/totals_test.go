package parser

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/movsmx/bbva-statement-extractor/internal/models"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestSum_Debito(t *testing.T) {
	movs := []models.Movement{
		{Descripcion: "DEPOSITO", Abono: dec("100.00")},
		{Descripcion: "RETIRO", Cargo: dec("50.00")},
	}

	totals := Sum(models.AccountDebito, movs)
	assert.Equal(t, "100.00", totals.TotalAbonos.StringFixed(2))
	assert.Equal(t, "50.00", totals.TotalCargos.StringFixed(2))
}

func TestSum_DebitoEmpty(t *testing.T) {
	totals := Sum(models.AccountDebito, nil)
	assert.True(t, totals.TotalAbonos.IsZero())
	assert.True(t, totals.TotalCargos.IsZero())
}

func TestSum_CreditoLabelPairing(t *testing.T) {
	// Positive amounts feed Total cargos and negatives feed Total abonos,
	// matching the legacy report output for crédito accounts.
	movs := []models.Movement{
		{Descripcion: "PAGO RECIBIDO", Monto: dec("200.00")},
		{Descripcion: "COMPRA TIENDA", Monto: dec("-50.00")},
		{Descripcion: "COMPRA GASOLINERA", Monto: dec("-25.50")},
	}

	totals := Sum(models.AccountCredito, movs)
	assert.Equal(t, "200.00", totals.TotalCargos.StringFixed(2))
	assert.Equal(t, "75.50", totals.TotalAbonos.StringFixed(2))
}
