package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreditoParser_SignedAmounts(t *testing.T) {
	p := &CreditoParser{}

	info, err := p.Parse([]string{
		"03-Mar-2025 03-Mar-2025 COMPRA TIENDA - $529.00",
		"04-Mar-2025 05-Mar-2025 PAGO RECIBIDO + $1,200.50",
	})
	require.NoError(t, err)
	require.Len(t, info.Movimientos, 2)

	mov := info.Movimientos[0]
	assert.Equal(t, "03-Mar-2025", mov.FechaOper)
	assert.Equal(t, "03-Mar-2025", mov.FechaCargo)
	assert.Equal(t, "COMPRA TIENDA", mov.Descripcion)
	require.NotNil(t, mov.Monto)
	assert.Equal(t, "-529.00", mov.Monto.StringFixed(2))

	mov = info.Movimientos[1]
	assert.Equal(t, "PAGO RECIBIDO", mov.Descripcion)
	require.NotNil(t, mov.Monto)
	assert.Equal(t, "1200.50", mov.Monto.StringFixed(2))
}

func TestCreditoParser_NoCurrencyMarker(t *testing.T) {
	p := &CreditoParser{}

	info, err := p.Parse([]string{
		"10-Abr-2025 11-Abr-2025 INTERESES DEL PERIODO -315.75",
	})
	require.NoError(t, err)
	require.Len(t, info.Movimientos, 1)
	assert.Equal(t, "-315.75", info.Movimientos[0].Monto.StringFixed(2))
}

func TestCreditoParser_PartialLinesIgnored(t *testing.T) {
	p := &CreditoParser{}

	info, err := p.Parse([]string{
		// Missing second date.
		"03-Mar-2025 COMPRA TIENDA - $529.00",
		// No sign before the amount.
		"03-Mar-2025 03-Mar-2025 COMPRA TIENDA $529.00",
		// Trailing text after the amount breaks the end anchor.
		"03-Mar-2025 03-Mar-2025 COMPRA TIENDA - $529.00 MXN",
		// Débito-style header is not a crédito line.
		"01/ENE 02/ENE PAGO SERVICIO 1,234.56",
		"",
	})
	require.NoError(t, err)
	assert.Empty(t, info.Movimientos)
}

func TestCreditoParser_ZeroAmountDiscarded(t *testing.T) {
	p := &CreditoParser{}

	info, err := p.Parse([]string{
		"03-Mar-2025 03-Mar-2025 AJUSTE + $0.00",
	})
	require.NoError(t, err)
	assert.Empty(t, info.Movimientos)
}

func TestCreditoParser_Idempotent(t *testing.T) {
	p := &CreditoParser{}
	lines := []string{
		"03-Mar-2025 03-Mar-2025 COMPRA TIENDA - $529.00",
		"04-Mar-2025 05-Mar-2025 PAGO RECIBIDO + $1,200.50",
	}

	first, err := p.Parse(lines)
	require.NoError(t, err)
	second, err := p.Parse(lines)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
