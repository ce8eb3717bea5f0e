package models

import "github.com/shopspring/decimal"

// Movement represents a single statement transaction.
//
// Débito statements fill Cargo/Abono: a nil pointer means the column was
// absent on the statement, which is not the same as 0.00. Crédito statements
// fill Monto with a signed amount (positive = abono, negative = cargo).
type Movement struct {
	// FechaOper is the operation date as printed: DD/MMM on débito
	// statements, DD-Mon-YYYY on crédito statements.
	FechaOper string `json:"fechaOper"`
	// FechaCargo is the settlement date ("Fecha Liq") on débito statements
	// and the charge date on crédito statements.
	FechaCargo  string           `json:"fechaCargo"`
	Descripcion string           `json:"descripcion"`
	Cargo       *decimal.Decimal `json:"cargo,omitempty"`
	Abono       *decimal.Decimal `json:"abono,omitempty"`
	Monto       *decimal.Decimal `json:"monto,omitempty"`
}

// AccountType represents the supported BBVA statement layouts.
type AccountType string

const (
	AccountDebito  AccountType = "debito"
	AccountCredito AccountType = "credito"
)

// StatementInfo holds the parsed movements plus metadata scraped from the
// statement text.
type StatementInfo struct {
	Account     AccountType
	Titular     string
	NumCuenta   string
	Periodo     string
	Movimientos []Movement
}

// Totals holds the two aggregate sums reported alongside the movements.
type Totals struct {
	TotalCargos decimal.Decimal `json:"totalCargos"`
	TotalAbonos decimal.Decimal `json:"totalAbonos"`
}
