package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción financiera.
const (
	TransactionIncome  = "INCOME"
	TransactionExpense = "EXPENSE"
)

// Transaction ingreso o gasto de las finanzas personales del dueño de la tienda.
type Transaction struct {
	ID            string
	UserID        string
	CategoryID    string
	Kind          string
	Description   string
	Amount        decimal.Decimal // siempre > 0
	OccurredOn    time.Time
	PaymentMethod string
	Tags          []string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FlowTotals totales de ingresos y gastos de un período.
type FlowTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// BalanceSnapshot resumen cacheado del usuario; se recalcula desde las transacciones.
type BalanceSnapshot struct {
	UserID       string
	Balance      decimal.Decimal
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	MonthIncome  decimal.Decimal
	MonthExpense decimal.Decimal
	UpdatedAt    time.Time
}
