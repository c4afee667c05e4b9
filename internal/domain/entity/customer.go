package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operaciones sobre la deuda del cliente.
const (
	DebtAdd      = "ADD"
	DebtSubtract = "SUBTRACT"
)

// Customer cliente de la tienda. Debt es el saldo deudor (fiado) y nunca es negativo.
type Customer struct {
	ID          string
	Name        string
	Document    string // CPF u otro documento, único cuando existe
	Email       string
	Phone       string
	Address     string
	CreditLimit decimal.Decimal // 0 = sin límite
	Debt        decimal.Decimal
	Active      bool
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DebtChange resultado de aplicar una operación a la deuda.
// Discarded es la parte de una resta que excedía el saldo y se descartó al fijar en cero.
type DebtChange struct {
	Previous  decimal.Decimal
	Current   decimal.Decimal
	Discarded decimal.Decimal
}

// ApplyDebt suma o resta amount al saldo deudor y lo fija en cero si quedaría negativo.
// No valida amount; eso lo hace quien llama.
func (c *Customer) ApplyDebt(op string, amount decimal.Decimal) DebtChange {
	ch := DebtChange{Previous: c.Debt}
	switch op {
	case DebtAdd:
		c.Debt = c.Debt.Add(amount)
	case DebtSubtract:
		next := c.Debt.Sub(amount)
		if next.IsNegative() {
			ch.Discarded = next.Neg()
			next = decimal.Zero
		}
		c.Debt = next
	}
	ch.Current = c.Debt
	return ch
}

// ExceedsCreditLimit indica si sumar amount superaría el límite (límite 0 = sin límite).
func (c *Customer) ExceedsCreditLimit(amount decimal.Decimal) bool {
	if !c.CreditLimit.IsPositive() {
		return false
	}
	return c.Debt.Add(amount).GreaterThan(c.CreditLimit)
}
