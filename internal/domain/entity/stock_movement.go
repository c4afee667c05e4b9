package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dirección del movimiento.
const (
	MovementEntry = "ENTRY"
	MovementExit  = "EXIT"
)

// Motivos de movimiento.
const (
	ReasonPurchase         = "PURCHASE"
	ReasonSale             = "SALE"
	ReasonReturn           = "RETURN"
	ReasonInitialStock     = "INITIAL_STOCK"
	ReasonManualAdjustment = "MANUAL_ADJUSTMENT"
)

// StockMovement es un asiento inmutable del libro de stock. Quantity siempre > 0;
// el signo lo da Direction.
type StockMovement struct {
	ID          string
	ProductID   string
	Direction   string
	Quantity    decimal.Decimal
	Reason      string
	Note        string
	ReferenceID string // venta o compra que originó el movimiento (opcional)
	CreatedBy   string
	OccurredAt  time.Time
}

// Signed devuelve la cantidad con signo: positiva en entradas, negativa en salidas.
func (m *StockMovement) Signed() decimal.Decimal {
	if m.Direction == MovementExit {
		return m.Quantity.Neg()
	}
	return m.Quantity
}

// ValidDirection indica si d es ENTRY o EXIT.
func ValidDirection(d string) bool {
	return d == MovementEntry || d == MovementExit
}

// ValidReason indica si r es un motivo conocido.
func ValidReason(r string) bool {
	switch r {
	case ReasonPurchase, ReasonSale, ReasonReturn, ReasonInitialStock, ReasonManualAdjustment:
		return true
	}
	return false
}
