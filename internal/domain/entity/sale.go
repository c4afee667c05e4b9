package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de venta. El coordinador crea ventas directamente en COMPLETED;
// PENDING existe en el modelo pero no hay flujo que lo use.
const (
	SaleStatusPending   = "PENDING"
	SaleStatusCompleted = "COMPLETED"
	SaleStatusCancelled = "CANCELLED"
)

// Formas de pago.
const (
	PaymentCash       = "CASH"
	PaymentCard       = "CARD"
	PaymentPix        = "PIX"
	PaymentCreditTerm = "CREDIT_TERM" // fiado: incrementa la deuda del cliente
)

// ValidPaymentType indica si p es una forma de pago reconocida.
func ValidPaymentType(p string) bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentPix, PaymentCreditTerm:
		return true
	}
	return false
}

// Sale venta en mostrador. Number es el correlativo de 6 dígitos ("000042").
type Sale struct {
	ID          string
	Number      string
	CustomerID  string // vacío = consumidor final
	PaymentType string
	Status      string
	GrossTotal  decimal.Decimal
	Discount    decimal.Decimal
	NetTotal    decimal.Decimal
	Notes       string
	SoldAt      time.Time
	CancelledAt *time.Time
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Lines       []SaleLine
}

// SaleLine línea de venta.
type SaleLine struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
