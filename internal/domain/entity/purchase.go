package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una compra a proveedor. PENDING -> CONFIRMED | CANCELLED, ambos finales.
const (
	PurchaseStatusPending   = "PENDING"
	PurchaseStatusConfirmed = "CONFIRMED"
	PurchaseStatusCancelled = "CANCELLED"
)

// Purchase orden de compra a un proveedor. No afecta stock hasta ser confirmada.
type Purchase struct {
	ID            string
	Number        int64
	SupplierID    string
	InvoiceNumber string // número de la factura del proveedor (opcional)
	Status        string
	Total         decimal.Decimal
	Notes         string
	PurchasedAt   time.Time
	ConfirmedAt   *time.Time
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Lines         []PurchaseLine
}

// PurchaseLine línea de una compra.
type PurchaseLine struct {
	ID         string
	PurchaseID string
	ProductID  string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	Subtotal   decimal.Decimal
}
