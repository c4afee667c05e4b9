package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de stock derivados.
const (
	StockStatusLow = "LOW"
	StockStatusOK  = "OK"
)

// Product representa un artículo del catálogo de la tienda.
// Stock y PurchaseCost solo cambian a través del coordinador de inventario; el CRUD de catálogo no los toca.
type Product struct {
	ID           string
	Name         string
	Description  string
	Barcode      string // opcional, único cuando existe
	CategoryID   string
	SupplierID   string // vacío si no tiene proveedor
	UnitMeasure  string // un, kg, l, ...
	PurchaseCost decimal.Decimal
	SalePrice    decimal.Decimal
	MinStock     decimal.Decimal
	Stock        decimal.Decimal
	Weighable    bool // se vende por peso: admite cantidades fraccionarias
	Active       bool
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MarginPercent devuelve (venta - costo) / costo * 100, redondeado a 2 decimales. Costo cero => 0.
func (p *Product) MarginPercent() decimal.Decimal {
	if p.PurchaseCost.IsZero() {
		return decimal.Zero
	}
	return p.SalePrice.Sub(p.PurchaseCost).Div(p.PurchaseCost).Mul(decimal.NewFromInt(100)).Round(2)
}

// IsLowStock indica si el stock está en o por debajo del mínimo.
func (p *Product) IsLowStock() bool {
	return p.Stock.LessThanOrEqual(p.MinStock)
}

// StockStatus devuelve LOW u OK.
func (p *Product) StockStatus() string {
	if p.IsLowStock() {
		return StockStatusLow
	}
	return StockStatusOK
}

// StockValue valor del inventario a costo (costo * stock).
func (p *Product) StockValue() decimal.Decimal {
	return p.PurchaseCost.Mul(p.Stock)
}
