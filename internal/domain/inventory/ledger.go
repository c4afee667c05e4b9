// Package inventory contiene la lógica pura del libro de stock: cálculo de ajustes,
// totales de venta, numeración y reconstrucción del stock desde los movimientos.
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/petshop-api/internal/domain/entity"
)

// Replay reconstruye el stock sumando entradas y restando salidas.
func Replay(movements []*entity.StockMovement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		total = total.Add(m.Signed())
	}
	return total
}

// Reconciliation compara el stock registrado contra el reconstruido desde el libro.
type Reconciliation struct {
	ProductID string
	Register  decimal.Decimal // products.stock
	Ledger    decimal.Decimal // Σ entradas - Σ salidas
	Drift     decimal.Decimal // Register - Ledger
	Movements int
	Applied   bool
}

// InSync indica que registro y libro coinciden.
func (r Reconciliation) InSync() bool { return r.Drift.IsZero() }

// Reconcile arma la comparación para un producto.
func Reconcile(product *entity.Product, movements []*entity.StockMovement) Reconciliation {
	ledger := Replay(movements)
	return Reconciliation{
		ProductID: product.ID,
		Register:  product.Stock,
		Ledger:    ledger,
		Drift:     product.Stock.Sub(ledger),
		Movements: len(movements),
	}
}
