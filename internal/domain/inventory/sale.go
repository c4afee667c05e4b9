package inventory

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// FormatSaleNumber formatea el correlativo de venta con al menos 6 dígitos (1 -> "000001").
func FormatSaleNumber(n int64) string {
	return fmt.Sprintf("%06d", n)
}

// SaleNumberAfter compara correlativos como números: "1000000" va después de "999999".
func SaleNumberAfter(a, b string) bool {
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	return a > b
}

// LineSubtotal cantidad * precio unitario, redondeado a centavos.
func LineSubtotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice).Round(2)
}

// Totals calcula bruto y neto a partir de los subtotales y el descuento.
// El descuento debe estar entre 0 y el bruto.
func Totals(subtotals []decimal.Decimal, discount decimal.Decimal) (gross, net decimal.Decimal, ok bool) {
	gross = decimal.Zero
	for _, s := range subtotals {
		gross = gross.Add(s)
	}
	if discount.IsNegative() || discount.GreaterThan(gross) {
		return gross, decimal.Zero, false
	}
	return gross, gross.Sub(discount), true
}

// Demand acumula la cantidad pedida por producto, para validar stock una sola vez
// aunque el producto aparezca en varias líneas.
type Demand map[string]decimal.Decimal

// Add suma q al producto.
func (d Demand) Add(productID string, q decimal.Decimal) {
	d[productID] = d[productID].Add(q)
}

// LockOrder devuelve los IDs ordenados: todas las transacciones bloquean productos
// en el mismo orden y así no se producen deadlocks entre ventas concurrentes.
func (d Demand) LockOrder() []string {
	ids := make([]string, 0, len(d))
	for id := range d {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
