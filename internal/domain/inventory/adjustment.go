package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/petshop-api/internal/domain/entity"
)

// Adjustment describe el movimiento que lleva el stock de current a target.
// Changed es falso cuando no hay diferencia: en ese caso no se registra movimiento.
type Adjustment struct {
	Delta     decimal.Decimal
	Direction string
	Quantity  decimal.Decimal
	Changed   bool
}

// PlanAdjustment calcula dirección y cantidad absoluta del ajuste.
func PlanAdjustment(current, target decimal.Decimal) Adjustment {
	delta := target.Sub(current)
	adj := Adjustment{Delta: delta, Quantity: delta.Abs(), Changed: !delta.IsZero()}
	if delta.IsPositive() {
		adj.Direction = entity.MovementEntry
	} else {
		adj.Direction = entity.MovementExit
	}
	return adj
}

// ValidQuantity verifica que q sea positiva, con a lo sumo tres decimales y, si el
// producto no es pesable, entera.
func ValidQuantity(q decimal.Decimal, weighable bool) bool {
	if !q.IsPositive() || !entity.ValidStockQuantity(q) {
		return false
	}
	if !weighable && !q.Equal(q.Truncate(0)) {
		return false
	}
	return true
}
