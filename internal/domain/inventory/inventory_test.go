package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/petshop-api/internal/domain/entity"
	"github.com/jhoicas/petshop-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPlanAdjustment(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		target    string
		direction string
		quantity  string
		changed   bool
	}{
		{"aumento", "10", "14", entity.MovementEntry, "4", true},
		{"reducción", "10", "3", entity.MovementExit, "7", true},
		{"a cero", "2.5", "0", entity.MovementExit, "2.5", true},
		{"sin cambio", "8", "8", entity.MovementExit, "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adj := inventory.PlanAdjustment(d(tt.current), d(tt.target))
			assert.Equal(t, tt.direction, adj.Direction)
			assert.True(t, adj.Quantity.Equal(d(tt.quantity)))
			assert.Equal(t, tt.changed, adj.Changed)
		})
	}
}

func TestValidQuantity(t *testing.T) {
	assert.True(t, inventory.ValidQuantity(d("3"), false))
	assert.False(t, inventory.ValidQuantity(d("1.5"), false))
	assert.True(t, inventory.ValidQuantity(d("1.5"), true))
	assert.False(t, inventory.ValidQuantity(d("0"), true))
	assert.False(t, inventory.ValidQuantity(d("-1"), true))
}

func TestReplayYReconcile(t *testing.T) {
	movs := []*entity.StockMovement{
		{Direction: entity.MovementEntry, Quantity: d("10"), Reason: entity.ReasonInitialStock},
		{Direction: entity.MovementExit, Quantity: d("3"), Reason: entity.ReasonSale},
		{Direction: entity.MovementEntry, Quantity: d("3"), Reason: entity.ReasonReturn},
		{Direction: entity.MovementExit, Quantity: d("4"), Reason: entity.ReasonSale},
	}
	assert.True(t, inventory.Replay(movs).Equal(d("6")))

	p := &entity.Product{ID: "p1", Stock: d("7")}
	rec := inventory.Reconcile(p, movs)
	assert.False(t, rec.InSync())
	assert.True(t, rec.Drift.Equal(d("1")))
	assert.Equal(t, 4, rec.Movements)

	p.Stock = d("6")
	assert.True(t, inventory.Reconcile(p, movs).InSync())
}

func TestFormatSaleNumber(t *testing.T) {
	assert.Equal(t, "000001", inventory.FormatSaleNumber(1))
	assert.Equal(t, "000042", inventory.FormatSaleNumber(42))
	assert.Equal(t, "1234567", inventory.FormatSaleNumber(1234567))

	assert.True(t, inventory.SaleNumberAfter("1000000", "999999"))
	assert.True(t, inventory.SaleNumberAfter("000010", "000009"))
	assert.False(t, inventory.SaleNumberAfter("000001", "000001"))
}

func TestTotals(t *testing.T) {
	gross, net, ok := inventory.Totals([]decimal.Decimal{d("10.50"), d("4.50")}, d("5"))
	assert.True(t, ok)
	assert.True(t, gross.Equal(d("15")))
	assert.True(t, net.Equal(d("10")))

	_, _, ok = inventory.Totals([]decimal.Decimal{d("10")}, d("10.01"))
	assert.False(t, ok)

	_, _, ok = inventory.Totals([]decimal.Decimal{d("10")}, d("-1"))
	assert.False(t, ok)
}

func TestDemand_AcumulaYOrdena(t *testing.T) {
	dm := inventory.Demand{}
	dm.Add("b", d("1"))
	dm.Add("a", d("2"))
	dm.Add("b", d("3"))

	assert.True(t, dm["b"].Equal(d("4")))
	assert.Equal(t, []string{"a", "b"}, dm.LockOrder())
}

func TestLineSubtotal_RedondeaACentavos(t *testing.T) {
	assert.True(t, inventory.LineSubtotal(d("0.333"), d("10")).Equal(d("3.33")))
}
