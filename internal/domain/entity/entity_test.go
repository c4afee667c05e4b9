package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/petshop-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCustomerApplyDebt(t *testing.T) {
	tests := []struct {
		name          string
		debt          string
		op            string
		amount        string
		wantCurrent   string
		wantDiscarded string
	}{
		{"suma", "10", entity.DebtAdd, "5.50", "15.50", "0"},
		{"resta parcial", "10", entity.DebtSubtract, "4", "6", "0"},
		{"resta exacta", "10", entity.DebtSubtract, "10", "0", "0"},
		{"resta excedida se fija en cero", "10", entity.DebtSubtract, "25", "0", "15"},
		{"resta sobre saldo cero", "0", entity.DebtSubtract, "1", "0", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &entity.Customer{Debt: d(tt.debt)}
			ch := c.ApplyDebt(tt.op, d(tt.amount))

			assert.True(t, ch.Previous.Equal(d(tt.debt)))
			assert.True(t, ch.Current.Equal(d(tt.wantCurrent)), "current=%s", ch.Current)
			assert.True(t, ch.Discarded.Equal(d(tt.wantDiscarded)), "discarded=%s", ch.Discarded)
			assert.False(t, c.Debt.IsNegative())
		})
	}
}

func TestCustomerExceedsCreditLimit(t *testing.T) {
	c := &entity.Customer{Debt: d("80"), CreditLimit: d("100")}
	assert.False(t, c.ExceedsCreditLimit(d("20")))
	assert.True(t, c.ExceedsCreditLimit(d("20.01")))

	sinLimite := &entity.Customer{Debt: d("1000")}
	assert.False(t, sinLimite.ExceedsCreditLimit(d("99999")))
}

func TestProductMarginYStockStatus(t *testing.T) {
	p := &entity.Product{PurchaseCost: d("10"), SalePrice: d("15"), Stock: d("5"), MinStock: d("5")}
	assert.True(t, p.MarginPercent().Equal(d("50")))
	assert.Equal(t, entity.StockStatusLow, p.StockStatus())
	assert.True(t, p.StockValue().Equal(d("50")))

	p.Stock = d("6")
	assert.Equal(t, entity.StockStatusOK, p.StockStatus())

	p.PurchaseCost = decimal.Zero
	assert.True(t, p.MarginPercent().IsZero())
}

func TestStockMovementSigned(t *testing.T) {
	in := &entity.StockMovement{Direction: entity.MovementEntry, Quantity: d("3")}
	out := &entity.StockMovement{Direction: entity.MovementExit, Quantity: d("3")}
	assert.True(t, in.Signed().Equal(d("3")))
	assert.True(t, out.Signed().Equal(d("-3")))
}
