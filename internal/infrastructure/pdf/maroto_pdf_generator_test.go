package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/petshop-api/internal/application/reports"
	"github.com/jhoicas/petshop-api/internal/domain/entity"
	"github.com/jhoicas/petshop-api/internal/infrastructure/pdf"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestGenerateReceipt(t *testing.T) {
	g := pdf.NewMarotoReceiptGenerator()
	sale := &entity.Sale{
		Number:      "000042",
		PaymentType: entity.PaymentPix,
		Status:      entity.SaleStatusCompleted,
		GrossTotal:  d("112.40"),
		Discount:    d("2.40"),
		NetTotal:    d("110"),
		SoldAt:      time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC),
	}
	out, err := g.GenerateReceipt(context.Background(), reports.ReceiptData{
		StoreName:    "Pet Shop Amigo",
		Sale:         sale,
		CustomerName: "Ana",
		Lines: []reports.ReceiptLine{
			{ProductName: "Ração 1kg", UnitMeasure: "un", Quantity: d("2"), UnitPrice: d("45.90"), Subtotal: d("91.80")},
			{ProductName: "Areia", UnitMeasure: "kg", Quantity: d("1.250"), UnitPrice: d("16.48"), Subtotal: d("20.60")},
		},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateReceipt_SinVenta(t *testing.T) {
	_, err := pdf.NewMarotoReceiptGenerator().GenerateReceipt(context.Background(), reports.ReceiptData{})
	assert.Error(t, err)
}

func TestFormatBRL(t *testing.T) {
	p := message.NewPrinter(language.BrazilianPortuguese)
	assert.Equal(t, "R$ 45,90", pdf.FormatBRL(p, d("45.9")))
	assert.Equal(t, "R$ 1.234,50", pdf.FormatBRL(p, d("1234.5")))
}
