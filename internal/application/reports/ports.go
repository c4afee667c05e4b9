// Package reports contiene los casos de uso de lectura: panel principal, reportes agregados, inventario
// valorizado con exportación a planilla y comprobante de venta en PDF.
package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/petshop-api/internal/application/dto"
	"github.com/jhoicas/petshop-api/internal/domain/entity"
)

// Cache almacén clave/valor con expiración. Get devuelve false si la clave no existe.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// StockSheetExporter genera la planilla del inventario valorizado.
type StockSheetExporter interface {
	ExportStock(ctx context.Context, report *dto.StockReportDTO, generatedAt time.Time) ([]byte, error)
}

// ReceiptLine línea del comprobante con el nombre del producto resuelto.
type ReceiptLine struct {
	ProductName string
	UnitMeasure string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// ReceiptData datos para imprimir el comprobante de una venta.
type ReceiptData struct {
	StoreName    string
	Sale         *entity.Sale
	CustomerName string
	Lines        []ReceiptLine
}

// ReceiptGenerator genera el comprobante en PDF.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, data ReceiptData) ([]byte, error)
}
