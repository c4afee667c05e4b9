package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/petshop-api/internal/domain/entity"
)

// ProductFilter criterios de listado de productos.
type ProductFilter struct {
	Search     string // nombre o código de barras
	CategoryID string
	SupplierID string
	Active     *bool
	LowStock   bool
	Limit      int
	Offset     int
}

// ProductRepository puerto de persistencia para Product.
// SetStock y SetStockAndCost son de uso exclusivo del coordinador de inventario.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	// Update modifica solo campos de catálogo; nunca stock ni costo.
	Update(ctx context.Context, product *entity.Product) error
	SetStock(ctx context.Context, id string, stock decimal.Decimal) error
	SetStockAndCost(ctx context.Context, id string, stock, cost decimal.Decimal) error
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, int, error)
	// HasHistory indica si el producto tiene movimientos o líneas de venta/compra.
	HasHistory(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}
