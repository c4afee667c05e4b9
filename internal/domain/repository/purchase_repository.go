package repository

import (
	"context"
	"time"

	"github.com/jhoicas/petshop-api/internal/domain/entity"
)

// PurchaseFilter criterios de listado de compras.
type PurchaseFilter struct {
	SupplierID string
	Status     string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// PurchaseRepository puerto de persistencia para compras y sus líneas.
type PurchaseRepository interface {
	// Create inserta la compra con sus líneas.
	Create(ctx context.Context, p *entity.Purchase) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Purchase, error)
	// UpdateStatus persiste Status, Notes, ConfirmedAt y UpdatedAt.
	UpdateStatus(ctx context.Context, p *entity.Purchase) error
	// List devuelve compras sin líneas.
	List(ctx context.Context, f PurchaseFilter) ([]*entity.Purchase, int, error)
}
