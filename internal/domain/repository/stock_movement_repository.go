package repository

import (
	"context"
	"time"

	"github.com/jhoicas/petshop-api/internal/domain/entity"
)

// MovementFilter criterios de listado del libro de stock.
type MovementFilter struct {
	ProductID string
	Direction string
	Reason    string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// StockMovementRepository libro append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	List(ctx context.Context, f MovementFilter) ([]*entity.StockMovement, int, error)
	// ListByProduct devuelve todos los movimientos del producto en orden cronológico.
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error)
}
