package repository

import (
	"context"

	"github.com/jhoicas/petshop-api/internal/domain/entity"
)

// CategoryFilter criterios de listado de categorías.
type CategoryFilter struct {
	UserID string
	Kind   string
	Active *bool
}

// CategoryRepository puerto de persistencia para categorías.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, c *entity.Category) error
	List(ctx context.Context, f CategoryFilter) ([]*entity.Category, error)
}
