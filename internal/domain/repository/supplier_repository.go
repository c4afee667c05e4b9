package repository

import (
	"context"

	"github.com/jhoicas/petshop-api/internal/domain/entity"
)

// SupplierFilter criterios de listado de proveedores.
type SupplierFilter struct {
	Search string
	Active *bool
	Limit  int
	Offset int
}

// SupplierRepository puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	Update(ctx context.Context, s *entity.Supplier) error
	List(ctx context.Context, f SupplierFilter) ([]*entity.Supplier, int, error)
}
