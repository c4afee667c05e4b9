package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/petshop-api/internal/domain/entity"
)

// CustomerFilter criterios de listado de clientes.
type CustomerFilter struct {
	Search   string
	Active   *bool
	WithDebt bool
	Limit    int
	Offset   int
}

// CustomerRepository puerto de persistencia para clientes.
type CustomerRepository interface {
	Create(ctx context.Context, c *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Customer, error)
	GetByDocument(ctx context.Context, document string) (*entity.Customer, error)
	// Update modifica datos de contacto, límite y estado; la deuda va por SetDebt.
	Update(ctx context.Context, c *entity.Customer) error
	SetDebt(ctx context.Context, id string, debt decimal.Decimal) error
	List(ctx context.Context, f CustomerFilter) ([]*entity.Customer, int, error)
}
