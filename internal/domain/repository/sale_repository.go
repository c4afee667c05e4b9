package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/petshop-api/internal/domain/entity"
)

// SaleFilter criterios de listado de ventas.
type SaleFilter struct {
	CustomerID  string
	Status      string
	PaymentType string
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// CustomerSaleTotals acumulado histórico de ventas COMPLETED de un cliente.
type CustomerSaleTotals struct {
	Count  int
	Total  decimal.Decimal
	Credit decimal.Decimal // solo CREDIT_TERM
}

// SaleRepository puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	Create(ctx context.Context, s *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	// UpdateStatus persiste Status, Notes, CancelledAt y UpdatedAt.
	UpdateStatus(ctx context.Context, s *entity.Sale) error
	// List devuelve ventas sin líneas.
	List(ctx context.Context, f SaleFilter) ([]*entity.Sale, int, error)
	CustomerTotals(ctx context.Context, customerID string) (CustomerSaleTotals, error)
}
