package repository

import (
	"context"
	"time"

	"github.com/jhoicas/petshop-api/internal/domain/entity"
)

// TransactionFilter criterios de listado de transacciones de un usuario.
type TransactionFilter struct {
	UserID     string
	Kind       string
	CategoryID string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// TransactionRepository puerto de persistencia para ingresos y gastos.
type TransactionRepository interface {
	Create(ctx context.Context, t *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	Update(ctx context.Context, t *entity.Transaction) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f TransactionFilter) ([]*entity.Transaction, int, error)
	// Totals suma ingresos y gastos del usuario con fecha >= since (since cero = todo el histórico).
	Totals(ctx context.Context, userID string, since time.Time) (entity.FlowTotals, error)
}

// BalanceRepository persiste un snapshot de saldo por usuario.
type BalanceRepository interface {
	Get(ctx context.Context, userID string) (*entity.BalanceSnapshot, error)
	Upsert(ctx context.Context, s *entity.BalanceSnapshot) error
}
