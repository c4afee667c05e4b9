package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/petshop-api/internal/domain"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
)

var _ repository.CounterRepository = (*CounterRepo)(nil)

// CounterRepo correlativos de documentos en la tabla document_counters.
type CounterRepo struct {
	q Querier
}

// NewCounterRepository construye el repositorio.
func NewCounterRepository(q Querier) *CounterRepo {
	return &CounterRepo{q: q}
}

// Next incrementa y devuelve el contador. El UPDATE bloquea la fila hasta el fin de la
// transacción, así que dos ventas concurrentes nunca reciben el mismo número y un rollback
// devuelve el valor.
func (r *CounterRepo) Next(ctx context.Context, name string) (int64, error) {
	var value int64
	err := r.q.QueryRow(ctx,
		`UPDATE document_counters SET value = value + 1 WHERE name = $1 RETURNING value`, name,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: contador %q", domain.ErrNotFound, name)
		}
		return 0, fmt.Errorf("next counter: %w", err)
	}
	return value, nil
}
