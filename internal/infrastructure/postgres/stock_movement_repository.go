package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/petshop-api/internal/domain/entity"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, product_id, direction, quantity, reason, note,
	COALESCE(reference_id::text, ''), COALESCE(created_by::text, ''), occurred_at`

// StockMovementRepo libro de stock sobre PostgreSQL. Solo inserta y lee.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el repositorio.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	if err := row.Scan(&m.ID, &m.ProductID, &m.Direction, &m.Quantity, &m.Reason, &m.Note,
		&m.ReferenceID, &m.CreatedBy, &m.OccurredAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create registra un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, direction, quantity, reason, note, reference_id, created_by, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')::uuid, NULLIF($8, '')::uuid, $9)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.Direction, m.Quantity, m.Reason, m.Note, m.ReferenceID, m.CreatedBy, m.OccurredAt)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// List devuelve movimientos del más reciente al más antiguo.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	cond := squirrel.And{}
	if f.ProductID != "" {
		cond = append(cond, squirrel.Eq{"product_id": f.ProductID})
	}
	if f.Direction != "" {
		cond = append(cond, squirrel.Eq{"direction": f.Direction})
	}
	if f.Reason != "" {
		cond = append(cond, squirrel.Eq{"reason": f.Reason})
	}
	if f.From != nil {
		cond = append(cond, squirrel.GtOrEq{"occurred_at": *f.From})
	}
	if f.To != nil {
		cond = append(cond, squirrel.LtOrEq{"occurred_at": *f.To})
	}

	total, err := count(ctx, r.q, psql.Select("COUNT(*)").From("stock_movements").Where(cond))
	if err != nil {
		return nil, 0, err
	}
	limit, offset := pageDefaults(f.Limit, f.Offset)
	query, args, err := psql.Select(movementColumns).From("stock_movements").Where(cond).
		OrderBy("occurred_at DESC", "seq DESC").Limit(limit).Offset(offset).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list movements: %w", err)
	}
	list, err := r.query(ctx, query, args...)
	return list, total, err
}

// ListByProduct devuelve el libro completo del producto en orden cronológico.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	return r.query(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE product_id = $1 ORDER BY seq ASC`, productID)
}

func (r *StockMovementRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
