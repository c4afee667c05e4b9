package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/petshop-api/internal/domain"
	"github.com/jhoicas/petshop-api/internal/domain/entity"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, number, COALESCE(customer_id::text, ''), payment_type, status, gross_total, discount,
	net_total, notes, sold_at, cancelled_at, COALESCE(created_by::text, ''), created_at, updated_at`

// SaleRepo ventas y sus líneas.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el repositorio.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	if err := row.Scan(&s.ID, &s.Number, &s.CustomerID, &s.PaymentType, &s.Status, &s.GrossTotal, &s.Discount,
		&s.NetTotal, &s.Notes, &s.SoldAt, &s.CancelledAt, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserta la venta con sus líneas. Un número repetido devuelve ErrDuplicate.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, number, customer_id, payment_type, status, gross_total, discount, net_total,
			notes, sold_at, cancelled_at, created_by, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, $7, $8, $9, $10, $11, NULLIF($12, '')::uuid, $13, $14)`,
		s.ID, s.Number, s.CustomerID, s.PaymentType, s.Status, s.GrossTotal, s.Discount, s.NetTotal,
		s.Notes, s.SoldAt, s.CancelledAt, s.CreatedBy, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	for _, l := range s.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_lines (id, sale_id, product_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			l.ID, s.ID, l.ProductID, l.Quantity, l.UnitPrice, l.Subtotal,
		)
		if err != nil {
			if mapped := mapWriteError(err); mapped != nil {
				return mapped
			}
			return fmt.Errorf("insert sale line: %w", err)
		}
	}
	return nil
}

func (r *SaleRepo) get(ctx context.Context, id, suffix string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`+suffix, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_id, quantity, unit_price, subtotal
		FROM sale_lines WHERE sale_id = $1 ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("get sale lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		s.Lines = append(s.Lines, l)
	}
	return s, rows.Err()
}

// GetByID obtiene la venta con sus líneas.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate obtiene la venta bloqueando la cabecera.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

// UpdateStatus persiste estado, notas y fecha de cancelación.
func (r *SaleRepo) UpdateStatus(ctx context.Context, s *entity.Sale) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE sales SET status = $2, notes = $3, cancelled_at = $4, updated_at = $5 WHERE id = $1`,
		s.ID, s.Status, s.Notes, s.CancelledAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve cabeceras de ventas, de la más nueva a la más vieja.
// CustomerTotals suma en SQL todas las ventas completadas del cliente.
func (r *SaleRepo) CustomerTotals(ctx context.Context, customerID string) (repository.CustomerSaleTotals, error) {
	query, args, err := psql.Select(
		"COUNT(*)",
		"COALESCE(SUM(net_total), 0)",
		"COALESCE(SUM(net_total) FILTER (WHERE payment_type = 'CREDIT_TERM'), 0)",
	).From("sales").Where(squirrel.Eq{"customer_id": customerID, "status": entity.SaleStatusCompleted}).ToSql()
	if err != nil {
		return repository.CustomerSaleTotals{}, fmt.Errorf("build customer totals: %w", err)
	}
	var t repository.CustomerSaleTotals
	if err := r.q.QueryRow(ctx, query, args...).Scan(&t.Count, &t.Total, &t.Credit); err != nil {
		return repository.CustomerSaleTotals{}, fmt.Errorf("customer totals: %w", err)
	}
	return t, nil
}

func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, int, error) {
	cond := squirrel.And{}
	if f.CustomerID != "" {
		cond = append(cond, squirrel.Eq{"customer_id": f.CustomerID})
	}
	if f.Status != "" {
		cond = append(cond, squirrel.Eq{"status": f.Status})
	}
	if f.PaymentType != "" {
		cond = append(cond, squirrel.Eq{"payment_type": f.PaymentType})
	}
	if f.From != nil {
		cond = append(cond, squirrel.GtOrEq{"sold_at": *f.From})
	}
	if f.To != nil {
		cond = append(cond, squirrel.LtOrEq{"sold_at": *f.To})
	}
	total, err := count(ctx, r.q, psql.Select("COUNT(*)").From("sales").Where(cond))
	if err != nil {
		return nil, 0, err
	}
	limit, offset := pageDefaults(f.Limit, f.Offset)
	query, args, err := psql.Select(saleColumns).From("sales").Where(cond).
		OrderBy("LENGTH(number) DESC", "number DESC").Limit(limit).Offset(offset).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list sales: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}
