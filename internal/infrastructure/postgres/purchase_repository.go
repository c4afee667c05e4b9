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

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

const purchaseColumns = `id, number, supplier_id, invoice_number, status, total, notes, purchased_at,
	confirmed_at, COALESCE(created_by::text, ''), created_at, updated_at`

// PurchaseRepo compras a proveedores y sus líneas.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el repositorio.
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

func scanPurchase(row pgx.Row) (*entity.Purchase, error) {
	var p entity.Purchase
	if err := row.Scan(&p.ID, &p.Number, &p.SupplierID, &p.InvoiceNumber, &p.Status, &p.Total, &p.Notes,
		&p.PurchasedAt, &p.ConfirmedAt, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserta la cabecera y todas sus líneas. Debe llamarse dentro de una transacción.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchases (id, number, supplier_id, invoice_number, status, total, notes, purchased_at,
			confirmed_at, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, '')::uuid, $11, $12)`,
		p.ID, p.Number, p.SupplierID, p.InvoiceNumber, p.Status, p.Total, p.Notes, p.PurchasedAt,
		p.ConfirmedAt, p.CreatedBy, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	for _, l := range p.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO purchase_lines (id, purchase_id, product_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			l.ID, p.ID, l.ProductID, l.Quantity, l.UnitPrice, l.Subtotal,
		)
		if err != nil {
			if mapped := mapWriteError(err); mapped != nil {
				return mapped
			}
			return fmt.Errorf("insert purchase line: %w", err)
		}
	}
	return nil
}

func (r *PurchaseRepo) get(ctx context.Context, id, suffix string) (*entity.Purchase, error) {
	p, err := scanPurchase(r.q.QueryRow(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1`+suffix, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, purchase_id, product_id, quantity, unit_price, subtotal
		FROM purchase_lines WHERE purchase_id = $1 ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("get purchase lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.PurchaseLine
		if err := rows.Scan(&l.ID, &l.PurchaseID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan purchase line: %w", err)
		}
		p.Lines = append(p.Lines, l)
	}
	return p, rows.Err()
}

// GetByID obtiene la compra con sus líneas.
func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate obtiene la compra bloqueando la cabecera.
func (r *PurchaseRepo) GetForUpdate(ctx context.Context, id string) (*entity.Purchase, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

// UpdateStatus persiste estado, notas y fecha de confirmación.
func (r *PurchaseRepo) UpdateStatus(ctx context.Context, p *entity.Purchase) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE purchases SET status = $2, notes = $3, confirmed_at = $4, updated_at = $5 WHERE id = $1`,
		p.ID, p.Status, p.Notes, p.ConfirmedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update purchase status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve cabeceras de compras, de la más nueva a la más vieja.
func (r *PurchaseRepo) List(ctx context.Context, f repository.PurchaseFilter) ([]*entity.Purchase, int, error) {
	cond := squirrel.And{}
	if f.SupplierID != "" {
		cond = append(cond, squirrel.Eq{"supplier_id": f.SupplierID})
	}
	if f.Status != "" {
		cond = append(cond, squirrel.Eq{"status": f.Status})
	}
	if f.From != nil {
		cond = append(cond, squirrel.GtOrEq{"purchased_at": *f.From})
	}
	if f.To != nil {
		cond = append(cond, squirrel.LtOrEq{"purchased_at": *f.To})
	}
	total, err := count(ctx, r.q, psql.Select("COUNT(*)").From("purchases").Where(cond))
	if err != nil {
		return nil, 0, err
	}
	limit, offset := pageDefaults(f.Limit, f.Offset)
	query, args, err := psql.Select(purchaseColumns).From("purchases").Where(cond).
		OrderBy("number DESC").Limit(limit).Offset(offset).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list purchases: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}
