package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/petshop-api/internal/domain"
	"github.com/jhoicas/petshop-api/internal/domain/entity"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, name, COALESCE(document, ''), email, phone, address, credit_limit, debt,
	active, notes, created_at, updated_at`

// CustomerRepo implementación de CustomerRepository sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el repositorio.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Document, &c.Email, &c.Phone, &c.Address, &c.CreditLimit, &c.Debt,
		&c.Active, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un cliente. Documento repetido devuelve ErrDuplicate.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO customers (id, name, document, email, phone, address, credit_limit, debt, active, notes, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		c.ID, c.Name, c.Document, c.Email, c.Phone, c.Address, c.CreditLimit, c.Debt, c.Active, c.Notes,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) getOne(ctx context.Context, where string, arg any) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE `+where, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	return r.getOne(ctx, "id = $1", id)
}

// GetForUpdate obtiene el cliente bloqueando su fila (deuda).
func (r *CustomerRepo) GetForUpdate(ctx context.Context, id string) (*entity.Customer, error) {
	return r.getOne(ctx, "id = $1 FOR UPDATE", id)
}

// GetByDocument busca por CPF/documento.
func (r *CustomerRepo) GetByDocument(ctx context.Context, document string) (*entity.Customer, error) {
	if document == "" {
		return nil, nil
	}
	return r.getOne(ctx, "document = $1", document)
}

// Update modifica datos del cliente sin tocar la deuda.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE customers SET name = $2, document = NULLIF($3, ''), email = $4, phone = $5, address = $6,
			credit_limit = $7, active = $8, notes = $9, updated_at = $10
		WHERE id = $1`,
		c.ID, c.Name, c.Document, c.Email, c.Phone, c.Address, c.CreditLimit, c.Active, c.Notes, c.UpdatedAt,
	)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetDebt fija el saldo deudor.
func (r *CustomerRepo) SetDebt(ctx context.Context, id string, debt decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE customers SET debt = $2, updated_at = NOW() WHERE id = $1`, id, debt)
	if err != nil {
		return fmt.Errorf("set customer debt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve clientes filtrados por nombre/documento, estado y deuda.
func (r *CustomerRepo) List(ctx context.Context, f repository.CustomerFilter) ([]*entity.Customer, int, error) {
	cond := squirrel.And{}
	if f.Search != "" {
		cond = append(cond, squirrel.Or{
			squirrel.ILike{"name": likePattern(f.Search)},
			squirrel.Eq{"document": f.Search},
		})
	}
	if f.Active != nil {
		cond = append(cond, squirrel.Eq{"active": *f.Active})
	}
	if f.WithDebt {
		cond = append(cond, squirrel.Gt{"debt": 0})
	}
	total, err := count(ctx, r.q, psql.Select("COUNT(*)").From("customers").Where(cond))
	if err != nil {
		return nil, 0, err
	}
	limit, offset := pageDefaults(f.Limit, f.Offset)
	query, args, err := psql.Select(customerColumns).From("customers").Where(cond).
		OrderBy("name ASC").Limit(limit).Offset(offset).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list customers: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}
