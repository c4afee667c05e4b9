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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, COALESCE(user_id::text, ''), name, description, kind, color, icon, active, created_at, updated_at`

// CategoryRepo categorías de productos y de finanzas.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el repositorio.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.Kind, &c.Color, &c.Icon, &c.Active,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO categories (id, user_id, name, description, kind, color, icon, active, created_at, updated_at)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.UserID, c.Name, c.Description, c.Kind, c.Color, c.Icon, c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE categories SET name = $2, description = $3, color = $4, icon = $5, active = $6, updated_at = $7
		WHERE id = $1`,
		c.ID, c.Name, c.Description, c.Color, c.Icon, c.Active, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve categorías ordenadas por nombre. Sin paginación: son pocas por usuario.
func (r *CategoryRepo) List(ctx context.Context, f repository.CategoryFilter) ([]*entity.Category, error) {
	cond := squirrel.And{}
	if f.UserID != "" {
		cond = append(cond, squirrel.Eq{"user_id": f.UserID})
	}
	if f.Kind != "" {
		cond = append(cond, squirrel.Eq{"kind": f.Kind})
	}
	if f.Active != nil {
		cond = append(cond, squirrel.Eq{"active": *f.Active})
	}
	query, args, err := psql.Select(categoryColumns).From("categories").Where(cond).OrderBy("name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list categories: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
