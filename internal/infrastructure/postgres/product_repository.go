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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, description, COALESCE(barcode, ''), COALESCE(category_id::text, ''),
	COALESCE(supplier_id::text, ''), unit_measure, purchase_cost, sale_price, min_stock, stock,
	weighable, active, notes, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Barcode, &p.CategoryID, &p.SupplierID, &p.UnitMeasure,
		&p.PurchaseCost, &p.SalePrice, &p.MinStock, &p.Stock, &p.Weighable, &p.Active, &p.Notes,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, description, barcode, category_id, supplier_id, unit_measure,
			purchase_cost, sale_price, min_stock, stock, weighable, active, notes, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, '')::uuid, NULLIF($6, '')::uuid, $7,
			$8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Barcode, p.CategoryID, p.SupplierID, p.UnitMeasure,
		p.PurchaseCost, p.SalePrice, p.MinStock, p.Stock, p.Weighable, p.Active, p.Notes, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) getOne(ctx context.Context, where string, arg any, suffix string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE ` + where + suffix
	p, err := scanProduct(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, "id = $1", id, "")
}

// GetForUpdate obtiene el producto y bloquea su fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, "id = $1", id, " FOR UPDATE")
}

// GetByBarcode obtiene un producto por código de barras.
func (r *ProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	if barcode == "" {
		return nil, nil
	}
	return r.getOne(ctx, "barcode = $1", barcode, "")
}

// Update modifica los campos de catálogo. Stock y costo de compra no se tocan aquí.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, barcode = NULLIF($4, ''),
			category_id = NULLIF($5, '')::uuid, supplier_id = NULLIF($6, '')::uuid, unit_measure = $7,
			sale_price = $8, min_stock = $9, weighable = $10, active = $11, notes = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Barcode, p.CategoryID, p.SupplierID, p.UnitMeasure,
		p.SalePrice, p.MinStock, p.Weighable, p.Active, p.Notes, p.UpdatedAt,
	)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetStock fija el stock. Solo el coordinador de inventario lo llama, con la fila bloqueada.
func (r *ProductRepo) SetStock(ctx context.Context, id string, stock decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE products SET stock = $2, updated_at = NOW() WHERE id = $1`, id, stock)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetStockAndCost fija stock y último costo de compra.
func (r *ProductRepo) SetStockAndCost(ctx context.Context, id string, stock, cost decimal.Decimal) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE products SET stock = $2, purchase_cost = $3, updated_at = NOW() WHERE id = $1`, id, stock, cost)
	if err != nil {
		return fmt.Errorf("set stock and cost: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve productos filtrados, ordenados por nombre, y el total sin paginar.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	cond := squirrel.And{}
	if f.Search != "" {
		cond = append(cond, squirrel.Or{
			squirrel.ILike{"name": likePattern(f.Search)},
			squirrel.Eq{"barcode": f.Search},
		})
	}
	if f.CategoryID != "" {
		cond = append(cond, squirrel.Eq{"category_id": f.CategoryID})
	}
	if f.SupplierID != "" {
		cond = append(cond, squirrel.Eq{"supplier_id": f.SupplierID})
	}
	if f.Active != nil {
		cond = append(cond, squirrel.Eq{"active": *f.Active})
	}
	if f.LowStock {
		cond = append(cond, squirrel.Expr("stock <= min_stock"))
	}

	total, err := count(ctx, r.q, psql.Select("COUNT(*)").From("products").Where(cond))
	if err != nil {
		return nil, 0, err
	}
	limit, offset := pageDefaults(f.Limit, f.Offset)
	query, args, err := psql.Select(productColumns).From("products").Where(cond).
		OrderBy("name ASC").Limit(limit).Offset(offset).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list products: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// HasHistory indica si el producto aparece en el libro de stock o en líneas de venta/compra.
func (r *ProductRepo) HasHistory(ctx context.Context, id string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM stock_movements WHERE product_id = $1)
			OR EXISTS (SELECT 1 FROM sale_lines WHERE product_id = $1)
			OR EXISTS (SELECT 1 FROM purchase_lines WHERE product_id = $1)`
	var has bool
	if err := r.q.QueryRow(ctx, query, id).Scan(&has); err != nil {
		return false, fmt.Errorf("product history: %w", err)
	}
	return has, nil
}

// Delete elimina el producto. Una FK viva devuelve ErrConflict.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
