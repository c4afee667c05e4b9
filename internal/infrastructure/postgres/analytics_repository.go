package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/jhoicas/petshop-api/internal/domain/entity"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
)

func inPeriod(qb squirrel.SelectBuilder, column string, p repository.ReportPeriod) squirrel.SelectBuilder {
	if p.From != nil {
		qb = qb.Where(squirrel.GtOrEq{column: *p.From})
	}
	if p.To != nil {
		qb = qb.Where(squirrel.LtOrEq{column: *p.To})
	}
	return qb
}

func limitTop(qb squirrel.SelectBuilder, top int) squirrel.SelectBuilder {
	if top > 0 {
		qb = qb.Limit(uint64(top))
	}
	return qb
}

// Sales agrega totales, ranking de vendedores y productos más vendidos.
func (r *ReportRepo) Sales(ctx context.Context, p repository.ReportPeriod, top int) (*repository.SalesReport, error) {
	completed := squirrel.Eq{"s.status": entity.SaleStatusCompleted}
	out := &repository.SalesReport{}

	query, args, err := inPeriod(psql.Select(
		"COUNT(*)",
		"COALESCE(SUM(s.gross_total), 0)",
		"COALESCE(SUM(s.discount), 0)",
		"COALESCE(SUM(s.net_total), 0)",
	).From("sales s").Where(completed), "s.sold_at", p).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sales totals: %w", err)
	}
	if err := r.q.QueryRow(ctx, query, args...).Scan(&out.Count, &out.Gross, &out.Discount, &out.Net); err != nil {
		return nil, fmt.Errorf("sales totals: %w", err)
	}

	query, args, err = inPeriod(psql.Select(
		"COALESCE(s.created_by::text, '')", "COALESCE(u.name, '')", "COUNT(*)", "SUM(s.net_total)",
	).From("sales s").
		LeftJoin("users u ON u.id = s.created_by").
		Where(completed), "s.sold_at", p).
		GroupBy("s.created_by", "u.name").
		OrderBy("SUM(s.net_total) DESC", "COALESCE(u.name, '')").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sales by seller: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sales by seller: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s repository.SellerSales
		if err := rows.Scan(&s.UserID, &s.UserName, &s.Count, &s.Net); err != nil {
			return nil, fmt.Errorf("scan seller: %w", err)
		}
		out.BySeller = append(out.BySeller, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out.TopProducts, err = r.volumes(ctx, limitTop(inPeriod(volumeSelect().
		From("sale_lines l").
		Join("sales s ON s.id = l.sale_id").
		Join("products pr ON pr.id = l.product_id").
		Where(completed), "s.sold_at", p), top))
	if err != nil {
		return nil, fmt.Errorf("top sold products: %w", err)
	}
	return out, nil
}

// Purchases agrega compras confirmadas por proveedor, producto y mes.
func (r *ReportRepo) Purchases(ctx context.Context, p repository.ReportPeriod, top int, since time.Time) (*repository.PurchasesReport, error) {
	confirmed := squirrel.Eq{"c.status": entity.PurchaseStatusConfirmed}
	out := &repository.PurchasesReport{}

	query, args, err := inPeriod(psql.Select("COUNT(*)", "COALESCE(SUM(c.total), 0)").
		From("purchases c").Where(confirmed), "c.purchased_at", p).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build purchase totals: %w", err)
	}
	if err := r.q.QueryRow(ctx, query, args...).Scan(&out.Count, &out.Total); err != nil {
		return nil, fmt.Errorf("purchase totals: %w", err)
	}

	out.BySupplier, err = r.parties(ctx, inPeriod(psql.Select(
		"c.supplier_id::text", "COALESCE(sp.name, '')", "COUNT(*)", "SUM(c.total)",
	).From("purchases c").
		LeftJoin("suppliers sp ON sp.id = c.supplier_id").
		Where(confirmed), "c.purchased_at", p).
		GroupBy("c.supplier_id", "sp.name").
		OrderBy("SUM(c.total) DESC", "COALESCE(sp.name, '')"))
	if err != nil {
		return nil, fmt.Errorf("purchases by supplier: %w", err)
	}

	out.TopProducts, err = r.volumes(ctx, limitTop(inPeriod(volumeSelect().
		From("purchase_lines l").
		Join("purchases c ON c.id = l.purchase_id").
		Join("products pr ON pr.id = l.product_id").
		Where(confirmed), "c.purchased_at", p), top))
	if err != nil {
		return nil, fmt.Errorf("top purchased products: %w", err)
	}

	month := "to_char(c.purchased_at AT TIME ZONE 'UTC', 'YYYY-MM')"
	query, args, err = psql.Select(month, "COUNT(*)", "SUM(c.total)").
		From("purchases c").
		Where(confirmed).
		Where(squirrel.GtOrEq{"c.purchased_at": since}).
		GroupBy(month).OrderBy(month).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build purchases by month: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("purchases by month: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m repository.MonthAmount
		if err := rows.Scan(&m.Month, &m.Count, &m.Amount); err != nil {
			return nil, fmt.Errorf("scan month: %w", err)
		}
		out.ByMonth = append(out.ByMonth, m)
	}
	return out, rows.Err()
}

// Customers resume deuda de la cartera y los clientes que más compraron.
func (r *ReportRepo) Customers(ctx context.Context, top int) (*repository.CustomersReport, error) {
	out := &repository.CustomersReport{}
	err := r.q.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE active),
			COUNT(*) FILTER (WHERE debt > 0),
			COALESCE(SUM(debt) FILTER (WHERE debt > 0), 0)
		FROM customers`,
	).Scan(&out.Active, &out.WithDebt, &out.TotalDebt)
	if err != nil {
		return nil, fmt.Errorf("customer totals: %w", err)
	}
	out.TopBuyers, err = r.parties(ctx, limitTop(psql.Select(
		"s.customer_id::text", "COALESCE(cu.name, '')", "COUNT(*)", "SUM(s.net_total)",
	).From("sales s").
		LeftJoin("customers cu ON cu.id = s.customer_id").
		Where(squirrel.Eq{"s.status": entity.SaleStatusCompleted}).
		Where(squirrel.NotEq{"s.customer_id": nil}).
		GroupBy("s.customer_id", "cu.name").
		OrderBy("SUM(s.net_total) DESC", "COALESCE(cu.name, '')"), top))
	if err != nil {
		return nil, fmt.Errorf("top customers: %w", err)
	}
	return out, nil
}

// Suppliers resume la cartera de proveedores y su cobertura por categoría.
func (r *ReportRepo) Suppliers(ctx context.Context, top int) (*repository.SuppliersReport, error) {
	out := &repository.SuppliersReport{}
	err := r.q.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM suppliers WHERE active),
			(SELECT COUNT(DISTINCT supplier_id) FROM products WHERE active AND supplier_id IS NOT NULL)`,
	).Scan(&out.Active, &out.WithProducts)
	if err != nil {
		return nil, fmt.Errorf("supplier totals: %w", err)
	}

	out.TopSuppliers, err = r.parties(ctx, limitTop(psql.Select(
		"c.supplier_id::text", "COALESCE(sp.name, '')", "COUNT(*)", "SUM(c.total)",
	).From("purchases c").
		LeftJoin("suppliers sp ON sp.id = c.supplier_id").
		Where(squirrel.Eq{"c.status": entity.PurchaseStatusConfirmed}).
		GroupBy("c.supplier_id", "sp.name").
		OrderBy("SUM(c.total) DESC", "COALESCE(sp.name, '')"), top))
	if err != nil {
		return nil, fmt.Errorf("top suppliers: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT COALESCE(ca.name, ''), COUNT(DISTINCT p.supplier_id)
		FROM products p
		LEFT JOIN categories ca ON ca.id = p.category_id
		WHERE p.active AND p.supplier_id IS NOT NULL
		GROUP BY COALESCE(ca.name, '')
		ORDER BY COALESCE(ca.name, '')`)
	if err != nil {
		return nil, fmt.Errorf("suppliers by category: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c repository.CategorySuppliers
		if err := rows.Scan(&c.CategoryName, &c.Suppliers); err != nil {
			return nil, fmt.Errorf("scan category suppliers: %w", err)
		}
		out.ByCategory = append(out.ByCategory, c)
	}
	return out, rows.Err()
}

// FinanceByCategory agrupa las transacciones del usuario por categoría y tipo.
func (r *ReportRepo) FinanceByCategory(ctx context.Context, userID string, p repository.ReportPeriod) ([]repository.CategoryFlow, error) {
	query, args, err := inPeriod(psql.Select(
		"COALESCE(t.category_id::text, '')", "COALESCE(ca.name, '')", "t.kind", "COUNT(*)", "SUM(t.amount)",
	).From("transactions t").
		LeftJoin("categories ca ON ca.id = t.category_id").
		Where(squirrel.Eq{"t.user_id": userID}), "t.occurred_on", p).
		GroupBy("t.category_id", "ca.name", "t.kind").
		OrderBy("t.kind", "SUM(t.amount) DESC", "COALESCE(ca.name, '')").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build finance by category: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finance by category: %w", err)
	}
	defer rows.Close()
	out := []repository.CategoryFlow{}
	for rows.Next() {
		var f repository.CategoryFlow
		if err := rows.Scan(&f.CategoryID, &f.CategoryName, &f.Kind, &f.Count, &f.Amount); err != nil {
			return nil, fmt.Errorf("scan category flow: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// FinanceByMonth serie mensual de ingresos y gastos del usuario.
func (r *ReportRepo) FinanceByMonth(ctx context.Context, userID string, since time.Time) ([]repository.MonthFlow, error) {
	month := "to_char(occurred_on, 'YYYY-MM')"
	query, args, err := psql.Select(
		month,
		"COALESCE(SUM(amount) FILTER (WHERE kind = 'INCOME'), 0)",
		"COALESCE(SUM(amount) FILTER (WHERE kind = 'EXPENSE'), 0)",
	).From("transactions").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"occurred_on": since}).
		GroupBy(month).OrderBy(month).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build finance by month: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finance by month: %w", err)
	}
	defer rows.Close()
	out := []repository.MonthFlow{}
	for rows.Next() {
		var m repository.MonthFlow
		if err := rows.Scan(&m.Month, &m.Income, &m.Expense); err != nil {
			return nil, fmt.Errorf("scan month flow: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func volumeSelect() squirrel.SelectBuilder {
	return psql.Select("l.product_id::text", "pr.name", "pr.unit_measure", "SUM(l.quantity)", "SUM(l.subtotal)").
		GroupBy("l.product_id", "pr.name", "pr.unit_measure").
		OrderBy("SUM(l.quantity) DESC", "pr.name")
}

func (r *ReportRepo) volumes(ctx context.Context, qb squirrel.SelectBuilder) ([]repository.ProductVolume, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []repository.ProductVolume
	for rows.Next() {
		var v repository.ProductVolume
		if err := rows.Scan(&v.ProductID, &v.ProductName, &v.UnitMeasure, &v.Quantity, &v.Amount); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *ReportRepo) parties(ctx context.Context, qb squirrel.SelectBuilder) ([]repository.PartyAmount, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []repository.PartyAmount
	for rows.Next() {
		var p repository.PartyAmount
		if err := rows.Scan(&p.ID, &p.Name, &p.Count, &p.Amount); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
