package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/petshop-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas para dashboard e inventario.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el repositorio de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// DashboardCounters calcula los contadores del panel en una sola ida a la base.
func (r *ReportRepo) DashboardCounters(ctx context.Context, dayStart, monthStart time.Time) (*repository.DashboardCounters, error) {
	query := `
		SELECT
			COALESCE(SUM(net_total) FILTER (WHERE sold_at >= $1), 0),
			COUNT(*) FILTER (WHERE sold_at >= $1),
			COALESCE(SUM(net_total) FILTER (WHERE sold_at >= $2), 0),
			COUNT(*) FILTER (WHERE sold_at >= $2),
			(SELECT COUNT(*) FROM products WHERE active AND stock > 0),
			(SELECT COUNT(*) FROM products WHERE active AND stock <= min_stock),
			(SELECT COUNT(*) FROM customers WHERE active),
			(SELECT COALESCE(SUM(debt), 0) FROM customers)
		FROM sales
		WHERE status = 'COMPLETED' AND sold_at >= LEAST($1::timestamptz, $2::timestamptz)`
	var c repository.DashboardCounters
	err := r.q.QueryRow(ctx, query, dayStart, monthStart).Scan(
		&c.SalesToday, &c.SalesTodayCount, &c.SalesMonth, &c.SalesMonthCount,
		&c.ProductsInStock, &c.LowStockProducts, &c.ActiveCustomers, &c.OutstandingCredit,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard counters: %w", err)
	}
	return &c, nil
}

// StockInventory devuelve los productos activos con el nombre de su categoría.
func (r *ReportRepo) StockInventory(ctx context.Context) ([]repository.StockReportRow, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.name, COALESCE(p.barcode, ''), COALESCE(c.name, ''), p.unit_measure,
			p.stock, p.min_stock, p.purchase_cost, p.sale_price
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.active
		ORDER BY COALESCE(c.name, ''), p.name`)
	if err != nil {
		return nil, fmt.Errorf("stock inventory: %w", err)
	}
	defer rows.Close()
	var out []repository.StockReportRow
	for rows.Next() {
		var s repository.StockReportRow
		if err := rows.Scan(&s.ProductID, &s.ProductName, &s.Barcode, &s.CategoryName, &s.UnitMeasure,
			&s.Stock, &s.MinStock, &s.PurchaseCost, &s.SalePrice); err != nil {
			return nil, fmt.Errorf("scan stock row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
