package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/petshop-api/internal/domain/entity"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*reportRepo)(nil)

// Reports devuelve el repositorio de reportes.
func (s *Store) Reports() repository.ReportRepository {
	return &reportRepo{base{s: s}}
}

type reportRepo struct{ base }

func (r *reportRepo) DashboardCounters(_ context.Context, dayStart, monthStart time.Time) (*repository.DashboardCounters, error) {
	defer r.lock()()
	c := &repository.DashboardCounters{SalesToday: decimal.Zero, SalesMonth: decimal.Zero, OutstandingCredit: decimal.Zero}
	for _, s := range r.s.st.sales {
		if s.Status != entity.SaleStatusCompleted {
			continue
		}
		if !s.SoldAt.Before(monthStart) {
			c.SalesMonth = c.SalesMonth.Add(s.NetTotal)
			c.SalesMonthCount++
		}
		if !s.SoldAt.Before(dayStart) {
			c.SalesToday = c.SalesToday.Add(s.NetTotal)
			c.SalesTodayCount++
		}
	}
	for _, p := range r.s.st.products {
		if !p.Active {
			continue
		}
		if p.Stock.IsPositive() {
			c.ProductsInStock++
		}
		if p.IsLowStock() {
			c.LowStockProducts++
		}
	}
	for _, cu := range r.s.st.customers {
		if cu.Active {
			c.ActiveCustomers++
		}
		c.OutstandingCredit = c.OutstandingCredit.Add(cu.Debt)
	}
	return c, nil
}

func (r *reportRepo) StockInventory(_ context.Context) ([]repository.StockReportRow, error) {
	defer r.lock()()
	var rows []repository.StockReportRow
	for _, p := range r.s.st.products {
		if !p.Active {
			continue
		}
		category := ""
		if c, ok := r.s.st.categories[p.CategoryID]; ok {
			category = c.Name
		}
		rows = append(rows, repository.StockReportRow{
			ProductID:    p.ID,
			ProductName:  p.Name,
			Barcode:      p.Barcode,
			CategoryName: category,
			UnitMeasure:  p.UnitMeasure,
			Stock:        p.Stock,
			MinStock:     p.MinStock,
			PurchaseCost: p.PurchaseCost,
			SalePrice:    p.SalePrice,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CategoryName != rows[j].CategoryName {
			return rows[i].CategoryName < rows[j].CategoryName
		}
		return rows[i].ProductName < rows[j].ProductName
	})
	return rows, nil
}
