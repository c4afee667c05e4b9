package reports_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/petshop-api/internal/application/dto"
	"github.com/jhoicas/petshop-api/internal/application/inventory"
	"github.com/jhoicas/petshop-api/internal/application/reports"
	"github.com/jhoicas/petshop-api/internal/domain"
	"github.com/jhoicas/petshop-api/internal/domain/entity"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
	"github.com/jhoicas/petshop-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type mapCache struct {
	data   map[string][]byte
	getErr error
	sets   int
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) Get(_ context.Context, key string, dest any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *mapCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.sets++
	c.data[key] = raw
	return nil
}

func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

var now = time.Date(2026, 7, 15, 16, 0, 0, 0, time.UTC)

func seed(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()
	repos := store.Repositories()
	require.NoError(t, repos.Categories.Create(ctx, &entity.Category{ID: "cat-r", Name: "Rações", Kind: entity.CategoryProduct, Active: true}))
	require.NoError(t, repos.Categories.Create(ctx, &entity.Category{ID: "cat-a", Name: "Acessórios", Kind: entity.CategoryProduct, Active: true}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", Name: "Ração A", CategoryID: "cat-r", UnitMeasure: "un", Stock: d("10"), MinStock: d("2"), PurchaseCost: d("50"), SalePrice: d("80"), Active: true}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p2", Name: "Coleira", CategoryID: "cat-a", UnitMeasure: "un", Stock: d("1"), MinStock: d("3"), PurchaseCost: d("12.5"), SalePrice: d("30"), Active: true}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p3", Name: "Sem categoria", Stock: d("0"), MinStock: d("0"), Active: true}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p4", Name: "Inativo", CategoryID: "cat-a", Stock: d("5"), Active: false}))
	require.NoError(t, repos.Customers.Create(ctx, &entity.Customer{ID: "c1", Name: "Ana", Debt: d("40"), Active: true}))
	require.NoError(t, repos.Sales.Create(ctx, &entity.Sale{ID: "s1", Number: "000001", Status: entity.SaleStatusCompleted, NetTotal: d("100"), SoldAt: now.Add(-2 * time.Hour)}))
	require.NoError(t, repos.Sales.Create(ctx, &entity.Sale{ID: "s2", Number: "000002", Status: entity.SaleStatusCompleted, NetTotal: d("60"), SoldAt: now.AddDate(0, 0, -5)}))
	require.NoError(t, repos.Sales.Create(ctx, &entity.Sale{ID: "s3", Number: "000003", Status: entity.SaleStatusCancelled, NetTotal: d("999"), SoldAt: now.Add(-time.Hour)}))
	require.NoError(t, repos.Sales.Create(ctx, &entity.Sale{ID: "s4", Number: "000004", Status: entity.SaleStatusCompleted, NetTotal: d("70"), SoldAt: now.AddDate(0, -1, 0)}))
}

func TestDashboardStats_CacheEInvalidacion(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seed(t, store)
	cache := newMapCache()
	uc := reports.NewDashboardUseCase(store.Reports(), cache, time.Minute, nil).WithClock(func() time.Time { return now })

	stats, err := uc.Stats(ctx)
	require.NoError(t, err)
	assert.False(t, stats.Cached)
	assert.True(t, stats.SalesToday.Equal(d("100")))
	assert.Equal(t, 1, stats.SalesTodayCount)
	assert.True(t, stats.SalesMonth.Equal(d("160")))
	assert.Equal(t, 2, stats.SalesMonthCount)
	assert.Equal(t, 2, stats.ProductsInStock)
	assert.Equal(t, 2, stats.LowStockProducts, "p2 bajo el mínimo y p3 en cero con mínimo cero")
	assert.Equal(t, 1, stats.ActiveCustomers)
	assert.True(t, stats.OutstandingCredit.Equal(d("40")))

	again, err := uc.Stats(ctx)
	require.NoError(t, err)
	assert.True(t, again.Cached)
	assert.Equal(t, 1, cache.sets)

	uc.Invalidate(ctx)
	fresh, err := uc.Stats(ctx)
	require.NoError(t, err)
	assert.False(t, fresh.Cached)
	assert.Equal(t, 2, cache.sets)
}

// slowReports ejecuta duringQuery mientras calcula los contadores, como una venta que se
// confirma mientras el panel consulta la base.
type slowReports struct {
	repository.ReportRepository
	duringQuery func()
}

func (r *slowReports) DashboardCounters(ctx context.Context, dayStart, monthStart time.Time) (*repository.DashboardCounters, error) {
	c, err := r.ReportRepository.DashboardCounters(ctx, dayStart, monthStart)
	if r.duringQuery != nil {
		r.duringQuery()
	}
	return c, err
}

func TestDashboardStats_InvalidacionDuranteLaConsultaNoDejaCacheViejo(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seed(t, store)
	cache := newMapCache()
	slow := &slowReports{ReportRepository: store.Reports()}
	uc := reports.NewDashboardUseCase(slow, cache, time.Minute, nil).WithClock(func() time.Time { return now })
	slow.duringQuery = func() { uc.Invalidate(ctx) }

	stats, err := uc.Stats(ctx)
	require.NoError(t, err)
	assert.False(t, stats.Cached)
	assert.Equal(t, 0, cache.sets, "el resultado calculado antes de la invalidación no se guarda")
	assert.Empty(t, cache.data)

	slow.duringQuery = nil
	_, err = uc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	again, err := uc.Stats(ctx)
	require.NoError(t, err)
	assert.True(t, again.Cached)
}

func TestDashboardStats_CacheCaidoConsultaLaBase(t *testing.T) {
	store := memory.New()
	seed(t, store)
	cache := newMapCache()
	cache.getErr = errors.New("connection refused")
	uc := reports.NewDashboardUseCase(store.Reports(), cache, time.Minute, nil).WithClock(func() time.Time { return now })

	stats, err := uc.Stats(context.Background())
	require.NoError(t, err)
	assert.False(t, stats.Cached)
	assert.True(t, stats.SalesToday.Equal(d("100")))
}

func TestDashboardStats_VentaInvalidaElCache(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seed(t, store)
	cache := newMapCache()
	dash := reports.NewDashboardUseCase(store.Reports(), cache, time.Minute, nil)
	coord := inventory.NewCoordinator(store, dash, nil)

	_, err := dash.Stats(ctx)
	require.NoError(t, err)
	require.Contains(t, cache.data, reports.DashboardStatsKey)

	_, err = coord.CreateSale(ctx, inventory.SaleInput{
		PaymentType: entity.PaymentCash,
		Lines:       []inventory.SaleLineInput{{ProductID: "p1", Quantity: d("1")}},
	})
	require.NoError(t, err)
	assert.NotContains(t, cache.data, reports.DashboardStatsKey)
}

type fakeExporter struct{ got *dto.StockReportDTO }

func (f *fakeExporter) ExportStock(_ context.Context, r *dto.StockReportDTO, _ time.Time) ([]byte, error) {
	f.got = r
	return []byte("xlsx"), nil
}

func TestStockReport_AgrupaPorCategoria(t *testing.T) {
	store := memory.New()
	seed(t, store)
	exp := &fakeExporter{}
	uc := reports.NewStockReportUseCase(store.Reports(), exp)

	r, err := uc.Report(context.Background())
	require.NoError(t, err)
	require.Len(t, r.Categories, 3)
	assert.Equal(t, "Sin categoría", r.Categories[0].Category)
	assert.Equal(t, "Acessórios", r.Categories[1].Category)
	assert.Equal(t, "Rações", r.Categories[2].Category)
	assert.Equal(t, 3, r.TotalItems)
	assert.Equal(t, 2, r.LowCount)
	assert.True(t, r.Categories[2].TotalValue.Equal(d("500")))
	assert.True(t, r.Categories[1].Items[0].StockValue.Equal(d("12.5")))
	assert.True(t, r.TotalValue.Equal(d("512.5")))

	out, err := uc.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), out)
	require.NotNil(t, exp.got)
	assert.Equal(t, 3, exp.got.TotalItems)

	_, err = reports.NewStockReportUseCase(store.Reports(), nil).Export(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

type fakeReceipt struct{ data reports.ReceiptData }

func (f *fakeReceipt) GenerateReceipt(_ context.Context, data reports.ReceiptData) ([]byte, error) {
	f.data = data
	return []byte("%PDF"), nil
}

func TestReceipt_ResuelveNombres(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seed(t, store)
	coord := inventory.NewCoordinator(store, nil, nil)
	sale, err := coord.CreateSale(ctx, inventory.SaleInput{
		CustomerID:  "c1",
		PaymentType: entity.PaymentCard,
		Lines:       []inventory.SaleLineInput{{ProductID: "p1", Quantity: d("2")}},
	})
	require.NoError(t, err)

	gen := &fakeReceipt{}
	uc := reports.NewReceiptUseCase(store.Repositories(), gen, "Pet Shop Amigo")
	pdf, name, err := uc.Receipt(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), pdf)
	assert.Equal(t, "venta-000001.pdf", name)
	assert.Equal(t, "Ana", gen.data.CustomerName)
	require.Len(t, gen.data.Lines, 1)
	assert.Equal(t, "Ração A", gen.data.Lines[0].ProductName)
	assert.True(t, gen.data.Lines[0].Subtotal.Equal(d("160")))

	_, _, err = uc.Receipt(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnalytics_VentasPorPeriodoYVendedor(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seed(t, store)
	require.NoError(t, store.Users().Create(ctx, &entity.User{ID: "u1", Name: "Bruna", Email: "bruna@petshop.test", Role: entity.RoleOperator}))
	require.NoError(t, store.Repositories().Sales.Create(ctx, &entity.Sale{
		ID: "s5", Number: "000005", Status: entity.SaleStatusCompleted, CreatedBy: "u1",
		GrossTotal: d("210"), Discount: d("10"), NetTotal: d("200"), SoldAt: now.Add(-3 * time.Hour),
		Lines: []entity.SaleLine{
			{ProductID: "p1", Quantity: d("2"), Subtotal: d("160")},
			{ProductID: "p2", Quantity: d("3"), Subtotal: d("50")},
		},
	}))
	uc := reports.NewAnalyticsUseCase(store.Reports(), nil).WithClock(func() time.Time { return now })

	from := now.AddDate(0, 0, -10)
	r, err := uc.Sales(ctx, repository.ReportPeriod{From: &from})
	require.NoError(t, err)
	assert.Equal(t, 3, r.Count, "la cancelada y la del mes anterior quedan fuera")
	assert.True(t, r.NetTotal.Equal(d("360")))
	assert.True(t, r.Discount.Equal(d("10")))
	assert.True(t, r.AverageTicket.Equal(d("120")))
	assert.Equal(t, from.Format(dto.DateLayout), r.From)
	require.Len(t, r.BySeller, 2)
	assert.Equal(t, "Bruna", r.BySeller[0].Name)
	assert.True(t, r.BySeller[0].Amount.Equal(d("200")))
	require.Len(t, r.TopProducts, 2)
	assert.Equal(t, "Coleira", r.TopProducts[0].ProductName)
	assert.True(t, r.TopProducts[0].Quantity.Equal(d("3")))

	all, err := uc.Sales(ctx, repository.ReportPeriod{})
	require.NoError(t, err)
	assert.Equal(t, 4, all.Count)
	assert.True(t, all.NetTotal.Equal(d("430")))
}

func TestAnalytics_ComprasYProveedores(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seed(t, store)
	repos := store.Repositories()
	require.NoError(t, repos.Suppliers.Create(ctx, &entity.Supplier{ID: "f1", Name: "Distribuidora Pet", Active: true}))
	require.NoError(t, repos.Suppliers.Create(ctx, &entity.Supplier{ID: "f2", Name: "Sem compras", Active: true}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p5", Name: "Petisco", CategoryID: "cat-r", SupplierID: "f1", Active: true}))
	for _, p := range []*entity.Purchase{
		{ID: "c1", Number: 1, SupplierID: "f1", Status: entity.PurchaseStatusConfirmed, Total: d("500"), PurchasedAt: now.AddDate(0, -2, 0),
			Lines: []entity.PurchaseLine{{ProductID: "p1", Quantity: d("10"), Subtotal: d("500")}}},
		{ID: "c2", Number: 2, SupplierID: "f1", Status: entity.PurchaseStatusConfirmed, Total: d("100"), PurchasedAt: now.AddDate(-2, 0, 0),
			Lines: []entity.PurchaseLine{{ProductID: "p2", Quantity: d("8"), Subtotal: d("100")}}},
		{ID: "c3", Number: 3, SupplierID: "f2", Status: entity.PurchaseStatusPending, Total: d("999"), PurchasedAt: now},
	} {
		require.NoError(t, repos.Purchases.Create(ctx, p))
	}
	uc := reports.NewAnalyticsUseCase(store.Reports(), nil).WithClock(func() time.Time { return now })

	r, err := uc.Purchases(ctx, repository.ReportPeriod{})
	require.NoError(t, err)
	assert.Equal(t, 2, r.Count)
	assert.True(t, r.Total.Equal(d("600")))
	assert.True(t, r.Average.Equal(d("300")))
	require.Len(t, r.BySupplier, 1)
	assert.Equal(t, "Distribuidora Pet", r.BySupplier[0].Name)
	assert.Equal(t, 2, r.BySupplier[0].Count)
	require.Len(t, r.ByMonth, 1, "la compra de hace dos años queda fuera de la serie")
	assert.Equal(t, "2026-05", r.ByMonth[0].Month)
	require.Len(t, r.TopProducts, 2)
	assert.Equal(t, "Ração A", r.TopProducts[0].ProductName)

	s, err := uc.Suppliers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Active)
	assert.Equal(t, 1, s.WithProducts)
	require.Len(t, s.TopSuppliers, 1)
	assert.True(t, s.TopSuppliers[0].Amount.Equal(d("600")))
	require.Len(t, s.ByCategory, 1)
	assert.Equal(t, "Rações", s.ByCategory[0].Category)

	c, err := uc.Customers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Active)
	assert.Equal(t, 1, c.WithDebt)
	assert.True(t, c.TotalDebt.Equal(d("40")))
	assert.Empty(t, c.TopBuyers, "las ventas sembradas no tienen cliente")
}

type fixedBalance struct{ snap *entity.BalanceSnapshot }

func (f fixedBalance) Balance(context.Context, string) (*entity.BalanceSnapshot, error) {
	return f.snap, nil
}

func TestAnalytics_FinanzasPorCategoriaYPeriodo(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repos := store.Repositories()
	require.NoError(t, repos.Categories.Create(ctx, &entity.Category{ID: "ci", UserID: "u1", Name: "Serviços", Kind: entity.CategoryIncome, Active: true}))
	require.NoError(t, repos.Categories.Create(ctx, &entity.Category{ID: "ce", UserID: "u1", Name: "Aluguel", Kind: entity.CategoryExpense, Active: true}))
	day := func(y int, m time.Month, dd int) time.Time { return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC) }
	for _, tr := range []*entity.Transaction{
		{ID: "t1", UserID: "u1", CategoryID: "ci", Kind: entity.TransactionIncome, Amount: d("300"), OccurredOn: day(2026, 7, 2)},
		{ID: "t2", UserID: "u1", CategoryID: "ce", Kind: entity.TransactionExpense, Amount: d("80"), OccurredOn: day(2026, 7, 10)},
		{ID: "t3", UserID: "u1", CategoryID: "ce", Kind: entity.TransactionExpense, Amount: d("50"), OccurredOn: day(2026, 3, 10)},
		{ID: "t4", UserID: "u2", Kind: entity.TransactionIncome, Amount: d("999"), OccurredOn: day(2026, 7, 1)},
	} {
		require.NoError(t, repos.Transactions.Create(ctx, tr))
	}
	snap := &entity.BalanceSnapshot{UserID: "u1", Balance: d("170")}
	uc := reports.NewAnalyticsUseCase(store.Reports(), fixedBalance{snap}).WithClock(func() time.Time { return now })

	month, err := uc.FinanceSummary(ctx, "u1", "")
	require.NoError(t, err)
	assert.Equal(t, reports.PeriodMonth, month.Period)
	assert.Equal(t, "2026-06-15", month.From)
	assert.True(t, month.TotalIncome.Equal(d("300")))
	assert.True(t, month.TotalExpense.Equal(d("80")))
	assert.True(t, month.Balance.Equal(d("220")))

	year, err := uc.FinanceSummary(ctx, "u1", reports.PeriodYear)
	require.NoError(t, err)
	assert.Equal(t, 2, year.ExpenseCount)
	assert.True(t, year.Balance.Equal(d("170")))

	_, err = uc.FinanceSummary(ctx, "u1", "week")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	panel, err := uc.FinanceDashboard(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, panel.Balance.Balance.Equal(d("170")))
	require.Len(t, panel.ByCategory, 2)
	assert.Equal(t, "Aluguel", panel.ByCategory[0].CategoryName)
	assert.Equal(t, "Serviços", panel.ByCategory[1].CategoryName)
	require.Len(t, panel.Evolution, 2)
	assert.Equal(t, "2026-03", panel.Evolution[0].Month)
	assert.True(t, panel.Evolution[0].Balance.Equal(d("-50")))
	assert.True(t, panel.Evolution[1].Balance.Equal(d("220")))

	_, err = reports.NewAnalyticsUseCase(store.Reports(), nil).FinanceDashboard(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
