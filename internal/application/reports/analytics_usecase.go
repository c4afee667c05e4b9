package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/petshop-api/internal/application/dto"
	"github.com/jhoicas/petshop-api/internal/domain"
	"github.com/jhoicas/petshop-api/internal/domain/entity"
	domainfin "github.com/jhoicas/petshop-api/internal/domain/finance"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
)

const (
	rankingSize     = 10
	purchaseMonths  = 12
	evolutionMonths = 6
)

// Períodos del resumen financiero.
const (
	PeriodMonth   = "month"
	PeriodQuarter = "quarter"
	PeriodYear    = "year"
)

// BalanceReader devuelve el snapshot de saldo del usuario.
type BalanceReader interface {
	Balance(ctx context.Context, userID string) (*entity.BalanceSnapshot, error)
}

// AnalyticsUseCase reportes agregados de ventas, compras, clientes, proveedores y finanzas.
type AnalyticsUseCase struct {
	reports  repository.ReportRepository
	balances BalanceReader
	now      func() time.Time
}

// NewAnalyticsUseCase construye el caso de uso. balances puede ser nil si no se expone el panel financiero.
func NewAnalyticsUseCase(reports repository.ReportRepository, balances BalanceReader) *AnalyticsUseCase {
	return &AnalyticsUseCase{reports: reports, balances: balances, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *AnalyticsUseCase) WithClock(now func() time.Time) *AnalyticsUseCase {
	uc.now = now
	return uc
}

// Sales totales del período con ticket promedio, ventas por vendedor y los 10 productos más vendidos.
func (uc *AnalyticsUseCase) Sales(ctx context.Context, p repository.ReportPeriod) (*dto.SalesReportDTO, error) {
	r, err := uc.reports.Sales(ctx, p, rankingSize)
	if err != nil {
		return nil, err
	}
	out := &dto.SalesReportDTO{
		Count:         r.Count,
		GrossTotal:    r.Gross,
		Discount:      r.Discount,
		NetTotal:      r.Net,
		AverageTicket: average(r.Net, r.Count),
		BySeller:      make([]dto.ReportPartyDTO, 0, len(r.BySeller)),
		TopProducts:   productsDTO(r.TopProducts),
	}
	out.From, out.To = periodDates(p)
	for _, s := range r.BySeller {
		out.BySeller = append(out.BySeller, dto.ReportPartyDTO{ID: s.UserID, Name: s.UserName, Count: s.Count, Amount: s.Net})
	}
	return out, nil
}

// Purchases compras confirmadas del período y la serie de los últimos 12 meses.
func (uc *AnalyticsUseCase) Purchases(ctx context.Context, p repository.ReportPeriod) (*dto.PurchasesReportDTO, error) {
	since := domainfin.MonthStart(uc.now()).AddDate(0, -(purchaseMonths - 1), 0)
	r, err := uc.reports.Purchases(ctx, p, rankingSize, since)
	if err != nil {
		return nil, err
	}
	out := &dto.PurchasesReportDTO{
		Count:       r.Count,
		Total:       r.Total,
		Average:     average(r.Total, r.Count),
		BySupplier:  partiesDTO(r.BySupplier),
		TopProducts: productsDTO(r.TopProducts),
		ByMonth:     make([]dto.ReportMonthDTO, 0, len(r.ByMonth)),
	}
	out.From, out.To = periodDates(p)
	for _, m := range r.ByMonth {
		out.ByMonth = append(out.ByMonth, dto.ReportMonthDTO{Month: m.Month, Count: m.Count, Amount: m.Amount})
	}
	return out, nil
}

// Customers clientes activos, deuda total de la cartera y los 10 que más compraron.
func (uc *AnalyticsUseCase) Customers(ctx context.Context) (*dto.CustomersReportDTO, error) {
	r, err := uc.reports.Customers(ctx, rankingSize)
	if err != nil {
		return nil, err
	}
	return &dto.CustomersReportDTO{
		Active:    r.Active,
		WithDebt:  r.WithDebt,
		TotalDebt: r.TotalDebt,
		TopBuyers: partiesDTO(r.TopBuyers),
	}, nil
}

// Suppliers proveedores activos, cobertura por categoría y los 10 con más compras confirmadas.
func (uc *AnalyticsUseCase) Suppliers(ctx context.Context) (*dto.SuppliersReportDTO, error) {
	r, err := uc.reports.Suppliers(ctx, rankingSize)
	if err != nil {
		return nil, err
	}
	out := &dto.SuppliersReportDTO{
		Active:       r.Active,
		WithProducts: r.WithProducts,
		TopSuppliers: partiesDTO(r.TopSuppliers),
		ByCategory:   make([]dto.CategorySuppliersDTO, 0, len(r.ByCategory)),
	}
	for _, c := range r.ByCategory {
		name := c.CategoryName
		if name == "" {
			name = uncategorized
		}
		out.ByCategory = append(out.ByCategory, dto.CategorySuppliersDTO{Category: name, Suppliers: c.Suppliers})
	}
	return out, nil
}

// FinanceDashboard saldo del usuario, totales por categoría del mes y evolución de 6 meses.
func (uc *AnalyticsUseCase) FinanceDashboard(ctx context.Context, userID string) (*dto.FinanceDashboardDTO, error) {
	if uc.balances == nil {
		return nil, domain.InvalidState("panel financiero no configurado")
	}
	snap, err := uc.balances.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	monthStart := domainfin.MonthStart(uc.now())
	flows, err := uc.reports.FinanceByCategory(ctx, userID, repository.ReportPeriod{From: &monthStart})
	if err != nil {
		return nil, err
	}
	months, err := uc.reports.FinanceByMonth(ctx, userID, monthStart.AddDate(0, -(evolutionMonths-1), 0))
	if err != nil {
		return nil, err
	}
	out := &dto.FinanceDashboardDTO{
		Balance:    dto.NewBalanceResponse(snap),
		ByCategory: make([]dto.CategoryFlowDTO, 0, len(flows)),
		Evolution:  make([]dto.MonthFlowDTO, 0, len(months)),
	}
	for _, f := range flows {
		name := f.CategoryName
		if name == "" {
			name = uncategorized
		}
		out.ByCategory = append(out.ByCategory, dto.CategoryFlowDTO{
			CategoryID: f.CategoryID, CategoryName: name, Type: f.Kind, Count: f.Count, Amount: f.Amount,
		})
	}
	for _, m := range months {
		out.Evolution = append(out.Evolution, dto.MonthFlowDTO{
			Month: m.Month, Income: m.Income, Expense: m.Expense, Balance: m.Income.Sub(m.Expense),
		})
	}
	return out, nil
}

// FinanceSummary ingresos y gastos desde el inicio del período (hoy menos 1, 3 o 12 meses).
func (uc *AnalyticsUseCase) FinanceSummary(ctx context.Context, userID, period string) (*dto.FinanceSummaryDTO, error) {
	now := uc.now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case "", PeriodMonth:
		period = PeriodMonth
		from = from.AddDate(0, -1, 0)
	case PeriodQuarter:
		from = from.AddDate(0, -3, 0)
	case PeriodYear:
		from = from.AddDate(-1, 0, 0)
	default:
		return nil, domain.Invalid("period", "valores: month, quarter, year")
	}
	flows, err := uc.reports.FinanceByCategory(ctx, userID, repository.ReportPeriod{From: &from})
	if err != nil {
		return nil, err
	}
	out := &dto.FinanceSummaryDTO{
		Period:       period,
		From:         from.Format(dto.DateLayout),
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, f := range flows {
		if f.Kind == entity.TransactionIncome {
			out.TotalIncome = out.TotalIncome.Add(f.Amount)
			out.IncomeCount += f.Count
		} else {
			out.TotalExpense = out.TotalExpense.Add(f.Amount)
			out.ExpenseCount += f.Count
		}
	}
	out.Balance = out.TotalIncome.Sub(out.TotalExpense)
	return out, nil
}

func average(total decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count))).Round(2)
}

func periodDates(p repository.ReportPeriod) (from, to string) {
	if p.From != nil {
		from = p.From.Format(dto.DateLayout)
	}
	if p.To != nil {
		to = p.To.Format(dto.DateLayout)
	}
	return from, to
}

func productsDTO(in []repository.ProductVolume) []dto.ReportProductDTO {
	out := make([]dto.ReportProductDTO, 0, len(in))
	for _, v := range in {
		out = append(out, dto.ReportProductDTO{
			ProductID: v.ProductID, ProductName: v.ProductName, UnitMeasure: v.UnitMeasure, Quantity: v.Quantity, Amount: v.Amount,
		})
	}
	return out
}

func partiesDTO(in []repository.PartyAmount) []dto.ReportPartyDTO {
	out := make([]dto.ReportPartyDTO, 0, len(in))
	for _, p := range in {
		out = append(out, dto.ReportPartyDTO{ID: p.ID, Name: p.Name, Count: p.Count, Amount: p.Amount})
	}
	return out
}
