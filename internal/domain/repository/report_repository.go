package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardCounters contadores del panel principal.
type DashboardCounters struct {
	SalesToday        decimal.Decimal
	SalesTodayCount   int
	SalesMonth        decimal.Decimal
	SalesMonthCount   int
	ProductsInStock   int
	ActiveCustomers   int
	LowStockProducts  int
	OutstandingCredit decimal.Decimal // suma de deudas de clientes
}

// StockReportRow una fila del inventario valorizado.
type StockReportRow struct {
	ProductID    string
	ProductName  string
	Barcode      string
	CategoryName string
	UnitMeasure  string
	Stock        decimal.Decimal
	MinStock     decimal.Decimal
	PurchaseCost decimal.Decimal
	SalePrice    decimal.Decimal
}

// ReportPeriod rango opcional de fechas; nil en un extremo lo deja abierto.
type ReportPeriod struct {
	From *time.Time
	To   *time.Time
}

// Contains indica si t cae dentro del rango.
func (p ReportPeriod) Contains(t time.Time) bool {
	if p.From != nil && t.Before(*p.From) {
		return false
	}
	if p.To != nil && t.After(*p.To) {
		return false
	}
	return true
}

// SellerSales ventas agrupadas por el usuario que las registró.
type SellerSales struct {
	UserID   string
	UserName string
	Count    int
	Net      decimal.Decimal
}

// ProductVolume cantidad y monto movidos de un producto.
type ProductVolume struct {
	ProductID   string
	ProductName string
	UnitMeasure string
	Quantity    decimal.Decimal
	Amount      decimal.Decimal
}

// PartyAmount cliente o proveedor con su cantidad de documentos y monto.
type PartyAmount struct {
	ID     string
	Name   string
	Count  int
	Amount decimal.Decimal
}

// MonthAmount total de un mes con formato YYYY-MM.
type MonthAmount struct {
	Month  string
	Count  int
	Amount decimal.Decimal
}

// SalesReport ventas COMPLETED de un período.
type SalesReport struct {
	Count       int
	Gross       decimal.Decimal
	Discount    decimal.Decimal
	Net         decimal.Decimal
	BySeller    []SellerSales   // por neto descendente
	TopProducts []ProductVolume // por cantidad descendente
}

// PurchasesReport compras CONFIRMED de un período.
type PurchasesReport struct {
	Count       int
	Total       decimal.Decimal
	BySupplier  []PartyAmount   // por monto descendente
	TopProducts []ProductVolume // por cantidad descendente
	ByMonth     []MonthAmount   // desde el inicio de la serie, ascendente
}

// CustomersReport cartera de clientes.
type CustomersReport struct {
	Active    int
	WithDebt  int
	TotalDebt decimal.Decimal
	TopBuyers []PartyAmount // por monto comprado (ventas COMPLETED)
}

// CategorySuppliers cantidad de proveedores distintos con productos en una categoría.
type CategorySuppliers struct {
	CategoryName string
	Suppliers    int
}

// SuppliersReport cartera de proveedores.
type SuppliersReport struct {
	Active       int
	WithProducts int
	TopSuppliers []PartyAmount // por monto de compras CONFIRMED
	ByCategory   []CategorySuppliers
}

// CategoryFlow ingresos o gastos de una categoría financiera.
type CategoryFlow struct {
	CategoryID   string
	CategoryName string
	Kind         string
	Count        int
	Amount       decimal.Decimal
}

// MonthFlow ingresos y gastos de un mes con formato YYYY-MM.
type MonthFlow struct {
	Month   string
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// ReportRepository consultas de solo lectura para reportes.
type ReportRepository interface {
	// DashboardCounters suma ventas COMPLETED desde dayStart y desde monthStart.
	DashboardCounters(ctx context.Context, dayStart, monthStart time.Time) (*DashboardCounters, error)
	// StockInventory devuelve los productos activos ordenados por categoría y nombre.
	StockInventory(ctx context.Context) ([]StockReportRow, error)
	// Sales agrega las ventas COMPLETED del período; top limita el ranking de productos.
	Sales(ctx context.Context, p ReportPeriod, top int) (*SalesReport, error)
	// Purchases agrega las compras CONFIRMED del período. La serie mensual arranca en since.
	Purchases(ctx context.Context, p ReportPeriod, top int, since time.Time) (*PurchasesReport, error)
	Customers(ctx context.Context, top int) (*CustomersReport, error)
	Suppliers(ctx context.Context, top int) (*SuppliersReport, error)
	// FinanceByCategory agrupa las transacciones del usuario por categoría y tipo.
	FinanceByCategory(ctx context.Context, userID string, p ReportPeriod) ([]CategoryFlow, error)
	// FinanceByMonth serie mensual de ingresos y gastos del usuario desde since.
	FinanceByMonth(ctx context.Context, userID string, since time.Time) ([]MonthFlow, error)
}
