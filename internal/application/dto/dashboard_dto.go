package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
type DashboardStatsDTO struct {
	SalesToday        decimal.Decimal `json:"sales_today"` // neto de ventas COMPLETED de hoy
	SalesTodayCount   int             `json:"sales_today_count"`
	SalesMonth        decimal.Decimal `json:"sales_month"`
	SalesMonthCount   int             `json:"sales_month_count"`
	ProductsInStock   int             `json:"products_in_stock"`
	ActiveCustomers   int             `json:"active_customers"`
	LowStockProducts  int             `json:"low_stock_products"`
	OutstandingCredit decimal.Decimal `json:"outstanding_credit"` // suma de deudas de clientes
	Cached            bool            `json:"cached"`
}

// StockReportItemDTO fila del reporte de inventario.
type StockReportItemDTO struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Barcode      string          `json:"barcode,omitempty"`
	UnitMeasure  string          `json:"unit_measure"`
	Stock        decimal.Decimal `json:"stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	PurchaseCost decimal.Decimal `json:"purchase_cost"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	StockValue   decimal.Decimal `json:"stock_value"` // costo * stock
	Status       string          `json:"status"`      // LOW | OK
}

// StockReportCategoryDTO agrupa el inventario de una categoría.
type StockReportCategoryDTO struct {
	Category   string               `json:"category"`
	Items      []StockReportItemDTO `json:"items"`
	TotalValue decimal.Decimal      `json:"total_value"`
	LowCount   int                  `json:"low_count"`
}

// StockReportDTO respuesta de GET /api/stock/inventory.
type StockReportDTO struct {
	Categories []StockReportCategoryDTO `json:"categories"`
	TotalValue decimal.Decimal          `json:"total_value"`
	TotalItems int                      `json:"total_items"`
	LowCount   int                      `json:"low_count"`
}
