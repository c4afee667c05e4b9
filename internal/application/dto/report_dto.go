package dto

import "github.com/shopspring/decimal"

// ReportProductDTO producto en un ranking por cantidad.
type ReportProductDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitMeasure string          `json:"unit_measure"`
	Quantity    decimal.Decimal `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

// ReportPartyDTO cliente, proveedor o vendedor en un ranking por monto.
type ReportPartyDTO struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// ReportMonthDTO total mensual (month = YYYY-MM).
type ReportMonthDTO struct {
	Month  string          `json:"month"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// SalesReportDTO respuesta de GET /api/sales/report.
type SalesReportDTO struct {
	From          string             `json:"from,omitempty"`
	To            string             `json:"to,omitempty"`
	Count         int                `json:"count"`
	GrossTotal    decimal.Decimal    `json:"gross_total"`
	Discount      decimal.Decimal    `json:"discount"`
	NetTotal      decimal.Decimal    `json:"net_total"`
	AverageTicket decimal.Decimal    `json:"average_ticket"`
	BySeller      []ReportPartyDTO   `json:"by_seller"`
	TopProducts   []ReportProductDTO `json:"top_products"`
}

// PurchasesReportDTO respuesta de GET /api/purchases/report.
type PurchasesReportDTO struct {
	From        string             `json:"from,omitempty"`
	To          string             `json:"to,omitempty"`
	Count       int                `json:"count"`
	Total       decimal.Decimal    `json:"total"`
	Average     decimal.Decimal    `json:"average"`
	BySupplier  []ReportPartyDTO   `json:"by_supplier"`
	TopProducts []ReportProductDTO `json:"top_products"`
	ByMonth     []ReportMonthDTO   `json:"by_month"` // últimos 12 meses
}

// CustomersReportDTO respuesta de GET /api/customers/report.
type CustomersReportDTO struct {
	Active    int              `json:"active"`
	WithDebt  int              `json:"with_debt"`
	TotalDebt decimal.Decimal  `json:"total_debt"`
	TopBuyers []ReportPartyDTO `json:"top_buyers"`
}

// CategorySuppliersDTO proveedores distintos con productos activos en la categoría.
type CategorySuppliersDTO struct {
	Category  string `json:"category"`
	Suppliers int    `json:"suppliers"`
}

// SuppliersReportDTO respuesta de GET /api/suppliers/report.
type SuppliersReportDTO struct {
	Active       int                    `json:"active"`
	WithProducts int                    `json:"with_products"`
	TopSuppliers []ReportPartyDTO       `json:"top_suppliers"`
	ByCategory   []CategorySuppliersDTO `json:"by_category"`
}

// CategoryFlowDTO total de una categoría financiera.
type CategoryFlowDTO struct {
	CategoryID   string          `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name"`
	Type         string          `json:"type"`
	Count        int             `json:"count"`
	Amount       decimal.Decimal `json:"amount"`
}

// MonthFlowDTO ingresos y gastos de un mes.
type MonthFlowDTO struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// FinanceDashboardDTO respuesta de GET /api/finance/dashboard.
type FinanceDashboardDTO struct {
	Balance    BalanceResponse   `json:"balance"`
	ByCategory []CategoryFlowDTO `json:"by_category"` // mes en curso
	Evolution  []MonthFlowDTO    `json:"evolution"`   // últimos 6 meses
}

// FinanceSummaryDTO respuesta de GET /api/finance/summary.
type FinanceSummaryDTO struct {
	Period       string          `json:"period"` // month | quarter | year
	From         string          `json:"from"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
	IncomeCount  int             `json:"income_count"`
	ExpenseCount int             `json:"expense_count"`
}
