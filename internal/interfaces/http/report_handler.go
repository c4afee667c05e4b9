package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/petshop-api/internal/application/reports"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
)

// ReportHandler reportes agregados de ventas, compras, cartera y finanzas.
type ReportHandler struct {
	uc *reports.AnalyticsUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.AnalyticsUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Sales godoc
// @Summary      Reporte de ventas del período
// @Description  Totales, ticket promedio, ventas por vendedor y los 10 productos más vendidos.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200   {object}  dto.SalesReportDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales/report [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Sales(c.UserContext(), repository.ReportPeriod{From: from, To: to})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Purchases godoc
// @Summary      Reporte de compras confirmadas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200   {object}  dto.PurchasesReportDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/purchases/report [get]
func (h *ReportHandler) Purchases(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Purchases(c.UserContext(), repository.ReportPeriod{From: from, To: to})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Customers GET /api/customers/report
func (h *ReportHandler) Customers(c *fiber.Ctx) error {
	out, err := h.uc.Customers(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Suppliers GET /api/suppliers/report
func (h *ReportHandler) Suppliers(c *fiber.Ctx) error {
	out, err := h.uc.Suppliers(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// FinanceDashboard saldo, categorías del mes y evolución de 6 meses del usuario autenticado.
// GET /api/finance/dashboard
func (h *ReportHandler) FinanceDashboard(c *fiber.Ctx) error {
	out, err := h.uc.FinanceDashboard(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// FinanceSummary godoc
// @Summary      Resumen de ingresos y gastos
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "month | quarter | year"
// @Success      200     {object}  dto.FinanceSummaryDTO
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/finance/summary [get]
func (h *ReportHandler) FinanceSummary(c *fiber.Ctx) error {
	out, err := h.uc.FinanceSummary(c.UserContext(), GetUserID(c), c.Query("period"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
