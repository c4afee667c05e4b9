package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/petshop-api/internal/application/reports"
)

// DashboardHandler maneja los indicadores del panel principal.
type DashboardHandler struct {
	uc *reports.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *reports.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats devuelve los contadores del día y del mes.
// GET /api/dashboard/stats
//
// Respuesta: DashboardStatsDTO (sales_today, sales_month, products_in_stock,
// active_customers, low_stock_products, outstanding_credit, cached).
// Se sirve desde Redis cuando está configurado; cualquier venta o ajuste invalida la entrada.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
