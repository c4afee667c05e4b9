package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/petshop-api/internal/application/catalog"
	"github.com/jhoicas/petshop-api/internal/application/dto"
	"github.com/jhoicas/petshop-api/internal/application/inventory"
	"github.com/jhoicas/petshop-api/internal/application/reports"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InventoryHandler maneja el libro de movimientos y el reporte de inventario (protegido).
type InventoryHandler struct {
	coord    *inventory.Coordinator
	products *catalog.ProductUseCase
	stock    *reports.StockReportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(coord *inventory.Coordinator, products *catalog.ProductUseCase, stock *reports.StockReportUseCase) *InventoryHandler {
	return &InventoryHandler{coord: coord, products: products, stock: stock}
}

// RegisterMovement godoc
// @Summary      Registrar entrada o salida manual de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, direction (ENTRY|EXIT), quantity, note"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := checkID("product_id", in.ProductID); err != nil {
		return respondError(c, err)
	}
	m, err := h.coord.RecordMovement(c.UserContext(), inventory.MovementInput{
		ProductID: in.ProductID,
		Direction: in.Direction,
		Quantity:  in.Quantity,
		Note:      in.Note,
		UserID:    GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMovementResponse(m))
}

// ListMovements godoc
// @Summary      Listar movimientos de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Producto"
// @Param        direction   query  string  false  "ENTRY | EXIT"
// @Param        reason      query  string  false  "PURCHASE | SALE | RETURN | INITIAL_STOCK | MANUAL_ADJUSTMENT"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/stock/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := queryIDs(c, "product_id"); err != nil {
		return respondError(c, err)
	}
	limit, offset := page(c)
	out, err := h.products.Movements(c.UserContext(), repository.MovementFilter{
		ProductID: c.Query("product_id"),
		Direction: c.Query("direction"),
		Reason:    c.Query("reason"),
		From:      from,
		To:        to,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetMovement devuelve un movimiento por ID.
// GET /api/stock/movements/:id
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	out, err := h.products.Movement(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Inventory godoc
// @Summary      Inventario valorizado agrupado por categoría
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockReportDTO
// @Router       /api/stock/inventory [get]
func (h *InventoryHandler) Inventory(c *fiber.Ctx) error {
	out, err := h.stock.Report(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// InventoryXLSX descarga el inventario como planilla.
// GET /api/stock/inventory.xlsx
func (h *InventoryHandler) InventoryXLSX(c *fiber.Ctx) error {
	data, err := h.stock.Export(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="inventario-%s.xlsx"`, time.Now().Format("20060102")))
	return c.Send(data)
}
