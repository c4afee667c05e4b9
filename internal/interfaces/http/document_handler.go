package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/petshop-api/internal/application/dto"
	"github.com/jhoicas/petshop-api/internal/application/inventory"
	"github.com/jhoicas/petshop-api/internal/application/reports"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
)

// PurchaseHandler maneja compras a proveedores (protegido).
type PurchaseHandler struct {
	coord   *inventory.Coordinator
	queries *inventory.Queries
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(coord *inventory.Coordinator, queries *inventory.Queries) *PurchaseHandler {
	return &PurchaseHandler{coord: coord, queries: queries}
}

// Create godoc
// @Summary      Registrar compra pendiente
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "supplier_id, lines"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := checkIDs("supplier_id", in.SupplierID); err != nil {
		return respondError(c, err)
	}
	lines := make([]inventory.PurchaseLineInput, 0, len(in.Lines))
	for i, l := range in.Lines {
		if err := checkID(fmt.Sprintf("lines[%d].product_id", i), l.ProductID); err != nil {
			return respondError(c, err)
		}
		lines = append(lines, inventory.PurchaseLineInput{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}
	p, err := h.coord.CreatePurchase(c.UserContext(), inventory.PurchaseInput{
		SupplierID:    in.SupplierID,
		InvoiceNumber: in.InvoiceNumber,
		PurchasedAt:   in.PurchasedAt,
		Notes:         in.Notes,
		UserID:        GetUserID(c),
		Lines:         lines,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewPurchaseResponse(p))
}

// List lista compras filtradas por proveedor, estado y rango de fechas.
// GET /api/purchases
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := queryIDs(c, "supplier_id"); err != nil {
		return respondError(c, err)
	}
	limit, offset := page(c)
	out, err := h.queries.ListPurchases(c.UserContext(), repository.PurchaseFilter{
		SupplierID: c.Query("supplier_id"),
		Status:     c.Query("status"),
		From:       from,
		To:         to,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID devuelve la compra con sus líneas.
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.queries.GetPurchase(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Confirmar compra (suma stock y fija el costo)
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/confirm [post]
func (h *PurchaseHandler) Confirm(c *fiber.Ctx) error {
	p, err := h.coord.ConfirmPurchase(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewPurchaseResponse(p))
}

// Cancel cancela una compra pendiente. El cuerpo es opcional.
// POST /api/purchases/:id/cancel
func (h *PurchaseHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	p, err := h.coord.CancelPurchase(c.UserContext(), c.Params("id"), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewPurchaseResponse(p))
}

// SaleHandler maneja ventas de mostrador (protegido).
type SaleHandler struct {
	coord   *inventory.Coordinator
	queries *inventory.Queries
	receipt *reports.ReceiptUseCase
}

// NewSaleHandler construye el handler. receipt puede ser nil si no hay generador de PDF.
func NewSaleHandler(coord *inventory.Coordinator, queries *inventory.Queries, receipt *reports.ReceiptUseCase) *SaleHandler {
	return &SaleHandler{coord: coord, queries: queries, receipt: receipt}
}

// Create godoc
// @Summary      Registrar venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "payment_type, customer_id, discount, lines"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK | CREDIT_LIMIT"
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := checkID("customer_id", in.CustomerID); err != nil {
		return respondError(c, err)
	}
	lines := make([]inventory.SaleLineInput, 0, len(in.Lines))
	for i, l := range in.Lines {
		if err := checkID(fmt.Sprintf("lines[%d].product_id", i), l.ProductID); err != nil {
			return respondError(c, err)
		}
		lines = append(lines, inventory.SaleLineInput{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}
	s, err := h.coord.CreateSale(c.UserContext(), inventory.SaleInput{
		CustomerID:  in.CustomerID,
		PaymentType: in.PaymentType,
		Discount:    in.Discount,
		Notes:       in.Notes,
		UserID:      GetUserID(c),
		Lines:       lines,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSaleResponse(s))
}

// List lista ventas filtradas por cliente, estado, forma de pago y fechas.
// GET /api/sales
func (h *SaleHandler) List(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := queryIDs(c, "customer_id"); err != nil {
		return respondError(c, err)
	}
	limit, offset := page(c)
	out, err := h.queries.ListSales(c.UserContext(), repository.SaleFilter{
		CustomerID:  c.Query("customer_id"),
		Status:      c.Query("status"),
		PaymentType: c.Query("payment_type"),
		From:        from,
		To:          to,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID devuelve la venta con sus líneas.
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.queries.GetSale(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar venta (devuelve stock y descuenta deuda a plazo)
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true   "ID de la venta"
// @Param        body  body  dto.CancelRequest  false  "reason"
// @Success      200   {object}  dto.SaleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "ALREADY_CANCELLED"
// @Router       /api/sales/{id}/cancel [post]
func (h *SaleHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	s, err := h.coord.CancelSale(c.UserContext(), c.Params("id"), in.Reason, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewSaleResponse(s))
}

// Receipt descarga el comprobante PDF de la venta.
// GET /api/sales/:id/receipt
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	if h.receipt == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_IMPLEMENTED", Message: "comprobantes no configurados"})
	}
	pdf, name, err := h.receipt.Receipt(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, name))
	return c.Send(pdf)
}
