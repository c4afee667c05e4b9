package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/petshop-api/internal/application/catalog"
	"github.com/jhoicas/petshop-api/internal/application/dto"
	"github.com/jhoicas/petshop-api/internal/application/inventory"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
)

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct {
	uc    *catalog.ProductUseCase
	coord *inventory.Coordinator
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.ProductUseCase, coord *inventory.Coordinator) *ProductHandler {
	return &ProductHandler{uc: uc, coord: coord}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := checkIDs("category_id", in.CategoryID, "supplier_id", in.SupplierID); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        search       query  string  false  "Nombre o código de barras"
// @Param        category_id  query  string  false  "Categoría"
// @Param        low_stock    query  bool    false  "Solo stock bajo"
// @Param        limit        query  int     false  "Límite"   default(50)
// @Param        offset       query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	if err := queryIDs(c, "category_id", "supplier_id"); err != nil {
		return respondError(c, err)
	}
	limit, offset := page(c)
	out, err := h.uc.List(c.UserContext(), repository.ProductFilter{
		Search:     c.Query("search"),
		CategoryID: c.Query("category_id"),
		SupplierID: c.Query("supplier_id"),
		Active:     boolQuery(c, "active"),
		LowStock:   c.QueryBool("low_stock"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto (stock y costo no se editan aquí)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := checkIDs("category_id", deref(in.CategoryID), "supplier_id", deref(in.SupplierID)); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un producto sin historial; con movimientos responde 409.
// DELETE /api/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Movements libro de stock del producto, del más reciente al más antiguo.
// GET /api/products/:id/movements
func (h *ProductHandler) Movements(c *fiber.Ctx) error {
	if _, err := h.uc.GetByID(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	from, to, err := dateRange(c)
	if err != nil {
		return respondError(c, err)
	}
	limit, offset := page(c)
	out, err := h.uc.Movements(c.UserContext(), repository.MovementFilter{
		ProductID: c.Params("id"),
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

// AdjustStock godoc
// @Summary      Ajustar stock a la cantidad contada (admin)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "new_quantity, reason"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/adjust-stock [post]
func (h *ProductHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.coord.AdjustStock(c.UserContext(), inventory.AdjustmentInput{
		ProductID:   c.Params("id"),
		NewQuantity: in.NewQuantity,
		Reason:      in.Reason,
		Note:        in.Note,
		UserID:      GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	out := dto.AdjustStockResponse{
		Product:  *dto.NewProductResponse(res.Product),
		Previous: res.Previous,
	}
	if res.Movement != nil {
		out.Movement = dto.NewMovementResponse(res.Movement)
	}
	return c.JSON(out)
}

// Reconcile compara el stock registrado con el libro. Con ?apply=true corrige el registro (admin).
// POST /api/products/:id/reconcile
func (h *ProductHandler) Reconcile(c *fiber.Ctx) error {
	r, err := h.coord.ReconcileStock(c.UserContext(), c.Params("id"), c.QueryBool("apply"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReconcileResponse{
		ProductID: r.ProductID,
		Register:  r.Register,
		Ledger:    r.Ledger,
		Drift:     r.Drift,
		Movements: r.Movements,
		InSync:    r.InSync(),
		Applied:   r.Applied,
	})
}
