package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/petshop-api/internal/application/credit"
	"github.com/jhoicas/petshop-api/internal/application/dto"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
)

// CustomerHandler maneja clientes y su cuenta corriente (protegido).
type CustomerHandler struct {
	svc *credit.Service
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(svc *credit.Service) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

func customerInput(in dto.CustomerRequest) credit.CustomerInput {
	return credit.CustomerInput{
		Name:        in.Name,
		Document:    in.Document,
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
		CreditLimit: in.CreditLimit,
		Notes:       in.Notes,
	}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CustomerRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.CreateCustomer(c.UserContext(), customerInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewCustomerResponse(out))
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        search     query  string  false  "Nombre, documento o teléfono"
// @Param        with_debt  query  bool    false  "Solo clientes con deuda"
// @Success      200  {object}  dto.CustomerListResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	list, total, err := h.svc.ListCustomers(c.UserContext(), repository.CustomerFilter{
		Search:   c.Query("search"),
		Active:   boolQuery(c, "active"),
		WithDebt: c.QueryBool("with_debt"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, cu := range list {
		items = append(items, *dto.NewCustomerResponse(cu))
	}
	return c.JSON(dto.CustomerListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset, Total: total}})
}

// GetByID devuelve un cliente.
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.GetCustomer(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewCustomerResponse(out))
}

// Update reemplaza los datos del cliente. La deuda solo cambia con adjust-debt y ventas.
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.UpdateCustomer(c.UserContext(), c.Params("id"), customerInput(in), in.Active)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewCustomerResponse(out))
}

// AdjustDebt godoc
// @Summary      Sumar o restar deuda del cliente (admin)
// @Description  Una resta mayor que la deuda deja el saldo en cero; el exceso vuelve en "discarded".
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del cliente"
// @Param        body  body  dto.AdjustDebtRequest  true  "amount, operation (ADD|SUBTRACT), note"
// @Success      200   {object}  dto.DebtAdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/adjust-debt [post]
func (h *CustomerHandler) AdjustDebt(c *fiber.Ctx) error {
	var in dto.AdjustDebtRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.svc.AdjustDebt(c.UserContext(), c.Params("id"), in.Amount, in.Operation, in.Note)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.DebtAdjustmentResponse{
		CustomerID: res.CustomerID,
		Operation:  res.Operation,
		Amount:     res.Amount,
		Previous:   res.Previous,
		Current:    res.Current,
		Discarded:  res.Discarded,
		Note:       res.Note,
	})
}

// Statement estado de cuenta: últimas ventas completadas y crédito disponible.
// GET /api/customers/:id/statement
func (h *CustomerHandler) Statement(c *fiber.Ctx) error {
	st, err := h.svc.CustomerStatement(c.UserContext(), c.Params("id"), c.QueryInt("limit", 20))
	if err != nil {
		return respondError(c, err)
	}
	sales := make([]dto.SaleResponse, 0, len(st.Sales))
	for _, s := range st.Sales {
		sales = append(sales, *dto.NewSaleResponse(s))
	}
	return c.JSON(dto.CustomerStatementResponse{
		Customer:        *dto.NewCustomerResponse(st.Customer),
		Sales:           sales,
		SalesCount:      st.SalesCount,
		TotalPurchased:  st.TotalPurchased,
		CreditPurchased: st.CreditPurchased,
		AvailableCredit: st.AvailableCredit,
	})
}
