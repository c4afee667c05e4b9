package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/petshop-api/internal/application/dto"
	"github.com/jhoicas/petshop-api/internal/application/finance"
	"github.com/jhoicas/petshop-api/internal/domain"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
)

// FinanceHandler ingresos, gastos y saldo del usuario autenticado.
type FinanceHandler struct {
	svc *finance.Service
}

// NewFinanceHandler construye el handler.
func NewFinanceHandler(svc *finance.Service) *FinanceHandler {
	return &FinanceHandler{svc: svc}
}

func transactionInput(in dto.TransactionRequest) (finance.TransactionInput, error) {
	out := finance.TransactionInput{
		CategoryID:    in.CategoryID,
		Kind:          in.Kind,
		Description:   in.Description,
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		Tags:          in.Tags,
		Notes:         in.Notes,
	}
	if err := checkID("category_id", in.CategoryID); err != nil {
		return out, err
	}
	if in.Date != "" {
		d, err := time.Parse(dto.DateLayout, in.Date)
		if err != nil {
			return out, domain.Invalid("date", "formato esperado YYYY-MM-DD")
		}
		out.OccurredOn = d
	}
	return out, nil
}

// CreateTransaction godoc
// @Summary      Registrar ingreso o gasto
// @Description  Responde la transacción y el saldo ya recalculado.
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransactionRequest  true  "type, description, amount, date"
// @Success      201   {object}  dto.TransactionMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *FinanceHandler) CreateTransaction(c *fiber.Ctx) error {
	var req dto.TransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	in, err := transactionInput(req)
	if err != nil {
		return respondError(c, err)
	}
	t, snap, err := h.svc.CreateTransaction(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransactionMutationResponse{
		Transaction: dto.NewTransactionResponse(t),
		Balance:     dto.NewBalanceResponse(snap),
	})
}

// ListTransactions lista las transacciones del usuario.
// GET /api/transactions?type=&category_id=&from=&to=
func (h *FinanceHandler) ListTransactions(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := queryIDs(c, "category_id"); err != nil {
		return respondError(c, err)
	}
	limit, offset := page(c)
	list, total, err := h.svc.ListTransactions(c.UserContext(), repository.TransactionFilter{
		UserID:     GetUserID(c),
		Kind:       c.Query("type"),
		CategoryID: c.Query("category_id"),
		From:       from,
		To:         to,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *dto.NewTransactionResponse(t))
	}
	return c.JSON(dto.TransactionListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset, Total: total}})
}

// GetTransaction devuelve una transacción propia.
func (h *FinanceHandler) GetTransaction(c *fiber.Ctx) error {
	t, err := h.svc.GetTransaction(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewTransactionResponse(t))
}

// UpdateTransaction reemplaza la transacción y devuelve el saldo recalculado.
func (h *FinanceHandler) UpdateTransaction(c *fiber.Ctx) error {
	var req dto.TransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	in, err := transactionInput(req)
	if err != nil {
		return respondError(c, err)
	}
	t, snap, err := h.svc.UpdateTransaction(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.TransactionMutationResponse{
		Transaction: dto.NewTransactionResponse(t),
		Balance:     dto.NewBalanceResponse(snap),
	})
}

// DeleteTransaction elimina la transacción y devuelve el saldo recalculado.
func (h *FinanceHandler) DeleteTransaction(c *fiber.Ctx) error {
	snap, err := h.svc.DeleteTransaction(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.TransactionMutationResponse{Balance: dto.NewBalanceResponse(snap)})
}

// Balance devuelve el snapshot de saldo del usuario.
// GET /api/balance
func (h *FinanceHandler) Balance(c *fiber.Ctx) error {
	snap, err := h.svc.Balance(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewBalanceResponse(snap))
}

// Recompute recalcula el saldo desde las transacciones.
// POST /api/balance/recompute
func (h *FinanceHandler) Recompute(c *fiber.Ctx) error {
	snap, err := h.svc.Recompute(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewBalanceResponse(snap))
}
