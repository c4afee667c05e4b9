package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/petshop-api/internal/domain/entity"
)

// CustomerRequest entrada para crear o actualizar un cliente.
type CustomerRequest struct {
	Name        string          `json:"name"`
	Document    string          `json:"document"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	Notes       string          `json:"notes"`
	Active      *bool           `json:"active"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Document    string          `json:"document,omitempty"`
	Email       string          `json:"email,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	Address     string          `json:"address,omitempty"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	Debt        decimal.Decimal `json:"debt"`
	Active      bool            `json:"active"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// NewCustomerResponse mapea la entidad a la respuesta.
func NewCustomerResponse(c *entity.Customer) *CustomerResponse {
	if c == nil {
		return nil
	}
	return &CustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		Document:    c.Document,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		CreditLimit: c.CreditLimit,
		Debt:        c.Debt,
		Active:      c.Active,
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// AdjustDebtRequest body para POST /api/customers/:id/adjust-debt.
type AdjustDebtRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Operation string          `json:"operation"`
	Note      string          `json:"note"`
}

// DebtAdjustmentResponse resultado del ajuste de deuda.
type DebtAdjustmentResponse struct {
	CustomerID string          `json:"customer_id"`
	Operation  string          `json:"operation"`
	Amount     decimal.Decimal `json:"amount"`
	Previous   decimal.Decimal `json:"previous_debt"`
	Current    decimal.Decimal `json:"current_debt"`
	Discarded  decimal.Decimal `json:"discarded"` // exceso descartado al fijar la deuda en cero
	Note       string          `json:"note,omitempty"`
}

// CustomerStatementResponse estado de cuenta de un cliente. sales trae las últimas ventas;
// sales_count y los totales cubren toda la historia.
type CustomerStatementResponse struct {
	Customer        CustomerResponse `json:"customer"`
	Sales           []SaleResponse   `json:"sales"`
	SalesCount      int              `json:"sales_count"`
	TotalPurchased  decimal.Decimal  `json:"total_purchased"`
	CreditPurchased decimal.Decimal  `json:"credit_purchased"`
	AvailableCredit *decimal.Decimal `json:"available_credit"`
}
