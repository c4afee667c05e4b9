package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/petshop-api/internal/domain/entity"
)

// TransactionRequest body para crear o actualizar una transacción. Date en formato YYYY-MM-DD.
type TransactionRequest struct {
	Kind          string          `json:"type"`
	CategoryID    string          `json:"category_id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"`
	PaymentMethod string          `json:"payment_method"`
	Tags          []string        `json:"tags"`
	Notes         string          `json:"notes"`
}

// TransactionResponse salida de una transacción.
type TransactionResponse struct {
	ID            string          `json:"id"`
	CategoryID    string          `json:"category_id,omitempty"`
	Kind          string          `json:"type"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Tags          []string        `json:"tags"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransactionListResponse lista paginada de transacciones.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// TransactionMutationResponse transacción escrita y saldo recalculado.
type TransactionMutationResponse struct {
	Transaction *TransactionResponse `json:"transaction,omitempty"`
	Balance     BalanceResponse      `json:"balance"`
}

// BalanceResponse snapshot de saldo.
type BalanceResponse struct {
	Balance      decimal.Decimal `json:"balance"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	MonthIncome  decimal.Decimal `json:"month_income"`
	MonthExpense decimal.Decimal `json:"month_expense"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// DateLayout formato de fecha de las transacciones.
const DateLayout = "2006-01-02"

// NewTransactionResponse mapea la entidad a la respuesta.
func NewTransactionResponse(t *entity.Transaction) *TransactionResponse {
	if t == nil {
		return nil
	}
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return &TransactionResponse{
		ID:            t.ID,
		CategoryID:    t.CategoryID,
		Kind:          t.Kind,
		Description:   t.Description,
		Amount:        t.Amount,
		Date:          t.OccurredOn.Format(DateLayout),
		PaymentMethod: t.PaymentMethod,
		Tags:          tags,
		Notes:         t.Notes,
		CreatedAt:     t.CreatedAt,
	}
}

// NewBalanceResponse mapea el snapshot a la respuesta.
func NewBalanceResponse(s *entity.BalanceSnapshot) BalanceResponse {
	if s == nil {
		return BalanceResponse{}
	}
	return BalanceResponse{
		Balance:      s.Balance,
		TotalIncome:  s.TotalIncome,
		TotalExpense: s.TotalExpense,
		MonthIncome:  s.MonthIncome,
		MonthExpense: s.MonthExpense,
		UpdatedAt:    s.UpdatedAt,
	}
}
