// Package credit administra clientes y su saldo deudor (fiado).
package credit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/petshop-api/internal/domain"
	"github.com/jhoicas/petshop-api/internal/domain/entity"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
	"github.com/jhoicas/petshop-api/pkg/logger"
)

// Invalidator recibe aviso tras escrituras que afectan los indicadores.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// Service casos de uso de clientes y deuda.
type Service struct {
	tx          repository.TxRunner
	customers   repository.CustomerRepository
	sales       repository.SaleRepository
	invalidator Invalidator
	log         *logger.Logger
	now         func() time.Time
}

// NewService construye el servicio. customers y sales son repositorios fuera de transacción.
func NewService(tx repository.TxRunner, customers repository.CustomerRepository, sales repository.SaleRepository, invalidator Invalidator, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		tx:          tx,
		customers:   customers,
		sales:       sales,
		invalidator: invalidator,
		log:         log.Component("credit"),
		now:         time.Now,
	}
}

// DebtAdjustment resultado de AdjustDebt. Discarded es lo que se perdió al recortar en cero.
type DebtAdjustment struct {
	CustomerID string
	Operation  string
	Amount     decimal.Decimal
	Previous   decimal.Decimal
	Current    decimal.Decimal
	Discarded  decimal.Decimal
	Note       string
}

// AdjustDebt suma o resta amount a la deuda del cliente bajo bloqueo de fila.
// Una resta mayor que la deuda deja el saldo en cero.
func (s *Service) AdjustDebt(ctx context.Context, customerID string, amount decimal.Decimal, op, note string) (*DebtAdjustment, error) {
	if customerID == "" {
		return nil, domain.Invalid("customer_id", "requerido")
	}
	if !amount.IsPositive() {
		return nil, domain.Invalid("amount", "debe ser mayor que cero")
	}
	if !entity.ValidMoney(amount) {
		return nil, domain.Invalid("amount", "máximo 2 decimales")
	}
	if op != entity.DebtAdd && op != entity.DebtSubtract {
		return nil, domain.Invalid("operation", "debe ser ADD o SUBTRACT")
	}

	var res *DebtAdjustment
	err := s.tx.Run(ctx, func(r repository.Repositories) error {
		c, err := r.Customers.GetForUpdate(ctx, customerID)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, customerID)
		}
		change := c.ApplyDebt(op, amount)
		if err := r.Customers.SetDebt(ctx, c.ID, change.Current); err != nil {
			return err
		}
		res = &DebtAdjustment{
			CustomerID: c.ID,
			Operation:  op,
			Amount:     amount,
			Previous:   change.Previous,
			Current:    change.Current,
			Discarded:  change.Discarded,
			Note:       strings.TrimSpace(note),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ev := s.log.Info()
	if res.Discarded.IsPositive() {
		ev = s.log.Warn().Str("discarded", res.Discarded.String())
	}
	ev.Str("customer_id", res.CustomerID).
		Str("operation", op).
		Str("amount", amount.String()).
		Str("previous", res.Previous.String()).
		Str("current", res.Current.String()).
		Msg("deuda ajustada")
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx)
	}
	return res, nil
}

// CustomerInput campos editables del cliente.
type CustomerInput struct {
	Name        string
	Document    string
	Email       string
	Phone       string
	Address     string
	CreditLimit decimal.Decimal
	Notes       string
}

func (in CustomerInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Invalid("name", "requerido")
	}
	if in.CreditLimit.IsNegative() {
		return domain.Invalid("credit_limit", "no puede ser negativo")
	}
	if !entity.ValidMoney(in.CreditLimit) {
		return domain.Invalid("credit_limit", "máximo 2 decimales")
	}
	return nil
}

// CreateCustomer registra un cliente activo sin deuda.
func (s *Service) CreateCustomer(ctx context.Context, in CustomerInput) (*entity.Customer, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := s.now()
	c := &entity.Customer{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Document:    strings.TrimSpace(in.Document),
		Email:       strings.TrimSpace(in.Email),
		Phone:       strings.TrimSpace(in.Phone),
		Address:     strings.TrimSpace(in.Address),
		CreditLimit: in.CreditLimit,
		Debt:        decimal.Zero,
		Active:      true,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx)
	}
	return c, nil
}

// GetCustomer obtiene un cliente por ID.
func (s *Service) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// ListCustomers lista clientes con filtros y paginación.
func (s *Service) ListCustomers(ctx context.Context, f repository.CustomerFilter) ([]*entity.Customer, int, error) {
	return s.customers.List(ctx, f)
}

// UpdateCustomer actualiza los datos del cliente. La deuda no se toca aquí.
func (s *Service) UpdateCustomer(ctx context.Context, id string, in CustomerInput, active *bool) (*entity.Customer, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	c, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(in.Name)
	c.Document = strings.TrimSpace(in.Document)
	c.Email = strings.TrimSpace(in.Email)
	c.Phone = strings.TrimSpace(in.Phone)
	c.Address = strings.TrimSpace(in.Address)
	c.CreditLimit = in.CreditLimit
	c.Notes = in.Notes
	if active != nil {
		c.Active = *active
	}
	c.UpdatedAt = s.now()
	if err := s.customers.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Statement estado de cuenta del cliente. Sales trae solo las últimas; los totales son históricos.
type Statement struct {
	Customer        *entity.Customer
	Sales           []*entity.Sale
	SalesCount      int
	TotalPurchased  decimal.Decimal  // ventas COMPLETED
	CreditPurchased decimal.Decimal  // ventas COMPLETED a plazo
	AvailableCredit *decimal.Decimal // nil si no tiene límite
}

// CustomerStatement devuelve las últimas ventas completadas del cliente y los totales de toda su historia.
func (s *Service) CustomerStatement(ctx context.Context, id string, limit int) (*Statement, error) {
	c, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	sales, _, err := s.sales.List(ctx, repository.SaleFilter{
		CustomerID: id,
		Status:     entity.SaleStatusCompleted,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}
	totals, err := s.sales.CustomerTotals(ctx, id)
	if err != nil {
		return nil, err
	}
	st := &Statement{
		Customer:        c,
		Sales:           sales,
		SalesCount:      totals.Count,
		TotalPurchased:  totals.Total,
		CreditPurchased: totals.Credit,
	}
	if c.CreditLimit.IsPositive() {
		avail := c.CreditLimit.Sub(c.Debt)
		if avail.IsNegative() {
			avail = decimal.Zero
		}
		st.AvailableCredit = &avail
	}
	return st, nil
}
