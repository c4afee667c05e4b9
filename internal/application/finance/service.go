// Package finance registra ingresos y gastos del dueño y mantiene su snapshot de saldo.
// Cada escritura de transacción recalcula el snapshot en la misma transacción de BD.
package finance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/petshop-api/internal/domain"
	"github.com/jhoicas/petshop-api/internal/domain/entity"
	domainfin "github.com/jhoicas/petshop-api/internal/domain/finance"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
	"github.com/jhoicas/petshop-api/pkg/logger"
)

// Service casos de uso de finanzas personales.
type Service struct {
	tx    repository.TxRunner
	repos repository.Repositories
	log   *logger.Logger
	now   func() time.Time
}

// NewService construye el servicio. repos se usa para lecturas fuera de transacción.
func NewService(tx repository.TxRunner, repos repository.Repositories, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{tx: tx, repos: repos, log: log.Component("finance"), now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Recompute recalcula el snapshot del usuario desde sus transacciones. Es idempotente.
func (s *Service) Recompute(ctx context.Context, userID string) (*entity.BalanceSnapshot, error) {
	if userID == "" {
		return nil, domain.Invalid("user_id", "requerido")
	}
	var snap *entity.BalanceSnapshot
	err := s.tx.Run(ctx, func(r repository.Repositories) error {
		var err error
		snap, err = s.recompute(ctx, r, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *Service) recompute(ctx context.Context, r repository.Repositories, userID string) (*entity.BalanceSnapshot, error) {
	now := s.now()
	allTime, err := r.Transactions.Totals(ctx, userID, time.Time{})
	if err != nil {
		return nil, err
	}
	month, err := r.Transactions.Totals(ctx, userID, domainfin.MonthStart(now))
	if err != nil {
		return nil, err
	}
	snap := domainfin.BuildSnapshot(userID, allTime, month, now)
	if err := r.Balances.Upsert(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// Balance devuelve el snapshot guardado; si todavía no existe lo calcula.
func (s *Service) Balance(ctx context.Context, userID string) (*entity.BalanceSnapshot, error) {
	snap, err := s.repos.Balances.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if snap != nil {
		return snap, nil
	}
	return s.Recompute(ctx, userID)
}

// TransactionInput datos de un ingreso o gasto.
type TransactionInput struct {
	CategoryID    string
	Kind          string
	Description   string
	Amount        decimal.Decimal
	OccurredOn    time.Time
	PaymentMethod string
	Tags          []string
	Notes         string
}

func (in TransactionInput) validate() error {
	if in.Kind != entity.TransactionIncome && in.Kind != entity.TransactionExpense {
		return domain.Invalid("type", "debe ser INCOME o EXPENSE")
	}
	if strings.TrimSpace(in.Description) == "" {
		return domain.Invalid("description", "requerido")
	}
	if !in.Amount.IsPositive() {
		return domain.Invalid("amount", "debe ser mayor que cero")
	}
	if !entity.ValidMoney(in.Amount) {
		return domain.Invalid("amount", "máximo 2 decimales")
	}
	if in.OccurredOn.IsZero() {
		return domain.Invalid("date", "requerido")
	}
	return nil
}

// checkCategory valida que la categoría exista, sea del usuario y del mismo tipo.
func checkCategory(ctx context.Context, r repository.Repositories, userID, categoryID, kind string) error {
	if categoryID == "" {
		return nil
	}
	c, err := r.Categories.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if c == nil || c.UserID != userID {
		return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, categoryID)
	}
	if c.Kind != kind {
		return domain.Invalid("category_id", "el tipo de la categoría no coincide con el de la transacción")
	}
	return nil
}

// CreateTransaction registra la transacción y recalcula el saldo.
func (s *Service) CreateTransaction(ctx context.Context, userID string, in TransactionInput) (*entity.Transaction, *entity.BalanceSnapshot, error) {
	if err := in.validate(); err != nil {
		return nil, nil, err
	}
	now := s.now()
	t := &entity.Transaction{
		ID:            uuid.New().String(),
		UserID:        userID,
		CategoryID:    in.CategoryID,
		Kind:          in.Kind,
		Description:   strings.TrimSpace(in.Description),
		Amount:        in.Amount,
		OccurredOn:    in.OccurredOn,
		PaymentMethod: in.PaymentMethod,
		Tags:          in.Tags,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	var snap *entity.BalanceSnapshot
	err := s.tx.Run(ctx, func(r repository.Repositories) error {
		if err := checkCategory(ctx, r, userID, in.CategoryID, in.Kind); err != nil {
			return err
		}
		if err := r.Transactions.Create(ctx, t); err != nil {
			return err
		}
		var err error
		snap, err = s.recompute(ctx, r, userID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	s.log.Debug().Str("user_id", userID).Str("kind", t.Kind).Str("amount", t.Amount.String()).Msg("transacción registrada")
	return t, snap, nil
}

// GetTransaction obtiene una transacción del usuario. Las de otros usuarios no existen para él.
func (s *Service) GetTransaction(ctx context.Context, userID, id string) (*entity.Transaction, error) {
	t, err := s.repos.Transactions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil || t.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

// ListTransactions lista transacciones del usuario.
func (s *Service) ListTransactions(ctx context.Context, f repository.TransactionFilter) ([]*entity.Transaction, int, error) {
	if f.UserID == "" {
		return nil, 0, domain.Invalid("user_id", "requerido")
	}
	return s.repos.Transactions.List(ctx, f)
}

// UpdateTransaction reemplaza los datos de la transacción y recalcula el saldo.
func (s *Service) UpdateTransaction(ctx context.Context, userID, id string, in TransactionInput) (*entity.Transaction, *entity.BalanceSnapshot, error) {
	if err := in.validate(); err != nil {
		return nil, nil, err
	}
	var (
		t    *entity.Transaction
		snap *entity.BalanceSnapshot
	)
	err := s.tx.Run(ctx, func(r repository.Repositories) error {
		cur, err := r.Transactions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if cur == nil || cur.UserID != userID {
			return domain.ErrNotFound
		}
		if err := checkCategory(ctx, r, userID, in.CategoryID, in.Kind); err != nil {
			return err
		}
		cur.CategoryID = in.CategoryID
		cur.Kind = in.Kind
		cur.Description = strings.TrimSpace(in.Description)
		cur.Amount = in.Amount
		cur.OccurredOn = in.OccurredOn
		cur.PaymentMethod = in.PaymentMethod
		cur.Tags = in.Tags
		cur.Notes = in.Notes
		cur.UpdatedAt = s.now()
		if err := r.Transactions.Update(ctx, cur); err != nil {
			return err
		}
		t = cur
		snap, err = s.recompute(ctx, r, userID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return t, snap, nil
}

// DeleteTransaction elimina la transacción y recalcula el saldo.
func (s *Service) DeleteTransaction(ctx context.Context, userID, id string) (*entity.BalanceSnapshot, error) {
	var snap *entity.BalanceSnapshot
	err := s.tx.Run(ctx, func(r repository.Repositories) error {
		cur, err := r.Transactions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if cur == nil || cur.UserID != userID {
			return domain.ErrNotFound
		}
		if err := r.Transactions.Delete(ctx, id); err != nil {
			return err
		}
		snap, err = s.recompute(ctx, r, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}
