package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/petshop-api/internal/domain"
	"github.com/jhoicas/petshop-api/internal/domain/entity"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
)

var (
	_ repository.TransactionRepository = (*TransactionRepo)(nil)
	_ repository.BalanceRepository     = (*BalanceRepo)(nil)
)

const transactionColumns = `id, user_id, COALESCE(category_id::text, ''), kind, description, amount, occurred_on, payment_method,
	tags, notes, created_at, updated_at`

// TransactionRepo ingresos y gastos del dueño.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el repositorio.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	if err := row.Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Kind, &t.Description, &t.Amount, &t.OccurredOn,
		&t.PaymentMethod, &t.Tags, &t.Notes, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO transactions (id, user_id, category_id, kind, description, amount, occurred_on,
			payment_method, tags, notes, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		t.ID, t.UserID, t.CategoryID, t.Kind, t.Description, t.Amount, t.OccurredOn,
		t.PaymentMethod, tagsOrEmpty(t.Tags), t.Notes, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	t, err := scanTransaction(r.q.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func (r *TransactionRepo) Update(ctx context.Context, t *entity.Transaction) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE transactions SET category_id = NULLIF($2, '')::uuid, kind = $3, description = $4, amount = $5, occurred_on = $6,
			payment_method = $7, tags = $8, notes = $9, updated_at = $10
		WHERE id = $1`,
		t.ID, t.CategoryID, t.Kind, t.Description, t.Amount, t.OccurredOn,
		t.PaymentMethod, tagsOrEmpty(t.Tags), t.Notes, t.UpdatedAt,
	)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TransactionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepo) List(ctx context.Context, f repository.TransactionFilter) ([]*entity.Transaction, int, error) {
	cond := squirrel.And{}
	if f.UserID != "" {
		cond = append(cond, squirrel.Eq{"user_id": f.UserID})
	}
	if f.Kind != "" {
		cond = append(cond, squirrel.Eq{"kind": f.Kind})
	}
	if f.CategoryID != "" {
		cond = append(cond, squirrel.Eq{"category_id": f.CategoryID})
	}
	if f.From != nil {
		cond = append(cond, squirrel.GtOrEq{"occurred_on": *f.From})
	}
	if f.To != nil {
		cond = append(cond, squirrel.LtOrEq{"occurred_on": *f.To})
	}
	total, err := count(ctx, r.q, psql.Select("COUNT(*)").From("transactions").Where(cond))
	if err != nil {
		return nil, 0, err
	}
	limit, offset := pageDefaults(f.Limit, f.Offset)
	query, args, err := psql.Select(transactionColumns).From("transactions").Where(cond).
		OrderBy("occurred_on DESC", "created_at DESC").Limit(limit).Offset(offset).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list transactions: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, total, rows.Err()
}

// Totals suma ingresos y gastos en una sola pasada. since cero incluye todo el histórico.
func (r *TransactionRepo) Totals(ctx context.Context, userID string, since time.Time) (entity.FlowTotals, error) {
	qb := psql.Select(
		"COALESCE(SUM(amount) FILTER (WHERE kind = 'INCOME'), 0)",
		"COALESCE(SUM(amount) FILTER (WHERE kind = 'EXPENSE'), 0)",
	).From("transactions").Where(squirrel.Eq{"user_id": userID})
	if !since.IsZero() {
		qb = qb.Where(squirrel.GtOrEq{"occurred_on": since})
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return entity.FlowTotals{}, fmt.Errorf("build totals: %w", err)
	}
	var income, expense decimal.Decimal
	if err := r.q.QueryRow(ctx, query, args...).Scan(&income, &expense); err != nil {
		return entity.FlowTotals{}, fmt.Errorf("transaction totals: %w", err)
	}
	return entity.FlowTotals{Income: income, Expense: expense}, nil
}

// BalanceRepo snapshot de saldo por usuario.
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el repositorio.
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

func (r *BalanceRepo) Get(ctx context.Context, userID string) (*entity.BalanceSnapshot, error) {
	var b entity.BalanceSnapshot
	err := r.q.QueryRow(ctx, `
		SELECT user_id, balance, total_income, total_expense, month_income, month_expense, updated_at
		FROM balances WHERE user_id = $1`, userID,
	).Scan(&b.UserID, &b.Balance, &b.TotalIncome, &b.TotalExpense, &b.MonthIncome, &b.MonthExpense, &b.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return &b, nil
}

// Upsert inserta o reemplaza el snapshot del usuario.
func (r *BalanceRepo) Upsert(ctx context.Context, s *entity.BalanceSnapshot) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO balances (user_id, balance, total_income, total_expense, month_income, month_expense, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			balance = EXCLUDED.balance,
			total_income = EXCLUDED.total_income,
			total_expense = EXCLUDED.total_expense,
			month_income = EXCLUDED.month_income,
			month_expense = EXCLUDED.month_expense,
			updated_at = EXCLUDED.updated_at`,
		s.UserID, s.Balance, s.TotalIncome, s.TotalExpense, s.MonthIncome, s.MonthExpense, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert balance: %w", err)
	}
	return nil
}
