package finance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/petshop-api/internal/application/finance"
	"github.com/jhoicas/petshop-api/internal/domain"
	"github.com/jhoicas/petshop-api/internal/domain/entity"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
	"github.com/jhoicas/petshop-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var now = time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC)

func newService() (*finance.Service, *memory.Store) {
	store := memory.New()
	svc := finance.NewService(store, store.Repositories(), nil).WithClock(func() time.Time { return now })
	return svc, store
}

func income(amount string, on time.Time) finance.TransactionInput {
	return finance.TransactionInput{Kind: entity.TransactionIncome, Description: "Venda balcão", Amount: d(amount), OccurredOn: on}
}

func expense(amount string, on time.Time) finance.TransactionInput {
	return finance.TransactionInput{Kind: entity.TransactionExpense, Description: "Aluguel", Amount: d(amount), OccurredOn: on}
}

func TestRecompute_TotalesHistoricosYDelMes(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	_, _, err := svc.CreateTransaction(ctx, "u1", income("1000", now.AddDate(0, -2, 0)))
	require.NoError(t, err)
	_, _, err = svc.CreateTransaction(ctx, "u1", expense("300", now.AddDate(0, -1, 0)))
	require.NoError(t, err)
	_, _, err = svc.CreateTransaction(ctx, "u1", income("250", now.AddDate(0, 0, -3)))
	require.NoError(t, err)
	_, snap, err := svc.CreateTransaction(ctx, "u1", expense("100", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	assert.True(t, snap.TotalIncome.Equal(d("1250")))
	assert.True(t, snap.TotalExpense.Equal(d("400")))
	assert.True(t, snap.Balance.Equal(d("850")))
	assert.True(t, snap.MonthIncome.Equal(d("250")))
	assert.True(t, snap.MonthExpense.Equal(d("100")), "el primer instante del mes cuenta para el mes")

	again, err := svc.Recompute(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, again.Balance.Equal(snap.Balance), "recalcular sin cambios da el mismo saldo")
	assert.True(t, again.MonthIncome.Equal(snap.MonthIncome))
	assert.True(t, again.MonthExpense.Equal(snap.MonthExpense))
}

func TestRecompute_SinTransaccionesDaCero(t *testing.T) {
	svc, _ := newService()
	snap, err := svc.Recompute(context.Background(), "nuevo")
	require.NoError(t, err)
	assert.True(t, snap.Balance.IsZero())
	assert.True(t, snap.TotalIncome.IsZero())
}

func TestUpdateYDeleteRecalculan(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	tx, _, err := svc.CreateTransaction(ctx, "u1", income("500", now))
	require.NoError(t, err)

	_, snap, err := svc.UpdateTransaction(ctx, "u1", tx.ID, expense("200", now))
	require.NoError(t, err)
	assert.True(t, snap.Balance.Equal(d("-200")))

	_, _, err = svc.UpdateTransaction(ctx, "otro", tx.ID, income("1", now))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	snap, err = svc.DeleteTransaction(ctx, "u1", tx.ID)
	require.NoError(t, err)
	assert.True(t, snap.Balance.IsZero())

	stored, err := svc.Balance(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, stored.Balance.IsZero())
}

func TestCreateTransaction_FallaDelRecalculoRevierte(t *testing.T) {
	ctx := context.Background()
	svc, store := newService()
	store.FailOn("transactions.totals", errors.New("timeout"))

	_, _, err := svc.CreateTransaction(ctx, "u1", income("10", now))
	require.Error(t, err)

	list, total, err := svc.ListTransactions(ctx, repository.TransactionFilter{UserID: "u1"})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, total)
}

func TestCreateTransaction_ValidaCategoriaYCampos(t *testing.T) {
	ctx := context.Background()
	svc, store := newService()
	repos := store.Repositories()
	require.NoError(t, repos.Categories.Create(ctx, &entity.Category{ID: "c-exp", UserID: "u1", Name: "Aluguel", Kind: entity.CategoryExpense, Active: true}))
	require.NoError(t, repos.Categories.Create(ctx, &entity.Category{ID: "c-other", UserID: "u2", Name: "Outros", Kind: entity.CategoryIncome, Active: true}))

	in := income("10", now)
	in.CategoryID = "c-exp"
	_, _, err := svc.CreateTransaction(ctx, "u1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in.CategoryID = "c-other"
	_, _, err = svc.CreateTransaction(ctx, "u1", in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	bad := income("0", now)
	_, _, err = svc.CreateTransaction(ctx, "u1", bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = svc.CreateTransaction(ctx, "u1", income("19.999", now))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ok := expense("75", now)
	ok.CategoryID = "c-exp"
	tx, _, err := svc.CreateTransaction(ctx, "u1", ok)
	require.NoError(t, err)

	_, err = svc.GetTransaction(ctx, "u2", tx.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	got, err := svc.GetTransaction(ctx, "u1", tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "c-exp", got.CategoryID)
}
