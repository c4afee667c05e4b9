package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/petshop-api/internal/domain/entity"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
	"github.com/jhoicas/petshop-api/internal/infrastructure/memory"
)

func TestRun_RollbackRestauraEstado(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repos := store.Repositories()
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", Name: "Areia", Stock: decimal.NewFromInt(5)}))

	boom := errors.New("boom")
	err := store.Run(ctx, func(r repository.Repositories) error {
		require.NoError(t, r.Products.SetStock(ctx, "p1", decimal.NewFromInt(1)))
		require.NoError(t, r.Movements.Create(ctx, &entity.StockMovement{ID: "m1", ProductID: "p1"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, err := repos.Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, p.Stock.Equal(decimal.NewFromInt(5)))

	movs, err := repos.Movements.ListByProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestRun_CommitPersiste(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	err := store.Run(ctx, func(r repository.Repositories) error {
		n, err := r.Counters.Next(ctx, repository.CounterSale)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		return nil
	})
	require.NoError(t, err)

	n, err := store.Repositories().Counters.Next(ctx, repository.CounterSale)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestProductRepo_UpdateNoTocaStock(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repositories()
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", Name: "Ração", Stock: decimal.NewFromInt(9), PurchaseCost: decimal.NewFromInt(3)}))

	require.NoError(t, repos.Products.Update(ctx, &entity.Product{ID: "p1", Name: "Ração Premium"}))

	p, err := repos.Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Ração Premium", p.Name)
	assert.True(t, p.Stock.Equal(decimal.NewFromInt(9)))
	assert.True(t, p.PurchaseCost.Equal(decimal.NewFromInt(3)))
}
