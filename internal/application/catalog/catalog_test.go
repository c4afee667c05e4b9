package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/petshop-api/internal/application/catalog"
	"github.com/jhoicas/petshop-api/internal/application/dto"
	"github.com/jhoicas/petshop-api/internal/application/inventory"
	"github.com/jhoicas/petshop-api/internal/domain"
	"github.com/jhoicas/petshop-api/internal/domain/entity"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
	"github.com/jhoicas/petshop-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type env struct {
	ctx        context.Context
	store      *memory.Store
	products   *catalog.ProductUseCase
	categories *catalog.CategoryUseCase
	suppliers  *catalog.SupplierUseCase
	coord      *inventory.Coordinator
	categoryID string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	repos := store.Repositories()
	coord := inventory.NewCoordinator(store, nil, nil)
	e := &env{
		ctx:        ctx,
		store:      store,
		products:   catalog.NewProductUseCase(repos, coord),
		categories: catalog.NewCategoryUseCase(repos.Categories),
		suppliers:  catalog.NewSupplierUseCase(repos.Suppliers),
		coord:      coord,
	}
	cat, err := e.categories.Create(ctx, "admin", dto.CategoryRequest{Name: "Rações", Kind: entity.CategoryProduct})
	require.NoError(t, err)
	e.categoryID = cat.ID
	return e
}

func TestProductCreate_ConStockInicial(t *testing.T) {
	e := newEnv(t)

	p, err := e.products.Create(e.ctx, "u1", dto.CreateProductRequest{
		Name:         "Ração Golden 15kg",
		Barcode:      "7891000100103",
		CategoryID:   e.categoryID,
		PurchaseCost: d("100"),
		SalePrice:    d("150"),
		MinStock:     d("2"),
		InitialStock: d("6"),
	})
	require.NoError(t, err)
	assert.True(t, p.Stock.Equal(d("6")))
	assert.True(t, p.MarginPercent.Equal(d("50")))
	assert.Equal(t, entity.StockStatusOK, p.StockStatus)
	assert.Equal(t, "un", p.UnitMeasure)

	movs, err := e.products.Movements(e.ctx, repository.MovementFilter{ProductID: p.ID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, movs.Items, 1)
	assert.Equal(t, entity.ReasonInitialStock, movs.Items[0].Reason)

	_, err = e.products.Create(e.ctx, "u1", dto.CreateProductRequest{
		Name: "Outra", Barcode: "7891000100103", CategoryID: e.categoryID, SalePrice: d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_Validaciones(t *testing.T) {
	e := newEnv(t)
	income, err := e.categories.Create(e.ctx, "u1", dto.CategoryRequest{Name: "Serviços", Kind: entity.CategoryIncome})
	require.NoError(t, err)

	cases := []struct {
		name string
		in   dto.CreateProductRequest
		want error
	}{
		{"sin nombre", dto.CreateProductRequest{CategoryID: e.categoryID, SalePrice: d("1")}, domain.ErrInvalidInput},
		{"precio cero", dto.CreateProductRequest{Name: "X", CategoryID: e.categoryID}, domain.ErrInvalidInput},
		{"categoría inexistente", dto.CreateProductRequest{Name: "X", CategoryID: "nope", SalePrice: d("1")}, domain.ErrNotFound},
		{"categoría de otro tipo", dto.CreateProductRequest{Name: "X", CategoryID: income.ID, SalePrice: d("1")}, domain.ErrInvalidInput},
		{"proveedor inexistente", dto.CreateProductRequest{Name: "X", CategoryID: e.categoryID, SupplierID: "s?", SalePrice: d("1")}, domain.ErrNotFound},
		{"stock inicial fraccionario", dto.CreateProductRequest{Name: "X", CategoryID: e.categoryID, SalePrice: d("1"), InitialStock: d("1.5")}, domain.ErrInvalidInput},
		{"precio con 3 decimales", dto.CreateProductRequest{Name: "X", CategoryID: e.categoryID, SalePrice: d("9.999")}, domain.ErrInvalidInput},
		{"costo con 3 decimales", dto.CreateProductRequest{Name: "X", CategoryID: e.categoryID, SalePrice: d("10"), PurchaseCost: d("4.125")}, domain.ErrInvalidInput},
		{"stock pesable con 4 decimales", dto.CreateProductRequest{Name: "X", CategoryID: e.categoryID, SalePrice: d("1"), Weighable: true, InitialStock: d("1.2345")}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.products.Create(e.ctx, "u1", tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestProductUpdate_NoTocaStock(t *testing.T) {
	e := newEnv(t)
	p, err := e.products.Create(e.ctx, "u1", dto.CreateProductRequest{Name: "Areia", CategoryID: e.categoryID, SalePrice: d("20"), InitialStock: d("4")})
	require.NoError(t, err)

	name := "Areia Sanitária 4kg"
	price := d("22.90")
	off := false
	got, err := e.products.Update(e.ctx, p.ID, dto.UpdateProductRequest{Name: &name, SalePrice: &price, Active: &off})
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	assert.False(t, got.Active)

	stored, err := e.products.GetByID(e.ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, stored.Stock.Equal(d("4")))
	assert.True(t, stored.SalePrice.Equal(price))

	zero := decimal.Zero
	_, err = e.products.Update(e.ctx, p.ID, dto.UpdateProductRequest{SalePrice: &zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.products.Update(e.ctx, "x", dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUpdate_NoDejaDeSerPesableConStockFraccionario(t *testing.T) {
	e := newEnv(t)
	p, err := e.products.Create(e.ctx, "u1", dto.CreateProductRequest{
		Name: "Ração a granel", CategoryID: e.categoryID, SalePrice: d("18.50"), Weighable: true, InitialStock: d("2.5"),
	})
	require.NoError(t, err)

	off := false
	_, err = e.products.Update(e.ctx, p.ID, dto.UpdateProductRequest{Weighable: &off})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	stored, err := e.products.GetByID(e.ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, stored.Weighable)

	_, err = e.coord.AdjustStock(e.ctx, inventory.AdjustmentInput{ProductID: p.ID, NewQuantity: d("3"), Reason: "contagem"})
	require.NoError(t, err)
	got, err := e.products.Update(e.ctx, p.ID, dto.UpdateProductRequest{Weighable: &off})
	require.NoError(t, err)
	assert.False(t, got.Weighable)
}

func TestProductDelete_BloqueadoConHistorial(t *testing.T) {
	e := newEnv(t)
	used, err := e.products.Create(e.ctx, "u1", dto.CreateProductRequest{Name: "Coleira", CategoryID: e.categoryID, SalePrice: d("30"), InitialStock: d("1")})
	require.NoError(t, err)
	unused, err := e.products.Create(e.ctx, "u1", dto.CreateProductRequest{Name: "Guia", CategoryID: e.categoryID, SalePrice: d("30")})
	require.NoError(t, err)

	err = e.products.Delete(e.ctx, used.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, e.products.Delete(e.ctx, unused.ID))
	_, err = e.products.GetByID(e.ctx, unused.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductList_FiltroStockBajo(t *testing.T) {
	e := newEnv(t)
	_, err := e.products.Create(e.ctx, "u1", dto.CreateProductRequest{Name: "A", CategoryID: e.categoryID, SalePrice: d("1"), MinStock: d("5"), InitialStock: d("2")})
	require.NoError(t, err)
	_, err = e.products.Create(e.ctx, "u1", dto.CreateProductRequest{Name: "B", CategoryID: e.categoryID, SalePrice: d("1"), MinStock: d("1"), InitialStock: d("9")})
	require.NoError(t, err)

	low, err := e.products.List(e.ctx, repository.ProductFilter{LowStock: true, Limit: 20})
	require.NoError(t, err)
	require.Len(t, low.Items, 1)
	assert.Equal(t, "A", low.Items[0].Name)
	assert.Equal(t, entity.StockStatusLow, low.Items[0].StockStatus)

	all, err := e.products.List(e.ctx, repository.ProductFilter{Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Page.Total)
}

func TestCategories_VisibilidadPorUsuario(t *testing.T) {
	e := newEnv(t)
	mine, err := e.categories.Create(e.ctx, "u1", dto.CategoryRequest{Name: "Luz", Kind: entity.CategoryExpense})
	require.NoError(t, err)

	list, err := e.categories.List(e.ctx, "u2", "")
	require.NoError(t, err)
	require.Len(t, list, 1, "u2 solo ve la categoría de productos")

	_, err = e.categories.Update(e.ctx, "u2", mine.ID, dto.CategoryRequest{Name: "Energia"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, e.categories.Delete(e.ctx, "u1", mine.ID))
	list, err = e.categories.List(e.ctx, "u1", entity.CategoryExpense)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = e.categories.Create(e.ctx, "u1", dto.CategoryRequest{Name: "X", Kind: "OTHER"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSuppliers(t *testing.T) {
	e := newEnv(t)
	s, err := e.suppliers.Create(e.ctx, dto.SupplierRequest{Name: "PetDistrib", Document: "12.345.678/0001-90"})
	require.NoError(t, err)
	assert.True(t, s.Active)

	_, err = e.suppliers.Create(e.ctx, dto.SupplierRequest{Name: "Clone", Document: "12.345.678/0001-90"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	off := false
	upd, err := e.suppliers.Update(e.ctx, s.ID, dto.SupplierRequest{Name: "PetDistrib LTDA", Active: &off})
	require.NoError(t, err)
	assert.False(t, upd.Active)

	list, err := e.suppliers.List(e.ctx, repository.SupplierFilter{Search: "petdistrib"})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	_, err = e.suppliers.Create(e.ctx, dto.SupplierRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
