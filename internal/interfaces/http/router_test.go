package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/petshop-api/internal/application/auth"
	"github.com/jhoicas/petshop-api/internal/application/catalog"
	"github.com/jhoicas/petshop-api/internal/application/credit"
	"github.com/jhoicas/petshop-api/internal/application/dto"
	"github.com/jhoicas/petshop-api/internal/application/finance"
	"github.com/jhoicas/petshop-api/internal/application/inventory"
	"github.com/jhoicas/petshop-api/internal/application/reports"
	"github.com/jhoicas/petshop-api/internal/domain/entity"
	"github.com/jhoicas/petshop-api/internal/infrastructure/memory"
	"github.com/jhoicas/petshop-api/internal/infrastructure/pdf"
	"github.com/jhoicas/petshop-api/internal/infrastructure/spreadsheet"
	apphttp "github.com/jhoicas/petshop-api/internal/interfaces/http"
)

const (
	racaoCategoryID = "7c1e0c52-3a5b-4f0e-9d1a-2b6f8e4c9a01"
	anaCustomerID   = "3f6d2b1a-8c4e-4a7b-b5d2-91e0c7f4a3b2"
	missingID       = "00000000-0000-4000-8000-00000000abcd"
)

type testEnv struct {
	app   *fiber.App
	store *memory.Store
	admin string
	oper  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.New()
	repos := store.Repositories()

	dash := reports.NewDashboardUseCase(store.Reports(), nil, time.Minute, nil)
	coord := inventory.NewCoordinator(store, dash, nil)
	fin := finance.NewService(store, repos, nil)
	deps := apphttp.RouterDeps{
		AuthUC:      auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		ProductUC:   catalog.NewProductUseCase(repos, coord),
		SupplierUC:  catalog.NewSupplierUseCase(repos.Suppliers),
		CategoryUC:  catalog.NewCategoryUseCase(repos.Categories),
		Coordinator: coord,
		Documents:   inventory.NewQueries(repos.Purchases, repos.Sales),
		Credit:      credit.NewService(store, repos.Customers, repos.Sales, dash, nil),
		Finance:     fin,
		Dashboard:   dash,
		StockReport: reports.NewStockReportUseCase(store.Reports(), spreadsheet.NewXLSXExporter()),
		Receipt:     reports.NewReceiptUseCase(repos, pdf.NewMarotoReceiptGenerator(), "Pet Shop Teste"),
		Analytics:   reports.NewAnalyticsUseCase(store.Reports(), fin),
		Health: map[string]apphttp.HealthCheck{
			"postgres": func(context.Context) error { return nil },
		},
		JWTSecret: testJWTSecret,
	}
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, deps)

	ctx := context.Background()
	require.NoError(t, repos.Categories.Create(ctx, &entity.Category{ID: racaoCategoryID, Name: "Rações", Kind: entity.CategoryProduct, Active: true}))
	require.NoError(t, repos.Customers.Create(ctx, &entity.Customer{ID: anaCustomerID, Name: "Ana", Debt: decimal.NewFromInt(40), Active: true}))

	return &testEnv{app: app, store: store, admin: tokenForRole(t, entity.RoleAdmin), oper: tokenForRole(t, entity.RoleOperator)}
}

func (e *testEnv) call(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func (e *testEnv) createProduct(t *testing.T, name, price, stock string) dto.ProductResponse {
	t.Helper()
	resp, body := e.call(t, http.MethodPost, "/api/products", e.oper, map[string]any{
		"name":          name,
		"category_id":   racaoCategoryID,
		"sale_price":    price,
		"purchase_cost": "10",
		"min_stock":     "1",
		"initial_stock": stock,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	return decode[dto.ProductResponse](t, body)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.call(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"postgres":"ok"`)
}

func TestHealth_DependenciaCaida(t *testing.T) {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Health: map[string]apphttp.HealthCheck{"redis": func(context.Context) error { return errors.New("connection refused") }},
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestRutasProtegidas_SinToken(t *testing.T) {
	env := newTestEnv(t)
	resp, _ := env.call(t, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProducto_CrearConStockInicialYLibro(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct(t, "Ração Premium 15kg", "189.90", "8")
	assert.True(t, p.Stock.Equal(decimal.NewFromInt(8)))

	resp, body := env.call(t, http.MethodGet, "/api/products/"+p.ID+"/movements", env.oper, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.MovementListResponse](t, body)
	require.Len(t, list.Items, 1)
	assert.Equal(t, entity.MovementEntry, list.Items[0].Direction)

	resp, body = env.call(t, http.MethodGet, "/api/products/"+missingID, env.oper, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "NOT_FOUND")

	resp, body = env.call(t, http.MethodPost, "/api/products", env.oper, map[string]any{"name": "Sin precio", "category_id": racaoCategoryID})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "VALIDATION")
}

func TestIDsMalFormados_Retornan400(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct(t, "Comedouro", "20", "5")

	cases := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"ruta de venta", http.MethodGet, "/api/sales/xyz", nil},
		{"cancelar compra", http.MethodPost, "/api/purchases/123/cancel", nil},
		{"ajuste de stock", http.MethodPost, "/api/products/abc/adjust-stock", map[string]any{"new_quantity": "1", "reason": "x"}},
		{"movimiento", http.MethodGet, "/api/stock/movements/m-1", nil},
		{"filtro de cliente", http.MethodGet, "/api/sales?customer_id=foo", nil},
		{"filtro de producto", http.MethodGet, "/api/stock/movements?product_id=foo", nil},
		{"producto en línea de venta", http.MethodPost, "/api/sales", map[string]any{
			"payment_type": entity.PaymentCash,
			"lines":        []map[string]any{{"product_id": "abc", "quantity": "1"}},
		}},
		{"cliente de venta", http.MethodPost, "/api/sales", map[string]any{
			"payment_type": entity.PaymentCreditTerm,
			"customer_id":  "foo",
			"lines":        []map[string]any{{"product_id": p.ID, "quantity": "1"}},
		}},
		{"categoría de producto", http.MethodPost, "/api/products", map[string]any{"name": "X", "category_id": "cat", "sale_price": "1"}},
		{"proveedor de compra", http.MethodPost, "/api/purchases", map[string]any{
			"supplier_id": "s1",
			"lines":       []map[string]any{{"product_id": p.ID, "quantity": "1", "unit_price": "1"}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := env.call(t, tc.method, tc.path, env.admin, tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(body))
			assert.Contains(t, string(body), "VALIDATION")
		})
	}

	resp, body := env.call(t, http.MethodGet, "/api/products/"+p.ID, env.oper, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.ProductResponse](t, body).Stock.Equal(decimal.NewFromInt(5)), "ninguna petición inválida toca stock")
}

func TestVenta_FlujoCompletoPorHTTP(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct(t, "Coleira", "30", "3")

	resp, body := env.call(t, http.MethodPost, "/api/sales", env.oper, map[string]any{
		"payment_type": entity.PaymentPix,
		"lines":        []map[string]any{{"product_id": p.ID, "quantity": "2"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	sale := decode[dto.SaleResponse](t, body)
	assert.Equal(t, "000001", sale.Number)
	assert.True(t, sale.NetTotal.Equal(decimal.NewFromInt(60)))

	resp, body = env.call(t, http.MethodPost, "/api/sales", env.oper, map[string]any{
		"payment_type": entity.PaymentCash,
		"lines":        []map[string]any{{"product_id": p.ID, "quantity": "5"}},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "INSUFFICIENT_STOCK")

	resp, body = env.call(t, http.MethodGet, "/api/sales/"+sale.ID+"/receipt", env.oper, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp, _ = env.call(t, http.MethodPost, "/api/sales/"+sale.ID+"/cancel", env.oper, map[string]any{"reason": "cliente desistiu"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = env.call(t, http.MethodPost, "/api/sales/"+sale.ID+"/cancel", env.oper, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "ALREADY_CANCELLED")

	resp, body = env.call(t, http.MethodGet, "/api/products/"+p.ID, env.oper, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.ProductResponse](t, body).Stock.Equal(decimal.NewFromInt(3)))
}

func TestCompra_ConfirmarYCancelarConfirmada(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct(t, "Areia sanitária", "25", "0")

	resp, body := env.call(t, http.MethodPost, "/api/suppliers", env.oper, map[string]any{"name": "Distribuidora Pet"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	sup := decode[dto.SupplierResponse](t, body)

	resp, body = env.call(t, http.MethodPost, "/api/purchases", env.oper, map[string]any{
		"supplier_id": sup.ID,
		"lines":       []map[string]any{{"product_id": p.ID, "quantity": "10", "unit_price": "12.50"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	purchase := decode[dto.PurchaseResponse](t, body)
	assert.Equal(t, entity.PurchaseStatusPending, purchase.Status)

	resp, body = env.call(t, http.MethodPost, "/api/purchases/"+purchase.ID+"/confirm", env.oper, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = env.call(t, http.MethodPost, "/api/purchases/"+purchase.ID+"/confirm", env.oper, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "INVALID_STATE")

	resp, body = env.call(t, http.MethodPost, "/api/purchases/"+purchase.ID+"/cancel", env.oper, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "INVALID_STATE")

	resp, body = env.call(t, http.MethodGet, "/api/products/"+p.ID, env.oper, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.ProductResponse](t, body)
	assert.True(t, got.Stock.Equal(decimal.NewFromInt(10)))
	assert.True(t, got.PurchaseCost.Equal(decimal.RequireFromString("12.50")))
}

func TestAjusteDeStock_SoloAdmin(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct(t, "Petisco", "9.90", "4")
	body := map[string]any{"new_quantity": "6", "reason": "contagem"}

	resp, _ := env.call(t, http.MethodPost, "/api/products/"+p.ID+"/adjust-stock", env.oper, body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, raw := env.call(t, http.MethodPost, "/api/products/"+p.ID+"/adjust-stock", env.admin, body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	res := decode[dto.AdjustStockResponse](t, raw)
	assert.True(t, res.Previous.Equal(decimal.NewFromInt(4)))
	assert.True(t, res.Product.Stock.Equal(decimal.NewFromInt(6)))
	require.NotNil(t, res.Movement)
	assert.True(t, res.Movement.Quantity.Equal(decimal.NewFromInt(2)))

	resp, raw = env.call(t, http.MethodPost, "/api/products/"+p.ID+"/reconcile", env.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rec := decode[dto.ReconcileResponse](t, raw)
	assert.True(t, rec.InSync)
	assert.Equal(t, 2, rec.Movements)
}

func TestAjusteDeDeuda_RecortaEnCero(t *testing.T) {
	env := newTestEnv(t)
	body := map[string]any{"amount": "100", "operation": entity.DebtSubtract, "note": "pagamento"}

	resp, _ := env.call(t, http.MethodPost, "/api/customers/"+anaCustomerID+"/adjust-debt", env.oper, body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, raw := env.call(t, http.MethodPost, "/api/customers/"+anaCustomerID+"/adjust-debt", env.admin, body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	res := decode[dto.DebtAdjustmentResponse](t, raw)
	assert.True(t, res.Current.IsZero())
	assert.True(t, res.Discarded.Equal(decimal.NewFromInt(60)))

	resp, raw = env.call(t, http.MethodPost, "/api/customers/"+anaCustomerID+"/adjust-debt", env.admin, map[string]any{"amount": "0", "operation": entity.DebtAdd})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "VALIDATION")
}

func TestFinanzas_SaldoSeRecalculaEnCadaEscritura(t *testing.T) {
	env := newTestEnv(t)
	today := time.Now().Format(dto.DateLayout)

	resp, raw := env.call(t, http.MethodPost, "/api/transactions", env.oper, map[string]any{
		"type": entity.TransactionIncome, "description": "Vendas do dia", "amount": "500", "date": today,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	created := decode[dto.TransactionMutationResponse](t, raw)
	assert.True(t, created.Balance.Balance.Equal(decimal.NewFromInt(500)))

	resp, raw = env.call(t, http.MethodPost, "/api/transactions", env.oper, map[string]any{
		"type": entity.TransactionExpense, "description": "Aluguel", "amount": "120.25", "date": today,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = env.call(t, http.MethodGet, "/api/balance", env.oper, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	bal := decode[dto.BalanceResponse](t, raw)
	assert.True(t, bal.Balance.Equal(decimal.RequireFromString("379.75")))

	resp, raw = env.call(t, http.MethodDelete, "/api/transactions/"+created.Transaction.ID, env.oper, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.TransactionMutationResponse](t, raw).Balance.Balance.Equal(decimal.RequireFromString("-120.25")))

	resp, _ = env.call(t, http.MethodGet, "/api/transactions/"+created.Transaction.ID, env.admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, raw = env.call(t, http.MethodPost, "/api/transactions", env.oper, map[string]any{
		"type": entity.TransactionIncome, "description": "x", "amount": "1", "date": "15/07/2026",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "VALIDATION")
}

func TestRegistroAnonimoNoPuedeElegirAdmin(t *testing.T) {
	env := newTestEnv(t)
	resp, raw := env.call(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "caixa@petshop.com", "password": "segredo123", "role": entity.RoleAdmin,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	assert.Equal(t, entity.RoleOperator, decode[dto.UserResponse](t, raw).Role)

	resp, raw = env.call(t, http.MethodPost, "/api/auth/register", env.admin, map[string]any{
		"email": "gerente@petshop.com", "password": "segredo123", "role": entity.RoleAdmin,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	assert.Equal(t, entity.RoleAdmin, decode[dto.UserResponse](t, raw).Role)

	resp, raw = env.call(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "caixa@petshop.com", "password": "errada123"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(raw), "credenciales inválidas")

	resp, raw = env.call(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "caixa@petshop.com", "password": "segredo123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[dto.LoginResponse](t, raw)

	resp, raw = env.call(t, http.MethodGet, "/api/auth/me", "Bearer "+login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "caixa@petshop.com", decode[dto.UserResponse](t, raw).Email)
}

func TestInventarioYPanel(t *testing.T) {
	env := newTestEnv(t)
	env.createProduct(t, "Ração A", "80", "10")

	resp, raw := env.call(t, http.MethodGet, "/api/stock/inventory", env.oper, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	report := decode[dto.StockReportDTO](t, raw)
	assert.Equal(t, 1, report.TotalItems)
	assert.True(t, report.TotalValue.Equal(decimal.NewFromInt(100)))

	resp, raw = env.call(t, http.MethodGet, "/api/stock/inventory.xlsx", env.oper, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "inventario-")
	assert.True(t, bytes.HasPrefix(raw, []byte("PK")), "xlsx es un zip")

	resp, raw = env.call(t, http.MethodGet, "/api/dashboard/stats", env.oper, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decode[dto.DashboardStatsDTO](t, raw)
	assert.Equal(t, 1, stats.ProductsInStock)
	assert.True(t, stats.OutstandingCredit.Equal(decimal.NewFromInt(40)))

	resp, _ = env.call(t, http.MethodGet, "/api/stock/movements?from=ayer", env.oper, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReportesAgregados(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct(t, "Coleira", "30", "10")

	for _, body := range []map[string]any{
		{"payment_type": entity.PaymentPix, "lines": []map[string]any{{"product_id": p.ID, "quantity": "2"}}},
		{"payment_type": entity.PaymentCash, "customer_id": anaCustomerID, "lines": []map[string]any{{"product_id": p.ID, "quantity": "1"}}},
	} {
		resp, raw := env.call(t, http.MethodPost, "/api/sales", env.oper, body)
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	}

	resp, raw := env.call(t, http.MethodGet, "/api/sales/report", env.oper, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	sales := decode[dto.SalesReportDTO](t, raw)
	assert.Equal(t, 2, sales.Count)
	assert.True(t, sales.NetTotal.Equal(decimal.NewFromInt(90)))
	assert.True(t, sales.AverageTicket.Equal(decimal.NewFromInt(45)))
	require.Len(t, sales.TopProducts, 1)
	assert.True(t, sales.TopProducts[0].Quantity.Equal(decimal.NewFromInt(3)))

	resp, raw = env.call(t, http.MethodGet, "/api/customers/report", env.oper, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	customers := decode[dto.CustomersReportDTO](t, raw)
	assert.Equal(t, 1, customers.WithDebt)
	require.Len(t, customers.TopBuyers, 1)
	assert.Equal(t, "Ana", customers.TopBuyers[0].Name)
	assert.True(t, customers.TopBuyers[0].Amount.Equal(decimal.NewFromInt(30)))

	resp, raw = env.call(t, http.MethodGet, "/api/purchases/report", env.oper, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, 0, decode[dto.PurchasesReportDTO](t, raw).Count)

	resp, _ = env.call(t, http.MethodGet, "/api/suppliers/report", env.oper, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = env.call(t, http.MethodGet, "/api/sales/report?from=ontem", env.oper, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "VALIDATION")
}

func TestFinanzas_PanelYResumen(t *testing.T) {
	env := newTestEnv(t)
	today := time.Now().Format(dto.DateLayout)
	resp, raw := env.call(t, http.MethodPost, "/api/transactions", env.oper, map[string]any{
		"type": entity.TransactionIncome, "description": "Banho e tosa", "amount": "100", "date": today,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = env.call(t, http.MethodGet, "/api/finance/summary?period=quarter", env.oper, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	summary := decode[dto.FinanceSummaryDTO](t, raw)
	assert.Equal(t, "quarter", summary.Period)
	assert.Equal(t, 1, summary.IncomeCount)
	assert.True(t, summary.Balance.Equal(decimal.NewFromInt(100)))

	resp, raw = env.call(t, http.MethodGet, "/api/finance/dashboard", env.oper, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	panel := decode[dto.FinanceDashboardDTO](t, raw)
	assert.True(t, panel.Balance.Balance.Equal(decimal.NewFromInt(100)))
	require.Len(t, panel.ByCategory, 1)
	require.Len(t, panel.Evolution, 1)

	resp, raw = env.call(t, http.MethodGet, "/api/finance/summary", env.oper, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "month", decode[dto.FinanceSummaryDTO](t, raw).Period)

	resp, _ = env.call(t, http.MethodGet, "/api/finance/summary?period=week", env.oper, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
