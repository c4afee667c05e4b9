package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/petshop-api/internal/application/auth"
	"github.com/jhoicas/petshop-api/internal/application/catalog"
	"github.com/jhoicas/petshop-api/internal/application/credit"
	"github.com/jhoicas/petshop-api/internal/application/finance"
	"github.com/jhoicas/petshop-api/internal/application/inventory"
	"github.com/jhoicas/petshop-api/internal/application/reports"
	"github.com/jhoicas/petshop-api/internal/domain/entity"
)

// HealthCheck verifica una dependencia (PostgreSQL, Redis).
type HealthCheck func(ctx context.Context) error

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *catalog.ProductUseCase
	SupplierUC  *catalog.SupplierUseCase
	CategoryUC  *catalog.CategoryUseCase
	Coordinator *inventory.Coordinator
	Documents   *inventory.Queries
	Credit      *credit.Service
	Finance     *finance.Service
	Dashboard   *reports.DashboardUseCase
	StockReport *reports.StockReportUseCase
	Receipt     *reports.ReceiptUseCase
	Analytics   *reports.AnalyticsUseCase
	Health      map[string]HealthCheck
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps.Health))

	api := app.Group("/api")

	// Auth (público; un admin autenticado puede crear otros admin)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", OptionalAuth(deps.JWTSecret), authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)
	validID := RequireUUIDParam("id")
	reportHandler := NewReportHandler(deps.Analytics)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Coordinator)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", validID, productHandler.GetByID)
	products.Put("/:id", validID, productHandler.Update)
	products.Delete("/:id", validID, productHandler.Delete)
	products.Get("/:id/movements", validID, productHandler.Movements)
	products.Post("/:id/adjust-stock", validID, adminOnly, productHandler.AdjustStock)
	products.Post("/:id/reconcile", validID, adminOnly, productHandler.Reconcile)

	stock := protected.Group("/stock")
	inventoryHandler := NewInventoryHandler(deps.Coordinator, deps.ProductUC, deps.StockReport)
	stock.Get("/movements", inventoryHandler.ListMovements)
	stock.Post("/movements", inventoryHandler.RegisterMovement)
	stock.Get("/movements/:id", validID, inventoryHandler.GetMovement)
	stock.Get("/inventory", inventoryHandler.Inventory)
	stock.Get("/inventory.xlsx", inventoryHandler.InventoryXLSX)

	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/report", reportHandler.Suppliers)
	suppliers.Get("/:id", validID, supplierHandler.GetByID)
	suppliers.Put("/:id", validID, supplierHandler.Update)

	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.Coordinator, deps.Documents)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/report", reportHandler.Purchases)
	purchases.Get("/:id", validID, purchaseHandler.GetByID)
	purchases.Post("/:id/confirm", validID, purchaseHandler.Confirm)
	purchases.Post("/:id/cancel", validID, purchaseHandler.Cancel)

	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.Coordinator, deps.Documents, deps.Receipt)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/report", reportHandler.Sales)
	sales.Get("/:id", validID, saleHandler.GetByID)
	sales.Post("/:id/cancel", validID, saleHandler.Cancel)
	sales.Get("/:id/receipt", validID, saleHandler.Receipt)

	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.Credit)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/report", reportHandler.Customers)
	customers.Get("/:id", validID, customerHandler.GetByID)
	customers.Put("/:id", validID, customerHandler.Update)
	customers.Get("/:id/statement", validID, customerHandler.Statement)
	customers.Post("/:id/adjust-debt", validID, adminOnly, customerHandler.AdjustDebt)

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Put("/:id", validID, categoryHandler.Update)
	categories.Delete("/:id", validID, categoryHandler.Delete)

	financeHandler := NewFinanceHandler(deps.Finance)
	transactions := protected.Group("/transactions")
	transactions.Post("/", financeHandler.CreateTransaction)
	transactions.Get("/", financeHandler.ListTransactions)
	transactions.Get("/:id", validID, financeHandler.GetTransaction)
	transactions.Put("/:id", validID, financeHandler.UpdateTransaction)
	transactions.Delete("/:id", validID, financeHandler.DeleteTransaction)
	protected.Get("/balance", financeHandler.Balance)
	protected.Post("/balance/recompute", financeHandler.Recompute)
	protected.Get("/finance/dashboard", reportHandler.FinanceDashboard)
	protected.Get("/finance/summary", reportHandler.FinanceSummary)

	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	protected.Get("/dashboard/stats", dashboardHandler.GetStats)
}

// healthHandler responde 200 si todas las dependencias contestan; 503 si alguna falla.
func healthHandler(checks map[string]HealthCheck) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		status := fiber.StatusOK
		result := fiber.Map{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = fiber.StatusServiceUnavailable
				result[name] = err.Error()
				continue
			}
			result[name] = "ok"
		}
		state := "ok"
		if status != fiber.StatusOK {
			state = "degraded"
		}
		return c.Status(status).JSON(fiber.Map{"status": state, "checks": result})
	}
}
