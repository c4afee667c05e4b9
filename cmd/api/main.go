package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/petshop-api/internal/application/auth"
	"github.com/jhoicas/petshop-api/internal/application/catalog"
	"github.com/jhoicas/petshop-api/internal/application/credit"
	"github.com/jhoicas/petshop-api/internal/application/finance"
	"github.com/jhoicas/petshop-api/internal/application/inventory"
	"github.com/jhoicas/petshop-api/internal/application/reports"
	"github.com/jhoicas/petshop-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/petshop-api/internal/infrastructure/pdf"
	"github.com/jhoicas/petshop-api/internal/infrastructure/postgres"
	"github.com/jhoicas/petshop-api/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/petshop-api/internal/interfaces/http"
	"github.com/jhoicas/petshop-api/pkg/config"
	"github.com/jhoicas/petshop-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	if cfg.DB.AutoMigrate {
		migrator, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log)
		if err != nil {
			log.Fatal().Err(err).Msg("preparar migraciones")
		}
		if err := migrator.Up(); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		_ = migrator.Close()
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	health := map[string]httpRouter.HealthCheck{
		"postgres": pool.Ping,
	}

	// Redis es opcional: sin REDIS_ADDR el dashboard se calcula en cada petición.
	var dashCache reports.Cache
	if cfg.Redis.Enabled() {
		client, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, dashboard sin cache")
		} else {
			defer client.Close()
			redisCache := cache.NewRedisCache(client, log)
			dashCache = redisCache
			health["redis"] = redisCache.Ping
		}
	}

	repos := postgres.NewRepositories(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	dashboardUC := reports.NewDashboardUseCase(reportRepo, dashCache, cfg.Redis.DashboardTTL, log)
	coordinator := inventory.NewCoordinator(txRunner, dashboardUC, log)
	productUC := catalog.NewProductUseCase(repos, coordinator)
	supplierUC := catalog.NewSupplierUseCase(repos.Suppliers)
	categoryUC := catalog.NewCategoryUseCase(repos.Categories)
	creditSvc := credit.NewService(txRunner, repos.Customers, repos.Sales, dashboardUC, log)
	financeSvc := finance.NewService(txRunner, repos, log)
	stockReportUC := reports.NewStockReportUseCase(reportRepo, spreadsheet.NewXLSXExporter())
	analyticsUC := reports.NewAnalyticsUseCase(reportRepo, financeSvc)

	// PDF: comprobante de venta para imprimir en caja
	receiptUC := reports.NewReceiptUseCase(repos, infrapdf.NewMarotoReceiptGenerator(), cfg.App.StoreName)

	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if cfg.Admin.Email != "" {
		created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			log.Fatal().Err(err).Msg("crear administrador inicial")
		}
		if created {
			log.Info().Str("email", cfg.Admin.Email).Msg("administrador inicial creado")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.AccessLog(log))
	app.Use(httpRouter.RateLimit(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.DocsPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.DocsPath,
			Path:     "docs",
			Title:    "PetShop API",
		}))
	} else {
		log.Warn().Str("path", cfg.HTTP.DocsPath).Msg("swagger.json no encontrado, /docs desactivado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		SupplierUC:  supplierUC,
		CategoryUC:  categoryUC,
		Coordinator: coordinator,
		Documents:   inventory.NewQueries(repos.Purchases, repos.Sales),
		Credit:      creditSvc,
		Finance:     financeSvc,
		Dashboard:   dashboardUC,
		StockReport: stockReportUC,
		Receipt:     receiptUC,
		Analytics:   analyticsUC,
		Health:      health,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
