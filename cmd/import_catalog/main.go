// import_catalog carga productos desde una planilla CSV usando los mismos casos de uso de la API,
// de modo que el stock inicial queda registrado como movimiento INITIAL_STOCK.
//
// Uso: go run ./cmd/import_catalog [-latin1] [-dry-run] productos.csv
//
// Cabecera: nombre;categoria;codigo;unidad;costo;precio;minimo;stock;granel;notas
// Las categorías que no existan se crean como PRODUCT.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jhoicas/petshop-api/internal/application/catalog"
	"github.com/jhoicas/petshop-api/internal/application/dto"
	"github.com/jhoicas/petshop-api/internal/application/inventory"
	"github.com/jhoicas/petshop-api/internal/domain"
	"github.com/jhoicas/petshop-api/internal/domain/entity"
	"github.com/jhoicas/petshop-api/internal/domain/repository"
	"github.com/jhoicas/petshop-api/internal/infrastructure/memory"
	"github.com/jhoicas/petshop-api/internal/infrastructure/postgres"
	"github.com/jhoicas/petshop-api/pkg/config"
	"github.com/jhoicas/petshop-api/pkg/logger"
)

func main() {
	latin1 := flag.Bool("latin1", false, "el archivo está en ISO-8859-1")
	dryRun := flag.Bool("dry-run", false, "valida en memoria sin escribir en la base")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: import_catalog [-latin1] [-dry-run] productos.csv")
		os.Exit(2)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, err := readRows(f, *latin1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	if *dryRun {
		// Contra el almacén en memoria: mismas validaciones que la importación real.
		store := memory.New()
		created, skipped, err := importRows(context.Background(), store.Repositories(), store, rows, logger.Nop())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Validar: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%d productos válidos, %d omitidos\n", created, skipped)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	created, skipped, err := importRows(ctx, postgres.NewRepositories(pool), postgres.NewTxRunner(pool), rows, log)
	if err != nil {
		log.Fatal().Err(err).Msg("importación interrumpida")
	}
	log.Info().Int("created", created).Int("skipped", skipped).Msg("importación terminada")
}

// importRows da de alta categorías faltantes y productos. Filas duplicadas o inválidas se omiten;
// cualquier otro error corta la importación.
func importRows(ctx context.Context, repos repository.Repositories, tx repository.TxRunner, rows []catalogRow, log *logger.Logger) (created, skipped int, err error) {
	coordinator := inventory.NewCoordinator(tx, nil, log)
	products := catalog.NewProductUseCase(repos, coordinator)
	categories := catalog.NewCategoryUseCase(repos.Categories)

	categoryIDs, err := loadCategories(ctx, categories)
	if err != nil {
		return 0, 0, fmt.Errorf("listar categorías: %w", err)
	}
	for _, row := range rows {
		key := strings.ToLower(row.Category)
		id, ok := categoryIDs[key]
		if !ok {
			c, err := categories.Create(ctx, "", dto.CategoryRequest{Name: row.Category, Kind: entity.CategoryProduct})
			if err != nil {
				return created, skipped, fmt.Errorf("línea %d: crear categoría %q: %w", row.Line, row.Category, err)
			}
			id = c.ID
			categoryIDs[key] = id
		}
		row.Product.CategoryID = id
		if _, err := products.Create(ctx, "", row.Product); err != nil {
			if errors.Is(err, domain.ErrDuplicate) || errors.Is(err, domain.ErrInvalidInput) {
				log.Warn().Err(err).Int("line", row.Line).Str("product", row.Product.Name).Msg("producto omitido")
				skipped++
				continue
			}
			return created, skipped, fmt.Errorf("línea %d: crear producto: %w", row.Line, err)
		}
		created++
	}
	return created, skipped, nil
}

func loadCategories(ctx context.Context, uc *catalog.CategoryUseCase) (map[string]string, error) {
	list, err := uc.List(ctx, "", entity.CategoryProduct)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(list))
	for _, c := range list {
		out[strings.ToLower(c.Name)] = c.ID
	}
	return out, nil
}
