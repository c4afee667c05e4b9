// migrate aplica o revierte el esquema embebido sin levantar la API.
//
// Uso: go run ./cmd/migrate [up|down|version]
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/petshop-api/internal/infrastructure/postgres"
	"github.com/jhoicas/petshop-api/pkg/config"
	"github.com/jhoicas/petshop-api/pkg/logger"
)

func main() {
	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	m, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("preparar migraciones")
	}
	defer m.Close()

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "version":
		v, dirty, verr := m.Version()
		if verr == nil {
			fmt.Printf("version=%d dirty=%t\n", v, dirty)
		}
		err = verr
	default:
		fmt.Fprintf(os.Stderr, "comando desconocido %q (up|down|version)\n", cmd)
		os.Exit(2)
	}
	if err != nil {
		log.Error().Err(err).Str("cmd", cmd).Msg("migración fallida")
		os.Exit(1)
	}
}
