// Aplica las migraciones de esquema embebidas en el binario.
//
// Uso:
//
//	migrate        aplica todas las migraciones pendientes
//	migrate -down  revierte la última migración
package main

import (
	"errors"
	"flag"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jhoicas/PuntoVenta-api/migrations"
	"github.com/jhoicas/PuntoVenta-api/pkg/config"
	"github.com/jhoicas/PuntoVenta-api/pkg/logger"
)

func main() {
	down := flag.Bool("down", false, "revertir la última migración")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		log.Fatal().Err(err).Msg("leer migraciones embebidas")
	}

	migrator, err := migrate.NewWithSourceInstance("iofs", source, pgxURL(cfg.DB.ConnectionString()))
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar migrador")
	}
	defer func() {
		_, _ = migrator.Close()
	}()

	if *down {
		err = migrator.Steps(-1)
	} else {
		err = migrator.Up()
	}
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Msg("esquema ya al día")
			return
		}
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}
	log.Info().Bool("down", *down).Msg("migraciones aplicadas")
}

// pgxURL fuerza el scheme que espera el driver pgx/v5 de golang-migrate.
func pgxURL(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") {
		return "pgx5://" + strings.TrimPrefix(dsn, "postgres://")
	}
	if strings.HasPrefix(dsn, "postgresql://") {
		return "pgx5://" + strings.TrimPrefix(dsn, "postgresql://")
	}
	return dsn
}
