// Crea el usuario admin inicial y puebla datos de ejemplo.
//
// Uso:
//
//	seed                 crea solo el admin
//	seed -sample         además genera catálogo y ventas de ejemplo
//	seed -sales 50       cantidad de ventas de ejemplo
package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/application/auth"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/sales"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/postgres"
	"github.com/jhoicas/PuntoVenta-api/pkg/config"
	"github.com/jhoicas/PuntoVenta-api/pkg/logger"
)

const (
	adminUsername = "admin"
	adminEmail    = "admin@puntoventa.local"
	adminPassword = "admin123" // cambiar tras el primer login
)

func main() {
	sample := flag.Bool("sample", false, "generar catálogo y ventas de ejemplo")
	salesCount := flag.Int("sales", 30, "cantidad de ventas de ejemplo")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		AccessTTL:  time.Duration(cfg.JWT.AccessMinutes) * time.Minute,
		RefreshTTL: time.Duration(cfg.JWT.RefreshDays) * 24 * time.Hour,
		Issuer:     cfg.JWT.Issuer,
	})

	adminID := ""
	out, err := authUC.Register(dto.RegisterRequest{
		Username:  adminUsername,
		Email:     adminEmail,
		Password:  adminPassword,
		FirstName: "Admin",
		LastName:  "User",
		Role:      entity.RoleAdmin,
	})
	switch {
	case err == nil:
		adminID = out.ID
		log.Info().Str("username", adminUsername).Msg("usuario admin creado")
	case errors.Is(err, domain.ErrDuplicate):
		existing, lookupErr := userRepo.GetByUsername(adminUsername)
		if lookupErr != nil || existing == nil {
			log.Fatal().Err(lookupErr).Msg("buscar admin existente")
		}
		adminID = existing.ID
		log.Info().Str("username", adminUsername).Msg("usuario admin ya existe")
	default:
		log.Fatal().Err(err).Msg("crear usuario admin")
	}

	if !*sample {
		return
	}

	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	sampleUC := sales.NewSampleDataUseCase(txRunner, categoryRepo, productRepo, cfg.App.Location())

	if err := sampleUC.Generate(ctx, adminID, *salesCount); err != nil {
		log.Fatal().Err(err).Msg("generar datos de ejemplo")
	}
	log.Info().Int("sales", *salesCount).Msg("datos de ejemplo generados")
}
