// Comando seed_admin: crea el usuario administrador inicial si no existe.
//
// Uso:
//
//	go run ./cmd/seed_admin
//	SEED_ADMIN_EMAIL=otro@gudang.local SEED_ADMIN_PASSWORD=... go run ./cmd/seed_admin
package main

import (
	"context"
	"os"
	"time"

	"github.com/jhoicas/kitchen-inventory-api/internal/application/usecase"
	"github.com/jhoicas/kitchen-inventory-api/internal/infrastructure/postgres"
	"github.com/jhoicas/kitchen-inventory-api/pkg/config"
	"github.com/jhoicas/kitchen-inventory-api/pkg/logger"
)

const (
	defaultAdminName     = "Administrator"
	defaultAdminEmail    = "admin@gudang.local"
	defaultAdminPassword = "Admin123!"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	email := envOr("SEED_ADMIN_EMAIL", defaultAdminEmail)
	password := envOr("SEED_ADMIN_PASSWORD", defaultAdminPassword)

	uc := usecase.NewUserUseCase(postgres.NewUserRepository(pool))
	created, err := uc.EnsureAdmin(ctx, envOr("SEED_ADMIN_NAME", defaultAdminName), email, password)
	if err != nil {
		log.Fatal().Err(err).Str("email", email).Msg("crear administrador")
	}
	if !created {
		log.Info().Str("email", email).Msg("el administrador ya existe, nada que hacer")
		return
	}
	log.Info().Str("email", email).Msg("administrador creado")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
