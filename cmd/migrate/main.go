// migrate aplica las migraciones SQL embebidas (versión en schema_version, vía tern) y, con
// -admin-user, crea el primer super_admin si todavía no existe.
//
// Uso: go run ./cmd/migrate [-admin-user admin -admin-password secreto]
package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/jhoicas/stock-planner-api/internal/application/auth"
	"github.com/jhoicas/stock-planner-api/internal/application/dto"
	"github.com/jhoicas/stock-planner-api/internal/domain"
	"github.com/jhoicas/stock-planner-api/internal/domain/entity"
	"github.com/jhoicas/stock-planner-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-planner-api/pkg/config"
	"github.com/jhoicas/stock-planner-api/pkg/logger"
	"github.com/jhoicas/stock-planner-api/pkg/validator"
)

func main() {
	adminUser := flag.String("admin-user", "", "username del super_admin inicial (opcional)")
	adminPassword := flag.String("admin-password", os.Getenv("ADMIN_PASSWORD"), "contraseña del super_admin inicial (o ADMIN_PASSWORD)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool, log)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Strs("applied", applied).Msg("migraciones al día")

	if *adminUser == "" {
		return
	}
	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
		Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer,
	})
	in := dto.RegisterRequest{
		Username: *adminUser,
		Password: *adminPassword,
		Role:     entity.RoleSuperAdmin,
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		log.Fatal().Str("detalle", validator.Message(errs)).Msg("datos del super_admin inválidos")
	}
	user, err := authUC.RegisterUser(ctx, in)
	switch {
	case errors.Is(err, domain.ErrUsernameTaken):
		log.Info().Str("username", *adminUser).Msg("super_admin ya existe")
	case err != nil:
		log.Fatal().Err(err).Msg("crear super_admin")
	default:
		log.Info().Int64("id", user.ID).Str("username", user.Username).Msg("super_admin creado")
	}
}
