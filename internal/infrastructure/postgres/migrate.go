package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/tern/v2/migrate"
	"github.com/jhoicas/stock-planner-api/pkg/logger"
)

// VersionTable guarda la versión de esquema aplicada.
const VersionTable = "schema_version"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations devuelve las migraciones embebidas como fs.FS con los .sql en la raíz.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// Migrate lleva el esquema a la última versión con tern. Toma un advisory lock, así que dos
// ejecuciones simultáneas no aplican la misma migración. Devuelve los nombres aplicados.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) ([]string, error) {
	if log == nil {
		log = logger.Nop()
	}
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, storageErr("acquire migration conn", err)
	}
	defer conn.Release()

	m, err := migrate.NewMigrator(ctx, conn.Conn(), VersionTable)
	if err != nil {
		return nil, storageErr("crear migrador", err)
	}
	if err := m.LoadMigrations(Migrations()); err != nil {
		return nil, fmt.Errorf("cargar migraciones: %w", err)
	}

	var applied []string
	m.OnStart = func(sequence int32, name, direction, _ string) {
		log.Info().Int32("version", sequence).Str("name", name).Str("direction", direction).Msg("aplicando migración")
		applied = append(applied, name)
	}
	if err := m.Migrate(ctx); err != nil {
		return applied, storageErr("migrar", err)
	}
	return applied, nil
}
