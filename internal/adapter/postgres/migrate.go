package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations returns the embedded goose migration files.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		panic(err) // embedded path is fixed at compile time
	}
	return sub
}

// Migrate applies all pending migrations to the database behind dsn.
// goose needs a database/sql handle, so a short-lived *sql.DB is opened
// through the pgx stdlib driver.
func Migrate(ctx context.Context, dsn string, logger *slog.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration db: %w", err)
	}
	defer db.Close()

	return MigrateDB(ctx, db, logger)
}

// MigrateDB applies all pending migrations using an existing handle.
func MigrateDB(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, Migrations())
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	for _, r := range results {
		logger.Info("migration applied",
			slog.Int64("version", r.Source.Version),
			slog.Duration("duration", r.Duration),
		)
	}
	return nil
}

// MigrationStatus reports the applied state of every known migration.
func MigrationStatus(ctx context.Context, dsn string) ([]*goose.MigrationStatus, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open migration db: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, Migrations())
	if err != nil {
		return nil, fmt.Errorf("goose new provider: %w", err)
	}
	return provider.Status(ctx)
}

// Rollback reverts the most recently applied migration.
func Rollback(ctx context.Context, dsn string) (*goose.MigrationResult, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open migration db: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, Migrations())
	if err != nil {
		return nil, fmt.Errorf("goose new provider: %w", err)
	}
	return provider.Down(ctx)
}
