// Package testhelper provides database fixtures for repository tests.
package testhelper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/heartmarshall/donorbase/internal/adapter/postgres"
)

// DSNEnv points the integration tests at an existing database instead of a
// throwaway container. The schema is migrated either way.
const DSNEnv = "DONORBASE_TEST_DSN"

var (
	prepare    sync.Once
	preparedDS string
	prepareErr error
)

// SetupTestDB returns a pool on a migrated database shared by the whole test
// binary. It skips under -short and when neither DSNEnv nor a container
// runtime is available.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("testhelper: database tests disabled by -short")
	}
	dsn := os.Getenv(DSNEnv)
	if dsn == "" {
		testcontainers.SkipIfProviderIsNotHealthy(t)
	}

	prepare.Do(func() {
		preparedDS, prepareErr = prepareDatabase(dsn)
	})
	if prepareErr != nil {
		t.Fatalf("testhelper: prepare database: %v", prepareErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, preparedDS)
	if err != nil {
		t.Fatalf("testhelper: open pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func prepareDatabase(dsn string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if dsn == "" {
		var err error
		if dsn, err = startPostgres(ctx); err != nil {
			return "", err
		}
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return "", fmt.Errorf("open migration pool: %w", err)
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := postgres.MigrateDB(ctx, db, slog.New(slog.NewTextHandler(io.Discard, nil))); err != nil {
		return "", fmt.Errorf("migrate: %w", err)
	}
	return dsn, nil
}

// startPostgres launches a disposable container. It is reaped by the
// testcontainers sidecar when the test process exits.
func startPostgres(ctx context.Context) (string, error) {
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "donorbase",
				"POSTGRES_PASSWORD": "donorbase",
				"POSTGRES_DB":       "donorbase_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start postgres container: %w", err)
	}

	endpoint, err := c.PortEndpoint(ctx, "5432/tcp", "")
	if err != nil {
		return "", fmt.Errorf("postgres endpoint: %w", err)
	}
	return fmt.Sprintf("postgres://donorbase:donorbase@%s/donorbase_test?sslmode=disable", endpoint), nil
}
