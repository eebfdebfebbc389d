package testutil

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/bibbank/offer-engine/pkg/postgres"
)

// PostgresContainer wraps a testcontainers PostgreSQL instance.
type PostgresContainer struct {
	Container *tcpostgres.PostgresContainer
	Pool      *pgxpool.Pool
	DSN       string
}

// NewTestPostgres starts PostgreSQL, applies the offer engine migrations and
// registers cleanup with t.
func NewTestPostgres(t *testing.T) *PostgresContainer {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	pc := &PostgresContainer{Container: pgContainer}
	t.Cleanup(func() { pc.cleanup(t) })

	pc.DSN, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}
	if err := postgres.RunMigrations(pc.DSN, MigrationsSource()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	pc.Pool, err = pgxpool.New(ctx, pc.DSN)
	if err != nil {
		t.Fatalf("failed to create pgxpool: %v", err)
	}
	if err := pc.Pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping postgres: %v", err)
	}
	return pc
}

// MigrationsSource is the golang-migrate file source of the repository's
// SQL migrations.
func MigrationsSource() string {
	_, file, _, _ := runtime.Caller(0)
	root := filepath.Join(filepath.Dir(file), "..", "..")
	return "file://" + filepath.ToSlash(filepath.Join(root, "internal", "infrastructure", "postgres", "migrations"))
}

func (pc *PostgresContainer) cleanup(t *testing.T) {
	if pc.Pool != nil {
		pc.Pool.Close()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := pc.Container.Terminate(ctx); err != nil {
		t.Logf("warning: failed to terminate postgres container: %v", err)
	}
}
