package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source driver
)

// RunMigrations applies every pending migration found at source
// (e.g. "file://internal/infrastructure/postgres/migrations"). Being already
// up to date is not an error.
func RunMigrations(dsn, source string) error {
	m, err := migrate.New(source, dsn)
	if err != nil {
		return fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: run migrations up: %w", err)
	}
	return nil
}
