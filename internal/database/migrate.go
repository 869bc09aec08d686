package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate applies all pending migrations for the driver. It uses its own
// connection so closing the migrator never closes the application pool.
func Migrate(driver Driver, dsn string) error {
	name, err := driver.sqlName()
	if err != nil {
		return err
	}

	migrateDB, err := sql.Open(name, dsn)
	if err != nil {
		return fmt.Errorf("opening migration database: %w", err)
	}
	defer migrateDB.Close()

	var instance migratedb.Driver

	switch driver {
	case DriverSQLite:
		instance, err = sqlite.WithInstance(migrateDB, &sqlite.Config{})
	case DriverPostgres:
		instance, err = pgx.WithInstance(migrateDB, &pgx.Config{})
	}

	if err != nil {
		return fmt.Errorf("creating %s migration driver: %w", driver, err)
	}

	src, err := iofs.New(migrationsFS, "migrations/"+string(driver))
	if err != nil {
		return fmt.Errorf("creating migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(driver), instance)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}
