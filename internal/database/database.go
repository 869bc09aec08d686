package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Driver selects the backing record store.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

func (d Driver) sqlName() (string, error) {
	switch d {
	case DriverSQLite:
		return "sqlite", nil
	case DriverPostgres:
		return "pgx", nil
	}

	return "", fmt.Errorf("unsupported database driver %q", d)
}

// SQLiteDSN builds a modernc sqlite DSN with foreign keys enforced.
func SQLiteDSN(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

func New(driver Driver, dsn string) (*sql.DB, error) {
	name, err := driver.sqlName()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	switch driver {
	case DriverSQLite:
		// sqlite allows a single writer.
		db.SetMaxOpenConns(1)
	default:
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	return db, nil
}
