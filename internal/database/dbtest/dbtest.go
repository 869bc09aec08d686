// Package dbtest opens migrated throwaway databases for store tests.
package dbtest

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocket/internal/database"
)

// SQLite returns a migrated sqlite database living in t's temp dir.
func SQLite(t *testing.T) *sql.DB {
	t.Helper()

	dsn := database.SQLiteDSN(filepath.Join(t.TempDir(), "pocket.db"))

	require.NoError(t, database.Migrate(database.DriverSQLite, dsn))

	db, err := database.New(database.DriverSQLite, dsn)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	return db
}
