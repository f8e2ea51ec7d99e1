// Package dbtest opens throwaway SQLite databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Tocea2003/Practica-BookSystem/internal/config"
	"github.com/Tocea2003/Practica-BookSystem/internal/database"
)

// New returns a migrated, empty database in the test's temp dir. It is
// closed automatically when the test finishes.
func New(t testing.TB) *database.Database {
	return open(t, false)
}

// NewSeeded is like New but loads the reference catalog.
func NewSeeded(t testing.TB) *database.Database {
	return open(t, true)
}

func open(t testing.TB, seed bool) *database.Database {
	t.Helper()

	db, err := database.NewDatabase(config.Database{
		Driver:   config.DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "library_test.db"),
		LogLevel: "silent",
		Seed:     seed,
	})
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })
	return db
}
