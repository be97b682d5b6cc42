package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/timeplan/internal/db"
)

// NewTestDB opens a migrated in-memory SQLite database that lives for the
// duration of t.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewUnitOfWork(database, db.DriverSQLite)
}
