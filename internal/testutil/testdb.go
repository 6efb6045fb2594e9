package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/examplan/internal/db"
)

// NewTestDB returns an in-memory planner database with the full schema
// migrated, closed automatically via t.Cleanup.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// NewTestUoW wraps a test database in the production unit of work.
func NewTestUoW(conn *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(conn)
}
