package db

import (
	"database/sql"
	"testing"
)

// NewTestDB creates a fresh in-memory SQLite database with the schema applied.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := OpenWithSchema(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	// Each pooled connection to :memory: would get its own database.
	db.SetMaxOpenConns(1)

	t.Cleanup(func() { db.Close() })

	return db
}
