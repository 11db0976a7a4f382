// Package testutil provides shared helpers for storage tests.
package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/beamline/tagstore/db"
)

// SetupTestDB opens a fresh migrated SQLite database in a per-test
// temp directory. The handle is closed automatically at test cleanup.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tagstore_test.db")
	database, err := db.OpenWithMigrations(path, nil)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		database.Close()
	})
	return database
}
