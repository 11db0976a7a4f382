package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beamline/tagstore/errors"
)

func TestIsDuplicateKey(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	database, err := OpenWithMigrations(dbPath, nil)
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(
		"INSERT INTO tag_sources (uid, type, name, created_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)",
		"src-1", "model", "peak-finder")
	require.NoError(t, err)

	// Same primary key again
	_, err = database.Exec(
		"INSERT INTO tag_sources (uid, type, name, created_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)",
		"src-1", "model", "peak-finder")
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))
	assert.False(t, IsUnavailable(err))
}

func TestIsUnavailableOnClosedDB(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	database, err := OpenWithMigrations(dbPath, nil)
	require.NoError(t, err)
	database.Close()

	_, err = database.Exec("SELECT 1")
	require.Error(t, err)
	assert.True(t, IsUnavailable(err))
}

func TestMapError(t *testing.T) {
	assert.NoError(t, MapError(nil, "insert dataset", "dataset", "d-1"))

	mapped := MapError(errors.New("sql: database is closed"), "find datasets", "dataset", "")
	assert.True(t, errors.IsStoreUnavailable(mapped))
	assert.Contains(t, mapped.Error(), "find datasets")

	plain := MapError(errors.New("syntax error"), "find datasets", "dataset", "")
	assert.False(t, errors.IsStoreUnavailable(plain))
	assert.False(t, errors.IsDuplicateKey(plain))
}
