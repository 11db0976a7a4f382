package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	Reset()
	t.Setenv("TAGSTORE_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, DefaultQueryLimit, cfg.Query.DefaultLimit)
	assert.Equal(t, DefaultMaxLimit, cfg.Query.MaxLimit)
	assert.False(t, cfg.Log.JSON)

	Reset()
}

func TestEnvOverridesDatabasePath(t *testing.T) {
	Reset()
	t.Setenv("TAGSTORE_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("TAGSTORE_DATABASE_PATH", "/tmp/override.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/override.db", cfg.Database.Path)

	Reset()
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := &Config{
		Database: DatabaseConfig{Path: "/data/registry.db"},
		Query:    QueryConfig{DefaultLimit: 25, MaxLimit: 500},
		Log:      LogConfig{JSON: true},
	}

	require.NoError(t, SaveTo(cfg, path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Database.Path, loaded.Database.Path)
	assert.Equal(t, cfg.Query.DefaultLimit, loaded.Query.DefaultLimit)
	assert.Equal(t, cfg.Query.MaxLimit, loaded.Query.MaxLimit)
	assert.True(t, loaded.Log.JSON)
}

func TestSaveKeepsBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	first := &Config{Database: DatabaseConfig{Path: "first.db"}}
	require.NoError(t, SaveTo(first, path))

	second := &Config{Database: DatabaseConfig{Path: "second.db"}}
	require.NoError(t, SaveTo(second, path))

	backup, err := os.ReadFile(path + ".back")
	require.NoError(t, err)
	assert.Contains(t, string(backup), "first.db")
}

func TestNormalize(t *testing.T) {
	cfg := &Config{
		Query: QueryConfig{DefaultLimit: -1, MaxLimit: 0},
	}
	cfg.Normalize()

	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, DefaultQueryLimit, cfg.Query.DefaultLimit)
	assert.Equal(t, DefaultMaxLimit, cfg.Query.MaxLimit)

	cfg = &Config{
		Database: DatabaseConfig{Path: "x.db"},
		Query:    QueryConfig{DefaultLimit: 5000, MaxLimit: 100},
	}
	cfg.Normalize()
	assert.Equal(t, 100, cfg.Query.DefaultLimit)
}
