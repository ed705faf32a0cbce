package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quicknotes/internal/config"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, config.FileName+".yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(config.LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "fs", cfg.Store.Adapter)
	assert.True(t, cfg.Store.Seed)
	assert.Equal(t, "date-desc", cfg.List.Sort)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, slog.LevelInfo, cfg.Log.SlogLevel())
	assert.True(t, cfg.Profile.Joined().IsZero())
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
store:
  adapter: sqlite
  path: /tmp/notes.db
  seed: false
list:
  sort: title-asc
  show_archived: true
profile:
  display_name: Ada
  email: ada@example.com
  joined_at: "2025-12-01"
log:
  level: debug
`)

	t.Run("Search Dir", func(t *testing.T) {
		cfg, err := config.Load(config.LoadOptions{SearchDirs: []string{t.TempDir(), dir}})
		require.NoError(t, err)

		assert.Equal(t, "sqlite", cfg.Store.Adapter)
		assert.Equal(t, "/tmp/notes.db", cfg.Store.Path)
		assert.False(t, cfg.Store.Seed)
		assert.Equal(t, "title-asc", cfg.List.Sort)
		assert.Equal(t, "date-desc", cfg.List.LoadSort, "unset keys keep defaults")
		assert.True(t, cfg.List.ShowArchived)
		assert.Equal(t, "Ada", cfg.Profile.DisplayName)
		assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), cfg.Profile.Joined())
		assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
	})

	t.Run("Missing File In Search Dirs Is Fine", func(t *testing.T) {
		cfg, err := config.Load(config.LoadOptions{SearchDirs: []string{t.TempDir()}})
		require.NoError(t, err)
		assert.Equal(t, "fs", cfg.Store.Adapter)
	})

	t.Run("Explicit File Must Exist", func(t *testing.T) {
		_, err := config.Load(config.LoadOptions{File: filepath.Join(t.TempDir(), "nope.yaml")})
		assert.Error(t, err)
	})
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "store:\n  adapter: sqlite\n")
	t.Setenv("QUICKNOTES_STORE_ADAPTER", "memory")
	t.Setenv("QUICKNOTES_LIST_SORT", "title-desc")

	cfg, err := config.Load(config.LoadOptions{SearchDirs: []string{dir}})
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Adapter)
	assert.Equal(t, "title-desc", cfg.List.Sort)
}

func TestLoad_Validation(t *testing.T) {
	cases := map[string]string{
		"adapter":   "store:\n  adapter: postgres\n",
		"sort":      "list:\n  sort: newest\n",
		"email":     "profile:\n  email: not-an-email\n",
		"joined_at": "profile:\n  joined_at: yesterday\n",
		"log level": "log:\n  level: trace\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), body)
			_, err := config.Load(config.LoadOptions{File: path})
			assert.Error(t, err)
		})
	}
}
