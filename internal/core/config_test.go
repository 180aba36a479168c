package core_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timada-org/todo/internal/core"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := core.NewConfig("")
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, "memory", cfg.Store.Driver)
		assert.True(t, cfg.Metrics.Enabled)
	})

	t.Run("file and local overlay", func(t *testing.T) {
		dir := t.TempDir()
		path := write(t, dir, "config.yml", `
addr: ":9090"
store:
  driver: sqlite
  dsn: /var/lib/todo/todos.db
log:
  level: debug
`)
		write(t, dir, "config.local.yml", `
addr: ":9191"
`)

		cfg, err := core.NewConfig(path)
		require.NoError(t, err)
		assert.Equal(t, ":9191", cfg.Addr)
		assert.Equal(t, "sqlite", cfg.Store.Driver)
		assert.Equal(t, "/var/lib/todo/todos.db", cfg.Store.DSN)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "/metrics", cfg.Metrics.Path)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := core.NewConfig(filepath.Join(t.TempDir(), "nope.yml"))
		assert.Error(t, err)
	})

	t.Run("metrics path under todo routes", func(t *testing.T) {
		for _, path := range []string{"/todos", "/todos/metrics"} {
			cfg := core.DefaultConfig()
			cfg.Metrics.Path = path
			assert.Error(t, cfg.Validate(), path)
		}

		cfg := core.DefaultConfig()
		cfg.Metrics.Enabled = false
		cfg.Metrics.Path = "/todos/metrics"
		assert.NoError(t, cfg.Validate())

		cfg = core.DefaultConfig()
		cfg.Metrics.Path = "/todosmetrics"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("unknown driver", func(t *testing.T) {
		path := write(t, t.TempDir(), "config.yml", "store:\n  driver: redis\n")
		_, err := core.NewConfig(path)
		assert.Error(t, err)
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := core.NewLogger(core.Log{Level: "warn", Format: "json"}, &buf)
	logger.Info("hidden")
	logger.Warn("shown", "id", "abc")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.Contains(out, `"msg":"shown"`))
	assert.Contains(t, out, `"id":"abc"`)
}
