package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Equal(t, "changeme123", cfg.DefaultResetPassword)
	assert.True(t, cfg.MigrateOnStart)
	assert.Empty(t, cfg.SessionKey)
}

func TestLoadFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "PORT=9090\nDB_NAME=school\nLOG_LEVEL=debug\nMIGRATE_ON_START=false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Cleanup(func() {
		for _, k := range []string{"PORT", "DB_NAME", "LOG_LEVEL", "MIGRATE_ON_START"} {
			os.Unsetenv(k)
		}
	})

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "school", cfg.DB.DBName)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.False(t, cfg.MigrateOnStart)
}

func TestLoadRejectsBadCSRFKey(t *testing.T) {
	t.Setenv("CSRF_KEY", "short")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoadRejectsShortResetPassword(t *testing.T) {
	t.Setenv("DEFAULT_RESET_PASSWORD", "123")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=1234 dbname=gameadmin sslmode=disable",
		cfg.DB.DSN())
}
