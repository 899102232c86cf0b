package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := writeEnvFile(t, "APP_PORT=9000\nAPP_ENV=production\nDB_DRIVER=mongo\nMONGO_DATABASE=clinic\nMETRICS_ENABLED=false\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, "production", cfg.App.Env)
	assert.False(t, cfg.App.IsDevelopment())
	assert.Equal(t, DriverMongo, cfg.DB.Driver)
	assert.Equal(t, "clinic", cfg.Mongo.Database)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.True(t, cfg.App.IsDevelopment())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "*", cfg.App.CORSOrigin)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeEnvFile(t, "APP_PORT=9000\n")
	t.Setenv("APP_PORT", "7070")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.App.Port)
}

func TestLoadConfig_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "cassandra")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
