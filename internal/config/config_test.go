package config

import (
	"os"
	"path/filepath"
	"testing"

	"motorent/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  path: data/test.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "motorent", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, models.DefaultSessionTTL, cfg.Sessions.TTLSeconds)
	assert.Equal(t, models.MaxRentalDays, cfg.Rental.MaxRentalDays)
	assert.Equal(t, 365, cfg.Rental.MaxAdvanceDays)
	assert.Equal(t, "1h", cfg.Rental.SweepInterval)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
	assert.Equal(t, "exports", cfg.Exports.Path)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_DB_PATH", "/tmp/env.db")
	t.Setenv("TEST_REDIS_ADDR", "redis:6379")

	path := writeConfig(t, `
database:
  path: ${TEST_DB_PATH}
redis:
  address: ${TEST_REDIS_ADDR}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.db", cfg.Database.Path)
	assert.Equal(t, "redis:6379", cfg.Redis.Address)
}

func TestLoadRequiresDatabasePath(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadBootstrapValidation(t *testing.T) {
	path := writeConfig(t, `
database:
  path: data/test.db
bootstrap:
  admin_email: admin@example.com
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
