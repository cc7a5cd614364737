package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleToml = `
[development]
port = 9000
storage_backend = "memory"
log_level = "debug"
streak_queue_size = 10

[production]
port = 8080
storage_backend = "postgres"
db_host = "db"
db_user = "kanso"
db_password = "secret"
db_name = "kanso_fit"
redis_host = "redis"
jwt_secret = "prod-secret"
log_json = true
`

func writeToml(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleToml), 0o600))
	return path
}

func TestLoad_Development(t *testing.T) {
	cfg, err := Load(writeToml(t), "dev")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 10, cfg.StreakQueueSize)
	assert.Equal(t, 100, cfg.RateLimitPerMinute, "defaults fill unset keys")
	assert.False(t, cfg.RedisEnabled())
}

func TestLoad_ProductionWithEnvOverride(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("DB_PASSWORD", "from-env")

	cfg, err := Load(writeToml(t), "production")
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 7070, cfg.Port)
	assert.True(t, cfg.RedisEnabled())
	assert.True(t, cfg.LogJSON)
	assert.Equal(t, "postgres://kanso:from-env@db:5432/kanso_fit?sslmode=disable", cfg.DSN())
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "MEMORY")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")

	cfg, err := Load("", "")
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	assert.Equal(t, 100, cfg.RateLimitPerMinute)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"), "dev")
	assert.Error(t, err)

	_, err = Load(writeToml(t), "staging")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{Env: "development", StorageBackend: StorageMemory}
		c.applyDefaults()
		return c
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"Postgres without credentials", func(c *Config) { c.StorageBackend = StoragePostgres }},
		{"Unknown backend", func(c *Config) { c.StorageBackend = "file" }},
		{"Production without secret", func(c *Config) { c.Env = "production" }},
		{"Bad port", func(c *Config) { c.Port = 70000 }},
		{"Zero queue", func(c *Config) { c.StreakQueueSize = -1 }},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
