package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
user = "scheduler"

[redis]
addr = "redis:6379"

[notifier]
driver = "redis"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "scheduling:notifications", cfg.Notifier.QueueKey)
	assert.Equal(t, "host=db port=5432 user=scheduler password= dbname=scheduling sslmode=disable", cfg.Database.DSN())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `[database]
host = "db"
`)
	other := writeConfig(t, `[server]
http_port = 7070
`)

	t.Setenv(PathEnv, other)
	t.Setenv(envDBPassword, "secret")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.HTTPPort)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "secret", cfg.Database.Password)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `[server`))
	assert.Error(t, err)

	t.Setenv(envHTTPPort, "http")
	_, err = Load(writeConfig(t, ``))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"port":           func(c *Config) { c.Server.HTTPPort = 0 },
		"db name":        func(c *Config) { c.Database.DBName = "" },
		"pool":           func(c *Config) { c.Database.MaxOpenConns = 0 },
		"metrics path":   func(c *Config) { c.Metrics.Path = "" },
		"rate limit":     func(c *Config) { c.RateLimit.Burst = 0 },
		"http notifier":  func(c *Config) { c.Notifier.Driver = "http" },
		"redis notifier": func(c *Config) { c.Notifier.Driver = "redis" },
		"unknown driver": func(c *Config) { c.Notifier.Driver = "smtp" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	assert.NoError(t, Default().Validate())
}
