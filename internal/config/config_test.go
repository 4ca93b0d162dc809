package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.NotEmpty(t, cfg.Database.DSN)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 1, cfg.AutoTag.Concurrency)
	assert.True(t, cfg.AutoTag.ApplyOnCreate)
	assert.False(t, cfg.RedisEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corkcount.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  driver: postgres
  dsn: postgres://localhost/corkcount
redis:
  address: localhost:6379
autotag:
  concurrency: 4
  apply_on_create: false
log:
  level: debug
  format: json
`), 0o600))
	t.Setenv("CORKCOUNT_SERVER_PORT", "9090")
	t.Setenv("CORKCOUNT_AUTOTAG_CONCURRENCY", "6")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/corkcount", cfg.Database.DSN)
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 6, cfg.AutoTag.Concurrency)
	assert.False(t, cfg.AutoTag.ApplyOnCreate)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func validConfig() *Config {
	cfg := &Config{}
	cfg.Database.Driver = DriverSQLite
	cfg.Database.DSN = ":memory:"
	cfg.Server.Port = 8080
	cfg.AutoTag.Concurrency = 1
	cfg.Log.Format = "text"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "database.driver"},
		{"missing dsn", func(c *Config) { c.Database.DSN = "" }, "database.dsn"},
		{"redis without queues", func(c *Config) {
			c.Redis.Address = "localhost:6379"
			c.Worker.Concurrency = 2
		}, "worker.queues"},
		{"redis without concurrency", func(c *Config) {
			c.Redis.Address = "localhost:6379"
			c.Worker.Queues = map[string]int{"autotag": 1}
		}, "worker.concurrency"},
		{"bad queue priority", func(c *Config) {
			c.Redis.Address = "localhost:6379"
			c.Worker.Concurrency = 2
			c.Worker.Queues = map[string]int{"autotag": 0}
		}, "priority"},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"zero autotag concurrency", func(c *Config) { c.AutoTag.Concurrency = 0 }, "autotag.concurrency"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
