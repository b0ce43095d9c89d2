package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config that passes Validate after defaults.
func validConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultRedisAddr, cfg.Redis.Addr)
	assert.Equal(t, DefaultResourcesDir, cfg.Resources.Dir)
	assert.Equal(t, "fs", cfg.Resources.Source)
	assert.Equal(t, DefaultChEBIBaseURL, cfg.Remote.ChEBIBaseURL)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)

	// Explicit values win over defaults.
	cfg2 := &Config{Server: ServerConfig{Port: 9999}}
	ApplyDefaults(cfg2)
	assert.Equal(t, 9999, cfg2.Server.Port)

	// Nil is a no-op.
	ApplyDefaults(nil)
}

func TestValidate(t *testing.T) {
	t.Run("defaulted config is valid", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("rejects out-of-range port", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.Port = 70000
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects unknown resources source", func(t *testing.T) {
		cfg := validConfig()
		cfg.Resources.Source = "ftp"
		assert.Error(t, cfg.Validate())
	})

	t.Run("minio source requires bucket", func(t *testing.T) {
		cfg := validConfig()
		cfg.Resources.Source = "minio"
		assert.Error(t, cfg.Validate())

		cfg.MinIO.Bucket = "bioground-resources"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("remote fallback requires endpoint and rate", func(t *testing.T) {
		cfg := validConfig()
		cfg.Remote.Enabled = true
		cfg.Remote.ChEBIBaseURL = ""
		assert.Error(t, cfg.Validate())

		cfg.Remote.ChEBIBaseURL = "https://example.org/chebi"
		cfg.Remote.RatePerSecond = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects invalid log level", func(t *testing.T) {
		cfg := validConfig()
		cfg.Log.Level = "verbose"
		assert.Error(t, cfg.Validate())
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 8181
  mode: debug
resources:
  dir: /data/resources
  grounding_map_path: /data/grounding_map.csv
redis:
  addr: redis.internal:6379
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "/data/resources", cfg.Resources.Dir)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr)
	assert.Equal(t, "console", cfg.Log.Format)
	// Unset sections fall back to defaults.
	assert.Equal(t, DefaultDBHost, cfg.Database.Host)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BIOGROUND_REDIS_ADDR", "cache.internal:6380")
	t.Setenv("BIOGROUND_LOG_LEVEL", "warn")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "cache.internal:6380", cfg.Redis.Addr)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestMustLoadPanics(t *testing.T) {
	assert.Panics(t, func() { MustLoad("/nonexistent/config.yaml") })
}

//Personal.AI order the ending
