package config_test

import (
	"testing"
	"time"

	"github.com/pitstop/oficina-api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "./oficina.db", cfg.Database.DSN)
	assert.Equal(t, 8*time.Hour, cfg.Auth.TokenExpiration)
	assert.True(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Contains(t, cfg.Auth.AllowedOrigins, "http://localhost:3000")
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("OFICINA_SERVER_PORT", "8080")
	t.Setenv("OFICINA_DATABASE_DRIVER", "postgres")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
}
