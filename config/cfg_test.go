package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFile(t *testing.T) {
	cfg, err := LoadConfig("config.toml")
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.Dashboard.Source)
	assert.Equal(t, 30, cfg.Dashboard.DayMaxDays)
	assert.Equal(t, 90, cfg.Dashboard.WeekMaxDays)
	assert.Equal(t, "Europe/Kyiv", cfg.Dashboard.Timezone)
	assert.Equal(t, 41.5, cfg.Rates.UsdToLocal)
	assert.Equal(t, 10*time.Second, cfg.AdSpend.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, []string{"https://admin.example.com"}, cfg.HTTP.AllowedOrigins)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("DASHBOARD_SOURCE", "mongo")
	t.Setenv("AUTH_JWT_SECRET", "from-env")
	t.Setenv("CACHE_BACKEND", "redis")

	cfg, err := LoadConfig("config.toml")
	require.NoError(t, err)
	assert.Equal(t, "mongo", cfg.Dashboard.Source)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "redis", cfg.Cache.Backend)
}

func TestLoadConfigDefaultsAndDSN(t *testing.T) {
	empty := filepath.Join(t.TempDir(), "empty.toml")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))

	t.Setenv("MYSQL_HOST", "db")
	t.Setenv("MYSQL_USER", "u")
	t.Setenv("MYSQL_PASSWORD", "p")
	t.Setenv("MYSQL_DATABASE", "retail")

	cfg, err := LoadConfig(empty)
	require.NoError(t, err)
	assert.Equal(t, "u:p@tcp(db:3306)/retail?charset=utf8&parseTime=true", cfg.DB.DSN)
	assert.Equal(t, 30, cfg.Dashboard.DayMaxDays)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, "UTC", cfg.Dashboard.Timezone)
}
