package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ARTIFACTS_DIR", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./artifacts", cfg.ArtifactsDir)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Contains(t, cfg.Accounts, "admin")
	assert.Contains(t, cfg.Accounts, "hr_manager")
	assert.Contains(t, cfg.Accounts, "financial")
	assert.Equal(t, 15750.0, cfg.ExchangeRates.USDToIDR)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ARTIFACTS_DIR", "/srv/models")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/srv/models", cfg.ArtifactsDir)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestLoadConfigFile(t *testing.T) {
	content := `
accounts:
  auditor:
    password_hash: "deadbeef"
    role: "auditor"
    permissions: ["dashboard"]
    display_name: "External Auditor"
exchange_rates:
  usd_to_idr: 16000
  as_of: "2025-06-01"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	auditor, ok := cfg.Accounts["auditor"]
	require.True(t, ok)
	assert.Equal(t, "auditor", auditor.Role)
	assert.True(t, auditor.HasPermission("dashboard"))

	// Built-in accounts survive a partial override.
	assert.Contains(t, cfg.Accounts, "admin")

	assert.Equal(t, 16000.0, cfg.ExchangeRates.USDToIDR)
	assert.Equal(t, 17200.0, cfg.ExchangeRates.EURToIDR)
	assert.Equal(t, "2025-06-01", cfg.ExchangeRates.AsOf)
}

func TestLoadConfigFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("accounts: [not a map"), 0o644))
		t.Setenv("CONFIG_FILE", path)
		_, err := Load()
		assert.Error(t, err)
	})
}
