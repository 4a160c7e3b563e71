package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BIZTIME_PRIMARY__ENV", "local")
	t.Setenv("BIZTIME_SERVER__PORT", "8080")
	t.Setenv("BIZTIME_SERVER__READ_TIMEOUT", "30")
	t.Setenv("BIZTIME_SERVER__WRITE_TIMEOUT", "30")
	t.Setenv("BIZTIME_SERVER__IDLE_TIMEOUT", "60")
	t.Setenv("BIZTIME_SERVER__CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	t.Setenv("BIZTIME_DATABASE__HOST", "localhost")
	t.Setenv("BIZTIME_DATABASE__PORT", "5432")
	t.Setenv("BIZTIME_DATABASE__USER", "postgres")
	t.Setenv("BIZTIME_DATABASE__PASSWORD", "secret")
	t.Setenv("BIZTIME_DATABASE__NAME", "biztime")
	t.Setenv("BIZTIME_DATABASE__SSL_MODE", "disable")
}

func TestLoadConfig_FromEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BIZTIME_DATABASE__MAX_CONNS", "8")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, int32(8), cfg.Database.MaxConns)
	assert.Equal(t, int32(0), cfg.Database.MinConns)
}

func TestLoadConfig_ObservabilityDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg.Observability)

	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "local", cfg.Observability.Environment)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
	assert.Equal(t, 100*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
	assert.Empty(t, cfg.Observability.NewRelic.LicenseKey)
	assert.True(t, cfg.Observability.HealthChecks.Enabled)
}

func TestLoadConfig_PartialObservabilityOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BIZTIME_OBSERVABILITY__LOGGING__LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
	assert.Equal(t, 5*time.Second, cfg.Observability.HealthChecks.Timeout)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BIZTIME_DATABASE__HOST", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadConfig_InvalidLogLevel(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BIZTIME_OBSERVABILITY__LOGGING__LEVEL", "loud")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging level")
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = ""

	cfg.Environment = "production"
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg.Environment = "development"
	assert.Equal(t, "debug", cfg.GetLogLevel())

	cfg.Logging.Level = "warn"
	assert.Equal(t, "warn", cfg.GetLogLevel())
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "server.read_timeout", envKey("BIZTIME_SERVER__READ_TIMEOUT"))
	assert.Equal(t, "observability.new_relic.license_key", envKey("BIZTIME_OBSERVABILITY__NEW_RELIC__LICENSE_KEY"))
}
