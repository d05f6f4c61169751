package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/eartask-go/internal/infrastructure/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	// Arrange
	path := writeConfigFile(t, "api:\n  sign_key: secret\n")

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "https://api.metaart.store", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 800*time.Millisecond, cfg.Batch.PacingDelay)
	assert.Equal(t, 3, cfg.Batch.MaxConsecutiveFailures)
	assert.Equal(t, 120, cfg.Batch.ResourceCap)
	assert.Equal(t, 10, cfg.Batch.DefaultSupplement)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.NotEmpty(t, cfg.Database.Path)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadConfig_FileValues(t *testing.T) {
	// Arrange
	path := writeConfigFile(t, `
api:
  base_url: https://test.example.com
  sign_key: abc
  timeout: 3s
batch:
  pacing_delay: 250ms
  max_consecutive_failures: 5
logging:
  level: debug
  format: json
metrics:
  enabled: true
  port: 9300
`)

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "https://test.example.com", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Batch.PacingDelay)
	assert.Equal(t, 5, cfg.Batch.MaxConsecutiveFailures)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "localhost:9300", cfg.Metrics.Address())
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	// Arrange
	path := writeConfigFile(t, "api:\n  sign_key: from-file\nbatch:\n  default_supplement: 20\n")
	t.Setenv("EARTASK_API_SIGN_KEY", "from-env")
	t.Setenv("EARTASK_BATCH_DEFAULT_SUPPLEMENT", "15")

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.API.SignKey)
	assert.Equal(t, 15, cfg.Batch.DefaultSupplement)
}

func TestLoadConfig_MissingSignKeyFailsValidation(t *testing.T) {
	// Arrange
	path := writeConfigFile(t, "logging:\n  level: info\n")

	// Act
	_, err := config.LoadConfig(path)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.sign_key: is required")
}

func TestLoadConfig_RejectsUnknownLogLevel(t *testing.T) {
	// Arrange
	path := writeConfigFile(t, "api:\n  sign_key: k\nlogging:\n  level: loud\n")

	// Act
	_, err := config.LoadConfig(path)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), `logging.level: must be one of [debug info warn error], got "loud"`)
}

func TestLoadConfigOrDefault_FallsBackOnError(t *testing.T) {
	// Act
	cfg := config.LoadConfigOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))

	// Assert
	require.NotNil(t, cfg)
	assert.Equal(t, 800*time.Millisecond, cfg.Batch.PacingDelay)
}

func TestLoadConfig_PostgresRequiresURL(t *testing.T) {
	// Arrange
	path := writeConfigFile(t, "api:\n  sign_key: k\ndatabase:\n  type: postgres\n")
	t.Setenv("DATABASE_URL", "")

	// Act
	_, err := config.LoadConfig(path)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.url: is required")
}

func TestLoggingConfig_EffectiveLevel(t *testing.T) {
	cfg := config.LoggingConfig{Level: "warn"}

	assert.Equal(t, "warn", cfg.EffectiveLevel(false))
	assert.Equal(t, "debug", cfg.EffectiveLevel(true))
}

func TestDatabaseConfig_IsMemory(t *testing.T) {
	assert.True(t, config.DatabaseConfig{Type: "sqlite"}.IsMemory())
	assert.True(t, config.DatabaseConfig{Type: "sqlite", Path: ":memory:"}.IsMemory())
	assert.False(t, config.DatabaseConfig{Type: "sqlite", Path: "/tmp/eartask.db"}.IsMemory())
	assert.False(t, config.DatabaseConfig{Type: "postgres", URL: "postgresql://x"}.IsMemory())
}
