package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Application defaults
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)

	// MCP defaults
	assert.Equal(t, "0.0.0.0:8082", cfg.MCPAddr)
	assert.Equal(t, "", cfg.MCPAuthToken)

	// Provider defaults
	assert.Equal(t, "navy_api", cfg.DefaultProvider)
	assert.Empty(t, cfg.ToolProviders)

	// Navy API defaults
	assert.Equal(t, "https://aa.usno.navy.mil/api", cfg.NavyBaseURL)
	assert.Equal(t, 30*time.Second, cfg.NavyTimeout)
	assert.Equal(t, 0, cfg.NavyRetryMax)

	// Ephemeris defaults
	assert.True(t, cfg.EphemerisAutoDownload)
	assert.Equal(t, "none", cfg.DatasetBackend)

	// Storage defaults
	assert.Equal(t, "none", cfg.StorageBackend)
	assert.True(t, cfg.S3UseSSL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CELESTIAL_APP_ENV", "production")
	t.Setenv("CELESTIAL_LOG_LEVEL", "debug")
	t.Setenv("CELESTIAL_MCP_ADDR", "127.0.0.1:9000")
	t.Setenv("CELESTIAL_MCP_AUTH_TOKEN", "secret")
	t.Setenv("CELESTIAL_PROVIDER_DEFAULT", "ephemeris")
	t.Setenv("CELESTIAL_NAVY_TIMEOUT", "10s")
	t.Setenv("CELESTIAL_NAVY_RETRY_MAX", "3")
	t.Setenv("CELESTIAL_EPHEMERIS_AUTO_DOWNLOAD", "false")
	t.Setenv("CELESTIAL_STORAGE_BACKEND", "filesystem")
	t.Setenv("CELESTIAL_STORAGE_DIR", "/tmp/artifacts")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:9000", cfg.MCPAddr)
	assert.Equal(t, "secret", cfg.MCPAuthToken)
	assert.Equal(t, "ephemeris", cfg.DefaultProvider)
	assert.Equal(t, 10*time.Second, cfg.NavyTimeout)
	assert.Equal(t, 3, cfg.NavyRetryMax)
	assert.False(t, cfg.EphemerisAutoDownload)
	assert.Equal(t, "filesystem", cfg.StorageBackend)
	assert.Equal(t, "/tmp/artifacts", cfg.StorageDir)
}

func TestLoad_S3Config(t *testing.T) {
	t.Setenv("CELESTIAL_S3_ENDPOINT", "minio.local:9000")
	t.Setenv("CELESTIAL_S3_ACCESS_KEY", "access")
	t.Setenv("CELESTIAL_S3_SECRET_KEY", "secret")
	t.Setenv("CELESTIAL_S3_BUCKET", "celestial")
	t.Setenv("CELESTIAL_S3_USE_SSL", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "minio.local:9000", cfg.S3Endpoint)
	assert.Equal(t, "access", cfg.S3AccessKey)
	assert.Equal(t, "secret", cfg.S3SecretKey)
	assert.Equal(t, "celestial", cfg.S3Bucket)
	assert.False(t, cfg.S3UseSSL)
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		appEnv   string
		expected bool
	}{
		{"development", true},
		{"production", false},
		{"staging", false},
		{"test", false},
	}

	for _, tt := range tests {
		t.Run(tt.appEnv, func(t *testing.T) {
			cfg := &Config{AppEnv: tt.appEnv}
			assert.Equal(t, tt.expected, cfg.IsDevelopment())
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		appEnv   string
		expected bool
	}{
		{"development", false},
		{"production", true},
		{"staging", false},
		{"test", false},
	}

	for _, tt := range tests {
		t.Run(tt.appEnv, func(t *testing.T) {
			cfg := &Config{AppEnv: tt.appEnv}
			assert.Equal(t, tt.expected, cfg.IsProduction())
		})
	}
}
