// Package config resolves application configuration from, in order of
// precedence, CELESTIAL_* environment variables, a celestial.yaml file, and
// built-in defaults. A .env file is loaded first so local development can
// set environment variables without exporting them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration. Everything downstream receives
// this plain struct; viper never leaks past Load.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string

	// MCP server
	MCPAddr      string
	MCPAuthToken string

	// Provider selection
	DefaultProvider string
	// ToolProviders maps a tool name to the provider kind serving it,
	// overriding DefaultProvider for that tool.
	ToolProviders map[string]string

	// Navy API
	NavyBaseURL  string
	NavyTimeout  time.Duration
	NavyRetryMax int

	// Ephemeris datasets
	EphemerisCacheDir     string
	EphemerisAutoDownload bool
	EphemerisDownloadURL  string
	// DatasetBackend selects where dataset files are pulled from before
	// the HTTP fallback: none, filesystem, memory or s3.
	DatasetBackend string
	DatasetDir     string

	// Result storage
	// StorageBackend selects the artifact store: none, memory, filesystem
	// or s3.
	StorageBackend string
	StorageDir     string

	// S3 (shared by dataset and storage backends)
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Prefix    string
	S3Region    string
	S3UseSSL    bool
}

// Load resolves the configuration.
func Load() (*Config, error) {
	// Load .env if present; absence is not an error.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("celestial")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "chuk-mcp-celestial"))
	}

	v.SetEnvPrefix("CELESTIAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		AppEnv:    v.GetString("app_env"),
		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),

		MCPAddr:      v.GetString("mcp.addr"),
		MCPAuthToken: v.GetString("mcp.auth_token"),

		DefaultProvider: v.GetString("provider.default"),
		ToolProviders:   v.GetStringMapString("provider.tools"),

		NavyBaseURL:  v.GetString("navy.base_url"),
		NavyTimeout:  v.GetDuration("navy.timeout"),
		NavyRetryMax: v.GetInt("navy.retry_max"),

		EphemerisCacheDir:     v.GetString("ephemeris.cache_dir"),
		EphemerisAutoDownload: v.GetBool("ephemeris.auto_download"),
		EphemerisDownloadURL:  v.GetString("ephemeris.download_url"),
		DatasetBackend:        v.GetString("ephemeris.dataset_backend"),
		DatasetDir:            v.GetString("ephemeris.dataset_dir"),

		StorageBackend: v.GetString("storage.backend"),
		StorageDir:     v.GetString("storage.dir"),

		S3Endpoint:  v.GetString("s3.endpoint"),
		S3AccessKey: v.GetString("s3.access_key"),
		S3SecretKey: v.GetString("s3.secret_key"),
		S3Bucket:    v.GetString("s3.bucket"),
		S3Prefix:    v.GetString("s3.prefix"),
		S3Region:    v.GetString("s3.region"),
		S3UseSSL:    v.GetBool("s3.use_ssl"),
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	v.SetDefault("mcp.addr", "0.0.0.0:8082")
	v.SetDefault("mcp.auth_token", "")

	v.SetDefault("provider.default", "navy_api")
	v.SetDefault("provider.tools", map[string]string{})

	v.SetDefault("navy.base_url", "https://aa.usno.navy.mil/api")
	v.SetDefault("navy.timeout", 30*time.Second)
	v.SetDefault("navy.retry_max", 0)

	v.SetDefault("ephemeris.cache_dir", "")
	v.SetDefault("ephemeris.auto_download", true)
	v.SetDefault("ephemeris.download_url", "")
	v.SetDefault("ephemeris.dataset_backend", "none")
	v.SetDefault("ephemeris.dataset_dir", "")

	v.SetDefault("storage.backend", "none")
	v.SetDefault("storage.dir", "")

	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.prefix", "")
	v.SetDefault("s3.region", "")
	v.SetDefault("s3.use_ssl", true)
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
