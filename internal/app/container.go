// Package app wires configuration into the concrete backends, storage and
// aggregator the adapters consume.
package app

import (
	"fmt"
	"log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/provider"
	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/provider/ephemeris"
	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/provider/navy"
	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/sky"
	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/storage"
	"github.com/chrishayuk/chuk-mcp-celestial/pkg/config"
)

// Version is the build version, stamped via -ldflags.
var Version = "dev"

// Container holds the assembled application services.
type Container struct {
	Config    *config.Config
	Logger    *slog.Logger
	Providers *provider.Registry
	Ephemeris *ephemeris.Backend
	Results   *storage.ResultStore
	Sky       *sky.Aggregator
}

// NewContainer builds the full service graph from configuration.
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	datasetSource, err := buildDatasetSource(cfg)
	if err != nil {
		return nil, err
	}
	datasets := ephemeris.NewDatasetManager(ephemeris.DatasetOptions{
		CacheDir:     cfg.EphemerisCacheDir,
		Source:       datasetSource,
		DownloadURL:  cfg.EphemerisDownloadURL,
		AutoDownload: cfg.EphemerisAutoDownload,
		Logger:       logger,
	})
	eph := ephemeris.New(datasets, logger)

	registry := provider.NewRegistry(
		provider.Kind(cfg.DefaultProvider),
		toolProviders(cfg),
		logger,
	)
	registry.Register(provider.KindNavyAPI, func() (provider.Provider, error) {
		return navy.New(navy.Options{
			BaseURL:  cfg.NavyBaseURL,
			Timeout:  cfg.NavyTimeout,
			RetryMax: cfg.NavyRetryMax,
			Logger:   logger,
		}), nil
	})
	registry.Register(provider.KindEphemeris, func() (provider.Provider, error) {
		return eph, nil
	})

	artifacts, err := buildArtifactStore(cfg)
	if err != nil {
		return nil, err
	}
	results := storage.NewResultStore(artifacts, logger)
	logger.Info("result storage configured", "provider", results.Provider())

	return &Container{
		Config:    cfg,
		Logger:    logger,
		Providers: registry,
		Ephemeris: eph,
		Results:   results,
		Sky:       sky.New(eph, logger),
	}, nil
}

// toolProviders copies the per-tool overrides and routes the planet tools
// to the local backend unless explicitly configured otherwise: the remote
// API has no planet endpoints.
func toolProviders(cfg *config.Config) map[string]provider.Kind {
	m := make(map[string]provider.Kind, len(cfg.ToolProviders)+3)
	for tool, kind := range cfg.ToolProviders {
		m[tool] = provider.Kind(kind)
	}
	for _, tool := range []string{"get_planet_position", "get_planet_events", "get_sky"} {
		if _, ok := m[tool]; !ok {
			m[tool] = provider.KindEphemeris
		}
	}
	return m
}

func buildDatasetSource(cfg *config.Config) (ephemeris.DatasetSource, error) {
	switch cfg.DatasetBackend {
	case "", "none":
		return nil, nil
	case "filesystem":
		return &ephemeris.DirSource{Dir: cfg.DatasetDir}, nil
	case "memory":
		return &ephemeris.MemorySource{Files: map[string][]byte{}}, nil
	case "s3":
		client, err := newS3Client(cfg)
		if err != nil {
			return nil, err
		}
		return &ephemeris.S3Source{Client: client, Bucket: cfg.S3Bucket, Prefix: cfg.S3Prefix}, nil
	default:
		return nil, fmt.Errorf("unknown dataset backend %q: valid backends are none, filesystem, memory, s3", cfg.DatasetBackend)
	}
}

func buildArtifactStore(cfg *config.Config) (storage.ArtifactStore, error) {
	switch cfg.StorageBackend {
	case "", "none":
		return nil, nil
	case "memory":
		return storage.NewMemoryStore(), nil
	case "filesystem":
		dir := cfg.StorageDir
		if dir == "" {
			dir = "artifacts"
		}
		return storage.NewFilesystemStore(dir)
	case "s3":
		client, err := newS3Client(cfg)
		if err != nil {
			return nil, err
		}
		return storage.NewS3Store(client, cfg.S3Bucket), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q: valid backends are none, memory, filesystem, s3", cfg.StorageBackend)
	}
}

func newS3Client(cfg *config.Config) (*minio.Client, error) {
	if cfg.S3Endpoint == "" {
		return nil, fmt.Errorf("s3 backend requires an endpoint")
	}
	client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
		Region: cfg.S3Region,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to s3: %w", err)
	}
	return client, nil
}
