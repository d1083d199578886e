package ephemeris

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/minio/minio-go/v7"
	"github.com/soniakeys/meeus/v3/planetposition"

	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/domain"
)

// vsop87Ext maps planetposition body indices to the VSOP87B file suffix.
var vsop87Ext = [...]string{"mer", "ven", "ear", "mar", "jup", "sat", "ura", "nep"}

// DatasetFileName returns the VSOP87B series file name for a body index
// (planetposition.Mercury..Neptune).
func DatasetFileName(body int) string {
	return "VSOP87B." + vsop87Ext[body]
}

// DatasetSource supplies ephemeris dataset files by name from a storage
// backend. Implementations return os.ErrNotExist-wrapping errors when the
// file is absent.
type DatasetSource interface {
	// Name identifies the backend in error messages and logs.
	Name() string
	// Read returns the named dataset file's contents.
	Read(ctx context.Context, name string) ([]byte, error)
}

// DirSource reads dataset files from a local directory.
type DirSource struct {
	Dir string
}

func (s *DirSource) Name() string { return "filesystem" }

func (s *DirSource) Read(_ context.Context, name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.Dir, name))
}

// MemorySource serves dataset files from an in-process map, used in tests
// and embedded deployments.
type MemorySource struct {
	Files map[string][]byte
}

func (s *MemorySource) Name() string { return "memory" }

func (s *MemorySource) Read(_ context.Context, name string) ([]byte, error) {
	data, ok := s.Files[name]
	if !ok {
		return nil, fmt.Errorf("dataset %s: %w", name, os.ErrNotExist)
	}
	return data, nil
}

// S3Source reads dataset files from an S3 bucket via minio.
type S3Source struct {
	Client *minio.Client
	Bucket string
	Prefix string
}

func (s *S3Source) Name() string { return "s3" }

func (s *S3Source) Read(ctx context.Context, name string) ([]byte, error) {
	key := name
	if s.Prefix != "" {
		key = s.Prefix + "/" + name
	}
	obj, err := s.Client.GetObject(ctx, s.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", s.Bucket, key, err)
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", s.Bucket, key, err)
	}
	return data, nil
}

// DatasetOptions configures dataset acquisition.
type DatasetOptions struct {
	// CacheDir holds materialized dataset files. Defaults to
	// os.UserCacheDir()/chuk-mcp-celestial.
	CacheDir string
	// Source is an optional storage backend consulted before download.
	Source DatasetSource
	// DownloadURL is the HTTP root the files are fetched from when absent
	// everywhere else. Defaults to the CDS VSOP87 archive.
	DownloadURL string
	// AutoDownload enables the HTTP fallback.
	AutoDownload bool
	// Logger receives acquisition progress. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultDownloadURL is the CDS mirror of the VSOP87 data files.
const DefaultDownloadURL = "https://cdsarc.cds.unistra.fr/ftp/cats/VI/81"

// DatasetManager materializes VSOP87 dataset files into a local cache
// directory, pulling from the configured source or downloading on demand,
// and memoizes the parsed planet series.
type DatasetManager struct {
	opts   DatasetOptions
	client *retryablehttp.Client
	logger *slog.Logger
}

// NewDatasetManager builds a manager from options.
func NewDatasetManager(opts DatasetOptions) *DatasetManager {
	if opts.CacheDir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			base = os.TempDir()
		}
		opts.CacheDir = filepath.Join(base, "chuk-mcp-celestial")
	}
	if opts.DownloadURL == "" {
		opts.DownloadURL = DefaultDownloadURL
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.HTTPClient.Timeout = 120 * time.Second
	client.Logger = nil
	return &DatasetManager{opts: opts, client: client, logger: opts.Logger}
}

// CacheDir returns the directory dataset files are materialized into, the
// path handed to planetposition.LoadPlanetPath.
func (m *DatasetManager) CacheDir() string { return m.opts.CacheDir }

// Ensure guarantees the dataset files for a body and for Earth are present
// in the cache directory. Earth's series is always needed to reduce
// heliocentric positions to geocentric ones.
func (m *DatasetManager) Ensure(ctx context.Context, body int) error {
	if err := m.ensureFile(ctx, DatasetFileName(body)); err != nil {
		return err
	}
	if body != planetposition.Earth {
		return m.ensureFile(ctx, DatasetFileName(planetposition.Earth))
	}
	return nil
}

func (m *DatasetManager) ensureFile(ctx context.Context, name string) error {
	path := filepath.Join(m.opts.CacheDir, name)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if m.opts.Source != nil {
		data, err := m.opts.Source.Read(ctx, name)
		if err == nil {
			return m.materialize(path, data)
		}
		m.logger.Debug("dataset not in storage backend",
			"file", name, "backend", m.opts.Source.Name(), "error", err)
	}

	if !m.opts.AutoDownload {
		return &domain.DatasetUnavailableError{File: name, Backend: m.sourceName()}
	}
	data, err := m.download(ctx, name)
	if err != nil {
		return &domain.DatasetUnavailableError{File: name, Backend: m.sourceName(), Err: err}
	}
	return m.materialize(path, data)
}

func (m *DatasetManager) sourceName() string {
	if m.opts.Source != nil {
		return m.opts.Source.Name()
	}
	return "local cache"
}

func (m *DatasetManager) download(ctx context.Context, name string) ([]byte, error) {
	u := m.opts.DownloadURL + "/" + name
	m.logger.Info("downloading ephemeris dataset", "url", u)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("download %s: status %d", u, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// materialize writes atomically so a crashed download never leaves a
// truncated dataset behind.
func (m *DatasetManager) materialize(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dataset cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("stage dataset file: %w", err)
	}
	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write dataset file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close dataset file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("install dataset file: %w", err)
	}
	m.logger.Debug("dataset materialized", "path", path, "bytes", len(data))
	return nil
}
