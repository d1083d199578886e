// Package storage persists computation results. A ResultStore fronts an
// optional ArtifactStore backend with an in-process cache; when no backend
// is configured every save degrades to cache-only and returns no reference.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// ArtifactMeta describes a stored artifact.
type ArtifactMeta struct {
	MIME     string
	Summary  string
	Filename string
	Fields   map[string]string
}

// ArtifactStore is the narrow persistence interface the result store
// depends on. Implementations must be safe for concurrent use.
type ArtifactStore interface {
	// Store persists data and returns the artifact id.
	Store(ctx context.Context, data []byte, meta ArtifactMeta) (string, error)
	// Retrieve returns the contents of a previously stored artifact.
	Retrieve(ctx context.Context, id string) ([]byte, error)
	// Provider names the backend for logs and status output.
	Provider() string
}

// MemoryStore keeps artifacts in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore builds an empty in-memory artifact store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (s *MemoryStore) Provider() string { return "memory" }

func (s *MemoryStore) Store(_ context.Context, data []byte, _ ArtifactMeta) (string, error) {
	id := uuid.NewString()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.mu.Lock()
	s.blobs[id] = cp
	s.mu.Unlock()
	return id, nil
}

func (s *MemoryStore) Retrieve(_ context.Context, id string) ([]byte, error) {
	s.mu.RLock()
	data, ok := s.blobs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("artifact %s: %w", id, os.ErrNotExist)
	}
	return data, nil
}

// Len returns the number of stored artifacts.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}

// FilesystemStore writes artifacts as files under a root directory, named
// by uuid.
type FilesystemStore struct {
	root string
}

// NewFilesystemStore builds a store rooted at dir, creating it if needed.
func NewFilesystemStore(dir string) (*FilesystemStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	return &FilesystemStore{root: dir}, nil
}

func (s *FilesystemStore) Provider() string { return "filesystem" }

func (s *FilesystemStore) Store(_ context.Context, data []byte, _ ArtifactMeta) (string, error) {
	id := uuid.NewString() + ".json"
	if err := os.WriteFile(filepath.Join(s.root, id), data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return id, nil
}

func (s *FilesystemStore) Retrieve(_ context.Context, id string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.root, filepath.Base(id)))
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", id, err)
	}
	return data, nil
}

// S3Store persists artifacts to an S3 bucket via minio. The artifact id is
// the object key, derived from the descriptive filename in the metadata.
type S3Store struct {
	client *minio.Client
	bucket string
}

// NewS3Store wraps an existing minio client and bucket.
func NewS3Store(client *minio.Client, bucket string) *S3Store {
	return &S3Store{client: client, bucket: bucket}
}

func (s *S3Store) Provider() string { return "s3" }

func (s *S3Store) Store(ctx context.Context, data []byte, meta ArtifactMeta) (string, error) {
	key := meta.Filename
	if key == "" {
		key = "celestial/" + uuid.NewString() + ".json"
	}
	opts := minio.PutObjectOptions{
		ContentType:  meta.MIME,
		UserMetadata: meta.Fields,
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), opts)
	if err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", s.bucket, key, err)
	}
	return key, nil
}

func (s *S3Store) Retrieve(ctx context.Context, id string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, id, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", s.bucket, id, err)
	}
	defer obj.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(obj); err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", s.bucket, id, err)
	}
	return buf.Bytes(), nil
}
