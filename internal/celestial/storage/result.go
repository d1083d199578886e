package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// ResultStore caches computation results in process and, when an artifact
// backend is configured, mirrors them there under descriptive keys. All
// persistence failures are logged and absorbed: a storage outage never
// fails the computation that produced the result.
type ResultStore struct {
	store  ArtifactStore
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string]json.RawMessage
	index map[string]string // result key -> artifact id
}

// NewResultStore builds a result store. store may be nil, which disables
// persistence entirely.
func NewResultStore(store ArtifactStore, logger *slog.Logger) *ResultStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResultStore{
		store:  store,
		logger: logger,
		cache:  make(map[string]json.RawMessage),
		index:  make(map[string]string),
	}
}

// Available reports whether an artifact backend is configured.
func (r *ResultStore) Available() bool { return r.store != nil }

// Provider names the configured backend, or "none".
func (r *ResultStore) Provider() string {
	if r.store == nil {
		return "none"
	}
	return r.store.Provider()
}

// PositionKey builds the cache key for a planet position result.
func PositionKey(planet, date, tm string, lat, lon float64) string {
	return strings.Join([]string{"position", planet, date, tm, f(lat), f(lon)}, "|")
}

// EventsKey builds the cache key for a planet events result.
func EventsKey(planet, date string, lat, lon float64) string {
	return strings.Join([]string{"events", planet, date, f(lat), f(lon)}, "|")
}

// SkyKey builds the cache key for a sky summary result.
func SkyKey(date, tm string, lat, lon float64) string {
	return strings.Join([]string{"sky", date, tm, f(lat), f(lon)}, "|")
}

func f(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// SavePosition persists a planet position result. Returns the artifact id,
// or empty when no backend is configured or the write failed.
func (r *ResultStore) SavePosition(ctx context.Context, planet, date, tm string, lat, lon float64, result any) string {
	key := PositionKey(planet, date, tm, lat, lon)
	meta := ArtifactMeta{
		MIME:     "application/json",
		Summary:  fmt.Sprintf("Planet position: %s at %s %s", planet, date, tm),
		Filename: fmt.Sprintf("celestial/positions/%s/%s_%s.json", planet, date, strings.ReplaceAll(tm, ":", "")),
		Fields: map[string]string{
			"type": "planet_position", "planet": planet,
			"date": date, "time": tm, "lat": f(lat), "lon": f(lon),
		},
	}
	return r.save(ctx, key, meta, result)
}

// SaveEvents persists a planet events result.
func (r *ResultStore) SaveEvents(ctx context.Context, planet, date string, lat, lon float64, result any) string {
	key := EventsKey(planet, date, lat, lon)
	meta := ArtifactMeta{
		MIME:     "application/json",
		Summary:  fmt.Sprintf("Planet events: %s on %s", planet, date),
		Filename: fmt.Sprintf("celestial/events/%s/%s.json", planet, date),
		Fields: map[string]string{
			"type": "planet_events", "planet": planet,
			"date": date, "lat": f(lat), "lon": f(lon),
		},
	}
	return r.save(ctx, key, meta, result)
}

// SaveSky persists a sky summary result.
func (r *ResultStore) SaveSky(ctx context.Context, date, tm string, lat, lon float64, result any) string {
	key := SkyKey(date, tm, lat, lon)
	meta := ArtifactMeta{
		MIME:     "application/json",
		Summary:  fmt.Sprintf("Sky summary: %s %s", date, tm),
		Filename: fmt.Sprintf("celestial/sky/%s_%s.json", date, strings.ReplaceAll(tm, ":", "")),
		Fields: map[string]string{
			"type": "sky_summary",
			"date": date, "time": tm, "lat": f(lat), "lon": f(lon),
		},
	}
	return r.save(ctx, key, meta, result)
}

func (r *ResultStore) save(ctx context.Context, key string, meta ArtifactMeta, result any) string {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		r.logger.Warn("result not cacheable", "key", key, "error", err)
		return ""
	}

	r.mu.Lock()
	r.cache[key] = data
	r.mu.Unlock()

	if r.store == nil {
		return ""
	}

	id, err := r.store.Store(ctx, data, meta)
	if err != nil {
		r.logger.Warn("failed to store result", "key", key, "error", err)
		return ""
	}

	r.mu.Lock()
	r.index[key] = id
	r.mu.Unlock()

	r.logger.Info("stored result", "key", key, "artifact_id", id)
	return id
}

// Load returns a stored result by key, consulting the in-process cache
// first and falling back to the artifact backend. Returns nil when the key
// is unknown.
func (r *ResultStore) Load(ctx context.Context, key string) json.RawMessage {
	r.mu.RLock()
	data, cached := r.cache[key]
	id, indexed := r.index[key]
	r.mu.RUnlock()

	if cached {
		return data
	}
	if !indexed || r.store == nil {
		return nil
	}

	raw, err := r.store.Retrieve(ctx, id)
	if err != nil {
		r.logger.Warn("failed to load artifact", "artifact_id", id, "error", err)
		return nil
	}

	r.mu.Lock()
	r.cache[key] = raw
	r.mu.Unlock()
	return raw
}

// StoredCount returns the number of cached results.
func (r *ResultStore) StoredCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}
