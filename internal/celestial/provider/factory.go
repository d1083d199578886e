package provider

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// Kind names a registered backend.
type Kind string

const (
	// KindNavyAPI is the remote US Navy Astronomical Applications backend.
	KindNavyAPI Kind = "navy_api"
	// KindEphemeris is the local meeus/VSOP87 backend.
	KindEphemeris Kind = "ephemeris"
)

// FallbackKind is used when neither the caller nor the configuration names
// a backend.
const FallbackKind = KindNavyAPI

// Builder constructs a backend on first use.
type Builder func() (Provider, error)

// Registry resolves backend names to shared Provider instances. Each kind
// is built at most once; instances must be safe for concurrent use.
type Registry struct {
	mu        sync.Mutex
	builders  map[Kind]Builder
	instances map[Kind]Provider

	defaultKind Kind
	perTool     map[string]Kind
	logger      *slog.Logger
}

// NewRegistry creates a registry with a global default kind and optional
// per-tool overrides (tool name -> kind). Empty defaultKind falls back to
// navy_api.
func NewRegistry(defaultKind Kind, perTool map[string]Kind, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		builders:    make(map[Kind]Builder),
		instances:   make(map[Kind]Provider),
		defaultKind: defaultKind,
		perTool:     perTool,
		logger:      logger,
	}
}

// Register installs the builder for a kind, replacing any previous one.
func (r *Registry) Register(kind Kind, build Builder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[kind] = build
}

// Kinds returns the registered kind names, sorted.
func (r *Registry) Kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.builders))
	for k := range r.builders {
		names = append(names, string(k))
	}
	sort.Strings(names)
	return names
}

// Resolve picks the backend for a tool call. Precedence: the caller's
// explicit kind, then the per-tool configuration, then the global default,
// then navy_api.
func (r *Registry) Resolve(tool, explicit string) (Provider, error) {
	kind := Kind(strings.TrimSpace(explicit))
	if kind == "" {
		kind = r.perTool[tool]
	}
	if kind == "" {
		kind = r.defaultKind
	}
	if kind == "" {
		kind = FallbackKind
	}
	return r.Get(kind)
}

// Get returns the shared instance for a kind, building it on first use.
func (r *Registry) Get(kind Kind) (Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.instances[kind]; ok {
		return p, nil
	}
	build, ok := r.builders[kind]
	if !ok {
		names := make([]string, 0, len(r.builders))
		for k := range r.builders {
			names = append(names, string(k))
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unknown provider %q: valid providers are %s", kind, strings.Join(names, ", "))
	}

	p, err := build()
	if err != nil {
		return nil, fmt.Errorf("initialize provider %q: %w", kind, err)
	}
	r.instances[kind] = p
	r.logger.Debug("provider initialized", "kind", string(kind))
	return p, nil
}
