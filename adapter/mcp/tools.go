// Package mcp registers the celestial tool surface on an mcp-go server.
package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/chrishayuk/chuk-mcp-celestial/internal/app"
	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/domain"
	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/provider"
	"github.com/chrishayuk/chuk-mcp-celestial/pkg/observability"
)

// ToolDependencies provides the services the MCP tools run against.
type ToolDependencies struct {
	Container *app.Container
}

// RegisterCelestialTools registers every celestial tool.
func RegisterCelestialTools(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return errors.New("server is required")
	}
	if deps.Container == nil {
		return errors.New("container is required")
	}

	if err := registerAlmanacTools(srv, deps); err != nil {
		return err
	}
	if err := registerPlanetTools(srv, deps); err != nil {
		return err
	}
	return registerCoreTools(srv, deps)
}

type versionInput struct{}

type versionResult struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	DefaultProvider string `json:"default_provider"`
	StorageProvider string `json:"storage_provider"`
	StoredResults   int    `json:"stored_results"`
}

func registerCoreTools(srv *mcp.Server, deps ToolDependencies) error {
	c := deps.Container

	srv.Tool("version").
		Description("Report server version and configured backends").
		Handler(func(_ context.Context, _ versionInput) (*versionResult, error) {
			return &versionResult{
				Name:            "chuk-mcp-celestial",
				Version:         app.Version,
				DefaultProvider: c.Config.DefaultProvider,
				StorageProvider: c.Results.Provider(),
				StoredResults:   c.Results.StoredCount(),
			}, nil
		})

	return nil
}

// toolContext stamps per-invocation request and correlation ids plus the
// tool name on the context, so every log line emitted while serving the call
// carries them.
func toolContext(ctx context.Context, tool string) context.Context {
	return observability.WithOperation(observability.NewRequestContext(ctx, ""), tool)
}

// resolveProvider picks the backend for a tool call, honoring an explicit
// provider name from the request.
func resolveProvider(c *app.Container, tool, explicit string) (provider.Provider, error) {
	return c.Providers.Resolve(tool, explicit)
}

// resolvePlanetProvider resolves a backend and requires planet support.
func resolvePlanetProvider(c *app.Container, tool, explicit string) (provider.PlanetProvider, error) {
	p, err := c.Providers.Resolve(tool, explicit)
	if err != nil {
		return nil, err
	}
	pp, ok := p.(provider.PlanetProvider)
	if !ok {
		return nil, &domain.UnsupportedCapabilityError{
			Capability:  tool,
			Backend:     p.Name(),
			Alternative: string(provider.KindEphemeris),
		}
	}
	return pp, nil
}
