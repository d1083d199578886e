package mcp

import (
	"testing"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/mcp-go/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrishayuk/chuk-mcp-celestial/internal/app"
	"github.com/chrishayuk/chuk-mcp-celestial/pkg/config"
)

func testContainer(t *testing.T) *app.Container {
	t.Helper()
	c, err := app.NewContainer(&config.Config{
		DefaultProvider:   "navy_api",
		StorageBackend:    "memory",
		EphemerisCacheDir: t.TempDir(),
	}, nil)
	require.NoError(t, err)
	return c
}

func TestRegisterCelestialTools_ListTools(t *testing.T) {
	srv := mcp.NewServer(mcp.ServerInfo{
		Name:    "test",
		Version: "1.0.0",
		Capabilities: mcp.Capabilities{
			Tools: true,
		},
	})

	require.NoError(t, RegisterCelestialTools(srv, ToolDependencies{Container: testContainer(t)}))

	tc := testutil.NewTestClient(t, srv)
	defer tc.Close()

	tools, err := tc.ListTools()
	require.NoError(t, err)

	names := make(map[string]bool, len(tools))
	for _, tool := range tools {
		if name, ok := tool["name"].(string); ok {
			names[name] = true
		}
	}

	for _, want := range []string{
		"get_moon_phases",
		"get_sun_moon_data",
		"get_solar_eclipse_by_date",
		"get_solar_eclipses_by_year",
		"get_earth_seasons",
		"get_planet_position",
		"get_planet_events",
		"get_sky",
		"version",
	} {
		assert.True(t, names[want], "%s tool should be registered", want)
	}
}

func TestRegisterCelestialTools_RequiresDependencies(t *testing.T) {
	srv := mcp.NewServer(mcp.ServerInfo{
		Name:    "test",
		Version: "1.0.0",
		Capabilities: mcp.Capabilities{
			Tools: true,
		},
	})

	assert.Error(t, RegisterCelestialTools(nil, ToolDependencies{Container: testContainer(t)}))
	assert.Error(t, RegisterCelestialTools(srv, ToolDependencies{}))
}

func TestResolvePlanetProvider_RejectsAlmanacOnlyBackend(t *testing.T) {
	c := testContainer(t)

	// The remote backend has no planet endpoints; forcing it must fail with
	// a pointer at the local backend.
	_, err := resolvePlanetProvider(c, "get_planet_position", "navy_api")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ephemeris")

	// Default routing for planet tools lands on the local backend.
	p, err := resolvePlanetProvider(c, "get_planet_position", "")
	require.NoError(t, err)
	assert.Equal(t, "ephemeris", p.Name())
}
