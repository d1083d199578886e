package provider

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/domain"
)

type stubProvider struct {
	name string
}

func (s *stubProvider) Name() string { return s.name }
func (s *stubProvider) MoonPhases(context.Context, time.Time, int) (*domain.MoonPhasesResult, error) {
	return nil, nil
}
func (s *stubProvider) SunMoonData(context.Context, OneDayRequest) (*domain.DayAstronomy, error) {
	return nil, nil
}
func (s *stubProvider) SolarEclipseByDate(context.Context, EclipseRequest) (*domain.EclipseCircumstance, error) {
	return nil, nil
}
func (s *stubProvider) SolarEclipsesByYear(context.Context, int) (*domain.EclipseYearCatalog, error) {
	return nil, nil
}
func (s *stubProvider) Seasons(context.Context, SeasonsRequest) (*domain.SeasonsResult, error) {
	return nil, nil
}

func newTestRegistry(defaultKind Kind, perTool map[string]Kind) (*Registry, *int, *int) {
	navyBuilds, ephBuilds := 0, 0
	r := NewRegistry(defaultKind, perTool, nil)
	r.Register(KindNavyAPI, func() (Provider, error) {
		navyBuilds++
		return &stubProvider{name: string(KindNavyAPI)}, nil
	})
	r.Register(KindEphemeris, func() (Provider, error) {
		ephBuilds++
		return &stubProvider{name: string(KindEphemeris)}, nil
	})
	return r, &navyBuilds, &ephBuilds
}

func TestRegistryResolve_ExplicitWins(t *testing.T) {
	r, _, _ := newTestRegistry(KindNavyAPI, map[string]Kind{"get_sky": KindNavyAPI})

	p, err := r.Resolve("get_sky", "ephemeris")
	require.NoError(t, err)
	assert.Equal(t, "ephemeris", p.Name())
}

func TestRegistryResolve_PerToolBeatsDefault(t *testing.T) {
	r, _, _ := newTestRegistry(KindNavyAPI, map[string]Kind{"get_planet_position": KindEphemeris})

	p, err := r.Resolve("get_planet_position", "")
	require.NoError(t, err)
	assert.Equal(t, "ephemeris", p.Name())

	p, err = r.Resolve("get_moon_phases", "")
	require.NoError(t, err)
	assert.Equal(t, "navy_api", p.Name())
}

func TestRegistryResolve_FallbackWhenUnconfigured(t *testing.T) {
	r, _, _ := newTestRegistry("", nil)

	p, err := r.Resolve("get_moon_phases", "")
	require.NoError(t, err)
	assert.Equal(t, "navy_api", p.Name())
}

func TestRegistryGet_CachesInstances(t *testing.T) {
	r, navyBuilds, _ := newTestRegistry(KindNavyAPI, nil)

	first, err := r.Get(KindNavyAPI)
	require.NoError(t, err)
	second, err := r.Get(KindNavyAPI)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, *navyBuilds)
}

func TestRegistryResolve_UnknownKind(t *testing.T) {
	r, _, _ := newTestRegistry(KindNavyAPI, nil)

	_, err := r.Resolve("get_moon_phases", "horoscope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "horoscope")
	assert.Contains(t, err.Error(), "ephemeris")
	assert.Contains(t, err.Error(), "navy_api")
}

func TestRegistryKinds(t *testing.T) {
	r, _, _ := newTestRegistry(KindNavyAPI, nil)
	assert.Equal(t, []string{"ephemeris", "navy_api"}, r.Kinds())
}
