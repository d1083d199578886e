package sky

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/domain"
	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/provider"
)

type stubSource struct {
	positions map[domain.Planet]*domain.PlanetPositionData
	posErrs   map[domain.Planet]error
	sunAlt    float64
	sunErr    error
	moon      domain.SkyMoonSummary
}

func (s *stubSource) PlanetPosition(_ context.Context, req provider.PlanetRequest) (*domain.PlanetPositionData, error) {
	if err, ok := s.posErrs[req.Planet]; ok {
		return nil, err
	}
	if pos, ok := s.positions[req.Planet]; ok {
		return pos, nil
	}
	return &domain.PlanetPositionData{
		Planet:     req.Planet,
		Visibility: domain.VisibilityBelowHorizon,
	}, nil
}

func (s *stubSource) SunAltitude(context.Context, provider.SkyRequest) (float64, error) {
	return s.sunAlt, s.sunErr
}

func (s *stubSource) MoonOverview(context.Context, provider.SkyRequest) (*domain.SkyMoonSummary, error) {
	moon := s.moon
	return &moon, nil
}

func position(planet domain.Planet, alt, az, mag float64, vis domain.VisibilityStatus) *domain.PlanetPositionData {
	return &domain.PlanetPositionData{
		Planet:     planet,
		Altitude:   alt,
		Azimuth:    az,
		Magnitude:  mag,
		Visibility: vis,
	}
}

func skyRequest() provider.SkyRequest {
	return provider.SkyRequest{
		Date:      time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Hour:      22,
		Latitude:  51.48,
		Longitude: 0,
	}
}

func TestSummarize_VisibleSubsetSortedByMagnitude(t *testing.T) {
	src := &stubSource{
		sunAlt: -20,
		positions: map[domain.Planet]*domain.PlanetPositionData{
			domain.PlanetVenus:   position(domain.PlanetVenus, 30, 270, -4.2, domain.VisibilityVisible),
			domain.PlanetMars:    position(domain.PlanetMars, 15, 120, 1.1, domain.VisibilityVisible),
			domain.PlanetJupiter: position(domain.PlanetJupiter, 45, 180, -2.3, domain.VisibilityVisible),
			domain.PlanetMercury: position(domain.PlanetMercury, 5, 280, -0.5, domain.VisibilityLostInSunlight),
		},
		moon: domain.SkyMoonSummary{Phase: "Waning Gibbous", Illumination: "79%"},
	}
	a := New(src, nil)

	result, err := a.Summarize(context.Background(), skyRequest(), "2025-6-15", "22:00")
	require.NoError(t, err)

	// All eight planets reported, visible subset sorted brightest first.
	assert.Len(t, result.AllPlanets, len(domain.AllPlanets))
	require.Len(t, result.VisiblePlanets, 3)
	assert.Equal(t, domain.PlanetVenus, result.VisiblePlanets[0].Planet)
	assert.Equal(t, domain.PlanetJupiter, result.VisiblePlanets[1].Planet)
	assert.Equal(t, domain.PlanetMars, result.VisiblePlanets[2].Planet)

	assert.True(t, result.IsDark)
	assert.Equal(t, "2025-6-15", result.Date)
	assert.Equal(t, "22:00", result.Time)
	assert.Equal(t, "Waning Gibbous", result.Moon.Phase)
	assert.Contains(t, result.Summary, "3 planets visible")
	// Each planet line carries its compass direction and magnitude, and the
	// moon state follows the planet list.
	assert.Contains(t, result.Summary, "Venus (W, mag -4.2)")
	assert.Contains(t, result.Summary, "Jupiter (S, mag -2.3)")
	assert.Contains(t, result.Summary, "Mars (SE, mag 1.1)")
	assert.Contains(t, result.Summary, "Moon: Waning Gibbous, 79% illuminated.")
}

func TestSummarize_NoPlanetsVisible(t *testing.T) {
	src := &stubSource{
		sunAlt: 40,
		moon:   domain.SkyMoonSummary{Phase: "New Moon", Illumination: "0%"},
	}
	a := New(src, nil)

	result, err := a.Summarize(context.Background(), skyRequest(), "2025-6-15", "12:00")
	require.NoError(t, err)

	assert.False(t, result.IsDark)
	assert.Empty(t, result.VisiblePlanets)
	assert.Equal(t, "No planets visible at this time. Moon: New Moon, 0% illuminated.", result.Summary)
}

func TestSummarize_DaylightCaveat(t *testing.T) {
	src := &stubSource{
		sunAlt: 10,
		positions: map[domain.Planet]*domain.PlanetPositionData{
			domain.PlanetVenus: position(domain.PlanetVenus, 30, 90, -4.2, domain.VisibilityVisible),
		},
	}
	a := New(src, nil)

	result, err := a.Summarize(context.Background(), skyRequest(), "2025-6-15", "15:00")
	require.NoError(t, err)

	assert.False(t, result.IsDark)
	assert.Contains(t, result.Summary, "1 planet visible")
	assert.Contains(t, result.Summary, "Daylight limits observation")
}

func TestSummarize_DarknessBoundary(t *testing.T) {
	a := New(&stubSource{sunAlt: -6}, nil)
	result, err := a.Summarize(context.Background(), skyRequest(), "d", "t")
	require.NoError(t, err)
	assert.False(t, result.IsDark, "civil twilight is not dark yet")

	a = New(&stubSource{sunAlt: -6.1}, nil)
	result, err = a.Summarize(context.Background(), skyRequest(), "d", "t")
	require.NoError(t, err)
	assert.True(t, result.IsDark)
}

func TestSummarize_FailedPlanetOmitted(t *testing.T) {
	src := &stubSource{
		sunAlt: -30,
		posErrs: map[domain.Planet]error{
			domain.PlanetPluto: errors.New("dataset missing"),
		},
	}
	a := New(src, nil)

	result, err := a.Summarize(context.Background(), skyRequest(), "2025-6-15", "23:00")
	require.NoError(t, err)
	assert.Len(t, result.AllPlanets, len(domain.AllPlanets)-1)
	for _, p := range result.AllPlanets {
		assert.NotEqual(t, domain.PlanetPluto, p.Planet)
	}
}

func TestSummarize_SunAltitudeErrorAborts(t *testing.T) {
	a := New(&stubSource{sunErr: errors.New("boom")}, nil)
	_, err := a.Summarize(context.Background(), skyRequest(), "d", "t")
	assert.Error(t, err)
}

func TestSummarize_RejectsBadCoordinates(t *testing.T) {
	a := New(&stubSource{}, nil)
	req := skyRequest()
	req.Latitude = 91

	_, err := a.Summarize(context.Background(), req, "d", "t")
	require.Error(t, err)
	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestAzimuthToDirection(t *testing.T) {
	cases := []struct {
		az   float64
		want string
	}{
		{0, "N"},
		{22, "N"},
		{23, "NE"},
		{45, "NE"},
		{90, "E"},
		{135, "SE"},
		{180, "S"},
		{225, "SW"},
		{270, "W"},
		{315, "NW"},
		{337, "NW"},
		{338, "N"},
		{360, "N"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, AzimuthToDirection(tc.az), "azimuth %v", tc.az)
	}
}
