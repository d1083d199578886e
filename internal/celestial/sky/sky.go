// Package sky synthesizes a whole-sky overview from per-planet positions,
// solar altitude and the lunar state.
package sky

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/domain"
	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/provider"
)

// darknessAltitudeDeg is the solar altitude below which the sky counts as
// dark (civil twilight ended).
const darknessAltitudeDeg = -6

// Source is the slice of the planet provider the aggregator needs.
type Source interface {
	PlanetPosition(ctx context.Context, req provider.PlanetRequest) (*domain.PlanetPositionData, error)
	SunAltitude(ctx context.Context, req provider.SkyRequest) (float64, error)
	MoonOverview(ctx context.Context, req provider.SkyRequest) (*domain.SkyMoonSummary, error)
}

// Aggregator builds sky summaries. Individual planet failures are logged
// and the planet omitted; only observer-input and solar failures abort the
// whole summary.
type Aggregator struct {
	source Source
	logger *slog.Logger
}

// New builds an aggregator over a planet source.
func New(source Source, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{source: source, logger: logger}
}

// Summarize computes the sky state for the request. dateText and timeText
// are echoed into the result exactly as the caller supplied them.
func (a *Aggregator) Summarize(ctx context.Context, req provider.SkyRequest, dateText, timeText string) (*domain.SkyData, error) {
	if err := domain.ValidateCoordinates(req.Latitude, req.Longitude); err != nil {
		return nil, err
	}

	sunAlt, err := a.source.SunAltitude(ctx, req)
	if err != nil {
		return nil, err
	}
	isDark := sunAlt < darknessAltitudeDeg

	all := make([]domain.SkyPlanetSummary, 0, len(domain.AllPlanets))
	for _, planet := range domain.AllPlanets {
		pos, err := a.source.PlanetPosition(ctx, provider.PlanetRequest{
			Planet:    planet,
			Date:      req.Date,
			Hour:      req.Hour,
			Minute:    req.Minute,
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
			TZ:        req.TZ,
		})
		if err != nil {
			a.logger.Warn("planet omitted from sky summary",
				"planet", string(planet), "error", err)
			continue
		}
		all = append(all, domain.SkyPlanetSummary{
			Planet:        pos.Planet,
			Altitude:      pos.Altitude,
			Azimuth:       pos.Azimuth,
			Magnitude:     pos.Magnitude,
			Constellation: pos.Constellation,
			Elongation:    pos.Elongation,
			Visibility:    pos.Visibility,
			Direction:     AzimuthToDirection(pos.Azimuth),
		})
	}

	visible := make([]domain.SkyPlanetSummary, 0, len(all))
	for _, p := range all {
		if p.Visibility == domain.VisibilityVisible {
			visible = append(visible, p)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Magnitude < visible[j].Magnitude
	})

	moon, err := a.source.MoonOverview(ctx, req)
	if err != nil {
		return nil, err
	}

	return &domain.SkyData{
		Date:           dateText,
		Time:           timeText,
		IsDark:         isDark,
		VisiblePlanets: visible,
		AllPlanets:     all,
		Moon:           *moon,
		Summary:        composeSummary(visible, *moon, isDark),
	}, nil
}

func composeSummary(visible []domain.SkyPlanetSummary, moon domain.SkyMoonSummary, isDark bool) string {
	var summary string
	if len(visible) == 0 {
		summary = "No planets visible at this time."
	} else {
		names := make([]string, len(visible))
		for i, p := range visible {
			names[i] = fmt.Sprintf("%s (%s, mag %.1f)", p.Planet, p.Direction, p.Magnitude)
		}
		noun := "planets"
		if len(visible) == 1 {
			noun = "planet"
		}
		summary = fmt.Sprintf("%d %s visible: %s.", len(visible), noun, strings.Join(names, ", "))
	}
	if moon.Phase != "" {
		summary += fmt.Sprintf(" Moon: %s, %s illuminated.", moon.Phase, moon.Illumination)
	}
	if !isDark && len(visible) > 0 {
		summary += " Daylight limits observation to the brightest objects."
	}
	return summary
}

// AzimuthToDirection maps a north-based azimuth in degrees to the nearest
// of the eight compass octants.
func AzimuthToDirection(azimuthDeg float64) string {
	directions := [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	idx := int(math.Floor(azimuthDeg/45+0.5)) % 8
	if idx < 0 {
		idx += 8
	}
	return directions[idx]
}
