package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/domain"
	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/provider"
	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/provider/ephemeris"
)

type planetPositionInput struct {
	Planet    string   `json:"planet" jsonschema:"required"`
	Date      string   `json:"date" jsonschema:"required"`
	Time      string   `json:"time,omitempty"`
	Latitude  float64  `json:"latitude" jsonschema:"required"`
	Longitude float64  `json:"longitude" jsonschema:"required"`
	Timezone  *float64 `json:"timezone,omitempty"`
	Provider  string   `json:"provider,omitempty"`
}

type planetEventsInput struct {
	Planet    string   `json:"planet" jsonschema:"required"`
	Date      string   `json:"date" jsonschema:"required"`
	Latitude  float64  `json:"latitude" jsonschema:"required"`
	Longitude float64  `json:"longitude" jsonschema:"required"`
	Timezone  *float64 `json:"timezone,omitempty"`
	DST       *bool    `json:"dst,omitempty"`
	Provider  string   `json:"provider,omitempty"`
}

type skyInput struct {
	Date      string   `json:"date" jsonschema:"required"`
	Time      string   `json:"time" jsonschema:"required"`
	Latitude  float64  `json:"latitude" jsonschema:"required"`
	Longitude float64  `json:"longitude" jsonschema:"required"`
	Timezone  *float64 `json:"timezone,omitempty"`
	Provider  string   `json:"provider,omitempty"`
}

func registerPlanetTools(srv *mcp.Server, deps ToolDependencies) error {
	c := deps.Container

	srv.Tool("get_planet_position").
		Description("Get a planet's position, brightness and visibility at a time and place").
		Handler(func(ctx context.Context, input planetPositionInput) (*domain.PlanetObservation, error) {
			ctx = toolContext(ctx, "get_planet_position")
			planet, err := domain.ParsePlanet(input.Planet)
			if err != nil {
				return nil, err
			}
			date, err := domain.ParseDate(input.Date)
			if err != nil {
				return nil, err
			}
			if input.Time == "" {
				input.Time = "00:00"
			}
			hour, minute, _, err := domain.ParseTime(input.Time)
			if err != nil {
				return nil, err
			}
			p, err := resolvePlanetProvider(c, "get_planet_position", input.Provider)
			if err != nil {
				return nil, err
			}

			data, err := p.PlanetPosition(ctx, provider.PlanetRequest{
				Planet:    planet,
				Date:      date,
				Hour:      hour,
				Minute:    minute,
				Latitude:  input.Latitude,
				Longitude: input.Longitude,
				TZ:        input.Timezone,
			})
			if err != nil {
				return nil, err
			}

			result := &domain.PlanetObservation{
				APIVersion: ephemeris.APIVersion,
				Type:       "Feature",
				Geometry:   domain.NewPoint(input.Latitude, input.Longitude),
				Properties: domain.PlanetPositionProperties{Data: *data},
			}
			if id := c.Results.SavePosition(ctx, string(planet), data.Date, data.Time,
				input.Latitude, input.Longitude, result); id != "" {
				result.ArtifactRef = &id
			}
			return result, nil
		})

	srv.Tool("get_planet_events").
		Description("Get a planet's rise, transit and set times for a day at a location").
		Handler(func(ctx context.Context, input planetEventsInput) (*domain.PlanetEvents, error) {
			ctx = toolContext(ctx, "get_planet_events")
			planet, err := domain.ParsePlanet(input.Planet)
			if err != nil {
				return nil, err
			}
			date, err := domain.ParseDate(input.Date)
			if err != nil {
				return nil, err
			}
			p, err := resolvePlanetProvider(c, "get_planet_events", input.Provider)
			if err != nil {
				return nil, err
			}

			data, err := p.PlanetEvents(ctx, provider.PlanetRequest{
				Planet:    planet,
				Date:      date,
				Latitude:  input.Latitude,
				Longitude: input.Longitude,
				TZ:        input.Timezone,
				DST:       input.DST,
			})
			if err != nil {
				return nil, err
			}

			result := &domain.PlanetEvents{
				APIVersion: ephemeris.APIVersion,
				Type:       "Feature",
				Geometry:   domain.NewPoint(input.Latitude, input.Longitude),
				Properties: domain.PlanetEventsProperties{Data: *data},
			}
			if id := c.Results.SaveEvents(ctx, string(planet), data.Date,
				input.Latitude, input.Longitude, result); id != "" {
				result.ArtifactRef = &id
			}
			return result, nil
		})

	srv.Tool("get_sky").
		Description("Get a whole-sky summary: visible planets, moon state and darkness").
		Handler(func(ctx context.Context, input skyInput) (*domain.SkySnapshot, error) {
			ctx = toolContext(ctx, "get_sky")
			date, err := domain.ParseDate(input.Date)
			if err != nil {
				return nil, err
			}
			hour, minute, _, err := domain.ParseTime(input.Time)
			if err != nil {
				return nil, err
			}
			// The sky aggregator always runs against the local backend;
			// resolve anyway so explicit provider overrides fail loudly.
			if _, err := resolvePlanetProvider(c, "get_sky", input.Provider); err != nil {
				return nil, err
			}

			data, err := c.Sky.Summarize(ctx, provider.SkyRequest{
				Date:      date,
				Hour:      hour,
				Minute:    minute,
				Latitude:  input.Latitude,
				Longitude: input.Longitude,
				TZ:        input.Timezone,
			}, input.Date, input.Time)
			if err != nil {
				return nil, err
			}

			result := &domain.SkySnapshot{
				APIVersion: ephemeris.APIVersion,
				Type:       "Feature",
				Geometry:   domain.NewPoint(input.Latitude, input.Longitude),
				Properties: domain.SkyProperties{Data: *data},
			}
			if id := c.Results.SaveSky(ctx, input.Date, input.Time,
				input.Latitude, input.Longitude, result); id != "" {
				result.ArtifactRef = &id
			}
			return result, nil
		})

	return nil
}
