package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/domain"
	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/provider"
)

type moonPhasesInput struct {
	Date     string `json:"date" jsonschema:"required"`
	NumberOf int    `json:"num_phases,omitempty"`
	Provider string `json:"provider,omitempty"`
}

type sunMoonInput struct {
	Date      string   `json:"date" jsonschema:"required"`
	Latitude  float64  `json:"latitude" jsonschema:"required"`
	Longitude float64  `json:"longitude" jsonschema:"required"`
	Timezone  *float64 `json:"timezone,omitempty"`
	DST       *bool    `json:"dst,omitempty"`
	Label     *string  `json:"label,omitempty"`
	Provider  string   `json:"provider,omitempty"`
}

type eclipseByDateInput struct {
	Date      string  `json:"date" jsonschema:"required"`
	Latitude  float64 `json:"latitude" jsonschema:"required"`
	Longitude float64 `json:"longitude" jsonschema:"required"`
	Height    int     `json:"height,omitempty"`
	Provider  string  `json:"provider,omitempty"`
}

type eclipsesByYearInput struct {
	Year     int    `json:"year" jsonschema:"required"`
	Provider string `json:"provider,omitempty"`
}

type seasonsInput struct {
	Year     int      `json:"year" jsonschema:"required"`
	Timezone *float64 `json:"timezone,omitempty"`
	DST      *bool    `json:"dst,omitempty"`
	Provider string   `json:"provider,omitempty"`
}

func registerAlmanacTools(srv *mcp.Server, deps ToolDependencies) error {
	c := deps.Container

	srv.Tool("get_moon_phases").
		Description("Get upcoming moon phases starting from a date (YYYY-MM-DD)").
		Handler(func(ctx context.Context, input moonPhasesInput) (*domain.MoonPhasesResult, error) {
			ctx = toolContext(ctx, "get_moon_phases")
			date, err := domain.ParseDate(input.Date)
			if err != nil {
				return nil, err
			}
			if input.NumberOf == 0 {
				input.NumberOf = 12
			}
			p, err := resolveProvider(c, "get_moon_phases", input.Provider)
			if err != nil {
				return nil, err
			}
			return p.MoonPhases(ctx, date, input.NumberOf)
		})

	srv.Tool("get_sun_moon_data").
		Description("Get sun and moon rise/set/transit times and moon phase for one day at a location").
		Handler(func(ctx context.Context, input sunMoonInput) (*domain.DayAstronomy, error) {
			ctx = toolContext(ctx, "get_sun_moon_data")
			date, err := domain.ParseDate(input.Date)
			if err != nil {
				return nil, err
			}
			p, err := resolveProvider(c, "get_sun_moon_data", input.Provider)
			if err != nil {
				return nil, err
			}
			return p.SunMoonData(ctx, provider.OneDayRequest{
				Date:      date,
				Latitude:  input.Latitude,
				Longitude: input.Longitude,
				TZ:        input.Timezone,
				DST:       input.DST,
				Label:     input.Label,
			})
		})

	srv.Tool("get_solar_eclipse_by_date").
		Description("Get local solar eclipse circumstances for a date and location").
		Handler(func(ctx context.Context, input eclipseByDateInput) (*domain.EclipseCircumstance, error) {
			ctx = toolContext(ctx, "get_solar_eclipse_by_date")
			date, err := domain.ParseDate(input.Date)
			if err != nil {
				return nil, err
			}
			p, err := resolveProvider(c, "get_solar_eclipse_by_date", input.Provider)
			if err != nil {
				return nil, err
			}
			return p.SolarEclipseByDate(ctx, provider.EclipseRequest{
				Date:      date,
				Latitude:  input.Latitude,
				Longitude: input.Longitude,
				Height:    input.Height,
			})
		})

	srv.Tool("get_solar_eclipses_by_year").
		Description("List all solar eclipses occurring in a year, worldwide").
		Handler(func(ctx context.Context, input eclipsesByYearInput) (*domain.EclipseYearCatalog, error) {
			ctx = toolContext(ctx, "get_solar_eclipses_by_year")
			p, err := resolveProvider(c, "get_solar_eclipses_by_year", input.Provider)
			if err != nil {
				return nil, err
			}
			return p.SolarEclipsesByYear(ctx, input.Year)
		})

	srv.Tool("get_earth_seasons").
		Description("Get equinoxes, solstices and Earth's orbital milestones for a year").
		Handler(func(ctx context.Context, input seasonsInput) (*domain.SeasonsResult, error) {
			ctx = toolContext(ctx, "get_earth_seasons")
			p, err := resolveProvider(c, "get_earth_seasons", input.Provider)
			if err != nil {
				return nil, err
			}
			return p.Seasons(ctx, provider.SeasonsRequest{
				Year: input.Year,
				TZ:   input.Timezone,
				DST:  input.DST,
			})
		})

	return nil
}
