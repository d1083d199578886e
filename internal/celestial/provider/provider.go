// Package provider defines the astronomy data source abstraction and the
// registry that resolves named backends.
//
// Two backends exist: the remote US Navy Astronomical Applications API
// (navy) and the local ephemeris calculator (ephemeris). They expose the
// same base capabilities; the local backend additionally computes planet
// positions, which the remote API does not offer.
package provider

import (
	"context"
	"time"

	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/domain"
)

// OneDayRequest asks for a day of sun/moon events at one location.
// TZ, DST and Label are optional; when TZ is nil times are reported in UT1.
type OneDayRequest struct {
	Date      time.Time
	Latitude  float64
	Longitude float64
	TZ        *float64
	DST       *bool
	Label     *string
}

// EclipseRequest asks for local solar-eclipse circumstances on a date.
// Height is the observer height above sea level in meters.
type EclipseRequest struct {
	Date      time.Time
	Latitude  float64
	Longitude float64
	Height    int
}

// SeasonsRequest asks for a year of seasonal milestones. TZ and DST are
// optional; when TZ is nil times are reported in UT1.
type SeasonsRequest struct {
	Year int
	TZ   *float64
	DST  *bool
}

// PlanetRequest asks for a planet's position or events at a time and place.
// Hour and Minute are clock fields on Date; events ignore them. When TZ is
// set the clock is interpreted as local time at that UTC offset, otherwise
// as UTC. DST adds one hour to TZ; only the events capability consumes it.
type PlanetRequest struct {
	Planet    domain.Planet
	Date      time.Time
	Hour      int
	Minute    int
	Latitude  float64
	Longitude float64
	TZ        *float64
	DST       *bool
}

// SkyRequest asks for a whole-sky summary at a time and place. TZ follows
// the same convention as PlanetRequest.
type SkyRequest struct {
	Date      time.Time
	Hour      int
	Minute    int
	Latitude  float64
	Longitude float64
	TZ        *float64
}

// Provider is the base capability set every backend implements. Backends
// that cannot serve a capability return *domain.UnsupportedCapabilityError
// naming the backend that can.
type Provider interface {
	// Name returns the registry kind of this backend.
	Name() string

	// MoonPhases returns count principal-phase events from date forward.
	MoonPhases(ctx context.Context, date time.Time, count int) (*domain.MoonPhasesResult, error)

	// SunMoonData returns one day of sun and moon rise/set/transit/twilight
	// events plus lunar phase context.
	SunMoonData(ctx context.Context, req OneDayRequest) (*domain.DayAstronomy, error)

	// SolarEclipseByDate returns local eclipse circumstances for a date, or
	// a "no eclipse" description when none is visible there.
	SolarEclipseByDate(ctx context.Context, req EclipseRequest) (*domain.EclipseCircumstance, error)

	// SolarEclipsesByYear returns the worldwide solar-eclipse catalog for a
	// year.
	SolarEclipsesByYear(ctx context.Context, year int) (*domain.EclipseYearCatalog, error)

	// Seasons returns the year's equinoxes, solstices and apsides.
	Seasons(ctx context.Context, req SeasonsRequest) (*domain.SeasonsResult, error)
}

// PlanetProvider extends Provider with planet computations. Only the local
// ephemeris backend implements it.
type PlanetProvider interface {
	Provider

	// PlanetPosition returns a planet's topocentric position and
	// photometric data at the requested instant.
	PlanetPosition(ctx context.Context, req PlanetRequest) (*domain.PlanetPositionData, error)

	// PlanetEvents returns a planet's rise/transit/set times for a day.
	PlanetEvents(ctx context.Context, req PlanetRequest) (*domain.PlanetEventsData, error)

	// SunAltitude returns the sun's altitude in degrees at the requested
	// instant, used for darkness checks.
	SunAltitude(ctx context.Context, req SkyRequest) (float64, error)
}
