// Package ephemeris implements the local provider backend. Moon phases and
// seasons come from analytic series; planet positions reduce VSOP87 dataset
// files loaded on demand through the DatasetManager.
package ephemeris

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/soniakeys/meeus/v3/moonphase"
	pp "github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/meeus/v3/solstice"

	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/domain"
	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/provider"
)

// APIVersion marks locally computed responses, mirroring the apiversion
// field the remote API stamps on its own.
const APIVersion = "ephemeris-go 1.0"

// Backend computes astronomy locally. Safe for concurrent use; parsed
// VSOP87 series are shared and read-only after first load.
type Backend struct {
	datasets *DatasetManager
	logger   *slog.Logger

	mu      sync.Mutex
	planets map[int]*pp.V87Planet
}

var (
	_ provider.Provider       = (*Backend)(nil)
	_ provider.PlanetProvider = (*Backend)(nil)
)

// New builds a local backend over a dataset manager.
func New(datasets *DatasetManager, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{
		datasets: datasets,
		logger:   logger,
		planets:  make(map[int]*pp.V87Planet),
	}
}

// Name returns the registry kind.
func (b *Backend) Name() string { return string(provider.KindEphemeris) }

// MoonPhases returns count principal-phase events from date forward,
// computed from the lunar phase series. No dataset files are consumed.
func (b *Backend) MoonPhases(_ context.Context, date time.Time, count int) (*domain.MoonPhasesResult, error) {
	if err := domain.ValidateMoonCount(count); err != nil {
		return nil, err
	}
	if err := domain.ValidateAlmanacYear(date.Year()); err != nil {
		return nil, err
	}

	startJD := timeToJD(time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC))
	events := enumeratePhases(startJD, count)

	result := &domain.MoonPhasesResult{
		APIVersion: APIVersion,
		Year:       date.Year(),
		Month:      int(date.Month()),
		Day:        date.Day(),
		NumPhases:  len(events),
		PhaseData:  events,
	}
	return result, nil
}

// enumeratePhases walks each principal-phase series across a window wide
// enough for count events, merges the four streams and returns the first
// count events at or after startJD in UT.
func enumeratePhases(startJD float64, count int) []domain.MoonPhaseEvent {
	type instant struct {
		jde   float64
		phase domain.MoonPhase
	}

	// A phase of some kind occurs roughly every 7.4 days; pad the window so
	// truncation never runs short.
	windowDays := float64(count)*synodicMonth/4 + 2*synodicMonth
	yStart := julianYear(startJD - synodicMonth)
	yEnd := julianYear(startJD + windowDays)

	series := []struct {
		fn    func(float64) float64
		phase domain.MoonPhase
	}{
		{moonphase.New, domain.MoonPhaseNew},
		{moonphase.First, domain.MoonPhaseFirstQuarter},
		{moonphase.Full, domain.MoonPhaseFull},
		{moonphase.Last, domain.MoonPhaseLastQuarter},
	}

	var instants []instant
	step := synodicMonth / 365.25
	for _, s := range series {
		last := 0.0
		for y := yStart; y < yEnd; y += step {
			jde := s.fn(y)
			// The series quantizes to the nearest lunation, so adjacent
			// steps can land on the same instant.
			if jde-last > 1 {
				instants = append(instants, instant{jde, s.phase})
				last = jde
			}
		}
	}

	sort.Slice(instants, func(i, j int) bool { return instants[i].jde < instants[j].jde })

	events := make([]domain.MoonPhaseEvent, 0, count)
	for _, in := range instants {
		ut := ttToUT(in.jde)
		if ut < startJD {
			continue
		}
		t := jdToTime(ut)
		events = append(events, domain.MoonPhaseEvent{
			Phase: in.phase,
			Year:  t.Year(),
			Month: int(t.Month()),
			Day:   t.Day(),
			Time:  formatClock(float64(t.Hour()*3600 + t.Minute()*60 + t.Second())),
		})
		if len(events) == count {
			break
		}
	}
	return events
}

// Seasons returns the year's two equinoxes and two solstices in
// chronological order. The remote backend additionally reports perihelion
// and aphelion; locally only the four solar events are computed.
func (b *Backend) Seasons(_ context.Context, req provider.SeasonsRequest) (*domain.SeasonsResult, error) {
	if err := domain.ValidateAlmanacYear(req.Year); err != nil {
		return nil, err
	}

	offset := flatOffset(req.TZ, req.DST)

	instants := []float64{
		solstice.March(req.Year),
		solstice.June(req.Year),
		solstice.September(req.Year),
		solstice.December(req.Year),
	}
	phenoms := []domain.SeasonPhenomenon{
		domain.SeasonEquinox,
		domain.SeasonSolstice,
		domain.SeasonEquinox,
		domain.SeasonSolstice,
	}

	data := make([]domain.SeasonEvent, len(instants))
	for i, jde := range instants {
		t := jdToTime(ttToUT(jde)).Add(time.Duration(offset * float64(time.Hour)))
		data[i] = domain.SeasonEvent{
			Year:   t.Year(),
			Month:  int(t.Month()),
			Day:    t.Day(),
			Time:   formatClock(float64(t.Hour()*3600 + t.Minute()*60 + t.Second())),
			Phenom: phenoms[i],
		}
	}

	result := &domain.SeasonsResult{
		APIVersion: APIVersion,
		Year:       req.Year,
		TZ:         offset,
		DST:        req.DST != nil && *req.DST,
		Data:       data,
	}
	return result, nil
}

// SunMoonData is not computed locally.
func (b *Backend) SunMoonData(_ context.Context, _ provider.OneDayRequest) (*domain.DayAstronomy, error) {
	return nil, b.unsupported("sun_moon_data")
}

// SolarEclipseByDate is not computed locally.
func (b *Backend) SolarEclipseByDate(_ context.Context, _ provider.EclipseRequest) (*domain.EclipseCircumstance, error) {
	return nil, b.unsupported("solar_eclipse_by_date")
}

// SolarEclipsesByYear is not computed locally.
func (b *Backend) SolarEclipsesByYear(_ context.Context, _ int) (*domain.EclipseYearCatalog, error) {
	return nil, b.unsupported("solar_eclipses_by_year")
}

// flatOffset resolves an optional UTC offset plus DST flag into whole hours.
// Local times across the backend are the corresponding UT shifted by this
// fixed amount; no zone database is consulted.
func flatOffset(tz *float64, dst *bool) float64 {
	offset := 0.0
	if tz != nil {
		offset = *tz
	}
	if dst != nil && *dst {
		offset++
	}
	return offset
}

func (b *Backend) unsupported(capability string) error {
	return &domain.UnsupportedCapabilityError{
		Capability:  capability,
		Backend:     string(provider.KindEphemeris),
		Alternative: string(provider.KindNavyAPI),
	}
}
