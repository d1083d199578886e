package ephemeris

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/elliptic"
	"github.com/soniakeys/meeus/v3/globe"
	"github.com/soniakeys/meeus/v3/moonphase"
	"github.com/soniakeys/meeus/v3/moonposition"
	pp "github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/meeus/v3/pluto"
	"github.com/soniakeys/meeus/v3/rise"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"

	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/domain"
	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/provider"
)

// lostInSunlightDeg is the solar elongation below which a planet is
// reported as unobservable.
const lostInSunlightDeg = 10

var planetBody = map[domain.Planet]int{
	domain.PlanetMercury: pp.Mercury,
	domain.PlanetVenus:   pp.Venus,
	domain.PlanetMars:    pp.Mars,
	domain.PlanetJupiter: pp.Jupiter,
	domain.PlanetSaturn:  pp.Saturn,
	domain.PlanetUranus:  pp.Uranus,
	domain.PlanetNeptune: pp.Neptune,
}

// load returns the parsed VSOP87 series for a body, materializing the
// dataset files first if needed.
func (b *Backend) load(ctx context.Context, body int) (*pp.V87Planet, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if p, ok := b.planets[body]; ok {
		return p, nil
	}
	if err := b.datasets.Ensure(ctx, body); err != nil {
		return nil, err
	}
	p, err := pp.LoadPlanetPath(body, b.datasets.CacheDir())
	if err != nil {
		return nil, &domain.DatasetUnavailableError{
			File:    DatasetFileName(body),
			Backend: "local cache",
			Err:     err,
		}
	}
	b.planets[body] = p
	b.logger.Debug("ephemeris series loaded", "file", DatasetFileName(body))
	return p, nil
}

// observation is the geometric state of a planet at one instant.
type observation struct {
	raDeg, decDeg  float64 // apparent geocentric equatorial
	eclLonDeg      float64 // geocentric ecliptic longitude
	sunDistAU      float64 // heliocentric distance r
	earthDistAU    float64 // geocentric distance Δ
	sunEarthAU     float64 // Earth-Sun distance R
	elongationDeg  float64
	magnitude      float64
	illumination   float64
}

// observe reduces a planet's heliocentric series to its geocentric state at
// a dynamical-time instant.
func (b *Backend) observe(ctx context.Context, planet domain.Planet, jde float64) (*observation, error) {
	earth, err := b.load(ctx, pp.Earth)
	if err != nil {
		return nil, err
	}

	eL, eB, eR := earth.Position(jde)
	ex, ey, ez := rectangular(eL.Rad(), eB.Rad(), eR)

	var (
		hLonRad, hLatRad, r float64
		raDeg, decDeg       float64
	)
	if planet == domain.PlanetPluto {
		l, lat, dist := pluto.Heliocentric(jde)
		hLonRad, hLatRad, r = l.Rad(), lat.Rad(), dist
		α, δ := pluto.Astrometric(jde, earth)
		raDeg, decDeg = α.Deg(), δ.Deg()
	} else {
		body, ok := planetBody[planet]
		if !ok {
			return nil, &domain.ValidationError{Field: "planet", Value: planet, Reason: "unknown planet name"}
		}
		p, err := b.load(ctx, body)
		if err != nil {
			return nil, err
		}
		L, lat, dist := p.Position(jde)
		hLonRad, hLatRad, r = L.Rad(), lat.Rad(), dist
		α, δ := elliptic.Position(p, earth, jde)
		raDeg, decDeg = α.Deg(), δ.Deg()
	}

	px, py, pz := rectangular(hLonRad, hLatRad, r)
	gx, gy, gz := px-ex, py-ey, pz-ez
	delta := math.Sqrt(gx*gx + gy*gy + gz*gz)

	eclLon := wrapDeg(math.Atan2(gy, gx) * 180 / math.Pi)
	eclLat := math.Asin(clamp(gz/delta, -1, 1)) * 180 / math.Pi
	sunLon := wrapDeg(math.Atan2(-ey, -ex) * 180 / math.Pi)

	elong := angularSeparation(eclLon, eclLat, sunLon, 0)
	phase := phaseAngleDeg(r, delta, eR)

	return &observation{
		raDeg:         raDeg,
		decDeg:        decDeg,
		eclLonDeg:     eclLon,
		sunDistAU:     r,
		earthDistAU:   delta,
		sunEarthAU:    eR,
		elongationDeg: elong,
		magnitude:     apparentMagnitude(planet, phase, r, delta),
		illumination:  (1 + math.Cos(phase*math.Pi/180)) / 2,
	}, nil
}

// PlanetPosition returns a planet's topocentric position and photometric
// data at the requested UTC instant.
func (b *Backend) PlanetPosition(ctx context.Context, req provider.PlanetRequest) (*domain.PlanetPositionData, error) {
	if !req.Planet.IsValid() {
		return nil, &domain.ValidationError{Field: "planet", Value: req.Planet, Reason: "unknown planet name"}
	}
	if err := domain.ValidateCoordinates(req.Latitude, req.Longitude); err != nil {
		return nil, err
	}
	if err := domain.ValidateAlmanacYear(req.Date.Year()); err != nil {
		return nil, err
	}

	utc := requestInstant(req.Date, req.Hour, req.Minute, req.TZ)
	jd := timeToJD(utc)
	jde := utToTT(jd)

	obs, err := b.observe(ctx, req.Planet, jde)
	if err != nil {
		return nil, err
	}

	gstDeg := sidereal.Apparent(jd).Sec() / 240
	alt, az := horizontal(gstDeg, obs.raDeg, obs.decDeg, req.Latitude, req.Longitude)

	return &domain.PlanetPositionData{
		Planet:         req.Planet,
		Date:           req.Date.Format("2006-01-02"),
		Time:           fmt.Sprintf("%02d:%02d", req.Hour, req.Minute),
		Altitude:       round2(alt),
		Azimuth:        round2(az),
		DistanceAU:     round4(obs.earthDistAU),
		DistanceKM:     math.Round(obs.earthDistAU * auKilometers),
		Illumination:   round3(obs.illumination),
		Magnitude:      round2(obs.magnitude),
		Constellation:  constellation(obs.eclLonDeg),
		RightAscension: formatRA(obs.raDeg),
		Declination:    formatDec(obs.decDeg),
		Elongation:     round2(obs.elongationDeg),
		Visibility:     classifyVisibility(alt, obs.elongationDeg),
	}, nil
}

// PlanetEvents returns a planet's rise/transit/set times for a day. Times
// are UT unless TZ (plus DST) is set, in which case the date is taken as a
// local calendar day and clock times are shifted by the flat offset.
// Circumpolar and never-rising geometries yield an empty event list.
func (b *Backend) PlanetEvents(ctx context.Context, req provider.PlanetRequest) (*domain.PlanetEventsData, error) {
	if !req.Planet.IsValid() {
		return nil, &domain.ValidationError{Field: "planet", Value: req.Planet, Reason: "unknown planet name"}
	}
	if err := domain.ValidateCoordinates(req.Latitude, req.Longitude); err != nil {
		return nil, err
	}
	if err := domain.ValidateAlmanacYear(req.Date.Year()); err != nil {
		return nil, err
	}

	offset := flatOffset(req.TZ, req.DST)
	midnight := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, time.UTC)
	jd0 := eventDayJD(midnight, offset)

	// Position at local noon is a fair approximation for the whole day for
	// the slow-moving outer planets and adequate for the inner ones.
	obs, err := b.observe(ctx, req.Planet, utToTT(jd0+0.5))
	if err != nil {
		return nil, err
	}

	coord := globe.Coord{
		Lat: unit.AngleFromDeg(req.Latitude),
		Lon: unit.AngleFromDeg(-req.Longitude), // west-positive
	}
	th0 := sidereal.Apparent0UT(jd0)
	α := unit.RAFromDeg(obs.raDeg)
	δ := unit.AngleFromDeg(obs.decDeg)

	events := []domain.PlanetEvent{}
	tRise, tTransit, tSet, err := rise.ApproxTimes(coord, rise.Stdh0Stellar, th0, α, δ)
	if err != nil {
		b.logger.Debug("planet has no rise/set events",
			"planet", string(req.Planet), "date", midnight.Format("2006-01-02"), "reason", err)
	} else {
		type timed struct {
			phen domain.Phenomenon
			sec  float64
		}
		ordered := []timed{
			{domain.PhenRise, localDaySec(tRise.Sec(), offset)},
			{domain.PhenUpperTransit, localDaySec(tTransit.Sec(), offset)},
			{domain.PhenSet, localDaySec(tSet.Sec(), offset)},
		}
		sort.Slice(ordered, func(i, j int) bool { return ordered[i].sec < ordered[j].sec })
		for _, e := range ordered {
			events = append(events, domain.PlanetEvent{Phen: e.phen, Time: formatClock(e.sec)})
		}
	}

	return &domain.PlanetEventsData{
		Planet:        req.Planet,
		Date:          midnight.Format("2006-01-02"),
		Events:        events,
		Constellation: constellation(obs.eclLonDeg),
		Magnitude:     round2(obs.magnitude),
	}, nil
}

// SunAltitude returns the sun's altitude in degrees at the requested UTC
// instant, from the analytic solar series. No dataset files are consumed.
func (b *Backend) SunAltitude(_ context.Context, req provider.SkyRequest) (float64, error) {
	if err := domain.ValidateCoordinates(req.Latitude, req.Longitude); err != nil {
		return 0, err
	}
	utc := requestInstant(req.Date, req.Hour, req.Minute, req.TZ)
	jd := timeToJD(utc)

	α, δ := solar.ApparentEquatorial(utToTT(jd))
	gstDeg := sidereal.Apparent(jd).Sec() / 240
	alt, _ := horizontal(gstDeg, α.Deg(), δ.Deg(), req.Latitude, req.Longitude)
	return alt, nil
}

// moonPhaseNames are the eight colloquial phase names in cycle order,
// indexed by the moon-sun elongation octant.
var moonPhaseNames = [...]string{
	"New Moon", "Waxing Crescent", "First Quarter", "Waxing Gibbous",
	"Full Moon", "Waning Gibbous", "Last Quarter", "Waning Crescent",
}

// MoonOverview summarizes the moon at the requested UTC instant: colloquial
// phase name, illuminated percentage, and the next principal phase.
func (b *Backend) MoonOverview(_ context.Context, req provider.SkyRequest) (*domain.SkyMoonSummary, error) {
	utc := requestInstant(req.Date, req.Hour, req.Minute, req.TZ)
	jde := utToTT(timeToJD(utc))

	λm, _, _ := moonposition.Position(jde)
	λs := solar.ApparentLongitude(base.J2000Century(jde))
	elong := wrapDeg(λm.Deg() - λs.Deg())

	illum := (1 - math.Cos(elong*math.Pi/180)) / 2
	name := moonPhaseNames[int(math.Round(elong/45))%8]

	// Next principal phase sits at the next multiple of 90° of elongation;
	// its instant comes from the matching phase series, not extrapolation.
	targetIdx := (int(elong/90) + 1) % 4
	next := string(domain.PrincipalPhases[targetIdx])
	nextDate := jdToTime(ttToUT(nextPhaseJDE(jde, targetIdx))).Format("2006-01-02")

	return &domain.SkyMoonSummary{
		Phase:         name,
		Illumination:  fmt.Sprintf("%.0f%%", illum*100),
		NextPhase:     &next,
		NextPhaseDate: &nextDate,
	}, nil
}

// phaseSeries maps a principal-phase index in cycle order from New Moon to
// its lunar-phase series function.
var phaseSeries = [...]func(float64) float64{
	moonphase.New, moonphase.First, moonphase.Full, moonphase.Last,
}

// nextPhaseJDE finds the first instant of the phase at cycle index idx that
// falls after jde. The series quantizes to the nearest lunation, so start a
// lunation back and walk forward.
func nextPhaseJDE(jde float64, idx int) float64 {
	fn := phaseSeries[idx]
	y := julianYear(jde - synodicMonth)
	next := fn(y)
	for next <= jde {
		y += synodicMonth / 365.25
		next = fn(y)
	}
	return next
}

func classifyVisibility(altDeg, elongDeg float64) domain.VisibilityStatus {
	if altDeg <= 0 {
		return domain.VisibilityBelowHorizon
	}
	if elongDeg < lostInSunlightDeg {
		return domain.VisibilityLostInSunlight
	}
	return domain.VisibilityVisible
}

// phaseAngleDeg solves the sun-planet-earth triangle: r and Δ are the
// planet's heliocentric and geocentric distances, R the earth-sun distance.
func phaseAngleDeg(r, delta, R float64) float64 {
	cosI := (r*r + delta*delta - R*R) / (2 * r * delta)
	return math.Acos(clamp(cosI, -1, 1)) * 180 / math.Pi
}

// apparentMagnitude evaluates the standard phase-dependent magnitude fits
// plus the 5 log10(rΔ) distance term. i is the phase angle in degrees.
func apparentMagnitude(planet domain.Planet, i, r, delta float64) float64 {
	dist := 5 * math.Log10(r*delta)
	switch planet {
	case domain.PlanetMercury:
		return -0.42 + 0.0380*i - 0.000273*i*i + 0.000002*i*i*i + dist
	case domain.PlanetVenus:
		return -4.40 + 0.0009*i + 0.000239*i*i - 0.00000065*i*i*i + dist
	case domain.PlanetMars:
		return -1.52 + 0.016*i + dist
	case domain.PlanetJupiter:
		return -9.40 + 0.005*i + dist
	case domain.PlanetSaturn:
		// Ring contribution omitted; disk-only fit.
		return -8.88 + dist
	case domain.PlanetUranus:
		return -7.19 + dist
	case domain.PlanetNeptune:
		return -6.87 + dist
	case domain.PlanetPluto:
		return -1.00 + dist
	}
	return dist
}

// eventDayJD returns the Julian day of 0h UT of the UT day containing the
// local noon of date at the given offset. For offset 0 that is the date
// itself; large offsets can select the neighboring UT day.
func eventDayJD(date time.Time, offsetHours float64) float64 {
	utNoon := date.Add(time.Duration((12 - offsetHours) * float64(time.Hour)))
	return timeToJD(time.Date(utNoon.Year(), utNoon.Month(), utNoon.Day(), 0, 0, 0, 0, time.UTC))
}

// localDaySec shifts seconds-from-0h-UT into the local clock, wrapped to one
// day so event ordering follows the local clock.
func localDaySec(sec, offsetHours float64) float64 {
	s := math.Mod(sec+offsetHours*3600, 86400)
	if s < 0 {
		s += 86400
	}
	return s
}

// requestInstant resolves a date plus clock fields to UTC, shifting by the
// optional local offset.
func requestInstant(date time.Time, hour, minute int, tz *float64) time.Time {
	utc := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, time.UTC)
	if tz != nil {
		utc = utc.Add(-time.Duration(*tz * float64(time.Hour)))
	}
	return utc
}

func rectangular(lonRad, latRad, r float64) (x, y, z float64) {
	x = r * math.Cos(latRad) * math.Cos(lonRad)
	y = r * math.Cos(latRad) * math.Sin(lonRad)
	z = r * math.Sin(latRad)
	return
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
