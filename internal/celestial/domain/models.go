// Package domain holds the typed result models for every celestial
// response shape, the input range validators, and the error taxonomy.
//
// The wire names mirror the US Navy Astronomical Applications API so that
// remote responses decode directly into these types; the local backend
// synthesizes the same shapes.
package domain

// GeoJSONPoint is the Point geometry carried by location-bound responses.
// Coordinates are [longitude, latitude], GeoJSON order.
type GeoJSONPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// NewPoint builds a GeoJSON point for an observer location.
func NewPoint(latitude, longitude float64) GeoJSONPoint {
	return GeoJSONPoint{Type: "Point", Coordinates: []float64{longitude, latitude}}
}

// MoonPhaseEvent is a single principal-phase occurrence. Time is HH:MM in UT1.
type MoonPhaseEvent struct {
	Phase MoonPhase `json:"phase"`
	Year  int       `json:"year"`
	Month int       `json:"month"`
	Day   int       `json:"day"`
	Time  string    `json:"time"`
}

// MoonPhasesResult is the ordered list of upcoming phases from a start date.
type MoonPhasesResult struct {
	APIVersion string           `json:"apiversion"`
	Year       int              `json:"year"`
	Month      int              `json:"month"`
	Day        int              `json:"day"`
	NumPhases  int              `json:"numphases"`
	PhaseData  []MoonPhaseEvent `json:"phasedata"`
}

// CelestialEvent is one rise/set/transit/twilight occurrence.
type CelestialEvent struct {
	Phen Phenomenon `json:"phen"`
	Time string     `json:"time"`
}

// ClosestPhase is the principal phase nearest a queried date.
type ClosestPhase struct {
	Phase MoonPhase `json:"phase"`
	Year  int       `json:"year"`
	Month int       `json:"month"`
	Day   int       `json:"day"`
	Time  string    `json:"time"`
}

// OneDayData is a full day of sun and moon events at one location.
// SunData and MoonData may be empty in polar regions.
type OneDayData struct {
	Year         int              `json:"year"`
	Month        int              `json:"month"`
	Day          int              `json:"day"`
	DayOfWeek    string           `json:"day_of_week"`
	TZ           float64          `json:"tz"`
	IsDST        bool             `json:"isdst"`
	SunData      []CelestialEvent `json:"sundata"`
	MoonData     []CelestialEvent `json:"moondata"`
	ClosestPhase ClosestPhase     `json:"closestphase"`
	CurPhase     string           `json:"curphase"`
	FracIllum    string           `json:"fracillum"`
	Label        *string          `json:"label,omitempty"`
}

// OneDayProperties wraps OneDayData inside the GeoJSON Feature.
type OneDayProperties struct {
	Data OneDayData `json:"data"`
}

// DayAstronomy is the rise/set/transit response (GeoJSON Feature).
type DayAstronomy struct {
	APIVersion string           `json:"apiversion"`
	Type       string           `json:"type"`
	Geometry   GeoJSONPoint     `json:"geometry"`
	Properties OneDayProperties `json:"properties"`
}

// EclipseLocalEvent is one local eclipse phase with the sun's position.
type EclipseLocalEvent struct {
	Day           string  `json:"day"`
	Phenomenon    string  `json:"phenomenon"`
	Time          string  `json:"time"`
	Altitude      string  `json:"altitude"`
	Azimuth       string  `json:"azimuth"`
	PositionAngle *string `json:"position_angle,omitempty"`
	VertexAngle   *string `json:"vertex_angle,omitempty"`
}

// EclipseProperties describes a solar eclipse at one location.
type EclipseProperties struct {
	Year        int                 `json:"year"`
	Month       int                 `json:"month"`
	Day         int                 `json:"day"`
	Event       string              `json:"event"`
	Description string              `json:"description"`
	Magnitude   *string             `json:"magnitude,omitempty"`
	Obscuration *string             `json:"obscuration,omitempty"`
	Duration    *string             `json:"duration,omitempty"`
	DeltaT      string              `json:"delta_t"`
	LocalData   []EclipseLocalEvent `json:"local_data"`
}

// EclipseCircumstance is the eclipse-by-date response (GeoJSON Feature).
type EclipseCircumstance struct {
	APIVersion string            `json:"apiversion"`
	Type       string            `json:"type"`
	Geometry   GeoJSONPoint      `json:"geometry"`
	Properties EclipseProperties `json:"properties"`
}

// EclipseSummary is one entry in a year's eclipse catalog.
type EclipseSummary struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Day   int    `json:"day"`
	Event string `json:"event"`
}

// EclipseYearCatalog lists all solar eclipses in a year, worldwide.
type EclipseYearCatalog struct {
	APIVersion     string           `json:"apiversion"`
	Year           int              `json:"year"`
	EclipsesInYear []EclipseSummary `json:"eclipses_in_year"`
}

// SeasonEvent is one orbital milestone with date/time in the queried zone.
type SeasonEvent struct {
	Year   int              `json:"year"`
	Month  int              `json:"month"`
	Day    int              `json:"day"`
	Time   string           `json:"time"`
	Phenom SeasonPhenomenon `json:"phenom"`
}

// SeasonsResult is the ordered list of seasonal events for a year.
type SeasonsResult struct {
	APIVersion string        `json:"apiversion"`
	Year       int           `json:"year"`
	TZ         float64       `json:"tz"`
	DST        bool          `json:"dst"`
	Data       []SeasonEvent `json:"data"`
}

// PlanetPositionData is a planet's instantaneous position and photometric
// data at a time and place.
type PlanetPositionData struct {
	Planet         Planet           `json:"planet"`
	Date           string           `json:"date"`
	Time           string           `json:"time"`
	Altitude       float64          `json:"altitude"`
	Azimuth        float64          `json:"azimuth"`
	DistanceAU     float64          `json:"distance_au"`
	DistanceKM     float64          `json:"distance_km"`
	Illumination   float64          `json:"illumination"`
	Magnitude      float64          `json:"magnitude"`
	Constellation  string           `json:"constellation"`
	RightAscension string           `json:"right_ascension"`
	Declination    string           `json:"declination"`
	Elongation     float64          `json:"elongation"`
	Visibility     VisibilityStatus `json:"visibility"`
}

// PlanetPositionProperties wraps PlanetPositionData inside the Feature.
type PlanetPositionProperties struct {
	Data PlanetPositionData `json:"data"`
}

// PlanetObservation is the planet-position response (GeoJSON Feature).
// ArtifactRef is set when the result was persisted to the artifact store.
type PlanetObservation struct {
	APIVersion  string                   `json:"apiversion"`
	Type        string                   `json:"type"`
	Geometry    GeoJSONPoint             `json:"geometry"`
	Properties  PlanetPositionProperties `json:"properties"`
	ArtifactRef *string                  `json:"artifact_ref,omitempty"`
}

// PlanetEvent is a single planet rise/set/transit occurrence.
type PlanetEvent struct {
	Phen Phenomenon `json:"phen"`
	Time string     `json:"time"`
}

// PlanetEventsData is one day of planet events at a location. Events may be
// empty if the planet neither rises nor sets (polar regions, circumpolar).
type PlanetEventsData struct {
	Planet        Planet        `json:"planet"`
	Date          string        `json:"date"`
	Events        []PlanetEvent `json:"events"`
	Constellation string        `json:"constellation"`
	Magnitude     float64       `json:"magnitude"`
}

// PlanetEventsProperties wraps PlanetEventsData inside the Feature.
type PlanetEventsProperties struct {
	Data PlanetEventsData `json:"data"`
}

// PlanetEvents is the planet-events response (GeoJSON Feature).
type PlanetEvents struct {
	APIVersion  string                 `json:"apiversion"`
	Type        string                 `json:"type"`
	Geometry    GeoJSONPoint           `json:"geometry"`
	Properties  PlanetEventsProperties `json:"properties"`
	ArtifactRef *string                `json:"artifact_ref,omitempty"`
}

// SkyPlanetSummary is one planet's line in the sky overview.
type SkyPlanetSummary struct {
	Planet        Planet           `json:"planet"`
	Altitude      float64          `json:"altitude"`
	Azimuth       float64          `json:"azimuth"`
	Magnitude     float64          `json:"magnitude"`
	Constellation string           `json:"constellation"`
	Elongation    float64          `json:"elongation"`
	Visibility    VisibilityStatus `json:"visibility"`
	Direction     string           `json:"direction"`
}

// SkyMoonSummary is the moon block of the sky overview.
type SkyMoonSummary struct {
	Phase         string  `json:"phase"`
	Illumination  string  `json:"illumination"`
	NextPhase     *string `json:"next_phase,omitempty"`
	NextPhaseDate *string `json:"next_phase_date,omitempty"`
}

// SkyData is the complete sky summary for a date/time/location.
// VisiblePlanets is the subset of AllPlanets above the horizon and not lost
// in sunlight, sorted brightest first.
type SkyData struct {
	Date           string             `json:"date"`
	Time           string             `json:"time"`
	IsDark         bool               `json:"is_dark"`
	VisiblePlanets []SkyPlanetSummary `json:"visible_planets"`
	AllPlanets     []SkyPlanetSummary `json:"all_planets"`
	Moon           SkyMoonSummary     `json:"moon"`
	Summary        string             `json:"summary"`
}

// SkyProperties wraps SkyData inside the Feature.
type SkyProperties struct {
	Data SkyData `json:"data"`
}

// SkySnapshot is the sky summary response (GeoJSON Feature).
type SkySnapshot struct {
	APIVersion  string        `json:"apiversion"`
	Type        string        `json:"type"`
	Geometry    GeoJSONPoint  `json:"geometry"`
	Properties  SkyProperties `json:"properties"`
	ArtifactRef *string       `json:"artifact_ref,omitempty"`
}
