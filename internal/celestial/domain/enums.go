package domain

import "strings"

// MoonPhase is one of the four principal lunar phases.
type MoonPhase string

const (
	MoonPhaseNew          MoonPhase = "New Moon"
	MoonPhaseFirstQuarter MoonPhase = "First Quarter"
	MoonPhaseFull         MoonPhase = "Full Moon"
	MoonPhaseLastQuarter  MoonPhase = "Last Quarter"
)

// PrincipalPhases lists the phases in cycle order starting at New Moon.
var PrincipalPhases = []MoonPhase{
	MoonPhaseNew,
	MoonPhaseFirstQuarter,
	MoonPhaseFull,
	MoonPhaseLastQuarter,
}

// IsValid returns true if the phase is one of the four principal phases.
func (p MoonPhase) IsValid() bool {
	switch p {
	case MoonPhaseNew, MoonPhaseFirstQuarter, MoonPhaseFull, MoonPhaseLastQuarter:
		return true
	}
	return false
}

// Next returns the phase that follows p in the lunar cycle.
func (p MoonPhase) Next() MoonPhase {
	for i, phase := range PrincipalPhases {
		if phase == p {
			return PrincipalPhases[(i+1)%len(PrincipalPhases)]
		}
	}
	return p
}

// Phenomenon tags a sun/moon rise, set, transit or twilight occurrence.
type Phenomenon string

const (
	PhenRise               Phenomenon = "Rise"
	PhenSet                Phenomenon = "Set"
	PhenUpperTransit       Phenomenon = "Upper Transit"
	PhenBeginCivilTwilight Phenomenon = "Begin Civil Twilight"
	PhenEndCivilTwilight   Phenomenon = "End Civil Twilight"
)

// SeasonPhenomenon tags one of Earth's orbital milestones.
type SeasonPhenomenon string

const (
	SeasonEquinox    SeasonPhenomenon = "Equinox"
	SeasonSolstice   SeasonPhenomenon = "Solstice"
	SeasonPerihelion SeasonPhenomenon = "Perihelion"
	SeasonAphelion   SeasonPhenomenon = "Aphelion"
)

// Planet names a solar-system body supported by the planet tools.
type Planet string

const (
	PlanetMercury Planet = "Mercury"
	PlanetVenus   Planet = "Venus"
	PlanetMars    Planet = "Mars"
	PlanetJupiter Planet = "Jupiter"
	PlanetSaturn  Planet = "Saturn"
	PlanetUranus  Planet = "Uranus"
	PlanetNeptune Planet = "Neptune"
	PlanetPluto   Planet = "Pluto"
)

// AllPlanets lists the supported bodies in distance order from the sun.
var AllPlanets = []Planet{
	PlanetMercury,
	PlanetVenus,
	PlanetMars,
	PlanetJupiter,
	PlanetSaturn,
	PlanetUranus,
	PlanetNeptune,
	PlanetPluto,
}

var planetValues = func() map[string]Planet {
	m := make(map[string]Planet, len(AllPlanets))
	for _, p := range AllPlanets {
		m[strings.ToLower(string(p))] = p
	}
	return m
}()

// ParsePlanet resolves a case-insensitive planet name.
func ParsePlanet(s string) (Planet, error) {
	p, ok := planetValues[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", &ValidationError{Field: "planet", Value: s, Reason: "unknown planet name"}
	}
	return p, nil
}

// IsValid returns true if the planet is a supported body.
func (p Planet) IsValid() bool {
	_, ok := planetValues[strings.ToLower(string(p))]
	return ok
}

// VisibilityStatus classifies whether a planet can practically be observed.
type VisibilityStatus string

const (
	VisibilityVisible        VisibilityStatus = "visible"
	VisibilityBelowHorizon   VisibilityStatus = "below_horizon"
	VisibilityLostInSunlight VisibilityStatus = "lost_in_sunlight"
)

// IsValid returns true if the status is a known classification.
func (v VisibilityStatus) IsValid() bool {
	switch v {
	case VisibilityVisible, VisibilityBelowHorizon, VisibilityLostInSunlight:
		return true
	}
	return false
}
