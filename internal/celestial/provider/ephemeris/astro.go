package ephemeris

import (
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
)

const (
	synodicMonth = 29.530588853 // mean days between like phases
	auKilometers = 149597870.7
)

// timeToJD converts a UTC instant to a Julian day (UT).
func timeToJD(t time.Time) float64 {
	t = t.UTC()
	day := float64(t.Day()) +
		(float64(t.Hour())+float64(t.Minute())/60+float64(t.Second())/3600)/24
	return julian.CalendarGregorianToJD(t.Year(), int(t.Month()), day)
}

// jdToTime converts a Julian day (UT) back to a UTC instant, rounded to the
// nearest second.
func jdToTime(jd float64) time.Time {
	y, m, d := julian.JDToCalendar(jd)
	day := math.Floor(d)
	sec := (d - day) * 86400
	return time.Date(y, time.Month(m), int(day), 0, 0, int(math.Round(sec)), 0, time.UTC)
}

// julianYear converts a Julian day to a decimal year, the argument form the
// phase and apsis series take.
func julianYear(jd float64) float64 {
	return 2000 + (jd-base.J2000)/365.25
}

// deltaT approximates TT−UT1 in seconds for a calendar year using the
// Espenak-Meeus polynomial fits. Accurate to a few seconds over 1700-2100.
func deltaT(year float64) float64 {
	switch {
	case year < 1800:
		t := year - 1700
		return 8.83 + 0.1603*t - 0.0059285*t*t + 0.00013336*t*t*t - t*t*t*t/1174000
	case year < 1860:
		t := year - 1800
		return 13.72 - 0.332447*t + 0.0068612*t*t + 0.0041116*t*t*t - 0.00037436*t*t*t*t +
			0.0000121272*math.Pow(t, 5) - 0.0000001699*math.Pow(t, 6) + 0.000000000875*math.Pow(t, 7)
	case year < 1900:
		t := year - 1860
		return 7.62 + 0.5737*t - 0.251754*t*t + 0.01680668*t*t*t -
			0.0004473624*t*t*t*t + math.Pow(t, 5)/233174
	case year < 1920:
		t := year - 1900
		return -2.79 + 1.494119*t - 0.0598939*t*t + 0.0061966*t*t*t - 0.000197*t*t*t*t
	case year < 1941:
		t := year - 1920
		return 21.20 + 0.84493*t - 0.076100*t*t + 0.0020936*t*t*t
	case year < 1961:
		t := year - 1950
		return 29.07 + 0.407*t - t*t/233 + t*t*t/2547
	case year < 1986:
		t := year - 1975
		return 45.45 + 1.067*t - t*t/260 - t*t*t/718
	case year < 2005:
		t := year - 2000
		return 63.86 + 0.3345*t - 0.060374*t*t + 0.0017275*t*t*t +
			0.000651814*t*t*t*t + 0.00002373599*math.Pow(t, 5)
	case year < 2050:
		t := year - 2000
		return 62.92 + 0.32217*t + 0.005589*t*t
	default:
		u := (year - 1820) / 100
		return -20 + 32*u*u - 0.5628*(2150-year)
	}
}

// ttToUT converts a dynamical-time Julian day (JDE) to UT.
func ttToUT(jde float64) float64 {
	y, _, _ := julian.JDToCalendar(jde)
	return jde - deltaT(float64(y))/86400
}

// utToTT converts a UT Julian day to dynamical time (JDE).
func utToTT(jd float64) float64 {
	y, _, _ := julian.JDToCalendar(jd)
	return jd + deltaT(float64(y))/86400
}

// horizontal converts equatorial coordinates to altitude and north-based
// azimuth, both in degrees. gstDeg is Greenwich apparent sidereal time in
// degrees; raDeg/decDeg the body's apparent RA and declination; latDeg and
// lonDeg the observer position, longitude east-positive.
func horizontal(gstDeg, raDeg, decDeg, latDeg, lonDeg float64) (alt, az float64) {
	haRad := wrapDeg(gstDeg+lonDeg-raDeg) * math.Pi / 180
	latRad := latDeg * math.Pi / 180
	decRad := decDeg * math.Pi / 180

	sinAlt := math.Sin(latRad)*math.Sin(decRad) + math.Cos(latRad)*math.Cos(decRad)*math.Cos(haRad)
	alt = math.Asin(clamp(sinAlt, -1, 1)) * 180 / math.Pi

	// Azimuth from south, westward; shift to north-based.
	azSouth := math.Atan2(math.Sin(haRad),
		math.Cos(haRad)*math.Sin(latRad)-math.Tan(decRad)*math.Cos(latRad)) * 180 / math.Pi
	az = wrapDeg(azSouth + 180)
	return alt, az
}

// angularSeparation returns the angle in degrees between two directions
// given as (longitude, latitude) pairs in degrees on the same sphere.
func angularSeparation(lon1, lat1, lon2, lat2 float64) float64 {
	r := math.Pi / 180
	cosSep := math.Sin(lat1*r)*math.Sin(lat2*r) +
		math.Cos(lat1*r)*math.Cos(lat2*r)*math.Cos((lon1-lon2)*r)
	return math.Acos(clamp(cosSep, -1, 1)) / r
}

func wrapDeg(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// formatRA renders right ascension degrees as "HHh MMm SS.Ss".
func formatRA(raDeg float64) string {
	hours := wrapDeg(raDeg) / 15
	h := int(hours)
	m := int((hours - float64(h)) * 60)
	s := (hours-float64(h))*3600 - float64(m)*60
	return fmt.Sprintf("%02dh %02dm %04.1fs", h, m, s)
}

// formatDec renders declination degrees as "+DD° MM' SS\"".
func formatDec(decDeg float64) string {
	sign := "+"
	if decDeg < 0 {
		sign = "-"
		decDeg = -decDeg
	}
	d := int(decDeg)
	m := int((decDeg - float64(d)) * 60)
	s := (decDeg-float64(d))*3600 - float64(m)*60
	return fmt.Sprintf("%s%02d° %02d' %02.0f\"", sign, d, m, s)
}

// formatClock renders seconds-of-day as HH:MM, wrapping at 24h.
func formatClock(sec float64) string {
	sec = math.Mod(sec, 86400)
	if sec < 0 {
		sec += 86400
	}
	min := int(math.Round(sec / 60))
	if min >= 1440 {
		min -= 1440
	}
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// zodiacBand maps geocentric ecliptic longitude to the IAU constellation the
// ecliptic crosses there. Boundaries follow the modern IAU borders, so
// Ophiuchus appears between Scorpius and Sagittarius.
var zodiacBand = []struct {
	upTo float64
	name string
}{
	{29.09, "Pisces"},
	{53.47, "Aries"},
	{90.43, "Taurus"},
	{118.26, "Gemini"},
	{138.18, "Cancer"},
	{174.15, "Leo"},
	{217.80, "Virgo"},
	{241.14, "Libra"},
	{248.06, "Scorpius"},
	{266.60, "Ophiuchus"},
	{299.71, "Sagittarius"},
	{327.89, "Capricornus"},
	{351.57, "Aquarius"},
	{360.01, "Pisces"},
}

// constellation returns the zodiac-band constellation for an ecliptic
// longitude in degrees.
func constellation(eclLonDeg float64) string {
	lon := wrapDeg(eclLonDeg)
	for _, band := range zodiacBand {
		if lon < band.upTo {
			return band.name
		}
	}
	return "Pisces"
}
