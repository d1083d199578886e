package navy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/domain"
	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/provider"
)

func testBackend(t *testing.T, handler http.HandlerFunc) (*Backend, *int) {
	t.Helper()
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return New(Options{BaseURL: srv.URL, Timeout: 5 * time.Second}), &requests
}

func TestMoonPhases_DecodesResponse(t *testing.T) {
	b, _ := testBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/moon/phases/date", r.URL.Path)
		assert.Equal(t, "2025-01-01", r.URL.Query().Get("date"))
		assert.Equal(t, "4", r.URL.Query().Get("nump"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"apiversion": "4.0.1",
			"year": 2025, "month": 1, "day": 1, "numphases": 1,
			"phasedata": [
				{"phase": "First Quarter", "year": 2025, "month": 1, "day": 6, "time": "23:56"}
			]
		}`))
	})

	result, err := b.MoonPhases(context.Background(), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 4)
	require.NoError(t, err)
	assert.Equal(t, "4.0.1", result.APIVersion)
	require.Len(t, result.PhaseData, 1)
	assert.Equal(t, domain.MoonPhaseFirstQuarter, result.PhaseData[0].Phase)
	assert.Equal(t, "23:56", result.PhaseData[0].Time)
}

func TestMoonPhases_ValidatesBeforeRequest(t *testing.T) {
	b, requests := testBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := b.MoonPhases(context.Background(), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 0)
	require.Error(t, err)
	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, 0, *requests, "invalid input must not reach the network")

	_, err = b.MoonPhases(context.Background(), time.Date(1650, 1, 1, 0, 0, 0, 0, time.UTC), 4)
	require.Error(t, err)
	assert.Equal(t, 0, *requests)
}

func TestSunMoonData_BuildsParams(t *testing.T) {
	tz := -8.0
	dst := true
	label := "a label longer than twenty characters"

	b, _ := testBackend(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/rstt/oneday", r.URL.Path)
		assert.Equal(t, "47.6,-122.33", q.Get("coords"))
		assert.Equal(t, "-8", q.Get("tz"))
		assert.Equal(t, "true", q.Get("dst"))
		assert.Len(t, q.Get("label"), 20)
		w.Write([]byte(`{"apiversion":"4.0.1","type":"Feature","geometry":{"type":"Point","coordinates":[-122.33,47.6]},"properties":{"data":{"year":2025,"month":6,"day":15,"day_of_week":"Sunday","tz":-8,"isdst":true,"sundata":[{"phen":"Rise","time":"05:11"}],"moondata":[],"closestphase":{"phase":"Full Moon","year":2025,"month":6,"day":11,"time":"07:44"},"curphase":"Waning Gibbous","fracillum":"79%"}}}`))
	})

	result, err := b.SunMoonData(context.Background(), provider.OneDayRequest{
		Date:      time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Latitude:  47.6,
		Longitude: -122.33,
		TZ:        &tz,
		DST:       &dst,
		Label:     &label,
	})
	require.NoError(t, err)
	assert.Equal(t, "Feature", result.Type)
	assert.Equal(t, "Sunday", result.Properties.Data.DayOfWeek)
	require.Len(t, result.Properties.Data.SunData, 1)
	assert.Equal(t, domain.PhenRise, result.Properties.Data.SunData[0].Phen)
	assert.Equal(t, "79%", result.Properties.Data.FracIllum)
}

func TestSunMoonData_RejectsBadCoordinates(t *testing.T) {
	b, requests := testBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := b.SunMoonData(context.Background(), provider.OneDayRequest{
		Date:     time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Latitude: 91,
	})
	require.Error(t, err)
	assert.Equal(t, 0, *requests)
}

func TestSolarEclipseByDate_ValidatesHeightAndYear(t *testing.T) {
	b, requests := testBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := b.SolarEclipseByDate(context.Background(), provider.EclipseRequest{
		Date:     time.Date(2024, 4, 8, 0, 0, 0, 0, time.UTC),
		Latitude: 40, Longitude: -83,
		Height: 20000,
	})
	require.Error(t, err)

	_, err = b.SolarEclipseByDate(context.Background(), provider.EclipseRequest{
		Date:     time.Date(2100, 4, 8, 0, 0, 0, 0, time.UTC),
		Latitude: 40, Longitude: -83,
	})
	require.Error(t, err)
	assert.Equal(t, 0, *requests)
}

func TestSolarEclipsesByYear_Decodes(t *testing.T) {
	b, _ := testBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/eclipses/solar/year", r.URL.Path)
		assert.Equal(t, "2024", r.URL.Query().Get("year"))
		w.Write([]byte(`{"apiversion":"4.0.1","year":2024,"eclipses_in_year":[
			{"year":2024,"month":4,"day":8,"event":"Total Solar Eclipse of 8 April 2024"},
			{"year":2024,"month":10,"day":2,"event":"Annular Solar Eclipse of 2 October 2024"}
		]}`))
	})

	result, err := b.SolarEclipsesByYear(context.Background(), 2024)
	require.NoError(t, err)
	require.Len(t, result.EclipsesInYear, 2)
	assert.Equal(t, 4, result.EclipsesInYear[0].Month)
}

func TestSeasons_Decodes(t *testing.T) {
	b, _ := testBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/seasons", r.URL.Path)
		w.Write([]byte(`{"apiversion":"4.0.1","year":2024,"tz":0,"dst":false,"data":[
			{"year":2024,"month":1,"day":2,"time":"19:39","phenom":"Perihelion"},
			{"year":2024,"month":3,"day":20,"time":"03:07","phenom":"Equinox"},
			{"year":2024,"month":6,"day":20,"time":"20:51","phenom":"Solstice"},
			{"year":2024,"month":7,"day":5,"time":"01:06","phenom":"Aphelion"},
			{"year":2024,"month":9,"day":22,"time":"12:44","phenom":"Equinox"},
			{"year":2024,"month":12,"day":21,"time":"09:20","phenom":"Solstice"}
		]}`))
	})

	result, err := b.Seasons(context.Background(), provider.SeasonsRequest{Year: 2024})
	require.NoError(t, err)
	require.Len(t, result.Data, 6)
	assert.Equal(t, domain.SeasonPerihelion, result.Data[0].Phenom)
}

func TestGetJSON_TransportErrorOnNon2xx(t *testing.T) {
	b, _ := testBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := b.SolarEclipsesByYear(context.Background(), 2024)
	require.Error(t, err)

	var terr *domain.TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, http.StatusServiceUnavailable, terr.StatusCode)
}

func TestName(t *testing.T) {
	b := New(Options{})
	assert.Equal(t, "navy_api", b.Name())
}
