// Package navy implements the provider backend backed by the US Navy
// Astronomical Applications API (https://aa.usno.navy.mil/data/api).
package navy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/domain"
	"github.com/chrishayuk/chuk-mcp-celestial/internal/celestial/provider"
)

// DefaultBaseURL is the public Navy API root.
const DefaultBaseURL = "https://aa.usno.navy.mil/api"

const defaultTimeout = 30 * time.Second

// Options configures the Navy API backend.
type Options struct {
	// BaseURL overrides the API root. Defaults to DefaultBaseURL.
	BaseURL string
	// Timeout bounds each request. Defaults to 30s.
	Timeout time.Duration
	// RetryMax is the number of retries on transient failures. Zero means
	// no retries, so transport errors surface on the first failure.
	RetryMax int
	// Logger receives request debug lines. Defaults to slog.Default().
	Logger *slog.Logger
}

// Backend calls the remote Navy API. It validates inputs before any
// network access and decodes responses straight into the domain models.
type Backend struct {
	baseURL string
	client  *retryablehttp.Client
	logger  *slog.Logger
}

var _ provider.Provider = (*Backend)(nil)

// New builds a Navy API backend.
func New(opts Options) *Backend {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	client := retryablehttp.NewClient()
	client.RetryMax = opts.RetryMax
	client.HTTPClient.Timeout = opts.Timeout
	client.Logger = nil
	// Retry only connection-level failures. HTTP error statuses are part of
	// the transport contract and must surface to the caller unchanged.
	client.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return err != nil, nil
	}

	return &Backend{
		baseURL: opts.BaseURL,
		client:  client,
		logger:  opts.Logger,
	}
}

// Name returns the registry kind.
func (b *Backend) Name() string { return string(provider.KindNavyAPI) }

// MoonPhases returns count principal-phase events from date forward.
func (b *Backend) MoonPhases(ctx context.Context, date time.Time, count int) (*domain.MoonPhasesResult, error) {
	if err := domain.ValidateMoonCount(count); err != nil {
		return nil, err
	}
	if err := domain.ValidateAlmanacYear(date.Year()); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("date", date.Format("2006-01-02"))
	params.Set("nump", strconv.Itoa(count))

	var out domain.MoonPhasesResult
	if err := b.getJSON(ctx, "/moon/phases/date", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SunMoonData returns one day of sun and moon events at a location.
func (b *Backend) SunMoonData(ctx context.Context, req provider.OneDayRequest) (*domain.DayAstronomy, error) {
	if err := domain.ValidateCoordinates(req.Latitude, req.Longitude); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("date", req.Date.Format("2006-01-02"))
	params.Set("coords", coords(req.Latitude, req.Longitude))
	if req.TZ != nil {
		params.Set("tz", formatFloat(*req.TZ))
	}
	if req.DST != nil {
		params.Set("dst", strconv.FormatBool(*req.DST))
	}
	if req.Label != nil {
		params.Set("label", domain.TruncateLabel(*req.Label))
	}

	var out domain.DayAstronomy
	if err := b.getJSON(ctx, "/rstt/oneday", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SolarEclipseByDate returns local eclipse circumstances for a date.
func (b *Backend) SolarEclipseByDate(ctx context.Context, req provider.EclipseRequest) (*domain.EclipseCircumstance, error) {
	if err := domain.ValidateCoordinates(req.Latitude, req.Longitude); err != nil {
		return nil, err
	}
	if err := domain.ValidateHeight(req.Height); err != nil {
		return nil, err
	}
	if err := domain.ValidateEclipseYear(req.Date.Year()); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("date", req.Date.Format("2006-01-02"))
	params.Set("coords", coords(req.Latitude, req.Longitude))
	params.Set("height", strconv.Itoa(req.Height))

	var out domain.EclipseCircumstance
	if err := b.getJSON(ctx, "/eclipses/solar/date", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SolarEclipsesByYear returns the worldwide eclipse catalog for a year.
func (b *Backend) SolarEclipsesByYear(ctx context.Context, year int) (*domain.EclipseYearCatalog, error) {
	if err := domain.ValidateEclipseYear(year); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("year", strconv.Itoa(year))

	var out domain.EclipseYearCatalog
	if err := b.getJSON(ctx, "/eclipses/solar/year", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Seasons returns the year's equinoxes, solstices and apsides.
func (b *Backend) Seasons(ctx context.Context, req provider.SeasonsRequest) (*domain.SeasonsResult, error) {
	if err := domain.ValidateAlmanacYear(req.Year); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("year", strconv.Itoa(req.Year))
	if req.TZ != nil {
		params.Set("tz", formatFloat(*req.TZ))
	}
	if req.DST != nil {
		params.Set("dst", strconv.FormatBool(*req.DST))
	}

	var out domain.SeasonsResult
	if err := b.getJSON(ctx, "/seasons", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *Backend) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	u := b.baseURL + path + "?" + params.Encode()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &domain.TransportError{URL: u, Err: err}
	}

	b.logger.Debug("navy api request", "url", u)
	resp, err := b.client.Do(req)
	if err != nil {
		return &domain.TransportError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &domain.TransportError{URL: u, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.TransportError{URL: u, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func coords(lat, lon float64) string {
	return formatFloat(lat) + "," + formatFloat(lon)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
