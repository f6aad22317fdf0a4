package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"weather-api/internal/observability"
	"weather-api/internal/providers"

	"github.com/sony/gobreaker"
)

// API Docs: https://openweathermap.org/api/geocoding-api, https://openweathermap.org/current,
// https://openweathermap.org/forecast5
const (
	DefaultBaseURL = "https://api.openweathermap.org"
	providerName   = "openweather"
)

// ErrMissingAPIKey is returned by every call when no API key is configured.
var ErrMissingAPIKey = errors.New("openweather api key is not configured")

type Client struct {
	apiKey  string
	baseURL string
	httpCfg providers.HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	metrics *observability.Metrics
}

func NewClient(apiKey, baseURL string, httpClient *http.Client, metrics *observability.Metrics) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpCfg: providers.HTTPClientConfig{
			Client:  httpClient,
			Backoff: providers.DefaultBackoff,
		},
		circuit: providers.NewCircuitBreaker(providerName),
		metrics: metrics,
	}
}

// WithBackoff overrides the retry policy. Used by tests to keep retries fast.
func (c *Client) WithBackoff(b providers.BackoffConfig) *Client {
	c.httpCfg.Backoff = b
	return c
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// GeocodeDirect resolves a free-text place name.
func (c *Client) GeocodeDirect(ctx context.Context, query string, limit int) ([]GeoResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	var results []GeoResult
	if err := c.get(ctx, "geocode_direct", "/geo/1.0/direct", params, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// GeocodeReverse returns place names near the coordinates.
func (c *Client) GeocodeReverse(ctx context.Context, lat, lon float64, limit int) ([]GeoResult, error) {
	params := coordParams(lat, lon)
	params.Set("limit", strconv.Itoa(limit))

	var results []GeoResult
	if err := c.get(ctx, "geocode_reverse", "/geo/1.0/reverse", params, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// GeocodeZip resolves a postal code within a country. Returns nil, nil when the code is unknown.
func (c *Client) GeocodeZip(ctx context.Context, zip, countryCode string) (*GeoResult, error) {
	params := url.Values{}
	params.Set("zip", zip+","+countryCode)

	var result GeoResult
	err := c.get(ctx, "geocode_zip", "/geo/1.0/zip", params, &result)
	if providers.UpstreamStatus(err) == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CurrentWeather fetches current conditions. unit is "metric" or "imperial".
func (c *Client) CurrentWeather(ctx context.Context, lat, lon float64, unit string) (*CurrentWeather, error) {
	params := coordParams(lat, lon)
	params.Set("units", unit)

	var weather CurrentWeather
	if err := c.get(ctx, "current_weather", "/data/2.5/weather", params, &weather); err != nil {
		return nil, err
	}
	return &weather, nil
}

// Forecast fetches the 5 day / 3 hour forecast.
func (c *Client) Forecast(ctx context.Context, lat, lon float64, unit string) (*Forecast, error) {
	params := coordParams(lat, lon)
	params.Set("units", unit)

	var forecast Forecast
	if err := c.get(ctx, "forecast", "/data/2.5/forecast", params, &forecast); err != nil {
		return nil, err
	}
	return &forecast, nil
}

// Ping checks availability with a single-result geocoding request.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.GeocodeDirect(ctx, "London", 1)
	return err
}

func (c *Client) get(ctx context.Context, operation, path string, params url.Values, out interface{}) (err error) {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}

	start := time.Now()
	defer func() { c.observe(operation, start, err) }()

	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("failed to parse base URL: %w", err)
	}
	params.Set("appid", c.apiKey)
	u.RawQuery = params.Encode()

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	}

	resp, err := providers.DoRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return fmt.Errorf("openweather %s: %w", operation, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("openweather %s: failed to decode response: %w", operation, err)
	}
	return nil
}

func (c *Client) observe(operation string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.metrics.UpstreamRequests.WithLabelValues(providerName, operation, outcome).Inc()
	c.metrics.UpstreamDuration.WithLabelValues(providerName, operation).Observe(time.Since(start).Seconds())
}

func coordParams(lat, lon float64) url.Values {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return params
}
