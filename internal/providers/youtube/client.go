package youtube

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

// API Docs: https://developers.google.com/youtube/v3/docs/search/list
const (
	DefaultBaseURL = "https://www.googleapis.com"
	providerName   = "youtube"
	searchPath     = "/youtube/v3/search"
)

var ErrMissingAPIKey = errors.New("youtube api key is not configured")

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

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// SearchVideos returns up to maxResults videos matching query.
func (c *Client) SearchVideos(ctx context.Context, query string, maxResults int) (videos []Video, err error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	start := time.Now()
	defer func() { c.observe("search", start, err) }()

	u, err := url.Parse(c.baseURL + searchPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	q := u.Query()
	q.Set("part", "snippet")
	q.Set("q", query)
	q.Set("type", "video")
	q.Set("maxResults", strconv.Itoa(maxResults))
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	}

	resp, err := providers.DoRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("youtube search: %w", err)
	}
	defer resp.Body.Close()

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("youtube search: failed to decode response: %w", err)
	}

	videos = make([]Video, 0, len(payload.Items))
	for _, item := range payload.Items {
		if item.ID.VideoID == "" {
			continue
		}
		videos = append(videos, item.toVideo())
	}
	return videos, nil
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
