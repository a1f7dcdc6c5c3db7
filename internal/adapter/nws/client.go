package nws

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/supermem613/noaacast/internal/domain"
	"github.com/supermem613/noaacast/internal/observability"
)

// Client fetches point forecasts from the National Weather Service API.
//
// The API is two-step: a points lookup resolves coordinates to a forecast
// grid and yields the three per-grid document URLs, which are then fetched
// on every refresh. The grid assignment of a coordinate is stable, so the
// lookup result is cached for the life of the client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	lat, lon   float64
	logger     *slog.Logger
	metrics    *observability.Metrics

	mu   sync.Mutex
	urls *forecastURLs
}

type forecastURLs struct {
	daily  string
	hourly string
	grid   string
}

// NewClient creates an NWS forecast client for a fixed coordinate.
func NewClient(baseURL, userAgent string, lat, lon float64, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:   baseURL,
		userAgent: userAgent,
		lat:       lat,
		lon:       lon,
		logger:    logger,
		metrics:   metrics,
	}
}

// Fetch retrieves the daily forecast, hourly forecast, and raw grid data
// documents for the client's coordinate.
func (c *Client) Fetch(ctx context.Context) (domain.RawForecastBundle, error) {
	urls, err := c.resolveURLs(ctx)
	if err != nil {
		return domain.RawForecastBundle{}, err
	}

	daily, err := c.get(ctx, urls.daily, "daily")
	if err != nil {
		return domain.RawForecastBundle{}, err
	}
	hourly, err := c.get(ctx, urls.hourly, "hourly")
	if err != nil {
		return domain.RawForecastBundle{}, err
	}
	grid, err := c.get(ctx, urls.grid, "grid")
	if err != nil {
		return domain.RawForecastBundle{}, err
	}

	return domain.RawForecastBundle{Daily: daily, Hourly: hourly, Grid: grid}, nil
}

// pointsResponse is the subset of the points document the client needs.
type pointsResponse struct {
	Properties struct {
		Forecast         string `json:"forecast"`
		ForecastHourly   string `json:"forecastHourly"`
		ForecastGridData string `json:"forecastGridData"`
	} `json:"properties"`
}

func (c *Client) resolveURLs(ctx context.Context) (*forecastURLs, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.urls != nil {
		return c.urls, nil
	}

	u := fmt.Sprintf("%s/points/%.4f,%.4f", c.baseURL, c.lat, c.lon)
	body, err := c.get(ctx, u, "points")
	if err != nil {
		return nil, err
	}

	var points pointsResponse
	if err := json.Unmarshal(body, &points); err != nil {
		return nil, fmt.Errorf("decode points response: %w", err)
	}
	p := points.Properties
	if p.Forecast == "" || p.ForecastHourly == "" || p.ForecastGridData == "" {
		return nil, fmt.Errorf("points response missing forecast URLs for %.4f,%.4f", c.lat, c.lon)
	}

	c.urls = &forecastURLs{
		daily:  p.Forecast,
		hourly: p.ForecastHourly,
		grid:   p.ForecastGridData,
	}
	c.logger.Info("resolved forecast grid",
		"daily", c.urls.daily,
		"hourly", c.urls.hourly,
		"grid", c.urls.grid)
	return c.urls, nil
}

func (c *Client) get(ctx context.Context, fullURL, document string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	// The NWS API requires an identifying User-Agent.
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/geo+json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamAPIDuration.WithLabelValues(document).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(document, "error").Inc()
		return nil, fmt.Errorf("%s request: %w", document, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.metrics.UpstreamRequests.WithLabelValues(document, "error").Inc()
		return nil, fmt.Errorf("weather API error: status %d: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(document, "error").Inc()
		return nil, fmt.Errorf("read %s response: %w", document, err)
	}

	c.metrics.UpstreamRequests.WithLabelValues(document, "success").Inc()
	return body, nil
}
