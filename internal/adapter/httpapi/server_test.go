package httpapi_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supermem613/noaacast/internal/adapter/httpapi"
	"github.com/supermem613/noaacast/internal/domain"
)

type mockSource struct {
	forecast    *domain.DisplayForecast
	generatedAt time.Time
	readyErr    error
}

func (m *mockSource) Latest() (*domain.DisplayForecast, time.Time, bool) {
	if m.forecast == nil {
		return nil, time.Time{}, false
	}
	return m.forecast, m.generatedAt, true
}

func (m *mockSource) CheckReadiness(_ context.Context) error { return m.readyErr }

func newTestServer(source *mockSource) *httpapi.Server {
	return httpapi.NewServer(":0", source, slog.Default())
}

func TestForecastReturnsLatest(t *testing.T) {
	forecast := &domain.DisplayForecast{
		Summary: "Sunny",
		Currently: domain.CurrentConditions{
			Temperature: "40°",
			TempRange:   domain.TempRange{High: "44°", Low: "33°"},
		},
	}
	srv := newTestServer(&mockSource{
		forecast:    forecast,
		generatedAt: time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC),
	})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/forecast", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		GeneratedAt time.Time              `json:"generatedAt"`
		Forecast    domain.DisplayForecast `json:"forecast"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Sunny", body.Forecast.Summary)
	assert.Equal(t, "40°", body.Forecast.Currently.Temperature)
	assert.Equal(t, 2026, body.GeneratedAt.Year())
}

func TestForecastReturns503BeforeFirstRefresh(t *testing.T) {
	srv := newTestServer(&mockSource{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/forecast", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "no forecast")
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(&mockSource{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(&mockSource{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(&mockSource{readyErr: fmt.Errorf("no forecast yet")})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "no forecast yet", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&mockSource{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
