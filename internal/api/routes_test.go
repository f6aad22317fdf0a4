package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"weather-api/internal/api/handlers"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type okPinger struct{}

func (okPinger) PingContext(ctx context.Context) error { return nil }

func testRouter() *mux.Router {
	return SetupRoutes(RouterConfig{
		WeatherHandler:       handlers.NewWeatherHandler(nil),
		LocationDataHandler:  handlers.NewLocationDataHandler(nil),
		LandmarkHandler:      handlers.NewLandmarkHandler(nil),
		SuggestionsHandler:   handlers.NewSuggestionsHandler(nil),
		WeatherRecordHandler: handlers.NewWeatherRecordHandler(nil, nil),
		RecordStatsHandler:   handlers.NewRecordStatsHandler(nil),
		RequestLogHandler:    handlers.NewRequestLogHandler(nil, nil),
		AuditLogHandler:      handlers.NewAuditLogHandler(nil),
		Database:             okPinger{},
	})
}

func TestRouteMatching(t *testing.T) {
	router := testRouter()

	tests := []struct {
		method string
		target string
		want   string
	}{
		{http.MethodGet, "/api/weather?location=Paris", "/api/weather"},
		{http.MethodGet, "/api/weather-records/stats", "/api/weather-records/stats"},
		{http.MethodGet, "/api/weather-records/export?format=pdf", "/api/weather-records/export"},
		{http.MethodGet, "/api/weather-records/12", "/api/weather-records/{id:[0-9]+}"},
		{http.MethodPut, "/api/weather-records", "/api/weather-records"},
		{http.MethodDelete, "/api/weather-records/3", "/api/weather-records/{id:[0-9]+}"},
		{http.MethodGet, "/api/audit-logs", "/api/audit-logs"},
		{http.MethodGet, "/health", "/health"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			var match mux.RouteMatch
			require.True(t, router.Match(httptest.NewRequest(tt.method, tt.target, nil), &match))
			require.NotNil(t, match.Route)
			tpl, err := match.Route.GetPathTemplate()
			require.NoError(t, err)
			assert.Equal(t, tt.want, tpl)
		})
	}
}

func TestUnknownMethodIsRejected(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "api record", path: "/api/weather-records/1"},
		{name: "api collection", path: "/api/weather-records"},
		{name: "health", path: "/health"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, tt.path, nil))
			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.JSONEq(t, `{"error":"Method not allowed"}`, rec.Body.String())
		})
	}
}

func TestUnknownAPIPathIsNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/forecasts", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
