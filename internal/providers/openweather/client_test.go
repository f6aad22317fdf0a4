package openweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"weather-api/internal/observability"
	"weather-api/internal/providers"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *observability.Metrics) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	metrics := observability.NewMetricsForTesting()
	client := NewClient("test-key", srv.URL, srv.Client(), metrics).WithBackoff(providers.BackoffConfig{
		MaxRetries:      1,
		InitialInterval: time.Millisecond,
		MaxInterval:     time.Millisecond,
	})
	return client, metrics
}

func TestGeocodeDirect(t *testing.T) {
	client, metrics := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geo/1.0/direct", r.URL.Path)
		assert.Equal(t, "São Paulo", r.URL.Query().Get("q"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		_, _ = w.Write([]byte(`[{"name":"São Paulo","lat":-23.5506507,"lon":-46.6333824,"country":"BR","state":"São Paulo"}]`))
	})

	results, err := client.GeocodeDirect(context.Background(), "São Paulo", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "BR", results[0].Country)
	assert.InDelta(t, -23.55, results[0].Lat, 0.01)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.UpstreamRequests.WithLabelValues("openweather", "geocode_direct", "success")))
}

func TestGeocodeReverseSendsCoordinates(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geo/1.0/reverse", r.URL.Path)
		assert.Equal(t, "48.8566", r.URL.Query().Get("lat"))
		assert.Equal(t, "2.3522", r.URL.Query().Get("lon"))
		_, _ = w.Write([]byte(`[{"name":"Paris","lat":48.8566,"lon":2.3522,"country":"FR"}]`))
	})

	results, err := client.GeocodeReverse(context.Background(), 48.8566, 2.3522, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Paris", results[0].Name)
}

func TestGeocodeZip(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geo/1.0/zip", r.URL.Path)
		if r.URL.Query().Get("zip") == "90210,US" {
			_, _ = w.Write([]byte(`{"zip":"90210","name":"Beverly Hills","lat":34.0901,"lon":-118.4065,"country":"US"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"cod":"404","message":"not found"}`))
	})

	result, err := client.GeocodeZip(context.Background(), "90210", "US")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "Beverly Hills", result.Name)

	missing, err := client.GeocodeZip(context.Background(), "90210", "DE")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCurrentWeatherAndForecast(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "imperial", r.URL.Query().Get("units"))
		switch r.URL.Path {
		case "/data/2.5/weather":
			_, _ = w.Write([]byte(`{"coord":{"lon":-0.13,"lat":51.51},"weather":[{"id":500,"main":"Rain","description":"light rain","icon":"10d"}],
				"main":{"temp":57.6,"feels_like":56.9,"temp_min":55.2,"temp_max":59.1,"pressure":1012,"humidity":81},
				"wind":{"speed":9.2,"deg":240},"dt":1714564800,"timezone":3600,"name":"London","cod":200}`))
		case "/data/2.5/forecast":
			_, _ = w.Write([]byte(`{"cod":"200","message":0,"cnt":1,"list":[{"dt":1714575600,"main":{"temp":58.1,"humidity":77},
				"weather":[{"description":"overcast clouds"}],"wind":{"speed":7.1},"dt_txt":"2024-05-01 15:00:00"}],
				"city":{"name":"London","country":"GB","timezone":3600}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	current, err := client.CurrentWeather(context.Background(), 51.51, -0.13, "imperial")
	require.NoError(t, err)
	assert.Equal(t, "London", current.Name)
	assert.Equal(t, 81, current.Main.Humidity)
	assert.Equal(t, "light rain", current.Weather[0].Description)

	forecast, err := client.Forecast(context.Background(), 51.51, -0.13, "imperial")
	require.NoError(t, err)
	require.Len(t, forecast.List, 1)
	assert.Equal(t, "overcast clouds", forecast.List[0].Description())
	assert.Equal(t, 3600, forecast.City.Timezone)
}

func TestUnauthorizedIsNotRetried(t *testing.T) {
	calls := 0
	client, metrics := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key."}`))
	})

	_, err := client.GeocodeDirect(context.Background(), "Paris", 1)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, providers.UpstreamStatus(err))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.UpstreamRequests.WithLabelValues("openweather", "geocode_direct", "error")))
}

func TestMissingAPIKey(t *testing.T) {
	client := NewClient("", "http://127.0.0.1:0", nil, nil)

	_, err := client.Forecast(context.Background(), 1, 1, "metric")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.False(t, client.Configured())
}

func TestRoundTemperatures(t *testing.T) {
	m := MainStats{Temp: 21.5, FeelsLike: -3.5, TempMin: 19.49, TempMax: 24.51}
	m.RoundTemperatures()

	assert.Equal(t, 22.0, m.Temp)
	assert.Equal(t, -4.0, m.FeelsLike)
	assert.Equal(t, 19.0, m.TempMin)
	assert.Equal(t, 25.0, m.TempMax)
}
