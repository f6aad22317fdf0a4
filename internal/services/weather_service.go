package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"weather-api/internal/logger"
	"weather-api/internal/observability"
	apperrors "weather-api/internal/pkg/errors"
	"weather-api/internal/providers/openweather"
	"weather-api/internal/timezone"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

const (
	UnitMetric   = "metric"
	UnitImperial = "imperial"

	forecastDays = 5
)

// WeatherProvider fetches raw conditions for a coordinate pair.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, lat, lon float64, unit string) (*openweather.CurrentWeather, error)
	Forecast(ctx context.Context, lat, lon float64, unit string) (*openweather.Forecast, error)
}

// WeatherReport is the response of a weather lookup.
type WeatherReport struct {
	Current  *openweather.CurrentWeather `json:"current"`
	Forecast ForecastReport              `json:"forecast"`
	Unit     string                      `json:"unit"`
	Location *ResolvedLocation           `json:"location"`
}

// ForecastReport holds one forecast entry per upcoming local day.
type ForecastReport struct {
	City openweather.City            `json:"city"`
	Cnt  int                         `json:"cnt"`
	List []openweather.ForecastEntry `json:"list"`
}

type WeatherService interface {
	Lookup(ctx context.Context, query, unit string) (*WeatherReport, error)
}

type weatherService struct {
	locations LocationService
	provider  WeatherProvider
	timezones timezone.Service
	clock     clockwork.Clock
}

func NewWeatherService(locations LocationService, provider WeatherProvider, timezones timezone.Service, clock clockwork.Clock) WeatherService {
	return &weatherService{
		locations: locations,
		provider:  provider,
		timezones: timezones,
		clock:     clock,
	}
}

func (s *weatherService) Lookup(ctx context.Context, query, unit string) (*WeatherReport, error) {
	unit, err := NormalizeUnit(unit)
	if err != nil {
		return nil, err
	}

	loc, err := s.locations.Resolve(ctx, query)
	if err != nil {
		return nil, err
	}

	current, err := s.provider.CurrentWeather(ctx, loc.Latitude, loc.Longitude, unit)
	if err != nil {
		return nil, upstreamError(err, "Failed to fetch weather data: "+upstreamStatusText(err))
	}

	forecast, err := s.provider.Forecast(ctx, loc.Latitude, loc.Longitude, unit)
	if err != nil {
		return nil, upstreamError(err, "Failed to fetch forecast data: "+upstreamStatusText(err))
	}

	current.Main.RoundTemperatures()
	current.Name = loc.Name

	zone := timezone.Resolve(s.timezones, loc.Latitude, loc.Longitude, forecast.City.Timezone)
	daily := DailyForecast(forecast.List, zone, s.clock.Now(), forecastDays)
	for i := range daily {
		daily[i].Main.RoundTemperatures()
	}

	logger.LogEvent(logrus.DebugLevel, "Weather lookup", logrus.Fields{
		"query":    query,
		"location": loc.Name,
		"source":   loc.Source,
		"timezone": zone.String(),
	})

	return &WeatherReport{
		Current: current,
		Forecast: ForecastReport{
			City: forecast.City,
			Cnt:  len(daily),
			List: daily,
		},
		Unit:     unit,
		Location: loc,
	}, nil
}

// NormalizeUnit defaults an empty unit to metric and rejects anything but metric or imperial.
func NormalizeUnit(unit string) (string, error) {
	unit = strings.ToLower(strings.TrimSpace(unit))
	switch unit {
	case "":
		return UnitMetric, nil
	case UnitMetric, UnitImperial:
		return unit, nil
	}
	return "", apperrors.InvalidInput(fmt.Sprintf("Invalid unit %q. Use metric or imperial", unit))
}

// DailyForecast keeps the first entry of each calendar day in loc, skipping the day of now,
// up to maxDays entries.
func DailyForecast(entries []openweather.ForecastEntry, loc *time.Location, now time.Time, maxDays int) []openweather.ForecastEntry {
	today := now.In(loc).Format(time.DateOnly)
	seen := make(map[string]bool, maxDays)
	daily := make([]openweather.ForecastEntry, 0, maxDays)

	for _, entry := range entries {
		day := time.Unix(entry.Dt, 0).In(loc).Format(time.DateOnly)
		if day == today || seen[day] {
			continue
		}
		seen[day] = true
		daily = append(daily, entry)
		if len(daily) == maxDays {
			break
		}
	}
	return daily
}

// cachedWeatherProvider serves repeated lookups for the same coordinates from the cache.
type cachedWeatherProvider struct {
	inner   WeatherProvider
	cache   CacheService
	ttl     time.Duration
	metrics *observability.Metrics
}

func NewCachedWeatherProvider(inner WeatherProvider, cache CacheService, ttl time.Duration, metrics *observability.Metrics) WeatherProvider {
	return &cachedWeatherProvider{inner: inner, cache: cache, ttl: ttl, metrics: metrics}
}

func (p *cachedWeatherProvider) CurrentWeather(ctx context.Context, lat, lon float64, unit string) (*openweather.CurrentWeather, error) {
	key := fmt.Sprintf("weather:current:%s:%.4f,%.4f", unit, lat, lon)

	var cached openweather.CurrentWeather
	if p.lookup(ctx, "current", key, &cached) {
		return &cached, nil
	}

	current, err := p.inner.CurrentWeather(ctx, lat, lon, unit)
	if err != nil {
		return nil, err
	}
	p.store(ctx, key, current)
	return current, nil
}

func (p *cachedWeatherProvider) Forecast(ctx context.Context, lat, lon float64, unit string) (*openweather.Forecast, error) {
	key := fmt.Sprintf("weather:forecast:%s:%.4f,%.4f", unit, lat, lon)

	var cached openweather.Forecast
	if p.lookup(ctx, "forecast", key, &cached) {
		return &cached, nil
	}

	forecast, err := p.inner.Forecast(ctx, lat, lon, unit)
	if err != nil {
		return nil, err
	}
	p.store(ctx, key, forecast)
	return forecast, nil
}

func (p *cachedWeatherProvider) lookup(ctx context.Context, kind, key string, dst interface{}) bool {
	hit := getCached(ctx, p.cache, key, dst)
	if p.metrics != nil {
		p.metrics.CacheLookups.WithLabelValues(kind, observability.CacheResult(hit)).Inc()
	}
	return hit
}

func (p *cachedWeatherProvider) store(ctx context.Context, key string, value interface{}) {
	if err := p.cache.Set(ctx, key, value, p.ttl); err != nil {
		logger.LogEvent(logrus.WarnLevel, "Failed to cache weather data", logrus.Fields{"key": key, "error": err.Error()})
	}
}
