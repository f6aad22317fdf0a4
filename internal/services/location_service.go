package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"weather-api/internal/logger"
	"weather-api/internal/models"
	"weather-api/internal/observability"
	apperrors "weather-api/internal/pkg/errors"
	"weather-api/internal/providers"
	"weather-api/internal/providers/openweather"
	"weather-api/internal/repository"

	"github.com/sirupsen/logrus"
)

type LocationSource string

const (
	SourceCoordinates LocationSource = "coordinates"
	SourceLandmark    LocationSource = "landmark"
	SourcePostalCode  LocationSource = "postal_code"
	SourceGeocoding   LocationSource = "geocoding"
)

const defaultSuggestionLimit = 10

var coordinatePattern = regexp.MustCompile(`^-?\d+(\.\d+)?,\s*-?\d+(\.\d+)?$`)

// ResolvedLocation is a free-text query mapped to coordinates.
type ResolvedLocation struct {
	Query     string         `json:"query"`
	Name      string         `json:"name"`
	Latitude  float64        `json:"latitude"`
	Longitude float64        `json:"longitude"`
	Country   string         `json:"country,omitempty"`
	Source    LocationSource `json:"source"`
}

// Geocoder is the subset of the OpenWeather client used for location resolution.
type Geocoder interface {
	GeocodeDirect(ctx context.Context, query string, limit int) ([]openweather.GeoResult, error)
	GeocodeReverse(ctx context.Context, lat, lon float64, limit int) ([]openweather.GeoResult, error)
	GeocodeZip(ctx context.Context, zip, countryCode string) (*openweather.GeoResult, error)
}

type LocationService interface {
	Resolve(ctx context.Context, query string) (*ResolvedLocation, error)
	ListLandmarks(ctx context.Context) ([]models.Landmark, error)
	Suggest(ctx context.Context, search string, limit int) ([]string, error)
}

type locationService struct {
	geocoder     Geocoder
	landmarkRepo repository.LandmarkRepository
	recordRepo   repository.WeatherRecordRepository
	cache        CacheService
	cacheTTL     time.Duration
	metrics      *observability.Metrics
}

func NewLocationService(
	geocoder Geocoder,
	landmarkRepo repository.LandmarkRepository,
	recordRepo repository.WeatherRecordRepository,
	cache CacheService,
	cacheTTL time.Duration,
	metrics *observability.Metrics,
) LocationService {
	return &locationService{
		geocoder:     geocoder,
		landmarkRepo: landmarkRepo,
		recordRepo:   recordRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
		metrics:      metrics,
	}
}

// Resolve tries coordinates, then landmarks, then postal codes and finally direct geocoding.
func (s *locationService) Resolve(ctx context.Context, query string) (*ResolvedLocation, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.InvalidInput("Location is required")
	}

	if coordinatePattern.MatchString(query) {
		return s.resolveCoordinates(ctx, query)
	}

	landmark, err := s.landmarkRepo.FindByName(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "Error looking up landmark")
	}
	if landmark != nil {
		return &ResolvedLocation{
			Query:     query,
			Name:      landmark.Name,
			Latitude:  landmark.Latitude,
			Longitude: landmark.Longitude,
			Country:   landmark.Country,
			Source:    SourceLandmark,
		}, nil
	}

	cacheKey := "location:query:" + strings.ToLower(query)
	var cached ResolvedLocation
	if s.cacheLookup(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	loc, err := s.resolvePostalCode(ctx, query)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		loc, err = s.resolveByName(ctx, query)
		if err != nil {
			return nil, err
		}
	}

	s.cacheStore(ctx, cacheKey, loc)
	return loc, nil
}

func (s *locationService) resolveCoordinates(ctx context.Context, query string) (*ResolvedLocation, error) {
	parts := strings.SplitN(query, ",", 2)
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, lonErr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if latErr != nil || lonErr != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, apperrors.InvalidInput("Invalid coordinates. Latitude must be between -90 and 90, longitude between -180 and 180")
	}

	cacheKey := fmt.Sprintf("location:coords:%.4f,%.4f", lat, lon)
	var cached ResolvedLocation
	if s.cacheLookup(ctx, cacheKey, &cached) {
		cached.Query = query
		return &cached, nil
	}

	results, err := s.geocoder.GeocodeReverse(ctx, lat, lon, 1)
	if err != nil {
		return nil, upstreamError(err, "Failed to get location name from coordinates")
	}

	loc := &ResolvedLocation{
		Query:     query,
		Name:      fmt.Sprintf("%.4f, %.4f", lat, lon),
		Latitude:  lat,
		Longitude: lon,
		Source:    SourceCoordinates,
	}
	if len(results) > 0 {
		loc.Name = results[0].Name
		loc.Country = results[0].Country
	}

	s.cacheStore(ctx, cacheKey, loc)
	return loc, nil
}

// resolvePostalCode returns nil, nil when query is not a postal code or no country knows it.
func (s *locationService) resolvePostalCode(ctx context.Context, query string) (*ResolvedLocation, error) {
	for _, country := range MatchPostalCountries(query) {
		result, err := s.geocoder.GeocodeZip(ctx, zipQueryCode(query, country), country)
		if err != nil {
			if errors.Is(err, openweather.ErrMissingAPIKey) {
				return nil, upstreamError(err, "")
			}
			logger.LogEvent(logrus.WarnLevel, "Postal code lookup failed", logrus.Fields{
				"query":   query,
				"country": country,
				"error":   err.Error(),
			})
			continue
		}
		if result == nil {
			continue
		}
		return &ResolvedLocation{
			Query:     query,
			Name:      result.Name,
			Latitude:  result.Lat,
			Longitude: result.Lon,
			Country:   country,
			Source:    SourcePostalCode,
		}, nil
	}
	return nil, nil
}

func (s *locationService) resolveByName(ctx context.Context, query string) (*ResolvedLocation, error) {
	results, err := s.geocoder.GeocodeDirect(ctx, query, 1)
	if err != nil {
		return nil, upstreamError(err, "Failed to get location data: "+upstreamStatusText(err))
	}
	if len(results) == 0 {
		return nil, apperrors.LocationNotFound("Location not found")
	}

	first := results[0]
	return &ResolvedLocation{
		Query:     query,
		Name:      first.Name,
		Latitude:  first.Lat,
		Longitude: first.Lon,
		Country:   first.Country,
		Source:    SourceGeocoding,
	}, nil
}

func (s *locationService) ListLandmarks(ctx context.Context) ([]models.Landmark, error) {
	landmarks, err := s.landmarkRepo.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "Error fetching landmarks")
	}
	return landmarks, nil
}

// Suggest returns landmark names and saved record locations containing search. When nothing
// matches the whole term, each word is tried on its own.
func (s *locationService) Suggest(ctx context.Context, search string, limit int) ([]string, error) {
	search = strings.TrimSpace(search)
	if search == "" {
		return []string{}, nil
	}
	if limit <= 0 {
		limit = defaultSuggestionLimit
	}

	results, err := s.suggestFor(ctx, search, limit)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		for _, word := range strings.Fields(search) {
			more, err := s.suggestFor(ctx, word, limit)
			if err != nil {
				continue
			}
			results = append(results, more...)
		}
	}

	results = dedupeFold(results)
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *locationService) suggestFor(ctx context.Context, term string, limit int) ([]string, error) {
	names, err := s.landmarkRepo.SearchNames(ctx, term, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "Error performing search")
	}
	locations, err := s.recordRepo.DistinctLocations(ctx, term, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "Error performing search")
	}
	return append(names, locations...), nil
}

func (s *locationService) cacheLookup(ctx context.Context, key string, dst interface{}) bool {
	hit := getCached(ctx, s.cache, key, dst)
	if s.metrics != nil {
		s.metrics.CacheLookups.WithLabelValues("location", observability.CacheResult(hit)).Inc()
	}
	return hit
}

func (s *locationService) cacheStore(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		logger.LogEvent(logrus.WarnLevel, "Failed to cache location", logrus.Fields{"key": key, "error": err.Error()})
	}
}

// dedupeFold removes case-insensitive duplicates, keeping the first spelling.
func dedupeFold(values []string) []string {
	seen := make(map[string]bool, len(values))
	unique := make([]string, 0, len(values))
	for _, v := range values {
		key := strings.ToLower(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, v)
	}
	return unique
}

// upstreamError maps a provider failure to an API error and logs the cause.
func upstreamError(err error, message string) error {
	logger.LogEvent(logrus.ErrorLevel, "Upstream request failed", logrus.Fields{"error": err.Error()})

	if errors.Is(err, openweather.ErrMissingAPIKey) {
		return apperrors.Configuration("Weather service configuration error")
	}
	return apperrors.Upstream(providers.UpstreamStatus(err), message)
}

func upstreamStatusText(err error) string {
	var statusErr *providers.StatusError
	if errors.As(err, &statusErr) && statusErr.Status != "" {
		return statusErr.Status
	}
	if status := providers.UpstreamStatus(err); status != 0 {
		return http.StatusText(status)
	}
	return http.StatusText(http.StatusBadGateway)
}
