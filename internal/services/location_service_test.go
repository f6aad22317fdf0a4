package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"weather-api/internal/models"
	apperrors "weather-api/internal/pkg/errors"
	"weather-api/internal/providers"
	"weather-api/internal/providers/openweather"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocationService(geo *fakeGeocoder, records *fakeRecordRepo) LocationService {
	if records == nil {
		records = newFakeRecordRepo()
	}
	return NewLocationService(geo, seededLandmarks(), records, NewMemoryCacheService(time.Minute), time.Minute, nil)
}

func TestResolveCoordinates(t *testing.T) {
	geo := &fakeGeocoder{reverse: []openweather.GeoResult{{Name: "Paris", Country: "FR"}}}
	svc := newTestLocationService(geo, nil)

	loc, err := svc.Resolve(context.Background(), "48.8566, 2.3522")
	require.NoError(t, err)
	assert.Equal(t, "Paris", loc.Name)
	assert.Equal(t, "FR", loc.Country)
	assert.Equal(t, 48.8566, loc.Latitude)
	assert.Equal(t, 2.3522, loc.Longitude)
	assert.Equal(t, SourceCoordinates, loc.Source)
}

func TestResolveCoordinatesWithoutReverseMatch(t *testing.T) {
	svc := newTestLocationService(&fakeGeocoder{}, nil)

	loc, err := svc.Resolve(context.Background(), "10.5,-20.25")
	require.NoError(t, err)
	assert.Equal(t, "10.5000, -20.2500", loc.Name)
}

func TestResolveCoordinatesOutOfRange(t *testing.T) {
	geo := &fakeGeocoder{}
	svc := newTestLocationService(geo, nil)

	_, err := svc.Resolve(context.Background(), "95,10")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))
	assert.Contains(t, err.Error(), "Latitude must be between -90 and 90")
	assert.Zero(t, geo.reverseCalls)
}

func TestResolveLandmarkSkipsGeocoder(t *testing.T) {
	geo := &fakeGeocoder{}
	svc := newTestLocationService(geo, nil)

	loc, err := svc.Resolve(context.Background(), "  eiffel TOWER ")
	require.NoError(t, err)
	assert.Equal(t, "Eiffel Tower", loc.Name)
	assert.Equal(t, 48.8584, loc.Latitude)
	assert.Equal(t, SourceLandmark, loc.Source)
	assert.Zero(t, geo.directCalls)
	assert.Empty(t, geo.zipCalls)
}

func TestResolvePostalCodeUsesOutwardCodeForUK(t *testing.T) {
	geo := &fakeGeocoder{zip: map[string]*openweather.GeoResult{
		"SW1A,GB": {Name: "London", Lat: 51.5, Lon: -0.14, Country: "GB"},
	}}
	svc := newTestLocationService(geo, nil)

	loc, err := svc.Resolve(context.Background(), "sw1a 1aa")
	require.NoError(t, err)
	assert.Equal(t, "London", loc.Name)
	assert.Equal(t, "GB", loc.Country)
	assert.Equal(t, SourcePostalCode, loc.Source)
	assert.Equal(t, []string{"SW1A,GB"}, geo.zipCalls)
}

func TestResolvePostalCodeTriesCountriesInOrder(t *testing.T) {
	geo := &fakeGeocoder{zip: map[string]*openweather.GeoResult{
		"10115,DE": {Name: "Berlin", Lat: 52.53, Lon: 13.38},
	}}
	svc := newTestLocationService(geo, nil)

	loc, err := svc.Resolve(context.Background(), "10115")
	require.NoError(t, err)
	assert.Equal(t, "Berlin", loc.Name)
	assert.Equal(t, "DE", loc.Country)
	assert.Equal(t, []string{"10115,US", "10115,DE"}, geo.zipCalls)
}

func TestResolveFallsBackToDirectGeocoding(t *testing.T) {
	geo := &fakeGeocoder{direct: map[string][]openweather.GeoResult{
		"springfield": {{Name: "Springfield", Lat: 39.8, Lon: -89.6, Country: "US"}},
	}}
	svc := newTestLocationService(geo, nil)

	loc, err := svc.Resolve(context.Background(), "Springfield")
	require.NoError(t, err)
	assert.Equal(t, "Springfield", loc.Name)
	assert.Equal(t, SourceGeocoding, loc.Source)
	assert.Equal(t, "Springfield", loc.Query)
}

func TestResolveUnknownLocation(t *testing.T) {
	svc := newTestLocationService(&fakeGeocoder{}, nil)

	_, err := svc.Resolve(context.Background(), "Atlantis")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrLocationNotFound)
	assert.Equal(t, http.StatusNotFound, apperrors.StatusOf(err))
	assert.Equal(t, "Location not found", err.Error())
}

func TestResolveEmptyQuery(t *testing.T) {
	svc := newTestLocationService(&fakeGeocoder{}, nil)

	_, err := svc.Resolve(context.Background(), "   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Equal(t, "Location is required", err.Error())
}

func TestResolveCachesGeocodedQueries(t *testing.T) {
	geo := &fakeGeocoder{direct: map[string][]openweather.GeoResult{
		"lisbon": {{Name: "Lisbon", Lat: 38.72, Lon: -9.14, Country: "PT"}},
	}}
	svc := newTestLocationService(geo, nil)

	first, err := svc.Resolve(context.Background(), "Lisbon")
	require.NoError(t, err)
	second, err := svc.Resolve(context.Background(), "lisbon")
	require.NoError(t, err)

	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, 1, geo.directCalls)
}

func TestResolveUpstreamStatusIsPreserved(t *testing.T) {
	geo := &fakeGeocoder{err: &providers.StatusError{StatusCode: http.StatusUnauthorized, Status: "401 Unauthorized"}}
	svc := newTestLocationService(geo, nil)

	_, err := svc.Resolve(context.Background(), "Oslo")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
	assert.Equal(t, http.StatusUnauthorized, apperrors.StatusOf(err))
	assert.Equal(t, "Failed to get location data: 401 Unauthorized", err.Error())
}

func TestResolveMissingAPIKey(t *testing.T) {
	geo := &fakeGeocoder{err: openweather.ErrMissingAPIKey}
	svc := newTestLocationService(geo, nil)

	_, err := svc.Resolve(context.Background(), "Oslo")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
	assert.Equal(t, "Weather service configuration error", err.Error())
}

func TestSuggestMergesLandmarksAndRecords(t *testing.T) {
	records := newFakeRecordRepo()
	require.NoError(t, records.Create(context.Background(), &models.WeatherRecord{Location: "big ben"}))
	require.NoError(t, records.Create(context.Background(), &models.WeatherRecord{Location: "Bigfork"}))
	svc := newTestLocationService(&fakeGeocoder{}, records)

	got, err := svc.Suggest(context.Background(), "big", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Big Ben", "Bigfork"}, got)
}

func TestSuggestFallsBackToSingleWords(t *testing.T) {
	svc := newTestLocationService(&fakeGeocoder{}, nil)

	got, err := svc.Suggest(context.Background(), "tower of pisa", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Eiffel Tower"}, got)
}

func TestSuggestEmptySearch(t *testing.T) {
	svc := newTestLocationService(&fakeGeocoder{}, nil)

	got, err := svc.Suggest(context.Background(), " ", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
