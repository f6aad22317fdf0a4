package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"weather-api/internal/events"
	"weather-api/internal/models"
	"weather-api/internal/providers/openweather"
	"weather-api/internal/providers/youtube"
	"weather-api/internal/repository"

	"gorm.io/gorm"
)

type fakeGeocoder struct {
	direct  map[string][]openweather.GeoResult
	reverse []openweather.GeoResult
	zip     map[string]*openweather.GeoResult
	err     error

	directCalls  int
	reverseCalls int
	zipCalls     []string
}

func (g *fakeGeocoder) GeocodeDirect(ctx context.Context, query string, limit int) ([]openweather.GeoResult, error) {
	g.directCalls++
	if g.err != nil {
		return nil, g.err
	}
	return g.direct[strings.ToLower(query)], nil
}

func (g *fakeGeocoder) GeocodeReverse(ctx context.Context, lat, lon float64, limit int) ([]openweather.GeoResult, error) {
	g.reverseCalls++
	if g.err != nil {
		return nil, g.err
	}
	return g.reverse, nil
}

func (g *fakeGeocoder) GeocodeZip(ctx context.Context, zip, countryCode string) (*openweather.GeoResult, error) {
	key := zip + "," + countryCode
	g.zipCalls = append(g.zipCalls, key)
	if g.err != nil {
		return nil, g.err
	}
	return g.zip[key], nil
}

type fakeLandmarkRepo struct {
	landmarks []models.Landmark
	err       error
}

func (r *fakeLandmarkRepo) List(ctx context.Context) ([]models.Landmark, error) {
	return r.landmarks, r.err
}

func (r *fakeLandmarkRepo) FindByName(ctx context.Context, name string) (*models.Landmark, error) {
	if r.err != nil {
		return nil, r.err
	}
	for i := range r.landmarks {
		if strings.EqualFold(r.landmarks[i].Name, strings.TrimSpace(name)) {
			return &r.landmarks[i], nil
		}
	}
	return nil, nil
}

func (r *fakeLandmarkRepo) SearchNames(ctx context.Context, fragment string, limit int) ([]string, error) {
	var names []string
	for _, l := range r.landmarks {
		if strings.Contains(strings.ToLower(l.Name), strings.ToLower(fragment)) {
			names = append(names, l.Name)
		}
	}
	return names, r.err
}

type fakeRecordRepo struct {
	mu      sync.Mutex
	records map[uint]models.WeatherRecord
	nextID  uint
	now     time.Time
	err     error
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{
		records: make(map[uint]models.WeatherRecord),
		now:     time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakeRecordRepo) Create(ctx context.Context, record *models.WeatherRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.nextID++
	r.now = r.now.Add(time.Minute)
	record.ID = r.nextID
	record.CreatedAt = r.now
	record.UpdatedAt = r.now
	r.records[record.ID] = *record
	return nil
}

func (r *fakeRecordRepo) GetByID(ctx context.Context, id uint) (*models.WeatherRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	record, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (r *fakeRecordRepo) List(ctx context.Context, filter repository.RecordFilter) ([]models.WeatherRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []models.WeatherRecord
	for _, record := range r.records {
		if filter.Location != "" && !strings.Contains(strings.ToLower(record.Location), strings.ToLower(filter.Location)) {
			continue
		}
		if filter.StartDate != nil && filter.EndDate != nil &&
			(record.StartDate.After(*filter.EndDate) || record.EndDate.Before(*filter.StartDate)) {
			continue
		}
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeRecordRepo) Update(ctx context.Context, record *models.WeatherRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[record.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.records[record.ID] = *record
	return nil
}

func (r *fakeRecordRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *fakeRecordRepo) DistinctLocations(ctx context.Context, fragment string, limit int) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, record := range r.records {
		if strings.Contains(strings.ToLower(record.Location), strings.ToLower(fragment)) && !seen[record.Location] {
			seen[record.Location] = true
			out = append(out, record.Location)
		}
	}
	sort.Strings(out)
	return out, nil
}

type fakeWeatherProvider struct {
	current  *openweather.CurrentWeather
	forecast *openweather.Forecast
	err      error

	currentCalls  int
	forecastCalls int
	units         []string
}

func (p *fakeWeatherProvider) CurrentWeather(ctx context.Context, lat, lon float64, unit string) (*openweather.CurrentWeather, error) {
	p.currentCalls++
	p.units = append(p.units, unit)
	if p.err != nil {
		return nil, p.err
	}
	copied := *p.current
	return &copied, nil
}

func (p *fakeWeatherProvider) Forecast(ctx context.Context, lat, lon float64, unit string) (*openweather.Forecast, error) {
	p.forecastCalls++
	p.units = append(p.units, unit)
	if p.err != nil {
		return nil, p.err
	}
	copied := *p.forecast
	copied.List = append([]openweather.ForecastEntry(nil), p.forecast.List...)
	return &copied, nil
}

type fakeAuditRepo struct {
	logs []models.AuditLog
}

func (r *fakeAuditRepo) ListAuditLogs(ctx context.Context, filter repository.AuditLogFilter) ([]models.AuditLog, int64, error) {
	return r.logs, int64(len(r.logs)), nil
}

func (r *fakeAuditRepo) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	r.logs = append(r.logs, *log)
	return nil
}

type recordingPublisher struct {
	events []events.RecordEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.RecordEvent) error {
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type fakeTimezones struct {
	name string
}

func (f fakeTimezones) GetTimezone(latitude, longitude float64) (string, error) {
	if f.name == "" {
		return "", fmt.Errorf("no timezone")
	}
	return f.name, nil
}

type fakeVideoSearcher struct {
	enabled bool
	videos  []youtube.Video
	err     error
	queries []string
}

func (f *fakeVideoSearcher) Enabled() bool { return f.enabled }

func (f *fakeVideoSearcher) SearchVideos(ctx context.Context, query string, maxResults int) ([]youtube.Video, error) {
	f.queries = append(f.queries, query)
	return f.videos, f.err
}

func seededLandmarks() *fakeLandmarkRepo {
	return &fakeLandmarkRepo{landmarks: []models.Landmark{
		{Name: "Eiffel Tower", Country: "France", Latitude: 48.8584, Longitude: 2.2945},
		{Name: "Big Ben", Country: "United Kingdom", Latitude: 51.5007, Longitude: -0.1246},
		{Name: "Christ the Redeemer", Country: "Brazil", Latitude: -22.9519, Longitude: -43.2105},
	}}
}

// forecastEntry builds a 3-hourly entry at t.
func forecastEntry(t time.Time, temp float64, humidity int, wind float64, description string) openweather.ForecastEntry {
	return openweather.ForecastEntry{
		Dt:      t.Unix(),
		Main:    openweather.MainStats{Temp: temp, FeelsLike: temp, TempMin: temp, TempMax: temp, Humidity: humidity},
		Wind:    openweather.Wind{Speed: wind},
		Weather: []openweather.Condition{{Description: description}},
		DtTxt:   t.UTC().Format("2006-01-02 15:04:05"),
	}
}

// fakeStatsRepo aggregates over a fakeRecordRepo and counts how often it is queried.
type fakeStatsRepo struct {
	records *fakeRecordRepo
	queries int
}

func (r *fakeStatsRepo) GetTotalRecords(ctx context.Context) (int64, error) {
	r.queries++
	r.records.mu.Lock()
	defer r.records.mu.Unlock()
	return int64(len(r.records.records)), nil
}

func (r *fakeStatsRepo) GetRecordsByLocation(ctx context.Context) (map[string]int64, error) {
	r.records.mu.Lock()
	defer r.records.mu.Unlock()
	counts := make(map[string]int64)
	for _, rec := range r.records.records {
		counts[rec.Location]++
	}
	return counts, nil
}

func (r *fakeStatsRepo) GetRecentlyAddedRecords(ctx context.Context, limit int) ([]models.WeatherRecord, error) {
	return r.records.List(ctx, repository.RecordFilter{Limit: limit})
}
