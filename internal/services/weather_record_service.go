package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"weather-api/internal/events"
	"weather-api/internal/logger"
	"weather-api/internal/models"
	"weather-api/internal/observability"
	apperrors "weather-api/internal/pkg/errors"
	"weather-api/internal/repository"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const recordEntityType = "weather_record"

type CreateRecordInput struct {
	Location  string `json:"location" validate:"required"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
}

// UpdateRecordInput carries the fields to change. Empty strings leave a field as is.
type UpdateRecordInput struct {
	Location  string `json:"location"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type WeatherRecordService interface {
	CreateRecord(ctx context.Context, input CreateRecordInput) (*models.WeatherRecord, error)
	ListRecords(ctx context.Context, filter repository.RecordFilter) ([]models.WeatherRecord, error)
	GetRecord(ctx context.Context, id uint) (*models.WeatherRecord, error)
	UpdateRecord(ctx context.Context, id uint, input UpdateRecordInput) (*models.WeatherRecord, error)
	DeleteRecord(ctx context.Context, id uint) error
}

type weatherRecordService struct {
	repo      repository.WeatherRecordRepository
	locations LocationService
	provider  WeatherProvider
	audit     AuditLogService
	publisher events.Publisher
	cache     CacheService
	clock     clockwork.Clock
	metrics   *observability.Metrics
}

func NewWeatherRecordService(
	repo repository.WeatherRecordRepository,
	locations LocationService,
	provider WeatherProvider,
	audit AuditLogService,
	publisher events.Publisher,
	cache CacheService,
	clock clockwork.Clock,
	metrics *observability.Metrics,
) WeatherRecordService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &weatherRecordService{
		repo:      repo,
		locations: locations,
		provider:  provider,
		audit:     audit,
		publisher: publisher,
		cache:     cache,
		clock:     clock,
		metrics:   metrics,
	}
}

func (s *weatherRecordService) CreateRecord(ctx context.Context, input CreateRecordInput) (*models.WeatherRecord, error) {
	start, err := ParseRecordDate(input.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := ParseRecordDate(input.EndDate)
	if err != nil {
		return nil, err
	}
	if err := ValidateDateRange(start, end, s.clock.Now()); err != nil {
		return nil, err
	}

	query := strings.TrimSpace(input.Location)
	loc, err := s.resolveForRecord(ctx, query)
	if err != nil {
		return nil, err
	}

	summary, err := s.summarize(ctx, loc.Latitude, loc.Longitude, start, end)
	if err != nil {
		return nil, err
	}

	record := &models.WeatherRecord{
		Location:  query,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		StartDate: start,
		EndDate:   end,
	}
	record.ApplySummary(summary)

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, apperrors.Wrap(err, "Failed to create weather record")
	}

	s.recordChange(ctx, models.AuditCreate, events.RecordCreated, record.ID, record)
	return record, nil
}

func (s *weatherRecordService) ListRecords(ctx context.Context, filter repository.RecordFilter) ([]models.WeatherRecord, error) {
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to fetch weather records")
	}
	return records, nil
}

func (s *weatherRecordService) GetRecord(ctx context.Context, id uint) (*models.WeatherRecord, error) {
	if id == 0 {
		return nil, apperrors.InvalidInput("Record ID is required")
	}
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to fetch weather record")
	}
	if record == nil {
		return nil, apperrors.NotFound("Record not found")
	}
	return record, nil
}

// UpdateRecord applies the given fields. Changing the location or either date recomputes
// the weather summary for the resulting location and range.
func (s *weatherRecordService) UpdateRecord(ctx context.Context, id uint, input UpdateRecordInput) (*models.WeatherRecord, error) {
	if id == 0 {
		return nil, apperrors.InvalidInput("Record ID is required")
	}

	var newStart, newEnd *time.Time
	if strings.TrimSpace(input.StartDate) != "" {
		t, err := ParseRecordDate(input.StartDate)
		if err != nil {
			return nil, err
		}
		newStart = &t
	}
	if strings.TrimSpace(input.EndDate) != "" {
		t, err := ParseRecordDate(input.EndDate)
		if err != nil {
			return nil, err
		}
		newEnd = &t
	}

	record, err := s.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	datesChanged := newStart != nil || newEnd != nil
	if newStart != nil {
		record.StartDate = *newStart
	}
	if newEnd != nil {
		record.EndDate = *newEnd
	}
	if datesChanged {
		if err := ValidateDateRange(record.StartDate, record.EndDate, s.clock.Now()); err != nil {
			return nil, err
		}
	}

	locationChanged := false
	if query := strings.TrimSpace(input.Location); query != "" && query != record.Location {
		loc, err := s.resolveForRecord(ctx, query)
		if err != nil {
			return nil, err
		}
		record.Location = query
		record.Latitude = loc.Latitude
		record.Longitude = loc.Longitude
		locationChanged = true
	}

	if datesChanged || locationChanged {
		summary, err := s.summarize(ctx, record.Latitude, record.Longitude, record.StartDate, record.EndDate)
		if err != nil {
			return nil, err
		}
		record.ApplySummary(summary)
	}

	if err := s.repo.Update(ctx, record); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Record not found")
		}
		return nil, apperrors.Wrap(err, "Failed to update weather record")
	}

	s.recordChange(ctx, models.AuditUpdate, events.RecordUpdated, record.ID, record)
	return record, nil
}

func (s *weatherRecordService) DeleteRecord(ctx context.Context, id uint) error {
	if id == 0 {
		return apperrors.InvalidInput("Record ID is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Record not found")
		}
		return apperrors.Wrap(err, "Failed to delete weather record")
	}

	s.recordChange(ctx, models.AuditDelete, events.RecordDeleted, id, nil)
	return nil
}

// resolveForRecord resolves a location, reporting failures as client errors the way the
// record form expects them.
func (s *weatherRecordService) resolveForRecord(ctx context.Context, query string) (*ResolvedLocation, error) {
	loc, err := s.locations.Resolve(ctx, query)
	if err == nil {
		return loc, nil
	}

	switch {
	case errors.Is(err, apperrors.ErrLocationNotFound):
		return nil, apperrors.InvalidInput(fmt.Sprintf("Location \"%s\" not found. Please try a different city name.", query))
	case errors.Is(err, apperrors.ErrInvalidInput), errors.Is(err, apperrors.ErrConfiguration):
		return nil, err
	case apperrors.StatusOf(err) == http.StatusUnauthorized:
		return nil, apperrors.InvalidInput("Invalid API key. Please check your OpenWeather API configuration.")
	case errors.Is(err, apperrors.ErrUpstream):
		return nil, apperrors.InvalidInput("Failed to validate location. Please try again.")
	}
	return nil, err
}

func (s *weatherRecordService) summarize(ctx context.Context, lat, lon float64, start, end time.Time) (models.WeatherSummary, error) {
	forecast, err := s.provider.Forecast(ctx, lat, lon, UnitMetric)
	if err != nil {
		return models.WeatherSummary{}, upstreamError(err, "Failed to fetch forecast data: "+upstreamStatusText(err))
	}
	return Summarize(forecast.List, start, forecastWindowEnd(end))
}

// recordChange writes the audit entry, publishes the change event and drops cached record
// aggregates. Failures are logged and never fail the request.
func (s *weatherRecordService) recordChange(ctx context.Context, action models.AuditAction, eventType events.EventType, id uint, record *models.WeatherRecord) {
	entityID := strconv.FormatUint(uint64(id), 10)
	details := models.JSON{}
	if record != nil {
		details["location"] = record.Location
		details["startDate"] = record.StartDate.Format(time.RFC3339)
		details["endDate"] = record.EndDate.Format(time.RFC3339)
	}

	if s.audit != nil {
		if err := s.audit.CreateAuditLog(ctx, action, recordEntityType, entityID, details); err != nil {
			logger.LogEvent(logrus.WarnLevel, "Failed to write audit log", logrus.Fields{
				"action": action, "record_id": id, "error": err.Error(),
			})
		}
	}

	event := events.RecordEvent{Type: eventType, RecordID: id, Record: record, OccurredAt: s.clock.Now()}
	if info, ok := RequestInfoFromContext(ctx); ok {
		event.RequestID = info.RequestID
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.LogEvent(logrus.WarnLevel, "Failed to publish record event", logrus.Fields{
			"event": eventType, "record_id": id, "error": err.Error(),
		})
	}

	if s.cache != nil {
		if err := s.cache.DeleteByPattern(ctx, recordCachePattern); err != nil {
			logger.LogEvent(logrus.WarnLevel, "Failed to invalidate record cache", logrus.Fields{
				"record_id": id, "error": err.Error(),
			})
		}
	}

	if s.metrics != nil {
		s.metrics.RecordMutations.WithLabelValues(strings.ToLower(string(action))).Inc()
	}
}
