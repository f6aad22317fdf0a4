package services

import (
	"context"
	"time"

	"weather-api/internal/models"
	"weather-api/internal/repository"
)

// RequestLogEntry is what the request logger middleware persists for each API call.
type RequestLogEntry struct {
	RequestID  string
	ClientIP   string
	Endpoint   string
	Method     string
	StatusCode int
	Summary    string
	Duration   time.Duration
	Timestamp  time.Time
}

type RequestLogService interface {
	LogRequest(ctx context.Context, entry RequestLogEntry) error
	GetLogs(ctx context.Context, from, to time.Time) ([]models.RequestLog, error)
	GetEndpointLogs(ctx context.Context, endpoint string, from, to time.Time) ([]models.RequestLog, error)
}

type requestLogService struct {
	repo repository.RequestLogRepository
}

func NewRequestLogService(repo repository.RequestLogRepository) RequestLogService {
	return &requestLogService{repo: repo}
}

func (s *requestLogService) LogRequest(ctx context.Context, entry RequestLogEntry) error {
	status := models.StatusSuccess
	if entry.StatusCode >= 400 {
		status = models.StatusError
	}

	log := &models.RequestLog{
		RequestID:  entry.RequestID,
		ClientIP:   entry.ClientIP,
		Endpoint:   entry.Endpoint,
		Method:     entry.Method,
		Status:     status,
		StatusCode: entry.StatusCode,
		Summary:    entry.Summary,
		DurationMs: entry.Duration.Milliseconds(),
		Timestamp:  entry.Timestamp,
	}
	return s.repo.Create(ctx, log)
}

func (s *requestLogService) GetLogs(ctx context.Context, from, to time.Time) ([]models.RequestLog, error) {
	return s.repo.GetLogs(ctx, from, to)
}

func (s *requestLogService) GetEndpointLogs(ctx context.Context, endpoint string, from, to time.Time) ([]models.RequestLog, error) {
	return s.repo.GetEndpointLogs(ctx, endpoint, from, to)
}
