package services

import (
	"context"

	"weather-api/internal/export"
	"weather-api/internal/logger"
	"weather-api/internal/observability"
	apperrors "weather-api/internal/pkg/errors"
	"weather-api/internal/repository"

	"github.com/sirupsen/logrus"
)

type ExportService interface {
	Export(ctx context.Context, format string, filter repository.RecordFilter) (*export.Document, error)
}

type exportService struct {
	repo    repository.WeatherRecordRepository
	metrics *observability.Metrics
}

func NewExportService(repo repository.WeatherRecordRepository, metrics *observability.Metrics) ExportService {
	return &exportService{repo: repo, metrics: metrics}
}

// Export renders the records matching filter, newest first. The format is checked before
// the database is queried.
func (s *exportService) Export(ctx context.Context, format string, filter repository.RecordFilter) (*export.Document, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Wrap(err, "Failed to export records")
	}
	if len(records) == 0 {
		return nil, apperrors.NotFound("No records found to export")
	}

	doc, err := export.Render(f, records)
	if err != nil {
		return nil, err
	}

	logger.LogEvent(logrus.InfoLevel, "Exported weather records", logrus.Fields{
		"format":  f,
		"records": len(records),
		"bytes":   len(doc.Data),
	})
	if s.metrics != nil {
		s.metrics.Exports.WithLabelValues(string(f)).Inc()
	}
	return doc, nil
}
