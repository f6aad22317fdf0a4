package repository

import (
	"context"
	"time"

	"weather-api/internal/models"

	"gorm.io/gorm"
)

type RequestLogRepository interface {
	Create(ctx context.Context, log *models.RequestLog) error
	GetLogs(ctx context.Context, from, to time.Time) ([]models.RequestLog, error)
	GetEndpointLogs(ctx context.Context, endpoint string, from, to time.Time) ([]models.RequestLog, error)
}

type requestLogRepository struct {
	db *gorm.DB
}

func NewRequestLogRepository(db *gorm.DB) RequestLogRepository {
	return &requestLogRepository{db: db}
}

func (r *requestLogRepository) Create(ctx context.Context, log *models.RequestLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *requestLogRepository) GetLogs(ctx context.Context, from, to time.Time) ([]models.RequestLog, error) {
	var logs []models.RequestLog
	err := r.db.WithContext(ctx).
		Where("timestamp BETWEEN ? AND ?", from, to).
		Order("timestamp desc").
		Find(&logs).Error
	return logs, err
}

func (r *requestLogRepository) GetEndpointLogs(ctx context.Context, endpoint string, from, to time.Time) ([]models.RequestLog, error) {
	var logs []models.RequestLog
	err := r.db.WithContext(ctx).
		Where("endpoint = ? AND timestamp BETWEEN ? AND ?", endpoint, from, to).
		Order("timestamp desc").
		Find(&logs).Error
	return logs, err
}
