package repository

import (
	"context"

	"weather-api/internal/models"

	"gorm.io/gorm"
)

// AuditLogFilter pages through audit entries, optionally for a single entity.
type AuditLogFilter struct {
	EntityType string
	EntityID   string
	Page       int
	PageSize   int
}

type AuditLogRepository interface {
	ListAuditLogs(ctx context.Context, filter AuditLogFilter) ([]models.AuditLog, int64, error)
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

type auditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{
		db: db,
	}
}

func (r *auditLogRepository) ListAuditLogs(ctx context.Context, filter AuditLogFilter) ([]models.AuditLog, int64, error) {
	var logs []models.AuditLog
	var total int64

	page := filter.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * filter.PageSize

	scoped := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.AuditLog{})
		if filter.EntityType != "" {
			q = q.Where("entity_type = ?", filter.EntityType)
		}
		if filter.EntityID != "" {
			q = q.Where("entity_id = ?", filter.EntityID)
		}
		return q
	}

	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := scoped().
		Order("timestamp DESC").
		Offset(offset).
		Limit(filter.PageSize).
		Find(&logs).Error

	return logs, total, err
}

func (r *auditLogRepository) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}
