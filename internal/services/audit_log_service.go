package services

import (
	"context"

	"weather-api/internal/models"
	"weather-api/internal/repository"

	"github.com/jonboulle/clockwork"
)

type AuditLogService interface {
	GetAuditLogs(ctx context.Context, filter repository.AuditLogFilter) ([]models.AuditLog, int64, error)
	CreateAuditLog(ctx context.Context, action models.AuditAction, entityType, entityID string, details models.JSON) error
}

type auditLogService struct {
	auditLogRepo repository.AuditLogRepository
	clock        clockwork.Clock
}

func NewAuditLogService(auditLogRepo repository.AuditLogRepository, clock clockwork.Clock) AuditLogService {
	return &auditLogService{
		auditLogRepo: auditLogRepo,
		clock:        clock,
	}
}

func (s *auditLogService) GetAuditLogs(ctx context.Context, filter repository.AuditLogFilter) ([]models.AuditLog, int64, error) {
	return s.auditLogRepo.ListAuditLogs(ctx, filter)
}

// CreateAuditLog records a mutation, attributing it to the caller found in ctx.
func (s *auditLogService) CreateAuditLog(ctx context.Context, action models.AuditAction, entityType, entityID string, details models.JSON) error {
	log := &models.AuditLog{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		Timestamp:  s.clock.Now(),
	}
	if info, ok := RequestInfoFromContext(ctx); ok {
		log.Actor = info.ClientIP
		log.RequestID = info.RequestID
	}
	return s.auditLogRepo.CreateAuditLog(ctx, log)
}
