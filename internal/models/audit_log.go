package models

import (
	"time"

	"gorm.io/gorm"
)

type AuditAction string

const (
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
)

type AuditLog struct {
	gorm.Model
	Actor      string      `gorm:"type:varchar(64)" json:"actor"`
	RequestID  string      `gorm:"type:varchar(36)" json:"requestId"`
	Action     AuditAction `gorm:"type:varchar(16);index" json:"action"`
	EntityType string      `gorm:"type:varchar(64)" json:"entityType"`
	EntityID   string      `gorm:"type:varchar(64);index" json:"entityId"`
	Details    JSON        `gorm:"type:jsonb" json:"details"`
	Timestamp  time.Time   `gorm:"index" json:"timestamp"`
}
