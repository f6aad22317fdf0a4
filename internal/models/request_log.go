package models

import (
	"time"

	"gorm.io/gorm"
)

type RequestStatus string

const (
	StatusSuccess RequestStatus = "SUCCESS"
	StatusError   RequestStatus = "ERROR"
)

type RequestLog struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	RequestID  string         `gorm:"type:varchar(36);index" json:"requestId"`
	ClientIP   string         `gorm:"type:varchar(64);index" json:"clientIp"`
	Endpoint   string         `gorm:"index" json:"endpoint"`
	Method     string         `json:"method"`
	Status     RequestStatus  `json:"status"`
	StatusCode int            `json:"statusCode"`
	Summary    string         `json:"summary"`
	DurationMs int64          `json:"durationMs"`
	Timestamp  time.Time      `gorm:"index" json:"timestamp"`
	CreatedAt  time.Time      `json:"-"`
	UpdatedAt  time.Time      `json:"-"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
