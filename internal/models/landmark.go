package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Landmark is a well-known place that resolves to fixed coordinates without geocoding.
type Landmark struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Latitude    float64        `gorm:"type:decimal(10,6);not null" json:"latitude"`
	Longitude   float64        `gorm:"type:decimal(10,6);not null" json:"longitude"`
	Country     string         `gorm:"type:varchar(100);not null" json:"country"`
	City        string         `gorm:"type:varchar(100)" json:"city"`
	CreatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Landmark) TableName() string {
	return "landmarks"
}

func (l *Landmark) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	now := time.Now()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	if l.UpdatedAt.IsZero() {
		l.UpdatedAt = now
	}
	return nil
}

func (l *Landmark) BeforeUpdate(tx *gorm.DB) error {
	l.UpdatedAt = time.Now()
	return nil
}
