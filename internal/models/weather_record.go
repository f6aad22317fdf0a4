package models

import (
	"time"

	"gorm.io/gorm"
)

// WeatherRecord holds averaged forecast conditions for a location over a date range.
type WeatherRecord struct {
	ID                    uint           `gorm:"primarykey" json:"id"`
	Location              string         `gorm:"type:varchar(255);not null;index" json:"location"`
	Latitude              float64        `gorm:"not null" json:"latitude"`
	Longitude             float64        `gorm:"not null" json:"longitude"`
	StartDate             time.Time      `gorm:"not null;index" json:"startDate"`
	EndDate               time.Time      `gorm:"not null;index" json:"endDate"`
	TemperatureCelsius    float64        `json:"temperatureCelsius"`
	TemperatureFahrenheit float64        `json:"temperatureFahrenheit"`
	Description           string         `gorm:"type:varchar(255)" json:"description"`
	Humidity              int            `json:"humidity"`
	WindSpeed             float64        `json:"windSpeed"`
	CreatedAt             time.Time      `gorm:"not null;index" json:"createdAt"`
	UpdatedAt             time.Time      `gorm:"not null" json:"updatedAt"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
}

func (WeatherRecord) TableName() string {
	return "weather_records"
}

func (r *WeatherRecord) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = now
	}
	return nil
}

func (r *WeatherRecord) BeforeUpdate(tx *gorm.DB) error {
	r.UpdatedAt = time.Now()
	return nil
}

// ApplySummary copies computed weather conditions onto the record.
func (r *WeatherRecord) ApplySummary(s WeatherSummary) {
	r.TemperatureCelsius = s.TemperatureCelsius
	r.TemperatureFahrenheit = s.TemperatureFahrenheit
	r.Description = s.Description
	r.Humidity = s.Humidity
	r.WindSpeed = s.WindSpeed
}

// WeatherSummary is the averaged forecast over a record's date range.
type WeatherSummary struct {
	TemperatureCelsius    float64 `json:"temperatureCelsius"`
	TemperatureFahrenheit float64 `json:"temperatureFahrenheit"`
	Description           string  `json:"description"`
	Humidity              int     `json:"humidity"`
	WindSpeed             float64 `json:"windSpeed"`
}
