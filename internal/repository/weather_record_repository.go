package repository

import (
	"context"
	"errors"
	"time"

	"weather-api/internal/models"

	"gorm.io/gorm"
)

// RecordFilter narrows record listings. Zero values mean no constraint.
type RecordFilter struct {
	Location  string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

type WeatherRecordRepository interface {
	Create(ctx context.Context, record *models.WeatherRecord) error
	GetByID(ctx context.Context, id uint) (*models.WeatherRecord, error)
	List(ctx context.Context, filter RecordFilter) ([]models.WeatherRecord, error)
	Update(ctx context.Context, record *models.WeatherRecord) error
	Delete(ctx context.Context, id uint) error
	DistinctLocations(ctx context.Context, fragment string, limit int) ([]string, error)
}

type weatherRecordRepository struct {
	db *gorm.DB
}

func NewWeatherRecordRepository(db *gorm.DB) WeatherRecordRepository {
	return &weatherRecordRepository{db: db}
}

func (r *weatherRecordRepository) Create(ctx context.Context, record *models.WeatherRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *weatherRecordRepository) GetByID(ctx context.Context, id uint) (*models.WeatherRecord, error) {
	var record models.WeatherRecord

	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns records newest first. When both dates are set, records whose range overlaps
// [StartDate, EndDate] are returned.
func (r *weatherRecordRepository) List(ctx context.Context, filter RecordFilter) ([]models.WeatherRecord, error) {
	var records []models.WeatherRecord

	query := r.db.WithContext(ctx).Model(&models.WeatherRecord{})
	if filter.Location != "" {
		query = query.Where("LOWER(location) LIKE ?", containsPattern(filter.Location))
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		query = query.Where("start_date <= ? AND end_date >= ?", *filter.EndDate, *filter.StartDate)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	err := query.Order("created_at DESC").Order("id DESC").Find(&records).Error
	return records, err
}

func (r *weatherRecordRepository) Update(ctx context.Context, record *models.WeatherRecord) error {
	result := r.db.WithContext(ctx).Model(record).
		Select("location", "latitude", "longitude", "start_date", "end_date",
			"temperature_celsius", "temperature_fahrenheit", "description", "humidity", "wind_speed", "updated_at").
		Updates(record)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *weatherRecordRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.WeatherRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *weatherRecordRepository) DistinctLocations(ctx context.Context, fragment string, limit int) ([]string, error) {
	var locations []string

	err := r.db.WithContext(ctx).Model(&models.WeatherRecord{}).
		Distinct("location").
		Where("LOWER(location) LIKE ?", containsPattern(fragment)).
		Order("location ASC").
		Limit(limit).
		Pluck("location", &locations).Error
	return locations, err
}
