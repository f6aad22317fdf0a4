package repository

import (
	"context"

	"weather-api/internal/models"

	"gorm.io/gorm"
)

type RecordStatsRepository interface {
	GetTotalRecords(ctx context.Context) (int64, error)
	GetRecordsByLocation(ctx context.Context) (map[string]int64, error)
	GetRecentlyAddedRecords(ctx context.Context, limit int) ([]models.WeatherRecord, error)
}

type recordStatsRepository struct {
	db *gorm.DB
}

func NewRecordStatsRepository(db *gorm.DB) RecordStatsRepository {
	return &recordStatsRepository{
		db: db,
	}
}

func (r *recordStatsRepository) GetTotalRecords(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.WeatherRecord{}).Count(&count).Error
	return count, err
}

func (r *recordStatsRepository) GetRecordsByLocation(ctx context.Context) (map[string]int64, error) {
	var results []struct {
		Location string
		Count    int64
	}
	err := r.db.WithContext(ctx).Model(&models.WeatherRecord{}).
		Select("location, count(*) as count").
		Group("location").
		Find(&results).Error
	if err != nil {
		return nil, err
	}

	byLocation := make(map[string]int64, len(results))
	for _, result := range results {
		byLocation[result.Location] = result.Count
	}
	return byLocation, nil
}

func (r *recordStatsRepository) GetRecentlyAddedRecords(ctx context.Context, limit int) ([]models.WeatherRecord, error) {
	var records []models.WeatherRecord
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}
