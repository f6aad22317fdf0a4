package services

import (
	"context"
	"time"

	"weather-api/internal/logger"
	"weather-api/internal/models"
	apperrors "weather-api/internal/pkg/errors"
	"weather-api/internal/repository"

	"github.com/sirupsen/logrus"
)

const (
	recentRecordsLimit = 5

	// recordCachePattern matches every cached value derived from stored records.
	recordCachePattern  = "records:*"
	recordStatsCacheKey = "records:stats"
)

type RecordStatsService interface {
	GetRecordStats(ctx context.Context) (*models.RecordStats, error)
}

type recordStatsService struct {
	statsRepo repository.RecordStatsRepository
	cache     CacheService
	cacheTTL  time.Duration
}

func NewRecordStatsService(statsRepo repository.RecordStatsRepository, cache CacheService, cacheTTL time.Duration) RecordStatsService {
	return &recordStatsService{
		statsRepo: statsRepo,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

func (s *recordStatsService) GetRecordStats(ctx context.Context) (*models.RecordStats, error) {
	var cached models.RecordStats
	if getCached(ctx, s.cache, recordStatsCacheKey, &cached) {
		return &cached, nil
	}

	total, err := s.statsRepo.GetTotalRecords(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "Error fetching record stats")
	}

	byLocation, err := s.statsRepo.GetRecordsByLocation(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "Error fetching record stats")
	}

	recent, err := s.statsRepo.GetRecentlyAddedRecords(ctx, recentRecordsLimit)
	if err != nil {
		return nil, apperrors.Wrap(err, "Error fetching record stats")
	}

	stats := &models.RecordStats{
		TotalRecords:      total,
		RecordsByLocation: byLocation,
		RecentlyAdded:     recent,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, recordStatsCacheKey, stats, s.cacheTTL); err != nil {
			logger.LogEvent(logrus.WarnLevel, "Failed to cache record stats", logrus.Fields{"error": err.Error()})
		}
	}
	return stats, nil
}
