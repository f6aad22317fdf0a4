package repository

import (
	"context"
	"errors"
	"strings"

	"weather-api/internal/models"

	"gorm.io/gorm"
)

type LandmarkRepository interface {
	List(ctx context.Context) ([]models.Landmark, error)
	FindByName(ctx context.Context, name string) (*models.Landmark, error)
	SearchNames(ctx context.Context, fragment string, limit int) ([]string, error)
}

type landmarkRepository struct {
	db *gorm.DB
}

func NewLandmarkRepository(db *gorm.DB) LandmarkRepository {
	return &landmarkRepository{db: db}
}

func (r *landmarkRepository) List(ctx context.Context) ([]models.Landmark, error) {
	var landmarks []models.Landmark

	err := r.db.WithContext(ctx).Order("name ASC").Find(&landmarks).Error
	return landmarks, err
}

// FindByName matches the whole name case-insensitively. Returns nil, nil when no landmark matches.
func (r *landmarkRepository) FindByName(ctx context.Context, name string) (*models.Landmark, error) {
	var landmark models.Landmark

	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&landmark).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &landmark, nil
}

func (r *landmarkRepository) SearchNames(ctx context.Context, fragment string, limit int) ([]string, error) {
	var names []string

	err := r.db.WithContext(ctx).Model(&models.Landmark{}).
		Where("LOWER(name) LIKE ?", containsPattern(fragment)).
		Order("name ASC").
		Limit(limit).
		Pluck("name", &names).Error
	return names, err
}

// containsPattern builds a LIKE pattern matching fragment anywhere, with LIKE metacharacters escaped.
func containsPattern(fragment string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(fragment))
	return "%" + escaped + "%"
}
