package db

import (
	"errors"
	"fmt"
	"log"
	"time"

	"weather-api/internal/config"
	"weather-api/internal/db/migrations"
	"weather-api/internal/logger"
	"weather-api/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the Postgres connection, applies pool settings and runs pending migrations.
func Connect(dsn string, pool config.PoolConfig) (*gorm.DB, error) {
	gormLog := gormlogger.New(
		log.New(logger.Logger.WriterLevel(logrus.WarnLevel), "", 0),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates the migrations table and runs every migration not yet recorded in it.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.MigrationRecord{}); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, migration := range migrations.GetMigrations() {
		var record models.MigrationRecord
		result := db.Where("name = ?", migration.Name).First(&record)

		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			logger.LogEvent(logrus.InfoLevel, "Running migration", logrus.Fields{"migration": migration.Name})

			err := db.Transaction(func(tx *gorm.DB) error {
				if err := migration.Run(tx); err != nil {
					return err
				}
				return tx.Create(&models.MigrationRecord{Name: migration.Name}).Error
			})
			if err != nil {
				return fmt.Errorf("migration '%s' failed: %w", migration.Name, err)
			}
		} else if result.Error != nil {
			return fmt.Errorf("failed to check migration status: %w", result.Error)
		}
	}

	return nil
}
