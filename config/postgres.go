package config

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/careerpilot/careerpilot/internal/models"
)

func InitPostgres(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection Pooling settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.AutoMigrate(&models.Profile{}, &models.Preferences{}, &models.Job{}); err != nil {
		return nil, err
	}
	return db, nil
}
