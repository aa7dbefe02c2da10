package database

import (
	"fmt"

	"github.com/gdg-garage/canteen-api/internal/config"
	"github.com/gdg-garage/canteen-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(&models.Student{}, &models.Canteen{}, &models.WorkingHour{}, &models.Reservation{})
	if err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}
