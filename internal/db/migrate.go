package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/dfagundes/prodboard/internal/models"
)

// AllModels returns every GORM model prodboard persists.
func AllModels() []interface{} {
	return []interface{}{
		&models.ProductionRecord{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}
