package db

import (
	"fmt"

	"github.com/yokinanya/omega-miya/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for all persisted record types.
// The composite unique indexes declared on the models are what the store
// layer's upsert/retry contract relies on, so migration failure is fatal.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: migrate: nil connection")
	}
	if err := conn.AutoMigrate(
		&models.Bot{},
		&models.Entity{},
		&models.AuthSetting{},
		&models.CoolDown{},
		&models.SignIn{},
		&models.Friendship{},
	); err != nil {
		return fmt.Errorf("db: migrate: %w", err)
	}
	return nil
}
