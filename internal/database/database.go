package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"termbase/internal/config"
	"termbase/internal/logging"
)

func Connect(c *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(c.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger("database")
	logger.Debug().Msg("connected to database")

	return db, nil
}

// Migrate creates or updates the schema for all application tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&PasswordResetToken{},
		&Category{},
		&Term{},
		&LoginLog{},
		&ActivityLog{},
		&Session{},
	)
}
