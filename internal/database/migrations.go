package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migrate creates or updates the tables of the given models. Each service only
// migrates the models it owns.
func Migrate(db *gorm.DB, log logrus.FieldLogger, models ...interface{}) error {
	log.Info("running database migrations")
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.WithField("tables", len(models)).Info("database migrations completed")
	return nil
}
