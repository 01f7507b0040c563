package db

import (
	"time"

	"github.com/dojodesk/dojodesk/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDatabase opens the connection and bounds the pool. Pool
// exhaustion surfaces as a driver timeout to the caller instead of
// hanging; the connect timeout rides the DSN (connect_timeout).
func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return err
	}

	sqlDB, err := DB.DB()

	if err != nil {
		return err
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(30 * time.Second)

	return nil
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.Member{},
		&models.Admin{},
		&models.Package{},
		&models.Subscription{},
		&models.Referral{},
		&models.Guardianship{},
	}

	migrator := DB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}
