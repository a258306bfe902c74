package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/welovit/lead-buddy-app/internal/model"
	"github.com/welovit/lead-buddy-app/pkg/config"
)

var db *gorm.DB

// InitDB connects to PostgreSQL, migrates the schema and seeds the
// reference catalog when empty.
func InitDB(cfg *config.Config) error {
	pgConfig := postgres.Config{
		DSN: cfg.DB.GetDSN(),
		// Disables implicit prepared statement usage to prevent
		// "prepared statement already exists" errors
		PreferSimpleProtocol: true,
	}

	var err error
	db, err = gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger: logger.Default.LogMode(cfg.DB.LogLevel),
	})
	if err != nil {
		return err
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if cfg.DB.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}
	if cfg.DB.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}
	if cfg.DB.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Session{},
		&model.Category{},
		&model.Company{},
		&model.Lead{},
		&model.UserLead{},
	); err != nil {
		return err
	}

	return Seed(db)
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return db
}
