package database

import (
	"fmt"
	"time"

	"github.com/tecnimaq/maintenance-api/internal/config"
	"github.com/tecnimaq/maintenance-api/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the PostgreSQL connection pool
func NewDatabase(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := cfg.ConnectionString()

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// HealthCheck pings the database connection
func HealthCheck(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Ping()
}

// AutoMigrate creates or updates the schema from the models. Development
// convenience; deployed environments run the SQL migrations instead.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.MachineryCategory{},
		&domain.MachineryType{},
		&domain.MaintenanceProcedure{},
		&domain.Company{},
		&domain.Representative{},
		&domain.Employee{},
		&domain.MaintenanceRequest{},
		&domain.RequestItem{},
		&domain.RequestAssignment{},
		&domain.User{},
		&domain.AccessToken{},
	)
}
