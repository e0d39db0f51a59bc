// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/recambia/recambia-backend/internal/config"
	"github.com/recambia/recambia-backend/internal/models"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// Enable required extensions
	extensions := []string{
		"CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"",
		"CREATE EXTENSION IF NOT EXISTS pg_trgm",
	}
	for _, ext := range extensions {
		if err := db.Exec(ext).Error; err != nil {
			return fmt.Errorf("failed to create extension: %w", err)
		}
	}

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.Part{},
		&models.SearchLog{},
		&models.SearchHistory{},
		&models.VehicleRecord{},
		&models.OemPart{},
		&models.OemCompatibility{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// The search vector must always reflect the latest text fields, so it is
	// recomputed by a trigger instead of application code.
	if err := createSearchVectorTrigger(db); err != nil {
		return fmt.Errorf("failed to create search vector trigger: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createSearchVectorTrigger(db *gorm.DB) error {
	statements := []string{
		`CREATE OR REPLACE FUNCTION parts_search_vector_update() RETURNS trigger AS $$
		BEGIN
			NEW.search_vector :=
				setweight(to_tsvector('simple', coalesce(NEW.name, '')), 'A') ||
				setweight(to_tsvector('simple', coalesce(NEW.oem_number, '')), 'A') ||
				setweight(to_tsvector('simple', coalesce(NEW.brand, '')), 'B') ||
				setweight(to_tsvector('simple', coalesce(NEW.model, '')), 'B') ||
				setweight(to_tsvector('simple', coalesce(NEW.year::text, '')), 'C');
			RETURN NEW;
		END
		$$ LANGUAGE plpgsql`,
		"DROP TRIGGER IF EXISTS trg_parts_search_vector ON parts",
		`CREATE TRIGGER trg_parts_search_vector
			BEFORE INSERT OR UPDATE ON parts
			FOR EACH ROW EXECUTE FUNCTION parts_search_vector_update()`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// Part indexes
		"CREATE INDEX IF NOT EXISTS idx_parts_seller ON parts(seller_id)",
		"CREATE INDEX IF NOT EXISTS idx_parts_status ON parts(status)",
		"CREATE INDEX IF NOT EXISTS idx_parts_created_at ON parts(created_at DESC)",

		// Full-text search index
		"CREATE INDEX IF NOT EXISTS idx_parts_search_vector ON parts USING GIN(search_vector)",

		// Trigram indexes backing the fuzzy similarity comparisons
		"CREATE INDEX IF NOT EXISTS idx_parts_name_trgm ON parts USING GIN(name gin_trgm_ops)",
		"CREATE INDEX IF NOT EXISTS idx_parts_brand_trgm ON parts USING GIN(brand gin_trgm_ops)",
		"CREATE INDEX IF NOT EXISTS idx_parts_model_trgm ON parts USING GIN(model gin_trgm_ops)",
		"CREATE INDEX IF NOT EXISTS idx_parts_oem_trgm ON parts USING GIN(oem_number gin_trgm_ops)",

		// Popularity / history indexes
		"CREATE INDEX IF NOT EXISTS idx_search_logs_clicks ON search_logs(clicks DESC)",

		// OEM compatibility lookups
		"CREATE INDEX IF NOT EXISTS idx_oem_compat_part ON oem_compatibilities(oem_part_id)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}
