package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/spf13/viper"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taskwell/internal/models"
)

var DB *gorm.DB

// Initialize opens the configured database and runs migrations. It is
// called once by the composition root, never at import time.
func Initialize() error {
	dbPath := viper.GetString("db")
	if dbPath == "" {
		var err error
		dbPath, err = defaultDatabasePath()
		if err != nil {
			return fmt.Errorf("failed to resolve database path: %w", err)
		}
	}

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create taskwell directory: %w", err)
	}

	return Open(dbPath)
}

// Open connects to the SQLite database at path and runs migrations.
// Tests call it directly with a throwaway path.
func Open(path string) error {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = db

	if err := runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// defaultDatabasePath returns the path to the SQLite database file
func defaultDatabasePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".taskwell", "taskwell.db"), nil
}

// runMigrations creates/updates the database schema. AutoMigrate is
// additive: it adds missing columns and indexes and never drops or
// renames existing ones, so it is safe on every start regardless of
// the prior schema version.
func runMigrations() error {
	return DB.AutoMigrate(
		&models.Task{},
	)
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		sqlDB, err := DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
