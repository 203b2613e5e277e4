package util

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"book-wishlist/model"
)

func InitDB(cfg DBConfig) (*gorm.DB, error) {
	// 1. BOOTSTRAP: CREATE DATABASE IF NOT EXISTS
	maintenanceDSN := fmt.Sprintf("host=%s user=%s password=%s dbname=postgres port=%s sslmode=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Port, cfg.SSLMode)

	if err := ensureDatabase(maintenanceDSN, cfg.Name); err != nil {
		return nil, err
	}

	// 2. CONNECT TO APP DATABASE
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to application database: %w", err)
	}

	// 3. AUTO MIGRATE
	if err := db.AutoMigrate(&model.SessionEntry{}); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	// 4. CONNECTION POOL
	// A single client only ever touches one row, so the pool stays small
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying DB object: %w", err)
	}
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	slog.Info("database connected and migrated", slog.String("host", cfg.Host), slog.String("database", cfg.Name))
	return db, nil
}

func ensureDatabase(maintenanceDSN, name string) error {
	tempDB, err := gorm.Open(postgres.Open(maintenanceDSN), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect to postgres instance: %w", err)
	}
	if sqlDB, err := tempDB.DB(); err == nil {
		defer sqlDB.Close()
	}

	var exists bool
	if err := tempDB.Raw("SELECT EXISTS(SELECT datname FROM pg_catalog.pg_database WHERE datname = ?)", name).
		Scan(&exists).Error; err != nil {
		return fmt.Errorf("check database %q: %w", name, err)
	}
	if exists {
		return nil
	}

	slog.Info("database not found, creating", slog.String("database", name))
	if err := tempDB.Exec("CREATE DATABASE " + quoteIdentifier(name)).Error; err != nil {
		return fmt.Errorf("create database: %w", err)
	}
	return nil
}

// quoteIdentifier quotes a postgres identifier, doubling embedded quotes
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
