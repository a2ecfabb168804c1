// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains database bootstrapping helpers for
// SQLite (pure Go driver), schema migrations, and master-list seeding.
package repo

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/supplydesk/go-supply-ledger/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// AutoMigrate creates or updates the three ledger tables and their
// constraints. It is idempotent: running it against an up-to-date schema is
// a no-op.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Recipient{},
		&domain.Item{},
		&domain.IssuanceLog{},
	)
}

// Seed populates the master lists when they are empty. The recipient and
// item tables are seeded independently: an empty recipients table gets every
// name from recipients, an empty items table every name from items. Existing
// rows are never overwritten, so calling Seed repeatedly changes nothing.
func Seed(ctx context.Context, db *gorm.DB, recipients, items []string) error {
	var n int64
	if err := db.WithContext(ctx).Model(&domain.Recipient{}).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		for _, name := range recipients {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			r := domain.Recipient{Name: name, Active: true}
			if err := db.WithContext(ctx).Create(&r).Error; err != nil {
				return err
			}
		}
	}

	if err := db.WithContext(ctx).Model(&domain.Item{}).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		for _, name := range items {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			it := domain.Item{Name: name, Active: true}
			if err := db.WithContext(ctx).Create(&it).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
