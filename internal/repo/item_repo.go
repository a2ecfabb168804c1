// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Item
// master list, mirroring recipient_repo.go (the two entity kinds share the
// same lifecycle rules).
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/supplydesk/go-supply-ledger/internal/domain"
)

// CreateItemIfAbsent inserts name as an active item unless a row with that
// exact name already exists. It reports whether a row was created.
func CreateItemIfAbsent(ctx context.Context, db *gorm.DB, name string) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).
		Model(&domain.Item{}).
		Where("name = ?", name).
		Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	it := domain.Item{Name: name, Active: true}
	if err := db.WithContext(ctx).Create(&it).Error; err != nil {
		return false, err
	}
	return true, nil
}

// GetItem fetches a single item by id, or ErrNotFound if missing.
func GetItem(ctx context.Context, db *gorm.DB, id uint) (*domain.Item, error) {
	var it domain.Item
	if err := db.WithContext(ctx).First(&it, id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

// RenameItem updates the name of the item identified by id. Returns
// ErrNotFound if the row does not exist; unique violations propagate raw.
func RenameItem(ctx context.Context, db *gorm.DB, id uint, name string) error {
	res := db.WithContext(ctx).
		Model(&domain.Item{}).
		Where("id = ?", id).
		Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetItemActive flips the active flag of the item identified by id.
// A no-op state change still succeeds when the row exists.
func SetItemActive(ctx context.Context, db *gorm.DB, id uint, active bool) error {
	res := db.WithContext(ctx).
		Model(&domain.Item{}).
		Where("id = ?", id).
		Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := db.WithContext(ctx).
			Model(&domain.Item{}).
			Where("id = ?", id).
			Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

// DeleteItem permanently removes the item row. The caller checks
// CountLogsForItem first; FK RESTRICT backstops a missed check.
func DeleteItem(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.Item{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListItems returns item rows ordered by name ascending. With activeOnly
// set, inactive rows are excluded.
func ListItems(ctx context.Context, db *gorm.DB, activeOnly bool) ([]domain.Item, error) {
	var out []domain.Item
	q := db.WithContext(ctx).Order("name asc")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Find(&out).Error
	return out, err
}

// CountLogsForItem returns the number of issuance logs referencing the item.
func CountLogsForItem(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.IssuanceLog{}).
		Where("item_id = ?", id).
		Count(&n).Error
	return n, err
}
