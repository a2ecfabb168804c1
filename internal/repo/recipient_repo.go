// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Recipient
// master list.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition. Name trimming, duplicate classification,
// and the in-use check before a hard delete live in the service layer.
//
// Error semantics:
//   - When a recipient is not found, functions return ErrNotFound
//     (an alias of gorm.ErrRecordNotFound, see db.go).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/supplydesk/go-supply-ledger/internal/domain"
)

// CreateRecipientIfAbsent inserts name as an active recipient unless a row
// with that exact name already exists. It reports whether a row was created.
// The existing row is left untouched on a name hit.
func CreateRecipientIfAbsent(ctx context.Context, db *gorm.DB, name string) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).
		Model(&domain.Recipient{}).
		Where("name = ?", name).
		Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	r := domain.Recipient{Name: name, Active: true}
	if err := db.WithContext(ctx).Create(&r).Error; err != nil {
		return false, err
	}
	return true, nil
}

// GetRecipient fetches a single recipient by id, or ErrNotFound if missing.
func GetRecipient(ctx context.Context, db *gorm.DB, id uint) (*domain.Recipient, error) {
	var r domain.Recipient
	if err := db.WithContext(ctx).First(&r, id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// RenameRecipient updates the name of the recipient identified by id.
// If no rows are affected (row missing), it returns ErrNotFound. A unique
// violation on the new name propagates as the raw driver error.
func RenameRecipient(ctx context.Context, db *gorm.DB, id uint, name string) error {
	res := db.WithContext(ctx).
		Model(&domain.Recipient{}).
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

// SetRecipientActive flips the active flag of the recipient identified by id.
// Setting the flag to its current value is a successful no-op as long as the
// row exists; a missing row returns ErrNotFound.
func SetRecipientActive(ctx context.Context, db *gorm.DB, id uint, active bool) error {
	res := db.WithContext(ctx).
		Model(&domain.Recipient{}).
		Where("id = ?", id).
		Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// UPDATE ... SET active=x WHERE id reports 0 affected rows both when
		// the row is missing and (on some drivers) when nothing changed, so
		// distinguish with an existence probe.
		var n int64
		if err := db.WithContext(ctx).
			Model(&domain.Recipient{}).
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

// DeleteRecipient permanently removes the recipient row. The caller is
// responsible for checking CountLogsForRecipient first; the FK RESTRICT
// constraint backstops a missed check. Returns ErrNotFound if the row does
// not exist.
func DeleteRecipient(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.Recipient{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListRecipients returns recipient rows ordered by name ascending (byte
// order; the service layer applies locale-aware collation on top). With
// activeOnly set, inactive rows are excluded.
func ListRecipients(ctx context.Context, db *gorm.DB, activeOnly bool) ([]domain.Recipient, error) {
	var out []domain.Recipient
	q := db.WithContext(ctx).Order("name asc")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Find(&out).Error
	return out, err
}

// CountLogsForRecipient returns the number of issuance logs referencing the
// recipient. Used by the service layer to guard hard deletes.
func CountLogsForRecipient(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.IssuanceLog{}).
		Where("recipient_id = ?", id).
		Count(&n).Error
	return n, err
}
