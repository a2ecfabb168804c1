// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the issuance
// ledger: append, delete, and the joined filtered listing that every report
// and export is built from.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/supplydesk/go-supply-ledger/internal/domain"
)

// LogFilter narrows ListLogs results. Zero-valued fields impose no
// constraint. From and To are interpreted as inclusive calendar dates in the
// timezone they carry: a log is kept when its issuance timestamp falls on or
// between them.
type LogFilter struct {
	From        time.Time
	To          time.Time
	RecipientID uint
	ItemID      uint
}

// InsertLog appends one issuance event and returns the persisted row with
// its fresh monotonic id. Referential integrity is checked by the service
// layer up front and again by the FK constraints at insert time.
func InsertLog(ctx context.Context, db *gorm.DB, recipientID, itemID uint, qty int, note string, at time.Time) (*domain.IssuanceLog, error) {
	l := &domain.IssuanceLog{
		IssuedAt:    at,
		RecipientID: recipientID,
		ItemID:      itemID,
		Quantity:    qty,
		Note:        note,
	}
	if err := db.WithContext(ctx).Create(l).Error; err != nil {
		return nil, err
	}
	return l, nil
}

// DeleteLog permanently removes the log row identified by id. Returns
// ErrNotFound if it does not exist. Master rows are untouched.
func DeleteLog(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.IssuanceLog{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListLogs returns the joined ledger view (recipient and item names
// resolved) matching f, ordered by issuance timestamp descending, newest
// first. Ids in the result keep admin delete addressable. It returns an
// empty slice when nothing matches.
func ListLogs(ctx context.Context, db *gorm.DB, f LogFilter) ([]domain.LedgerRow, error) {
	q := db.WithContext(ctx).
		Model(&domain.IssuanceLog{}).
		Select("issuance_logs.id, issuance_logs.issued_at, issuance_logs.recipient_id, recipients.name as recipient_name, issuance_logs.item_id, items.name as item_name, issuance_logs.quantity, issuance_logs.note").
		Joins("JOIN recipients ON recipients.id = issuance_logs.recipient_id").
		Joins("JOIN items ON items.id = issuance_logs.item_id")

	if !f.From.IsZero() {
		from := time.Date(f.From.Year(), f.From.Month(), f.From.Day(), 0, 0, 0, 0, f.From.Location())
		q = q.Where("issuance_logs.issued_at >= ?", from)
	}
	if !f.To.IsZero() {
		// Inclusive end date: strictly before midnight of the following day.
		to := time.Date(f.To.Year(), f.To.Month(), f.To.Day(), 0, 0, 0, 0, f.To.Location()).AddDate(0, 0, 1)
		q = q.Where("issuance_logs.issued_at < ?", to)
	}
	if f.RecipientID != 0 {
		q = q.Where("issuance_logs.recipient_id = ?", f.RecipientID)
	}
	if f.ItemID != 0 {
		q = q.Where("issuance_logs.item_id = ?", f.ItemID)
	}

	var out []domain.LedgerRow
	err := q.Order("issuance_logs.issued_at desc, issuance_logs.id desc").Scan(&out).Error
	if out == nil {
		out = []domain.LedgerRow{}
	}
	return out, err
}
