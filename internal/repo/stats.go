// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries over
// the ledger: row counts, the latest issuance timestamp, and the set of
// months that actually contain data (the selectable reporting periods).
// Each function is context-aware and safe to call from services or handlers.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/supplydesk/go-supply-ledger/internal/domain"
)

// LedgerStats returns aggregate metadata for the issuance ledger: the total
// number of rows and the maximum IssuedAt timestamp among those rows.
//
// When the ledger is empty, the returned count is 0 and maxIssuedAt is nil.
//
// Return values:
//   - count:       total issuance log rows
//   - maxIssuedAt: pointer to the greatest IssuedAt, or nil if no rows
//   - err:         database error, if any
func LedgerStats(ctx context.Context, db *gorm.DB) (count int64, maxIssuedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.IssuanceLog{})

	// Count
	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest issued_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		IssuedAt time.Time
	}
	if err = q.Select("issued_at").Order("issued_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.IssuedAt, nil
}

// DistinctMonths returns the "YYYY-MM" keys of every month that has at least
// one issuance log, ascending. These are the periods the reporting UI offers
// for selection.
//
// The key is cut straight from the stored timestamp text, which begins with
// "YYYY-MM" regardless of driver time layout. strftime() must NOT be used
// here: SQLite's date functions normalize an offset-carrying timestamp to UTC
// first, which moves rows near a month boundary (e.g. 2026-08-01 00:30 KST)
// into a different month than the one the month filter resolves them to.
func DistinctMonths(ctx context.Context, db *gorm.DB) ([]string, error) {
	var out []string
	err := db.WithContext(ctx).
		Model(&domain.IssuanceLog{}).
		Distinct("substr(issued_at, 1, 7)").
		Order("substr(issued_at, 1, 7) asc").
		Pluck("substr(issued_at, 1, 7)", &out).Error
	if out == nil {
		out = []string{}
	}
	return out, err
}
