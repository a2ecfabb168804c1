// Package services – IssuanceService
//
// This file implements the IssuanceService, which appends issuance events to
// the ledger and handles the administrative delete of a single entry. It
// enforces the write-side invariants (quantity >= 1, both foreign keys must
// resolve) before anything is persisted; the FK constraints in the schema
// backstop the checks.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/supplydesk/go-supply-ledger/internal/repo"
)

// IssuanceService implements the use-cases around issuance events.
type IssuanceService struct {
	// DB is the database handle used for all issuance operations.
	DB *gorm.DB
}

// Record appends one issuance event and returns its fresh identifier.
//
// Semantics and validation:
//   - qty must be >= 1; otherwise ErrInvalidQuantity.
//   - recipientID and itemID must reference existing rows; otherwise
//     ErrUnknownRecipient / ErrUnknownItem. Inactive masters are still
//     accepted here — the active flag only governs what the entry form
//     offers, and historical backfills may target deactivated rows.
//   - at defaults to the current time when zero. The timestamp is immutable
//     after insert.
//
// Side effect: exactly one durable row appended; no other rows mutated.
func (s *IssuanceService) Record(ctx context.Context, recipientID, itemID uint, qty int, note string, at time.Time) (uint, error) {
	if qty < 1 {
		return 0, ErrInvalidQuantity
	}
	if at.IsZero() {
		at = time.Now()
	}

	if _, err := repo.GetRecipient(ctx, s.DB, recipientID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return 0, ErrUnknownRecipient
		}
		return 0, err
	}
	if _, err := repo.GetItem(ctx, s.DB, itemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return 0, ErrUnknownItem
		}
		return 0, err
	}

	l, err := repo.InsertLog(ctx, s.DB, recipientID, itemID, qty, strings.TrimSpace(note), at)
	if err != nil {
		return 0, err
	}
	return l.ID, nil
}

// Delete permanently removes the log row identified by logID. Returns
// ErrNotFound if it does not exist. No cascading effects: the referenced
// recipient and item rows are untouched.
func (s *IssuanceService) Delete(ctx context.Context, logID uint) error {
	err := repo.DeleteLog(ctx, s.DB, logID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
