// Package services – MasterService
//
// This file implements the MasterService, which curates the two master
// lists (recipients and items). Both entity kinds follow identical rules:
// names are trimmed and must stay unique, bulk adds skip duplicates silently,
// deactivation is the reversible removal mechanism, and a hard delete is
// refused while any issuance log still references the row. Service-level
// errors (ErrEmptyName, ErrDuplicateName, ErrNotFound, *InUseError) are
// returned for predictable cases so handlers can map them to HTTP results
// consistently.
package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/supplydesk/go-supply-ledger/internal/domain"
	"github.com/supplydesk/go-supply-ledger/internal/repo"
)

// MasterService implements the use-cases around the recipient and item
// master lists. It validates input, classifies driver errors into service
// sentinels, and keeps listings in locale-aware name order. The service is
// context-aware; each hard delete runs its check and delete inside one
// transaction.
//
// Known race, accepted: the delete guard recounts references and then
// deletes in two statements. A log inserted between them would slip past the
// count, but the FK RESTRICT constraint still rejects the delete. The ledger
// is operated by a single administrator at a time, so no stricter locking is
// layered on top.
type MasterService struct {
	// DB is the database handle used for all master-list operations.
	DB *gorm.DB
}

// AddRecipients inserts each name as an active recipient. Names are trimmed;
// empties are skipped, and a name that already exists is skipped without
// error (idempotent bulk-add). It returns the number of rows created.
func (s *MasterService) AddRecipients(ctx context.Context, names []string) (int, error) {
	created := 0
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		ok, err := repo.CreateRecipientIfAbsent(ctx, s.DB, name)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}
	return created, nil
}

// AddItems mirrors AddRecipients for the item master list.
func (s *MasterService) AddItems(ctx context.Context, names []string) (int, error) {
	created := 0
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		ok, err := repo.CreateItemIfAbsent(ctx, s.DB, name)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}
	return created, nil
}

// RenameRecipient changes the name of the recipient identified by id.
//
// Semantics and validation:
//   - newName is trimmed; an empty result yields ErrEmptyName.
//   - A collision with another recipient's name yields ErrDuplicateName and
//     leaves the original name unchanged.
//   - A missing id yields ErrNotFound. The identifier never changes.
func (s *MasterService) RenameRecipient(ctx context.Context, id uint, newName string) error {
	name := strings.TrimSpace(newName)
	if name == "" {
		return ErrEmptyName
	}
	err := repo.RenameRecipient(ctx, s.DB, id, name)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrNotFound):
		return ErrNotFound
	case isDuplicate(err):
		return ErrDuplicateName
	default:
		return err
	}
}

// RenameItem mirrors RenameRecipient for items.
func (s *MasterService) RenameItem(ctx context.Context, id uint, newName string) error {
	name := strings.TrimSpace(newName)
	if name == "" {
		return ErrEmptyName
	}
	err := repo.RenameItem(ctx, s.DB, id, name)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrNotFound):
		return ErrNotFound
	case isDuplicate(err):
		return ErrDuplicateName
	default:
		return err
	}
}

// SetRecipientActive flips the selectable flag; deactivation never touches
// historical logs. A missing id yields ErrNotFound.
func (s *MasterService) SetRecipientActive(ctx context.Context, id uint, active bool) error {
	err := repo.SetRecipientActive(ctx, s.DB, id, active)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// SetItemActive mirrors SetRecipientActive for items.
func (s *MasterService) SetItemActive(ctx context.Context, id uint, active bool) error {
	err := repo.SetItemActive(ctx, s.DB, id, active)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// DeleteRecipient hard-deletes an unreferenced recipient. When issuance logs
// still reference the row, it returns an *InUseError carrying the count and
// deletes nothing.
func (s *MasterService) DeleteRecipient(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		refs, err := repo.CountLogsForRecipient(ctx, tx, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return &InUseError{Kind: "recipient", ID: id, Refs: refs}
		}
		if err := repo.DeleteRecipient(ctx, tx, id); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		return nil
	})
}

// DeleteItem mirrors DeleteRecipient for items.
func (s *MasterService) DeleteItem(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		refs, err := repo.CountLogsForItem(ctx, tx, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return &InUseError{Kind: "item", ID: id, Refs: refs}
		}
		if err := repo.DeleteItem(ctx, tx, id); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		return nil
	})
}

// ListActiveRecipients returns the recipients offered for new issuance
// entries, name ascending under Korean collation.
func (s *MasterService) ListActiveRecipients(ctx context.Context) ([]domain.Recipient, error) {
	out, err := repo.ListRecipients(ctx, s.DB, true)
	if err != nil {
		return nil, err
	}
	sortRecipients(out)
	return out, nil
}

// ListAllRecipients returns every recipient, active and inactive, name
// ascending under Korean collation.
func (s *MasterService) ListAllRecipients(ctx context.Context) ([]domain.Recipient, error) {
	out, err := repo.ListRecipients(ctx, s.DB, false)
	if err != nil {
		return nil, err
	}
	sortRecipients(out)
	return out, nil
}

// ListActiveItems mirrors ListActiveRecipients for items.
func (s *MasterService) ListActiveItems(ctx context.Context) ([]domain.Item, error) {
	out, err := repo.ListItems(ctx, s.DB, true)
	if err != nil {
		return nil, err
	}
	sortItems(out)
	return out, nil
}

// ListAllItems mirrors ListAllRecipients for items.
func (s *MasterService) ListAllItems(ctx context.Context) ([]domain.Item, error) {
	out, err := repo.ListItems(ctx, s.DB, false)
	if err != nil {
		return nil, err
	}
	sortItems(out)
	return out, nil
}

// sortRecipients orders rows by name with a Korean collator so Hangul names
// sort the way the roster reads. The repo's byte order is the stable base.
func sortRecipients(rows []domain.Recipient) {
	c := collate.New(language.Korean)
	sort.SliceStable(rows, func(i, j int) bool {
		return c.CompareString(rows[i].Name, rows[j].Name) < 0
	})
}

func sortItems(rows []domain.Item) {
	c := collate.New(language.Korean)
	sort.SliceStable(rows, func(i, j int) bool {
		return c.CompareString(rows[i].Name, rows[j].Name) < 0
	})
}

// isDuplicate attempts to detect unique-constraint violations across drivers
// that may not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
