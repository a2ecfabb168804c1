// Package services defines the business logic for the supply ledger: master
// list curation, issuance recording, and reporting. This file centralizes
// common service-level error values so that they can be consistently returned
// by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyName is returned when an add or rename receives a name that is
	// empty after trimming.
	ErrEmptyName = errors.New("name is empty")

	// ErrDuplicateName is returned when a rename collides with another row's
	// name. Bulk adds never return it; duplicates there are skipped silently.
	ErrDuplicateName = errors.New("name already exists")

	// ErrNotFound indicates that the addressed recipient, item, or log row
	// does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidQuantity is returned when an issuance quantity is below 1.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	// ErrUnknownRecipient is returned when an issuance references a
	// recipient id with no backing row.
	ErrUnknownRecipient = errors.New("recipient does not exist")

	// ErrUnknownItem is returned when an issuance references an item id with
	// no backing row.
	ErrUnknownItem = errors.New("item does not exist")
)

// InUseError reports a blocked hard delete: the master row is still
// referenced by Refs issuance logs. The count gives the administrator enough
// context to decide between deactivating the row and deleting its history
// first.
type InUseError struct {
	Kind string // "recipient" or "item"
	ID   uint
	Refs int64
}

// Error implements the error interface.
func (e *InUseError) Error() string {
	return fmt.Sprintf("%s %d is referenced by %d issuance log(s)", e.Kind, e.ID, e.Refs)
}
