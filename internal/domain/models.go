// Package domain defines the persistence models for recipients, items, and
// issuance logs. These types are mapped with GORM and form the core data layer
// of the supply ledger application.
package domain

import "time"

// Recipient represents a staff member who can receive issued supplies.
// Recipients are curated by an administrator through the master-list
// endpoints; the ledger itself never creates or edits them.
//
// Fields:
//   - ID: stable autoincrement primary key.
//   - Name: display name, unique across all recipients (case-sensitive).
//   - Active: whether the recipient is offered for new issuance entries.
//     Inactive recipients stay visible in historical logs and admin listings.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//
// A recipient row can only be hard-deleted while no issuance log references
// it; deactivation is the reversible alternative.
type Recipient struct {
	ID        uint      `json:"id"         gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name"       gorm:"type:varchar(100);not null;uniqueIndex:ux_recipients_name"`
	Active    bool      `json:"active"     gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Recipient.
func (Recipient) TableName() string { return "recipients" }

// Item represents a consumable supply type (paper towels, bleach, trash
// bags, ...). Lifecycle rules mirror Recipient exactly: unique name, active
// flag, hard delete blocked while referenced by any log.
type Item struct {
	ID        uint      `json:"id"         gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name"       gorm:"type:varchar(100);not null;uniqueIndex:ux_items_name"`
	Active    bool      `json:"active"     gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Item.
func (Item) TableName() string { return "items" }

// IssuanceLog is a single recorded transfer of a quantity of an item to a
// recipient at a point in time. Logs are append-only in normal operation;
// the only mutation is an explicit administrative delete-by-id. Rows are
// never updated in place.
//
// Fields:
//   - ID: autoincrement primary key; monotonically assigned by SQLite.
//   - IssuedAt: timestamp of the issuance, set at creation, immutable.
//   - RecipientID / ItemID: required foreign keys. ON DELETE RESTRICT
//     backstops the service-level referential check on master hard deletes.
//   - Quantity: issued amount, always >= 1 (enforced by a check constraint).
//   - Note: optional free text.
type IssuanceLog struct {
	ID          uint      `json:"id"           gorm:"primaryKey;autoIncrement"`
	IssuedAt    time.Time `json:"issued_at"    gorm:"not null;index:idx_logs_issued_at"`
	RecipientID uint      `json:"recipient_id" gorm:"not null;index:idx_logs_recipient"`
	ItemID      uint      `json:"item_id"      gorm:"not null;index:idx_logs_item"`
	Quantity    int       `json:"quantity"     gorm:"not null;check:quantity >= 1"`
	Note        string    `json:"note,omitempty" gorm:"type:text"`

	// FK associations. RESTRICT (not CASCADE): a master row with logs must
	// not be deletable out from under its history.
	Recipient Recipient `json:"-" gorm:"foreignKey:RecipientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Item      Item      `json:"-" gorm:"foreignKey:ItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for IssuanceLog.
func (IssuanceLog) TableName() string { return "issuance_logs" }

// LedgerRow is the joined, read-only view of an issuance log with the
// recipient and item names resolved. Listings, reports, and exports operate
// on this shape; ids are retained so admin tooling can still address the
// underlying rows.
type LedgerRow struct {
	ID            uint      `json:"id"`
	IssuedAt      time.Time `json:"issued_at"`
	RecipientID   uint      `json:"recipient_id"`
	RecipientName string    `json:"recipient_name"`
	ItemID        uint      `json:"item_id"`
	ItemName      string    `json:"item_name"`
	Quantity      int       `json:"quantity"`
	Note          string    `json:"note,omitempty"`
}
