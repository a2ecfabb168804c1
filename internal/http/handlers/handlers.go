// Handler wiring for the supply-ledger API.
//
// This file declares the service contracts the HTTP layer consumes, the
// Handlers aggregate that the router binds routes against, and the small
// request-parsing helpers shared by the endpoint files.
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results (including service sentinels) into HTTP responses.
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/supplydesk/go-supply-ledger/internal/config"
	"github.com/supplydesk/go-supply-ledger/internal/domain"
	"github.com/supplydesk/go-supply-ledger/internal/repo"
)

//
// Service contracts (context-aware)
//

// MasterService defines master-list operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type MasterService interface {
	// AddRecipients bulk-adds names, skipping blanks and duplicates; returns
	// how many rows were actually created.
	AddRecipients(ctx context.Context, names []string) (int, error)
	// RenameRecipient changes a recipient's display name.
	RenameRecipient(ctx context.Context, id uint, newName string) error
	// SetRecipientActive toggles whether the recipient appears in issue forms.
	SetRecipientActive(ctx context.Context, id uint, active bool) error
	// DeleteRecipient hard-deletes an unreferenced recipient.
	DeleteRecipient(ctx context.Context, id uint) error
	// ListActiveRecipients returns active recipients in collated name order.
	ListActiveRecipients(ctx context.Context) ([]domain.Recipient, error)
	// ListAllRecipients returns every recipient, active or not.
	ListAllRecipients(ctx context.Context) ([]domain.Recipient, error)

	AddItems(ctx context.Context, names []string) (int, error)
	RenameItem(ctx context.Context, id uint, newName string) error
	SetItemActive(ctx context.Context, id uint, active bool) error
	DeleteItem(ctx context.Context, id uint) error
	ListActiveItems(ctx context.Context) ([]domain.Item, error)
	ListAllItems(ctx context.Context) ([]domain.Item, error)
}

// IssuanceService defines append/delete operations over the issuance ledger.
type IssuanceService interface {
	// Record appends one issuance event and returns its monotonic id.
	Record(ctx context.Context, recipientID, itemID uint, qty int, note string, at time.Time) (uint, error)
	// Delete removes one issuance event by id.
	Delete(ctx context.Context, logID uint) error
}

// ReportService defines the read-only reporting operations.
type ReportService interface {
	// ListLogs returns the joined ledger view matching f, newest first.
	ListLogs(ctx context.Context, f repo.LogFilter) ([]domain.LedgerRow, error)
	// LogsForMonth returns the ledger rows whose issue month equals month.
	LogsForMonth(ctx context.Context, month string) ([]domain.LedgerRow, error)
	// Months lists the distinct "YYYY-MM" keys present in the ledger.
	Months(ctx context.Context) ([]string, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for masters, issuance logs, reports, and
// exports. It depends on abstract service interfaces to keep transport
// concerns separate from business logic.
type Handlers struct {
	masterSvc MasterService
	issueSvc  IssuanceService
	reportSvc ReportService
	report    config.ReportConfig
}

// New constructs and returns a Handlers instance bound to the given services.
// reportCfg carries the org/department labels, approver roles, and optional
// PDF font path used by the export endpoints.
func New(masterSvc MasterService, issueSvc IssuanceService, reportSvc ReportService, reportCfg config.ReportConfig) *Handlers {
	return &Handlers{
		masterSvc: masterSvc,
		issueSvc:  issueSvc,
		reportSvc: reportSvc,
		report:    reportCfg,
	}
}

//
// Helpers
//

// idParam parses the :id path parameter as a positive integer. On failure it
// writes a 400 response and returns ok=false.
func idParam(c *gin.Context) (uint, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "id must be a positive integer")
		return 0, false
	}
	return uint(n), true
}

// uintQuery parses an optional numeric query parameter; absent or blank means
// zero (no filter). A malformed value reports an error.
func uintQuery(c *gin.Context, key string) (uint, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(n), nil
}

// dateQuery parses an optional "YYYY-MM-DD" query parameter in local time;
// absent or blank means the zero time (open-ended range bound).
func dateQuery(c *gin.Context, key string) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.Local)
}

// boolQuery reports whether the query parameter holds a truthy value
// ("1", "true", "yes", case-insensitive).
func boolQuery(c *gin.Context, key string) bool {
	switch strings.ToLower(strings.TrimSpace(c.Query(key))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
