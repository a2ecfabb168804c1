// Issuance-log HTTP handlers.
//
// This file exposes REST endpoints for the issuance ledger:
//   - POST   /logs       (record an issuance)
//   - GET    /logs       (filtered ledger listing, newest first)
//   - DELETE /logs/{id}  (administrative correction, admin)
//
// Recording never updates in place: corrections are a delete plus a fresh
// record, matching how the paper ledger was kept.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/supplydesk/go-supply-ledger/internal/repo"
	"github.com/supplydesk/go-supply-ledger/internal/services"
)

//
// DTOs
//

// RecordLogRequest is the JSON payload for recording an issuance event.
type RecordLogRequest struct {
	// RecipientID references an existing recipient.
	RecipientID uint `json:"recipient_id" binding:"required" example:"3"`
	// ItemID references an existing item.
	ItemID uint `json:"item_id" binding:"required" example:"7"`
	// Quantity issued; must be >= 1.
	Quantity int `json:"quantity" binding:"required" example:"2"`
	// Note is an optional free-text remark.
	Note string `json:"note,omitempty" example:"3층 화장실"`
	// IssuedAt optionally backdates the event (RFC 3339); defaults to now.
	IssuedAt *time.Time `json:"issued_at,omitempty" example:"2026-08-14T09:30:00+09:00"`
}

// RecordLogResponse carries the monotonic id of a freshly recorded event.
type RecordLogResponse struct {
	ID uint `json:"id" example:"152"`
}

//
// Handlers
//

// RecordLog godoc
// @ID          recordLog
// @Summary     Record an issuance
// @Description Appends one issuance event to the ledger and returns its id.
// @Tags        Logs
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.RecordLogRequest  true  "Issuance payload"
//
// @Success     201  {object}  handlers.RecordLogResponse
// @Failure     400  {object}  handlers.ErrorResponse "Invalid payload or quantity"
// @Failure     422  {object}  handlers.ErrorResponse "Unknown recipient or item"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /logs [post]
func (h *Handlers) RecordLog(c *gin.Context) {
	var req RecordLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "recipient_id, item_id and quantity are required")
		return
	}

	at := time.Time{}
	if req.IssuedAt != nil {
		at = *req.IssuedAt
	}

	id, err := h.issueSvc.Record(c.Request.Context(), req.RecipientID, req.ItemID, req.Quantity, req.Note, at)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidQuantity):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "quantity must be >= 1")
		case errors.Is(err, services.ErrUnknownRecipient):
			fail(c, http.StatusUnprocessableEntity, ErrCodeUnknownReference, "recipient does not exist")
		case errors.Is(err, services.ErrUnknownItem):
			fail(c, http.StatusUnprocessableEntity, ErrCodeUnknownReference, "item does not exist")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeRecordFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, RecordLogResponse{ID: id})
}

// ListLogs godoc
// @ID          listLogs
// @Summary     List issuance logs
// @Description Returns the joined ledger view, newest first. All filters are optional;
// @Description from/to are inclusive calendar dates.
// @Tags        Logs
// @Produce     json
//
// @Param       from          query  string  false "Start date (YYYY-MM-DD, inclusive)"  example(2026-08-01)
// @Param       to            query  string  false "End date (YYYY-MM-DD, inclusive)"    example(2026-08-31)
// @Param       recipient_id  query  int     false "Filter by recipient"                 example(3)
// @Param       item_id       query  int     false "Filter by item"                      example(7)
//
// @Success     200  {array}   domain.LedgerRow
// @Failure     400  {object}  handlers.ErrorResponse "Malformed filter"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /logs [get]
func (h *Handlers) ListLogs(c *gin.Context) {
	f, errParse := logFilterFromQuery(c)
	if errParse != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, errParse.Error())
		return
	}

	rows, err := h.reportSvc.ListLogs(c.Request.Context(), f)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, rows)
}

// DeleteLog godoc
// @ID          deleteLog
// @Summary     Delete an issuance log
// @Description Administrative correction: removes one ledger row by id.
// @Tags        Logs
// @Produce     json
//
// @Param       X-Admin-Secret  header  string  true  "Admin secret"
// @Param       id              path    int     true  "Log ID"  example(152)
//
// @Success     204  {string}  string "No Content"
// @Failure     404  {object}  handlers.ErrorResponse "Log not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /logs/{id} [delete]
func (h *Handlers) DeleteLog(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		return
	}

	if err := h.issueSvc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "log not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}

// logFilterFromQuery builds a repo.LogFilter from the shared filter query
// parameters (from, to, recipient_id, item_id).
func logFilterFromQuery(c *gin.Context) (repo.LogFilter, error) {
	var f repo.LogFilter
	var err error

	if f.From, err = dateQuery(c, "from"); err != nil {
		return f, errors.New("from must be YYYY-MM-DD")
	}
	if f.To, err = dateQuery(c, "to"); err != nil {
		return f, errors.New("to must be YYYY-MM-DD")
	}
	if f.RecipientID, err = uintQuery(c, "recipient_id"); err != nil {
		return f, errors.New("recipient_id must be a positive integer")
	}
	if f.ItemID, err = uintQuery(c, "item_id"); err != nil {
		return f, errors.New("item_id must be a positive integer")
	}
	return f, nil
}
