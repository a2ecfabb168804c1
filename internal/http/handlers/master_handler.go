// Master-list HTTP handlers.
//
// This file exposes REST endpoints for the recipient and item master lists:
//   - GET    /recipients                (list; ?all=1 includes inactive)
//   - POST   /recipients               (bulk add, admin)
//   - PUT    /recipients/{id}/name     (rename, admin)
//   - PUT    /recipients/{id}/active   (activate/deactivate, admin)
//   - DELETE /recipients/{id}          (hard delete when unreferenced, admin)
//
// and the mirrored /items routes. Handlers are transport-thin: they validate
// input, call the master service, and translate its sentinels into HTTP
// responses (409 for duplicates and in-use rows, 404 for missing ids).
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supplydesk/go-supply-ledger/internal/services"
)

//
// DTOs
//

// AddMastersRequest is the JSON payload for bulk-adding master rows.
// Blank and already-present names are skipped, so re-posting the same
// list is harmless.
type AddMastersRequest struct {
	// Names to add; order is irrelevant.
	Names []string `json:"names" binding:"required,min=1" example:"김순영,노나경"`
}

// AddMastersResponse reports how many rows a bulk add actually created.
type AddMastersResponse struct {
	Created int `json:"created" example:"2"`
}

// RenameMasterRequest is the JSON payload for renaming a master row.
type RenameMasterRequest struct {
	// Name is the new display name (1–100 chars).
	Name string `json:"name" binding:"required,min=1,max=100" example:"핸드타올(대)"`
}

// SetActiveRequest is the JSON payload for toggling a master row's active flag.
type SetActiveRequest struct {
	// Active controls whether the row is offered on the issue form.
	Active *bool `json:"active" binding:"required" example:"false"`
}

//
// Helpers
//

// failMaster translates master-service sentinels into HTTP error responses.
// kind names the resource for messages ("recipient" or "item").
func failMaster(c *gin.Context, err error, kind string) {
	var inUse *services.InUseError
	switch {
	case errors.Is(err, services.ErrEmptyName):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name must not be blank")
	case errors.Is(err, services.ErrDuplicateName):
		fail(c, http.StatusConflict, ErrCodeDuplicateName, fmt.Sprintf("a %s with that name already exists", kind))
	case errors.Is(err, services.ErrNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, kind+" not found")
	case errors.As(err, &inUse):
		failWithRefs(c, http.StatusConflict, ErrCodeInUse, inUse.Error(), inUse.Refs)
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

//
// Recipients
//

// ListRecipients godoc
// @ID          listRecipients
// @Summary     List recipients
// @Description Returns recipients in collated name order. Pass all=1 to include inactive rows.
// @Tags        Masters
// @Produce     json
//
// @Param       all  query  string  false "Include inactive rows"  example(1)
//
// @Success     200  {array}   domain.Recipient
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /recipients [get]
func (h *Handlers) ListRecipients(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		rows any
		err  error
	)
	if boolQuery(c, "all") {
		rows, err = h.masterSvc.ListAllRecipients(ctx)
	} else {
		rows, err = h.masterSvc.ListActiveRecipients(ctx)
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, rows)
}

// AddRecipients godoc
// @ID          addRecipients
// @Summary     Bulk-add recipients
// @Description Adds the given names, silently skipping blanks and names already on file.
// @Tags        Masters
// @Accept      json
// @Produce     json
//
// @Param       X-Admin-Secret  header  string  true  "Admin secret"
// @Param       body            body    handlers.AddMastersRequest  true  "Names to add"
//
// @Success     201  {object}  handlers.AddMastersResponse
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse "Missing or wrong admin secret"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /recipients [post]
func (h *Handlers) AddRecipients(c *gin.Context) {
	var req AddMastersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "names required (non-empty array)")
		return
	}

	created, err := h.masterSvc.AddRecipients(c.Request.Context(), req.Names)
	if err != nil {
		failMaster(c, err, "recipient")
		return
	}
	ok(c, http.StatusCreated, AddMastersResponse{Created: created})
}

// RenameRecipient godoc
// @ID          renameRecipient
// @Summary     Rename a recipient
// @Tags        Masters
// @Accept      json
// @Produce     json
//
// @Param       X-Admin-Secret  header  string  true  "Admin secret"
// @Param       id              path    int     true  "Recipient ID"  example(3)
// @Param       body            body    handlers.RenameMasterRequest  true  "New name"
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Recipient not found"
// @Failure     409  {object}  handlers.ErrorResponse "Name already taken"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /recipients/{id}/name [put]
func (h *Handlers) RenameRecipient(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		return
	}

	var req RenameMasterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name required (1–100 chars)")
		return
	}

	if err := h.masterSvc.RenameRecipient(c.Request.Context(), id, req.Name); err != nil {
		failMaster(c, err, "recipient")
		return
	}
	noContent(c)
}

// SetRecipientActive godoc
// @ID          setRecipientActive
// @Summary     Activate or deactivate a recipient
// @Description Inactive recipients stay on historical logs but disappear from issue forms.
// @Tags        Masters
// @Accept      json
// @Produce     json
//
// @Param       X-Admin-Secret  header  string  true  "Admin secret"
// @Param       id              path    int     true  "Recipient ID"  example(3)
// @Param       body            body    handlers.SetActiveRequest  true  "Active flag"
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Recipient not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /recipients/{id}/active [put]
func (h *Handlers) SetRecipientActive(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "active flag required")
		return
	}

	if err := h.masterSvc.SetRecipientActive(c.Request.Context(), id, *req.Active); err != nil {
		failMaster(c, err, "recipient")
		return
	}
	noContent(c)
}

// DeleteRecipient godoc
// @ID          deleteRecipient
// @Summary     Delete an unreferenced recipient
// @Description Hard-deletes the recipient. Refused with 409 (code in_use, refs carries the
// @Description log count) while any issuance log still references the row.
// @Tags        Masters
// @Produce     json
//
// @Param       X-Admin-Secret  header  string  true  "Admin secret"
// @Param       id              path    int     true  "Recipient ID"  example(3)
//
// @Success     204  {string}  string "No Content"
// @Failure     404  {object}  handlers.ErrorResponse "Recipient not found"
// @Failure     409  {object}  handlers.ErrorResponse "Recipient still referenced"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /recipients/{id} [delete]
func (h *Handlers) DeleteRecipient(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		return
	}

	if err := h.masterSvc.DeleteRecipient(c.Request.Context(), id); err != nil {
		failMaster(c, err, "recipient")
		return
	}
	noContent(c)
}

//
// Items (mirrors of the recipient endpoints)
//

// ListItems godoc
// @ID          listItems
// @Summary     List items
// @Description Returns items in collated name order. Pass all=1 to include inactive rows.
// @Tags        Masters
// @Produce     json
//
// @Param       all  query  string  false "Include inactive rows"  example(1)
//
// @Success     200  {array}   domain.Item
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /items [get]
func (h *Handlers) ListItems(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		rows any
		err  error
	)
	if boolQuery(c, "all") {
		rows, err = h.masterSvc.ListAllItems(ctx)
	} else {
		rows, err = h.masterSvc.ListActiveItems(ctx)
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, rows)
}

// AddItems godoc
// @ID          addItems
// @Summary     Bulk-add items
// @Tags        Masters
// @Accept      json
// @Produce     json
//
// @Param       X-Admin-Secret  header  string  true  "Admin secret"
// @Param       body            body    handlers.AddMastersRequest  true  "Names to add"
//
// @Success     201  {object}  handlers.AddMastersResponse
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse "Missing or wrong admin secret"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /items [post]
func (h *Handlers) AddItems(c *gin.Context) {
	var req AddMastersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "names required (non-empty array)")
		return
	}

	created, err := h.masterSvc.AddItems(c.Request.Context(), req.Names)
	if err != nil {
		failMaster(c, err, "item")
		return
	}
	ok(c, http.StatusCreated, AddMastersResponse{Created: created})
}

// RenameItem godoc
// @ID          renameItem
// @Summary     Rename an item
// @Tags        Masters
// @Accept      json
// @Produce     json
//
// @Param       X-Admin-Secret  header  string  true  "Admin secret"
// @Param       id              path    int     true  "Item ID"  example(7)
// @Param       body            body    handlers.RenameMasterRequest  true  "New name"
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Item not found"
// @Failure     409  {object}  handlers.ErrorResponse "Name already taken"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /items/{id}/name [put]
func (h *Handlers) RenameItem(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		return
	}

	var req RenameMasterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name required (1–100 chars)")
		return
	}

	if err := h.masterSvc.RenameItem(c.Request.Context(), id, req.Name); err != nil {
		failMaster(c, err, "item")
		return
	}
	noContent(c)
}

// SetItemActive godoc
// @ID          setItemActive
// @Summary     Activate or deactivate an item
// @Tags        Masters
// @Accept      json
// @Produce     json
//
// @Param       X-Admin-Secret  header  string  true  "Admin secret"
// @Param       id              path    int     true  "Item ID"  example(7)
// @Param       body            body    handlers.SetActiveRequest  true  "Active flag"
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Item not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /items/{id}/active [put]
func (h *Handlers) SetItemActive(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "active flag required")
		return
	}

	if err := h.masterSvc.SetItemActive(c.Request.Context(), id, *req.Active); err != nil {
		failMaster(c, err, "item")
		return
	}
	noContent(c)
}

// DeleteItem godoc
// @ID          deleteItem
// @Summary     Delete an unreferenced item
// @Tags        Masters
// @Produce     json
//
// @Param       X-Admin-Secret  header  string  true  "Admin secret"
// @Param       id              path    int     true  "Item ID"  example(7)
//
// @Success     204  {string}  string "No Content"
// @Failure     404  {object}  handlers.ErrorResponse "Item not found"
// @Failure     409  {object}  handlers.ErrorResponse "Item still referenced"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /items/{id} [delete]
func (h *Handlers) DeleteItem(c *gin.Context) {
	id, okID := idParam(c)
	if !okID {
		return
	}

	if err := h.masterSvc.DeleteItem(c.Request.Context(), id); err != nil {
		failMaster(c, err, "item")
		return
	}
	noContent(c)
}
