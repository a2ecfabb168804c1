// Reporting HTTP handlers.
//
// This file exposes the read-only aggregation endpoints:
//   - GET /months            (distinct "YYYY-MM" keys present in the ledger)
//   - GET /reports/summary   (group-by totals + cross-tab, optionally per month)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supplydesk/go-supply-ledger/internal/domain"
	"github.com/supplydesk/go-supply-ledger/internal/repo"
	"github.com/supplydesk/go-supply-ledger/internal/services"
)

// MonthsResponse lists the months that have at least one issuance log.
type MonthsResponse struct {
	Months []string `json:"months" example:"2026-07,2026-08"`
}

// SummaryResponse is the aggregation view for one month (or the full ledger).
type SummaryResponse struct {
	// Month is the "YYYY-MM" key, or "" for the full ledger.
	Month string `json:"month,omitempty" example:"2026-08"`
	// RowCount is the number of ledger rows the summary covers.
	RowCount int `json:"row_count" example:"42"`
	// ItemTotals sums quantities per item, descending.
	ItemTotals []services.Total `json:"item_totals"`
	// RecipientTotals sums quantities per recipient, descending.
	RecipientTotals []services.Total `json:"recipient_totals"`
	// CrossTab is the recipient × item quantity matrix.
	CrossTab services.CrossTab `json:"cross_tab"`
}

// ListMonths godoc
// @ID          listMonths
// @Summary     List ledger months
// @Description Returns the distinct issue months ("YYYY-MM") present in the ledger, ascending.
// @Tags        Reports
// @Produce     json
//
// @Success     200  {object}  handlers.MonthsResponse
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /months [get]
func (h *Handlers) ListMonths(c *gin.Context) {
	months, err := h.reportSvc.Months(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, MonthsResponse{Months: months})
}

// Summary godoc
// @ID          reportSummary
// @Summary     Aggregated totals and cross-tab
// @Description Computes item totals, recipient totals, and the recipient × item cross-tab.
// @Description Without a month parameter the whole ledger is summarized.
// @Tags        Reports
// @Produce     json
//
// @Param       month  query  string  false "Month key (YYYY-MM)"  example(2026-08)
//
// @Success     200  {object}  handlers.SummaryResponse
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /reports/summary [get]
func (h *Handlers) Summary(c *gin.Context) {
	month, rows, err := h.monthRows(c)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	ok(c, http.StatusOK, SummaryResponse{
		Month:           month,
		RowCount:        len(rows),
		ItemTotals:      services.GroupByItem(rows),
		RecipientTotals: services.GroupByRecipient(rows),
		CrossTab:        services.BuildCrossTab(rows),
	})
}

// monthRows fetches the ledger rows for the month query parameter; an empty
// parameter selects the full ledger.
func (h *Handlers) monthRows(c *gin.Context) (string, []domain.LedgerRow, error) {
	ctx := c.Request.Context()
	month := c.Query("month")
	if month == "" {
		rows, err := h.reportSvc.ListLogs(ctx, repo.LogFilter{})
		return "", rows, err
	}
	rows, err := h.reportSvc.LogsForMonth(ctx, month)
	return month, rows, err
}
