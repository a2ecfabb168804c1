// Export HTTP handlers.
//
// This file exposes the download surface for the ledger:
//   - GET /exports/{kind}   (kind = csv | xlsx | pdf)
//
// The handler assembles a report (rows + the three summaries) from the shared
// filter parameters, renders it with the requested formatter, and streams the
// bytes with a filename and the proper content type. Exports are whole-report
// snapshots; there is no pagination.
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/supplydesk/go-supply-ledger/internal/export"
	"github.com/supplydesk/go-supply-ledger/internal/repo"
	"github.com/supplydesk/go-supply-ledger/internal/services"
)

// Export godoc
// @ID          exportLedger
// @Summary     Download the ledger as CSV, XLSX, or PDF
// @Description Renders the filtered ledger (plus item/recipient totals and the cross-tab
// @Description for workbook and PDF output) and returns it as a file download.
// @Tags        Exports
// @Produce     text/csv
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce     application/pdf
//
// @Param       kind          path   string  true  "Export format"        Enums(csv, xlsx, pdf)
// @Param       month         query  string  false "Month key (YYYY-MM)"  example(2026-08)
// @Param       recipient_id  query  int     false "Filter by recipient"  example(3)
// @Param       item_id       query  int     false "Filter by item"       example(7)
// @Param       If-None-Match header string  false "Return 304 if ETag matches"  example(W/\"ledger:42:1756700000\")
//
// @Success     200  {file}    file
// @Header      200  {string}  ETag "Weak ETag for the current ledger state"
// @Success     304  "Ledger unchanged since the tagged download"
// @Failure     400  {object}  handlers.ErrorResponse "Unknown format or malformed filter"
// @Failure     500  {object}  handlers.ErrorResponse "Render failure"
// @Router      /exports/{kind} [get]
func (h *Handlers) Export(c *gin.Context) {
	kind := export.Kind(c.Param("kind"))
	switch kind {
	case export.KindCSV, export.KindXLSX, export.KindPDF:
	default:
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "format must be csv, xlsx, or pdf")
		return
	}

	f, errParse := logFilterFromQuery(c)
	if errParse != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, errParse.Error())
		return
	}

	// A month key narrows the range to that calendar month.
	month := c.Query("month")
	if month != "" {
		start, err := time.ParseInLocation("2006-01", month, time.Local)
		if err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "month must be YYYY-MM")
			return
		}
		f.From = start
		f.To = start.AddDate(0, 1, -1)
	}

	// ETag pre-check (best effort). Rendering XLSX or PDF is the expensive
	// part of this endpoint, so a matching tag skips it entirely. The tag
	// covers the whole ledger: any insert or delete invalidates it.
	var db *gorm.DB
	if svc, ok := h.reportSvc.(*services.ReportService); ok {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, errStats := repo.LedgerStats(c.Request.Context(), db)
		if errStats == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"ledger:%d:%d"`, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	rows, err := h.reportSvc.ListLogs(c.Request.Context(), f)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	r := export.Assemble(h.report.OrgName, h.report.DeptName, month, h.report.Approvers, rows)

	var data []byte
	switch kind {
	case export.KindXLSX:
		data, err = export.XLSX(r)
	case export.KindPDF:
		data, err = export.PDF(r, h.report.PDFFontPath)
	default:
		data, err = export.CSV(r)
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeExportFailed, err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(kind, month)))
	c.Data(http.StatusOK, export.ContentType(kind), data)
}
