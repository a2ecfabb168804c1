package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/supplydesk/go-supply-ledger/internal/config"
	"github.com/supplydesk/go-supply-ledger/internal/domain"
	"github.com/supplydesk/go-supply-ledger/internal/repo"
)

func exportRouter(report ReportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(stubMasterSvc{}, stubIssueSvc{}, report, config.ReportConfig{
		OrgName:   "시설관리공단",
		DeptName:  "환경미화팀",
		Approvers: []string{"담당", "팀장", "소장"},
	})
	r := gin.New()
	r.GET("/exports/:kind", h.Export)
	return r
}

func TestExport_CSVDownloadHeaders(t *testing.T) {
	at := time.Date(2026, 8, 14, 9, 0, 0, 0, time.Local)
	r := exportRouter(stubReportSvc{
		listLogs: func(context.Context, repo.LogFilter) ([]domain.LedgerRow, error) {
			return []domain.LedgerRow{
				{ID: 1, IssuedAt: at, RecipientName: "김순영", ItemName: "핸드타올", Quantity: 2},
			}, nil
		},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/exports/csv?month=2026-08", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /exports/csv -> %d; body %s", w.Code, w.Body.String())
	}

	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, `supply_ledger_2026-08.csv`) {
		t.Fatalf("content disposition = %q", cd)
	}
	// UTF-8 BOM so spreadsheet apps decode Hangul correctly
	if !bytes.HasPrefix(w.Body.Bytes(), []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatalf("CSV body missing BOM prefix")
	}
	if !strings.Contains(w.Body.String(), "김순영") {
		t.Fatalf("CSV body missing row data: %s", w.Body.String())
	}
}

func TestExport_MonthNarrowsFilter(t *testing.T) {
	r := exportRouter(stubReportSvc{
		listLogs: func(_ context.Context, f repo.LogFilter) ([]domain.LedgerRow, error) {
			if f.From.Format("2006-01-02") != "2026-08-01" {
				t.Fatalf("from = %v", f.From)
			}
			if f.To.Format("2006-01-02") != "2026-08-31" {
				t.Fatalf("to = %v", f.To)
			}
			return nil, nil
		},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/exports/csv?month=2026-08", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /exports/csv -> %d", w.Code)
	}
}

func TestExport_XLSXAndPDFSignatures(t *testing.T) {
	r := exportRouter(stubReportSvc{
		listLogs: func(context.Context, repo.LogFilter) ([]domain.LedgerRow, error) {
			return []domain.LedgerRow{
				{ID: 1, IssuedAt: time.Now(), RecipientName: "A", ItemName: "X", Quantity: 1},
			}, nil
		},
	})

	// XLSX files are zip archives: "PK" magic
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/exports/xlsx", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /exports/xlsx -> %d", w.Code)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("PK")) {
		t.Fatalf("xlsx body does not look like a zip archive")
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "supply_ledger_all.xlsx") {
		t.Fatalf("content disposition = %q", cd)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/exports/pdf", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /exports/pdf -> %d", w.Code)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("pdf body missing %%PDF signature")
	}
}

func TestExport_BadKindAndMonth(t *testing.T) {
	r := exportRouter(stubReportSvc{
		listLogs: func(context.Context, repo.LogFilter) ([]domain.LedgerRow, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/exports/docx", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown format expected 400, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/exports/csv?month=August", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad month expected 400, got %d", w.Code)
	}
}
