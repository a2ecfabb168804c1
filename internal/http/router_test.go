package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/supplydesk/go-supply-ledger/internal/config"
	"github.com/supplydesk/go-supply-ledger/internal/domain"
	"github.com/supplydesk/go-supply-ledger/internal/http/middleware"
)

// --- test DB helper (pure-Go sqlite, no CGO) ---
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:router_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable fks: %v", err)
	}
	if err := db.AutoMigrate(&domain.Recipient{}, &domain.Item{}, &domain.IssuanceLog{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func testConfig() config.Config {
	return config.Config{
		APIBasePath: "/api/v1",
		AdminSecret: "test-secret",
		RateRPS:     100,
		RateBurst:   50,
		CORS:        config.CORSConfig{AllowedOrigins: nil}, // AllowAllOrigins branch
		Security:    config.SecurityConfig{EnableHSTS: false},
		OTEL:        config.OTELConfig{ServiceName: "ledger-test"},
		Report: config.ReportConfig{
			OrgName:   "시설관리공단",
			DeptName:  "환경미화팀",
			Approvers: []string{"담당", "팀장", "소장"},
		},
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, newTestDB(t), testConfig())
	return r
}

func do(r *gin.Engine, method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterRoutes_HealthMetricsFallbacks(t *testing.T) {
	r := newTestRouter(t)

	// Health
	w := do(r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Fatalf("health: %d %s", w.Code, w.Body.String())
	}
	// Request id + permissive CORS applied globally
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header")
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected ACAO *")
	}

	// Metrics endpoint serves Prometheus text
	w = do(r, http.MethodGet, "/metrics", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "http_requests_total") {
		t.Fatalf("metrics: %d", w.Code)
	}

	// Unknown route → JSON envelope
	w = do(r, http.MethodGet, "/nope", "", nil)
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), "not_found") {
		t.Fatalf("noroute: %d %s", w.Code, w.Body.String())
	}

	// Known route, wrong method → 405 envelope
	w = do(r, http.MethodPatch, "/api/v1/logs", "", nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("nomethod: %d", w.Code)
	}
}

func TestRegisterRoutes_AdminGateOnMasters(t *testing.T) {
	r := newTestRouter(t)

	// Mutation without the secret → 401
	w := do(r, http.MethodPost, "/api/v1/recipients", `{"names":["김순영"]}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("ungated mutation expected 401, got %d", w.Code)
	}

	// With the secret → 201
	hdr := map[string]string{middleware.AdminSecretHeader: "test-secret"}
	w = do(r, http.MethodPost, "/api/v1/recipients", `{"names":["김순영"]}`, hdr)
	if w.Code != http.StatusCreated {
		t.Fatalf("gated mutation expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Reads stay open
	w = do(r, http.MethodGet, "/api/v1/recipients", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("open read expected 200, got %d", w.Code)
	}
}

func TestRegisterRoutes_LedgerRoundTrip(t *testing.T) {
	r := newTestRouter(t)
	admin := map[string]string{middleware.AdminSecretHeader: "test-secret"}

	// Seed one recipient and one item through the API
	if w := do(r, http.MethodPost, "/api/v1/recipients", `{"names":["김순영"]}`, admin); w.Code != http.StatusCreated {
		t.Fatalf("add recipient: %d %s", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodPost, "/api/v1/items", `{"names":["핸드타올"]}`, admin); w.Code != http.StatusCreated {
		t.Fatalf("add item: %d %s", w.Code, w.Body.String())
	}

	// Record an issuance (open route)
	w := do(r, http.MethodPost, "/api/v1/logs",
		`{"recipient_id":1,"item_id":1,"quantity":2,"note":"본관 2층"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("record: %d %s", w.Code, w.Body.String())
	}
	var created struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil || created.ID == 0 {
		t.Fatalf("record response: %v %s", err, w.Body.String())
	}

	// Ledger listing shows the joined names
	w = do(r, http.MethodGet, "/api/v1/logs", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "핸드타올") {
		t.Fatalf("list: %d %s", w.Code, w.Body.String())
	}

	// Summary aggregates it
	w = do(r, http.MethodGet, "/api/v1/reports/summary", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"row_count":1`) {
		t.Fatalf("summary: %d %s", w.Code, w.Body.String())
	}

	// Master hard delete is refused while referenced
	w = do(r, http.MethodDelete, "/api/v1/recipients/1", "", admin)
	if w.Code != http.StatusConflict || !strings.Contains(w.Body.String(), "in_use") {
		t.Fatalf("in-use delete: %d %s", w.Code, w.Body.String())
	}

	// Delete the log (admin), then the recipient is free to go
	w = do(r, http.MethodDelete, fmt.Sprintf("/api/v1/logs/%d", created.ID), "", admin)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete log: %d %s", w.Code, w.Body.String())
	}
	w = do(r, http.MethodDelete, "/api/v1/recipients/1", "", admin)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete recipient after unref: %d %s", w.Code, w.Body.String())
	}
}

func TestRegisterRoutes_ExportDownload(t *testing.T) {
	r := newTestRouter(t)
	admin := map[string]string{middleware.AdminSecretHeader: "test-secret"}

	do(r, http.MethodPost, "/api/v1/recipients", `{"names":["김순영"]}`, admin)
	do(r, http.MethodPost, "/api/v1/items", `{"names":["핸드타올"]}`, admin)
	do(r, http.MethodPost, "/api/v1/logs", `{"recipient_id":1,"item_id":1,"quantity":1}`, nil)

	w := do(r, http.MethodGet, "/api/v1/exports/csv", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export csv: %d %s", w.Code, w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "supply_ledger_all.csv") {
		t.Fatalf("content disposition = %q", cd)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatalf("csv missing BOM")
	}
}

func TestRegisterRoutes_ExportETag(t *testing.T) {
	r := newTestRouter(t)
	admin := map[string]string{middleware.AdminSecretHeader: "test-secret"}

	do(r, http.MethodPost, "/api/v1/recipients", `{"names":["김순영"]}`, admin)
	do(r, http.MethodPost, "/api/v1/items", `{"names":["핸드타올"]}`, admin)
	do(r, http.MethodPost, "/api/v1/logs", `{"recipient_id":1,"item_id":1,"quantity":1}`, nil)

	w := do(r, http.MethodGet, "/api/v1/exports/csv", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export csv: %d %s", w.Code, w.Body.String())
	}
	etag := w.Header().Get("ETag")
	if !strings.HasPrefix(etag, `W/"ledger:`) {
		t.Fatalf("ETag = %q; want weak ledger tag", etag)
	}

	// Unchanged ledger: matching tag short-circuits the render.
	w = do(r, http.MethodGet, "/api/v1/exports/csv", "", map[string]string{"If-None-Match": etag})
	if w.Code != http.StatusNotModified {
		t.Fatalf("matching If-None-Match: %d; want 304", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Fatalf("304 carried a body of %d bytes", w.Body.Len())
	}

	// A new issuance invalidates the tag.
	do(r, http.MethodPost, "/api/v1/logs", `{"recipient_id":1,"item_id":1,"quantity":2}`, nil)
	w = do(r, http.MethodGet, "/api/v1/exports/csv", "", map[string]string{"If-None-Match": etag})
	if w.Code != http.StatusOK {
		t.Fatalf("stale tag after insert: %d; want 200", w.Code)
	}
	if got := w.Header().Get("ETag"); got == etag {
		t.Fatalf("ETag did not change after insert: %q", got)
	}
}

func TestRegisterRoutes_CORSAllowlist(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := testConfig()
	cfg.CORS.AllowedOrigins = []string{"https://intra.example.org"}
	RegisterRoutes(r, newTestDB(t), cfg)

	// Allowed origin echoed back
	w := do(r, http.MethodGet, "/health", "", map[string]string{"Origin": "https://intra.example.org"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://intra.example.org" {
		t.Fatalf("ACAO = %q", got)
	}

	// Unknown origin gets nothing
	w = do(r, http.MethodGet, "/health", "", map[string]string{"Origin": "https://evil.example.org"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected ACAO %q for unlisted origin", got)
	}
}
