package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bobmcallan/folio-portal/internal/app"
	"github.com/bobmcallan/folio-portal/internal/common"
	"github.com/bobmcallan/folio-portal/internal/config"
)

func newRoutedServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.NewDefaultConfig()
	application, err := app.New(cfg, common.NewSilentLogger())
	if err != nil {
		t.Fatalf("failed to build app: %v", err)
	}
	return New(application)
}

func TestRoutes_DashboardServesHTML(t *testing.T) {
	s := newRoutedServer(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Portfolio Dashboard") {
		t.Error("expected dashboard markup in response")
	}
}

func TestRoutes_UnknownPageIs404(t *testing.T) {
	s := newRoutedServer(t)

	req := httptest.NewRequest("GET", "/nope", nil)
	w := httptest.NewRecorder()

	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestRoutes_HealthEndpoint(t *testing.T) {
	s := newRoutedServer(t)

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()

	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %s", body["status"])
	}
}

func TestRoutes_UnmatchedAPIReturnsJSON404(t *testing.T) {
	s := newRoutedServer(t)

	req := httptest.NewRequest("GET", "/api/does-not-exist", nil)
	w := httptest.NewRecorder()

	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON 404, got Content-Type %s", ct)
	}
}

func TestRoutes_PortfolioListEmpty(t *testing.T) {
	s := newRoutedServer(t)

	req := httptest.NewRequest("GET", "/api/portfolio", nil)
	w := httptest.NewRecorder()

	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if _, ok := body["data"]; !ok {
		t.Error("expected data field in envelope")
	}
}

func TestRoutes_CorrelationIDOnAPIResponses(t *testing.T) {
	s := newRoutedServer(t)

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()

	s.Handler().ServeHTTP(w, req)

	if w.Header().Get("X-Correlation-ID") == "" {
		t.Error("expected X-Correlation-ID header from middleware chain")
	}
}

func TestRoutes_StaticFiles(t *testing.T) {
	s := newRoutedServer(t)

	req := httptest.NewRequest("GET", "/static/style.css", nil)
	w := httptest.NewRecorder()

	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestRoutes_StaticTraversalBlocked(t *testing.T) {
	s := newRoutedServer(t)

	req := httptest.NewRequest("GET", "/static/../dashboard.html", nil)
	req.URL.Path = "/static/../dashboard.html" // bypass httptest normalization
	w := httptest.NewRecorder()

	s.Handler().ServeHTTP(w, req)

	if w.Code == http.StatusOK {
		t.Error("expected traversal outside static dir to be rejected")
	}
}
