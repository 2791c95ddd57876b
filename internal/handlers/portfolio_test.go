package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bobmcallan/folio-portal/internal/common"
	"github.com/bobmcallan/folio-portal/internal/models"
	"github.com/bobmcallan/folio-portal/internal/portfolio"
)

// stubStocksAPI is a scriptable stocks service client for handler tests.
type stubStocksAPI struct {
	holdings  []models.Holding
	created   *models.Holding
	updated   *models.Holding
	listErr   error
	createErr error
	updateErr error
	deleteErr error
}

func (s *stubStocksAPI) ListHoldings(ctx context.Context) ([]models.Holding, error) {
	return s.holdings, s.listErr
}

func (s *stubStocksAPI) CreateHolding(ctx context.Context, ticker string) (*models.Holding, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.created, nil
}

func (s *stubStocksAPI) UpdateHolding(ctx context.Context, h models.Holding) (*models.Holding, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.updated, nil
}

func (s *stubStocksAPI) DeleteHolding(ctx context.Context, id int64) error {
	return s.deleteErr
}

func newTestStore(t *testing.T, api *stubStocksAPI) *portfolio.Store {
	t.Helper()
	store := portfolio.NewStore(api, common.NewSilentLogger())
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}
	return store
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var body map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return body
}

func TestPortfolioHandler_List(t *testing.T) {
	api := &stubStocksAPI{holdings: []models.Holding{
		{ID: 1, Ticker: "AAPL", StockName: "Apple Inc", Quantity: 2, BuyPrice: 150, CurrentPrice: 170},
	}}
	handler := NewPortfolioHandler(common.NewSilentLogger(), newTestStore(t, api))

	req := httptest.NewRequest("GET", "/api/portfolio", nil)
	w := httptest.NewRecorder()

	handler.ServeCollection(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	body := decodeEnvelope(t, w)
	var holdings []models.Holding
	if err := json.Unmarshal(body["data"], &holdings); err != nil {
		t.Fatalf("failed to unmarshal holdings: %v", err)
	}
	if len(holdings) != 1 || holdings[0].Ticker != "AAPL" {
		t.Errorf("unexpected holdings: %+v", holdings)
	}
}

func TestPortfolioHandler_AddReturnsCreated(t *testing.T) {
	api := &stubStocksAPI{
		created: &models.Holding{ID: 5, Ticker: "MSFT", StockName: "Microsoft", BuyPrice: 400, CurrentPrice: 400},
	}
	handler := NewPortfolioHandler(common.NewSilentLogger(), newTestStore(t, api))

	req := httptest.NewRequest("POST", "/api/portfolio", strings.NewReader(`{"ticker":"msft"}`))
	w := httptest.NewRecorder()

	handler.ServeCollection(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeEnvelope(t, w)
	var created models.Holding
	if err := json.Unmarshal(body["data"], &created); err != nil {
		t.Fatalf("failed to unmarshal created holding: %v", err)
	}
	if created.ID != 5 || created.Ticker != "MSFT" {
		t.Errorf("unexpected created holding: %+v", created)
	}
}

func TestPortfolioHandler_AddServiceErrorPassesThrough(t *testing.T) {
	api := &stubStocksAPI{createErr: fmt.Errorf("Stock with ticker AAPL already exists")}
	handler := NewPortfolioHandler(common.NewSilentLogger(), newTestStore(t, api))

	req := httptest.NewRequest("POST", "/api/portfolio", strings.NewReader(`{"ticker":"AAPL"}`))
	w := httptest.NewRecorder()

	handler.ServeCollection(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if body["error"] != "Stock with ticker AAPL already exists" {
		t.Errorf("expected service message verbatim, got %q", body["error"])
	}
}

func TestPortfolioHandler_AddInvalidBody(t *testing.T) {
	handler := NewPortfolioHandler(common.NewSilentLogger(), newTestStore(t, &stubStocksAPI{}))

	req := httptest.NewRequest("POST", "/api/portfolio", strings.NewReader(`not json`))
	w := httptest.NewRecorder()

	handler.ServeCollection(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestPortfolioHandler_UpdateByID(t *testing.T) {
	api := &stubStocksAPI{
		holdings: []models.Holding{{ID: 3, Ticker: "NVDA", Quantity: 1, BuyPrice: 100, CurrentPrice: 120}},
		updated:  &models.Holding{ID: 3, Ticker: "NVDA", Quantity: 4, BuyPrice: 100, CurrentPrice: 120},
	}
	store := newTestStore(t, api)
	handler := NewPortfolioHandler(common.NewSilentLogger(), store)

	req := httptest.NewRequest("PUT", "/api/portfolio/3", strings.NewReader(`{"ticker":"NVDA","quantity":4}`))
	w := httptest.NewRecorder()

	handler.ServeItem(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	if got, _ := store.Get(3); got.Quantity != 4 {
		t.Errorf("expected local holding to reflect update, got %+v", got)
	}
}

func TestPortfolioHandler_ItemInvalidID(t *testing.T) {
	handler := NewPortfolioHandler(common.NewSilentLogger(), newTestStore(t, &stubStocksAPI{}))

	for _, path := range []string{"/api/portfolio/abc", "/api/portfolio/0", "/api/portfolio/"} {
		req := httptest.NewRequest("DELETE", path, nil)
		w := httptest.NewRecorder()

		handler.ServeItem(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status 400, got %d", path, w.Code)
		}
	}
}

func TestPortfolioHandler_Delete(t *testing.T) {
	api := &stubStocksAPI{holdings: []models.Holding{{ID: 7, Ticker: "TSLA"}}}
	store := newTestStore(t, api)
	handler := NewPortfolioHandler(common.NewSilentLogger(), store)

	req := httptest.NewRequest("DELETE", "/api/portfolio/7", nil)
	w := httptest.NewRecorder()

	handler.ServeItem(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if len(store.Holdings()) != 0 {
		t.Error("expected holding to be removed from store")
	}
}

func TestPortfolioHandler_RefreshFailSoft(t *testing.T) {
	api := &stubStocksAPI{holdings: []models.Holding{{ID: 1, Ticker: "AAPL", CurrentPrice: 170}}}
	store := newTestStore(t, api)
	api.listErr = fmt.Errorf("service unavailable")
	handler := NewPortfolioHandler(common.NewSilentLogger(), store)

	req := httptest.NewRequest("POST", "/api/portfolio/refresh", nil)
	w := httptest.NewRecorder()

	handler.ServeRefresh(w, req)

	// Refresh is a read path: failure keeps prior prices and still returns 200.
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	body := decodeEnvelope(t, w)
	var holdings []models.Holding
	if err := json.Unmarshal(body["data"], &holdings); err != nil {
		t.Fatalf("failed to unmarshal holdings: %v", err)
	}
	if len(holdings) != 1 || holdings[0].CurrentPrice != 170 {
		t.Errorf("expected prior holdings returned, got %+v", holdings)
	}
}

func TestPortfolioHandler_Metrics(t *testing.T) {
	api := &stubStocksAPI{holdings: []models.Holding{
		{ID: 1, Ticker: "AAPL", Quantity: 2, BuyPrice: 10, CurrentPrice: 20},
		{ID: 2, Ticker: "MSFT", Quantity: 4, BuyPrice: 10, CurrentPrice: 10},
	}}
	handler := NewPortfolioHandler(common.NewSilentLogger(), newTestStore(t, api))

	req := httptest.NewRequest("GET", "/api/portfolio/metrics", nil)
	w := httptest.NewRecorder()

	handler.ServeMetrics(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	body := decodeEnvelope(t, w)
	var metrics models.Metrics
	if err := json.Unmarshal(body["data"], &metrics); err != nil {
		t.Fatalf("failed to unmarshal metrics: %v", err)
	}
	if metrics.TotalValue != 80 {
		t.Errorf("expected total value 80, got %v", metrics.TotalValue)
	}
	if metrics.TotalStocks != 2 {
		t.Errorf("expected 2 stocks, got %d", metrics.TotalStocks)
	}
	if metrics.Direction != "up" {
		t.Errorf("expected direction up, got %s", metrics.Direction)
	}
}

func TestPortfolioHandler_MethodNotAllowed(t *testing.T) {
	handler := NewPortfolioHandler(common.NewSilentLogger(), newTestStore(t, &stubStocksAPI{}))

	req := httptest.NewRequest("PATCH", "/api/portfolio", nil)
	w := httptest.NewRecorder()

	handler.ServeCollection(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}
