// Package client communicates with the remote stocks service REST API.
// The service owns all holding and price-history data; the portal never
// persists anything locally.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bobmcallan/folio-portal/internal/models"
)

// StocksClient communicates with the stocks service REST API (/api/stocks).
type StocksClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewStocksClient creates a new client targeting the given stocks service URL.
func NewStocksClient(baseURL string, timeout time.Duration) *StocksClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &StocksClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListHoldings fetches the full holdings list.
// GET /api/stocks -> [Holding, ...]
func (c *StocksClient) ListHoldings(ctx context.Context) ([]models.Holding, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/stocks", nil)
	if err != nil {
		return nil, err
	}

	var holdings []models.Holding
	if err := json.Unmarshal(body, &holdings); err != nil {
		return nil, fmt.Errorf("failed to parse holdings response: %w", err)
	}
	return holdings, nil
}

// GetDetails fetches the resolved name and price for a ticker.
// GET /api/stocks/details?ticker={ticker} -> {stockName, buyPrice}
func (c *StocksClient) GetDetails(ctx context.Context, ticker string) (*models.StockDetails, error) {
	path := "/api/stocks/details?ticker=" + url.QueryEscape(ticker)
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var details models.StockDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, fmt.Errorf("failed to parse details response: %w", err)
	}
	return &details, nil
}

// CreateHolding creates a holding from a ticker. The service resolves the
// canonical name and prices; all other draft fields are ignored server-side.
// POST /api/stocks with {ticker} -> created Holding
func (c *StocksClient) CreateHolding(ctx context.Context, ticker string) (*models.Holding, error) {
	payload := map[string]string{"ticker": ticker}
	body, err := c.do(ctx, http.MethodPost, "/api/stocks", payload)
	if err != nil {
		return nil, err
	}

	var holding models.Holding
	if err := json.Unmarshal(body, &holding); err != nil {
		return nil, fmt.Errorf("failed to parse created holding: %w", err)
	}
	return &holding, nil
}

// UpdateHolding sends a full update for a holding with a known ID.
// PUT /api/stocks/{id} with Holding -> updated Holding
func (c *StocksClient) UpdateHolding(ctx context.Context, holding models.Holding) (*models.Holding, error) {
	path := fmt.Sprintf("/api/stocks/%d", holding.ID)
	body, err := c.do(ctx, http.MethodPut, path, holding)
	if err != nil {
		return nil, err
	}

	var updated models.Holding
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, fmt.Errorf("failed to parse updated holding: %w", err)
	}
	return &updated, nil
}

// DeleteHolding removes a holding by ID.
// DELETE /api/stocks/{id} -> no body
func (c *StocksClient) DeleteHolding(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/stocks/%d", id)
	_, err := c.do(ctx, http.MethodDelete, path, nil)
	return err
}

// GetSeries fetches the historical price series for a ticker.
// The service returns values in reverse-chronological order.
// GET /api/stocks/{ticker}/data -> {values: [{datetime, close}, ...]}
func (c *StocksClient) GetSeries(ctx context.Context, ticker string) (*models.InsightSeries, error) {
	path := "/api/stocks/" + url.PathEscape(ticker) + "/data"
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var series models.InsightSeries
	if err := json.Unmarshal(body, &series); err != nil {
		return nil, fmt.Errorf("failed to parse series response: %w", err)
	}
	return &series, nil
}

// do executes one request against the stocks service and returns the raw
// response body. Non-2xx responses surface the service's message verbatim
// when present, falling back to a status-code error.
func (c *StocksClient) do(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach stocks service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, serviceError(resp.StatusCode, body)
	}

	return body, nil
}

// serviceError extracts the service's error message from a non-2xx body.
func serviceError(statusCode int, body []byte) error {
	var errResp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return fmt.Errorf("%s", errResp.Message)
	}
	return fmt.Errorf("stocks service returned %d", statusCode)
}
