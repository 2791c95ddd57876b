package handlers

import (
	"net/http"
	"strings"

	"github.com/bobmcallan/folio-portal/internal/common"
	"github.com/bobmcallan/folio-portal/internal/insights"
	"github.com/bobmcallan/folio-portal/internal/portfolio"
)

// InsightsHandler serves the insights (historical chart) API.
type InsightsHandler struct {
	logger *common.Logger
	loader *insights.Loader
	store  *portfolio.Store
}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler(logger *common.Logger, loader *insights.Loader, store *portfolio.Store) *InsightsHandler {
	return &InsightsHandler{logger: logger, loader: loader, store: store}
}

// ServeIndex handles GET /api/insights — the available tickers and the
// default tab selection (first ticker of the latest snapshot).
func (h *InsightsHandler) ServeIndex(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	snap := h.loader.Snapshot()
	WriteOK(w, map[string]interface{}{
		"tickers":  snap.Tickers,
		"selected": h.loader.DefaultTicker(),
	})
}

// ServeRefresh handles POST /api/insights/refresh, triggered when the
// insights tab becomes active. Fetches every portfolio ticker's series and
// replaces the snapshot; a batch failure is logged and the prior snapshot is
// returned (read path, no user-facing interruption).
func (h *InsightsHandler) ServeRefresh(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	tickers := h.store.Tickers()
	if err := h.loader.Refresh(r.Context(), tickers); err != nil {
		h.logger.Warn().Err(err).Msg("insights refresh failed")
	}

	snap := h.loader.Snapshot()
	WriteOK(w, map[string]interface{}{
		"tickers":  snap.Tickers,
		"selected": h.loader.DefaultTicker(),
	})
}

// ServeChart handles GET /api/insights/{ticker}/chart.png — the rendered
// price-history chart annotated with the holding's buy and current prices.
func (h *InsightsHandler) ServeChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/insights/")
	ticker, ok := strings.CutSuffix(rest, "/chart.png")
	if !ok || ticker == "" || strings.Contains(ticker, "/") {
		http.NotFound(w, r)
		return
	}

	series, ok := h.loader.Series(ticker)
	if !ok {
		WriteError(w, http.StatusNotFound, "no insights data for "+ticker)
		return
	}

	// Buy/current annotation lines come from the holding; a ticker that left
	// the portfolio since the last snapshot charts without meaningful lines.
	var buyPrice, currentPrice float64
	for _, holding := range h.store.Holdings() {
		if holding.Ticker == ticker {
			buyPrice = holding.BuyPrice
			currentPrice = holding.CurrentPrice
			break
		}
	}

	// ?grid=0 hides the background grid (insights view toggle).
	showGrid := r.URL.Query().Get("grid") != "0"

	png, err := insights.RenderChart(ticker, series, buyPrice, currentPrice, showGrid)
	if err != nil {
		h.logger.Error().Err(err).Str("ticker", ticker).Msg("chart render failed")
		WriteError(w, http.StatusInternalServerError, "chart render failed")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
