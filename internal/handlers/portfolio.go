package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/bobmcallan/folio-portal/internal/common"
	"github.com/bobmcallan/folio-portal/internal/models"
	"github.com/bobmcallan/folio-portal/internal/portfolio"
)

// PortfolioHandler serves the portfolio JSON API consumed by the dashboard page.
type PortfolioHandler struct {
	logger *common.Logger
	store  *portfolio.Store
}

// NewPortfolioHandler creates a new portfolio handler.
func NewPortfolioHandler(logger *common.Logger, store *portfolio.Store) *PortfolioHandler {
	return &PortfolioHandler{logger: logger, store: store}
}

// ServeCollection handles GET (list) and POST (add) on /api/portfolio.
func (h *PortfolioHandler) ServeCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		WriteOK(w, h.store.Holdings())
	case http.MethodPost:
		h.add(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *PortfolioHandler) add(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Ticker string `json:"ticker"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.store.Add(r.Context(), payload.Ticker)
	if err != nil {
		// The service message passes through verbatim for the UI alert.
		WriteError(w, http.StatusBadGateway, err.Error())
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "ok",
		"data":   created,
	})
}

// ServeItem handles PUT (update) and DELETE (remove) on /api/portfolio/{id}.
func (h *PortfolioHandler) ServeItem(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/portfolio/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, http.StatusBadRequest, "invalid holding id")
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.remove(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *PortfolioHandler) update(w http.ResponseWriter, r *http.Request, id int64) {
	var holding models.Holding
	if err := json.NewDecoder(r.Body).Decode(&holding); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	holding.ID = id

	updated, err := h.store.Update(r.Context(), holding)
	if err != nil {
		WriteError(w, http.StatusBadGateway, err.Error())
		return
	}

	WriteOK(w, updated)
}

func (h *PortfolioHandler) remove(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.store.Remove(r.Context(), id); err != nil {
		WriteError(w, http.StatusBadGateway, err.Error())
		return
	}

	WriteOK(w, nil)
}

// ServeRefresh handles POST /api/portfolio/refresh — a manual price refresh.
// Refresh is a read of authoritative prices: failure keeps prior prices and
// the current list is returned either way.
func (h *PortfolioHandler) ServeRefresh(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if err := h.store.RefreshAll(r.Context()); err != nil {
		h.logger.Warn().Err(err).Msg("manual price refresh failed")
	}

	WriteOK(w, h.store.Holdings())
}

// ServeMetrics handles GET /api/portfolio/metrics.
func (h *PortfolioHandler) ServeMetrics(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteOK(w, portfolio.ComputeMetrics(h.store.Holdings()))
}
