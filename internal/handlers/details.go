package handlers

import (
	"context"
	"net/http"

	"github.com/bobmcallan/folio-portal/internal/common"
	"github.com/bobmcallan/folio-portal/internal/models"
)

// DetailsAPI resolves ticker details from the stocks service.
type DetailsAPI interface {
	GetDetails(ctx context.Context, ticker string) (*models.StockDetails, error)
}

// DetailsHandler serves ticker detail lookups for the add/edit form.
type DetailsHandler struct {
	logger *common.Logger
	api    DetailsAPI
}

// NewDetailsHandler creates a new details handler.
func NewDetailsHandler(logger *common.Logger, api DetailsAPI) *DetailsHandler {
	return &DetailsHandler{logger: logger, api: api}
}

// ServeHTTP handles GET /api/details?ticker={ticker}.
func (h *DetailsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ticker := r.URL.Query().Get("ticker")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker query parameter is required")
		return
	}

	details, err := h.api.GetDetails(r.Context(), ticker)
	if err != nil {
		h.logger.Warn().Err(err).Str("ticker", ticker).Msg("details lookup failed")
		WriteError(w, http.StatusBadGateway, err.Error())
		return
	}

	WriteOK(w, details)
}
