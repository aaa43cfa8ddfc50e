package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/elizi/goldtool/internal/services"
)

// GoldPriceHandler exposes the price source over HTTP
type GoldPriceHandler struct {
	service services.GoldPriceService
}

func NewGoldPriceHandler(service services.GoldPriceService) *GoldPriceHandler {
	return &GoldPriceHandler{service: service}
}

// @Summary Current gold price
// @Description Returns the current per-gram gold price with provenance and cache state
// @Tags gold-price
// @Produce json
// @Success 200 {object} models.GoldPriceStatus
// @Router /gold-price [get]
func (h *GoldPriceHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Status(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// @Summary Force refresh
// @Description Bypasses the freshness window; a manual override still wins
// @Tags gold-price
// @Produce json
// @Success 200 {object} models.GoldPrice
// @Router /gold-price/refresh [post]
func (h *GoldPriceHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	price, err := h.service.Refresh(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, price)
}

type manualPriceRequest struct {
	Buying  decimal.Decimal `json:"buying"`
	Selling decimal.Decimal `json:"selling"`
}

// @Summary Set manual override
// @Description Pins an operator-set price that supersedes the feed until cleared
// @Tags gold-price
// @Accept json
// @Produce json
// @Success 200 {object} models.GoldPrice
// @Failure 400 {object} errorResponse
// @Router /gold-price/manual [put]
func (h *GoldPriceHandler) HandleSetManual(w http.ResponseWriter, r *http.Request) {
	var req manualPriceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	price, err := h.service.SetManualPrice(r.Context(), req.Buying, req.Selling)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, price)
}

// @Summary Clear manual override
// @Description Removes the override and refreshes from the feed
// @Tags gold-price
// @Produce json
// @Success 200 {object} models.GoldPrice
// @Router /gold-price/manual [delete]
func (h *GoldPriceHandler) HandleClearManual(w http.ResponseWriter, r *http.Request) {
	price, err := h.service.ClearManualPrice(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, price)
}
