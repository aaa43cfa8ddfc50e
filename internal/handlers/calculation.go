package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/elizi/goldtool/internal/models"
	"github.com/elizi/goldtool/internal/services"
)

// CalculationHandler exposes weight/price calculations and the recall ledgers
type CalculationHandler struct {
	service services.CalculationService
}

func NewCalculationHandler(service services.CalculationService) *CalculationHandler {
	return &CalculationHandler{service: service}
}

// @Summary Calculate weight
// @Description Derives the gram weight for a catalog item without pricing it
// @Tags calculations
// @Accept json
// @Produce json
// @Success 200 {object} models.CalculationResult
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /calculations/weight [post]
func (h *CalculationHandler) HandleWeight(w http.ResponseWriter, r *http.Request) {
	var input models.CalculationInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}
	result, err := h.service.Calculate(r.Context(), &input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// @Summary Calculate full quote
// @Description Derives weight and prices it with the current gold price
// @Tags calculations
// @Accept json
// @Produce json
// @Success 200 {object} models.CalculationResult
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /calculations/quote [post]
func (h *CalculationHandler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	var input models.CalculationInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}
	result, err := h.service.CalculateWithPrice(r.Context(), &input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type scrapRequest struct {
	Grams    decimal.Decimal      `json:"grams"`
	Purity   models.Purity        `json:"purity"`
	Category models.ScrapCategory `json:"category"`
}

// @Summary Quick scrap quote
// @Description Melt-value quote for a weighed item; labor never applies
// @Tags calculations
// @Accept json
// @Produce json
// @Success 200 {object} models.ScrapQuote
// @Failure 400 {object} errorResponse
// @Router /calculations/scrap [post]
func (h *CalculationHandler) HandleScrap(w http.ResponseWriter, r *http.Request) {
	var req scrapRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Category == "" {
		req.Category = models.ScrapCategoryHouse
	}
	quote, err := h.service.QuickScrap(r.Context(), req.Grams, req.Purity, req.Category)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *CalculationHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.service.History())
	case http.MethodDelete:
		h.service.ClearHistory()
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CalculationHandler) HandleScrapHistory(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.service.ScrapHistory())
	case http.MethodDelete:
		h.service.ClearScrapHistory()
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
