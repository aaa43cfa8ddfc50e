package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	apperrors "github.com/elizi/goldtool/internal/errors"
	"github.com/elizi/goldtool/internal/models"
	"github.com/elizi/goldtool/internal/services"
)

// ModelHandler exposes catalog model CRUD
type ModelHandler struct {
	service services.ModelService
}

func NewModelHandler(service services.ModelService) *ModelHandler {
	return &ModelHandler{service: service}
}

func (h *ModelHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ModelHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var m models.Model
	if err := decodeJSON(r, &m); err != nil {
		writeError(w, err)
		return
	}
	if err := h.service.Create(r.Context(), &m); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *ModelHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	m, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *ModelHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var m models.Model
	if err := decodeJSON(r, &m); err != nil {
		writeError(w, err)
		return
	}
	m.ID = mux.Vars(r)["id"]
	if err := h.service.Update(r.Context(), &m); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *ModelHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ProductHandler exposes construction-parameter CRUD and the quote lookup
type ProductHandler struct {
	service services.ProductService
}

func NewProductHandler(service services.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if modelID := r.URL.Query().Get("model_id"); modelID != "" {
		out, err := h.service.ListByModel(r.Context(), modelID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
		return
	}
	out, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, err)
		return
	}
	if err := h.service.Create(r.Context(), &p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleResolve answers /products/resolve?model_id=..&purity=14&row=2 —
// the same lookup the calculation service performs.
func (h *ProductHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	modelID := q.Get("model_id")
	purity, errP := strconv.Atoi(q.Get("purity"))
	row, errR := strconv.Atoi(q.Get("row"))
	if modelID == "" || errP != nil || errR != nil {
		writeError(w, &apperrors.ErrValidation{Field: "query", Message: "model_id, purity and row are required"})
		return
	}
	p, err := h.service.Resolve(r.Context(), modelID, models.Purity(purity), row)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, err)
		return
	}
	p.ID = mux.Vars(r)["id"]
	if err := h.service.Update(r.Context(), &p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
