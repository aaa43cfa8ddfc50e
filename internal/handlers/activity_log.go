package handlers

import (
	"net/http"
	"strconv"

	"github.com/elizi/goldtool/internal/models"
	"github.com/elizi/goldtool/internal/services"
)

// ActivityLogHandler lists the recorded API actions
type ActivityLogHandler struct {
	service services.ActivityLogService
}

func NewActivityLogHandler(service services.ActivityLogService) *ActivityLogHandler {
	return &ActivityLogHandler{service: service}
}

func (h *ActivityLogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := &models.ActivityLogFilter{
		Entity: q.Get("entity"),
		Action: q.Get("action"),
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(q.Get("offset")); err == nil {
		filter.Offset = offset
	}
	out, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
