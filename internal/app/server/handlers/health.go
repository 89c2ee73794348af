package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

type healthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.cache.Ping(r.Context()).Err(); err != nil {
		h.logger.Warn("Health check failed", zap.Error(err))
		h.writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Cache: err.Error()})
		return
	}

	h.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Cache: "ok"})
}
