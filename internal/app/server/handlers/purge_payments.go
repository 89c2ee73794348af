package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

// PurgePaymentEvents clears the recorded payment events. Payment records and
// balances are not touched.
func (h *Handlers) PurgePaymentEvents(w http.ResponseWriter, r *http.Request) {
	if err := h.events.PurgeEvents(r.Context()); err != nil {
		h.logger.Error("Failed to purge payment events", zap.Error(err))
		http.Error(w, "failed to purge payment events", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
