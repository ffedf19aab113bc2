package handlers

import (
	"net/http"
)

// SyncPeriod reconciles one season week with the upstream feed.
// POST /api/v1/sync/{season}/{week}
func (h *Handler) SyncPeriod(w http.ResponseWriter, r *http.Request) {
	period, ok := h.periodFromURL(w, r)
	if !ok {
		return
	}

	result, err := h.sync.Reconcile(r.Context(), period)
	if err != nil {
		h.logger.Errorw("Reconcile failed", "period", period.String(), "error", err)
		h.errorResponse(w, http.StatusBadGateway, "Reconciliation failed")
		return
	}

	h.jsonResponse(w, http.StatusOK, result)
}
