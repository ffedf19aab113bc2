package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// GetTeamState returns a team's derived state at a period.
// GET /api/v1/teams/{team}/state/{season}/{week}
func (h *Handler) GetTeamState(w http.ResponseWriter, r *http.Request) {
	team := strings.ToUpper(chi.URLParam(r, "team"))
	if team == "" || len(team) > 3 {
		h.errorResponse(w, http.StatusBadRequest, "Invalid team")
		return
	}

	period, ok := h.periodFromURL(w, r)
	if !ok {
		return
	}

	state, err := h.teamState.StateAt(r.Context(), team, period)
	if err != nil {
		h.logger.Errorw("Failed to compute team state",
			"team", team, "period", period.String(), "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to compute team state")
		return
	}

	h.jsonResponse(w, http.StatusOK, state)
}
