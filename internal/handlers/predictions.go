package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/namyrrep/gridiron-predictor/internal/models"
)

// PredictPeriod runs the ensemble over every pending game in the period.
// POST /api/v1/predictions/{season}/{week}
func (h *Handler) PredictPeriod(w http.ResponseWriter, r *http.Request) {
	period, ok := h.periodFromURL(w, r)
	if !ok {
		return
	}

	predictions, err := h.prediction.PredictPeriod(r.Context(), period)
	if err != nil {
		h.logger.Errorw("Period prediction failed", "period", period.String(), "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Prediction failed")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"period":      period.String(),
		"predictions": predictions,
	})
}

// GetPredictions returns stored predictions for the period.
// GET /api/v1/predictions/{season}/{week}
func (h *Handler) GetPredictions(w http.ResponseWriter, r *http.Request) {
	period, ok := h.periodFromURL(w, r)
	if !ok {
		return
	}

	predictions, err := h.prediction.PredictionsForPeriod(r.Context(), period)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.errorResponse(w, http.StatusNotFound, "No predictions for period")
			return
		}
		h.logger.Errorw("Failed to load predictions", "period", period.String(), "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load predictions")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"period":      period.String(),
		"predictions": predictions,
	})
}

// GetGamePredictions returns every stored prediction row for one game.
// GET /api/v1/games/{gameID}/predictions
func (h *Handler) GetGamePredictions(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	if gameID == "" {
		h.errorResponse(w, http.StatusBadRequest, "Missing game id")
		return
	}

	predictions, err := h.prediction.PredictionsForGame(r.Context(), gameID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.errorResponse(w, http.StatusNotFound, "No predictions for game")
			return
		}
		h.logger.Errorw("Failed to load game predictions", "game_id", gameID, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load predictions")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"game_id":     gameID,
		"predictions": predictions,
	})
}

// SettleGame marks a completed game's predictions against the final result.
// The background updater settles automatically; this route covers manual
// corrections and backfilled games.
// POST /api/v1/games/{gameID}/settle
func (h *Handler) SettleGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	if gameID == "" {
		h.errorResponse(w, http.StatusBadRequest, "Missing game id")
		return
	}

	if err := h.prediction.SettleGame(r.Context(), gameID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.errorResponse(w, http.StatusNotFound, "Unknown game")
			return
		}
		h.logger.Errorw("Failed to settle game", "game_id", gameID, "error", err)
		h.errorResponse(w, http.StatusConflict, "Game cannot be settled")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]string{"game_id": gameID, "status": "settled"})
}
