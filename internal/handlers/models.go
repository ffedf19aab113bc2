package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/namyrrep/gridiron-predictor/internal/models"
)

// GetModels returns every model's lifecycle metadata.
// GET /api/v1/models
func (h *Handler) GetModels(w http.ResponseWriter, r *http.Request) {
	infos, err := h.lifecycle.Overview(r.Context())
	if err != nil {
		h.logger.Errorw("Failed to load model overview", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load models")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{"models": infos})
}

// GetModelHistory returns a model's training sessions in order.
// GET /api/v1/models/{name}/history
func (h *Handler) GetModelHistory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		h.errorResponse(w, http.StatusBadRequest, "Missing model name")
		return
	}

	sessions, err := h.lifecycle.History(r.Context(), name)
	if err != nil {
		h.logger.Errorw("Failed to load training history", "model", name, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load history")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"model":    name,
		"sessions": sessions,
	})
}

// trainingRequest is the POST body for recording a training session.
type trainingRequest struct {
	DurationSeconds float64           `json:"duration_seconds" validate:"gte=0"`
	SampleCount     int               `json:"sample_count" validate:"required,gt=0"`
	Accuracy        float64           `json:"accuracy" validate:"gte=0,lte=1"`
	Precision       float64           `json:"precision" validate:"gte=0,lte=1"`
	Recall          float64           `json:"recall" validate:"gte=0,lte=1"`
	F1              float64           `json:"f1" validate:"gte=0,lte=1"`
	AUC             float64           `json:"auc" validate:"gte=0,lte=1"`
	Hyperparameters map[string]string `json:"hyperparameters"`
}

// RecordTraining ingests one training session for a model.
// POST /api/v1/models/{name}/training
func (h *Handler) RecordTraining(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		h.errorResponse(w, http.StatusBadRequest, "Missing model name")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req trainingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	session := &models.TrainingSession{
		ModelName:       name,
		DurationSeconds: req.DurationSeconds,
		SampleCount:     req.SampleCount,
		Accuracy:        req.Accuracy,
		Precision:       req.Precision,
		Recall:          req.Recall,
		F1:              req.F1,
		AUC:             req.AUC,
		Hyperparameters: req.Hyperparameters,
	}

	info, err := h.lifecycle.RecordTrainingSession(r.Context(), session)
	if err != nil {
		h.logger.Errorw("Failed to record training session", "model", name, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to record training session")
		return
	}

	h.jsonResponse(w, http.StatusCreated, info)
}
