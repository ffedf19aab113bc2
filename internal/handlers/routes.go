package handlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes builds the full router.
func (h *Handler) Routes(allowedOrigins []string) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/sync/{season}/{week}", h.SyncPeriod)

		r.Post("/predictions/{season}/{week}", h.PredictPeriod)
		r.Get("/predictions/{season}/{week}", h.GetPredictions)

		r.Get("/games/{gameID}/predictions", h.GetGamePredictions)
		r.Post("/games/{gameID}/settle", h.SettleGame)

		r.Get("/teams/{team}/state/{season}/{week}", h.GetTeamState)

		r.Get("/models", h.GetModels)
		r.Get("/models/{name}/history", h.GetModelHistory)
		r.Post("/models/{name}/training", h.RecordTraining)
	})

	return r
}
