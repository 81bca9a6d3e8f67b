package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/feetracker-io/wallet-fee-tracker/internal/api/handlers"
)

func setupRoutes(r chi.Router, h *handlers.Handler) {
	r.Get("/healthcheck", handlers.Wrap(h.HealthCheck))

	r.Route("/v1", func(r chi.Router) {
		r.Route("/wallets/{address}", func(r chi.Router) {
			r.Get("/fees", handlers.Wrap(h.GetFees))
			r.Post("/resync", handlers.Wrap(h.Resync))
			r.Get("/cooldown", handlers.Wrap(h.GetCooldown))
			r.Get("/sync-status", handlers.Wrap(h.GetSyncStatus))
			r.Get("/rank", handlers.Wrap(h.GetWalletRank))
		})
		r.Get("/rank", handlers.Wrap(h.ClassifyBalance))
	})
}
