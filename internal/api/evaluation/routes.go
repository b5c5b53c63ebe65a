package evaluation

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers standalone evaluation routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/evaluation", h.Evaluate)
}
