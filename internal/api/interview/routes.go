package interview

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers interview session routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/interview-session", func(r chi.Router) {
		r.Post("/", h.StartInterview)
		r.Get("/{id}", h.GetInterview)
		r.Post("/{id}/message", h.SendMessage)
		r.Post("/{id}/message/stream", h.StreamMessage)
		r.Post("/{id}/evaluate", h.EvaluateAnswer)
		r.Post("/{id}/complete", h.CompleteInterview)
	})
}
