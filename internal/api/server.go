package api

import (
	"net/http"
	"time"

	"github.com/futig/interview-agent/internal/api/docs"
	evaluationapi "github.com/futig/interview-agent/internal/api/evaluation"
	interviewapi "github.com/futig/interview-agent/internal/api/interview"
	"github.com/futig/interview-agent/internal/api/middleware"
	"github.com/futig/interview-agent/internal/pkg/metrics"
	"github.com/futig/interview-agent/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// requestTimeout bounds every request; it exceeds the LLM stream timeout
const requestTimeout = 100 * time.Second

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	interviewHandler *interviewapi.Handler,
	evaluationHandler *evaluationapi.Handler,
	allowedOrigins []string,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]string{"status": "healthy"})
	})
	r.Handle("/metrics", metrics.Handler())

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	interviewapi.RegisterRoutes(r, interviewHandler)
	evaluationapi.RegisterRoutes(r, evaluationHandler)

	return r
}
