package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "interview_agent"

// LLM call modes
const (
	ModeComplete = "complete"
	ModeStream   = "stream"
)

var (
	llmRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "llm_requests_total",
		Help:      "LLM gateway calls by mode and outcome (model, transport, parse)",
	}, []string{"mode", "outcome"})

	llmLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "llm_request_duration_seconds",
		Help:      "Duration of LLM gateway calls in seconds",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60, 90},
	}, []string{"mode"})

	evaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "evaluation_results_total",
		Help:      "Answer evaluations by result source (model, fallback) and rubric level",
	}, []string{"source", "rubric"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled",
	}, []string{"method", "route", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// ObserveLLMCall records one gateway call; outcome is "model" or the failure kind
func ObserveLLMCall(mode, outcome string, duration time.Duration) {
	llmRequests.WithLabelValues(mode, outcome).Inc()
	llmLatency.WithLabelValues(mode).Observe(duration.Seconds())
}

func ObserveEvaluation(source, rubric string) {
	evaluations.WithLabelValues(source, rubric).Inc()
}

func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Handler exposes the default Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
