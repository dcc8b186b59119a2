package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis request outcomes.
const (
	OutcomeOK            = "ok"
	OutcomeInvalidImage  = "invalid_image"
	OutcomeRateLimited   = "rate_limited"
	OutcomeUpstreamError = "upstream_error"
	OutcomeInternalError = "internal_error"
)

var (
	// AnalysisRequests counts design comparison requests by outcome.
	AnalysisRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analysis_requests_total",
		Help: "Design comparison requests by outcome.",
	}, []string{"outcome"})

	// AnalysisDuration measures end-to-end analysis latency.
	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "analysis_duration_seconds",
		Help:    "End-to-end design analysis duration.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	})

	// GeminiRequests counts upstream Gemini calls by status.
	GeminiRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gemini_requests_total",
		Help: "Gemini API calls by status.",
	}, []string{"status"})

	// LLMRequests counts upstream chat completion calls per service.
	LLMRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "llm_requests_total",
		Help: "Chat completion calls by service and status.",
	}, []string{"service", "status"})

	// RateLimitRejections counts requests refused by the limiter.
	RateLimitRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_rejections_total",
		Help: "Requests rejected by the API rate limiter.",
	})
)
