package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, path, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "thambi_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// GenerateDuration tracks provider latency, failed calls included.
	GenerateDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "thambi_generate_duration_seconds",
		Help:    "Time spent waiting on the language model provider.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"provider"})

	// UpstreamFailures counts provider calls that returned an error.
	UpstreamFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "thambi_upstream_failures_total",
		Help: "Provider calls that failed.",
	}, []string{"provider"})

	// InputChars tracks the distribution of request text lengths.
	InputChars = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "thambi_input_chars",
		Help:    "Number of characters in rephrase request text.",
		Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})

	// ContextChars tracks the size of supplied webpage context.
	ContextChars = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "thambi_context_chars",
		Help:    "Number of characters in webpage context, when present.",
		Buckets: []float64{500, 1000, 5000, 10000, 50000, 100000, 500000},
	})

	// ProviderConfigured is 1 when a provider credential was loaded.
	ProviderConfigured = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "thambi_provider_configured",
		Help: "Whether the language model provider is configured (1) or not (0).",
	})
)
