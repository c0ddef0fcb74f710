package middleware

import (
	"net/http"
	"strconv"

	"github.com/rubicr/thambi/internal/metrics"
)

// Metrics records request count by method, path, and status code.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		metrics.RequestsTotal.WithLabelValues(r.Method, routeLabel(r.URL.Path), strconv.Itoa(sw.status)).Inc()
	})
}

// routeLabel bounds label cardinality to the known routes.
func routeLabel(path string) string {
	switch path {
	case "/rephrase", "/health", "/metrics":
		return path
	default:
		return "other"
	}
}
