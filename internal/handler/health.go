package handler

import (
	"net/http"

	"github.com/rubicr/thambi/internal/adapter"
)

// HealthReporter exposes provider state for the health endpoint.
type HealthReporter interface {
	Configured() bool
	Adapter() adapter.LLMAdapter
}

type healthResponse struct {
	Status     string       `json:"status"`
	Configured bool         `json:"configured"`
	Provider   adapter.Info `json:"provider"`
}

// Health reports liveness. It answers 200 even when the provider is not
// configured so the process stays observable.
func Health(svc HealthReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			Status:     "ok",
			Configured: svc.Configured(),
			Provider:   adapter.Describe(svc.Adapter()),
		})
	}
}
