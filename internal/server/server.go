package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rubicr/thambi/internal/handler"
	"github.com/rubicr/thambi/internal/middleware"
	"github.com/rubicr/thambi/internal/rephrase"
)

// Options configures SetupMux.
type Options struct {
	APIKey         string
	MaxBodyBytes   int64
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

// SetupMux wires handlers with the full middleware chain.
func SetupMux(svc *rephrase.Service, opts Options) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/rephrase", handler.Rephrase(svc))
	mux.HandleFunc("/health", handler.Health(svc))
	mux.Handle("/metrics", promhttp.Handler())

	return middleware.Chain(mux, middleware.Options{
		APIKey:         opts.APIKey,
		MaxBodyBytes:   opts.MaxBodyBytes,
		RequestTimeout: opts.RequestTimeout,
		Logger:         opts.Logger,
	})
}
