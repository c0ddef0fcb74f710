package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// Options configures the middleware stack.
type Options struct {
	APIKey         string
	MaxBodyBytes   int64
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

// Chain wraps the handler with the full middleware stack.
// Order: CORS → RequestID → Logging → Metrics → APIKey → MaxBytes → Timeout → mux
func Chain(handler http.Handler, opts Options) http.Handler {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 90 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	h := handler
	h = http.TimeoutHandler(h, opts.RequestTimeout, `{"statusCode":503,"message":"request timeout","error":"Service Unavailable"}`)
	h = MaxBytes(opts.MaxBodyBytes)(h)
	h = APIKey(opts.APIKey)(h)
	h = Metrics(h)
	h = Logging(opts.Logger)(h)
	h = RequestID(h)
	h = CORS(h)
	return h
}
