package handler

import (
	"context"
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/rubicr/thambi/internal/metrics"
	"github.com/rubicr/thambi/internal/rephrase"
)

const (
	msgNotConfigured = "Server is not configured with AI credentials."
	msgUpstream      = "Failed to process AI request."
)

// Rephraser is the core operation behind POST /rephrase.
type Rephraser interface {
	Process(ctx context.Context, req rephrase.Request) (rephrase.Result, error)
}

type rephraseResponse struct {
	Text string `json:"text"`
}

func Rephrase(svc Rephraser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		req, verr := decodeRephraseRequest(r.Body)
		if verr != nil {
			writeError(w, verr.Status, verr.Message)
			return
		}

		metrics.InputChars.Observe(float64(utf8.RuneCountInString(req.Text)))
		if req.WebpageContent != "" {
			metrics.ContextChars.Observe(float64(utf8.RuneCountInString(req.WebpageContent)))
		}

		res, err := svc.Process(r.Context(), req)
		switch {
		case errors.Is(err, rephrase.ErrNotConfigured):
			writeError(w, http.StatusInternalServerError, msgNotConfigured)
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, msgUpstream)
			return
		}

		writeJSON(w, http.StatusOK, rephraseResponse{Text: res.Text})
	}
}
