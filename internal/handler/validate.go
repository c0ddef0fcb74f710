package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rubicr/thambi/internal/rephrase"
)

// rephraseRequest mirrors the JSON body. Pointers distinguish a missing
// field from an empty one.
type rephraseRequest struct {
	Text           *string `json:"text"`
	WebpageContent *string `json:"webpageContent"`
}

// validationError is a client-side rejection with its HTTP status.
type validationError struct {
	Status  int
	Message string
}

func (e *validationError) Error() string { return e.Message }

func reject(status int, format string, args ...any) *validationError {
	return &validationError{Status: status, Message: fmt.Sprintf(format, args...)}
}

// decodeRephraseRequest turns a request body into a validated
// rephrase.Request or a rejection. Unknown fields and wrong types are
// refused.
func decodeRephraseRequest(body io.Reader) (rephrase.Request, *validationError) {
	data, err := io.ReadAll(body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return rephrase.Request{}, reject(http.StatusRequestEntityTooLarge, "request body too large")
		}
		return rephrase.Request{}, reject(http.StatusBadRequest, "could not read request body")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var req rephraseRequest
	if err := dec.Decode(&req); err != nil {
		return rephrase.Request{}, decodeRejection(err)
	}
	if dec.More() {
		return rephrase.Request{}, reject(http.StatusBadRequest, "request body must contain a single JSON object")
	}

	if req.Text == nil || *req.Text == "" {
		return rephrase.Request{}, reject(http.StatusBadRequest, "Text parameter cannot be empty")
	}

	out := rephrase.Request{Text: *req.Text}
	if req.WebpageContent != nil {
		out.WebpageContent = *req.WebpageContent
	}
	return out, nil
}

func decodeRejection(err error) *validationError {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		switch typeErr.Field {
		case "text":
			return reject(http.StatusBadRequest, "Text must be a string")
		case "webpageContent":
			return reject(http.StatusBadRequest, "webpageContent must be a string")
		}
		return reject(http.StatusBadRequest, "request body must be a JSON object")
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.TrimPrefix(err.Error(), "json: unknown field ")
		return reject(http.StatusBadRequest, "property %s should not exist", strings.Trim(field, `"`))
	case errors.Is(err, io.EOF):
		return reject(http.StatusBadRequest, "request body is required")
	default:
		return reject(http.StatusBadRequest, "invalid JSON body")
	}
}
