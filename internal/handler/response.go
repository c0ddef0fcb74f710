package handler

import (
	"encoding/json"
	"net/http"
)

// errorResponse is the error envelope shared by every endpoint.
type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{
		StatusCode: code,
		Message:    msg,
		Error:      http.StatusText(code),
	})
}
