package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/rubicr/thambi/internal/adapter"
	"github.com/rubicr/thambi/internal/metrics"
	"github.com/rubicr/thambi/internal/rephrase"
)

func quietService(a adapter.LLMAdapter) *rephrase.Service {
	return rephrase.New(a, rephrase.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

// countingRephraser records calls without touching a provider.
type countingRephraser struct {
	calls int
	last  rephrase.Request
}

func (c *countingRephraser) Process(ctx context.Context, req rephrase.Request) (rephrase.Result, error) {
	c.calls++
	c.last = req
	return rephrase.Result{Text: "<p>ok</p>"}, nil
}

func TestHandleHealth(t *testing.T) {
	tests := []struct {
		name           string
		svc            *rephrase.Service
		wantConfigured bool
		wantProvider   string
	}{
		{"mock", quietService(&adapter.MockAdapter{}), true, "mock"},
		{"gemini with key", quietService(&adapter.GeminiAdapter{APIKey: "k"}), true, "gemini"},
		{"gemini without key", quietService(&adapter.GeminiAdapter{}), false, "gemini"},
		{"no adapter", quietService(nil), false, "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			w := httptest.NewRecorder()

			Health(tt.svc).ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("status: got %d, want %d", w.Code, http.StatusOK)
			}

			var resp healthResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Status != "ok" {
				t.Errorf("status: got %q, want %q", resp.Status, "ok")
			}
			if resp.Configured != tt.wantConfigured {
				t.Errorf("configured: got %v, want %v", resp.Configured, tt.wantConfigured)
			}
			if resp.Provider.Provider != tt.wantProvider {
				t.Errorf("provider: got %q, want %q", resp.Provider.Provider, tt.wantProvider)
			}
		})
	}
}

func TestHandleRephrase(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		body        string
		wantCode    int
		wantMessage string
	}{
		{
			name:        "wrong method",
			method:      http.MethodGet,
			wantCode:    http.StatusMethodNotAllowed,
			wantMessage: "method not allowed",
		},
		{
			name:        "empty text",
			method:      http.MethodPost,
			body:        `{"text":""}`,
			wantCode:    http.StatusBadRequest,
			wantMessage: "Text parameter cannot be empty",
		},
		{
			name:        "missing text",
			method:      http.MethodPost,
			body:        `{"webpageContent":"ctx"}`,
			wantCode:    http.StatusBadRequest,
			wantMessage: "Text parameter cannot be empty",
		},
		{
			name:        "null text",
			method:      http.MethodPost,
			body:        `{"text":null}`,
			wantCode:    http.StatusBadRequest,
			wantMessage: "Text parameter cannot be empty",
		},
		{
			name:        "numeric text",
			method:      http.MethodPost,
			body:        `{"text":42}`,
			wantCode:    http.StatusBadRequest,
			wantMessage: "Text must be a string",
		},
		{
			name:        "non-string context",
			method:      http.MethodPost,
			body:        `{"text":"hi","webpageContent":["a"]}`,
			wantCode:    http.StatusBadRequest,
			wantMessage: "webpageContent must be a string",
		},
		{
			name:        "unknown field",
			method:      http.MethodPost,
			body:        `{"text":"hi","model":"gpt"}`,
			wantCode:    http.StatusBadRequest,
			wantMessage: "property model should not exist",
		},
		{
			name:        "array body",
			method:      http.MethodPost,
			body:        `["hi"]`,
			wantCode:    http.StatusBadRequest,
			wantMessage: "request body must be a JSON object",
		},
		{
			name:        "empty body",
			method:      http.MethodPost,
			body:        ``,
			wantCode:    http.StatusBadRequest,
			wantMessage: "request body is required",
		},
		{
			name:        "invalid JSON",
			method:      http.MethodPost,
			body:        `{invalid`,
			wantCode:    http.StatusBadRequest,
			wantMessage: "invalid JSON body",
		},
		{
			name:        "trailing data",
			method:      http.MethodPost,
			body:        `{"text":"a"}{"text":"b"}`,
			wantCode:    http.StatusBadRequest,
			wantMessage: "request body must contain a single JSON object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core := &countingRephraser{}

			req := httptest.NewRequest(tt.method, "/rephrase", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			Rephrase(core).ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Errorf("status: got %d, want %d", w.Code, tt.wantCode)
			}

			var resp errorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Message != tt.wantMessage {
				t.Errorf("message: got %q, want %q", resp.Message, tt.wantMessage)
			}
			if resp.StatusCode != tt.wantCode {
				t.Errorf("statusCode: got %d, want %d", resp.StatusCode, tt.wantCode)
			}
			if resp.Error != http.StatusText(tt.wantCode) {
				t.Errorf("error: got %q, want %q", resp.Error, http.StatusText(tt.wantCode))
			}
			if core.calls != 0 {
				t.Errorf("core invoked %d times for a rejected request", core.calls)
			}
		})
	}
}

func TestHandleRephraseSuccess(t *testing.T) {
	mock := &adapter.MockAdapter{Response: "This is the rephrased text."}

	body, _ := json.Marshal(map[string]string{"text": "make this formal"})
	req := httptest.NewRequest(http.MethodPost, "/rephrase", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	Rephrase(quietService(mock)).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type: got %q", ct)
	}

	var resp rephraseResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(resp.Text, "<h1>Response:</h1>") {
		t.Errorf("text: want <h1>Response:</h1>, got %q", resp.Text)
	}
	if !strings.Contains(resp.Text, "<p>This is the rephrased text.</p>") {
		t.Errorf("text: want paragraph, got %q", resp.Text)
	}
	if mock.Calls() != 1 {
		t.Errorf("provider calls: got %d, want 1", mock.Calls())
	}
}

func TestHandleRephrasePassesContext(t *testing.T) {
	core := &countingRephraser{}

	req := httptest.NewRequest(http.MethodPost, "/rephrase", strings.NewReader(`{"text":"  hi  ","webpageContent":"page"}`))
	w := httptest.NewRecorder()

	Rephrase(core).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusOK)
	}
	if core.last.Text != "  hi  " || core.last.WebpageContent != "page" {
		t.Errorf("request: got %+v", core.last)
	}
}

// unconfiguredMock is a provider that reports missing credentials.
type unconfiguredMock struct {
	*adapter.MockAdapter
}

func (unconfiguredMock) Available() bool { return false }

func TestHandleRephraseNotConfigured(t *testing.T) {
	mock := &adapter.MockAdapter{}
	svc := quietService(unconfiguredMock{mock})

	req := httptest.NewRequest(http.MethodPost, "/rephrase", strings.NewReader(`{"text":"hello"}`))
	w := httptest.NewRecorder()

	Rephrase(svc).ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusInternalServerError)
	}
	var resp errorResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Message != msgNotConfigured {
		t.Errorf("message: got %q, want %q", resp.Message, msgNotConfigured)
	}
	if mock.Calls() != 0 {
		t.Errorf("provider calls: got %d, want 0", mock.Calls())
	}
}

func TestHandleRephraseUpstreamFailure(t *testing.T) {
	mock := &adapter.MockAdapter{Err: errors.New("gemini: API error (403 PERMISSION_DENIED): secret project id 1234")}

	req := httptest.NewRequest(http.MethodPost, "/rephrase", strings.NewReader(`{"text":"hello"}`))
	w := httptest.NewRecorder()

	Rephrase(quietService(mock)).ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusInternalServerError)
	}
	raw := w.Body.String()
	if strings.Contains(raw, "PERMISSION_DENIED") || strings.Contains(raw, "1234") {
		t.Errorf("provider details leaked: %s", raw)
	}

	var resp errorResponse
	json.Unmarshal([]byte(raw), &resp)
	if resp.Message != msgUpstream {
		t.Errorf("message: got %q, want %q", resp.Message, msgUpstream)
	}
}

func TestHandleRephraseBodyTooLarge(t *testing.T) {
	core := &countingRephraser{}
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 16)
		Rephrase(core).ServeHTTP(w, r)
	})

	body := `{"text":"` + strings.Repeat("a", 100) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/rephrase", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusRequestEntityTooLarge)
	}
	if core.calls != 0 {
		t.Errorf("core invoked for oversized body")
	}
}

// staticReporter answers health queries without a rephrase.Service.
type staticReporter struct {
	configured bool
	adapter    adapter.LLMAdapter
}

func (s staticReporter) Configured() bool            { return s.configured }
func (s staticReporter) Adapter() adapter.LLMAdapter { return s.adapter }

func TestHandleHealthReporter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	Health(staticReporter{configured: false, adapter: &adapter.GeminiAdapter{}}).ServeHTTP(w, req)

	var resp healthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Configured {
		t.Error("configured: got true, want false")
	}
	if resp.Provider.Provider != "gemini" || resp.Provider.Name != "Gemini (gemini-2.5-flash)" {
		t.Errorf("provider: got %+v", resp.Provider)
	}
}

func histogramSum(t *testing.T, h prometheus.Histogram) float64 {
	t.Helper()
	var m dto.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("read histogram: %v", err)
	}
	return m.GetHistogram().GetSampleSum()
}

func TestHandleRephraseCountsCharacters(t *testing.T) {
	inputBefore := histogramSum(t, metrics.InputChars)
	contextBefore := histogramSum(t, metrics.ContextChars)

	body := `{"text":"héllo wörld","webpageContent":"日本語のページ"}`
	req := httptest.NewRequest(http.MethodPost, "/rephrase", strings.NewReader(body))
	w := httptest.NewRecorder()

	Rephrase(&countingRephraser{}).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusOK)
	}
	if got := histogramSum(t, metrics.InputChars) - inputBefore; got != 11 {
		t.Errorf("input chars: got %v, want 11", got)
	}
	if got := histogramSum(t, metrics.ContextChars) - contextBefore; got != 7 {
		t.Errorf("context chars: got %v, want 7", got)
	}
}
