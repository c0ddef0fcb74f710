package rephrase

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/rubicr/thambi/internal/adapter"
	"github.com/rubicr/thambi/internal/metrics"
)

// DefaultTimeout bounds a single provider call.
const DefaultTimeout = 60 * time.Second

// Request is a validated rephrase request. An empty WebpageContent means no
// context was supplied.
type Request struct {
	Text           string
	WebpageContent string
}

// Result carries the rendered HTML answer.
type Result struct {
	Text string
}

// Service orchestrates one rephrase call. It holds no per-request state and
// is safe for concurrent use.
type Service struct {
	adapter     adapter.LLMAdapter
	logger      *slog.Logger
	timeout     time.Duration
	instruction string
	policy      *bluemonday.Policy
	cleanHTML   bool
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for request and failure logs.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithTimeout bounds each provider call. Zero or negative disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// WithSystemInstruction replaces the default persona directive.
func WithSystemInstruction(instruction string) Option {
	return func(s *Service) { s.instruction = instruction }
}

// WithSanitizer replaces the HTML sanitization policy. Nil disables it.
func WithSanitizer(p *bluemonday.Policy) Option {
	return func(s *Service) { s.policy = p }
}

// WithContextCleaner reduces webpage context that is raw page HTML to its
// main content as Markdown before it enters the prompt. Off by default, in
// which case the trimmed context is passed through unchanged.
func WithContextCleaner(enabled bool) Option {
	return func(s *Service) { s.cleanHTML = enabled }
}

// New returns a Service backed by a. A nil or unavailable adapter yields a
// service whose every call fails with ErrNotConfigured.
func New(a adapter.LLMAdapter, opts ...Option) *Service {
	s := &Service{
		adapter:     a,
		logger:      slog.Default(),
		timeout:     DefaultTimeout,
		instruction: SystemInstruction,
		policy:      DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Configured reports whether requests can reach a provider.
func (s *Service) Configured() bool {
	return s.adapter != nil && s.adapter.Available()
}

// Adapter returns the provider backing the service, possibly nil.
func (s *Service) Adapter() adapter.LLMAdapter {
	return s.adapter
}

// Process runs the full pipeline and returns HTML.
func (s *Service) Process(ctx context.Context, req Request) (Result, error) {
	md, err := s.Markdown(ctx, req)
	if err != nil {
		return Result{}, err
	}
	return Result{Text: RenderHTML(md, s.policy)}, nil
}

// Markdown runs the pipeline up to normalization and returns the
// heading-led Markdown that Process would render.
func (s *Service) Markdown(ctx context.Context, req Request) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}

	webpage := req.WebpageContent
	if s.cleanHTML {
		webpage = CleanContext(webpage)
	}
	prompt := BuildPrompt(req.Text, webpage)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.logger.InfoContext(ctx, "processing request", "text_length", utf8.RuneCountInString(req.Text))

	start := time.Now()
	raw, err := s.adapter.Generate(ctx, s.instruction, prompt)
	elapsed := time.Since(start)

	provider := adapter.Describe(s.adapter).Provider
	metrics.GenerateDuration.WithLabelValues(provider).Observe(elapsed.Seconds())

	if err != nil {
		metrics.UpstreamFailures.WithLabelValues(provider).Inc()
		s.logger.ErrorContext(ctx, "AI generation failed",
			"error", err,
			"duration_ms", elapsed.Milliseconds(),
			"stack", string(debug.Stack()),
		)
		return "", ErrUpstream
	}

	return NormalizeMarkdown(raw), nil
}
