package adapter

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// MockAdapter returns canned responses with a configurable delay.
// Used for development and testing without a real LLM backend.
type MockAdapter struct {
	Delay    time.Duration
	Response string
	Err      error

	calls atomic.Int64
}

func (m *MockAdapter) Name() string { return "Mock" }

// Generate returns Err when set, Response when set, and otherwise echoes the
// prompt back under a heading.
func (m *MockAdapter) Generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	m.calls.Add(1)

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", fmt.Errorf("mock: %w", ctx.Err())
		}
	}

	if m.Err != nil {
		return "", m.Err
	}
	if m.Response != "" {
		return m.Response, nil
	}
	return "# Mock Response\n\n" + strings.TrimSpace(prompt), nil
}

func (m *MockAdapter) Available() bool { return true }

// Calls reports how many times Generate was invoked.
func (m *MockAdapter) Calls() int { return int(m.calls.Load()) }
