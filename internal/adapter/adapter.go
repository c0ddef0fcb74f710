package adapter

import "context"

// LLMAdapter defines the contract for the generative model backend.
type LLMAdapter interface {
	Name() string
	Generate(ctx context.Context, systemInstruction, prompt string) (string, error)
	Available() bool
}

// Info is exposed via GET /health.
type Info struct {
	Name      string `json:"name"`
	Provider  string `json:"provider"`
	Available bool   `json:"available"`
}

// Describe reports the adapter state for health checks. A nil adapter
// describes an unconfigured service.
func Describe(a LLMAdapter) Info {
	if a == nil {
		return Info{Name: "none", Provider: "none"}
	}
	info := Info{Name: a.Name(), Available: a.Available()}
	switch a.(type) {
	case *GeminiAdapter:
		info.Provider = "gemini"
	case *MockAdapter:
		info.Provider = "mock"
	default:
		info.Provider = "custom"
	}
	return info
}
