package providers

import (
	"context"
	"fmt"
)

// GenerateRequest is a single prompt sent to a generation backend.
type GenerateRequest struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
	TopP         float64
}

// GenerateResponse holds the backend's text output.
type GenerateResponse struct {
	Content    string `json:"content"`
	TokensUsed int    `json:"tokensUsed"`
}

// Generator is a text-generation backend. Implementations must be safe for
// concurrent use.
type Generator interface {
	// Generate sends a prompt and returns the response text.
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)

	// Available reports whether the backend can be used right now, without
	// performing a billable call.
	Available(ctx context.Context) bool

	// Name returns the provider name for logging and cache keys.
	Name() string
}

// New creates a Generator for the named provider.
func New(provider, model string) (Generator, error) {
	switch provider {
	case "anthropic":
		return NewAnthropic(model)
	case "openai":
		return NewOpenAI(model)
	case "ollama", "lmstudio":
		return NewOllama(model)
	default:
		return nil, fmt.Errorf("unknown provider: %s (supported: anthropic, openai, ollama, lmstudio)", provider)
	}
}
