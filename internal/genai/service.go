// Package genai produces the AI-generated artifacts for a processing
// request: a short summary and a long, beginner-friendly explanation, both in
// a user-selected language. It talks to an external text-generation service
// (Gemini or OpenAI) and surfaces every service failure as a tagged Failure
// result rather than an error, so the caller can keep showing partial output.
package genai

import (
	"context"
	"errors"
)

// ErrUnconfigured is returned by a TextService constructed without an API
// key. It is detectable before any network call is attempted.
var ErrUnconfigured = errors.New("text-generation service is not configured: set GEMINI_API_KEY or OPENAI_API_KEY")

// TextService is the narrow contract the generator requires of a
// text-generation backend.
type TextService interface {
	// GenerateText sends one prompt and returns the generated text.
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ServiceConfig selects and configures a text-generation backend.
type ServiceConfig struct {
	Provider     string // "gemini" or "openai"
	GeminiAPIKey string
	GeminiAPIURL string
	OpenAIAPIKey string
	OpenAIModel  string
}

// NewTextService builds the configured backend. A missing API key yields a
// stub whose calls fail with ErrUnconfigured instead of an error here, so the
// rest of the workflow (ingestion, language listing) stays usable.
func NewTextService(config ServiceConfig) TextService {
	switch config.Provider {
	case "openai":
		if config.OpenAIAPIKey == "" {
			return unconfiguredService{}
		}
		return NewOpenAIService(config.OpenAIAPIKey, config.OpenAIModel)
	default:
		if config.GeminiAPIKey == "" {
			return unconfiguredService{}
		}
		return NewGeminiService(config.GeminiAPIURL, config.GeminiAPIKey)
	}
}

type unconfiguredService struct{}

func (unconfiguredService) GenerateText(context.Context, string) (string, error) {
	return "", ErrUnconfigured
}
