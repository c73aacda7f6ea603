package genai

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"docvoice/internal/logger"
)

const openaiSystemPrompt = "You are an expert educator who explains complex topics in simple terms."

// OpenAIService calls the OpenAI chat-completion API.
type OpenAIService struct {
	client *openai.Client
	model  string
	log    zerolog.Logger
}

// NewOpenAIService creates an OpenAI-backed text service.
func NewOpenAIService(apiKey, model string) *OpenAIService {
	return &OpenAIService{
		client: openai.NewClient(apiKey),
		model:  model,
		log:    logger.WithComponent("openai"),
	}
}

// NewOpenAIServiceWithClient creates the service with an explicit client (for testing).
func NewOpenAIServiceWithClient(client *openai.Client, model string) *OpenAIService {
	return &OpenAIService{
		client: client,
		model:  model,
		log:    logger.WithComponent("openai"),
	}
}

// GenerateText sends one prompt and returns the completion text.
func (s *OpenAIService) GenerateText(ctx context.Context, prompt string) (string, error) {
	s.log.Debug().
		Int("prompt_length", len(prompt)).
		Str("model", s.model).
		Msg("Sending completion request")

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: openaiSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}
