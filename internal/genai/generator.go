package genai

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"docvoice/internal/logger"
	"docvoice/pkg/models"
)

// Generator produces summaries and explanations from corpus text. It is a
// thin, stateless layer over a TextService; revision state (feedback history,
// keywords) is owned by the session and passed in per call.
type Generator struct {
	service TextService
	log     zerolog.Logger
}

// NewGenerator creates a generator over the given text service.
func NewGenerator(service TextService) *Generator {
	return &Generator{
		service: service,
		log:     logger.WithComponent("generator"),
	}
}

// GenerateSummary produces a concise overview of text in the target language.
// Service failures come back as a Failure result, never as a panic or error.
func (g *Generator) GenerateSummary(ctx context.Context, text, lang string) models.Result {
	g.log.Info().Str("language", lang).Msg("Generating summary")

	out, err := g.service.GenerateText(ctx, summaryPrompt(text, lang))
	if err != nil {
		return g.failure("summary", err)
	}
	return models.Success(out)
}

// GenerateExplanation produces the long, analogy-driven explanation. A
// non-empty feedback slice makes the directive quote the entire joined
// history; keywords add an emphasis instruction.
func (g *Generator) GenerateExplanation(ctx context.Context, text, lang string, feedback, keywords []string) models.Result {
	g.log.Info().
		Str("language", lang).
		Int("feedback_entries", len(feedback)).
		Int("keywords", len(keywords)).
		Msg("Generating explanation")

	out, err := g.service.GenerateText(ctx, explanationPrompt(text, lang, feedback, keywords))
	if err != nil {
		return g.failure("explanation", err)
	}
	return models.Success(out)
}

func (g *Generator) failure(artifact string, err error) models.Result {
	g.log.Error().
		Err(err).
		Str("artifact", artifact).
		Msg("Generation failed")

	if errors.Is(err, ErrUnconfigured) {
		return models.Failure("the text-generation service is not configured, please check the API key")
	}
	return models.Failure("could not generate " + artifact + ": " + err.Error())
}
