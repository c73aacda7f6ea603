package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"docvoice/internal/config"
	"docvoice/internal/document"
	"docvoice/internal/genai"
	"docvoice/internal/speech"
)

// createContextWithTimeout creates a context with timeout and signal handling
func createContextWithTimeout(timeoutSecs int, log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSecs)*time.Second)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling")
			cancel()
		case <-ctx.Done():
			// Context completed normally
		}
	}()

	return ctx, cancel
}

// buildPipeline wires the ingestion pipeline for the selected OCR backend.
// When the backend cannot be created (usually missing credentials), the
// pipeline runs without OCR fallback and image-only pages contribute nothing.
func buildPipeline(ctx context.Context, cfg *config.Config, backend string, log zerolog.Logger) (*document.Pipeline, func()) {
	if backend == "" {
		backend = cfg.OCRBackend
	}

	var recognizer document.Recognizer
	cleanup := func() {}

	switch backend {
	case "none":
		// OCR fallback disabled explicitly
	case "documentai":
		rec, err := document.NewDocumentAIRecognizer(ctx, document.DocumentAIConfig{
			ProjectID:   cfg.GoogleCloudProject,
			Location:    cfg.GoogleCloudLocation,
			ProcessorID: cfg.DocumentAIProcessorID,
		})
		if err != nil {
			log.Warn().Err(err).Msg("Document AI backend unavailable, continuing without OCR fallback")
		} else {
			recognizer = rec
			cleanup = func() { rec.Close() }
		}
	default:
		rec, err := document.NewVisionRecognizer(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Vision backend unavailable, continuing without OCR fallback")
		} else {
			recognizer = rec
			cleanup = func() { rec.Close() }
		}
	}

	var batcher *document.Batcher
	if recognizer != nil {
		batcher = document.NewBatcher(document.FitzRasterizer{}, recognizer)
	}

	return document.NewPipeline(document.FitzOpener{}, batcher), cleanup
}

// buildGenerator wires the content generator for the configured provider.
func buildGenerator(cfg *config.Config) *genai.Generator {
	return genai.NewGenerator(genai.NewTextService(genai.ServiceConfig{
		Provider:     cfg.LLMProvider,
		GeminiAPIKey: cfg.GeminiAPIKey,
		GeminiAPIURL: cfg.GeminiAPIURL,
		OpenAIAPIKey: cfg.OpenAIAPIKey,
		OpenAIModel:  cfg.OpenAIModel,
	}))
}

// buildRenderer wires the speech renderer.
func buildRenderer(cfg *config.Config) *speech.Renderer {
	return speech.NewRenderer(speech.NewTranslateTTS(cfg.TTSEndpoint, cfg.TTSChunkLen))
}
