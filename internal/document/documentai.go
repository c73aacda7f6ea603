package document

import (
	"context"
	"fmt"
	"image"
	"os"
	"strings"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"
)

// DocumentAIConfig holds configuration for the Document AI OCR backend.
type DocumentAIConfig struct {
	// ProjectID is the Google Cloud project ID where Document AI is enabled.
	ProjectID string

	// Location is the processing location (e.g., "us", "eu").
	Location string

	// ProcessorID is the ID of a Document AI OCR processor.
	ProcessorID string
}

// DocumentAIRecognizer recognizes page images using a Google Document AI
// OCR processor. Page images are sent inline as PNG bytes.
type DocumentAIRecognizer struct {
	client *documentai.DocumentProcessorClient
	config DocumentAIConfig
}

// NewDocumentAIRecognizer creates a recognizer with credentials from environment.
// Expects: GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS.
func NewDocumentAIRecognizer(ctx context.Context, config DocumentAIConfig) (*DocumentAIRecognizer, error) {
	const op = "NewDocumentAIRecognizer"

	if config.ProjectID == "" {
		return nil, WrapIngestError(op, ErrMissingCredentials, "GOOGLE_CLOUD_PROJECT is required for the documentai backend")
	}
	if config.ProcessorID == "" {
		return nil, WrapIngestError(op, ErrMissingCredentials, "DOCUMENT_AI_PROCESSOR_ID is required for the documentai backend")
	}
	if config.Location == "" {
		config.Location = "us"
	}

	var clientOptions []option.ClientOption

	// Regional endpoint for non-US locations
	if config.Location != "us" {
		endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", config.Location)
		clientOptions = append(clientOptions, option.WithEndpoint(endpoint))
	}

	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		clientOptions = append(clientOptions, option.WithCredentialsJSON([]byte(credJSON)))
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		clientOptions = append(clientOptions, option.WithCredentialsFile(credFile))
	}

	client, err := documentai.NewDocumentProcessorClient(ctx, clientOptions...)
	if err != nil {
		return nil, WrapIngestError(op, err, fmt.Sprintf("failed to create Document AI client for location: %s", config.Location))
	}

	return &DocumentAIRecognizer{client: client, config: config}, nil
}

// Recognize extracts text from a single page image.
func (r *DocumentAIRecognizer) Recognize(ctx context.Context, img image.Image) (string, error) {
	const op = "Recognize"

	content, err := encodePNG(img)
	if err != nil {
		return "", WrapIngestError(op, err, "failed to encode page image")
	}

	resp, err := r.client.ProcessDocument(ctx, &documentaipb.ProcessRequest{
		Name: r.processorName(),
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  content,
				MimeType: "image/png",
			},
		},
	})
	if err != nil {
		return "", WrapIngestError(op, ErrRecognitionFailed, err.Error())
	}

	if resp.Document == nil {
		return "", WrapIngestError(op, ErrRecognitionFailed, "no document in response")
	}

	return strings.TrimSpace(resp.Document.Text), nil
}

// Close closes the underlying Document AI client.
func (r *DocumentAIRecognizer) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

func (r *DocumentAIRecognizer) processorName() string {
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s",
		r.config.ProjectID, r.config.Location, r.config.ProcessorID)
}
