package document

import (
	"errors"
	"fmt"
)

// Common ingestion errors
var (
	// ErrNoTextExtracted is returned when every uploaded document yielded
	// empty text, even after OCR. This is terminal for the whole request.
	ErrNoTextExtracted = errors.New("no text could be extracted from the uploaded documents")

	// ErrInvalidDocument is returned when a file cannot be opened as a PDF.
	ErrInvalidDocument = errors.New("invalid or corrupted PDF document")

	// ErrMissingCredentials is returned when no Google Cloud credentials are
	// configured for the recognition backend.
	ErrMissingCredentials = errors.New("missing Google Cloud credentials: set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS environment variable")

	// ErrRecognitionFailed is returned when the recognition backend fails for
	// a page image.
	ErrRecognitionFailed = errors.New("text recognition failed")
)

// IngestError wraps errors with additional context about the ingestion failure.
type IngestError struct {
	// Op is the operation that failed (e.g., "Ingest", "Rasterize").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *IngestError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("document: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("document: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *IngestError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *IngestError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// WrapIngestError wraps an error as an IngestError if it isn't already one.
func WrapIngestError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var ie *IngestError
	if errors.As(err, &ie) {
		return err
	}

	return &IngestError{Op: op, Err: err, Details: details}
}
