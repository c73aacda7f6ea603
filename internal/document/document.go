// Package document implements the ingestion pipeline that turns uploaded PDF
// files into a single normalized text corpus.
//
// Each page of a document is first asked for its embedded text. Pages without
// any (scanned or image-only pages) are queued and handed to the OCR fallback
// batcher, which rasterizes the minimal contiguous page range in one pass and
// runs recognition per page image. Page texts are spliced back together in
// page order, normalized, and multiple documents are joined with a fixed
// separator marker in upload order.
//
// Rasterization is done locally with MuPDF (go-fitz); recognition goes to
// Google Cloud Vision or Document AI, selected by configuration.
package document

import (
	"context"
	"image"
)

// DocumentSeparator marks the boundary between two documents in the corpus.
const DocumentSeparator = "--- (End of Document) ---"

// Opener opens a document for page-level text access.
type Opener interface {
	Open(path string) (Doc, error)
}

// Doc is an opened document. Page indexes are zero-based.
type Doc interface {
	// NumPages returns the page count.
	NumPages() int

	// PageText returns the embedded text of one page, untrimmed. A page
	// without embedded text yields an empty string, not an error.
	PageText(index int) (string, error)

	Close() error
}

// Rasterizer renders a contiguous page range of a document to images.
// The range is inclusive and 1-based; the result holds exactly
// last-first+1 images in page order.
type Rasterizer interface {
	Rasterize(ctx context.Context, path string, first, last int) ([]image.Image, error)
}

// Recognizer extracts text from a single page image.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}
