package document

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"docvoice/internal/logger"
)

// Pipeline composes per-page text extraction, the OCR fallback batcher, and
// the normalizer across all pages of all uploaded documents.
type Pipeline struct {
	opener  Opener
	batcher *Batcher
	log     zerolog.Logger
}

// NewPipeline creates an ingestion pipeline. A nil batcher disables the OCR
// fallback; image-only pages then contribute empty text.
func NewPipeline(opener Opener, batcher *Batcher) *Pipeline {
	return &Pipeline{
		opener:  opener,
		batcher: batcher,
		log:     logger.WithComponent("ingest"),
	}
}

// Ingest extracts and normalizes text from every document, joining non-empty
// documents with the separator marker in upload order. A document yielding no
// text contributes nothing; if every document is empty, Ingest returns
// ErrNoTextExtracted.
func (p *Pipeline) Ingest(ctx context.Context, paths []string) (string, error) {
	const op = "Ingest"

	var parts []string
	for _, path := range paths {
		text, err := p.ingestOne(ctx, path)
		if err != nil {
			// An unreadable document is recovered unless it turns out to be
			// the only source of text.
			p.log.Error().
				Err(err).
				Str("document", path).
				Msg("Failed to ingest document")
			continue
		}
		if text == "" {
			p.log.Warn().
				Str("document", path).
				Msg("Document yielded no extractable text")
			continue
		}
		parts = append(parts, text)
	}

	if len(parts) == 0 {
		return "", WrapIngestError(op, ErrNoTextExtracted, "")
	}

	return strings.Join(parts, "\n"+DocumentSeparator+"\n"), nil
}

// ingestOne extracts the normalized text of a single document.
func (p *Pipeline) ingestOne(ctx context.Context, path string) (string, error) {
	doc, err := p.opener.Open(path)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	numPages := doc.NumPages()
	p.log.Info().
		Str("document", path).
		Int("pages", numPages).
		Msg("Extracting text")

	pageTexts := make([]string, numPages)
	var ocrPages []int // 1-based pages without embedded text, ascending

	for i := 0; i < numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", WrapIngestError("ingestOne", err, "canceled during page scan")
		}

		text, err := doc.PageText(i)
		if err != nil {
			p.log.Warn().
				Err(err).
				Str("document", path).
				Int("page", i+1).
				Msg("Failed to read page text, queueing page for OCR")
			text = ""
		}

		text = strings.TrimSpace(text)
		if text != "" {
			pageTexts[i] = text
		} else {
			ocrPages = append(ocrPages, i+1)
		}
	}

	if len(ocrPages) > 0 && p.batcher != nil {
		recognized := p.batcher.RecognizePages(ctx, path, ocrPages)
		for _, page := range ocrPages {
			pageTexts[page-1] = recognized[page]
		}
	}

	var sb strings.Builder
	for _, text := range pageTexts {
		if text == "" {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	normalized := Normalize(sb.String())

	p.log.Info().
		Str("document", path).
		Int("pages", numPages).
		Int("ocr_pages", len(ocrPages)).
		Int("text_length", len(normalized)).
		Msg("Text extraction complete")

	return normalized, nil
}
