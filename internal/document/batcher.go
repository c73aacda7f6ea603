package document

import (
	"context"

	"github.com/rs/zerolog"

	"docvoice/internal/logger"
)

// Batcher runs the OCR fallback for pages without embedded text.
//
// Rasterization dominates the cost of a fallback pass, so the batcher renders
// the minimal contiguous range spanning the requested pages in a single call,
// even when the request list has gaps. Pages inside the range that were not
// requested are rendered but never recognized.
type Batcher struct {
	rasterizer Rasterizer
	recognizer Recognizer
	log        zerolog.Logger
}

// NewBatcher creates a batcher over the given rasterization and recognition
// backends.
func NewBatcher(rasterizer Rasterizer, recognizer Recognizer) *Batcher {
	return &Batcher{
		rasterizer: rasterizer,
		recognizer: recognizer,
		log:        logger.WithComponent("ocr-batcher"),
	}
}

// RecognizePages recognizes text for the given 1-based pages of the document
// at path. The page list must be sorted ascending.
//
// Failures never abort the document: if rasterization fails for the whole
// range, or recognition fails for one image, the affected pages map to empty
// text and the failure is logged.
func (b *Batcher) RecognizePages(ctx context.Context, path string, pages []int) map[int]string {
	results := make(map[int]string, len(pages))
	if len(pages) == 0 {
		return results
	}
	for _, page := range pages {
		results[page] = ""
	}

	first, last := pages[0], pages[len(pages)-1]

	b.log.Info().
		Str("document", path).
		Ints("pages", pages).
		Int("first", first).
		Int("last", last).
		Msg("Performing OCR on pages without embedded text")

	images, err := b.rasterizer.Rasterize(ctx, path, first, last)
	if err != nil {
		b.log.Error().
			Err(err).
			Str("document", path).
			Int("first", first).
			Int("last", last).
			Msg("Rasterization failed, affected pages contribute empty text")
		return results
	}

	if len(images) != last-first+1 {
		b.log.Error().
			Str("document", path).
			Int("expected", last-first+1).
			Int("got", len(images)).
			Msg("Rasterizer returned wrong image count, affected pages contribute empty text")
		return results
	}

	for _, page := range pages {
		text, err := b.recognizer.Recognize(ctx, images[page-first])
		if err != nil {
			b.log.Error().
				Err(err).
				Str("document", path).
				Int("page", page).
				Msg("Recognition failed for page, contributing empty text")
			continue
		}

		b.log.Debug().
			Str("document", path).
			Int("page", page).
			Int("text_length", len(text)).
			Msg("Recognized page text")

		results[page] = text
	}

	return results
}
