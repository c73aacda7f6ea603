package document

import (
	"context"
	"image"

	"github.com/gen2brain/go-fitz"
)

// FitzOpener opens PDF documents with MuPDF.
type FitzOpener struct{}

// Open opens the PDF at path for page-level text access.
func (FitzOpener) Open(path string) (Doc, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, WrapIngestError("Open", ErrInvalidDocument, err.Error())
	}
	return &fitzDoc{doc: doc}, nil
}

type fitzDoc struct {
	doc *fitz.Document
}

func (d *fitzDoc) NumPages() int {
	return d.doc.NumPage()
}

func (d *fitzDoc) PageText(index int) (string, error) {
	return d.doc.Text(index)
}

func (d *fitzDoc) Close() error {
	return d.doc.Close()
}

// FitzRasterizer renders PDF pages to images with MuPDF. Each call opens
// the document independently.
type FitzRasterizer struct{}

// Rasterize renders the inclusive 1-based page range [first, last].
func (FitzRasterizer) Rasterize(ctx context.Context, path string, first, last int) ([]image.Image, error) {
	const op = "Rasterize"

	doc, err := fitz.New(path)
	if err != nil {
		return nil, WrapIngestError(op, ErrInvalidDocument, err.Error())
	}
	defer doc.Close()

	images := make([]image.Image, 0, last-first+1)
	for page := first; page <= last; page++ {
		if err := ctx.Err(); err != nil {
			return nil, WrapIngestError(op, err, "canceled during rasterization")
		}

		img, err := doc.Image(page - 1)
		if err != nil {
			return nil, WrapIngestError(op, err, "failed to render page")
		}
		images = append(images, img)
	}

	return images, nil
}
