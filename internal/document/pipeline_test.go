package document

import (
	"context"
	"errors"
	"testing"
)

// fakeOpener serves canned page texts per path.
type fakeOpener struct {
	docs map[string][]string // path -> per-page embedded text
}

func (f *fakeOpener) Open(path string) (Doc, error) {
	pages, ok := f.docs[path]
	if !ok {
		return nil, WrapIngestError("Open", ErrInvalidDocument, path)
	}
	return &fakeDoc{pages: pages}, nil
}

type fakeDoc struct {
	pages  []string
	closed bool
}

func (d *fakeDoc) NumPages() int { return len(d.pages) }

func (d *fakeDoc) PageText(index int) (string, error) {
	return d.pages[index], nil
}

func (d *fakeDoc) Close() error {
	d.closed = true
	return nil
}

// newTestBatcher builds a batcher whose recognizer yields texts[page].
func newTestBatcher(texts map[int]string) (*Batcher, *fakeRasterizer) {
	rasterizer := &fakeRasterizer{}
	return NewBatcher(rasterizer, &fakeRecognizer{texts: texts}), rasterizer
}

func TestIngestMixedTextAndImagePages(t *testing.T) {
	// Pages 1 and 3 carry embedded text, page 2 is image-only.
	opener := &fakeOpener{docs: map[string][]string{
		"doc.pdf": {"Intro.", "   ", "Conclusion."},
	}}
	batcher, rasterizer := newTestBatcher(map[int]string{2: "Middle content."})

	p := NewPipeline(opener, batcher)
	got, err := p.Ingest(context.Background(), []string{"doc.pdf"})
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}

	want := "Intro.\nMiddle content.\nConclusion."
	if got != want {
		t.Errorf("Ingest = %q, want %q", got, want)
	}

	if len(rasterizer.calls) != 1 || rasterizer.calls[0] != [2]int{2, 2} {
		t.Errorf("rasterizer calls = %v, want one call for range [2,2]", rasterizer.calls)
	}
}

func TestIngestImageOnlyDocument(t *testing.T) {
	opener := &fakeOpener{docs: map[string][]string{
		"scan.pdf": {"", "", ""},
	}}
	batcher, rasterizer := newTestBatcher(map[int]string{1: "page one", 2: "page two", 3: "page three"})

	p := NewPipeline(opener, batcher)
	got, err := p.Ingest(context.Background(), []string{"scan.pdf"})
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}

	want := "page one\npage two\npage three"
	if got != want {
		t.Errorf("Ingest = %q, want %q", got, want)
	}

	if len(rasterizer.calls) != 1 || rasterizer.calls[0] != [2]int{1, 3} {
		t.Errorf("rasterizer calls = %v, want one call for range [1,3]", rasterizer.calls)
	}
}

func TestIngestMultipleDocuments(t *testing.T) {
	opener := &fakeOpener{docs: map[string][]string{
		"a.pdf": {"First document."},
		"b.pdf": {""}, // yields nothing, contributes nothing
		"c.pdf": {"Third document."},
	}}

	p := NewPipeline(opener, nil)
	got, err := p.Ingest(context.Background(), []string{"a.pdf", "b.pdf", "c.pdf"})
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}

	want := "First document.\n" + DocumentSeparator + "\nThird document."
	if got != want {
		t.Errorf("Ingest = %q, want %q", got, want)
	}
}

func TestIngestAllEmptyFails(t *testing.T) {
	opener := &fakeOpener{docs: map[string][]string{
		"a.pdf": {"", ""},
		"b.pdf": {},
	}}

	p := NewPipeline(opener, nil)
	_, err := p.Ingest(context.Background(), []string{"a.pdf", "b.pdf"})
	if !errors.Is(err, ErrNoTextExtracted) {
		t.Errorf("Ingest error = %v, want ErrNoTextExtracted", err)
	}
}

func TestIngestUnreadableDocumentRecovered(t *testing.T) {
	opener := &fakeOpener{docs: map[string][]string{
		"good.pdf": {"Readable text."},
	}}

	p := NewPipeline(opener, nil)
	got, err := p.Ingest(context.Background(), []string{"missing.pdf", "good.pdf"})
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	if got != "Readable text." {
		t.Errorf("Ingest = %q, want %q", got, "Readable text.")
	}

	// The only document being unreadable is terminal.
	_, err = p.Ingest(context.Background(), []string{"missing.pdf"})
	if !errors.Is(err, ErrNoTextExtracted) {
		t.Errorf("Ingest error = %v, want ErrNoTextExtracted", err)
	}
}

func TestIngestNormalizesResult(t *testing.T) {
	opener := &fakeOpener{docs: map[string][]string{
		"doc.pdf": {"a  b\n\n\nc", "d\te"},
	}}

	p := NewPipeline(opener, nil)
	got, err := p.Ingest(context.Background(), []string{"doc.pdf"})
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}

	want := "a b\nc\nd e"
	if got != want {
		t.Errorf("Ingest = %q, want %q", got, want)
	}
	if Normalize(got) != got {
		t.Errorf("Ingest output is not normalization-stable: %q", got)
	}
}
