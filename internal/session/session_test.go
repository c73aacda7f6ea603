package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docvoice/internal/document"
	"docvoice/pkg/models"
)

type fakeIngester struct {
	corpus string
	err    error
	calls  int
}

func (f *fakeIngester) Ingest(ctx context.Context, paths []string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.corpus, nil
}

// fakeGenerator records every explanation call's feedback history.
type fakeGenerator struct {
	summary      models.Result
	explanation  models.Result
	histories    [][]string
	gotKeywords  []string
	explainCalls int
}

func (f *fakeGenerator) GenerateSummary(ctx context.Context, text, lang string) models.Result {
	return f.summary
}

func (f *fakeGenerator) GenerateExplanation(ctx context.Context, text, lang string, feedback, keywords []string) models.Result {
	f.explainCalls++
	history := make([]string, len(feedback))
	copy(history, feedback)
	f.histories = append(f.histories, history)
	f.gotKeywords = keywords
	return f.explanation
}

// fakeRenderer writes a real temp file per call so artifact cleanup is
// observable.
type fakeRenderer struct {
	dir   string
	err   error
	calls int
}

func (f *fakeRenderer) Render(ctx context.Context, text, langCode string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	path := filepath.Join(f.dir, "audio-"+langCode+"-"+string(rune('0'+f.calls))+".mp3")
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", err
	}
	return path, nil
}

func newTestSession(t *testing.T) (*Session, *fakeIngester, *fakeGenerator, *fakeRenderer) {
	t.Helper()
	ingester := &fakeIngester{corpus: "corpus text"}
	generator := &fakeGenerator{
		summary:     models.Success("the summary"),
		explanation: models.Success("the explanation"),
	}
	renderer := &fakeRenderer{dir: t.TempDir()}
	return New(ingester, generator, renderer, nil), ingester, generator, renderer
}

func TestProcessDocumentsHappyPath(t *testing.T) {
	sess, _, _, renderer := newTestSession(t)

	err := sess.ProcessDocuments(context.Background(), []string{"a.pdf"}, Options{Language: "Hindi"})
	require.NoError(t, err)

	assert.Equal(t, StateReady, sess.State())
	a := sess.Artifacts()
	assert.Equal(t, "corpus text", a.Corpus)
	assert.Equal(t, "the summary", a.Summary.Text)
	assert.Equal(t, "the explanation", a.Explanation.Text)
	require.NotEmpty(t, a.AudioPath)
	assert.FileExists(t, a.AudioPath)
	assert.Equal(t, 1, renderer.calls)

	require.NoError(t, sess.Close())
	assert.NoFileExists(t, a.AudioPath)
}

func TestProcessDocumentsIngestionFailure(t *testing.T) {
	sess, ingester, generator, _ := newTestSession(t)
	ingester.err = document.ErrNoTextExtracted

	err := sess.ProcessDocuments(context.Background(), []string{"a.pdf"}, Options{})
	require.ErrorIs(t, err, document.ErrNoTextExtracted)

	assert.Equal(t, StateIdle, sess.State())
	assert.Zero(t, generator.explainCalls, "generation must not run without a corpus")

	_, err = sess.SubmitFeedback(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestProcessDocumentsUnsupportedLanguage(t *testing.T) {
	sess, ingester, _, _ := newTestSession(t)

	err := sess.ProcessDocuments(context.Background(), []string{"a.pdf"}, Options{Language: "Klingon"})
	require.Error(t, err)
	assert.Zero(t, ingester.calls)
}

func TestFailedExplanationSkipsSynthesis(t *testing.T) {
	sess, _, generator, renderer := newTestSession(t)
	generator.explanation = models.Failure("the text-generation service is not configured")

	err := sess.ProcessDocuments(context.Background(), []string{"a.pdf"}, Options{})
	require.NoError(t, err)

	assert.Equal(t, StateReady, sess.State())
	a := sess.Artifacts()
	assert.True(t, a.Explanation.Failed())
	assert.Empty(t, a.AudioPath)
	assert.Zero(t, renderer.calls, "synthesis must be skipped for a failed explanation")

	// Summary is still shown.
	assert.Equal(t, "the summary", a.Summary.Text)
}

func TestSynthesisFailureDegradesGracefully(t *testing.T) {
	sess, _, _, renderer := newTestSession(t)
	renderer.err = errors.New("tts endpoint down")

	err := sess.ProcessDocuments(context.Background(), []string{"a.pdf"}, Options{})
	require.NoError(t, err)

	a := sess.Artifacts()
	assert.Empty(t, a.AudioPath)
	assert.Equal(t, "the explanation", a.Explanation.Text)
}

func TestFeedbackAccumulatesFullHistory(t *testing.T) {
	sess, _, generator, _ := newTestSession(t)

	require.NoError(t, sess.ProcessDocuments(context.Background(), []string{"a.pdf"}, Options{}))

	revised, err := sess.SubmitFeedback(context.Background(), "too long")
	require.NoError(t, err)
	assert.True(t, revised)

	revised, err = sess.SubmitFeedback(context.Background(), "add an analogy")
	require.NoError(t, err)
	assert.True(t, revised)

	require.Len(t, generator.histories, 3) // initial + two revisions
	assert.Empty(t, generator.histories[0])
	assert.Equal(t, []string{"too long"}, generator.histories[1])
	assert.Equal(t, []string{"too long", "add an analogy"}, generator.histories[2])
	assert.Equal(t, []string{"too long", "add an analogy"}, sess.FeedbackHistory())
	assert.Equal(t, StateReady, sess.State())
}

func TestBlankFeedbackIsNoOp(t *testing.T) {
	sess, _, generator, renderer := newTestSession(t)

	require.NoError(t, sess.ProcessDocuments(context.Background(), []string{"a.pdf"}, Options{}))
	audioBefore := sess.Artifacts().AudioPath

	revised, err := sess.SubmitFeedback(context.Background(), "   ")
	require.NoError(t, err)
	assert.False(t, revised)
	assert.Equal(t, 1, generator.explainCalls)
	assert.Equal(t, 1, renderer.calls)
	assert.Equal(t, audioBefore, sess.Artifacts().AudioPath)
	assert.Empty(t, sess.FeedbackHistory())
}

func TestFeedbackReplacesAudioArtifact(t *testing.T) {
	sess, _, _, _ := newTestSession(t)

	require.NoError(t, sess.ProcessDocuments(context.Background(), []string{"a.pdf"}, Options{}))
	first := sess.Artifacts().AudioPath
	require.FileExists(t, first)

	_, err := sess.SubmitFeedback(context.Background(), "shorter please")
	require.NoError(t, err)

	second := sess.Artifacts().AudioPath
	assert.NotEqual(t, first, second)
	assert.NoFileExists(t, first, "stale audio artifact must be deleted")
	assert.FileExists(t, second)
}

func TestReprocessingResetsSessionState(t *testing.T) {
	sess, _, generator, _ := newTestSession(t)

	require.NoError(t, sess.ProcessDocuments(context.Background(), []string{"a.pdf"}, Options{}))
	_, err := sess.SubmitFeedback(context.Background(), "too long")
	require.NoError(t, err)
	staleAudio := sess.Artifacts().AudioPath

	require.NoError(t, sess.ProcessDocuments(context.Background(), []string{"b.pdf"}, Options{}))

	assert.Empty(t, sess.FeedbackHistory(), "feedback history must reset with a new document set")
	assert.NoFileExists(t, staleAudio)

	// The explanation for the new set starts from an empty history.
	assert.Empty(t, generator.histories[len(generator.histories)-1])
}

func TestStoredKeywordsUsedWhenNoneGiven(t *testing.T) {
	ingester := &fakeIngester{corpus: "corpus"}
	generator := &fakeGenerator{
		summary:     models.Success("s"),
		explanation: models.Success("e"),
	}
	renderer := &fakeRenderer{dir: t.TempDir()}
	sess := New(ingester, generator, renderer, stubStore{keywords: []string{"osmosis"}})

	require.NoError(t, sess.ProcessDocuments(context.Background(), []string{"a.pdf"}, Options{UserID: "u1"}))
	assert.Equal(t, []string{"osmosis"}, generator.gotKeywords)

	// Explicit keywords win over stored ones.
	require.NoError(t, sess.ProcessDocuments(context.Background(), []string{"a.pdf"}, Options{Keywords: []string{"light"}}))
	assert.Equal(t, []string{"light"}, generator.gotKeywords)
}

type stubStore struct {
	keywords []string
}

func (stubStore) SaveFeedback(userID, content, feedback string, keywords []string) error {
	return nil
}

func (s stubStore) UserKeywords(userID string) ([]string, error) {
	return s.keywords, nil
}
