// Package session orchestrates the end-to-end workflow: document ingestion,
// summary and explanation generation, speech rendering, and the iterative
// feedback-revision loop.
//
// A Session is single-threaded by design: each action (process documents,
// submit feedback) runs to completion before the next is accepted, and all
// state is owned exclusively by the in-flight request.
package session

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"docvoice/internal/language"
	"docvoice/internal/logger"
	"docvoice/pkg/models"
)

// State identifies where a session is in its workflow.
type State int

const (
	StateIdle State = iota
	StateIngesting
	StateGenerating
	StateSynthesizing
	StateReady
	StateRevising
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateIngesting:
		return "ingesting"
	case StateGenerating:
		return "generating"
	case StateSynthesizing:
		return "synthesizing"
	case StateReady:
		return "ready"
	case StateRevising:
		return "revising"
	default:
		return "unknown"
	}
}

// ErrNotReady is returned when feedback arrives before any document set has
// been processed successfully.
var ErrNotReady = errors.New("no processed documents: submit documents before feedback")

// Ingester turns document paths into one normalized corpus.
type Ingester interface {
	Ingest(ctx context.Context, paths []string) (string, error)
}

// ContentGenerator produces the summary and explanation artifacts.
type ContentGenerator interface {
	GenerateSummary(ctx context.Context, text, lang string) models.Result
	GenerateExplanation(ctx context.Context, text, lang string, feedback, keywords []string) models.Result
}

// AudioRenderer renders explanation text to an audio artifact path.
type AudioRenderer interface {
	Render(ctx context.Context, text, langCode string) (string, error)
}

// Options configures one processing request.
type Options struct {
	// Language is the display name of the target language. Empty selects the
	// default.
	Language string

	// Keywords are topics to emphasize in the explanation. When empty, the
	// store's keywords for UserID are used.
	Keywords []string

	// UserID identifies the user for the persistence hooks.
	UserID string
}

// Session holds the state of one document-to-audio workflow.
type Session struct {
	ingester  Ingester
	generator ContentGenerator
	renderer  AudioRenderer
	store     Store
	log       zerolog.Logger

	state     State
	lang      string
	langCode  string
	userID    string
	keywords  []string
	corpus    string
	summary   models.Result
	explain   models.Result
	audioPath string
	feedback  []string
	processed bool
}

// New creates an idle session. A nil store behaves like NoopStore.
func New(ingester Ingester, generator ContentGenerator, renderer AudioRenderer, store Store) *Session {
	if store == nil {
		store = NoopStore{}
	}
	return &Session{
		ingester:  ingester,
		generator: generator,
		renderer:  renderer,
		store:     store,
		log:       logger.WithComponent("session"),
	}
}

// State returns the current workflow state.
func (s *Session) State() State {
	return s.state
}

// Artifacts returns what the session has produced so far.
func (s *Session) Artifacts() models.Artifacts {
	return models.Artifacts{
		Corpus:      s.corpus,
		Summary:     s.summary,
		Explanation: s.explain,
		AudioPath:   s.audioPath,
	}
}

// FeedbackHistory returns the accumulated feedback entries in order.
func (s *Session) FeedbackHistory() []string {
	out := make([]string, len(s.feedback))
	copy(out, s.feedback)
	return out
}

// Language returns the display name selected for this session.
func (s *Session) Language() string {
	return s.lang
}

// ProcessDocuments runs the full workflow for a new document set. It resets
// the feedback history and all artifacts first, so a session can be reused
// across document sets. Generation failures do not return an error: the
// failed artifact is visible in Artifacts and synthesis is skipped.
func (s *Session) ProcessDocuments(ctx context.Context, paths []string, opts Options) error {
	if err := s.reset(opts); err != nil {
		return err
	}

	s.state = StateIngesting
	s.log.Info().
		Int("documents", len(paths)).
		Str("language", s.lang).
		Msg("Processing documents")

	corpus, err := s.ingester.Ingest(ctx, paths)
	if err != nil {
		s.state = StateIdle
		return err
	}
	s.corpus = corpus

	s.state = StateGenerating
	s.summary = s.generator.GenerateSummary(ctx, s.corpus, s.lang)
	s.explain = s.generator.GenerateExplanation(ctx, s.corpus, s.lang, nil, s.keywords)

	s.state = StateSynthesizing
	s.renderAudio(ctx)

	s.state = StateReady
	s.processed = true
	return nil
}

// SubmitFeedback appends feedback to the history and regenerates the
// explanation (and its audio) against the entire accumulated history. Blank
// feedback is a no-op; the returned bool reports whether a revision ran.
func (s *Session) SubmitFeedback(ctx context.Context, feedback string) (bool, error) {
	if !s.processed {
		return false, ErrNotReady
	}

	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		s.log.Info().Msg("Blank feedback ignored")
		return false, nil
	}

	s.feedback = append(s.feedback, feedback)
	s.state = StateRevising

	s.log.Info().
		Int("history_size", len(s.feedback)).
		Msg("Regenerating explanation with feedback")

	if err := s.store.SaveFeedback(s.userID, s.explain.Text, feedback, s.keywords); err != nil {
		s.log.Warn().Err(err).Msg("Failed to persist feedback")
	}

	s.explain = s.generator.GenerateExplanation(ctx, s.corpus, s.lang, s.feedback, s.keywords)
	s.renderAudio(ctx)

	s.state = StateReady
	return true, nil
}

// Close removes the audio temp artifact, if any.
func (s *Session) Close() error {
	return s.removeAudio()
}

// reset clears all per-request state and resolves the language selection.
func (s *Session) reset(opts Options) error {
	lang := opts.Language
	if lang == "" {
		lang = language.Default
	}
	code, err := language.Code(lang)
	if err != nil {
		return err
	}

	if err := s.removeAudio(); err != nil {
		s.log.Warn().Err(err).Msg("Failed to remove previous audio artifact")
	}

	s.state = StateIdle
	s.lang = lang
	s.langCode = code
	s.userID = opts.UserID
	s.corpus = ""
	s.summary = models.Result{}
	s.explain = models.Result{}
	s.feedback = nil
	s.processed = false

	s.keywords = opts.Keywords
	if len(s.keywords) == 0 {
		stored, err := s.store.UserKeywords(opts.UserID)
		if err != nil {
			s.log.Warn().Err(err).Msg("Failed to load user keywords")
		} else {
			s.keywords = stored
		}
	}

	return nil
}

// renderAudio replaces the audio artifact with a rendering of the current
// explanation. A failed explanation skips synthesis; a synthesis failure
// leaves the session without audio but otherwise intact.
func (s *Session) renderAudio(ctx context.Context) {
	if err := s.removeAudio(); err != nil {
		s.log.Warn().Err(err).Msg("Failed to remove previous audio artifact")
	}

	if s.explain.Failed() {
		s.log.Warn().Msg("Explanation generation failed, skipping speech synthesis")
		return
	}

	path, err := s.renderer.Render(ctx, s.explain.Text, s.langCode)
	if err != nil {
		s.log.Warn().Err(err).Msg("Continuing without audio")
		return
	}
	s.audioPath = path
}

func (s *Session) removeAudio() error {
	if s.audioPath == "" {
		return nil
	}
	path := s.audioPath
	s.audioPath = ""
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
