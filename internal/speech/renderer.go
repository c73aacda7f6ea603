package speech

import (
	"context"
	"os"
	"regexp"

	"github.com/rs/zerolog"

	"docvoice/internal/logger"
)

// markdownChars matches the literal emphasis characters stripped before
// synthesis. This is a character-class removal, not a markdown parser: other
// markup passes through unchanged.
var markdownChars = regexp.MustCompile("[*#_`~]+")

// Renderer turns explanation text into a spoken MP3 temp file.
type Renderer struct {
	synthesizer Synthesizer
	log         zerolog.Logger
}

// NewRenderer creates a renderer over the given synthesizer.
func NewRenderer(synthesizer Synthesizer) *Renderer {
	return &Renderer{
		synthesizer: synthesizer,
		log:         logger.WithComponent("speech"),
	}
}

// Render strips markdown emphasis characters from text, synthesizes it in
// langCode, and writes the audio to a temp file, returning its path. The
// caller owns the file and is responsible for deleting it.
func (r *Renderer) Render(ctx context.Context, text, langCode string) (string, error) {
	clean := StripMarkdown(text)

	audio, err := r.synthesizer.Synthesize(ctx, clean, langCode)
	if err != nil {
		r.log.Error().
			Err(err).
			Str("lang", langCode).
			Msg("Speech synthesis failed")
		return "", err
	}

	file, err := os.CreateTemp("", "docvoice_tts_*.mp3")
	if err != nil {
		return "", err
	}

	if _, err := file.Write(audio); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", err
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", err
	}

	r.log.Info().
		Str("lang", langCode).
		Str("path", file.Name()).
		Int("bytes", len(audio)).
		Msg("Audio artifact written")

	return file.Name(), nil
}

// StripMarkdown removes the literal characters * # _ ` ~ for cleaner speech.
func StripMarkdown(text string) string {
	return markdownChars.ReplaceAllString(text, "")
}
