// Package speech renders explanation text to a spoken-audio artifact. The
// synthesis backend is the Google Translate text-to-speech endpoint, which
// accepts the same language codes the language table maps to.
package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"docvoice/internal/logger"
)

// Synthesizer converts text to audio bytes in the given language.
type Synthesizer interface {
	// Synthesize returns MP3 audio for text spoken in the language identified
	// by langCode. It fails for unsupported codes.
	Synthesize(ctx context.Context, text, langCode string) ([]byte, error)
}

// DefaultChunkLen is the maximum chunk length in runes per TTS request.
// The endpoint rejects long inputs, so text is split on whitespace and the
// resulting MP3 segments are concatenated.
const DefaultChunkLen = 200

// TranslateTTS synthesizes speech through the Google Translate TTS endpoint.
type TranslateTTS struct {
	endpoint   string
	chunkLen   int
	httpClient *http.Client
	log        zerolog.Logger
}

// NewTranslateTTS creates a synthesizer against endpoint. A zero chunkLen
// uses DefaultChunkLen.
func NewTranslateTTS(endpoint string, chunkLen int) *TranslateTTS {
	if chunkLen <= 0 {
		chunkLen = DefaultChunkLen
	}
	return &TranslateTTS{
		endpoint:   endpoint,
		chunkLen:   chunkLen,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		log:        logger.WithComponent("tts"),
	}
}

// Synthesize fetches MP3 audio for text in langCode, one request per chunk.
func (s *TranslateTTS) Synthesize(ctx context.Context, text, langCode string) ([]byte, error) {
	chunks := splitChunks(text, s.chunkLen)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("nothing to synthesize")
	}

	s.log.Info().
		Str("lang", langCode).
		Int("chunks", len(chunks)).
		Int("text_length", len(text)).
		Msg("Synthesizing speech")

	var audio []byte
	for i, chunk := range chunks {
		segment, err := s.fetchChunk(ctx, chunk, langCode)
		if err != nil {
			return nil, fmt.Errorf("synthesis failed at chunk %d/%d: %w", i+1, len(chunks), err)
		}
		// MP3 frames are self-delimiting, so segments concatenate cleanly.
		audio = append(audio, segment...)
	}

	return audio, nil
}

func (s *TranslateTTS) fetchChunk(ctx context.Context, chunk, langCode string) ([]byte, error) {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("client", "tw-ob")
	params.Set("tl", langCode)
	params.Set("q", chunk)

	req, err := http.NewRequestWithContext(ctx, "GET", s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TTS endpoint returned status %d for language %q", resp.StatusCode, langCode)
	}

	return io.ReadAll(resp.Body)
}

// splitChunks splits text into whitespace-separated chunks of at most maxLen
// runes. A single word longer than maxLen becomes its own chunk.
func splitChunks(text string, maxLen int) []string {
	var chunks []string
	var current strings.Builder
	currentLen := 0

	for _, word := range strings.Fields(text) {
		wordLen := len([]rune(word))
		if currentLen > 0 && currentLen+1+wordLen > maxLen {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
		if currentLen > 0 {
			current.WriteByte(' ')
			currentLen++
		}
		current.WriteString(word)
		currentLen += wordLen
	}
	if currentLen > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}
