package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"docvoice/internal/logger"
)

const (
	geminiMaxRetries = 3
	geminiRetryDelay = 5 * time.Second
)

// GeminiService calls the Gemini generateContent REST endpoint.
type GeminiService struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewGeminiService creates a Gemini-backed text service.
func NewGeminiService(apiURL, apiKey string) *GeminiService {
	return &GeminiService{
		apiURL:     apiURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		log:        logger.WithComponent("gemini"),
	}
}

// GenerateText sends one prompt, retrying transient failures.
func (s *GeminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= geminiMaxRetries; attempt++ {
		response, err := s.callGemini(ctx, prompt)
		if err == nil {
			return response, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", fmt.Errorf("gemini API call canceled: %w", lastErr)
		}

		if attempt < geminiMaxRetries {
			s.log.Warn().
				Int("attempt", attempt).
				Dur("retry_delay", geminiRetryDelay).
				Err(err).
				Msg("Gemini API call failed, retrying")
			time.Sleep(geminiRetryDelay)
		}
	}

	s.log.Error().
		Int("attempts", geminiMaxRetries).
		Err(lastErr).
		Msg("Error calling Gemini API after multiple attempts")
	return "", fmt.Errorf("failed to call Gemini API after %d attempts: %w", geminiMaxRetries, lastErr)
}

func (s *GeminiService) callGemini(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("%s?key=%s", s.apiURL, s.apiKey)

	payload := map[string]interface{}{
		"systemInstruction": map[string]interface{}{
			"parts": []map[string]string{
				{"text": "You are an expert educator who explains complex topics in simple terms."},
			},
		},
		"contents": []map[string]interface{}{
			{
				"role": "user",
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":      1.0,
			"maxOutputTokens":  8192,
			"responseMimeType": "text/plain",
		},
	}

	requestBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("error marshaling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("unexpected response format from Gemini API")
	}

	text := result.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", fmt.Errorf("text not found in Gemini API response")
	}

	return text, nil
}
