package config

import (
	"os"
	"strconv"

	"docvoice/internal/logger"
)

// Config holds all runtime configuration loaded from the environment.
//
// Generation and synthesis credentials are deliberately optional: a missing
// key degrades the matching service to a descriptive failure at call time
// instead of aborting startup, so text extraction keeps working without any
// cloud account.
type Config struct {
	// Text generation
	LLMProvider  string // "gemini" or "openai"
	GeminiAPIKey string
	GeminiAPIURL string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string

	// OCR fallback for image-only pages
	OCRBackend            string // "vision", "documentai", or "none"
	GoogleCloudProject    string
	GoogleCloudLocation   string
	DocumentAIProcessorID string

	// Speech synthesis
	TTSEndpoint string
	TTSChunkLen int

	// Defaults for the workflow
	DefaultLanguage string

	// Logging
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() *Config {
	return &Config{
		LLMProvider:  getEnv("LLM_PROVIDER", "gemini"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiAPIURL: getEnv("GEMINI_API_URL", "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash-latest:generateContent"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash-latest"),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		OCRBackend:            getEnv("OCR_BACKEND", "vision"),
		GoogleCloudProject:    getEnv("GOOGLE_CLOUD_PROJECT", ""),
		GoogleCloudLocation:   getEnv("GOOGLE_CLOUD_LOCATION", "us"),
		DocumentAIProcessorID: getEnv("DOCUMENT_AI_PROCESSOR_ID", ""),

		TTSEndpoint: getEnv("TTS_ENDPOINT", "https://translate.google.com/translate_tts"),
		TTSChunkLen: getIntEnv("TTS_CHUNK_LEN", 200),

		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "English"),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
		LogTimeFormat: getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:     getEnv("LOG_OUTPUT", "stderr"),
	}
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
