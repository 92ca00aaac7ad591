package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for the external model configuration.
const (
	DefaultModel       = "gemini-2.5-flash"
	DefaultTemperature = 0.4
	DefaultTimeout     = 120 * time.Second
)

// Config holds application configuration. Loaded once at startup and
// read-only thereafter.
type Config struct {
	Port             string
	Env              string
	CORSAllowOrigins []string

	LLMProvider   string // "gemini" or "openai"
	LLMModel      string
	GeminiAPIKey  string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	Temperature   float32
	ModelTimeout  time.Duration
}

// Load reads configuration from environment variables with sensible
// defaults. A local .env file is loaded first, best-effort.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	return Config{
		Port:             getEnv("PORT", "8080"),
		Env:              normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigins: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		LLMProvider:      normalizeProvider(getEnv("LLM_PROVIDER", "gemini")),
		LLMModel:         getEnv("LLM_MODEL", DefaultModel),
		GeminiAPIKey:     strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		OpenAIAPIKey:     strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIBaseURL:    strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		Temperature:      parseTemperature(os.Getenv("LLM_TEMPERATURE")),
		ModelTimeout:     parseTimeout(os.Getenv("LLM_TIMEOUT_SECONDS")),
	}
}

// APIKey returns the credential for the selected provider.
func (c Config) APIKey() string {
	if c.LLMProvider == "openai" {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai":
		return "openai"
	default:
		return "gemini"
	}
}

// parseTemperature accepts [0,1]; anything else falls back to the default.
func parseTemperature(raw string) float32 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultTemperature
	}
	parsed, err := strconv.ParseFloat(raw, 32)
	if err != nil || parsed < 0 || parsed > 1 {
		log.Printf("invalid LLM_TEMPERATURE %q, using default %v", raw, DefaultTemperature)
		return DefaultTemperature
	}
	return float32(parsed)
}

func parseTimeout(raw string) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultTimeout
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		log.Printf("invalid LLM_TIMEOUT_SECONDS %q, using default %v", raw, DefaultTimeout)
		return DefaultTimeout
	}
	return time.Duration(parsed) * time.Second
}
