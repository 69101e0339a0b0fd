package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	OTel         OTelConfig
	LLM          LLMConfig
	ReportAPI    ReportAPIConfig
	Redis        RedisConfig
	Chat         ChatConfig
	Auth         AuthConfig
	Env          string
	Port         string
	DashboardURL string
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

type LLMConfig struct {
	APIKey      string
	BaseURL     string // Optional: for custom endpoints
	Model       string
	MaxTokens   int
	Temperature float64 // Assistant replies only; the classifier is deterministic
}

// ReportAPIConfig points at the external report storage backend.
// Reports are never persisted locally; this service only submits and proxies.
type ReportAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type RedisConfig struct {
	URL      string
	CacheTTL time.Duration
}

// ChatConfig tunes the conversational intake flow.
type ChatConfig struct {
	TypingDelay time.Duration // pause before each assistant reply
	ResetDelay  time.Duration // wait after completion before the conversation restarts
	IdleTTL     time.Duration // idle conversations are evicted after this
}

type AuthConfig struct {
	// JWTSecret verifies identity tokens minted by the auth collaborator.
	// Empty means every request is treated as anonymous.
	JWTSecret string
}

// Load loads configuration from environment variables.
// In development it reads a local .env file first.
func Load() (Config, error) {
	if getEnv("SPEAKUP_ENV", "development") == "development" {
		_ = godotenv.Load(".env")
	}

	cfg := Config{
		Env:          getEnv("SPEAKUP_ENV", "development"),
		Port:         getEnv("PORT", "8080"),
		DashboardURL: getEnv("DASHBOARD_URL", "http://localhost:3000"),
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "speakup-intake"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
		},
		LLM: LLMConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", ""),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			MaxTokens:   getEnvInt("OPENAI_MAX_TOKENS", 1000),
			Temperature: getEnvFloat("ASSISTANT_TEMPERATURE", 0.7),
		},
		ReportAPI: ReportAPIConfig{
			BaseURL: getEnv("REPORT_API_BASE_URL", "https://speakup-api-v2.onrender.com"),
			Timeout: getEnvDuration("REPORT_API_TIMEOUT", 15*time.Second),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379/0"),
			CacheTTL: getEnvDuration("REPORT_CACHE_TTL", 30*time.Second),
		},
		Chat: ChatConfig{
			TypingDelay: getEnvDuration("CHAT_TYPING_DELAY", 1200*time.Millisecond),
			ResetDelay:  getEnvDuration("CHAT_RESET_DELAY", 15*time.Second),
			IdleTTL:     getEnvDuration("CHAT_IDLE_TTL", 30*time.Minute),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("AUTH_JWT_SECRET", ""),
		},
	}

	if cfg.LLM.APIKey == "" {
		return Config{}, fmt.Errorf("OPENAI_API_KEY is required")
	}

	if cfg.ReportAPI.BaseURL == "" {
		return Config{}, fmt.Errorf("REPORT_API_BASE_URL is required")
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func (c AuthConfig) Enabled() bool {
	return c.JWTSecret != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
