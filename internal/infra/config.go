package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment
// variables. It is read once at startup and never mutated; components receive
// it at construction so the pipeline stays testable with stub providers.
type Config struct {
	AppEnv  string
	AppName string
	Port    string

	GeminiAPIKey      string
	GeminiModel       string
	GeminiVisionModel string
	GeminiBaseURL     string

	HeyGenAPIKey    string
	HeyGenBaseURL   string
	DefaultAvatarID string
	DefaultVoiceID  string

	HighUrgencyThreshold int

	DatabaseURL string
	GeoIPDBPath string

	SpacesAccessKey string
	SpacesSecretKey string
	SpacesRegion    string
	SpacesBucket    string
	SpacesEndpoint  string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
	AllowedOrigins   []string
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. GEMINI_API_KEY is the only hard requirement; video,
// storage and database features stay disabled when their settings are absent.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:  getEnv("APP_ENV", "development"),
		AppName: getEnv("APP_NAME", "EmotiCare Support API"),
		Port:    getEnv("PORT", "8090"),

		GeminiAPIKey:      strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemma-3-27b-it"),
		GeminiVisionModel: getEnv("GEMINI_VISION_MODEL", "gemini-1.5-flash"),
		GeminiBaseURL:     getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),

		HeyGenAPIKey:    strings.TrimSpace(os.Getenv("HEYGEN_API_KEY")),
		HeyGenBaseURL:   getEnv("HEYGEN_BASE_URL", "https://api.heygen.com"),
		DefaultAvatarID: getEnv("DEFAULT_AVATAR_ID", "Daisy-inskirt-20220818"),
		DefaultVoiceID:  getEnv("DEFAULT_VOICE_ID", "2d5b0e6cf36f460aa7fc47e3eee4ba54"),

		HighUrgencyThreshold: getEnvInt("HIGH_URGENCY_THRESHOLD", 4),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		GeoIPDBPath: os.Getenv("GEOIP_DB_PATH"),

		SpacesAccessKey: os.Getenv("S3_ACCESS_KEY"),
		SpacesSecretKey: os.Getenv("S3_SECRET_KEY"),
		SpacesRegion:    getEnv("S3_REGION", "nyc3"),
		SpacesBucket:    os.Getenv("S3_BUCKET_NAME"),
		SpacesEndpoint:  getEnv("S3_ENDPOINT", "https://nyc3.digitaloceanspaces.com"),

		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 60)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		AllowedOrigins:   splitCSV(getEnv("ALLOWED_ORIGINS", "*")),
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	if cfg.HighUrgencyThreshold < 1 || cfg.HighUrgencyThreshold > 5 {
		return nil, fmt.Errorf("HIGH_URGENCY_THRESHOLD must be between 1 and 5")
	}

	return cfg, nil
}

// VideoEnabled reports whether the HeyGen integration is configured.
func (c *Config) VideoEnabled() bool {
	return c.HeyGenAPIKey != ""
}

// StorageEnabled reports whether the object-storage archive is configured.
func (c *Config) StorageEnabled() bool {
	return c.SpacesAccessKey != "" && c.SpacesSecretKey != "" && c.SpacesBucket != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i
		}
	}
	return fallback
}

func splitCSV(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
