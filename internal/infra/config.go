package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv           string
	Port             string
	DatabaseURL      string
	JWTSecret        string
	TokenTTL         time.Duration
	StorageDir       string
	StorageBaseURL   string
	GeoIPDBPath      string
	CORSOrigins      []string
	GroqAPIKey       string
	GroqBaseURL      string
	GroqPromptModel  string
	GroqDNAModel     string
	GroqVisionModel  string
	DiffusionBaseURL string
	DiffusionLoRA    string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8000"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		TokenTTL:         24 * time.Hour * time.Duration(getEnvInt("TOKEN_TTL_DAYS", 30)),
		StorageDir:       getEnv("STORAGE_DIR", "storage"),
		StorageBaseURL:   getEnv("STORAGE_BASE_URL", "/storage"),
		GeoIPDBPath:      os.Getenv("GEOIP_DB_PATH"),
		CORSOrigins:      splitCSV(getEnv("CORS_ORIGINS", "*")),
		GroqAPIKey:       os.Getenv("GROQ_API_KEY"),
		GroqBaseURL:      getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqPromptModel:  getEnv("GROQ_PROMPT_MODEL", "meta-llama/llama-4-maverick-17b-128e-instruct"),
		GroqDNAModel:     getEnv("GROQ_DNA_MODEL", "llama-3.3-70b-versatile"),
		GroqVisionModel:  getEnv("GROQ_VISION_MODEL", "meta-llama/llama-4-maverick-17b-128e-instruct"),
		DiffusionBaseURL: getEnv("DIFFUSION_BASE_URL", "http://localhost:7860"),
		DiffusionLoRA:    getEnv("DIFFUSION_LORA", "jewelry"),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 360)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
