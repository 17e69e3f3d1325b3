package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIHost               string
	APIPort               string
	CORSOrigins           []string
	MaxConcurrentRequests int
	RequestTimeout        time.Duration

	SessionTTL           time.Duration
	SessionSweepInterval time.Duration

	LLMProvider    string
	LLMModel       string
	LLMMaxTokens   int
	LLMTemperature float64
	GeminiAPIKey   string
	GroqAPIKey     string
	OllamaBaseURL  string

	GoogleMapsAPIKey string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBSSLMode  string
	JWTSecret  string

	LogDir      string
	ProfilePath string
}

// LoadConfig reads .env (DOTENV_PATH overrides the location) and then the
// process environment. A missing .env file is not an error.
func LoadConfig() Config {
	_ = godotenv.Load(getEnv("DOTENV_PATH", ".env"))

	return Config{
		APIHost:               getEnv("API_HOST", "0.0.0.0"),
		APIPort:               getEnv("API_PORT", "8000"),
		CORSOrigins:           getListEnv("CORS_ORIGINS", []string{"*"}),
		MaxConcurrentRequests: getIntEnv("MAX_CONCURRENT_REQUESTS", 64),
		RequestTimeout:        getDurationEnv("REQUEST_TIMEOUT", 60*time.Second),

		SessionTTL:           getDurationEnv("SESSION_TTL", 30*time.Minute),
		SessionSweepInterval: getDurationEnv("SESSION_SWEEP_INTERVAL", 0),

		LLMProvider:    strings.ToLower(getEnv("LLM_PROVIDER", "gemini")),
		LLMModel:       getEnv("LLM_MODEL", ""),
		LLMMaxTokens:   getIntEnv("LLM_MAX_TOKENS", 200),
		LLMTemperature: getFloatEnv("LLM_TEMPERATURE", 1.0),
		GeminiAPIKey:   getEnv("API_KEY_GEMINI", ""),
		GroqAPIKey:     getEnv("API_KEY_GROQ", ""),
		OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434/api"),

		GoogleMapsAPIKey: getEnv("API_KEY_GOOGLE", ""),

		DBUser:     getEnv("DB_USER", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBHost:     getEnv("DB_HOST", ""),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", ""),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		JWTSecret:  getEnv("JWT_SECRET", ""),

		LogDir:      getEnv("LOG_DIR", "logs"),
		ProfilePath: getEnv("PROFILE_PATH", ""),
	}
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return c.APIHost + ":" + c.APIPort
}

// ArchiveEnabled reports whether a Postgres transcript archive is configured.
func (c Config) ArchiveEnabled() bool {
	return c.DBHost != ""
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return fallback
}

// getDurationEnv accepts Go durations ("90s") or a bare number of seconds.
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func getListEnv(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
