package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	TextProviderOpenAI = "openai"
	TextProviderGemini = "gemini"

	StorageBackendLocal    = "local"
	StorageBackendSupabase = "supabase"
)

type Config struct {
	// App
	Environment string

	// Server
	APIHost          string
	APIPort          string
	CORSAllowOrigins []string
	AuthJWTSecret    string

	// Database
	DatabaseURL string

	// OpenAI
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	OpenAITextModel  string
	OpenAIImageModel string
	OpenAIImageSize  string
	UseOpenAI        bool

	// Text provider selection
	TextProvider    string
	GeminiAPIKey    string
	GeminiTextModel string

	// Storage
	StorageDir            string
	StorageBackend        string
	SupabaseURL           string
	SupabaseKey           string
	SupabaseStorageBucket string

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads an optional .env file and the process environment. The result is
// meant to be built once at startup and handed to every component.
func Load() (*Config, error) {
	cfg, err := Read()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Read is Load without validation, for tools that only need a subset such as
// DATABASE_URL.
func Read() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	useOpenAI, err := ParseBool(getEnv("USE_OPENAI", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid USE_OPENAI: %w", err)
	}

	cfg := &Config{
		Environment: getEnv("APP_ENV", "development"),

		APIHost:          getEnv("API_HOST", "127.0.0.1"),
		APIPort:          getEnv("API_PORT", "8000"),
		CORSAllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:8501")),
		AuthJWTSecret:    getEnv("AUTH_JWT_SECRET", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1/"),
		OpenAITextModel:  getEnv("OPENAI_TEXT_MODEL", "gpt-4.1-mini"),
		OpenAIImageModel: getEnv("OPENAI_IMAGE_MODEL", "gpt-image-1.5"),
		OpenAIImageSize:  getEnv("OPENAI_IMAGE_SIZE", "1024x1536"),
		UseOpenAI:        useOpenAI,

		TextProvider:    strings.ToLower(getEnv("TEXT_PROVIDER", TextProviderOpenAI)),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiTextModel: getEnv("GEMINI_TEXT_MODEL", "gemini-1.5-flash"),

		StorageDir:            getEnv("STORAGE_DIR", "storage"),
		StorageBackend:        strings.ToLower(getEnv("STORAGE_BACKEND", StorageBackendLocal)),
		SupabaseURL:           getEnv("SUPABASE_URL", ""),
		SupabaseKey:           getEnv("SUPABASE_KEY", ""),
		SupabaseStorageBucket: getEnv("SUPABASE_STORAGE_BUCKET", "cover-images"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "auto"),
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	switch c.TextProvider {
	case TextProviderOpenAI:
	case TextProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when TEXT_PROVIDER=gemini")
		}
	default:
		return fmt.Errorf("unsupported TEXT_PROVIDER %q", c.TextProvider)
	}
	switch c.StorageBackend {
	case StorageBackendLocal:
	case StorageBackendSupabase:
		if c.SupabaseURL == "" {
			return fmt.Errorf("SUPABASE_URL is required when STORAGE_BACKEND=supabase")
		}
		if c.SupabaseKey == "" {
			return fmt.Errorf("SUPABASE_KEY is required when STORAGE_BACKEND=supabase")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND %q", c.StorageBackend)
	}
	return nil
}

// Addr is the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.APIHost, c.APIPort)
}

// ParseBool accepts the usual on/off spellings used in env files and headers.
func ParseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "y", "on":
		return true, nil
	case "0", "false", "no", "n", "off", "":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", value)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
