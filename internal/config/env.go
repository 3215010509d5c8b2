package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultMaxUploadBytes caps accepted audio uploads at 50 MB, enforced
// before any model invocation.
const DefaultMaxUploadBytes = 50 * 1024 * 1024

// APIKeys holds the engine credentials loaded from environment.
type APIKeys struct {
	OpenAI string
	Gemini string
}

// Config is the process-wide configuration resolved once at startup.
type Config struct {
	Host        string
	Port        string
	Environment string

	MaxUploadBytes    int64
	TranscribeWorkers int

	DiarizerEngine    string
	TranscriberEngine string
	TranslatorEngine  string
	EnginesConfigPath string

	WhisperServerURL  string
	PyannoteURL       string
	PyannoteAuthToken string

	DBDriver   string
	SQLitePath string
	PGHost     string
	PGPort     string
	PGUser     string
	PGPassword string
	PGDatabase string

	RedisAddr string
	CacheTTL  time.Duration

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	APIKeys APIKeys
}

// LoadEnv loads environment variables from a .env file if one exists.
// A missing file is not an error; system-wide environment still applies.
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}
	return nil
}

// GetAPIKeys retrieves and validates API keys from environment
// variables. Keys are optional; a malformed key fails fast.
func GetAPIKeys() (*APIKeys, error) {
	apiKeys := &APIKeys{
		OpenAI: strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		Gemini: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
	}

	if apiKeys.OpenAI != "" {
		if !strings.HasPrefix(apiKeys.OpenAI, "sk-") {
			return nil, fmt.Errorf("invalid OPENAI_API_KEY format: must start with 'sk-'")
		}
		if len(apiKeys.OpenAI) < 20 {
			return nil, fmt.Errorf("invalid OPENAI_API_KEY format: too short")
		}
	}

	if apiKeys.Gemini != "" {
		if !strings.HasPrefix(apiKeys.Gemini, "AIza") {
			return nil, fmt.Errorf("invalid GEMINI_API_KEY format: must start with 'AIza'")
		}
		if len(apiKeys.Gemini) < 30 {
			return nil, fmt.Errorf("invalid GEMINI_API_KEY format: too short")
		}
	}

	return apiKeys, nil
}

// Load resolves the full configuration from environment after LoadEnv.
func Load() (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	apiKeys, err := GetAPIKeys()
	if err != nil {
		return nil, fmt.Errorf("failed to get API keys: %w", err)
	}

	cfg := &Config{
		Host:        getEnvOrDefault("VOXI_HOST", "0.0.0.0"),
		Port:        getEnvOrDefault("VOXI_PORT", "8080"),
		Environment: getEnvOrDefault("VOXI_ENV", "development"),

		MaxUploadBytes:    getEnvInt64("VOXI_MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),
		TranscribeWorkers: int(getEnvInt64("VOXI_TRANSCRIBE_WORKERS", 4)),

		DiarizerEngine:    getEnvOrDefault("VOXI_DIARIZER", "energy"),
		TranscriberEngine: getEnvOrDefault("VOXI_TRANSCRIBER", "openai"),
		TranslatorEngine:  getEnvOrDefault("VOXI_TRANSLATOR", "openai"),
		EnginesConfigPath: os.Getenv("VOXI_ENGINES_CONFIG"),

		WhisperServerURL:  getEnvOrDefault("WHISPER_SERVER_URL", "http://localhost:8178"),
		PyannoteURL:       getEnvOrDefault("PYANNOTE_URL", "http://localhost:8001"),
		PyannoteAuthToken: os.Getenv("PYANNOTE_AUTH_TOKEN"),

		DBDriver:   getEnvOrDefault("DB_DRIVER", "sqlite"),
		SQLitePath: getEnvOrDefault("SQLITE_PATH", "data/voxi.db"),
		PGHost:     getEnvOrDefault("DB_HOST", "localhost"),
		PGPort:     getEnvOrDefault("DB_PORT", "5432"),
		PGUser:     getEnvOrDefault("DB_USER", "postgres"),
		PGPassword: os.Getenv("DB_PASSWORD"),
		PGDatabase: getEnvOrDefault("DB_NAME", "voxi"),

		RedisAddr: os.Getenv("REDIS_ADDR"),
		CacheTTL:  getEnvDuration("CACHE_TTL", 24*time.Hour),

		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: getEnvOrDefault("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getEnvOrDefault("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:    getEnvOrDefault("MINIO_BUCKET", "voxi-uploads"),
		MinioUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",

		APIKeys: *apiKeys,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want sqlite or postgres)", c.DBDriver)
	}
	if c.TranscriberEngine == "openai" && c.APIKeys.OpenAI == "" {
		return fmt.Errorf("VOXI_TRANSCRIBER=openai requires OPENAI_API_KEY")
	}
	if c.TranslatorEngine == "openai" && c.APIKeys.OpenAI == "" {
		return fmt.Errorf("VOXI_TRANSLATOR=openai requires OPENAI_API_KEY")
	}
	if c.TranslatorEngine == "gemini" && c.APIKeys.Gemini == "" {
		return fmt.Errorf("VOXI_TRANSLATOR=gemini requires GEMINI_API_KEY")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("VOXI_MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
