// Package config loads application configuration from defaults, an optional
// YAML file, and environment variables, in increasing precedence. A .env file
// in the working directory is honored for the API key.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up when none is given explicitly.
const DefaultFile = "specask.yaml"

// Config holds all runtime settings.
type Config struct {
	SnapshotPath     string        `yaml:"snapshot_path"`
	EmbeddingModel   string        `yaml:"embedding_model"`
	EmbeddingBaseURL string        `yaml:"embedding_base_url"`
	ChatModel        string        `yaml:"chat_model"`
	ChatBaseURL      string        `yaml:"chat_base_url"`
	TopK             int           `yaml:"top_k"`
	UseAPI           bool          `yaml:"use_api"`
	RequestTimeout   time.Duration `yaml:"request_timeout"`
	LogLevel         string        `yaml:"log_level"`

	// APIKey comes from the environment only, never from the file.
	APIKey string `yaml:"-"`
}

// Load builds the configuration. path names a YAML file to overlay on the
// defaults; when empty, DefaultFile is used if present and skipped otherwise.
// Environment variables win over the file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		SnapshotPath:   "index.gob",
		EmbeddingModel: "text-embedding-3-small",
		ChatModel:      "deepseek-chat",
		ChatBaseURL:    "https://api.deepseek.com",
		TopK:           3,
		UseAPI:         false,
		RequestTimeout: 30 * time.Second,
		LogLevel:       "info",
	}

	explicit := path != ""
	if path == "" {
		path = DefaultFile
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg.SnapshotPath = getEnv("SNAPSHOT_PATH", cfg.SnapshotPath)
	cfg.EmbeddingModel = getEnv("EMBEDDING_MODEL", cfg.EmbeddingModel)
	cfg.EmbeddingBaseURL = getEnv("EMBEDDING_BASE_URL", cfg.EmbeddingBaseURL)
	cfg.ChatModel = getEnv("CHAT_MODEL", cfg.ChatModel)
	cfg.ChatBaseURL = getEnv("CHAT_BASE_URL", cfg.ChatBaseURL)
	cfg.TopK = getEnvAsInt("TOP_K", cfg.TopK)
	cfg.UseAPI = getEnvAsBool("USE_API", cfg.UseAPI)
	cfg.RequestTimeout = getEnvAsDuration("REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.APIKey = os.Getenv("OPENAI_API_KEY")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail deep inside the pipeline.
func (c *Config) Validate() error {
	if c.SnapshotPath == "" {
		return fmt.Errorf("config: snapshot path is required")
	}
	if c.TopK < 1 {
		return fmt.Errorf("config: top_k must be at least 1 (got %d)", c.TopK)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: request_timeout must be positive (got %s)", c.RequestTimeout)
	}
	if c.UseAPI && c.APIKey == "" {
		return fmt.Errorf("config: use_api is set but OPENAI_API_KEY is not")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
