package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/labelwise/eatability/internal/pacing"
	"gopkg.in/yaml.v3"
)

// Config holds everything the pipeline and the server need
type Config struct {
	Provider       string        `yaml:"provider"`
	Model          string        `yaml:"model"`
	MaxTokens      int           `yaml:"max_tokens"`
	Temperature    float64       `yaml:"temperature"`
	PacingDelay    time.Duration `yaml:"pacing_delay"`
	PacingMode     string        `yaml:"pacing_mode"`
	RequestTimeout time.Duration `yaml:"request_timeout"`

	OpenAIAPIKey  string `yaml:"openai_api_key"`
	OpenAIBaseURL string `yaml:"openai_base_url"`
	OllamaURL     string `yaml:"ollama_url"`
	GeminiAPIKey  string `yaml:"gemini_api_key"`

	UploadsDir string `yaml:"uploads_dir"`
	Port       string `yaml:"port"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Provider:       "openai",
		MaxTokens:      2000,
		Temperature:    0.1,
		PacingDelay:    time.Second,
		PacingMode:     pacing.ModeFixed,
		RequestTimeout: 120 * time.Second,
		OpenAIBaseURL:  "https://api.openai.com/v1",
		OllamaURL:      "http://localhost:11434",
		UploadsDir:     "uploads",
		Port:           "8888",
	}
}

// Load builds the configuration from defaults, the optional YAML file at path
// and finally the environment. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.Provider = strings.ToLower(getEnv("EATABILITY_PROVIDER", cfg.Provider))
	cfg.Model = getEnv("EATABILITY_MODEL", cfg.Model)
	cfg.MaxTokens = getIntEnv("EATABILITY_MAX_TOKENS", cfg.MaxTokens)
	cfg.Temperature = getFloatEnv("EATABILITY_TEMPERATURE", cfg.Temperature)
	cfg.PacingDelay = getDurationEnv("EATABILITY_PACING_DELAY", cfg.PacingDelay)
	cfg.PacingMode = strings.ToLower(getEnv("EATABILITY_PACING_MODE", cfg.PacingMode))
	cfg.RequestTimeout = getDurationEnv("EATABILITY_REQUEST_TIMEOUT", cfg.RequestTimeout)

	// OPENAI_APIKEY is the name the first version of the tool used
	cfg.OpenAIAPIKey = getEnv("OPENAI_APIKEY", getEnv("OPENAI_API_KEY", cfg.OpenAIAPIKey))
	cfg.OpenAIBaseURL = getEnv("OPENAI_BASE_URL", cfg.OpenAIBaseURL)
	cfg.OllamaURL = getEnv("OLLAMA_URL", getEnv("OLLAMA_HOST", cfg.OllamaURL))
	cfg.GeminiAPIKey = getEnv("GEMINI_API_KEY", cfg.GeminiAPIKey)

	cfg.UploadsDir = getEnv("EATABILITY_UPLOADS_DIR", cfg.UploadsDir)
	cfg.Port = getEnv("PORT", cfg.Port)

	if cfg.Model == "" {
		cfg.Model = DefaultModel(cfg.Provider)
	}

	return cfg, nil
}

// DefaultModel returns the model used for a provider when none is configured
func DefaultModel(provider string) string {
	switch provider {
	case "openai":
		return getEnv("OPENAI_MODEL", "gpt-4o")
	case "ollama":
		return getEnv("OLLAMA_MODEL", "llava")
	case "gemini":
		return getEnv("GEMINI_MODEL", "gemini-1.5-flash")
	default:
		return ""
	}
}

// Validate fails fast on settings that would make every request fail
func (c *Config) Validate() error {
	switch c.Provider {
	case "openai":
		if c.OpenAIAPIKey == "" {
			return errors.New("OPENAI_APIKEY (or OPENAI_API_KEY) environment variable not set")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY environment variable not set")
		}
	case "ollama":
	default:
		return fmt.Errorf("unsupported provider: %s", c.Provider)
	}

	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	if c.PacingDelay < 0 {
		return fmt.Errorf("pacing_delay must not be negative, got %s", c.PacingDelay)
	}
	switch c.PacingMode {
	case pacing.ModeFixed, pacing.ModeRate, "":
	default:
		return fmt.Errorf("unsupported pacing_mode: %s", c.PacingMode)
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv gets a duration environment variable or returns a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getIntEnv gets an integer environment variable or returns a default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
