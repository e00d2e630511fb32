package completion

import (
	"fmt"
	"net/http"

	"github.com/labelwise/eatability/internal/config"
	"github.com/labelwise/eatability/internal/gemini"
	"github.com/labelwise/eatability/internal/ollama"
	"github.com/labelwise/eatability/internal/openai"
	"github.com/labelwise/eatability/internal/providers"
)

// NewProvider returns the backend named by cfg.Provider
func NewProvider(cfg *config.Config) (providers.Provider, error) {
	httpClient := &http.Client{Timeout: cfg.RequestTimeout}

	switch cfg.Provider {
	case "openai", "":
		return openai.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, httpClient), nil
	case "ollama":
		return ollama.New(cfg.OllamaURL, httpClient), nil
	case "gemini":
		return gemini.New(cfg.GeminiAPIKey), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}

// NewFromConfig builds the provider and wraps it in a Client
func NewFromConfig(cfg *config.Config) (*Client, error) {
	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	model := cfg.Model
	if model == "" {
		model = config.DefaultModel(cfg.Provider)
	}
	return NewClient(provider, Options{
		Model:       model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}), nil
}
