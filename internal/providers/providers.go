package providers

import (
	"context"

	"github.com/labelwise/eatability/internal/images"
)

// Config represents the configuration for an LLM provider
type Config struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Prompt      string
	// Image is optional
	Image *images.Encoded
	// JSON asks the provider for a JSON-only response envelope
	JSON bool
}

// Provider defines the interface for an LLM provider
type Provider interface {
	ExtractText(ctx context.Context, config Config) (string, error)
	Name() string
}
