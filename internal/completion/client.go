package completion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/labelwise/eatability/internal/images"
	"github.com/labelwise/eatability/internal/providers"
)

var (
	// ErrTransport wraps every network or service failure
	ErrTransport = errors.New("completion transport failure")
	// ErrEmptyResponse is returned when the service answers with no text
	ErrEmptyResponse = fmt.Errorf("%w: empty response", ErrTransport)
)

// DefaultMaxTokens bounds every completion unless configured otherwise
const DefaultMaxTokens = 2000

// Options configure a Client
type Options struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

// Client submits one prompt per call to a provider and returns its text
type Client struct {
	provider providers.Provider
	opts     Options
}

// NewClient wraps provider. Zero MaxTokens uses DefaultMaxTokens.
func NewClient(provider providers.Provider, opts Options) *Client {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	return &Client{provider: provider, opts: opts}
}

// Model returns the model identifier requests are sent to
func (c *Client) Model() string {
	return c.opts.Model
}

// ProviderName returns the backing provider's name
func (c *Client) ProviderName() string {
	return c.provider.Name()
}

// Complete sends prompt, with image when non-nil, and returns the response text
// with any surrounding code fence removed. There is no retry.
func (c *Client) Complete(ctx context.Context, prompt string, image *images.Encoded) (string, error) {
	config := providers.Config{
		Model:       c.opts.Model,
		Temperature: c.opts.Temperature,
		MaxTokens:   c.opts.MaxTokens,
		Prompt:      prompt,
		Image:       image,
		JSON:        WantsJSON(prompt),
	}

	slog.Debug("Sending completion request",
		"provider", c.provider.Name(),
		"model", c.opts.Model,
		"json", config.JSON,
		"image", image != nil,
		"prompt_length", len(prompt))

	text, err := c.provider.ExtractText(ctx, config)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrTransport, c.provider.Name(), err)
	}

	text = StripCodeFence(text)
	if text == "" {
		return "", ErrEmptyResponse
	}

	slog.Debug("Received completion", "provider", c.provider.Name(), "length", len(text))
	return text, nil
}

// WantsJSON reports whether the prompt asks for JSON output
func WantsJSON(prompt string) bool {
	return strings.Contains(strings.ToLower(prompt), "json")
}
