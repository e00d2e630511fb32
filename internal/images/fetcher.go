package images

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// MaxImageBytes caps downloaded and uploaded label images
const MaxImageBytes = 10 * 1024 * 1024

// Fetcher downloads label images from remote URLs
type Fetcher struct {
	HTTPClient *http.Client
}

// NewFetcher creates a new image fetcher
func NewFetcher() *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Fetch downloads the image at imageURL
func (f *Fetcher) Fetch(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("image too large (max %d bytes)", MaxImageBytes)
	}

	slog.Debug("Downloaded image", "url", imageURL, "bytes", len(data))
	return data, nil
}
