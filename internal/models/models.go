package models

import (
	"time"

	"github.com/labelwise/eatability/internal/analysis"
)

// AnalysisSession represents one label image analyzed through the web interface
type AnalysisSession struct {
	ID        string           `json:"id"`
	Image     ImageItem        `json:"image"`
	Provider  string           `json:"provider,omitempty"`
	Model     string           `json:"model,omitempty"`
	Result    *analysis.Result `json:"result,omitempty"`
	Error     string           `json:"error,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// ImageItem represents an uploaded label image
type ImageItem struct {
	ImagePath   string `json:"image_path"`
	ImageURL    string `json:"image_url"`
	SourceURL   string `json:"source_url,omitempty"`
	ImageWidth  int    `json:"image_width"`
	ImageHeight int    `json:"image_height"`
}
