package analysis

import (
	"context"
	"log/slog"

	"github.com/labelwise/eatability/internal/images"
)

// Extractor reads the ingredient list off a label photo
type Extractor struct {
	client Completer
}

// NewExtractor creates an Extractor using client
func NewExtractor(client Completer) *Extractor {
	return &Extractor{client: client}
}

// Extract returns the label's ingredients in printed order. On any failure
// the list is empty and the error is a *StageError.
func (e *Extractor) Extract(ctx context.Context, imagePath string) ([]Ingredient, error) {
	image, err := images.Encode(imagePath)
	if err != nil {
		return nil, newStageError(StageExtract, "", err)
	}
	return e.ExtractEncoded(ctx, image)
}

// ExtractEncoded is Extract for an image that is already encoded
func (e *Extractor) ExtractEncoded(ctx context.Context, image images.Encoded) ([]Ingredient, error) {
	response, err := e.client.Complete(ctx, buildExtractionPrompt(), &image)
	if err != nil {
		return nil, newStageError(StageExtract, "", err)
	}

	parsed, err := ParseIngredientList(response)
	if err != nil {
		slog.Warn("Failed to decode ingredients JSON", "error", err, "raw_response", response)
		return nil, newStageError(StageExtract, "", err)
	}

	switch parsed.Kind {
	case ParsedWrapped:
		slog.Debug("Ingredient list was wrapped in an object", "key", parsed.Key)
	case ParsedUnrecognized:
		slog.Warn("No ingredient list found in response", "raw_response", response)
	}

	ingredients := make([]Ingredient, len(parsed.Items))
	for i, item := range parsed.Items {
		ingredients[i] = Ingredient(item)
	}
	return ingredients, nil
}
