package analysis

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/labelwise/eatability/internal/pacing"
)

// Analyzer classifies ingredients one completion call at a time
type Analyzer struct {
	client Completer
	pacer  pacing.Pacer
}

// NewAnalyzer creates an Analyzer. The pacer is consulted before every call;
// nil means no pacing.
func NewAnalyzer(client Completer, pacer pacing.Pacer) *Analyzer {
	if pacer == nil {
		pacer = pacing.None{}
	}
	return &Analyzer{client: client, pacer: pacer}
}

type analysisResponse struct {
	Summary        string `json:"summary"`
	Classification string `json:"classification"`
	Details        string `json:"details"`
}

// Analyze returns the health record for a single ingredient
func (a *Analyzer) Analyze(ctx context.Context, ingredient Ingredient) (*IngredientAnalysis, error) {
	response, err := a.client.Complete(ctx, buildAnalysisPrompt(ingredient), nil)
	if err != nil {
		return nil, newStageError(StageAnalyze, ingredient, err)
	}

	var decoded analysisResponse
	if err := json.Unmarshal([]byte(response), &decoded); err != nil {
		return nil, newStageError(StageAnalyze, ingredient, malformed("%v", err))
	}
	if decoded.Summary == "" && decoded.Classification == "" && decoded.Details == "" {
		return nil, newStageError(StageAnalyze, ingredient, malformed("response has none of summary, classification, details"))
	}

	classification, ok := ParseClassification(decoded.Classification)
	if !ok {
		slog.Debug("Unrecognized classification kept verbatim", "ingredient", ingredient, "classification", decoded.Classification)
	}

	return &IngredientAnalysis{
		Ingredient:     ingredient,
		Summary:        decoded.Summary,
		Classification: classification,
		Details:        decoded.Details,
	}, nil
}

// AnalyzeAll analyzes ingredients sequentially, in order. Ingredients that
// fail are left out of the returned analyses and reported as failures.
// The error is non-nil only when ctx ends the loop early.
func (a *Analyzer) AnalyzeAll(ctx context.Context, ingredients []Ingredient) ([]IngredientAnalysis, []Failure, error) {
	analyses := make([]IngredientAnalysis, 0, len(ingredients))
	var failures []Failure

	for i, ingredient := range ingredients {
		if err := a.pacer.Wait(ctx); err != nil {
			return analyses, failures, err
		}

		slog.Info("Analyzing ingredient", "ingredient", ingredient, "progress", progress(i+1, len(ingredients)))
		analysis, err := a.Analyze(ctx, ingredient)
		if err != nil {
			if ctx.Err() != nil {
				return analyses, failures, ctx.Err()
			}
			slog.Warn("Failed to analyze ingredient", "ingredient", ingredient, "kind", KindOf(err), "error", err)
			failures = append(failures, failureFrom(err))
			continue
		}
		analyses = append(analyses, *analysis)
	}

	return analyses, failures, nil
}
