package analysis

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labelwise/eatability/internal/pacing"
)

// Pipeline runs extraction, per-ingredient analysis and synthesis in order
type Pipeline struct {
	extractor   *Extractor
	analyzer    *Analyzer
	synthesizer *Synthesizer
	progress    io.Writer
}

// NewPipeline wires the three stages to one completion client. The pacer
// spaces out the per-ingredient calls.
func NewPipeline(client Completer, pacer pacing.Pacer) *Pipeline {
	return &Pipeline{
		extractor:   NewExtractor(client),
		analyzer:    NewAnalyzer(client, pacer),
		synthesizer: NewSynthesizer(client),
		progress:    io.Discard,
	}
}

// WithProgress makes Run print human-readable stage banners to w
func (p *Pipeline) WithProgress(w io.Writer) *Pipeline {
	if w == nil {
		w = io.Discard
	}
	p.progress = w
	return p
}

// Run analyzes the label image at imagePath. Stage failures do not abort the
// run: they shrink the result and are listed in Result.Failures. The error
// is non-nil only when ctx is cancelled.
func (p *Pipeline) Run(ctx context.Context, imagePath string) (*Result, error) {
	result := &Result{
		ID:          uuid.NewString(),
		ImagePath:   imagePath,
		Ingredients: []Ingredient{},
		Analyses:    []IngredientAnalysis{},
		StartedAt:   time.Now(),
	}
	defer func() { result.FinishedAt = time.Now() }()

	slog.Info("Starting analysis", "id", result.ID, "image", imagePath)

	// Step 1
	fmt.Fprintln(p.progress, "Step 1: Extracting ingredients from image...")
	ingredients, err := p.extractor.Extract(ctx, imagePath)
	if err != nil {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		slog.Error("Ingredient extraction failed", "kind", KindOf(err), "error", err)
		result.Failures = append(result.Failures, failureFrom(err))
	}
	if len(ingredients) == 0 {
		fmt.Fprintln(p.progress, "Could not extract any ingredients.")
		return result, nil
	}
	result.Ingredients = ingredients
	fmt.Fprintf(p.progress, "\nSuccessfully extracted %d ingredients.\n", len(ingredients))

	// Step 2
	fmt.Fprintln(p.progress, "\nStep 2: Analyzing each ingredient...")
	analyses, failures, err := p.analyzer.AnalyzeAll(ctx, ingredients)
	result.Analyses = analyses
	result.Failures = append(result.Failures, failures...)
	if err != nil {
		return result, err
	}
	for _, f := range failures {
		fmt.Fprintf(p.progress, "  - Skipped %q: %s\n", f.Ingredient, f.Kind)
	}
	if len(analyses) == 0 {
		fmt.Fprintln(p.progress, "No ingredient analyses were successful. Cannot generate summary.")
		return result, nil
	}

	// Step 3
	fmt.Fprintln(p.progress, "\nStep 3: Generating final summary and score...")
	report, err := p.synthesizer.Synthesize(ctx, analyses, len(ingredients)-len(analyses))
	if err != nil {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		slog.Error("Report synthesis failed", "kind", KindOf(err), "error", err)
		result.Failures = append(result.Failures, failureFrom(err))
		return result, nil
	}
	result.Report = report

	slog.Info("Analysis complete",
		"id", result.ID,
		"ingredients", len(result.Ingredients),
		"analyzed", len(result.Analyses),
		"score", report.Score)
	return result, nil
}

func progress(done, total int) string {
	return fmt.Sprintf("%d/%d", done, total)
}
