package analysis

import (
	"context"
	"strings"
	"time"

	"github.com/labelwise/eatability/internal/images"
)

// Completer sends one prompt, optionally with an image, and returns the
// response text. *completion.Client implements it.
type Completer interface {
	Complete(ctx context.Context, prompt string, image *images.Encoded) (string, error)
}

// Ingredient is one entry of a label's ingredient list
type Ingredient string

// Classification is the health profile of a single ingredient
type Classification string

const (
	Positive Classification = "Positive"
	Neutral  Classification = "Neutral"
	Mixed    Classification = "Mixed/Controversial"
	Negative Classification = "Negative"
	GRAS     Classification = "Generally Recognized As Safe (GRAS)"
)

// Classifications lists the known classes in the order the prompt offers them
var Classifications = []Classification{Positive, Neutral, Mixed, Negative, GRAS}

// ParseClassification maps the model's label onto a known Classification.
// Unknown labels are returned verbatim with ok == false.
func ParseClassification(s string) (Classification, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	switch {
	case norm == "positive":
		return Positive, true
	case norm == "neutral":
		return Neutral, true
	case norm == "negative":
		return Negative, true
	case strings.HasPrefix(norm, "mixed") || strings.HasPrefix(norm, "controversial"):
		return Mixed, true
	case norm == "gras" || strings.Contains(norm, "generally recognized") || strings.Contains(norm, "(gras)"):
		return GRAS, true
	}
	return Classification(strings.TrimSpace(s)), false
}

// IngredientAnalysis is the per-ingredient health record
type IngredientAnalysis struct {
	Ingredient     Ingredient     `json:"ingredient" yaml:"ingredient"`
	Summary        string         `json:"summary" yaml:"summary"`
	Classification Classification `json:"classification" yaml:"classification"`
	Details        string         `json:"details" yaml:"details"`
}

// EatabilityReport is the final product-level verdict
type EatabilityReport struct {
	Score           int      `json:"eatability_score" yaml:"eatability_score"`
	Reasoning       string   `json:"score_reasoning" yaml:"score_reasoning"`
	Positives       []string `json:"positives" yaml:"positives"`
	PotentialIssues []string `json:"potential_issues" yaml:"potential_issues"`
	OverallSummary  string   `json:"overall_summary" yaml:"overall_summary"`
}

// Result is everything a single pipeline run produced
type Result struct {
	ID          string               `json:"id" yaml:"id"`
	ImagePath   string               `json:"image_path" yaml:"image_path"`
	Ingredients []Ingredient         `json:"ingredients" yaml:"ingredients"`
	Analyses    []IngredientAnalysis `json:"analyses" yaml:"analyses"`
	Failures    []Failure            `json:"failures,omitempty" yaml:"failures,omitempty"`
	Report      *EatabilityReport    `json:"report,omitempty" yaml:"report,omitempty"`
	StartedAt   time.Time            `json:"started_at" yaml:"started_at"`
	FinishedAt  time.Time            `json:"finished_at" yaml:"finished_at"`
}
