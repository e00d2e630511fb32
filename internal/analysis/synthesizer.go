package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// Synthesizer turns the ingredient analyses into one EatabilityReport
type Synthesizer struct {
	client Completer
}

// NewSynthesizer creates a Synthesizer using client
func NewSynthesizer(client Completer) *Synthesizer {
	return &Synthesizer{client: client}
}

type reportResponse struct {
	Score           json.RawMessage `json:"eatability_score"`
	Reasoning       string          `json:"score_reasoning"`
	Positives       json.RawMessage `json:"positives"`
	PotentialIssues json.RawMessage `json:"potential_issues"`
	OverallSummary  string          `json:"overall_summary"`
}

// Synthesize sends every analysis in one prompt and decodes the report.
// skipped is the number of extracted ingredients that have no analysis.
func (s *Synthesizer) Synthesize(ctx context.Context, analyses []IngredientAnalysis, skipped int) (*EatabilityReport, error) {
	if len(analyses) == 0 {
		return nil, newStageError(StageSynthesize, "", fmt.Errorf("%w: no ingredient analyses to summarize", ErrNoInput))
	}

	analysesJSON, err := json.MarshalIndent(analyses, "", "  ")
	if err != nil {
		return nil, newStageError(StageSynthesize, "", fmt.Errorf("failed to marshal analyses: %w", err))
	}

	response, err := s.client.Complete(ctx, buildSummaryPrompt(string(analysesJSON), len(analyses), skipped), nil)
	if err != nil {
		return nil, newStageError(StageSynthesize, "", err)
	}

	report, err := decodeReport(response)
	if err != nil {
		slog.Warn("Failed to decode the final summary JSON", "error", err, "raw_response", response)
		return nil, newStageError(StageSynthesize, "", err)
	}
	return report, nil
}

func decodeReport(response string) (*EatabilityReport, error) {
	var decoded reportResponse
	if err := json.Unmarshal([]byte(response), &decoded); err != nil {
		return nil, malformed("%v", err)
	}

	score, err := decodeScore(decoded.Score)
	if err != nil {
		return nil, err
	}
	positives, err := decodeStrings(decoded.Positives)
	if err != nil {
		return nil, malformed("positives: %v", err)
	}
	issues, err := decodeStrings(decoded.PotentialIssues)
	if err != nil {
		return nil, malformed("potential_issues: %v", err)
	}

	return &EatabilityReport{
		Score:           score,
		Reasoning:       decoded.Reasoning,
		Positives:       positives,
		PotentialIssues: issues,
		OverallSummary:  decoded.OverallSummary,
	}, nil
}

// decodeScore accepts a number or a numeric string ("72", "72/100"), rounds
// it and clamps it into [0, 100]. NaN and infinities are malformed.
func decodeScore(raw json.RawMessage) (int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, malformed("eatability_score missing")
	}

	var value float64
	if err := json.Unmarshal(raw, &value); err != nil {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, malformed("eatability_score: %s", raw)
		}
		text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "/100"))
		value, err = strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, malformed("eatability_score: %q is not a number", text)
		}
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, malformed("eatability_score: %v is not a finite number", value)
	}

	// Clamp before converting; out-of-range floats have no defined int value
	if value < 0 || value > 100 {
		clamped := min(max(value, 0), 100)
		slog.Warn("Eatability score out of range, clamping", "score", value, "clamped", clamped)
		value = clamped
	}
	return int(math.Round(value)), nil
}

// decodeStrings accepts an array of strings, a single string or null
func decodeStrings(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []string{}, nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var single string
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("expected a list of strings, got %s", raw)
	}
	if single == "" {
		return []string{}, nil
	}
	return []string{single}, nil
}
