package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAnalyses() []IngredientAnalysis {
	return []IngredientAnalysis{
		{Ingredient: "Sugar", Summary: "Sweetener.", Classification: Negative, Details: "Added sugar."},
		{Ingredient: "Water", Summary: "Water.", Classification: Neutral, Details: "Harmless."},
	}
}

func TestSynthesize(t *testing.T) {
	client := &fakeCompleter{summary: `{
		"eatability_score": 42,
		"score_reasoning": "Sugar is the first ingredient.",
		"positives": ["Short ingredient list"],
		"potential_issues": ["High in added sugar"],
		"overall_summary": "An occasional treat."
	}`}

	report, err := NewSynthesizer(client).Synthesize(context.Background(), sampleAnalyses(), 1)
	require.NoError(t, err)
	assert.Equal(t, 42, report.Score)
	assert.Equal(t, "Sugar is the first ingredient.", report.Reasoning)
	assert.Equal(t, []string{"Short ingredient list"}, report.Positives)
	assert.Equal(t, []string{"High in added sugar"}, report.PotentialIssues)
	assert.Equal(t, "An occasional treat.", report.OverallSummary)

	prompt := client.summaryPrompt()
	assert.Contains(t, prompt, `"ingredient": "Sugar"`)
	assert.Contains(t, prompt, `"ingredient": "Water"`)
	assert.Contains(t, prompt, "1 further listed ingredient(s)")
}

func TestSynthesizeNoAnalyses(t *testing.T) {
	client := &fakeCompleter{}

	_, err := NewSynthesizer(client).Synthesize(context.Background(), nil, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoInput))
	assert.Equal(t, KindInputMissing, KindOf(err))
	assert.Empty(t, client.calls, "no service call without input")
}

func TestSynthesizeMalformed(t *testing.T) {
	for _, response := range []string{
		"The product is fine.",
		`{"score_reasoning": "no score"}`,
		`{"eatability_score": "high"}`,
		`{"eatability_score": 50, "positives": 3}`,
	} {
		client := &fakeCompleter{summary: response}
		_, err := NewSynthesizer(client).Synthesize(context.Background(), sampleAnalyses(), 0)
		require.Error(t, err, response)
		assert.Equal(t, KindMalformed, KindOf(err), response)
	}
}

func TestSynthesizeTransport(t *testing.T) {
	client := &fakeCompleter{summaryErr: errServiceDown}
	_, err := NewSynthesizer(client).Synthesize(context.Background(), sampleAnalyses(), 0)
	require.Error(t, err)

	var se *StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StageSynthesize, se.Stage)
	assert.True(t, errors.Is(err, errServiceDown))
}

func TestDecodeScore(t *testing.T) {
	tests := []struct {
		raw      string
		expected int
	}{
		{`72`, 72},
		{`72.6`, 73},
		{`"65"`, 65},
		{`"80/100"`, 80},
		{`150`, 100},
		{`-5`, 0},
		{`0`, 0},
		{`100`, 100},
		{`100.4`, 100},
		{`1e20`, 100},
		{`"1e20"`, 100},
		{`-1e20`, 0},
		{`"-1e300"`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			score, err := decodeScore(json.RawMessage(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, score)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		})
	}
}

func TestDecodeScoreRejectsNonFinite(t *testing.T) {
	for _, raw := range []string{`"NaN"`, `"Inf"`, `"-Inf"`, `"+Inf"`, `"1e400"`, `null`, `"high"`, `true`} {
		t.Run(raw, func(t *testing.T) {
			_, err := decodeScore(json.RawMessage(raw))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed))
		})
	}
}

func TestDecodeStrings(t *testing.T) {
	tests := []struct {
		raw      string
		expected []string
	}{
		{``, []string{}},
		{`null`, []string{}},
		{`[]`, []string{}},
		{`["a", "b"]`, []string{"a", "b"}},
		{`"just one"`, []string{"just one"}},
		{`""`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := decodeStrings(json.RawMessage(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
