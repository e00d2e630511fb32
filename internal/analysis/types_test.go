package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClassification(t *testing.T) {
	tests := []struct {
		input    string
		expected Classification
		ok       bool
	}{
		{"Positive", Positive, true},
		{" negative ", Negative, true},
		{"NEUTRAL", Neutral, true},
		{"Mixed/Controversial", Mixed, true},
		{"Controversial", Mixed, true},
		{"Mixed", Mixed, true},
		{"GRAS", GRAS, true},
		{"Generally Recognized As Safe (GRAS)", GRAS, true},
		{"generally recognized as safe", GRAS, true},
		{"Beneficial", Classification("Beneficial"), false},
		{"", Classification(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseClassification(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestPromptsAskForJSON(t *testing.T) {
	assert.Contains(t, buildExtractionPrompt(), "JSON")
	assert.Contains(t, buildAnalysisPrompt("Sugar"), "JSON")
	assert.Contains(t, buildAnalysisPrompt("Sugar"), `Ingredient: "Sugar"`)
	for _, c := range Classifications {
		assert.Contains(t, buildAnalysisPrompt("Sugar"), string(c))
	}

	summary := buildSummaryPrompt("[]", 2, 0)
	assert.Contains(t, summary, "JSON")
	assert.NotContains(t, summary, "could not be analyzed")
	assert.Contains(t, buildSummaryPrompt("[]", 2, 1), "1 further listed ingredient(s) could not be analyzed")
}
