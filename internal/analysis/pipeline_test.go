package analysis

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLabel(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "label.jpg")
	require.NoError(t, os.WriteFile(path, []byte("\xff\xd8\xff\xe0 fake label"), 0644))
	return path
}

func sugarSaltWater() *fakeCompleter {
	return &fakeCompleter{
		extraction: `{"ingredients": ["Sugar", "Salt", "Water"]}`,
		analyses: map[string]string{
			"Sugar": analysisJSON("Negative"),
			"Salt":  analysisJSON("Neutral"),
			"Water": analysisJSON("Neutral"),
		},
		summary: `{"eatability_score": 55, "score_reasoning": "Mostly sugar.", "positives": [], "potential_issues": ["Sugar"], "overall_summary": "Meh."}`,
	}
}

func TestPipelineSugarSaltWater(t *testing.T) {
	client := sugarSaltWater()
	pacer := &countingPacer{client: client}
	var progress bytes.Buffer

	result, err := NewPipeline(client, pacer).WithProgress(&progress).Run(context.Background(), writeLabel(t))
	require.NoError(t, err)

	assert.Equal(t, []Ingredient{"Sugar", "Salt", "Water"}, result.Ingredients)

	prompts := client.analysisPrompts()
	require.Len(t, prompts, 3)
	assert.Contains(t, prompts[0], `Ingredient: "Sugar"`)
	assert.Contains(t, prompts[1], `Ingredient: "Salt"`)
	assert.Contains(t, prompts[2], `Ingredient: "Water"`)

	// One wait before each analysis call, none for extraction or synthesis
	assert.Equal(t, 3, pacer.waits)
	assert.Equal(t, []int{1, 2, 3}, pacer.seen)

	require.Len(t, result.Analyses, 3)
	assert.Empty(t, result.Failures)
	summary := client.summaryPrompt()
	for _, name := range []string{"Sugar", "Salt", "Water"} {
		assert.Contains(t, summary, `"ingredient": "`+name+`"`)
	}

	require.NotNil(t, result.Report)
	assert.GreaterOrEqual(t, result.Report.Score, 0)
	assert.LessOrEqual(t, result.Report.Score, 100)
	assert.Equal(t, 55, result.Report.Score)

	assert.NotEmpty(t, result.ID)
	assert.False(t, result.FinishedAt.Before(result.StartedAt))

	out := progress.String()
	assert.Contains(t, out, "Step 1: Extracting ingredients from image...")
	assert.Contains(t, out, "Successfully extracted 3 ingredients.")
	assert.Contains(t, out, "Step 3: Generating final summary and score...")
}

func TestPipelineOneAnalysisFails(t *testing.T) {
	client := sugarSaltWater()
	client.analyses["Salt"] = "not json at all"

	result, err := NewPipeline(client, nil).Run(context.Background(), writeLabel(t))
	require.NoError(t, err)

	assert.Len(t, result.Ingredients, 3)
	require.Len(t, result.Analyses, 2)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, Ingredient("Salt"), result.Failures[0].Ingredient)
	assert.Equal(t, "malformed", result.Failures[0].Kind)

	summary := client.summaryPrompt()
	assert.NotContains(t, summary, `"ingredient": "Salt"`)
	assert.Contains(t, summary, "1 further listed ingredient(s)")
	require.NotNil(t, result.Report)
}

func TestPipelineMissingImage(t *testing.T) {
	client := sugarSaltWater()
	var progress bytes.Buffer

	result, err := NewPipeline(client, nil).WithProgress(&progress).Run(context.Background(), filepath.Join(t.TempDir(), "nope.jpg"))
	require.NoError(t, err)

	assert.Empty(t, result.Ingredients)
	assert.Nil(t, result.Report)
	assert.Empty(t, client.calls)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, StageExtract, result.Failures[0].Stage)
	assert.Equal(t, "input_missing", result.Failures[0].Kind)
	assert.Contains(t, progress.String(), "Could not extract any ingredients.")
}

func TestPipelineNoListFound(t *testing.T) {
	client := sugarSaltWater()
	client.extraction = `{"message": "I cannot read this label"}`

	result, err := NewPipeline(client, nil).Run(context.Background(), writeLabel(t))
	require.NoError(t, err)
	assert.Empty(t, result.Ingredients)
	assert.Empty(t, result.Failures)
	assert.Len(t, client.calls, 1)
}

func TestPipelineAllAnalysesFail(t *testing.T) {
	client := sugarSaltWater()
	client.analyses = map[string]string{}

	result, err := NewPipeline(client, nil).Run(context.Background(), writeLabel(t))
	require.NoError(t, err)
	assert.Empty(t, result.Analyses)
	assert.Len(t, result.Failures, 3)
	assert.Nil(t, result.Report)
	assert.Empty(t, client.summaryPrompt(), "synthesis is skipped without analyses")
}

func TestPipelineSynthesisFails(t *testing.T) {
	client := sugarSaltWater()
	client.summary = "I think it is fine"

	result, err := NewPipeline(client, nil).Run(context.Background(), writeLabel(t))
	require.NoError(t, err)
	assert.Len(t, result.Analyses, 3)
	assert.Nil(t, result.Report)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, StageSynthesize, result.Failures[0].Stage)
}

func TestPipelineCancelled(t *testing.T) {
	client := sugarSaltWater()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPipeline(client, &countingPacer{}).Run(ctx, writeLabel(t))
	assert.ErrorIs(t, err, context.Canceled)
}
