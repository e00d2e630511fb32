package analysis

import (
	"fmt"
	"strings"
)

const extractionPrompt = `You are an expert data extraction assistant specializing in food labels.
Analyze the provided image of a food product's ingredients section.

INSTRUCTIONS:
1. Extract every single ingredient listed, in the order printed on the label.
2. Pay close attention to sub-ingredients listed in parentheses.
3. Do not include nutritional facts or allergy warnings (like "Contains: Wheat, Soy").
4. Provide the output as a single, flat JSON array of strings, one ingredient per string.
5. If you cannot find an ingredient list or the text is unreadable, return an empty JSON array: [].

Your output must be valid JSON. If a JSON object is required, put the array under the key "ingredients".`

func buildExtractionPrompt() string {
	return extractionPrompt
}

func buildAnalysisPrompt(ingredient Ingredient) string {
	labels := make([]string, len(Classifications))
	for i, c := range Classifications {
		labels[i] = fmt.Sprintf("%q", c)
	}

	return fmt.Sprintf(`You are a food scientist and nutritionist providing a concise, data-driven analysis of a single food ingredient.

Ingredient: %q

Based on your knowledge, provide an analysis in valid JSON format.

INSTRUCTIONS:
1. Summarize the ingredient's purpose and health effects in "summary".
2. Classify it as %s in "classification".
3. Briefly explain the classification in "details".

Example for "Rosemary Extract":
{"summary": "...", "classification": "Positive", "details": "..."}

Provide only the JSON object in your response.`, ingredient, strings.Join(labels, ", "))
}

func buildSummaryPrompt(analysesJSON string, analyzed, skipped int) string {
	var coverage string
	if skipped > 0 {
		coverage = fmt.Sprintf("\nNote: %d further listed ingredient(s) could not be analyzed and are not included below.\n", skipped)
	}

	return fmt.Sprintf(`You are an expert food product analyst. Given a JSON array of %d ingredient analyses, create a holistic "eatability" report.
The ingredients are listed in order of prevalence.
%s
INSTRUCTIONS:
1. Review all analyses in the JSON below.
2. Pay close attention to the order and classification of each ingredient.
3. Generate an "eatability_score" integer from 0 (do not eat) to 100 (exceptionally healthy).
4. Provide a "score_reasoning" to justify the score.
5. List the main "positives" and "potential_issues" as arrays of strings.
6. Write a final "overall_summary".

Your final output must be a single, valid JSON object with keys: "eatability_score", "score_reasoning", "positives", "potential_issues", "overall_summary".

Ingredient Data:
%s`, analyzed, coverage, analysesJSON)
}
