package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/labelwise/eatability/internal/analysis"
)

// WriteIngredients prints a numbered ingredient list
func WriteIngredients(w io.Writer, ingredients []analysis.Ingredient) {
	fmt.Fprintln(w, "\n--- Extracted Ingredients ---")
	for i, ingredient := range ingredients {
		fmt.Fprintf(w, "%d. %s\n", i+1, ingredient)
	}
	fmt.Fprintln(w, "\n--------------------------")
}

// WriteText prints a human-readable report of a pipeline run
func WriteText(w io.Writer, result *analysis.Result) error {
	if len(result.Ingredients) == 0 {
		fmt.Fprintln(w, "\nCould not extract ingredients. Please check the image file and path.")
		return nil
	}

	WriteIngredients(w, result.Ingredients)

	fmt.Fprintln(w, "\nIngredient Analyses:")
	for i, a := range result.Analyses {
		fmt.Fprintf(w, "\n[%d] %s (%s)\n", i+1, a.Ingredient, a.Classification)
		if a.Summary != "" {
			fmt.Fprintf(w, "  Summary: %s\n", a.Summary)
		}
		if a.Details != "" {
			fmt.Fprintf(w, "  Details: %s\n", a.Details)
		}
	}

	if len(result.Failures) > 0 {
		fmt.Fprintln(w, "\nSkipped:")
		for _, f := range result.Failures {
			if f.Ingredient != "" {
				fmt.Fprintf(w, "  %s %q (%s): %s\n", f.Stage, f.Ingredient, f.Kind, f.Error)
			} else {
				fmt.Fprintf(w, "  %s (%s): %s\n", f.Stage, f.Kind, f.Error)
			}
		}
	}

	if result.Report == nil {
		fmt.Fprintln(w, "\nNo eatability report could be generated.")
		return nil
	}

	fmt.Fprintln(w, "\n\n--- FOOD PRODUCT ANALYSIS COMPLETE ---")
	if err := writeIndentedJSON(w, result.Report, "    "); err != nil {
		return err
	}
	fmt.Fprintln(w, "------------------------------------")
	return nil
}

// WriteJSON writes the full result as indented JSON
func WriteJSON(w io.Writer, result *analysis.Result) error {
	return writeIndentedJSON(w, result, "  ")
}

func writeIndentedJSON(w io.Writer, v any, indent string) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", indent)
	return encoder.Encode(v)
}
