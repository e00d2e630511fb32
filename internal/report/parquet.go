package report

import (
	"fmt"

	"github.com/labelwise/eatability/internal/analysis"
	"github.com/parquet-go/parquet-go"
)

// Row is one analyzed ingredient, flattened for columnar export. The report
// columns repeat on every row of a run.
type Row struct {
	RunID          string `parquet:"run_id"`
	ImagePath      string `parquet:"image_path"`
	Position       int    `parquet:"position"`
	Ingredient     string `parquet:"ingredient"`
	Classification string `parquet:"classification"`
	Summary        string `parquet:"summary"`
	Details        string `parquet:"details"`
	Score          int    `parquet:"eatability_score"`
	HasReport      bool   `parquet:"has_report"`
	OverallSummary string `parquet:"overall_summary"`
}

// Rows flattens a result. Position is the ingredient's index in the
// extracted list, so gaps show where analyses were dropped.
func Rows(result *analysis.Result) []Row {
	positions := make(map[analysis.Ingredient][]int, len(result.Ingredients))
	for i, ingredient := range result.Ingredients {
		positions[ingredient] = append(positions[ingredient], i+1)
	}

	rows := make([]Row, 0, len(result.Analyses))
	for _, a := range result.Analyses {
		position := 0
		if p := positions[a.Ingredient]; len(p) > 0 {
			position = p[0]
			positions[a.Ingredient] = p[1:]
		}

		row := Row{
			RunID:          result.ID,
			ImagePath:      result.ImagePath,
			Position:       position,
			Ingredient:     string(a.Ingredient),
			Classification: string(a.Classification),
			Summary:        a.Summary,
			Details:        a.Details,
		}
		if result.Report != nil {
			row.Score = result.Report.Score
			row.HasReport = true
			row.OverallSummary = result.Report.OverallSummary
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteParquet writes one row per analyzed ingredient to path
func WriteParquet(path string, result *analysis.Result) error {
	if err := parquet.WriteFile(path, Rows(result)); err != nil {
		return fmt.Errorf("failed to write parquet file: %w", err)
	}
	return nil
}
