package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/labelwise/eatability/internal/analysis"
)

// Save writes result to path, picking the format from the extension:
// .parquet, .yaml/.yml, anything else JSON.
func Save(path string, result *analysis.Result) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".parquet" {
		if err := WriteParquet(path, result); err != nil {
			return err
		}
		slog.Info("Saved result", "path", path, "format", "parquet")
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	format := "json"
	switch ext {
	case ".yaml", ".yml":
		format = "yaml"
		err = WriteYAML(file, result)
	default:
		err = WriteJSON(file, result)
	}
	if err != nil {
		return err
	}

	slog.Info("Saved result", "path", path, "format", format)
	return file.Close()
}
