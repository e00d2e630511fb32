package report

import (
	"fmt"
	"io"

	"github.com/labelwise/eatability/internal/analysis"
	"gopkg.in/yaml.v3"
)

// WriteYAML writes the full result as YAML
func WriteYAML(w io.Writer, result *analysis.Result) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return encoder.Close()
}
