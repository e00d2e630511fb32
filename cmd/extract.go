package cmd

import (
	"fmt"

	"github.com/labelwise/eatability/internal/analysis"
	"github.com/labelwise/eatability/internal/completion"
	"github.com/labelwise/eatability/internal/report"
	"github.com/spf13/cobra"
)

func newExtractCmd(root *rootOptions) *cobra.Command {
	var (
		provider string
		model    string
	)

	cmd := &cobra.Command{
		Use:   "extract IMAGE",
		Short: "Print the ingredient list found in IMAGE",
		Long: `Runs only the extraction step: the label photo is sent to the model and
the ingredients are printed in label order. No per-ingredient analysis is done.`,
		Example: `  eatability extract label.jpg --provider gemini`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(provider, model)
			if err != nil {
				return err
			}

			client, err := completion.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			ingredients, err := analysis.NewExtractor(client).Extract(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(ingredients) == 0 {
				return fmt.Errorf("no ingredients found in %s", args[0])
			}

			report.WriteIngredients(cmd.OutOrStdout(), ingredients)
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "LLM provider: openai, ollama or gemini (default from config)")
	cmd.Flags().StringVar(&model, "model", "", "Model to use (default depends on provider)")

	return cmd
}
