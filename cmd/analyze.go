package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/labelwise/eatability/internal/analysis"
	"github.com/labelwise/eatability/internal/completion"
	"github.com/labelwise/eatability/internal/pacing"
	"github.com/labelwise/eatability/internal/report"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	var (
		provider string
		model    string
		delay    time.Duration
		format   string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "analyze IMAGE",
		Short: "Score the food label in IMAGE",
		Long: `Extracts the ingredient list from a label photo, analyzes every
ingredient and prints the final eatability report.

Ingredients whose analysis fails are skipped and listed at the end.`,
		Example: `  # Analyze a label with the default provider (OpenAI)
  eatability analyze label.jpg

  # Use a local Ollama model and print JSON
  eatability analyze label.jpg --provider ollama --model llava --format json

  # Save the full result as Parquet for later analysis
  eatability analyze label.jpg --output results/label.parquet`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(provider, model)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("delay") {
				cfg.PacingDelay = delay
			}

			client, err := completion.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			pacer, err := pacing.New(cfg.PacingMode, cfg.PacingDelay)
			if err != nil {
				return err
			}

			pipeline := analysis.NewPipeline(client, pacer)
			if format == "text" {
				pipeline.WithProgress(cmd.OutOrStdout())
			}

			slog.Info("Analyzing label", "image", args[0], "provider", client.ProviderName(), "model", client.Model())
			result, err := pipeline.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if output != "" {
				if err := report.Save(output, result); err != nil {
					return fmt.Errorf("failed to save results: %w", err)
				}
				slog.Info("Results saved", "path", output)
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				return report.WriteJSON(out, result)
			case "yaml":
				return report.WriteYAML(out, result)
			default:
				return report.WriteText(out, result)
			}
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "LLM provider: openai, ollama or gemini (default from config)")
	cmd.Flags().StringVar(&model, "model", "", "Model to use (default depends on provider)")
	cmd.Flags().DurationVar(&delay, "delay", time.Second, "Minimum spacing between ingredient analysis calls")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Also save the result to a file (.parquet, .yaml or .json)")

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		switch format {
		case "text", "json", "yaml":
		default:
			return fmt.Errorf("unsupported format: %s", format)
		}
		return nil
	}

	return cmd
}
