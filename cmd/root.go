package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/labelwise/eatability/internal/config"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "eatability",
		Short: "Food label analysis tool with LLM-powered ingredient scoring",
		Long: `Eatability reads the ingredient list off a photo of a food label,
classifies every ingredient for its health impact and scores the product
from 0 to 100.

It can run once from the command line or serve a small JSON API.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML config file")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")

	// Add subcommands
	cmd.AddCommand(newAnalyzeCmd(opts))
	cmd.AddCommand(newExtractCmd(opts))
	cmd.AddCommand(newServeCmd(opts))

	return cmd
}

// loadConfig reads the config file and environment, applies command line
// overrides and validates the result
func (o *rootOptions) loadConfig(provider, model string) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	applyOverrides(cfg, provider, model)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyOverrides(cfg *config.Config, provider, model string) {
	if provider != "" && provider != cfg.Provider {
		cfg.Provider = provider
		// The configured model belongs to the old provider
		cfg.Model = config.DefaultModel(provider)
	}
	if model != "" {
		cfg.Model = model
	}
}
