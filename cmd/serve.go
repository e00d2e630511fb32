package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labelwise/eatability/internal/analysis"
	"github.com/labelwise/eatability/internal/completion"
	"github.com/labelwise/eatability/internal/config"
	"github.com/labelwise/eatability/internal/handlers"
	"github.com/labelwise/eatability/internal/pacing"
	"github.com/spf13/cobra"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start web server for label analysis",
		Long: `Starts the Eatability JSON API on the specified port.

Label photos can be uploaded (multipart field "file") or referenced by
URL, and every analysis is kept in memory as a session.`,
		Example: `  # Start server on default port 8888
  eatability serve

  # Start server on custom port
  eatability serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig("", "")
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			// All sessions share one pacer so concurrent uploads still respect the delay
			pacer, err := pacing.New(cfg.PacingMode, cfg.PacingDelay)
			if err != nil {
				return err
			}
			handler := handlers.New(newRunnerFactory(cfg, pacer), cfg.UploadsDir)

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/sessions", handler.HandleSessions)
			mux.HandleFunc("/api/sessions/", handler.HandleSessionDetail)
			mux.HandleFunc("/api/analyze", handler.HandleAnalyze)
			mux.HandleFunc("/uploads/", handler.HandleUploads)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + cfg.Port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Eatability API available", "addr", addr, "url", "http://localhost"+addr, "provider", cfg.Provider, "model", cfg.Model)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")

	return cmd
}

// newRunnerFactory builds a pipeline per request, honoring per-request
// provider and model overrides
func newRunnerFactory(base *config.Config, pacer pacing.Pacer) handlers.RunnerFactory {
	return func(provider, model string) (handlers.Runner, error) {
		cfg := *base
		applyOverrides(&cfg, provider, model)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}

		client, err := completion.NewFromConfig(&cfg)
		if err != nil {
			return nil, err
		}
		return analysis.NewPipeline(client, pacer), nil
	}
}
