// Command thambi serves the rephrase API and offers a one-shot CLI for it.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rubicr/thambi/internal/adapter"
	"github.com/rubicr/thambi/internal/config"
	"github.com/rubicr/thambi/internal/metrics"
	"github.com/rubicr/thambi/internal/rephrase"
)

type globalFlags struct {
	configPath string
	envFile    string
	useMock    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:   "thambi",
		Short: "thambi rephrases text and extracts insights with Gemini",
		Long: `thambi forwards user text, optionally grounded in webpage context, to
Google Gemini and returns the answer as HTML.

Usage:
  thambi serve [flags]
  thambi rephrase <text> [flags]`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config.yaml")
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	root.PersistentFlags().BoolVar(&flags.useMock, "mock", false, "use mock adapter instead of Gemini")

	root.AddCommand(newServeCmd(&flags), newRephraseCmd(&flags))
	return root
}

// loadConfig resolves dotenv, YAML and environment configuration.
func loadConfig(flags *globalFlags) (config.Config, error) {
	if err := config.LoadDotEnv(flags.envFile); err != nil {
		return config.Config{}, err
	}
	return config.Load(flags.configPath)
}

func newLogger(cfg config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

// buildService creates the process-wide provider once. A missing credential
// is logged and leaves the service unconfigured instead of aborting.
func buildService(cfg config.Config, useMock bool, logger *slog.Logger, extra ...rephrase.Option) *rephrase.Service {
	opts := []rephrase.Option{
		rephrase.WithLogger(logger),
		rephrase.WithTimeout(cfg.RequestTimeout),
	}
	opts = append(opts, extra...)

	if useMock {
		logger.Info("mode: mock adapter enabled")
		metrics.ProviderConfigured.Set(1)
		return rephrase.New(&adapter.MockAdapter{Delay: 500 * time.Millisecond}, opts...)
	}

	if cfg.GeminiAPIKey == "" {
		logger.Error("GOOGLE_GEMINI_API environment variable is missing")
		metrics.ProviderConfigured.Set(0)
		return rephrase.New(nil, opts...)
	}

	gemini := &adapter.GeminiAdapter{
		BaseURL: cfg.GeminiBaseURL,
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		Client:  &http.Client{Timeout: cfg.RequestTimeout + 5*time.Second},
	}
	logger.Info("mode: gemini enabled", "model", cfg.GeminiModel)
	metrics.ProviderConfigured.Set(1)
	return rephrase.New(gemini, opts...)
}
