package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rubicr/thambi/internal/server"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Port = port
			}

			logger := newLogger(cfg)
			svc := buildService(cfg, flags.useMock, logger)

			if cfg.APIKey != "" {
				logger.Info("auth: API key required (X-API-Key header)")
			} else {
				logger.Info("auth: disabled (no api_key configured)")
			}

			addr := fmt.Sprintf(":%d", cfg.Port)
			srv := &http.Server{
				Addr: addr,
				Handler: server.SetupMux(svc, server.Options{
					APIKey:         cfg.APIKey,
					RequestTimeout: cfg.RequestTimeout + 30*time.Second,
					Logger:         logger,
				}),
				ReadHeaderTimeout: 10 * time.Second,
			}

			done := make(chan os.Signal, 1)
			signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

			errc := make(chan error, 1)
			go func() {
				logger.Info("thambi api listening", "addr", addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errc <- err
				}
			}()

			select {
			case err := <-errc:
				return fmt.Errorf("server: %w", err)
			case <-done:
			}
			logger.Info("shutting down...")

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			logger.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "override listen port")
	return cmd
}
