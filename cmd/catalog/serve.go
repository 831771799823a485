package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/axd-platform/catalog"
	"github.com/axd-platform/catalog/infrastructure/api"
	"github.com/axd-platform/catalog/internal/config"
	"github.com/axd-platform/catalog/internal/log"
)

const shutdownTimeout = 15 * time.Second

func serveCmd() *cobra.Command {
	var (
		envFile string
		host    string
		port    int
		seed    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  HOST                         Server host to bind to (default: 0.0.0.0)
  PORT                         Server port to listen on (default: 8000)
  DB_URL                       Database URL (default: sqlite:///./axd_app.db)
  DB_MAX_OPEN_CONNS            Connection pool size (default: 10)
  DB_MAX_IDLE_CONNS            Idle connections kept open (default: 5)
  DB_CONN_MAX_LIFETIME_SECONDS Connection lifetime (default: 1800)
  LOG_LEVEL                    Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT                   Log format: pretty, json (default: pretty)
  API_KEYS                     Comma-separated keys accepted on mutating endpoints
  CORS_ALLOWED_ORIGINS         Comma-separated allowed origins (default: *)
  PRINCIPAL_HEADER             Header carrying the caller's user id (default: X-User-ID)
  MASK_FREE_TEXT               Also blank descriptions of masked assets (default: false)
  PREVIEW_LIMIT                Maximum sample rows per preview (default: 100)
  REQUEST_TIMEOUT_SECONDS      Per-request timeout (default: 60)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), envFile, host, port, seed)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8000)")
	cmd.Flags().BoolVar(&seed, "seed", false, "Reset the database and load sample data before serving")

	return cmd
}

func runServe(ctx context.Context, envFile, host string, port int, seed bool) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	cfg = applyServeOverrides(cfg, host, port)

	logger := log.NewLogger(cfg)
	logger.Info().Str("version", version).Object("config", cfg).Msg("starting catalog")

	client, err := catalog.New(clientOptions(cfg, logger)...)
	if err != nil {
		return fmt.Errorf("create catalog client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close catalog client")
		}
	}()

	if ctx == nil {
		ctx = context.Background()
	}
	if seed {
		if _, err := client.Bootstrap.Seed(logger.WithContext(ctx)); err != nil {
			return fmt.Errorf("seed sample data: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := api.NewAPIServer(client, cfg)

	go func() {
		<-ctx.Done()
		logger.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown error")
		}
	}()

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// applyServeOverrides applies command line flag overrides to the config.
func applyServeOverrides(cfg config.AppConfig, host string, port int) config.AppConfig {
	var opts []config.AppConfigOption

	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}

	return cfg.Apply(opts...)
}
