// Package main is the entry point for the catalog CLI.
//
//	@title						AXD Data Catalog API
//	@version					1.0
//	@description				Metadata catalog of data assets with permission-gated visibility
//	@host						localhost:8000
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	APIKeyAuth
//	@in							header
//	@name						X-API-KEY
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/axd-platform/catalog/internal/config"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "AXD data catalog server",
		Long:  `The AXD data catalog stores metadata about data assets and hides the names of sensitive assets from users without an active permission grant.`,
	}

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(seedCmd())
	cmd.AddCommand(stdioCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
