package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/axd-platform/catalog"
	"github.com/axd-platform/catalog/domain/access"
	"github.com/axd-platform/catalog/internal/log"
	"github.com/axd-platform/catalog/internal/mcp"
)

func stdioCmd() *cobra.Command {
	var (
		envFile string
		userID  string
	)

	cmd := &cobra.Command{
		Use:   "stdio",
		Short: "Serve the catalog MCP tools on stdin/stdout",
		Long: `Serve the read-only catalog tools over the Model Context Protocol on
stdin/stdout. Assets are presented as the user given by --user; without it
sensitive asset names stay masked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}

			// stdout carries the protocol; logs go to stderr.
			logger := log.NewLoggerWithWriter(os.Stderr, cfg.LogFormat(), cfg.LogLevel())

			client, err := catalog.New(clientOptions(cfg, logger)...)
			if err != nil {
				return fmt.Errorf("create catalog client: %w", err)
			}
			defer func() { _ = client.Close() }()

			var opts []mcp.Option
			if userID != "" {
				opts = append(opts, mcp.WithPrincipal(access.NewPrincipal(userID, "", "")))
			}
			return mcp.NewServer(client.Assets, version, logger, opts...).ServeStdio()
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&userID, "user", "", "User id the tools act as")

	return cmd
}
