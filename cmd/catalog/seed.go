package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axd-platform/catalog"
	"github.com/axd-platform/catalog/internal/log"
)

func seedCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Reset the database and load the sample catalog",
		Long: `Drop every catalog table, recreate the schema and load the bundled
sample catalog. All existing data is lost.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}
			logger := log.NewLogger(cfg)

			client, err := catalog.New(clientOptions(cfg, logger)...)
			if err != nil {
				return fmt.Errorf("create catalog client: %w", err)
			}
			defer func() { _ = client.Close() }()

			result, err := client.Bootstrap.Seed(logger.WithContext(ctx))
			if err != nil {
				return fmt.Errorf("seed sample data: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "loaded %d services, %d assets, %d columns, %d lineage edges\n",
				result.Services, result.Assets, result.Columns, result.Lineage)
			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")

	return cmd
}
