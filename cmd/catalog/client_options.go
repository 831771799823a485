package main

import (
	"github.com/rs/zerolog"

	"github.com/axd-platform/catalog"
	"github.com/axd-platform/catalog/internal/config"
)

// clientOptions translates the application config into client options.
func clientOptions(cfg config.AppConfig, logger zerolog.Logger) []catalog.Option {
	opts := []catalog.Option{
		catalog.WithDatabaseURL(cfg.DBURL()),
		catalog.WithLogger(logger),
		catalog.WithPool(cfg.Pool()),
		catalog.WithMaskFreeText(cfg.MaskFreeText()),
	}
	if cfg.PreviewLimit() > 0 {
		opts = append(opts, catalog.WithPreviewLimit(cfg.PreviewLimit()))
	}
	return opts
}
