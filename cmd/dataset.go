package cmd

import (
	"context"
	"fmt"

	"nuscenes-devkit/core/config"
	"nuscenes-devkit/core/logger"
	"nuscenes-devkit/core/nusc"
	"nuscenes-devkit/core/storage"

	"go.uber.org/zap"
)

// setup loads the configuration and builds the application logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logg, nil
}

// datasetOptions returns the build options for cfg. A storage client is only
// created when the dataroot points at a bucket.
func datasetOptions(cfg *config.Config, logg *zap.Logger, extra ...nusc.Option) ([]nusc.Option, error) {
	opts := append(cfg.Dataset.Options(), nusc.WithLogger(logg))
	if cfg.UsesStorage() {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		opts = append(opts, nusc.WithStorage(client))
	}
	return append(opts, extra...), nil
}

// openTables builds a snapshot of the configured dataset.
func openTables(ctx context.Context, cfg *config.Config, logg *zap.Logger) (*nusc.Tables, error) {
	opts, err := datasetOptions(cfg, logg)
	if err != nil {
		return nil, err
	}
	return nusc.Open(ctx, cfg.Dataset.Version, cfg.DatasetRoot(), opts...)
}
