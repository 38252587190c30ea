package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"nuscenes-devkit/core/loader"
	"nuscenes-devkit/core/logger"
	"nuscenes-devkit/core/metrics"
	"nuscenes-devkit/core/middleware/auth"
	"nuscenes-devkit/core/middleware/rayid"
	"nuscenes-devkit/core/nusc"
	"nuscenes-devkit/feature/integrity"
	"nuscenes-devkit/feature/tables"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "nuscenes-devkit/docs/swagger"
)

// @title nuScenes Devkit API
// @version 1.0
// @description Lookups, sequence views and integrity reports over a nuScenes dataset.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

var warmFlag bool

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HTTP server",
	Long:  `Starts the HTTP server and registers the table and integrity features. The dataset is loaded on the first request unless --warm is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Configuration and Logger
		cfg, logg, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 2. Metrics
		var m *metrics.Metrics
		var extra []nusc.Option
		if cfg.Metrics.Enabled {
			m = metrics.New()
			extra = append(extra, nusc.WithObserver(m))
		}

		// 3. Snapshot Cache
		opts, err := datasetOptions(cfg, logg, extra...)
		if err != nil {
			return err
		}
		cache := nusc.NewCache(cfg.Dataset.CacheTTL(), opts...)
		version, dataroot := cfg.Dataset.Version, cfg.DatasetRoot()
		logg = logg.With(zap.String("version", version))

		if warmFlag {
			if _, err := cache.Get(cmd.Context(), version, dataroot); err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}
		}

		// 4. Feature Loader
		mgr := loader.NewManager()
		mgr.Register(tables.NewFeature(cache, version, dataroot, logg))
		mgr.Register(integrity.NewFeature(cache, version, dataroot, logg))

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// RayID first so every log line carries it.
		app.Use(rayid.New())
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})
		if m != nil {
			app.Use(m.Middleware())
			app.Get(cfg.Metrics.Path, m.Handler())
		}

		// Swagger and metrics stay public.
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			return fmt.Errorf("failed to load features: %w", err)
		}

		// 5. Start Server
		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port), zap.String("dataroot", dataroot))
			errCh <- app.Listen(cfg.Server.Addr())
		}()

		// 6. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return fmt.Errorf("server failed: %w", err)
		case <-c:
		}
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
	startCmd.Flags().BoolVar(&warmFlag, "warm", false, "Load the dataset before accepting requests")
}
