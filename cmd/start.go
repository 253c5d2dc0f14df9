package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"license-reconciler/core/config"
	"license-reconciler/core/loader"
	"license-reconciler/core/logger"
	"license-reconciler/core/middleware/auth"
	"license-reconciler/core/middleware/rayid"
	"license-reconciler/core/storage"

	"license-reconciler/feature/compare"
	"license-reconciler/feature/skumap"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// @title License Reconciler API
// @version 1.0
// @description API for reconciling PRE-EA and CSSM inventory exports.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the license reconciler server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to the run archive (optional)
		var store storage.Client
		if cfg.Storage.Enabled {
			client, err := storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Warn("Run archive connection failed, runs will not be persisted", zap.Error(err))
			} else if err := storage.EnsureBucket(context.Background(), client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
				logg.Warn("Run archive bucket unavailable, runs will not be persisted", zap.Error(err))
			} else {
				store = client
				logg.Info("Connected to run archive", zap.String("bucket", cfg.Storage.Bucket))
			}
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
			BodyLimit:             cfg.Server.BodyLimitBytes(),
		})

		// 5. Initialize Feature Loader
		mgr := loader.NewManager()

		// Register Features
		mgr.Register(compare.NewFeature(store, cfg.Storage.Bucket, logg, cfg.SKUMap.Path))
		mgr.Register(skumap.NewFeature(cfg.SKUMap.Path, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
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

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 6. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
