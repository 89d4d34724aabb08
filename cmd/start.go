package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"leader-dojo/core/config"
	"leader-dojo/core/database"
	"leader-dojo/core/loader"
	"leader-dojo/core/logger"
	"leader-dojo/core/middleware/auth"
	"leader-dojo/core/middleware/rayid"

	"leader-dojo/feature/importer"
	"leader-dojo/feature/tracker"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "leader-dojo/docs/swagger"
)

// @title Leader Dojo API
// @version 1.0
// @description API for the personal leadership tracker store.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the tracker server",
	Long:  `Starts the HTTP server, migrates the store and initializes all enabled features.`,
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

		// 3. Connect to the local store. The store is the whole point of
		// the service, so unlike optional integrations this is fatal.
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to store", zap.Error(err))
		}

		if err := tracker.Migrate(db); err != nil {
			logg.Fatal("Failed to migrate store schema", zap.Error(err))
		}

		// 4. One-time legacy cleanup. Runs on every boot; it is a no-op
		// once the store holds no deprecated entry kinds.
		removed, err := importer.CleanupLegacyEntries(context.Background(), db)
		if err != nil {
			logg.Fatal("Failed to clean up legacy entries", zap.Error(err))
		}
		if removed > 0 {
			logg.Info("Removed legacy daily_log entries", zap.Int64("count", removed))
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()

		// Register Features
		mgr.Register(tracker.NewFeature(db, logg, cfg.Server.ImportTimeout()))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Request logging (Zap + RayID)
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

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
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
