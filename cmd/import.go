package cmd

import (
	"context"
	"fmt"
	"os"

	"leader-dojo/core/config"
	"leader-dojo/core/database"
	"leader-dojo/core/logger"
	"leader-dojo/core/storage"
	"leader-dojo/feature/importer"
	"leader-dojo/feature/tracker"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	importFromBucket string
)

// importCmd merges a snapshot file (or archived snapshot) into the store.
var importCmd = &cobra.Command{
	Use:   "import [snapshot-file]",
	Short: "Import a snapshot into the local store",
	Long: `Import a snapshot document into the local store.

Reads the snapshot from the given file, or from the configured archive
bucket with --from-bucket.

Examples:
  # Import from a local file
  leader-dojo import snapshot.json

  # Import an archived snapshot by object name
  leader-dojo import --from-bucket snapshots/phone-2024-06-01.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFromBucket, "from-bucket", "", "Object name of an archived snapshot to import")
	RootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && importFromBucket == "" {
		return fmt.Errorf("a snapshot file or --from-bucket is required")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to store: %w", err)
	}
	if err := tracker.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate store schema: %w", err)
	}

	ctx := context.Background()
	if timeout := cfg.Server.ImportTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var raw []byte
	if importFromBucket != "" {
		if !cfg.Storage.Enabled {
			return fmt.Errorf("--from-bucket requires the snapshot archive to be enabled")
		}
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to archive: %w", err)
		}
		raw, err = importer.FetchArchive(ctx, client, cfg.Storage.Bucket, importFromBucket)
		if err != nil {
			return fmt.Errorf("failed to fetch archived snapshot: %w", err)
		}
	} else {
		raw, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read snapshot file: %w", err)
		}
	}

	engine := importer.NewService(db, l)
	report, err := engine.Import(ctx, raw)
	if err != nil {
		return err
	}

	printReport(l, report)
	return nil
}

// printReport logs the outcome of an import in a readable form.
func printReport(l *zap.Logger, report *importer.Report) {
	l.Info("Import finished",
		zap.Int("created", report.Created.Total()),
		zap.Int("updated", report.Updated.Total()),
		zap.Int("skipped", report.Skipped.Total()),
		zap.Int("warnings", len(report.Warnings)),
	)
	for _, w := range report.Warnings {
		l.Warn("Import warning", zap.String("detail", w))
	}
}
