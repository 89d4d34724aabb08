package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"leader-dojo/core/config"
	"leader-dojo/core/database"
	"leader-dojo/core/storage"
	"leader-dojo/feature/importer"
	"leader-dojo/feature/tracker"

	"github.com/spf13/cobra"
)

var (
	exportToBucket bool
)

// exportCmd renders the store as a snapshot file or archived object.
var exportCmd = &cobra.Command{
	Use:   "export [snapshot-file]",
	Short: "Export the local store as a snapshot",
	Long: `Export all non-deleted entities as a snapshot document.

Writes the snapshot to the given file, to stdout when no file is given,
or to the configured archive bucket with --to-bucket.

Examples:
  # Export to a local file
  leader-dojo export snapshot.json

  # Export to the archive bucket (object name is derived from the time)
  leader-dojo export --to-bucket`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&exportToBucket, "to-bucket", false, "Upload the snapshot to the archive bucket")
	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to store: %w", err)
	}
	if err := tracker.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate store schema: %w", err)
	}

	ctx := context.Background()

	snap, err := importer.BuildSnapshot(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to build snapshot: %w", err)
	}
	payload, err := importer.MarshalSnapshot(snap)
	if err != nil {
		return fmt.Errorf("failed to render snapshot: %w", err)
	}

	if exportToBucket {
		if !cfg.Storage.Enabled {
			return fmt.Errorf("--to-bucket requires the snapshot archive to be enabled")
		}
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to archive: %w", err)
		}
		object := fmt.Sprintf("snapshots/%s.json", time.Now().UTC().Format("2006-01-02T15-04-05"))
		if err := importer.StoreArchive(ctx, client, cfg.Storage.Bucket, object, payload); err != nil {
			return fmt.Errorf("failed to archive snapshot: %w", err)
		}
		fmt.Println(object)
		return nil
	}

	if len(args) == 0 {
		_, err = os.Stdout.Write(payload)
		return err
	}
	return os.WriteFile(args[0], payload, 0o644)
}
