package tracker

import (
	"context"
	"fmt"
	"time"

	"leader-dojo/core/database"
	"leader-dojo/feature/importer"
	"leader-dojo/feature/tracker/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles tracker operations: store reads for the UI surface and
// the import/export entry points.
type Service struct {
	db            *gorm.DB
	logger        *zap.Logger
	engine        *importer.Service
	importTimeout time.Duration
}

// NewService creates a new tracker service around an import engine.
func NewService(db *gorm.DB, logger *zap.Logger, engine *importer.Service, importTimeout time.Duration) *Service {
	return &Service{
		db:            db,
		logger:        logger,
		engine:        engine,
		importTimeout: importTimeout,
	}
}

// Migrate creates or updates the store schema for all entity kinds, then
// verifies the columns the import engine writes through raw updates.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrating store schema: %w", err)
	}
	return verifySchema(db)
}

// verifySchema checks that every entity table carries the identity
// columns the importer depends on. AutoMigrate normally guarantees this;
// the check catches stores created by an incompatible older build before
// an import can fail halfway into a transaction.
func verifySchema(db *gorm.DB) error {
	for _, table := range []string{"projects", "people", "entries", "commitments", "reflections"} {
		columns, err := database.GetTableColumns(db, table)
		if err != nil {
			return fmt.Errorf("inspecting table %s: %w", table, err)
		}
		found := map[string]bool{}
		for _, col := range columns {
			found[col.Field] = true
		}
		for _, required := range []string{"id", "external_id", "deleted_at"} {
			if !found[required] {
				return fmt.Errorf("table %s is missing column %s; the store predates this build", table, required)
			}
		}
	}
	return nil
}

// ImportSnapshot runs the import engine under the configured overall
// timeout. The engine treats a deadline firing mid-merge as a storage
// failure and rolls back.
func (s *Service) ImportSnapshot(ctx context.Context, raw []byte) (*importer.Report, error) {
	if s.importTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.importTimeout)
		defer cancel()
	}
	return s.engine.Import(ctx, raw)
}

// ExportSnapshot renders the current store as a snapshot payload.
func (s *Service) ExportSnapshot(ctx context.Context) ([]byte, error) {
	snap, err := importer.BuildSnapshot(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return importer.MarshalSnapshot(snap)
}

// ListProjects returns non-deleted projects, optionally filtered by status.
func (s *Service) ListProjects(ctx context.Context, status string) ([]models.Project, error) {
	q := s.db.WithContext(ctx).Order("created_at")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var projects []models.Project
	if err := q.Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// ListCommitments returns non-deleted commitments, optionally filtered by
// status and direction.
func (s *Service) ListCommitments(ctx context.Context, status, direction string) ([]models.Commitment, error) {
	q := s.db.WithContext(ctx).Order("due_date")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if direction != "" {
		q = q.Where("direction = ?", direction)
	}
	var commitments []models.Commitment
	if err := q.Find(&commitments).Error; err != nil {
		return nil, fmt.Errorf("listing commitments: %w", err)
	}
	return commitments, nil
}

// DeleteProject physically removes a project and everything it owns.
// This is the ownership cascade: entries (with their participant links),
// commitments, and reflections of the project go with it. People are
// referenced, not owned, and stay.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entryIDs []string
		if err := tx.Unscoped().Model(&models.Entry{}).
			Where("project_id = ?", id).
			Pluck("id", &entryIDs).Error; err != nil {
			return fmt.Errorf("listing project entries: %w", err)
		}
		if len(entryIDs) > 0 {
			if err := tx.Where("entry_id IN ?", entryIDs).
				Delete(&models.EntryParticipant{}).Error; err != nil {
				return fmt.Errorf("removing entry participants: %w", err)
			}
			if err := tx.Unscoped().Where("id IN ?", entryIDs).
				Delete(&models.Entry{}).Error; err != nil {
				return fmt.Errorf("removing entries: %w", err)
			}
		}

		if err := tx.Unscoped().Where("project_id = ?", id).
			Delete(&models.Commitment{}).Error; err != nil {
			return fmt.Errorf("removing commitments: %w", err)
		}
		if err := tx.Unscoped().Where("project_id = ?", id).
			Delete(&models.Reflection{}).Error; err != nil {
			return fmt.Errorf("removing reflections: %w", err)
		}

		res := tx.Unscoped().Where("id = ?", id).Delete(&models.Project{})
		if res.Error != nil {
			return fmt.Errorf("removing project: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
