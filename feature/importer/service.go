package importer

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service is the snapshot import engine. It is constructed once and
// passed to callers explicitly; there is no process-wide instance.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger

	// mu serializes imports from index load through the merge
	// transaction. The plan is built against the index, so a second
	// import racing past would plan creates for rows the first one is
	// about to insert and die on the unique external-id index.
	mu sync.Mutex
}

// NewService creates a new import service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Import ingests a raw snapshot payload and merges it into the local
// store: parse, resolve identities, fix the commit order, execute.
//
// The returned error is terminal — a *ParseError (nothing was written) or
// a *StorageError (the merge transaction was rolled back in full).
// Per-entity problems are not errors; they surface as skips and warnings
// in the report. A context deadline that fires during the merge behaves
// like a storage failure and rolls back.
func (s *Service) Import(ctx context.Context, raw []byte) (*Report, error) {
	snap, err := ParseSnapshot(raw)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := LoadIndex(ctx, s.db)
	if err != nil {
		return nil, &StorageError{Err: err}
	}

	plan := Resolve(snap, idx)
	Order(plan, idx)

	if err := Execute(ctx, s.db, plan, idx); err != nil {
		s.logger.Error("Snapshot import rolled back", zap.Error(err))
		return nil, &StorageError{Err: err}
	}

	report := BuildReport(plan)
	s.logger.Info("Snapshot imported",
		zap.Int("schema_version", snap.SchemaVersion),
		zap.Int("created", report.Created.Total()),
		zap.Int("updated", report.Updated.Total()),
		zap.Int("skipped", report.Skipped.Total()),
		zap.Int("warnings", len(report.Warnings)),
	)
	return report, nil
}
