package importer

import (
	"context"
	"fmt"

	"leader-dojo/feature/tracker/models"

	"gorm.io/gorm"
)

// CleanupLegacyEntries removes entries stored under the deprecated
// daily-log shape left behind by pre-1.0 clients. This is the one place
// in the system that performs a physical delete outside the project
// ownership cascade.
//
// It runs once at startup, before the server accepts requests, and is
// idempotent by construction: once no legacy entries remain, subsequent
// runs delete nothing and report zero.
func CleanupLegacyEntries(ctx context.Context, db *gorm.DB) (int64, error) {
	var removed int64

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Unscoped().
			Model(&models.Entry{}).
			Where("kind = ?", models.EntryKindDailyLog).
			Pluck("id", &ids).Error; err != nil {
			return fmt.Errorf("listing legacy entries: %w", err)
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Where("entry_id IN ?", ids).
			Delete(&models.EntryParticipant{}).Error; err != nil {
			return fmt.Errorf("removing legacy entry participants: %w", err)
		}

		res := tx.Unscoped().Where("id IN ?", ids).Delete(&models.Entry{})
		if res.Error != nil {
			return fmt.Errorf("removing legacy entries: %w", res.Error)
		}
		removed = res.RowsAffected
		return nil
	})

	return removed, err
}
