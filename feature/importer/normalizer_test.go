package importer

import (
	"context"
	"testing"

	"leader-dojo/feature/tracker/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCleanupLegacyEntries(t *testing.T) {
	db := setupStoreDB(t, "cleanup_legacy")
	ctx := context.Background()

	project := models.Project{ID: uuid.NewString(), Name: "Atlas"}
	assert.NoError(t, db.Create(&project).Error)

	person := models.Person{ID: uuid.NewString(), Name: "Sam"}
	assert.NoError(t, db.Create(&person).Error)

	legacy := models.Entry{
		ID:        uuid.NewString(),
		ProjectID: project.ID,
		Kind:      models.EntryKindDailyLog,
		Title:     "2023-11-02",
	}
	assert.NoError(t, db.Create(&legacy).Error)
	assert.NoError(t, db.Create(&models.EntryParticipant{EntryID: legacy.ID, PersonID: person.ID}).Error)

	keeper := models.Entry{
		ID:        uuid.NewString(),
		ProjectID: project.ID,
		Kind:      models.EntryKindMeeting,
		Title:     "Kickoff",
	}
	assert.NoError(t, db.Create(&keeper).Error)

	removed, err := CleanupLegacyEntries(ctx, db)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	var entries []models.Entry
	assert.NoError(t, db.Unscoped().Find(&entries).Error)
	assert.Len(t, entries, 1, "legacy entries are physically gone, not tombstoned")
	assert.Equal(t, keeper.ID, entries[0].ID)

	var links int64
	assert.NoError(t, db.Model(&models.EntryParticipant{}).Count(&links).Error)
	assert.Zero(t, links, "participant links of legacy entries go with them")
}

func TestCleanupLegacyEntries_Converges(t *testing.T) {
	db := setupStoreDB(t, "cleanup_converges")
	ctx := context.Background()

	project := models.Project{ID: uuid.NewString(), Name: "Atlas"}
	assert.NoError(t, db.Create(&project).Error)
	legacy := models.Entry{
		ID:        uuid.NewString(),
		ProjectID: project.ID,
		Kind:      models.EntryKindDailyLog,
		Title:     "2023-11-02",
	}
	assert.NoError(t, db.Create(&legacy).Error)

	removed, err := CleanupLegacyEntries(ctx, db)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	// Second run is a no-op.
	removed, err = CleanupLegacyEntries(ctx, db)
	assert.NoError(t, err)
	assert.Zero(t, removed)
}

func TestCleanupLegacyEntries_EmptyStore(t *testing.T) {
	db := setupStoreDB(t, "cleanup_empty")

	removed, err := CleanupLegacyEntries(context.Background(), db)
	assert.NoError(t, err)
	assert.Zero(t, removed)
}

func TestCleanupLegacyEntries_FindsTombstonedLegacy(t *testing.T) {
	db := setupStoreDB(t, "cleanup_tombstoned")
	ctx := context.Background()

	project := models.Project{ID: uuid.NewString(), Name: "Atlas"}
	assert.NoError(t, db.Create(&project).Error)
	legacy := models.Entry{
		ID:        uuid.NewString(),
		ProjectID: project.ID,
		Kind:      models.EntryKindDailyLog,
		Title:     "2023-11-02",
	}
	assert.NoError(t, db.Create(&legacy).Error)
	assert.NoError(t, db.Delete(&legacy).Error)

	removed, err := CleanupLegacyEntries(ctx, db)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), removed, "soft-deleted legacy entries are purged too")

	var all int64
	assert.NoError(t, db.Unscoped().Model(&models.Entry{}).Count(&all).Error)
	assert.Zero(t, all)
}
