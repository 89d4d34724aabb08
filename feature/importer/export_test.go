package importer

import (
	"context"
	"testing"

	"leader-dojo/feature/tracker/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestBuildSnapshot_RoundTripIsIdempotent(t *testing.T) {
	db := setupStoreDB(t, "export_roundtrip")
	svc := NewService(db, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Import(ctx, []byte(fullSnapshot))
	assert.NoError(t, err)

	snap, err := BuildSnapshot(ctx, db)
	assert.NoError(t, err)
	payload, err := MarshalSnapshot(snap)
	assert.NoError(t, err)

	// Importing a store's own export must change nothing.
	report, err := svc.Import(ctx, payload)
	assert.NoError(t, err)
	assert.Zero(t, report.Created.Total())
	assert.Equal(t, 5, report.Updated.Total())
	assert.Empty(t, report.Warnings)

	var projects int64
	assert.NoError(t, db.Model(&models.Project{}).Count(&projects).Error)
	assert.Equal(t, int64(1), projects)
}

func TestBuildSnapshot_PrefersExternalIDs(t *testing.T) {
	db := setupStoreDB(t, "export_ext_ids")
	svc := NewService(db, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Import(ctx, []byte(fullSnapshot))
	assert.NoError(t, err)

	snap, err := BuildSnapshot(ctx, db)
	assert.NoError(t, err)

	assert.Equal(t, ExtID("p1"), snap.Projects[0].ID, "the recorded external id travels onward")
	assert.Equal(t, ExtID("p1"), snap.Entries[0].ProjectID, "references use the same identifier scheme")
	assert.Equal(t, ExtID("e1"), snap.Commitments[0].SourceEntryID)
	assert.Equal(t, []ExtID{"per1"}, snap.Entries[0].ParticipantIDs)
}

func TestBuildSnapshot_FallsBackToLocalIDs(t *testing.T) {
	db := setupStoreDB(t, "export_local_ids")
	ctx := context.Background()

	// A locally created project has no external id.
	project := models.Project{ID: uuid.NewString(), Name: "Homegrown"}
	assert.NoError(t, db.Create(&project).Error)

	snap, err := BuildSnapshot(ctx, db)
	assert.NoError(t, err)
	assert.Equal(t, ExtID(project.ID), snap.Projects[0].ID)
}

func TestBuildSnapshot_ExcludesTombstones(t *testing.T) {
	db := setupStoreDB(t, "export_tombstones")
	ctx := context.Background()

	kept := models.Project{ID: uuid.NewString(), Name: "Kept"}
	gone := models.Project{ID: uuid.NewString(), Name: "Gone"}
	assert.NoError(t, db.Create(&kept).Error)
	assert.NoError(t, db.Create(&gone).Error)
	assert.NoError(t, db.Delete(&gone).Error)

	snap, err := BuildSnapshot(ctx, db)
	assert.NoError(t, err)
	assert.Len(t, snap.Projects, 1)
	assert.Equal(t, "Kept", snap.Projects[0].Name)
}

func TestBuildSnapshot_KeepsRefsToTombstonedParents(t *testing.T) {
	db := setupStoreDB(t, "export_tombstoned_parent")
	svc := NewService(db, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Import(ctx, []byte(fullSnapshot))
	assert.NoError(t, err)

	// Tombstone the project; its entry stays live and must keep
	// exporting a resolvable projectId.
	assert.NoError(t, db.Where("name = ?", "Atlas").Delete(&models.Project{}).Error)

	snap, err := BuildSnapshot(ctx, db)
	assert.NoError(t, err)
	assert.Empty(t, snap.Projects)
	assert.Len(t, snap.Entries, 1)
	assert.Equal(t, ExtID("p1"), snap.Entries[0].ProjectID)
	assert.Equal(t, ExtID("p1"), snap.Commitments[0].ProjectID)
}

func TestMarshalSnapshot_CarriesSchemaVersion(t *testing.T) {
	snap := &Snapshot{SchemaVersion: CurrentSchemaVersion}
	payload, err := MarshalSnapshot(snap)
	assert.NoError(t, err)

	parsed, err := ParseSnapshot(payload)
	assert.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, parsed.SchemaVersion)
}
