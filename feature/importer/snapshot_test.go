package importer

import (
	"testing"

	"leader-dojo/feature/tracker/models"

	"github.com/stretchr/testify/assert"
)

func TestParseSnapshot_InvalidJSON(t *testing.T) {
	_, err := ParseSnapshot([]byte(`{"schemaVersion": 2,`))

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestParseSnapshot_MissingSchemaVersion(t *testing.T) {
	_, err := ParseSnapshot([]byte(`{"projects": []}`))

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Contains(t, err.Error(), "schemaVersion")
}

func TestParseSnapshot_VersionBounds(t *testing.T) {
	_, err := ParseSnapshot([]byte(`{"schemaVersion": 0}`))
	assert.Error(t, err, "version below 1 must be rejected")

	_, err = ParseSnapshot([]byte(`{"schemaVersion": 3}`))
	assert.Error(t, err, "version newer than supported must be rejected")

	snap, err := ParseSnapshot([]byte(`{"schemaVersion": 1}`))
	assert.NoError(t, err)
	assert.Equal(t, 1, snap.SchemaVersion)

	snap, err = ParseSnapshot([]byte(`{"schemaVersion": 2}`))
	assert.NoError(t, err)
	assert.Equal(t, 2, snap.SchemaVersion)
}

func TestParseSnapshot_IgnoresUnknownFields(t *testing.T) {
	snap, err := ParseSnapshot([]byte(`{
		"schemaVersion": 2,
		"someFutureSection": {"a": 1},
		"projects": [{"id": "p1", "name": "Atlas", "futureField": true}]
	}`))

	assert.NoError(t, err)
	assert.Len(t, snap.Projects, 1)
	assert.Equal(t, "Atlas", snap.Projects[0].Name)
}

func TestParseSnapshot_NumericIDsAreAccepted(t *testing.T) {
	// Older mobile exports emit numeric ids.
	snap, err := ParseSnapshot([]byte(`{
		"schemaVersion": 1,
		"projects": [{"id": 42, "name": "Atlas"}],
		"entries": [{"id": 7, "projectId": 42, "title": "Kickoff"}]
	}`))

	assert.NoError(t, err)
	assert.Equal(t, ExtID("42"), snap.Projects[0].ID)
	assert.Equal(t, ExtID("7"), snap.Entries[0].ID)
	assert.Equal(t, ExtID("42"), snap.Entries[0].ProjectID)
}

func TestParseSnapshot_Defaults(t *testing.T) {
	snap, err := ParseSnapshot([]byte(`{
		"schemaVersion": 2,
		"projects": [
			{"id": "p1", "name": "Atlas"},
			{"id": "p2", "name": "Borealis", "priority": 9, "type": "spaceship", "status": "???"}
		],
		"commitments": [
			{"id": "c1", "title": "Send deck"},
			{"id": "c2", "title": "Review doc", "importance": 0, "urgency": -3, "direction": "sideways"}
		]
	}`))
	assert.NoError(t, err)

	assert.Equal(t, 3, *snap.Projects[0].Priority, "absent priority defaults to 3")
	assert.Equal(t, 5, *snap.Projects[1].Priority, "out-of-range priority is clamped")
	assert.Equal(t, string(models.ProjectTypeProject), snap.Projects[1].Type)
	assert.Equal(t, string(models.ProjectStatusActive), snap.Projects[1].Status)

	assert.Equal(t, 3, *snap.Commitments[0].Importance)
	assert.Equal(t, 3, *snap.Commitments[0].Urgency)
	assert.Equal(t, 1, *snap.Commitments[1].Importance)
	assert.Equal(t, 1, *snap.Commitments[1].Urgency)
	assert.Equal(t, string(models.DirectionIOwe), snap.Commitments[1].Direction)
}

func TestParseSnapshot_UnknownEntryKindBecomesNote(t *testing.T) {
	snap, err := ParseSnapshot([]byte(`{
		"schemaVersion": 2,
		"entries": [{"id": "e1", "projectId": "p1", "title": "X", "kind": "brainstorm"}]
	}`))
	assert.NoError(t, err)
	assert.Equal(t, string(models.EntryKindNote), snap.Entries[0].Kind)
}

func TestParseSnapshot_LooseBooleans(t *testing.T) {
	snap, err := ParseSnapshot([]byte(`{
		"schemaVersion": 1,
		"entries": [
			{"id": "e1", "projectId": "p1", "title": "A", "isDecision": 1},
			{"id": "e2", "projectId": "p1", "title": "B", "isDecision": "true"},
			{"id": "e3", "projectId": "p1", "title": "C", "isDecision": false}
		]
	}`))
	assert.NoError(t, err)
	assert.True(t, bool(snap.Entries[0].IsDecision))
	assert.True(t, bool(snap.Entries[1].IsDecision))
	assert.False(t, bool(snap.Entries[2].IsDecision))
}

func TestSnapshotEntry_ValidateRejectsLegacyKind(t *testing.T) {
	e := SnapshotEntry{ID: "e1", ProjectID: "p1", Title: "Old log", Kind: string(models.EntryKindDailyLog)}
	assert.Contains(t, e.Validate(), "daily_log")
}

func TestSnapshotValidate_RequiredFields(t *testing.T) {
	assert.NotEmpty(t, SnapshotProject{}.Validate())
	assert.NotEmpty(t, SnapshotPerson{}.Validate())
	assert.NotEmpty(t, SnapshotEntry{Title: "X"}.Validate(), "entry without project must fail")
	assert.NotEmpty(t, SnapshotEntry{ProjectID: "p1"}.Validate(), "entry without title must fail")
	assert.NotEmpty(t, SnapshotCommitment{}.Validate())
	assert.Empty(t, SnapshotReflection{}.Validate(), "reflections have no required fields")
}
