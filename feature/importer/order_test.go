package importer

import (
	"testing"

	"leader-dojo/feature/tracker/models"

	"github.com/stretchr/testify/assert"
)

func TestOrder_ResolvesReferencesWithinBatch(t *testing.T) {
	snap := &Snapshot{
		Projects: []SnapshotProject{{ID: "p1", Name: "Atlas"}},
		People:   []SnapshotPerson{{ID: "per1", Name: "Sam"}},
		Entries: []SnapshotEntry{
			{ID: "e1", ProjectID: "p1", Title: "Kickoff", ParticipantIDs: []ExtID{"per1"}},
		},
		Commitments: []SnapshotCommitment{
			{ID: "c1", Title: "Send deck", ProjectID: "p1", SourceEntryID: "e1", PersonID: "per1"},
		},
		Reflections: []SnapshotReflection{
			{ID: "r1", ProjectID: "p1", SourceEntryID: "e1"},
		},
	}

	idx := testIndex()
	plan := Resolve(snap, idx)
	Order(plan, idx)

	for _, kind := range models.KindOrder {
		for _, op := range plan.Ops[kind] {
			assert.Equal(t, ActionCreate, op.Action, "kind %s", kind)
		}
	}
	assert.Empty(t, plan.Warnings)
}

func TestOrder_DanglingReferenceIsSkipped(t *testing.T) {
	snap := &Snapshot{
		Entries: []SnapshotEntry{
			{ID: "e1", ProjectID: "ghost", Title: "Orphan"},
		},
	}

	idx := testIndex()
	plan := Resolve(snap, idx)
	Order(plan, idx)

	op := plan.Ops[models.KindEntry][0]
	assert.Equal(t, ActionSkip, op.Action)
	assert.Equal(t, SkipReferential, op.Reason)
	assert.Contains(t, plan.Warnings[0], "ghost")
}

func TestOrder_SkipCascades(t *testing.T) {
	// The project fails validation, so the entry's reference dangles,
	// so the commitment's source entry dangles too.
	snap := &Snapshot{
		Projects: []SnapshotProject{{ID: "p1"}}, // missing name
		Entries: []SnapshotEntry{
			{ID: "e1", ProjectID: "p1", Title: "Kickoff"},
		},
		Commitments: []SnapshotCommitment{
			{ID: "c1", Title: "Send deck", SourceEntryID: "e1"},
		},
	}

	idx := testIndex()
	plan := Resolve(snap, idx)
	Order(plan, idx)

	assert.Equal(t, SkipValidation, plan.Ops[models.KindProject][0].Reason)
	assert.Equal(t, SkipReferential, plan.Ops[models.KindEntry][0].Reason)
	assert.Equal(t, SkipReferential, plan.Ops[models.KindCommitment][0].Reason)
	assert.Len(t, plan.Warnings, 3)
}

func TestOrder_ReferenceToStoreResolvedLocally(t *testing.T) {
	idx := testIndex()
	idx.kinds[models.KindProject].put(LocalRef{ID: "local-p"}, strPtr("p1"), "")

	snap := &Snapshot{
		Entries: []SnapshotEntry{
			{ID: "e1", ProjectID: "p1", Title: "Kickoff"},
		},
	}

	plan := Resolve(snap, idx)
	Order(plan, idx)

	assert.Equal(t, ActionCreate, plan.Ops[models.KindEntry][0].Action)
	assert.Empty(t, plan.Warnings)
}

func TestOrder_ReferenceToTombstoneResolves(t *testing.T) {
	// A tombstoned project still exists in the store; entries under it
	// import fine even though the project itself cannot be updated.
	idx := testIndex()
	idx.kinds[models.KindProject].put(LocalRef{ID: "local-p", Deleted: true}, strPtr("p1"), "")

	snap := &Snapshot{
		Entries: []SnapshotEntry{
			{ID: "e1", ProjectID: "p1", Title: "Kickoff"},
		},
	}

	plan := Resolve(snap, idx)
	Order(plan, idx)

	assert.Equal(t, ActionCreate, plan.Ops[models.KindEntry][0].Action)
	assert.Empty(t, plan.Warnings)
}

func TestOrder_NullReferencesAlwaysResolve(t *testing.T) {
	snap := &Snapshot{
		Commitments: []SnapshotCommitment{{ID: "c1", Title: "Standalone"}},
		Reflections: []SnapshotReflection{{ID: "r1"}},
	}

	idx := testIndex()
	plan := Resolve(snap, idx)
	Order(plan, idx)

	assert.Equal(t, ActionCreate, plan.Ops[models.KindCommitment][0].Action)
	assert.Equal(t, ActionCreate, plan.Ops[models.KindReflection][0].Action)
	assert.Empty(t, plan.Warnings)
}

func TestOrder_MissingParticipantSkipsEntry(t *testing.T) {
	idx := testIndex()
	idx.kinds[models.KindProject].put(LocalRef{ID: "local-p"}, strPtr("p1"), "")

	snap := &Snapshot{
		Entries: []SnapshotEntry{
			{ID: "e1", ProjectID: "p1", Title: "Kickoff", ParticipantIDs: []ExtID{"nobody"}},
		},
	}

	plan := Resolve(snap, idx)
	Order(plan, idx)

	op := plan.Ops[models.KindEntry][0]
	assert.Equal(t, ActionSkip, op.Action)
	assert.Equal(t, SkipReferential, op.Reason)
	assert.Contains(t, plan.Warnings[0], "nobody")
}
