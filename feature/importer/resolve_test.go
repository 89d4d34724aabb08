package importer

import (
	"testing"
	"time"

	"leader-dojo/feature/tracker/models"

	"github.com/stretchr/testify/assert"
)

// testIndex builds a LocalIndex by hand, without a store.
func testIndex() *LocalIndex {
	idx := &LocalIndex{kinds: make(map[models.EntityKind]kindIndex, len(models.KindOrder))}
	for _, kind := range models.KindOrder {
		idx.kinds[kind] = newKindIndex()
	}
	return idx
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func TestResolve_ExternalIDMatchBecomesUpdate(t *testing.T) {
	idx := testIndex()
	idx.kinds[models.KindProject].put(LocalRef{ID: "local-1"}, strPtr("ext-1"), "")

	snap := &Snapshot{Projects: []SnapshotProject{{ID: "ext-1", Name: "Atlas"}}}
	plan := Resolve(snap, idx)

	op := plan.Ops[models.KindProject][0]
	assert.Equal(t, ActionUpdate, op.Action)
	assert.Equal(t, "local-1", op.LocalID)
	assert.Empty(t, plan.Warnings)
}

func TestResolve_UnmatchedExternalIDBecomesCreate(t *testing.T) {
	snap := &Snapshot{Projects: []SnapshotProject{{ID: "ext-9", Name: "Atlas"}}}
	plan := Resolve(snap, testIndex())

	op := plan.Ops[models.KindProject][0]
	assert.Equal(t, ActionCreate, op.Action)
	assert.Equal(t, "ext-9", op.ExternalID)
}

func TestResolve_LocalIDMatchesLikeExternalID(t *testing.T) {
	// Re-importing this store's own export: the snapshot carries the
	// store's local ids.
	idx := testIndex()
	idx.kinds[models.KindPerson].put(LocalRef{ID: "local-7"}, nil, personFingerprint("Sam"))

	snap := &Snapshot{People: []SnapshotPerson{{ID: "local-7", Name: "Sam"}}}
	plan := Resolve(snap, idx)

	op := plan.Ops[models.KindPerson][0]
	assert.Equal(t, ActionUpdate, op.Action)
	assert.Equal(t, "local-7", op.LocalID)
}

func TestResolve_TombstoneMatchIsSkipped(t *testing.T) {
	idx := testIndex()
	idx.kinds[models.KindProject].put(LocalRef{ID: "local-1", Deleted: true}, strPtr("ext-1"), "")

	snap := &Snapshot{Projects: []SnapshotProject{{ID: "ext-1", Name: "Atlas"}}}
	plan := Resolve(snap, idx)

	op := plan.Ops[models.KindProject][0]
	assert.Equal(t, ActionSkip, op.Action)
	assert.Equal(t, SkipTombstone, op.Reason)
	assert.Len(t, plan.Warnings, 1)
}

func TestResolve_ValidationFailureIsSkipped(t *testing.T) {
	snap := &Snapshot{Projects: []SnapshotProject{{ID: "ext-1"}}} // no name
	plan := Resolve(snap, testIndex())

	op := plan.Ops[models.KindProject][0]
	assert.Equal(t, ActionSkip, op.Action)
	assert.Equal(t, SkipValidation, op.Reason)
	assert.Contains(t, plan.Warnings[0], "missing name")
}

func TestResolve_FingerprintMatch(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	idx := testIndex()
	idx.kinds[models.KindProject].put(LocalRef{ID: "local-1"}, nil, projectFingerprint("Atlas", &created))

	snap := &Snapshot{Projects: []SnapshotProject{{Name: "Atlas", CreatedAt: timePtr(created)}}}
	plan := Resolve(snap, idx)

	op := plan.Ops[models.KindProject][0]
	assert.Equal(t, ActionUpdate, op.Action)
	assert.Equal(t, "local-1", op.LocalID)
}

func TestResolve_AmbiguousLocalCandidatesCreateNew(t *testing.T) {
	// Two distinct local people named the same way. A no-id snapshot
	// record must not guess between them.
	idx := testIndex()
	idx.kinds[models.KindPerson].put(LocalRef{ID: "local-1"}, nil, personFingerprint("Jordan Lee"))
	idx.kinds[models.KindPerson].put(LocalRef{ID: "local-2"}, nil, personFingerprint("Jordan Lee"))

	snap := &Snapshot{People: []SnapshotPerson{{Name: "Jordan Lee"}}}
	plan := Resolve(snap, idx)

	op := plan.Ops[models.KindPerson][0]
	assert.Equal(t, ActionCreate, op.Action)
	assert.Empty(t, op.LocalID)
	assert.Len(t, plan.Warnings, 1)
	assert.Contains(t, plan.Warnings[0], "ambiguous")
}

func TestResolve_DuplicateSnapshotFingerprintsCreateNew(t *testing.T) {
	// Two no-id records in the same snapshot sharing a fingerprint are
	// ambiguous even against an empty store.
	idx := testIndex()
	idx.kinds[models.KindPerson].put(LocalRef{ID: "local-1"}, nil, personFingerprint("Jordan Lee"))

	snap := &Snapshot{People: []SnapshotPerson{
		{Name: "Jordan Lee"},
		{Name: "Jordan Lee"},
	}}
	plan := Resolve(snap, idx)

	for _, op := range plan.Ops[models.KindPerson] {
		assert.Equal(t, ActionCreate, op.Action)
	}
	assert.Len(t, plan.Warnings, 2)
}

func TestResolve_NoCandidatesCreateNew(t *testing.T) {
	snap := &Snapshot{People: []SnapshotPerson{{Name: "Sam"}}}
	plan := Resolve(snap, testIndex())

	op := plan.Ops[models.KindPerson][0]
	assert.Equal(t, ActionCreate, op.Action)
	assert.Empty(t, op.ExternalID, "fingerprint creates record no external id")
}

func TestResolve_IsDeterministic(t *testing.T) {
	idx := testIndex()
	idx.kinds[models.KindProject].put(LocalRef{ID: "local-1"}, strPtr("ext-1"), "")
	idx.kinds[models.KindPerson].put(LocalRef{ID: "local-2"}, nil, personFingerprint("Sam"))

	snap := &Snapshot{
		Projects: []SnapshotProject{{ID: "ext-1", Name: "Atlas"}, {ID: "ext-2", Name: "Borealis"}},
		People:   []SnapshotPerson{{Name: "Sam"}},
	}

	first := Resolve(snap, idx)
	second := Resolve(snap, idx)
	assert.Equal(t, first.Ops, second.Ops)
	assert.Equal(t, first.Warnings, second.Warnings)
}
