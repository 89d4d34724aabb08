package importer

import (
	"context"
	"fmt"
	"time"

	"leader-dojo/feature/tracker/models"

	"gorm.io/gorm"
)

// LocalRef is what the resolver and executor need to know about an
// existing local entity: its id, whether it is tombstoned, and its
// creation time (the floor for any updated_at written to the row).
type LocalRef struct {
	ID        string
	Deleted   bool
	CreatedAt time.Time
}

// kindIndex indexes one entity kind of the local store.
type kindIndex struct {
	// byExternal maps recorded external ids AND local ids to the entity.
	// Local ids are included so that re-importing this store's own export
	// (whose ids are this store's ids) still matches.
	byExternal map[string]LocalRef
	// byFingerprint maps content fingerprints to every entity bearing
	// them; more than one candidate means the match is ambiguous.
	byFingerprint map[string][]LocalRef
}

func newKindIndex() kindIndex {
	return kindIndex{
		byExternal:    make(map[string]LocalRef),
		byFingerprint: make(map[string][]LocalRef),
	}
}

func (k kindIndex) put(ref LocalRef, externalID *string, fingerprint string) {
	k.byExternal[ref.ID] = ref
	if externalID != nil && *externalID != "" {
		k.byExternal[*externalID] = ref
	}
	if fingerprint != "" {
		k.byFingerprint[fingerprint] = append(k.byFingerprint[fingerprint], ref)
	}
}

// LocalIndex is the read-only view of the current store the resolver
// works against. It is built once per import, before resolution begins.
type LocalIndex struct {
	kinds map[models.EntityKind]kindIndex
}

// Lookup finds a local entity of the given kind by external (or local) id.
func (idx *LocalIndex) Lookup(kind models.EntityKind, externalID string) (LocalRef, bool) {
	ref, ok := idx.kinds[kind].byExternal[externalID]
	return ref, ok
}

// Candidates returns the local entities matching a content fingerprint.
func (idx *LocalIndex) Candidates(kind models.EntityKind, fingerprint string) []LocalRef {
	return idx.kinds[kind].byFingerprint[fingerprint]
}

// LoadIndex scans the store, tombstoned rows included, and builds the
// identity-resolution index. Reads only.
func LoadIndex(ctx context.Context, db *gorm.DB) (*LocalIndex, error) {
	idx := &LocalIndex{kinds: make(map[models.EntityKind]kindIndex, len(models.KindOrder))}
	for _, kind := range models.KindOrder {
		idx.kinds[kind] = newKindIndex()
	}

	var projects []models.Project
	if err := db.WithContext(ctx).Unscoped().Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	for _, p := range projects {
		idx.kinds[models.KindProject].put(
			LocalRef{ID: p.ID, Deleted: p.DeletedAt.Valid, CreatedAt: p.CreatedAt},
			p.ExternalID,
			projectFingerprint(p.Name, &p.CreatedAt),
		)
	}

	var people []models.Person
	if err := db.WithContext(ctx).Unscoped().Find(&people).Error; err != nil {
		return nil, fmt.Errorf("loading people: %w", err)
	}
	for _, p := range people {
		idx.kinds[models.KindPerson].put(
			LocalRef{ID: p.ID, Deleted: p.DeletedAt.Valid, CreatedAt: p.CreatedAt},
			p.ExternalID,
			personFingerprint(p.Name),
		)
	}

	var entries []models.Entry
	if err := db.WithContext(ctx).Unscoped().Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("loading entries: %w", err)
	}
	for _, e := range entries {
		idx.kinds[models.KindEntry].put(
			LocalRef{ID: e.ID, Deleted: e.DeletedAt.Valid, CreatedAt: e.CreatedAt},
			e.ExternalID,
			entryFingerprint(e.Title, e.OccurredAt),
		)
	}

	var commitments []models.Commitment
	if err := db.WithContext(ctx).Unscoped().Find(&commitments).Error; err != nil {
		return nil, fmt.Errorf("loading commitments: %w", err)
	}
	for _, c := range commitments {
		idx.kinds[models.KindCommitment].put(
			LocalRef{ID: c.ID, Deleted: c.DeletedAt.Valid, CreatedAt: c.CreatedAt},
			c.ExternalID,
			commitmentFingerprint(c.Title, c.DueDate),
		)
	}

	var reflections []models.Reflection
	if err := db.WithContext(ctx).Unscoped().Find(&reflections).Error; err != nil {
		return nil, fmt.Errorf("loading reflections: %w", err)
	}
	for _, r := range reflections {
		idx.kinds[models.KindReflection].put(
			LocalRef{ID: r.ID, Deleted: r.DeletedAt.Valid, CreatedAt: r.CreatedAt},
			r.ExternalID,
			reflectionFingerprint(string(r.PeriodType), r.PeriodStart),
		)
	}

	return idx, nil
}

// Fingerprints are the fallback identity for legacy exports that carry no
// external ids. They must be computed identically from a local row and
// from a snapshot record.

func projectFingerprint(name string, createdAt *time.Time) string {
	return "project|" + name + "|" + timeKey(createdAt)
}

func personFingerprint(name string) string {
	return "person|" + name
}

func entryFingerprint(title string, occurredAt *time.Time) string {
	return "entry|" + title + "|" + timeKey(occurredAt)
}

func commitmentFingerprint(title string, dueDate *time.Time) string {
	return "commitment|" + title + "|" + timeKey(dueDate)
}

func reflectionFingerprint(periodType string, periodStart *time.Time) string {
	return "reflection|" + periodType + "|" + timeKey(periodStart)
}

func timeKey(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
