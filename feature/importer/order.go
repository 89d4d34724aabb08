package importer

import (
	"fmt"

	"leader-dojo/feature/tracker/models"
)

// Order finalizes the plan against the fixed commit order
// (models.KindOrder). It walks the kinds in that order and skips any
// entity whose non-null reference resolves neither in the local store nor
// among the surviving operations of an earlier kind in the same batch.
// A skip propagates forward: anything depending on a skipped entity is
// skipped too, never the other way around.
//
// Like Resolve, this is pure: it rewrites ops in place and records
// warnings, touching no store state.
func Order(plan *Plan, idx *LocalIndex) {
	// surviving[kind] holds the external ids that will exist in the store
	// once the batch commits (creates and updates that were not skipped).
	surviving := make(map[models.EntityKind]map[string]bool, len(models.KindOrder))
	for _, kind := range models.KindOrder {
		surviving[kind] = make(map[string]bool)
	}

	resolves := func(kind models.EntityKind, ref string) bool {
		if ref == "" {
			return true // null reference, nothing to resolve
		}
		if _, found := idx.Lookup(kind, ref); found {
			// Tombstoned entities still exist in the store; a reference
			// to one resolves.
			return true
		}
		return surviving[kind][ref]
	}

	for _, kind := range models.KindOrder {
		ops := plan.Ops[kind]
		for i := range ops {
			op := &ops[i]
			if op.Action == ActionSkip {
				continue
			}

			if missing, refKind := danglingRef(plan.Snapshot, op, resolves); missing != "" {
				op.skip(SkipReferential, fmt.Sprintf("unresolved %s reference %q", refKind, missing))
				plan.warnf("skipped %s: references %s %q which exists neither in the snapshot nor in the store",
					opLabel(plan.Snapshot, op), refKind, missing)
				continue
			}

			if op.ExternalID != "" {
				surviving[kind][op.ExternalID] = true
			}
		}
	}
}

// danglingRef returns the first non-null reference of the op's entity
// that does not resolve, along with the referenced kind's name.
func danglingRef(snap *Snapshot, op *Op, resolves func(models.EntityKind, string) bool) (string, models.EntityKind) {
	switch op.Kind {
	case models.KindEntry:
		e := snap.Entries[op.Index]
		if !resolves(models.KindProject, string(e.ProjectID)) {
			return string(e.ProjectID), models.KindProject
		}
		for _, pid := range e.ParticipantIDs {
			if !resolves(models.KindPerson, string(pid)) {
				return string(pid), models.KindPerson
			}
		}
	case models.KindCommitment:
		c := snap.Commitments[op.Index]
		if !resolves(models.KindProject, string(c.ProjectID)) {
			return string(c.ProjectID), models.KindProject
		}
		if !resolves(models.KindEntry, string(c.SourceEntryID)) {
			return string(c.SourceEntryID), models.KindEntry
		}
		if !resolves(models.KindPerson, string(c.PersonID)) {
			return string(c.PersonID), models.KindPerson
		}
	case models.KindReflection:
		r := snap.Reflections[op.Index]
		if !resolves(models.KindProject, string(r.ProjectID)) {
			return string(r.ProjectID), models.KindProject
		}
		if !resolves(models.KindEntry, string(r.SourceEntryID)) {
			return string(r.SourceEntryID), models.KindEntry
		}
	}
	return "", ""
}

func opLabel(snap *Snapshot, op *Op) string {
	switch op.Kind {
	case models.KindProject:
		return fmt.Sprintf("project %q", snap.Projects[op.Index].Name)
	case models.KindPerson:
		return fmt.Sprintf("person %q", snap.People[op.Index].Name)
	case models.KindEntry:
		return fmt.Sprintf("entry %q", snap.Entries[op.Index].Title)
	case models.KindCommitment:
		return fmt.Sprintf("commitment %q", snap.Commitments[op.Index].Title)
	case models.KindReflection:
		r := snap.Reflections[op.Index]
		return fmt.Sprintf("reflection %s/%s", r.PeriodType, timeKey(r.PeriodStart))
	default:
		return string(op.Kind)
	}
}
