package importer

import (
	"fmt"

	"leader-dojo/feature/tracker/models"
)

// Resolve maps every snapshot entity to an existing local entity (update)
// or marks it as new (create). It is a pure function of the snapshot and
// the index: no store access, no randomness, so the same inputs always
// produce the same plan.
//
// Matching policy, in order:
//  1. The snapshot entity's external id matches a local entity → update.
//  2. No external id (legacy export) → content fingerprint. Exactly one
//     local candidate → update; anything ambiguous → create, with a
//     recorded warning rather than a guess.
//
// A match against a tombstoned local entity becomes a skip: imports never
// resurrect a soft-deleted record.
func Resolve(snap *Snapshot, idx *LocalIndex) *Plan {
	plan := newPlan(snap)

	// Fingerprints that occur more than once inside the snapshot itself
	// are ambiguous no matter what the store holds.
	snapFingerprints := countSnapshotFingerprints(snap)

	for i, p := range snap.Projects {
		op := resolveOne(plan, idx, snapFingerprints, resolveInput{
			kind:        models.KindProject,
			index:       i,
			externalID:  string(p.ID),
			fingerprint: projectFingerprint(p.Name, p.CreatedAt),
			label:       fmt.Sprintf("project %q", p.Name),
			validation:  p.Validate(),
		})
		plan.Ops[models.KindProject] = append(plan.Ops[models.KindProject], op)
	}

	for i, p := range snap.People {
		op := resolveOne(plan, idx, snapFingerprints, resolveInput{
			kind:        models.KindPerson,
			index:       i,
			externalID:  string(p.ID),
			fingerprint: personFingerprint(p.Name),
			label:       fmt.Sprintf("person %q", p.Name),
			validation:  p.Validate(),
		})
		plan.Ops[models.KindPerson] = append(plan.Ops[models.KindPerson], op)
	}

	for i, e := range snap.Entries {
		op := resolveOne(plan, idx, snapFingerprints, resolveInput{
			kind:        models.KindEntry,
			index:       i,
			externalID:  string(e.ID),
			fingerprint: entryFingerprint(e.Title, e.OccurredAt),
			label:       fmt.Sprintf("entry %q", e.Title),
			validation:  e.Validate(),
		})
		plan.Ops[models.KindEntry] = append(plan.Ops[models.KindEntry], op)
	}

	for i, c := range snap.Commitments {
		op := resolveOne(plan, idx, snapFingerprints, resolveInput{
			kind:        models.KindCommitment,
			index:       i,
			externalID:  string(c.ID),
			fingerprint: commitmentFingerprint(c.Title, c.DueDate),
			label:       fmt.Sprintf("commitment %q", c.Title),
			validation:  c.Validate(),
		})
		plan.Ops[models.KindCommitment] = append(plan.Ops[models.KindCommitment], op)
	}

	for i, r := range snap.Reflections {
		op := resolveOne(plan, idx, snapFingerprints, resolveInput{
			kind:        models.KindReflection,
			index:       i,
			externalID:  string(r.ID),
			fingerprint: reflectionFingerprint(r.PeriodType, r.PeriodStart),
			label:       fmt.Sprintf("reflection %s/%s", r.PeriodType, timeKey(r.PeriodStart)),
			validation:  r.Validate(),
		})
		plan.Ops[models.KindReflection] = append(plan.Ops[models.KindReflection], op)
	}

	return plan
}

type resolveInput struct {
	kind        models.EntityKind
	index       int
	externalID  string
	fingerprint string
	label       string
	validation  string
}

func resolveOne(plan *Plan, idx *LocalIndex, snapFingerprints map[string]int, in resolveInput) Op {
	op := Op{Kind: in.kind, Index: in.index, ExternalID: in.externalID}

	if in.validation != "" {
		op.skip(SkipValidation, in.validation)
		plan.warnf("skipped %s: %s", in.label, in.validation)
		return op
	}

	if in.externalID != "" {
		ref, found := idx.Lookup(in.kind, in.externalID)
		if !found {
			op.Action = ActionCreate
			return op
		}
		if ref.Deleted {
			op.skip(SkipTombstone, "soft-deleted locally")
			op.LocalID = ref.ID
			plan.warnf("skipped %s: soft-deleted locally, import does not resurrect it", in.label)
			return op
		}
		op.Action = ActionUpdate
		op.LocalID = ref.ID
		return op
	}

	// Legacy record without an id: fingerprint matching.
	if snapFingerprints[in.fingerprint] > 1 {
		op.Action = ActionCreate
		plan.warnf("%s: ambiguous fingerprint (multiple snapshot records match), created as new", in.label)
		return op
	}

	candidates := idx.Candidates(in.kind, in.fingerprint)
	switch len(candidates) {
	case 0:
		op.Action = ActionCreate
	case 1:
		if candidates[0].Deleted {
			op.skip(SkipTombstone, "soft-deleted locally")
			op.LocalID = candidates[0].ID
			plan.warnf("skipped %s: soft-deleted locally, import does not resurrect it", in.label)
			return op
		}
		op.Action = ActionUpdate
		op.LocalID = candidates[0].ID
	default:
		op.Action = ActionCreate
		plan.warnf("%s: ambiguous fingerprint (%d local candidates), created as new", in.label, len(candidates))
	}
	return op
}

func countSnapshotFingerprints(snap *Snapshot) map[string]int {
	counts := make(map[string]int)
	for _, p := range snap.Projects {
		if p.ID == "" {
			counts[projectFingerprint(p.Name, p.CreatedAt)]++
		}
	}
	for _, p := range snap.People {
		if p.ID == "" {
			counts[personFingerprint(p.Name)]++
		}
	}
	for _, e := range snap.Entries {
		if e.ID == "" {
			counts[entryFingerprint(e.Title, e.OccurredAt)]++
		}
	}
	for _, c := range snap.Commitments {
		if c.ID == "" {
			counts[commitmentFingerprint(c.Title, c.DueDate)]++
		}
	}
	for _, r := range snap.Reflections {
		if r.ID == "" {
			counts[reflectionFingerprint(r.PeriodType, r.PeriodStart)]++
		}
	}
	return counts
}
