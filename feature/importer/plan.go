package importer

import (
	"fmt"

	"leader-dojo/feature/tracker/models"
)

// ActionType represents the resolved action for one snapshot entity.
type ActionType string

const (
	// ActionCreate allocates a new local entity.
	ActionCreate ActionType = "create"
	// ActionUpdate applies import-wins scalar updates to a matched local entity.
	ActionUpdate ActionType = "update"
	// ActionSkip leaves the store untouched for this entity.
	ActionSkip ActionType = "skip"
)

// SkipReason classifies why an entity was skipped.
type SkipReason string

const (
	// SkipValidation means a required field was missing or invalid.
	SkipValidation SkipReason = "validation"
	// SkipReferential means a non-null reference did not resolve,
	// directly or through a cascading skip.
	SkipReferential SkipReason = "referential"
	// SkipTombstone means the matched local entity is soft-deleted and
	// imports never resurrect a tombstone.
	SkipTombstone SkipReason = "tombstone"
)

// Op is the planned operation for one snapshot entity, identified by its
// position in the snapshot's array for its kind.
type Op struct {
	Kind   models.EntityKind
	Index  int
	Action ActionType

	// ExternalID is the snapshot entity's id ("" forces fingerprint
	// matching and, on create, an entity without a recorded external id).
	ExternalID string
	// LocalID is the matched local entity for updates and tombstone skips.
	LocalID string

	// Reason and Detail describe skips.
	Reason SkipReason
	Detail string
}

// Plan is the resolved, ordered set of operations for one import, plus
// the warnings accumulated while building it. Resolution is a pure
// function of the snapshot and the local index: re-running it against the
// same inputs yields the same plan, which is what makes a repeated import
// idempotent.
type Plan struct {
	Snapshot *Snapshot
	Ops      map[models.EntityKind][]Op
	Warnings []string
}

func newPlan(snap *Snapshot) *Plan {
	return &Plan{
		Snapshot: snap,
		Ops:      make(map[models.EntityKind][]Op, len(models.KindOrder)),
	}
}

func (p *Plan) warnf(format string, args ...any) {
	p.Warnings = append(p.Warnings, fmt.Sprintf(format, args...))
}

// skip rewrites an op in place as a skip.
func (o *Op) skip(reason SkipReason, detail string) {
	o.Action = ActionSkip
	o.Reason = reason
	o.Detail = detail
}
