package models

// EntityKind identifies one of the five replicated entity kinds.
type EntityKind string

const (
	KindProject    EntityKind = "project"
	KindPerson     EntityKind = "person"
	KindEntry      EntityKind = "entry"
	KindCommitment EntityKind = "commitment"
	KindReflection EntityKind = "reflection"
)

// KindOrder is the fixed commit order for cross-kind references:
// projects and people carry no forward dependencies, entries reference
// both, commitments and reflections reference all three. The dependency
// graph across kinds is static, so no per-record topological sort is
// needed.
var KindOrder = []EntityKind{KindProject, KindPerson, KindEntry, KindCommitment, KindReflection}

// ProjectType classifies a project.
type ProjectType string

const (
	ProjectTypeProject      ProjectType = "project"
	ProjectTypeRelationship ProjectType = "relationship"
	ProjectTypeArea         ProjectType = "area"
)

// Normalize maps unknown or absent values to the neutral default.
func (t ProjectType) Normalize() ProjectType {
	switch t {
	case ProjectTypeProject, ProjectTypeRelationship, ProjectTypeArea:
		return t
	default:
		return ProjectTypeProject
	}
}

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusArchived  ProjectStatus = "archived"
)

// Normalize maps unknown or absent values to the neutral default.
func (s ProjectStatus) Normalize() ProjectStatus {
	switch s {
	case ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusArchived:
		return s
	default:
		return ProjectStatusActive
	}
}

// EntryKind is an open enum: older snapshots can carry values this build
// does not know, and the deprecated daily-log kind survives only as
// historical data.
type EntryKind string

const (
	EntryKindMeeting    EntryKind = "meeting"
	EntryKindUpdate     EntryKind = "update"
	EntryKindDecision   EntryKind = "decision"
	EntryKindNote       EntryKind = "note"
	EntryKindPrep       EntryKind = "prep"
	EntryKindReflection EntryKind = "reflection"

	// EntryKindDailyLog is the deprecated shape from pre-1.0 clients.
	// Write-once: no new entry may be created with it; the startup
	// normalizer hard-deletes the survivors.
	EntryKindDailyLog EntryKind = "daily_log"
)

// Normalize maps unknown values to the neutral default. The legacy kind
// is preserved as-is so the normalizer can find it.
func (k EntryKind) Normalize() EntryKind {
	switch k {
	case EntryKindMeeting, EntryKindUpdate, EntryKindDecision, EntryKindNote,
		EntryKindPrep, EntryKindReflection, EntryKindDailyLog:
		return k
	default:
		return EntryKindNote
	}
}

// IsLegacy reports whether the kind is the deprecated daily-log shape.
func (k EntryKind) IsLegacy() bool {
	return k == EntryKindDailyLog
}

// CommitmentDirection says which side owes the commitment.
type CommitmentDirection string

const (
	DirectionIOwe       CommitmentDirection = "i_owe"
	DirectionWaitingFor CommitmentDirection = "waiting_for"
)

// Normalize maps unknown or absent values to the neutral default.
func (d CommitmentDirection) Normalize() CommitmentDirection {
	switch d {
	case DirectionIOwe, DirectionWaitingFor:
		return d
	default:
		return DirectionIOwe
	}
}

// CommitmentStatus is the lifecycle state of a commitment.
type CommitmentStatus string

const (
	CommitmentOpen    CommitmentStatus = "open"
	CommitmentDone    CommitmentStatus = "done"
	CommitmentBlocked CommitmentStatus = "blocked"
	CommitmentDropped CommitmentStatus = "dropped"
)

// Normalize maps unknown or absent values to the neutral default.
func (s CommitmentStatus) Normalize() CommitmentStatus {
	switch s {
	case CommitmentOpen, CommitmentDone, CommitmentBlocked, CommitmentDropped:
		return s
	default:
		return CommitmentOpen
	}
}

// PeriodType is the time window a reflection covers.
type PeriodType string

const (
	PeriodWeek    PeriodType = "week"
	PeriodMonth   PeriodType = "month"
	PeriodQuarter PeriodType = "quarter"
)

// Normalize maps unknown or absent values to the neutral default.
func (p PeriodType) Normalize() PeriodType {
	switch p {
	case PeriodWeek, PeriodMonth, PeriodQuarter:
		return p
	default:
		return PeriodWeek
	}
}
