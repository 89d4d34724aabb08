package importer

import (
	"encoding/json"
	"fmt"
	"time"

	"leader-dojo/core/utils"
	"leader-dojo/feature/tracker/models"
)

// CurrentSchemaVersion is the newest snapshot shape this build understands.
// Version 1 exports (no external ids on some kinds) are still accepted;
// anything newer is rejected up front.
const CurrentSchemaVersion = 2

// ExtID is an identifier assigned by the producing client. Older mobile
// exports emit numeric ids, so decoding is tolerant of JSON numbers.
type ExtID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ExtID) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*id = ExtID(utils.ToString(v))
	return nil
}

// FlexBool is a boolean that tolerates the loose encodings of older
// exports: true, 1, "1", "true".
type FlexBool bool

// UnmarshalJSON implements json.Unmarshaler.
func (b *FlexBool) UnmarshalJSON(raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	*b = FlexBool(utils.ToBool(v))
	return nil
}

// Snapshot is the parsed, typed representation of an import payload.
type Snapshot struct {
	SchemaVersion int
	ExportedAt    *time.Time

	Projects    []SnapshotProject
	People      []SnapshotPerson
	Entries     []SnapshotEntry
	Commitments []SnapshotCommitment
	Reflections []SnapshotReflection
}

// SnapshotProject mirrors one element of the projects array.
type SnapshotProject struct {
	ID           ExtID      `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Type         string     `json:"type"`
	Status       string     `json:"status"`
	Priority     *int       `json:"priority"`
	OwnerNotes   string     `json:"ownerNotes"`
	LastActiveAt *time.Time `json:"lastActiveAt"`
	CreatedAt    *time.Time `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
}

// Validate returns a human-readable reason when the record cannot be
// imported, or "" when it is acceptable.
func (p SnapshotProject) Validate() string {
	if p.Name == "" {
		return "missing name"
	}
	return ""
}

// SnapshotPerson mirrors one element of the people array.
type SnapshotPerson struct {
	ID               ExtID      `json:"id"`
	Name             string     `json:"name"`
	Organization     string     `json:"organization"`
	Role             string     `json:"role"`
	RelationshipType string     `json:"relationshipType"`
	Notes            string     `json:"notes"`
	CreatedAt        *time.Time `json:"createdAt"`
	UpdatedAt        *time.Time `json:"updatedAt"`
}

// Validate returns a reason when the record cannot be imported.
func (p SnapshotPerson) Validate() string {
	if p.Name == "" {
		return "missing name"
	}
	return ""
}

// SnapshotEntry mirrors one element of the entries array.
type SnapshotEntry struct {
	ID                 ExtID      `json:"id"`
	ProjectID          ExtID      `json:"projectId"`
	Kind               string     `json:"kind"`
	Title              string     `json:"title"`
	OccurredAt         *time.Time `json:"occurredAt"`
	RawContent         string     `json:"rawContent"`
	AISummary          string     `json:"aiSummary"`
	Decisions          string     `json:"decisions"`
	IsDecision         FlexBool   `json:"isDecision"`
	DecisionHypothesis string     `json:"decisionHypothesis"`
	DecisionOutcome    string     `json:"decisionOutcome"`
	ParticipantIDs     []ExtID    `json:"participantIds"`
	CreatedAt          *time.Time `json:"createdAt"`
	UpdatedAt          *time.Time `json:"updatedAt"`
}

// Validate returns a reason when the record cannot be imported. The
// legacy kind check belongs here because the deprecated shape is
// write-once: it only ever appears from historical data, never from an
// import.
func (e SnapshotEntry) Validate() string {
	if e.Title == "" {
		return "missing title"
	}
	if e.ProjectID == "" {
		return "missing projectId"
	}
	if models.EntryKind(e.Kind).IsLegacy() {
		return fmt.Sprintf("deprecated entry kind %q is not importable", e.Kind)
	}
	return ""
}

// SnapshotCommitment mirrors one element of the commitments array.
type SnapshotCommitment struct {
	ID            ExtID      `json:"id"`
	Title         string     `json:"title"`
	Direction     string     `json:"direction"`
	Status        string     `json:"status"`
	ProjectID     ExtID      `json:"projectId"`
	SourceEntryID ExtID      `json:"sourceEntryId"`
	PersonID      ExtID      `json:"personId"`
	DueDate       *time.Time `json:"dueDate"`
	Importance    *int       `json:"importance"`
	Urgency       *int       `json:"urgency"`
	Notes         string     `json:"notes"`
	CompletedAt   *time.Time `json:"completedAt"`
	CreatedAt     *time.Time `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt"`
}

// Validate returns a reason when the record cannot be imported.
func (c SnapshotCommitment) Validate() string {
	if c.Title == "" {
		return "missing title"
	}
	return ""
}

// SnapshotReflection mirrors one element of the reflections array.
type SnapshotReflection struct {
	ID               ExtID             `json:"id"`
	ProjectID        ExtID             `json:"projectId"`
	SourceEntryID    ExtID             `json:"sourceEntryId"`
	PeriodType       string            `json:"periodType"`
	PeriodStart      *time.Time        `json:"periodStart"`
	PeriodEnd        *time.Time        `json:"periodEnd"`
	Stats            models.StatsBlob  `json:"stats"`
	QuestionsAnswers models.QAList     `json:"questionsAnswers"`
	AIQuestions      models.StringList `json:"aiQuestions"`
	CreatedAt        *time.Time        `json:"createdAt"`
}

// Validate returns a reason when the record cannot be imported.
// Every field except the identifier is optional on reflections.
func (r SnapshotReflection) Validate() string {
	return ""
}

// rawSnapshot is the wire shape. SchemaVersion is a pointer so an absent
// marker is distinguishable from version zero; unknown extra fields are
// ignored for forward compatibility.
type rawSnapshot struct {
	SchemaVersion *int       `json:"schemaVersion"`
	ExportedAt    *time.Time `json:"exportedAt"`

	Projects    []SnapshotProject    `json:"projects"`
	People      []SnapshotPerson     `json:"people"`
	Entries     []SnapshotEntry      `json:"entries"`
	Commitments []SnapshotCommitment `json:"commitments"`
	Reflections []SnapshotReflection `json:"reflections"`
}

// ParseSnapshot turns raw text into a typed, versioned snapshot. It
// performs no store access; any failure here leaves no partial state
// anywhere. Missing optional fields take their documented defaults.
func ParseSnapshot(raw []byte) (*Snapshot, error) {
	var payload rawSnapshot
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}

	if payload.SchemaVersion == nil {
		return nil, &ParseError{Reason: "missing schemaVersion marker"}
	}
	version := *payload.SchemaVersion
	if version < 1 {
		return nil, &ParseError{Reason: fmt.Sprintf("invalid schemaVersion %d", version)}
	}
	if version > CurrentSchemaVersion {
		return nil, &ParseError{Reason: fmt.Sprintf("schemaVersion %d is newer than supported version %d", version, CurrentSchemaVersion)}
	}

	snap := &Snapshot{
		SchemaVersion: version,
		ExportedAt:    payload.ExportedAt,
		Projects:      payload.Projects,
		People:        payload.People,
		Entries:       payload.Entries,
		Commitments:   payload.Commitments,
		Reflections:   payload.Reflections,
	}
	applyDefaults(snap)
	return snap, nil
}

// applyDefaults fills the documented defaults for absent optional fields
// and normalizes every open enum. A snapshot coming out of the parser
// never carries an out-of-range scale or an unknown enum value.
func applyDefaults(snap *Snapshot) {
	for i := range snap.Projects {
		p := &snap.Projects[i]
		p.Type = string(models.ProjectType(p.Type).Normalize())
		p.Status = string(models.ProjectStatus(p.Status).Normalize())
		if p.Priority == nil {
			def := 3
			p.Priority = &def
		} else {
			clamped := utils.ClampInt(*p.Priority, 1, 5)
			p.Priority = &clamped
		}
	}

	for i := range snap.Entries {
		e := &snap.Entries[i]
		// The legacy kind must survive normalization so validation can
		// name it in the warning.
		e.Kind = string(models.EntryKind(e.Kind).Normalize())
	}

	for i := range snap.Commitments {
		c := &snap.Commitments[i]
		c.Direction = string(models.CommitmentDirection(c.Direction).Normalize())
		c.Status = string(models.CommitmentStatus(c.Status).Normalize())
		if c.Importance == nil {
			def := 3
			c.Importance = &def
		} else {
			clamped := utils.ClampInt(*c.Importance, 1, 5)
			c.Importance = &clamped
		}
		if c.Urgency == nil {
			def := 3
			c.Urgency = &def
		} else {
			clamped := utils.ClampInt(*c.Urgency, 1, 5)
			c.Urgency = &clamped
		}
	}

	for i := range snap.Reflections {
		r := &snap.Reflections[i]
		r.PeriodType = string(models.PeriodType(r.PeriodType).Normalize())
	}
}
