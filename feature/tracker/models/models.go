package models

import (
	"time"

	"gorm.io/gorm"
)

// Project is a tracked project, relationship, or area of responsibility.
// It owns its entries, commitments, and reflections: a physical delete of
// a project cascades to them.
type Project struct {
	ID         string  `gorm:"primaryKey;size:36" json:"id"`
	ExternalID *string `gorm:"uniqueIndex;size:64" json:"externalId,omitempty"`

	Name         string        `gorm:"size:255;not null" json:"name"`
	Description  string        `json:"description,omitempty"`
	Type         ProjectType   `gorm:"size:16" json:"type"`
	Status       ProjectStatus `gorm:"size:16;index" json:"status"`
	Priority     int           `json:"priority"`
	OwnerNotes   string        `json:"ownerNotes,omitempty"`
	LastActiveAt *time.Time    `json:"lastActiveAt,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Person is someone referenced by entries, commitments, and reflections.
// People are referenced, never owned: deleting a project leaves its
// participants in place.
type Person struct {
	ID         string  `gorm:"primaryKey;size:36" json:"id"`
	ExternalID *string `gorm:"uniqueIndex;size:64" json:"externalId,omitempty"`

	Name             string `gorm:"size:255;not null" json:"name"`
	Organization     string `json:"organization,omitempty"`
	Role             string `json:"role,omitempty"`
	RelationshipType string `gorm:"size:32" json:"relationshipType,omitempty"`
	Notes            string `json:"notes,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Entry is a timeline record (meeting, update, decision, ...) attached to
// exactly one project.
type Entry struct {
	ID         string  `gorm:"primaryKey;size:36" json:"id"`
	ExternalID *string `gorm:"uniqueIndex;size:64" json:"externalId,omitempty"`

	ProjectID  string     `gorm:"size:36;not null;index" json:"projectId"`
	Kind       EntryKind  `gorm:"size:16;index" json:"kind"`
	Title      string     `gorm:"size:255;not null" json:"title"`
	OccurredAt *time.Time `json:"occurredAt,omitempty"`

	RawContent string `json:"rawContent,omitempty"`
	AISummary  string `json:"aiSummary,omitempty"`

	Decisions          string `json:"decisions,omitempty"`
	IsDecision         bool   `json:"isDecision"`
	DecisionHypothesis string `json:"decisionHypothesis,omitempty"`
	DecisionOutcome    string `json:"decisionOutcome,omitempty"`

	// Participants are loaded through the entry_participants join table.
	Participants []EntryParticipant `gorm:"foreignKey:EntryID" json:"participants,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// EntryParticipant links an entry to a person taking part in it.
// Modeled as an explicit join row so the importer can rewrite person ids
// through its translation table without association magic.
type EntryParticipant struct {
	EntryID  string `gorm:"primaryKey;size:36" json:"entryId"`
	PersonID string `gorm:"primaryKey;size:36" json:"personId"`
}

// TableName keeps the join table name stable across drivers.
func (EntryParticipant) TableName() string {
	return "entry_participants"
}

// Commitment is something owed to or by the owner. All its references are
// optional.
type Commitment struct {
	ID         string  `gorm:"primaryKey;size:36" json:"id"`
	ExternalID *string `gorm:"uniqueIndex;size:64" json:"externalId,omitempty"`

	Title     string              `gorm:"size:255;not null" json:"title"`
	Direction CommitmentDirection `gorm:"size:16" json:"direction"`
	Status    CommitmentStatus    `gorm:"size:16;index" json:"status"`

	ProjectID     *string `gorm:"size:36;index" json:"projectId,omitempty"`
	SourceEntryID *string `gorm:"size:36" json:"sourceEntryId,omitempty"`
	PersonID      *string `gorm:"size:36" json:"personId,omitempty"`

	DueDate     *time.Time `json:"dueDate,omitempty"`
	Importance  int        `json:"importance"`
	Urgency     int        `json:"urgency"`
	Notes       string     `json:"notes,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Reflection is a periodic review, optionally tied to a project or a
// source entry.
type Reflection struct {
	ID         string  `gorm:"primaryKey;size:36" json:"id"`
	ExternalID *string `gorm:"uniqueIndex;size:64" json:"externalId,omitempty"`

	ProjectID     *string `gorm:"size:36;index" json:"projectId,omitempty"`
	SourceEntryID *string `gorm:"size:36" json:"sourceEntryId,omitempty"`

	PeriodType  PeriodType `gorm:"size:16" json:"periodType"`
	PeriodStart *time.Time `json:"periodStart,omitempty"`
	PeriodEnd   *time.Time `json:"periodEnd,omitempty"`

	Stats            StatsBlob  `gorm:"type:text" json:"stats,omitempty"`
	QuestionsAnswers QAList     `gorm:"type:text" json:"questionsAnswers,omitempty"`
	AIQuestions      StringList `gorm:"type:text" json:"aiQuestions,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// All returns the models in commit order, for migration.
func All() []any {
	return []any{
		&Project{},
		&Person{},
		&Entry{},
		&EntryParticipant{},
		&Commitment{},
		&Reflection{},
	}
}
