package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"leader-dojo/feature/tracker/models"

	"gorm.io/gorm"
)

// BuildSnapshot assembles an export of the current store at the current
// schema version. Tombstoned entities are excluded: a snapshot carries
// live data only, deletions travel through the replication layer.
//
// The exported id of an entity is its recorded external id when it has
// one (so the identity stays stable as snapshots hop between devices) and
// its local id otherwise.
func BuildSnapshot(ctx context.Context, db *gorm.DB) (*Snapshot, error) {
	now := time.Now().UTC()
	snap := &Snapshot{SchemaVersion: CurrentSchemaVersion, ExportedAt: &now}

	var projects []models.Project
	if err := db.WithContext(ctx).Order("created_at").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("exporting projects: %w", err)
	}
	for _, p := range projects {
		p := p
		snap.Projects = append(snap.Projects, SnapshotProject{
			ID:           exportID(p.ExternalID, p.ID),
			Name:         p.Name,
			Description:  p.Description,
			Type:         string(p.Type),
			Status:       string(p.Status),
			Priority:     &p.Priority,
			OwnerNotes:   p.OwnerNotes,
			LastActiveAt: p.LastActiveAt,
			CreatedAt:    &p.CreatedAt,
			UpdatedAt:    &p.UpdatedAt,
		})
	}

	var people []models.Person
	if err := db.WithContext(ctx).Order("created_at").Find(&people).Error; err != nil {
		return nil, fmt.Errorf("exporting people: %w", err)
	}
	for _, p := range people {
		p := p
		snap.People = append(snap.People, SnapshotPerson{
			ID:               exportID(p.ExternalID, p.ID),
			Name:             p.Name,
			Organization:     p.Organization,
			Role:             p.Role,
			RelationshipType: p.RelationshipType,
			Notes:            p.Notes,
			CreatedAt:        &p.CreatedAt,
			UpdatedAt:        &p.UpdatedAt,
		})
	}

	// Entities are exported with the same identifier scheme their
	// references use, so FK rewrite on the importing side lines up. The
	// ref maps cover tombstoned rows too: a live entity can still point
	// at a deleted parent, and its reference must export non-empty so
	// re-import does not drop it as dangling.
	projectRef, err := loadRefMap(ctx, db, &models.Project{})
	if err != nil {
		return nil, fmt.Errorf("exporting projects: %w", err)
	}
	personRef, err := loadRefMap(ctx, db, &models.Person{})
	if err != nil {
		return nil, fmt.Errorf("exporting people: %w", err)
	}
	entryRef, err := loadRefMap(ctx, db, &models.Entry{})
	if err != nil {
		return nil, fmt.Errorf("exporting entries: %w", err)
	}

	var entries []models.Entry
	if err := db.WithContext(ctx).Preload("Participants").Order("created_at").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("exporting entries: %w", err)
	}
	for _, e := range entries {
		e := e
		participants := make([]ExtID, 0, len(e.Participants))
		for _, part := range e.Participants {
			if ref, ok := personRef[part.PersonID]; ok {
				participants = append(participants, ref)
			}
		}
		snap.Entries = append(snap.Entries, SnapshotEntry{
			ID:                 exportID(e.ExternalID, e.ID),
			ProjectID:          projectRef[e.ProjectID],
			Kind:               string(e.Kind),
			Title:              e.Title,
			OccurredAt:         e.OccurredAt,
			RawContent:         e.RawContent,
			AISummary:          e.AISummary,
			Decisions:          e.Decisions,
			IsDecision:         FlexBool(e.IsDecision),
			DecisionHypothesis: e.DecisionHypothesis,
			DecisionOutcome:    e.DecisionOutcome,
			ParticipantIDs:     participants,
			CreatedAt:          &e.CreatedAt,
			UpdatedAt:          &e.UpdatedAt,
		})
	}

	var commitments []models.Commitment
	if err := db.WithContext(ctx).Order("created_at").Find(&commitments).Error; err != nil {
		return nil, fmt.Errorf("exporting commitments: %w", err)
	}
	for _, c := range commitments {
		c := c
		snap.Commitments = append(snap.Commitments, SnapshotCommitment{
			ID:            exportID(c.ExternalID, c.ID),
			Title:         c.Title,
			Direction:     string(c.Direction),
			Status:        string(c.Status),
			ProjectID:     refOrEmpty(projectRef, c.ProjectID),
			SourceEntryID: refOrEmpty(entryRef, c.SourceEntryID),
			PersonID:      refOrEmpty(personRef, c.PersonID),
			DueDate:       c.DueDate,
			Importance:    &c.Importance,
			Urgency:       &c.Urgency,
			Notes:         c.Notes,
			CompletedAt:   c.CompletedAt,
			CreatedAt:     &c.CreatedAt,
			UpdatedAt:     &c.UpdatedAt,
		})
	}

	var reflections []models.Reflection
	if err := db.WithContext(ctx).Order("created_at").Find(&reflections).Error; err != nil {
		return nil, fmt.Errorf("exporting reflections: %w", err)
	}
	for _, r := range reflections {
		r := r
		snap.Reflections = append(snap.Reflections, SnapshotReflection{
			ID:               exportID(r.ExternalID, r.ID),
			ProjectID:        refOrEmpty(projectRef, r.ProjectID),
			SourceEntryID:    refOrEmpty(entryRef, r.SourceEntryID),
			PeriodType:       string(r.PeriodType),
			PeriodStart:      r.PeriodStart,
			PeriodEnd:        r.PeriodEnd,
			Stats:            r.Stats,
			QuestionsAnswers: r.QuestionsAnswers,
			AIQuestions:      r.AIQuestions,
			CreatedAt:        &r.CreatedAt,
		})
	}

	return snap, nil
}

// MarshalSnapshot renders a snapshot as the JSON wire format.
func MarshalSnapshot(snap *Snapshot) ([]byte, error) {
	payload := rawSnapshot{
		SchemaVersion: &snap.SchemaVersion,
		ExportedAt:    snap.ExportedAt,
		Projects:      snap.Projects,
		People:        snap.People,
		Entries:       snap.Entries,
		Commitments:   snap.Commitments,
		Reflections:   snap.Reflections,
	}
	return json.MarshalIndent(payload, "", "  ")
}

// loadRefMap maps local id to exported id for every row of a table,
// tombstoned rows included.
func loadRefMap(ctx context.Context, db *gorm.DB, model interface{}) (map[string]ExtID, error) {
	var rows []struct {
		ID         string
		ExternalID *string
	}
	if err := db.WithContext(ctx).Model(model).Unscoped().Select("id", "external_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	refs := make(map[string]ExtID, len(rows))
	for _, r := range rows {
		refs[r.ID] = exportID(r.ExternalID, r.ID)
	}
	return refs, nil
}

func exportID(externalID *string, localID string) ExtID {
	if externalID != nil && *externalID != "" {
		return ExtID(*externalID)
	}
	return ExtID(localID)
}

func refOrEmpty(refs map[string]ExtID, id *string) ExtID {
	if id == nil {
		return ""
	}
	return refs[*id]
}
