package importer

import (
	"context"
	"fmt"
	"time"

	"leader-dojo/feature/tracker/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Execute applies a finalized plan inside one transaction. Creates
// allocate local ids and feed the translation table; updates are
// import-wins on scalar fields; foreign keys are rewritten through the
// translation table so references to entities created earlier in the same
// batch resolve. Any storage failure rolls the whole transaction back and
// the store is left exactly as it was.
//
// Execute trusts the plan: validation and referential checks happened in
// Resolve and Order, so the only errors left are storage-level ones.
func Execute(ctx context.Context, db *gorm.DB, plan *Plan, idx *LocalIndex) error {
	exec := &executor{
		plan:    plan,
		idx:     idx,
		created: make(map[models.EntityKind]map[string]string, len(models.KindOrder)),
	}
	for _, kind := range models.KindOrder {
		exec.created[kind] = make(map[string]string)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, kind := range models.KindOrder {
			for i := range plan.Ops[kind] {
				op := &plan.Ops[kind][i]
				if op.Action == ActionSkip {
					continue
				}
				if err := exec.apply(tx, op); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

type executor struct {
	plan *Plan
	idx  *LocalIndex
	// created is the translation table for entities allocated in this
	// batch, keyed by snapshot external id.
	created map[models.EntityKind]map[string]string
}

// translate resolves an external id to a local id, checking this batch's
// creations first and the pre-import store second.
func (e *executor) translate(kind models.EntityKind, ref string) (string, bool) {
	if ref == "" {
		return "", false
	}
	if id, ok := e.created[kind][ref]; ok {
		return id, true
	}
	if lref, ok := e.idx.Lookup(kind, ref); ok {
		return lref.ID, true
	}
	return "", false
}

// mustTranslate is translate for references the orderer already proved
// resolvable.
func (e *executor) mustTranslate(kind models.EntityKind, ref string) (string, error) {
	id, ok := e.translate(kind, ref)
	if !ok {
		return "", fmt.Errorf("reference %s %q not in translation table", kind, ref)
	}
	return id, nil
}

// translatePtr resolves an optional reference, mapping a null reference
// to a null column.
func (e *executor) translatePtr(kind models.EntityKind, ref ExtID) (*string, error) {
	if ref == "" {
		return nil, nil
	}
	id, err := e.mustTranslate(kind, string(ref))
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (e *executor) apply(tx *gorm.DB, op *Op) error {
	switch op.Kind {
	case models.KindProject:
		return e.applyProject(tx, op)
	case models.KindPerson:
		return e.applyPerson(tx, op)
	case models.KindEntry:
		return e.applyEntry(tx, op)
	case models.KindCommitment:
		return e.applyCommitment(tx, op)
	case models.KindReflection:
		return e.applyReflection(tx, op)
	default:
		return fmt.Errorf("unknown entity kind %q", op.Kind)
	}
}

func (e *executor) applyProject(tx *gorm.DB, op *Op) error {
	p := e.plan.Snapshot.Projects[op.Index]

	if op.Action == ActionCreate {
		createdAt, updatedAt := auditTimes(p.CreatedAt, p.UpdatedAt)
		rec := models.Project{
			ID:           uuid.NewString(),
			ExternalID:   externalIDPtr(op.ExternalID),
			Name:         p.Name,
			Description:  p.Description,
			Type:         models.ProjectType(p.Type),
			Status:       models.ProjectStatus(p.Status),
			Priority:     *p.Priority,
			OwnerNotes:   p.OwnerNotes,
			LastActiveAt: p.LastActiveAt,
			CreatedAt:    createdAt,
			UpdatedAt:    updatedAt,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return fmt.Errorf("creating project %q: %w", p.Name, err)
		}
		e.recordCreated(op, rec.ID)
		return nil
	}

	updates := map[string]any{
		"name":           p.Name,
		"description":    p.Description,
		"type":           string(models.ProjectType(p.Type)),
		"status":         string(models.ProjectStatus(p.Status)),
		"priority":       *p.Priority,
		"owner_notes":    p.OwnerNotes,
		"last_active_at": p.LastActiveAt,
		"updated_at":     e.updateTime(op, p.UpdatedAt),
	}
	if err := tx.Model(&models.Project{}).Where("id = ?", op.LocalID).Updates(updates).Error; err != nil {
		return fmt.Errorf("updating project %q: %w", p.Name, err)
	}
	return nil
}

func (e *executor) applyPerson(tx *gorm.DB, op *Op) error {
	p := e.plan.Snapshot.People[op.Index]

	if op.Action == ActionCreate {
		createdAt, updatedAt := auditTimes(p.CreatedAt, p.UpdatedAt)
		rec := models.Person{
			ID:               uuid.NewString(),
			ExternalID:       externalIDPtr(op.ExternalID),
			Name:             p.Name,
			Organization:     p.Organization,
			Role:             p.Role,
			RelationshipType: p.RelationshipType,
			Notes:            p.Notes,
			CreatedAt:        createdAt,
			UpdatedAt:        updatedAt,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return fmt.Errorf("creating person %q: %w", p.Name, err)
		}
		e.recordCreated(op, rec.ID)
		return nil
	}

	updates := map[string]any{
		"name":              p.Name,
		"organization":      p.Organization,
		"role":              p.Role,
		"relationship_type": p.RelationshipType,
		"notes":             p.Notes,
		"updated_at":        e.updateTime(op, p.UpdatedAt),
	}
	if err := tx.Model(&models.Person{}).Where("id = ?", op.LocalID).Updates(updates).Error; err != nil {
		return fmt.Errorf("updating person %q: %w", p.Name, err)
	}
	return nil
}

func (e *executor) applyEntry(tx *gorm.DB, op *Op) error {
	en := e.plan.Snapshot.Entries[op.Index]

	projectID, err := e.mustTranslate(models.KindProject, string(en.ProjectID))
	if err != nil {
		return err
	}

	participantIDs := make([]string, 0, len(en.ParticipantIDs))
	for _, pid := range en.ParticipantIDs {
		id, err := e.mustTranslate(models.KindPerson, string(pid))
		if err != nil {
			return err
		}
		participantIDs = append(participantIDs, id)
	}

	localID := op.LocalID
	if op.Action == ActionCreate {
		createdAt, updatedAt := auditTimes(en.CreatedAt, en.UpdatedAt)
		rec := models.Entry{
			ID:                 uuid.NewString(),
			ExternalID:         externalIDPtr(op.ExternalID),
			ProjectID:          projectID,
			Kind:               models.EntryKind(en.Kind),
			Title:              en.Title,
			OccurredAt:         en.OccurredAt,
			RawContent:         en.RawContent,
			AISummary:          en.AISummary,
			Decisions:          en.Decisions,
			IsDecision:         bool(en.IsDecision),
			DecisionHypothesis: en.DecisionHypothesis,
			DecisionOutcome:    en.DecisionOutcome,
			CreatedAt:          createdAt,
			UpdatedAt:          updatedAt,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return fmt.Errorf("creating entry %q: %w", en.Title, err)
		}
		e.recordCreated(op, rec.ID)
		localID = rec.ID
	} else {
		updates := map[string]any{
			"project_id":          projectID,
			"kind":                string(models.EntryKind(en.Kind)),
			"title":               en.Title,
			"occurred_at":         en.OccurredAt,
			"raw_content":         en.RawContent,
			"ai_summary":          en.AISummary,
			"decisions":           en.Decisions,
			"is_decision":         bool(en.IsDecision),
			"decision_hypothesis": en.DecisionHypothesis,
			"decision_outcome":    en.DecisionOutcome,
			"updated_at":          e.updateTime(op, en.UpdatedAt),
		}
		if err := tx.Model(&models.Entry{}).Where("id = ?", op.LocalID).Updates(updates).Error; err != nil {
			return fmt.Errorf("updating entry %q: %w", en.Title, err)
		}
		// Participants are replaced wholesale on update.
		if err := tx.Where("entry_id = ?", op.LocalID).Delete(&models.EntryParticipant{}).Error; err != nil {
			return fmt.Errorf("clearing participants of entry %q: %w", en.Title, err)
		}
	}

	for _, personID := range participantIDs {
		row := models.EntryParticipant{EntryID: localID, PersonID: personID}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("adding participant to entry %q: %w", en.Title, err)
		}
	}
	return nil
}

func (e *executor) applyCommitment(tx *gorm.DB, op *Op) error {
	c := e.plan.Snapshot.Commitments[op.Index]

	projectID, err := e.translatePtr(models.KindProject, c.ProjectID)
	if err != nil {
		return err
	}
	sourceEntryID, err := e.translatePtr(models.KindEntry, c.SourceEntryID)
	if err != nil {
		return err
	}
	personID, err := e.translatePtr(models.KindPerson, c.PersonID)
	if err != nil {
		return err
	}

	if op.Action == ActionCreate {
		createdAt, updatedAt := auditTimes(c.CreatedAt, c.UpdatedAt)
		rec := models.Commitment{
			ID:            uuid.NewString(),
			ExternalID:    externalIDPtr(op.ExternalID),
			Title:         c.Title,
			Direction:     models.CommitmentDirection(c.Direction),
			Status:        models.CommitmentStatus(c.Status),
			ProjectID:     projectID,
			SourceEntryID: sourceEntryID,
			PersonID:      personID,
			DueDate:       c.DueDate,
			Importance:    *c.Importance,
			Urgency:       *c.Urgency,
			Notes:         c.Notes,
			CompletedAt:   c.CompletedAt,
			CreatedAt:     createdAt,
			UpdatedAt:     updatedAt,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return fmt.Errorf("creating commitment %q: %w", c.Title, err)
		}
		e.recordCreated(op, rec.ID)
		return nil
	}

	updates := map[string]any{
		"title":           c.Title,
		"direction":       string(models.CommitmentDirection(c.Direction)),
		"status":          string(models.CommitmentStatus(c.Status)),
		"project_id":      projectID,
		"source_entry_id": sourceEntryID,
		"person_id":       personID,
		"due_date":        c.DueDate,
		"importance":      *c.Importance,
		"urgency":         *c.Urgency,
		"notes":           c.Notes,
		"completed_at":    c.CompletedAt,
		"updated_at":      e.updateTime(op, c.UpdatedAt),
	}
	if err := tx.Model(&models.Commitment{}).Where("id = ?", op.LocalID).Updates(updates).Error; err != nil {
		return fmt.Errorf("updating commitment %q: %w", c.Title, err)
	}
	return nil
}

func (e *executor) applyReflection(tx *gorm.DB, op *Op) error {
	r := e.plan.Snapshot.Reflections[op.Index]

	projectID, err := e.translatePtr(models.KindProject, r.ProjectID)
	if err != nil {
		return err
	}
	sourceEntryID, err := e.translatePtr(models.KindEntry, r.SourceEntryID)
	if err != nil {
		return err
	}

	if op.Action == ActionCreate {
		createdAt, updatedAt := auditTimes(r.CreatedAt, nil)
		rec := models.Reflection{
			ID:               uuid.NewString(),
			ExternalID:       externalIDPtr(op.ExternalID),
			ProjectID:        projectID,
			SourceEntryID:    sourceEntryID,
			PeriodType:       models.PeriodType(r.PeriodType),
			PeriodStart:      r.PeriodStart,
			PeriodEnd:        r.PeriodEnd,
			Stats:            r.Stats,
			QuestionsAnswers: r.QuestionsAnswers,
			AIQuestions:      r.AIQuestions,
			CreatedAt:        createdAt,
			UpdatedAt:        updatedAt,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return fmt.Errorf("creating reflection: %w", err)
		}
		e.recordCreated(op, rec.ID)
		return nil
	}

	updates := map[string]any{
		"project_id":        projectID,
		"source_entry_id":   sourceEntryID,
		"period_type":       string(models.PeriodType(r.PeriodType)),
		"period_start":      r.PeriodStart,
		"period_end":        r.PeriodEnd,
		"stats":             r.Stats,
		"questions_answers": r.QuestionsAnswers,
		"ai_questions":      r.AIQuestions,
		"updated_at":        e.updateTime(op, nil),
	}
	if err := tx.Model(&models.Reflection{}).Where("id = ?", op.LocalID).Updates(updates).Error; err != nil {
		return fmt.Errorf("updating reflection: %w", err)
	}
	return nil
}

func (e *executor) recordCreated(op *Op, localID string) {
	if op.ExternalID != "" {
		e.created[op.Kind][op.ExternalID] = localID
	}
}

func externalIDPtr(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

// auditTimes derives create/update audit timestamps from the snapshot's,
// falling back to now and enforcing updatedAt >= createdAt.
func auditTimes(createdAt, updatedAt *time.Time) (time.Time, time.Time) {
	now := time.Now().UTC()
	c := now
	if createdAt != nil && !createdAt.IsZero() {
		c = createdAt.UTC()
	}
	u := c
	if updatedAt != nil && updatedAt.UTC().After(c) {
		u = updatedAt.UTC()
	}
	return c, u
}

// updateTime picks the update timestamp for the matched row: the
// snapshot's when present, otherwise now — floored at the row's
// created_at, same as auditTimes does on create. Without the floor a
// payload carrying updatedAt < createdAt would leave the row with an
// update time before its creation on re-import.
func (e *executor) updateTime(op *Op, updatedAt *time.Time) time.Time {
	u := time.Now().UTC()
	if updatedAt != nil && !updatedAt.IsZero() {
		u = updatedAt.UTC()
	}
	if ref, ok := e.idx.Lookup(op.Kind, op.LocalID); ok && u.Before(ref.CreatedAt) {
		return ref.CreatedAt
	}
	return u
}
