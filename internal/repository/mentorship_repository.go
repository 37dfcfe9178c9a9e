package repository

import (
	"context"

	"github.com/mindbuilders/dtmms/internal/models"
	"github.com/mindbuilders/dtmms/internal/store"
)

type MentorshipRepository struct {
	assignments collection[models.MentorshipAssignment]
	store       *store.Store
}

func NewMentorshipRepository(st *store.Store) *MentorshipRepository {
	return &MentorshipRepository{assignments: newCollection[models.MentorshipAssignment](st, store.KeyMentorships), store: st}
}

func (r *MentorshipRepository) List(ctx context.Context) ([]models.MentorshipAssignment, error) {
	return r.assignments.all(ctx)
}

func (r *MentorshipRepository) FindByID(ctx context.Context, id string) (*models.MentorshipAssignment, error) {
	return r.assignments.find(ctx, id)
}

func (r *MentorshipRepository) ListByMentor(ctx context.Context, mentorID string) ([]models.MentorshipAssignment, error) {
	return r.assignments.filter(ctx, func(m models.MentorshipAssignment) bool { return m.MentorID == mentorID })
}

func (r *MentorshipRepository) ListByTrainee(ctx context.Context, traineeID string) ([]models.MentorshipAssignment, error) {
	return r.assignments.filter(ctx, func(m models.MentorshipAssignment) bool { return m.TraineeID == traineeID })
}

func (r *MentorshipRepository) Create(ctx context.Context, in models.NewMentorshipAssignment) (*models.MentorshipAssignment, error) {
	return r.assignments.insert(ctx, models.MentorshipAssignment{
		ID:          newID("mentor-assign"),
		MentorID:    in.MentorID,
		TraineeID:   in.TraineeID,
		ProgrammeID: in.ProgrammeID,
		AssignedAt:  r.store.Now(),
		Status:      in.Status,
	})
}

func (r *MentorshipRepository) Update(ctx context.Context, id string, patch models.MentorshipPatch) (*models.MentorshipAssignment, error) {
	return r.assignments.modify(ctx, id, patch.Apply)
}

// MentorshipNoteRepository is append-only.
type MentorshipNoteRepository struct {
	notes collection[models.MentorshipNote]
	store *store.Store
}

func NewMentorshipNoteRepository(st *store.Store) *MentorshipNoteRepository {
	return &MentorshipNoteRepository{notes: newCollection[models.MentorshipNote](st, store.KeyMentorshipNotes), store: st}
}

func (r *MentorshipNoteRepository) List(ctx context.Context) ([]models.MentorshipNote, error) {
	return r.notes.all(ctx)
}

func (r *MentorshipNoteRepository) FindByID(ctx context.Context, id string) (*models.MentorshipNote, error) {
	return r.notes.find(ctx, id)
}

func (r *MentorshipNoteRepository) ListByAssignment(ctx context.Context, assignmentID string) ([]models.MentorshipNote, error) {
	return r.notes.filter(ctx, func(n models.MentorshipNote) bool { return n.AssignmentID == assignmentID })
}

func (r *MentorshipNoteRepository) ListByMentor(ctx context.Context, mentorID string) ([]models.MentorshipNote, error) {
	return r.notes.filter(ctx, func(n models.MentorshipNote) bool { return n.MentorID == mentorID })
}

func (r *MentorshipNoteRepository) Create(ctx context.Context, in models.NewMentorshipNote) (*models.MentorshipNote, error) {
	return r.notes.insert(ctx, models.MentorshipNote{
		ID:           newID("note"),
		AssignmentID: in.AssignmentID,
		MentorID:     in.MentorID,
		TraineeID:    in.TraineeID,
		Content:      in.Content,
		Type:         in.Type,
		CreatedAt:    r.store.Now(),
	})
}
