package repository

import (
	"context"

	"github.com/mindbuilders/dtmms/internal/models"
	"github.com/mindbuilders/dtmms/internal/store"
)

type SessionRepository struct {
	sessions collection[models.Session]
}

func NewSessionRepository(st *store.Store) *SessionRepository {
	return &SessionRepository{sessions: newCollection[models.Session](st, store.KeySessions)}
}

func (r *SessionRepository) List(ctx context.Context) ([]models.Session, error) {
	return r.sessions.all(ctx)
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (*models.Session, error) {
	return r.sessions.find(ctx, id)
}

func (r *SessionRepository) ListByProgramme(ctx context.Context, programmeID string) ([]models.Session, error) {
	return r.sessions.filter(ctx, func(s models.Session) bool { return s.ProgrammeID == programmeID })
}

func (r *SessionRepository) ListByTrainer(ctx context.Context, trainerID string) ([]models.Session, error) {
	return r.sessions.filter(ctx, func(s models.Session) bool { return s.TrainerID == trainerID })
}

func (r *SessionRepository) Create(ctx context.Context, in models.NewSession) (*models.Session, error) {
	return r.sessions.insert(ctx, models.Session{
		ID:          newID("session"),
		ProgrammeID: in.ProgrammeID,
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Venue:       in.Venue,
		TrainerID:   in.TrainerID,
	})
}

func (r *SessionRepository) Update(ctx context.Context, id string, patch models.SessionPatch) (*models.Session, error) {
	return r.sessions.modify(ctx, id, patch.Apply)
}

func (r *SessionRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.sessions.remove(ctx, id)
}
