package repository

import (
	"context"

	"github.com/mindbuilders/dtmms/internal/models"
	"github.com/mindbuilders/dtmms/internal/store"
)

type ProgrammeRepository struct {
	programmes collection[models.Programme]
	store      *store.Store
}

func NewProgrammeRepository(st *store.Store) *ProgrammeRepository {
	return &ProgrammeRepository{programmes: newCollection[models.Programme](st, store.KeyProgrammes), store: st}
}

func (r *ProgrammeRepository) List(ctx context.Context) ([]models.Programme, error) {
	return r.programmes.all(ctx)
}

func (r *ProgrammeRepository) FindByID(ctx context.Context, id string) (*models.Programme, error) {
	return r.programmes.find(ctx, id)
}

func (r *ProgrammeRepository) ListByTrainer(ctx context.Context, trainerID string) ([]models.Programme, error) {
	return r.programmes.filter(ctx, func(p models.Programme) bool { return p.TrainerID == trainerID })
}

func (r *ProgrammeRepository) Create(ctx context.Context, in models.NewProgramme) (*models.Programme, error) {
	return r.programmes.insert(ctx, models.Programme{
		ID:              newID("prog"),
		Title:           in.Title,
		Description:     in.Description,
		Category:        in.Category,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		TrainerID:       in.TrainerID,
		MaxParticipants: in.MaxParticipants,
		EnrolledCount:   in.EnrolledCount,
		Status:          in.Status,
		CreatedAt:       r.store.Now(),
	})
}

func (r *ProgrammeRepository) Update(ctx context.Context, id string, patch models.ProgrammePatch) (*models.Programme, error) {
	return r.programmes.modify(ctx, id, patch.Apply)
}

// Delete leaves sessions, enrollments and materials of the programme in
// place.
func (r *ProgrammeRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.programmes.remove(ctx, id)
}

// incrementEnrolledLocked bumps enrolledCount of the programme, if it
// exists. The caller holds the store lock.
func (r *ProgrammeRepository) incrementEnrolledLocked(ctx context.Context, id string) error {
	_, err := r.programmes.modifyLocked(ctx, id, func(p *models.Programme) {
		p.EnrolledCount++
	})
	return err
}
