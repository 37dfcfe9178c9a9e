package repository

import (
	"context"

	"github.com/mindbuilders/dtmms/internal/models"
	"github.com/mindbuilders/dtmms/internal/store"
)

type MaterialRepository struct {
	materials collection[models.TrainingMaterial]
	store     *store.Store
}

func NewMaterialRepository(st *store.Store) *MaterialRepository {
	return &MaterialRepository{materials: newCollection[models.TrainingMaterial](st, store.KeyMaterials), store: st}
}

func (r *MaterialRepository) List(ctx context.Context) ([]models.TrainingMaterial, error) {
	return r.materials.all(ctx)
}

func (r *MaterialRepository) FindByID(ctx context.Context, id string) (*models.TrainingMaterial, error) {
	return r.materials.find(ctx, id)
}

func (r *MaterialRepository) ListByProgramme(ctx context.Context, programmeID string) ([]models.TrainingMaterial, error) {
	return r.materials.filter(ctx, func(m models.TrainingMaterial) bool { return m.ProgrammeID == programmeID })
}

func (r *MaterialRepository) ListBySession(ctx context.Context, sessionID string) ([]models.TrainingMaterial, error) {
	return r.materials.filter(ctx, func(m models.TrainingMaterial) bool { return m.SessionID == sessionID })
}

func (r *MaterialRepository) Create(ctx context.Context, in models.NewMaterial) (*models.TrainingMaterial, error) {
	return r.materials.insert(ctx, models.TrainingMaterial{
		ID:          newID("mat"),
		ProgrammeID: in.ProgrammeID,
		SessionID:   in.SessionID,
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		URL:         in.URL,
		UploadedBy:  in.UploadedBy,
		UploadedAt:  r.store.Now(),
	})
}

func (r *MaterialRepository) Update(ctx context.Context, id string, patch models.MaterialPatch) (*models.TrainingMaterial, error) {
	return r.materials.modify(ctx, id, patch.Apply)
}

func (r *MaterialRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.materials.remove(ctx, id)
}
