package repository

import (
	"context"

	"github.com/mindbuilders/dtmms/internal/models"
	"github.com/mindbuilders/dtmms/internal/store"
)

type EvaluationRepository struct {
	evaluations collection[models.PerformanceEvaluation]
	store       *store.Store
}

func NewEvaluationRepository(st *store.Store) *EvaluationRepository {
	return &EvaluationRepository{evaluations: newCollection[models.PerformanceEvaluation](st, store.KeyEvaluations), store: st}
}

func (r *EvaluationRepository) List(ctx context.Context) ([]models.PerformanceEvaluation, error) {
	return r.evaluations.all(ctx)
}

func (r *EvaluationRepository) FindByID(ctx context.Context, id string) (*models.PerformanceEvaluation, error) {
	return r.evaluations.find(ctx, id)
}

func (r *EvaluationRepository) ListByTrainee(ctx context.Context, traineeID string) ([]models.PerformanceEvaluation, error) {
	return r.evaluations.filter(ctx, func(e models.PerformanceEvaluation) bool { return e.TraineeID == traineeID })
}

func (r *EvaluationRepository) ListByProgramme(ctx context.Context, programmeID string) ([]models.PerformanceEvaluation, error) {
	return r.evaluations.filter(ctx, func(e models.PerformanceEvaluation) bool { return e.ProgrammeID == programmeID })
}

// Create stores OverallScore exactly as given.
func (r *EvaluationRepository) Create(ctx context.Context, in models.NewEvaluation) (*models.PerformanceEvaluation, error) {
	return r.evaluations.insert(ctx, models.PerformanceEvaluation{
		ID:            newID("eval"),
		TraineeID:     in.TraineeID,
		ProgrammeID:   in.ProgrammeID,
		EvaluatorID:   in.EvaluatorID,
		EvaluatorRole: in.EvaluatorRole,
		Scores:        in.Scores,
		OverallScore:  in.OverallScore,
		Comments:      in.Comments,
		CreatedAt:     r.store.Now(),
	})
}

func (r *EvaluationRepository) Update(ctx context.Context, id string, patch models.EvaluationPatch) (*models.PerformanceEvaluation, error) {
	return r.evaluations.modify(ctx, id, patch.Apply)
}
