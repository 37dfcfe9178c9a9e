package repository

import (
	"context"

	"github.com/mindbuilders/dtmms/internal/models"
	"github.com/mindbuilders/dtmms/internal/store"
)

// AttendanceRepository stores attendance marks. Creating a second record for
// the same session and trainee is allowed.
type AttendanceRepository struct {
	records collection[models.AttendanceRecord]
	store   *store.Store
}

func NewAttendanceRepository(st *store.Store) *AttendanceRepository {
	return &AttendanceRepository{records: newCollection[models.AttendanceRecord](st, store.KeyAttendance), store: st}
}

func (r *AttendanceRepository) List(ctx context.Context) ([]models.AttendanceRecord, error) {
	return r.records.all(ctx)
}

func (r *AttendanceRepository) FindByID(ctx context.Context, id string) (*models.AttendanceRecord, error) {
	return r.records.find(ctx, id)
}

func (r *AttendanceRepository) ListBySession(ctx context.Context, sessionID string) ([]models.AttendanceRecord, error) {
	return r.records.filter(ctx, func(a models.AttendanceRecord) bool { return a.SessionID == sessionID })
}

func (r *AttendanceRepository) ListByTrainee(ctx context.Context, traineeID string) ([]models.AttendanceRecord, error) {
	return r.records.filter(ctx, func(a models.AttendanceRecord) bool { return a.TraineeID == traineeID })
}

func (r *AttendanceRepository) Create(ctx context.Context, in models.NewAttendanceRecord) (*models.AttendanceRecord, error) {
	return r.records.insert(ctx, models.AttendanceRecord{
		ID:        newID("att"),
		SessionID: in.SessionID,
		TraineeID: in.TraineeID,
		Status:    in.Status,
		MarkedAt:  r.store.Now(),
		MarkedBy:  in.MarkedBy,
		Notes:     in.Notes,
	})
}

func (r *AttendanceRepository) Update(ctx context.Context, id string, patch models.AttendancePatch) (*models.AttendanceRecord, error) {
	return r.records.modify(ctx, id, patch.Apply)
}
