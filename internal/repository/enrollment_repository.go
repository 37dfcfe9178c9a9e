package repository

import (
	"context"

	"github.com/mindbuilders/dtmms/internal/models"
	"github.com/mindbuilders/dtmms/internal/store"
)

// EnrollmentRepository handles persistence of enrollments and keeps the
// enrolled counter of programmes in step with enrollment creation.
type EnrollmentRepository struct {
	enrollments collection[models.Enrollment]
	programmes  *ProgrammeRepository
	store       *store.Store
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(st *store.Store, programmes *ProgrammeRepository) *EnrollmentRepository {
	return &EnrollmentRepository{
		enrollments: newCollection[models.Enrollment](st, store.KeyEnrollments),
		programmes:  programmes,
		store:       st,
	}
}

func (r *EnrollmentRepository) List(ctx context.Context) ([]models.Enrollment, error) {
	return r.enrollments.all(ctx)
}

func (r *EnrollmentRepository) FindByID(ctx context.Context, id string) (*models.Enrollment, error) {
	return r.enrollments.find(ctx, id)
}

func (r *EnrollmentRepository) ListByTrainee(ctx context.Context, traineeID string) ([]models.Enrollment, error) {
	return r.enrollments.filter(ctx, func(e models.Enrollment) bool { return e.TraineeID == traineeID })
}

func (r *EnrollmentRepository) ListByProgramme(ctx context.Context, programmeID string) ([]models.Enrollment, error) {
	return r.enrollments.filter(ctx, func(e models.Enrollment) bool { return e.ProgrammeID == programmeID })
}

// Create appends the enrollment and increments the programme's
// enrolledCount in one locked cycle. An unknown programme id still records
// the enrollment. Duplicates are not rejected.
func (r *EnrollmentRepository) Create(ctx context.Context, in models.NewEnrollment) (*models.Enrollment, error) {
	enrollment := models.Enrollment{
		ID:          newID("enroll"),
		TraineeID:   in.TraineeID,
		ProgrammeID: in.ProgrammeID,
		EnrolledAt:  r.store.Now(),
		Status:      in.Status,
	}

	err := r.store.Locked(func() error {
		if err := r.enrollments.insertLocked(ctx, enrollment); err != nil {
			return err
		}
		return r.programmes.incrementEnrolledLocked(ctx, in.ProgrammeID)
	})
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// Update never touches enrolledCount.
func (r *EnrollmentRepository) Update(ctx context.Context, id string, patch models.EnrollmentPatch) (*models.Enrollment, error) {
	return r.enrollments.modify(ctx, id, patch.Apply)
}
