package models

import "time"

// EnrollmentStatus represents the lifecycle of an enrollment.
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentDropped   EnrollmentStatus = "dropped"
)

func (s EnrollmentStatus) Valid() bool {
	switch s {
	case EnrollmentActive, EnrollmentCompleted, EnrollmentDropped:
		return true
	default:
		return false
	}
}

// Enrollment registers a trainee in a programme.
type Enrollment struct {
	ID          string           `json:"id" yaml:"id"`
	TraineeID   string           `json:"traineeId" yaml:"traineeId"`
	ProgrammeID string           `json:"programmeId" yaml:"programmeId"`
	EnrolledAt  time.Time        `json:"enrolledAt" yaml:"enrolledAt"`
	Status      EnrollmentStatus `json:"status" yaml:"status"`
}

func (e Enrollment) Identifier() string { return e.ID }

type NewEnrollment struct {
	TraineeID   string
	ProgrammeID string
	Status      EnrollmentStatus
}

// EnrollmentPatch only allows the status to move; the trainee and programme
// of an enrollment are fixed.
type EnrollmentPatch struct {
	Status *EnrollmentStatus
}

func (p EnrollmentPatch) Apply(dst *Enrollment) {
	setIf(&dst.Status, p.Status)
}
