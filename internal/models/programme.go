package models

import "time"

// ProgrammeStatus tracks where a programme is in its calendar.
type ProgrammeStatus string

const (
	ProgrammeUpcoming  ProgrammeStatus = "upcoming"
	ProgrammeOngoing   ProgrammeStatus = "ongoing"
	ProgrammeCompleted ProgrammeStatus = "completed"
)

func (s ProgrammeStatus) Valid() bool {
	switch s {
	case ProgrammeUpcoming, ProgrammeOngoing, ProgrammeCompleted:
		return true
	default:
		return false
	}
}

// Programme is a training course run by one trainer. EnrolledCount is only
// ever changed by enrollment creation.
type Programme struct {
	ID              string          `json:"id" yaml:"id"`
	Title           string          `json:"title" yaml:"title"`
	Description     string          `json:"description" yaml:"description"`
	Category        string          `json:"category" yaml:"category"`
	StartDate       string          `json:"startDate" yaml:"startDate"`
	EndDate         string          `json:"endDate" yaml:"endDate"`
	TrainerID       string          `json:"trainerId" yaml:"trainerId"`
	MaxParticipants int             `json:"maxParticipants" yaml:"maxParticipants"`
	EnrolledCount   int             `json:"enrolledCount" yaml:"enrolledCount"`
	Status          ProgrammeStatus `json:"status" yaml:"status"`
	CreatedAt       time.Time       `json:"createdAt" yaml:"createdAt"`
}

func (p Programme) Identifier() string { return p.ID }

type NewProgramme struct {
	Title           string
	Description     string
	Category        string
	StartDate       string
	EndDate         string
	TrainerID       string
	MaxParticipants int
	EnrolledCount   int
	Status          ProgrammeStatus
}

type ProgrammePatch struct {
	Title           *string
	Description     *string
	Category        *string
	StartDate       *string
	EndDate         *string
	TrainerID       *string
	MaxParticipants *int
	Status          *ProgrammeStatus
}

func (p ProgrammePatch) Apply(dst *Programme) {
	setIf(&dst.Title, p.Title)
	setIf(&dst.Description, p.Description)
	setIf(&dst.Category, p.Category)
	setIf(&dst.StartDate, p.StartDate)
	setIf(&dst.EndDate, p.EndDate)
	setIf(&dst.TrainerID, p.TrainerID)
	setIf(&dst.MaxParticipants, p.MaxParticipants)
	setIf(&dst.Status, p.Status)
}
