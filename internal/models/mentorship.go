package models

import "time"

type MentorshipStatus string

const (
	MentorshipActive    MentorshipStatus = "active"
	MentorshipCompleted MentorshipStatus = "completed"
	MentorshipPaused    MentorshipStatus = "paused"
)

func (s MentorshipStatus) Valid() bool {
	switch s {
	case MentorshipActive, MentorshipCompleted, MentorshipPaused:
		return true
	default:
		return false
	}
}

// MentorshipAssignment pairs a mentor with a trainee within a programme.
type MentorshipAssignment struct {
	ID          string           `json:"id" yaml:"id"`
	MentorID    string           `json:"mentorId" yaml:"mentorId"`
	TraineeID   string           `json:"traineeId" yaml:"traineeId"`
	ProgrammeID string           `json:"programmeId" yaml:"programmeId"`
	AssignedAt  time.Time        `json:"assignedAt" yaml:"assignedAt"`
	Status      MentorshipStatus `json:"status" yaml:"status"`
}

func (m MentorshipAssignment) Identifier() string { return m.ID }

type NewMentorshipAssignment struct {
	MentorID    string
	TraineeID   string
	ProgrammeID string
	Status      MentorshipStatus
}

type MentorshipPatch struct {
	Status *MentorshipStatus
}

func (p MentorshipPatch) Apply(dst *MentorshipAssignment) {
	setIf(&dst.Status, p.Status)
}

type NoteType string

const (
	NoteProgress NoteType = "progress"
	NoteMeeting  NoteType = "meeting"
	NoteConcern  NoteType = "concern"
	NoteFeedback NoteType = "feedback"
)

func (t NoteType) Valid() bool {
	switch t {
	case NoteProgress, NoteMeeting, NoteConcern, NoteFeedback:
		return true
	default:
		return false
	}
}

// MentorshipNote is append-only.
type MentorshipNote struct {
	ID           string    `json:"id" yaml:"id"`
	AssignmentID string    `json:"assignmentId" yaml:"assignmentId"`
	MentorID     string    `json:"mentorId" yaml:"mentorId"`
	TraineeID    string    `json:"traineeId" yaml:"traineeId"`
	Content      string    `json:"content" yaml:"content"`
	Type         NoteType  `json:"type" yaml:"type"`
	CreatedAt    time.Time `json:"createdAt" yaml:"createdAt"`
}

func (n MentorshipNote) Identifier() string { return n.ID }

type NewMentorshipNote struct {
	AssignmentID string
	MentorID     string
	TraineeID    string
	Content      string
	Type         NoteType
}
