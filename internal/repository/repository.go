package repository

import "github.com/mindbuilders/dtmms/internal/store"

// Repositories bundles one repository per collection over a shared store.
type Repositories struct {
	Users           *UserRepository
	Programmes      *ProgrammeRepository
	Sessions        *SessionRepository
	Enrollments     *EnrollmentRepository
	Attendance      *AttendanceRepository
	Mentorships     *MentorshipRepository
	MentorshipNotes *MentorshipNoteRepository
	Evaluations     *EvaluationRepository
	Materials       *MaterialRepository
	Messages        *MessageRepository
	Notifications   *NotificationRepository
}

func New(st *store.Store) *Repositories {
	programmes := NewProgrammeRepository(st)
	return &Repositories{
		Users:           NewUserRepository(st),
		Programmes:      programmes,
		Sessions:        NewSessionRepository(st),
		Enrollments:     NewEnrollmentRepository(st, programmes),
		Attendance:      NewAttendanceRepository(st),
		Mentorships:     NewMentorshipRepository(st),
		MentorshipNotes: NewMentorshipNoteRepository(st),
		Evaluations:     NewEvaluationRepository(st),
		Materials:       NewMaterialRepository(st),
		Messages:        NewMessageRepository(st),
		Notifications:   NewNotificationRepository(st),
	}
}
