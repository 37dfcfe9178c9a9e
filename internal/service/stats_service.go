package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mindbuilders/dtmms/internal/models"
	appErrors "github.com/mindbuilders/dtmms/pkg/errors"
)

// placeholderMenteeProgress stands in for mentee progress until progress
// tracking exists.
const placeholderMenteeProgress = 75

type statsUserSource interface {
	List(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type statsProgrammeSource interface {
	List(ctx context.Context) ([]models.Programme, error)
	ListByTrainer(ctx context.Context, trainerID string) ([]models.Programme, error)
}

type statsSessionSource interface {
	ListByTrainer(ctx context.Context, trainerID string) ([]models.Session, error)
}

type statsEnrollmentSource interface {
	List(ctx context.Context) ([]models.Enrollment, error)
	ListByTrainee(ctx context.Context, traineeID string) ([]models.Enrollment, error)
}

type statsAttendanceSource interface {
	List(ctx context.Context) ([]models.AttendanceRecord, error)
	ListByTrainee(ctx context.Context, traineeID string) ([]models.AttendanceRecord, error)
}

type statsMentorshipSource interface {
	ListByMentor(ctx context.Context, mentorID string) ([]models.MentorshipAssignment, error)
	ListByTrainee(ctx context.Context, traineeID string) ([]models.MentorshipAssignment, error)
}

type statsNoteSource interface {
	ListByMentor(ctx context.Context, mentorID string) ([]models.MentorshipNote, error)
}

type statsEvaluationSource interface {
	ListByTrainee(ctx context.Context, traineeID string) ([]models.PerformanceEvaluation, error)
}

type statsMaterialSource interface {
	List(ctx context.Context) ([]models.TrainingMaterial, error)
}

// StatsServiceParams groups constructor dependencies.
type StatsServiceParams struct {
	Users       statsUserSource
	Programmes  statsProgrammeSource
	Sessions    statsSessionSource
	Enrollments statsEnrollmentSource
	Attendance  statsAttendanceSource
	Mentorships statsMentorshipSource
	Notes       statsNoteSource
	Evaluations statsEvaluationSource
	Materials   statsMaterialSource
	Logger      *zap.Logger
	Now         func() time.Time
}

// StatsService derives the per-role dashboard figures. Every call recomputes
// from the stored collections.
type StatsService struct {
	users       statsUserSource
	programmes  statsProgrammeSource
	sessions    statsSessionSource
	enrollments statsEnrollmentSource
	attendance  statsAttendanceSource
	mentorships statsMentorshipSource
	notes       statsNoteSource
	evaluations statsEvaluationSource
	materials   statsMaterialSource
	logger      *zap.Logger
	now         func() time.Time
}

func NewStatsService(params StatsServiceParams) *StatsService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &StatsService{
		users:       params.Users,
		programmes:  params.Programmes,
		sessions:    params.Sessions,
		enrollments: params.Enrollments,
		attendance:  params.Attendance,
		mentorships: params.Mentorships,
		notes:       params.Notes,
		evaluations: params.Evaluations,
		materials:   params.Materials,
		logger:      logger,
		now:         now,
	}
}

// ForUser returns the dashboard matching the user's role.
func (s *StatsService) ForUser(ctx context.Context, user models.User) (*models.Dashboard, error) {
	dashboard := &models.Dashboard{Role: user.Role}
	var err error
	switch user.Role {
	case models.RoleAdmin:
		dashboard.Admin, err = s.Admin(ctx)
	case models.RoleTrainer:
		dashboard.Trainer, err = s.Trainer(ctx, user.ID)
	case models.RoleMentor:
		dashboard.Mentor, err = s.Mentor(ctx, user.ID)
	case models.RoleTrainee:
		dashboard.Trainee, err = s.Trainee(ctx, user.ID)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown role %q", user.Role))
	}
	if err != nil {
		return nil, err
	}
	return dashboard, nil
}

func (s *StatsService) Admin(ctx context.Context) (*models.AdminStats, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, storageError(err, "failed to load users")
	}
	programmes, err := s.programmes.List(ctx)
	if err != nil {
		return nil, storageError(err, "failed to load programmes")
	}
	records, err := s.attendance.List(ctx)
	if err != nil {
		return nil, storageError(err, "failed to load attendance")
	}

	stats := &models.AdminStats{TotalUsers: len(users)}
	for _, u := range users {
		switch u.Role {
		case models.RoleTrainee:
			stats.TotalTrainees++
		case models.RoleTrainer:
			stats.TotalTrainers++
		case models.RoleMentor:
			stats.TotalMentors++
		case models.RoleAdmin:
		}
	}
	for _, p := range programmes {
		switch p.Status {
		case models.ProgrammeOngoing:
			stats.ActiveProgrammes++
		case models.ProgrammeCompleted:
			stats.CompletedProgrammes++
		case models.ProgrammeUpcoming:
			stats.UpcomingProgrammes++
		}
	}
	stats.AverageAttendance = models.AttendanceRate(records)
	return stats, nil
}

// Trainer counts upcoming sessions by comparing YYYY-MM-DD strings against
// today's UTC date.
func (s *StatsService) Trainer(ctx context.Context, trainerID string) (*models.TrainerStats, error) {
	programmes, err := s.programmes.ListByTrainer(ctx, trainerID)
	if err != nil {
		return nil, storageError(err, "failed to load programmes")
	}
	enrollments, err := s.enrollments.List(ctx)
	if err != nil {
		return nil, storageError(err, "failed to load enrollments")
	}
	sessions, err := s.sessions.ListByTrainer(ctx, trainerID)
	if err != nil {
		return nil, storageError(err, "failed to load sessions")
	}
	materials, err := s.materials.List(ctx)
	if err != nil {
		return nil, storageError(err, "failed to load materials")
	}

	owned := make(map[string]struct{}, len(programmes))
	for _, p := range programmes {
		owned[p.ID] = struct{}{}
	}

	trainees := make(map[string]struct{})
	for _, e := range enrollments {
		if _, ok := owned[e.ProgrammeID]; ok {
			trainees[e.TraineeID] = struct{}{}
		}
	}

	today := s.now().UTC().Format(time.DateOnly)
	upcoming := 0
	for _, session := range sessions {
		if session.Date >= today {
			upcoming++
		}
	}

	uploaded := 0
	for _, m := range materials {
		if _, ok := owned[m.ProgrammeID]; ok {
			uploaded++
		}
	}

	return &models.TrainerStats{
		AssignedProgrammes: len(programmes),
		TotalTrainees:      len(trainees),
		UpcomingSessions:   upcoming,
		MaterialsUploaded:  uploaded,
	}, nil
}

func (s *StatsService) Mentor(ctx context.Context, mentorID string) (*models.MentorStats, error) {
	assignments, err := s.mentorships.ListByMentor(ctx, mentorID)
	if err != nil {
		return nil, storageError(err, "failed to load mentorships")
	}
	notes, err := s.notes.ListByMentor(ctx, mentorID)
	if err != nil {
		return nil, storageError(err, "failed to load mentorship notes")
	}

	active := 0
	for _, a := range assignments {
		if a.Status == models.MentorshipActive {
			active++
		}
	}

	return &models.MentorStats{
		AssignedMentees:       len(assignments),
		ActiveMentorships:     active,
		NotesSubmitted:        len(notes),
		AverageMenteeProgress: placeholderMenteeProgress,
	}, nil
}

func (s *StatsService) Trainee(ctx context.Context, traineeID string) (*models.TraineeStats, error) {
	enrollments, err := s.enrollments.ListByTrainee(ctx, traineeID)
	if err != nil {
		return nil, storageError(err, "failed to load enrollments")
	}
	records, err := s.attendance.ListByTrainee(ctx, traineeID)
	if err != nil {
		return nil, storageError(err, "failed to load attendance")
	}
	evaluations, err := s.evaluations.ListByTrainee(ctx, traineeID)
	if err != nil {
		return nil, storageError(err, "failed to load evaluations")
	}
	assignments, err := s.mentorships.ListByTrainee(ctx, traineeID)
	if err != nil {
		return nil, storageError(err, "failed to load mentorships")
	}

	stats := &models.TraineeStats{
		AttendanceRate:     models.AttendanceRate(records),
		AveragePerformance: averagePerformance(evaluations),
	}
	for _, e := range enrollments {
		switch e.Status {
		case models.EnrollmentActive:
			stats.EnrolledProgrammes++
		case models.EnrollmentCompleted:
			stats.CompletedProgrammes++
		case models.EnrollmentDropped:
		}
	}

	for _, a := range assignments {
		if a.Status != models.MentorshipActive {
			continue
		}
		mentor, err := s.users.FindByID(ctx, a.MentorID)
		if err != nil {
			return nil, storageError(err, "failed to load mentor")
		}
		if mentor != nil {
			stats.AssignedMentor = mentor.FullName()
		} else {
			s.logger.Debug("active mentorship references missing mentor",
				zap.String("assignment_id", a.ID), zap.String("mentor_id", a.MentorID))
		}
		break
	}

	return stats, nil
}

// averagePerformance maps the mean overall score (1-5) onto 0-100.
func averagePerformance(evaluations []models.PerformanceEvaluation) int {
	if len(evaluations) == 0 {
		return 0
	}
	total := 0.0
	for _, e := range evaluations {
		total += e.OverallScore
	}
	return int(total/float64(len(evaluations))*20 + 0.5)
}
