package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/mindbuilders/dtmms/internal/models"
)

type reportProgrammeSource interface {
	FindByID(ctx context.Context, id string) (*models.Programme, error)
}

type reportSessionSource interface {
	ListByProgramme(ctx context.Context, programmeID string) ([]models.Session, error)
}

type reportAttendanceSource interface {
	List(ctx context.Context) ([]models.AttendanceRecord, error)
}

type reportEnrollmentSource interface {
	ListByProgramme(ctx context.Context, programmeID string) ([]models.Enrollment, error)
}

type reportEvaluationSource interface {
	ListByTrainee(ctx context.Context, traineeID string) ([]models.PerformanceEvaluation, error)
}

// ReportServiceParams groups constructor dependencies.
type ReportServiceParams struct {
	Programmes  reportProgrammeSource
	Sessions    reportSessionSource
	Attendance  reportAttendanceSource
	Enrollments reportEnrollmentSource
	Evaluations reportEvaluationSource
	Users       userLookup
	Logger      *zap.Logger
}

// ReportService assembles programme attendance and trainee performance
// reports.
type ReportService struct {
	programmes  reportProgrammeSource
	sessions    reportSessionSource
	attendance  reportAttendanceSource
	enrollments reportEnrollmentSource
	evaluations reportEvaluationSource
	users       userLookup
	logger      *zap.Logger
}

func NewReportService(params ReportServiceParams) *ReportService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		programmes:  params.Programmes,
		sessions:    params.Sessions,
		attendance:  params.Attendance,
		enrollments: params.Enrollments,
		evaluations: params.Evaluations,
		users:       params.Users,
		logger:      logger,
	}
}

// AttendanceReport covers every record of the programme's sessions. Enrolled
// trainees without records are listed with zero counts. Trainees are ordered
// by name.
func (s *ReportService) AttendanceReport(ctx context.Context, programmeID string) (*models.AttendanceReport, error) {
	programme, err := s.programmes.FindByID(ctx, programmeID)
	if err != nil {
		return nil, storageError(err, "failed to load programme")
	}
	if programme == nil {
		return nil, notFound("programme not found")
	}
	sessions, err := s.sessions.ListByProgramme(ctx, programmeID)
	if err != nil {
		return nil, storageError(err, "failed to load sessions")
	}
	records, err := s.attendance.List(ctx)
	if err != nil {
		return nil, storageError(err, "failed to load attendance")
	}
	enrollments, err := s.enrollments.ListByProgramme(ctx, programmeID)
	if err != nil {
		return nil, storageError(err, "failed to load enrollments")
	}

	inProgramme := make(map[string]struct{}, len(sessions))
	for _, session := range sessions {
		inProgramme[session.ID] = struct{}{}
	}

	byTrainee := make(map[string][]models.AttendanceRecord)
	order := make([]string, 0)
	track := func(traineeID string) {
		if _, seen := byTrainee[traineeID]; !seen {
			byTrainee[traineeID] = nil
			order = append(order, traineeID)
		}
	}
	for _, e := range enrollments {
		track(e.TraineeID)
	}

	programmeRecords := make([]models.AttendanceRecord, 0)
	for _, r := range records {
		if _, ok := inProgramme[r.SessionID]; !ok {
			continue
		}
		programmeRecords = append(programmeRecords, r)
		track(r.TraineeID)
		byTrainee[r.TraineeID] = append(byTrainee[r.TraineeID], r)
	}

	stats := make([]models.TraineeAttendanceStats, 0, len(order))
	for _, traineeID := range order {
		name, err := s.displayName(ctx, traineeID)
		if err != nil {
			return nil, err
		}
		row := models.TraineeAttendanceStats{
			TraineeID:      traineeID,
			TraineeName:    name,
			AttendanceRate: models.AttendanceRate(byTrainee[traineeID]),
		}
		for _, r := range byTrainee[traineeID] {
			switch r.Status {
			case models.AttendancePresent:
				row.Present++
			case models.AttendanceAbsent:
				row.Absent++
			case models.AttendanceLate:
				row.Late++
			case models.AttendanceExcused:
				row.Excused++
			}
		}
		stats = append(stats, row)
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TraineeName < stats[j].TraineeName
	})

	return &models.AttendanceReport{
		ProgrammeID:       programme.ID,
		ProgrammeName:     programme.Title,
		TotalSessions:     len(sessions),
		AverageAttendance: models.AttendanceRate(programmeRecords),
		TraineeStats:      stats,
	}, nil
}

// PerformanceReport groups a trainee's evaluations by programme in the order
// they were first evaluated.
func (s *ReportService) PerformanceReport(ctx context.Context, traineeID string) (*models.PerformanceReport, error) {
	trainee, err := s.users.FindByID(ctx, traineeID)
	if err != nil {
		return nil, storageError(err, "failed to load trainee")
	}
	if trainee == nil {
		return nil, notFound("trainee not found")
	}
	evaluations, err := s.evaluations.ListByTrainee(ctx, traineeID)
	if err != nil {
		return nil, storageError(err, "failed to load evaluations")
	}

	grouped := make(map[string]*models.ProgrammePerformance)
	programmes := make([]*models.ProgrammePerformance, 0)
	total := 0.0
	for _, e := range evaluations {
		total += e.OverallScore
		entry, ok := grouped[e.ProgrammeID]
		if !ok {
			entry = &models.ProgrammePerformance{ProgrammeID: e.ProgrammeID, ProgrammeName: e.ProgrammeID}
			programme, err := s.programmes.FindByID(ctx, e.ProgrammeID)
			if err != nil {
				return nil, storageError(err, "failed to load programme")
			}
			if programme != nil {
				entry.ProgrammeName = programme.Title
			}
			grouped[e.ProgrammeID] = entry
			programmes = append(programmes, entry)
		}
		entry.Evaluations = append(entry.Evaluations, e)
	}

	report := &models.PerformanceReport{
		TraineeID:   trainee.ID,
		TraineeName: trainee.FullName(),
		Programmes:  make([]models.ProgrammePerformance, 0, len(programmes)),
	}
	for _, entry := range programmes {
		sum := 0.0
		for _, e := range entry.Evaluations {
			sum += e.OverallScore
		}
		entry.AverageScore = roundTenth(sum / float64(len(entry.Evaluations)))
		report.Programmes = append(report.Programmes, *entry)
	}
	if len(evaluations) > 0 {
		report.OverallAverage = roundTenth(total / float64(len(evaluations)))
	}
	return report, nil
}

// displayName falls back to the id for trainees that no longer exist.
func (s *ReportService) displayName(ctx context.Context, userID string) (string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", storageError(err, "failed to load trainee")
	}
	if user == nil {
		return userID, nil
	}
	return user.FullName(), nil
}

func roundTenth(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
