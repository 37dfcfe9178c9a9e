package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mindbuilders/dtmms/internal/models"
	appErrors "github.com/mindbuilders/dtmms/pkg/errors"
)

type mentorshipRepository interface {
	List(ctx context.Context) ([]models.MentorshipAssignment, error)
	FindByID(ctx context.Context, id string) (*models.MentorshipAssignment, error)
	ListByMentor(ctx context.Context, mentorID string) ([]models.MentorshipAssignment, error)
	ListByTrainee(ctx context.Context, traineeID string) ([]models.MentorshipAssignment, error)
	Create(ctx context.Context, in models.NewMentorshipAssignment) (*models.MentorshipAssignment, error)
	Update(ctx context.Context, id string, patch models.MentorshipPatch) (*models.MentorshipAssignment, error)
}

type mentorshipNoteRepository interface {
	ListByAssignment(ctx context.Context, assignmentID string) ([]models.MentorshipNote, error)
	Create(ctx context.Context, in models.NewMentorshipNote) (*models.MentorshipNote, error)
}

type evaluationRepository interface {
	FindByID(ctx context.Context, id string) (*models.PerformanceEvaluation, error)
	ListByTrainee(ctx context.Context, traineeID string) ([]models.PerformanceEvaluation, error)
	ListByProgramme(ctx context.Context, programmeID string) ([]models.PerformanceEvaluation, error)
	Create(ctx context.Context, in models.NewEvaluation) (*models.PerformanceEvaluation, error)
	Update(ctx context.Context, id string, patch models.EvaluationPatch) (*models.PerformanceEvaluation, error)
}

type programmeLookup interface {
	FindByID(ctx context.Context, id string) (*models.Programme, error)
}

type CreateMentorshipRequest struct {
	MentorID    string                  `json:"mentorId" validate:"required"`
	TraineeID   string                  `json:"traineeId" validate:"required"`
	ProgrammeID string                  `json:"programmeId" validate:"required"`
	Status      models.MentorshipStatus `json:"status" validate:"omitempty,oneof=active completed paused"`
}

type UpdateMentorshipRequest struct {
	Status *models.MentorshipStatus `json:"status" validate:"omitempty,oneof=active completed paused"`
}

// CreateNoteRequest omits mentor and trainee; both come from the assignment.
type CreateNoteRequest struct {
	Content string          `json:"content" validate:"required"`
	Type    models.NoteType `json:"type" validate:"required,oneof=progress feedback meeting concern"`
}

// CreateEvaluationRequest leaves OverallScore optional; when absent it is
// the mean of the five scores.
type CreateEvaluationRequest struct {
	TraineeID    string        `json:"traineeId" validate:"required"`
	ProgrammeID  string        `json:"programmeId" validate:"required"`
	Scores       models.Scores `json:"scores" validate:"required"`
	OverallScore *float64      `json:"overallScore" validate:"omitempty,min=1,max=5"`
	Comments     string        `json:"comments"`
}

type UpdateEvaluationRequest struct {
	Scores       *models.Scores `json:"scores"`
	OverallScore *float64       `json:"overallScore" validate:"omitempty,min=1,max=5"`
	Comments     *string        `json:"comments"`
}

// MentorshipService manages mentor assignments, their notes and performance
// evaluations.
type MentorshipService struct {
	assignments mentorshipRepository
	notes       mentorshipNoteRepository
	evaluations evaluationRepository
	programmes  programmeLookup
	users       userLookup
	validator   *validator.Validate
	logger      *zap.Logger
}

func NewMentorshipService(
	assignments mentorshipRepository,
	notes mentorshipNoteRepository,
	evaluations evaluationRepository,
	programmes programmeLookup,
	users userLookup,
	validate *validator.Validate,
	logger *zap.Logger,
) *MentorshipService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &MentorshipService{
		assignments: assignments,
		notes:       notes,
		evaluations: evaluations,
		programmes:  programmes,
		users:       users,
		validator:   validate,
		logger:      logger,
	}
}

// ListAssignments returns all assignments, or those of one mentor or trainee
// when the matching id is set.
func (s *MentorshipService) ListAssignments(ctx context.Context, mentorID, traineeID string) ([]models.MentorshipAssignment, error) {
	var (
		assignments []models.MentorshipAssignment
		err         error
	)
	switch {
	case mentorID != "":
		assignments, err = s.assignments.ListByMentor(ctx, mentorID)
	case traineeID != "":
		assignments, err = s.assignments.ListByTrainee(ctx, traineeID)
	default:
		assignments, err = s.assignments.List(ctx)
	}
	if err != nil {
		return nil, storageError(err, "failed to list mentorships")
	}
	if mentorID != "" && traineeID != "" {
		kept := assignments[:0]
		for _, a := range assignments {
			if a.TraineeID == traineeID {
				kept = append(kept, a)
			}
		}
		assignments = kept
	}
	return assignments, nil
}

func (s *MentorshipService) GetAssignment(ctx context.Context, id string) (*models.MentorshipAssignment, error) {
	assignment, err := s.assignments.FindByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "failed to load mentorship")
	}
	if assignment == nil {
		return nil, notFound("mentorship not found")
	}
	return assignment, nil
}

func (s *MentorshipService) Assign(ctx context.Context, req CreateMentorshipRequest) (*models.MentorshipAssignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid mentorship payload")
	}
	if err := ensureUserRole(ctx, s.users, req.MentorID, models.RoleMentor); err != nil {
		return nil, err
	}
	if err := ensureUserRole(ctx, s.users, req.TraineeID, models.RoleTrainee); err != nil {
		return nil, err
	}
	if err := s.ensureProgramme(ctx, req.ProgrammeID); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.MentorshipActive
	}

	assignment, err := s.assignments.Create(ctx, models.NewMentorshipAssignment{
		MentorID:    req.MentorID,
		TraineeID:   req.TraineeID,
		ProgrammeID: req.ProgrammeID,
		Status:      status,
	})
	if err != nil {
		return nil, storageError(err, "failed to create mentorship")
	}

	s.logger.Info("mentor assigned",
		zap.String("mentor_id", assignment.MentorID),
		zap.String("trainee_id", assignment.TraineeID))
	return assignment, nil
}

func (s *MentorshipService) UpdateAssignment(ctx context.Context, id string, req UpdateMentorshipRequest) (*models.MentorshipAssignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid mentorship payload")
	}
	updated, err := s.assignments.Update(ctx, id, models.MentorshipPatch{Status: req.Status})
	if err != nil {
		return nil, storageError(err, "failed to update mentorship")
	}
	if updated == nil {
		return nil, notFound("mentorship not found")
	}
	return updated, nil
}

func (s *MentorshipService) ListNotes(ctx context.Context, assignmentID string) ([]models.MentorshipNote, error) {
	if _, err := s.GetAssignment(ctx, assignmentID); err != nil {
		return nil, err
	}
	notes, err := s.notes.ListByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, storageError(err, "failed to list notes")
	}
	return notes, nil
}

// AddNote appends a note to the assignment. Only the assigned mentor may
// write one.
func (s *MentorshipService) AddNote(ctx context.Context, mentorID, assignmentID string, req CreateNoteRequest) (*models.MentorshipNote, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid note payload")
	}
	assignment, err := s.GetAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.MentorID != mentorID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the assigned mentor can add notes")
	}

	note, err := s.notes.Create(ctx, models.NewMentorshipNote{
		AssignmentID: assignment.ID,
		MentorID:     assignment.MentorID,
		TraineeID:    assignment.TraineeID,
		Content:      req.Content,
		Type:         req.Type,
	})
	if err != nil {
		return nil, storageError(err, "failed to create note")
	}
	return note, nil
}

func (s *MentorshipService) ListEvaluationsByTrainee(ctx context.Context, traineeID string) ([]models.PerformanceEvaluation, error) {
	evaluations, err := s.evaluations.ListByTrainee(ctx, traineeID)
	if err != nil {
		return nil, storageError(err, "failed to list evaluations")
	}
	return evaluations, nil
}

func (s *MentorshipService) ListEvaluationsByProgramme(ctx context.Context, programmeID string) ([]models.PerformanceEvaluation, error) {
	evaluations, err := s.evaluations.ListByProgramme(ctx, programmeID)
	if err != nil {
		return nil, storageError(err, "failed to list evaluations")
	}
	return evaluations, nil
}

// Evaluate records an evaluation written by evaluator, who must be a
// trainer or a mentor.
func (s *MentorshipService) Evaluate(ctx context.Context, evaluator models.User, req CreateEvaluationRequest) (*models.PerformanceEvaluation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid evaluation payload")
	}

	var role models.EvaluatorRole
	switch evaluator.Role {
	case models.RoleTrainer:
		role = models.EvaluatorTrainer
	case models.RoleMentor:
		role = models.EvaluatorMentor
	case models.RoleAdmin, models.RoleTrainee:
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only trainers and mentors evaluate")
	default:
		return nil, appErrors.Clone(appErrors.ErrForbidden, "unknown role")
	}

	if err := ensureUserRole(ctx, s.users, req.TraineeID, models.RoleTrainee); err != nil {
		return nil, err
	}
	if err := s.ensureProgramme(ctx, req.ProgrammeID); err != nil {
		return nil, err
	}

	overall := req.Scores.Mean()
	if req.OverallScore != nil {
		overall = *req.OverallScore
	}

	evaluation, err := s.evaluations.Create(ctx, models.NewEvaluation{
		TraineeID:     req.TraineeID,
		ProgrammeID:   req.ProgrammeID,
		EvaluatorID:   evaluator.ID,
		EvaluatorRole: role,
		Scores:        req.Scores,
		OverallScore:  overall,
		Comments:      req.Comments,
	})
	if err != nil {
		return nil, storageError(err, "failed to create evaluation")
	}
	return evaluation, nil
}

// UpdateEvaluation replaces the given fields. New scores without a new
// overall score leave the stored overall score as it was.
func (s *MentorshipService) UpdateEvaluation(ctx context.Context, id string, req UpdateEvaluationRequest) (*models.PerformanceEvaluation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid evaluation payload")
	}
	updated, err := s.evaluations.Update(ctx, id, models.EvaluationPatch{
		Scores:       req.Scores,
		OverallScore: req.OverallScore,
		Comments:     req.Comments,
	})
	if err != nil {
		return nil, storageError(err, "failed to update evaluation")
	}
	if updated == nil {
		return nil, notFound("evaluation not found")
	}
	return updated, nil
}

func (s *MentorshipService) ensureProgramme(ctx context.Context, id string) error {
	programme, err := s.programmes.FindByID(ctx, id)
	if err != nil {
		return storageError(err, "failed to load programme")
	}
	if programme == nil {
		return appErrors.Clone(appErrors.ErrValidation, "programme does not exist")
	}
	return nil
}
