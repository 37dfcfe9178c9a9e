package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mindbuilders/dtmms/internal/models"
	appErrors "github.com/mindbuilders/dtmms/pkg/errors"
)

type programmeRepository interface {
	List(ctx context.Context) ([]models.Programme, error)
	FindByID(ctx context.Context, id string) (*models.Programme, error)
	Create(ctx context.Context, in models.NewProgramme) (*models.Programme, error)
	Update(ctx context.Context, id string, patch models.ProgrammePatch) (*models.Programme, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type sessionRepository interface {
	List(ctx context.Context) ([]models.Session, error)
	FindByID(ctx context.Context, id string) (*models.Session, error)
	ListByProgramme(ctx context.Context, programmeID string) ([]models.Session, error)
	ListByTrainer(ctx context.Context, trainerID string) ([]models.Session, error)
	Create(ctx context.Context, in models.NewSession) (*models.Session, error)
	Update(ctx context.Context, id string, patch models.SessionPatch) (*models.Session, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type materialRepository interface {
	FindByID(ctx context.Context, id string) (*models.TrainingMaterial, error)
	ListByProgramme(ctx context.Context, programmeID string) ([]models.TrainingMaterial, error)
	ListBySession(ctx context.Context, sessionID string) ([]models.TrainingMaterial, error)
	Create(ctx context.Context, in models.NewMaterial) (*models.TrainingMaterial, error)
	Update(ctx context.Context, id string, patch models.MaterialPatch) (*models.TrainingMaterial, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type enrollmentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Enrollment, error)
	ListByTrainee(ctx context.Context, traineeID string) ([]models.Enrollment, error)
	ListByProgramme(ctx context.Context, programmeID string) ([]models.Enrollment, error)
	Create(ctx context.Context, in models.NewEnrollment) (*models.Enrollment, error)
	Update(ctx context.Context, id string, patch models.EnrollmentPatch) (*models.Enrollment, error)
}

type userLookup interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// ProgrammeFilter narrows programme listings. Search matches title or
// category.
type ProgrammeFilter struct {
	TrainerID string
	Status    models.ProgrammeStatus
	Search    string
}

// CreateProgrammeRequest represents payload for creating programmes.
type CreateProgrammeRequest struct {
	Title           string                 `json:"title" validate:"required"`
	Description     string                 `json:"description"`
	Category        string                 `json:"category" validate:"required"`
	StartDate       string                 `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate         string                 `json:"endDate" validate:"required,datetime=2006-01-02"`
	TrainerID       string                 `json:"trainerId" validate:"required"`
	MaxParticipants int                    `json:"maxParticipants" validate:"required,min=1"`
	Status          models.ProgrammeStatus `json:"status" validate:"omitempty,oneof=upcoming ongoing completed"`
}

type UpdateProgrammeRequest struct {
	Title           *string                 `json:"title" validate:"omitempty,min=1"`
	Description     *string                 `json:"description"`
	Category        *string                 `json:"category" validate:"omitempty,min=1"`
	StartDate       *string                 `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate         *string                 `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	TrainerID       *string                 `json:"trainerId" validate:"omitempty,min=1"`
	MaxParticipants *int                    `json:"maxParticipants" validate:"omitempty,min=1"`
	Status          *models.ProgrammeStatus `json:"status" validate:"omitempty,oneof=upcoming ongoing completed"`
}

// CreateSessionRequest leaves TrainerID optional; the programme's trainer is
// used when it is empty.
type CreateSessionRequest struct {
	ProgrammeID string `json:"programmeId" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime     string `json:"endTime" validate:"required,datetime=15:04"`
	Venue       string `json:"venue" validate:"required"`
	TrainerID   string `json:"trainerId"`
}

type UpdateSessionRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Date        *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartTime   *string `json:"startTime" validate:"omitempty,datetime=15:04"`
	EndTime     *string `json:"endTime" validate:"omitempty,datetime=15:04"`
	Venue       *string `json:"venue" validate:"omitempty,min=1"`
	TrainerID   *string `json:"trainerId" validate:"omitempty,min=1"`
}

type CreateMaterialRequest struct {
	ProgrammeID string              `json:"programmeId" validate:"required"`
	SessionID   string              `json:"sessionId"`
	Title       string              `json:"title" validate:"required"`
	Description string              `json:"description"`
	Type        models.MaterialType `json:"type" validate:"required,oneof=pdf video link slides document"`
	URL         string              `json:"url" validate:"required"`
}

type UpdateMaterialRequest struct {
	SessionID   *string              `json:"sessionId"`
	Title       *string              `json:"title" validate:"omitempty,min=1"`
	Description *string              `json:"description"`
	Type        *models.MaterialType `json:"type" validate:"omitempty,oneof=pdf video link slides document"`
	URL         *string              `json:"url" validate:"omitempty,min=1"`
}

type CreateEnrollmentRequest struct {
	TraineeID   string                  `json:"traineeId" validate:"required"`
	ProgrammeID string                  `json:"programmeId" validate:"required"`
	Status      models.EnrollmentStatus `json:"status" validate:"omitempty,oneof=active completed dropped"`
}

type UpdateEnrollmentRequest struct {
	Status *models.EnrollmentStatus `json:"status" validate:"omitempty,oneof=active completed dropped"`
}

// TrainingService manages programmes with their sessions, materials and
// enrollments. Referential checks that the store does not make are done
// here.
type TrainingService struct {
	programmes  programmeRepository
	sessions    sessionRepository
	materials   materialRepository
	enrollments enrollmentRepository
	users       userLookup
	validator   *validator.Validate
	logger      *zap.Logger
}

func NewTrainingService(
	programmes programmeRepository,
	sessions sessionRepository,
	materials materialRepository,
	enrollments enrollmentRepository,
	users userLookup,
	validate *validator.Validate,
	logger *zap.Logger,
) *TrainingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &TrainingService{
		programmes:  programmes,
		sessions:    sessions,
		materials:   materials,
		enrollments: enrollments,
		users:       users,
		validator:   validate,
		logger:      logger,
	}
}

// ListProgrammes returns programmes matching the filter in stored order.
func (s *TrainingService) ListProgrammes(ctx context.Context, filter ProgrammeFilter) ([]models.Programme, error) {
	programmes, err := s.programmes.List(ctx)
	if err != nil {
		return nil, storageError(err, "failed to list programmes")
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	result := make([]models.Programme, 0, len(programmes))
	for _, p := range programmes {
		if filter.TrainerID != "" && p.TrainerID != filter.TrainerID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Category), search) {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (s *TrainingService) GetProgramme(ctx context.Context, id string) (*models.Programme, error) {
	programme, err := s.programmes.FindByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "failed to load programme")
	}
	if programme == nil {
		return nil, notFound("programme not found")
	}
	return programme, nil
}

// CreateProgramme stores a new programme with no enrollments. Status
// defaults to upcoming.
func (s *TrainingService) CreateProgramme(ctx context.Context, req CreateProgrammeRequest) (*models.Programme, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid programme payload")
	}
	if req.EndDate < req.StartDate {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endDate must not be before startDate")
	}
	if err := s.ensureUserRole(ctx, req.TrainerID, models.RoleTrainer); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.ProgrammeUpcoming
	}

	programme, err := s.programmes.Create(ctx, models.NewProgramme{
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		Category:        req.Category,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		TrainerID:       req.TrainerID,
		MaxParticipants: req.MaxParticipants,
		Status:          status,
	})
	if err != nil {
		return nil, storageError(err, "failed to create programme")
	}

	s.logger.Info("programme created", zap.String("programme_id", programme.ID))
	return programme, nil
}

func (s *TrainingService) UpdateProgramme(ctx context.Context, id string, req UpdateProgrammeRequest) (*models.Programme, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid programme payload")
	}

	existing, err := s.GetProgramme(ctx, id)
	if err != nil {
		return nil, err
	}

	start, end := existing.StartDate, existing.EndDate
	if req.StartDate != nil {
		start = *req.StartDate
	}
	if req.EndDate != nil {
		end = *req.EndDate
	}
	if end < start {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endDate must not be before startDate")
	}
	if req.TrainerID != nil && *req.TrainerID != existing.TrainerID {
		if err := s.ensureUserRole(ctx, *req.TrainerID, models.RoleTrainer); err != nil {
			return nil, err
		}
	}

	updated, err := s.programmes.Update(ctx, id, models.ProgrammePatch{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		TrainerID:       req.TrainerID,
		MaxParticipants: req.MaxParticipants,
		Status:          req.Status,
	})
	if err != nil {
		return nil, storageError(err, "failed to update programme")
	}
	if updated == nil {
		return nil, notFound("programme not found")
	}
	return updated, nil
}

// DeleteProgramme removes the programme only; its sessions, enrollments and
// materials stay.
func (s *TrainingService) DeleteProgramme(ctx context.Context, id string) error {
	removed, err := s.programmes.Delete(ctx, id)
	if err != nil {
		return storageError(err, "failed to delete programme")
	}
	if !removed {
		return notFound("programme not found")
	}
	s.logger.Info("programme deleted", zap.String("programme_id", id))
	return nil
}

// SessionFilter narrows session listings. Empty fields do not filter.
type SessionFilter struct {
	ProgrammeID string
	TrainerID   string
}

func (s *TrainingService) ListSessions(ctx context.Context, filter SessionFilter) ([]models.Session, error) {
	var (
		sessions []models.Session
		err      error
	)
	switch {
	case filter.ProgrammeID != "":
		sessions, err = s.sessions.ListByProgramme(ctx, filter.ProgrammeID)
	case filter.TrainerID != "":
		sessions, err = s.sessions.ListByTrainer(ctx, filter.TrainerID)
	default:
		sessions, err = s.sessions.List(ctx)
	}
	if err != nil {
		return nil, storageError(err, "failed to list sessions")
	}

	if filter.ProgrammeID != "" && filter.TrainerID != "" {
		kept := sessions[:0]
		for _, session := range sessions {
			if session.TrainerID == filter.TrainerID {
				kept = append(kept, session)
			}
		}
		sessions = kept
	}
	return sessions, nil
}

func (s *TrainingService) GetSession(ctx context.Context, id string) (*models.Session, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "failed to load session")
	}
	if session == nil {
		return nil, notFound("session not found")
	}
	return session, nil
}

func (s *TrainingService) CreateSession(ctx context.Context, req CreateSessionRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid session payload")
	}
	if req.EndTime <= req.StartTime {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endTime must be after startTime")
	}

	programme, err := s.GetProgramme(ctx, req.ProgrammeID)
	if err != nil {
		return nil, err
	}

	trainerID := req.TrainerID
	if trainerID == "" {
		trainerID = programme.TrainerID
	} else if err := s.ensureUserRole(ctx, trainerID, models.RoleTrainer); err != nil {
		return nil, err
	}

	session, err := s.sessions.Create(ctx, models.NewSession{
		ProgrammeID: programme.ID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Venue:       req.Venue,
		TrainerID:   trainerID,
	})
	if err != nil {
		return nil, storageError(err, "failed to create session")
	}
	return session, nil
}

func (s *TrainingService) UpdateSession(ctx context.Context, id string, req UpdateSessionRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid session payload")
	}

	existing, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	start, end := existing.StartTime, existing.EndTime
	if req.StartTime != nil {
		start = *req.StartTime
	}
	if req.EndTime != nil {
		end = *req.EndTime
	}
	if end <= start {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endTime must be after startTime")
	}
	if req.TrainerID != nil && *req.TrainerID != existing.TrainerID {
		if err := s.ensureUserRole(ctx, *req.TrainerID, models.RoleTrainer); err != nil {
			return nil, err
		}
	}

	updated, err := s.sessions.Update(ctx, id, models.SessionPatch{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Venue:       req.Venue,
		TrainerID:   req.TrainerID,
	})
	if err != nil {
		return nil, storageError(err, "failed to update session")
	}
	if updated == nil {
		return nil, notFound("session not found")
	}
	return updated, nil
}

func (s *TrainingService) DeleteSession(ctx context.Context, id string) error {
	removed, err := s.sessions.Delete(ctx, id)
	if err != nil {
		return storageError(err, "failed to delete session")
	}
	if !removed {
		return notFound("session not found")
	}
	return nil
}

// ListMaterials returns the materials of a programme, or of one session
// when sessionID is set.
func (s *TrainingService) ListMaterials(ctx context.Context, programmeID, sessionID string) ([]models.TrainingMaterial, error) {
	var (
		materials []models.TrainingMaterial
		err       error
	)
	if sessionID != "" {
		materials, err = s.materials.ListBySession(ctx, sessionID)
	} else {
		materials, err = s.materials.ListByProgramme(ctx, programmeID)
	}
	if err != nil {
		return nil, storageError(err, "failed to list materials")
	}
	return materials, nil
}

// CreateMaterial records uploadedBy from the caller. A session, when given,
// must belong to the programme.
func (s *TrainingService) CreateMaterial(ctx context.Context, uploadedBy string, req CreateMaterialRequest) (*models.TrainingMaterial, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid material payload")
	}
	if _, err := s.GetProgramme(ctx, req.ProgrammeID); err != nil {
		return nil, err
	}
	if req.SessionID != "" {
		if err := s.ensureSessionInProgramme(ctx, req.SessionID, req.ProgrammeID); err != nil {
			return nil, err
		}
	}

	material, err := s.materials.Create(ctx, models.NewMaterial{
		ProgrammeID: req.ProgrammeID,
		SessionID:   req.SessionID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Type:        req.Type,
		URL:         req.URL,
		UploadedBy:  uploadedBy,
	})
	if err != nil {
		return nil, storageError(err, "failed to create material")
	}
	return material, nil
}

func (s *TrainingService) UpdateMaterial(ctx context.Context, id string, req UpdateMaterialRequest) (*models.TrainingMaterial, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid material payload")
	}

	existing, err := s.materials.FindByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "failed to load material")
	}
	if existing == nil {
		return nil, notFound("material not found")
	}
	if req.SessionID != nil && *req.SessionID != "" && *req.SessionID != existing.SessionID {
		if err := s.ensureSessionInProgramme(ctx, *req.SessionID, existing.ProgrammeID); err != nil {
			return nil, err
		}
	}

	updated, err := s.materials.Update(ctx, id, models.MaterialPatch{
		SessionID:   req.SessionID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		URL:         req.URL,
	})
	if err != nil {
		return nil, storageError(err, "failed to update material")
	}
	if updated == nil {
		return nil, notFound("material not found")
	}
	return updated, nil
}

func (s *TrainingService) DeleteMaterial(ctx context.Context, id string) error {
	removed, err := s.materials.Delete(ctx, id)
	if err != nil {
		return storageError(err, "failed to delete material")
	}
	if !removed {
		return notFound("material not found")
	}
	return nil
}

func (s *TrainingService) ListEnrollmentsByProgramme(ctx context.Context, programmeID string) ([]models.Enrollment, error) {
	enrollments, err := s.enrollments.ListByProgramme(ctx, programmeID)
	if err != nil {
		return nil, storageError(err, "failed to list enrollments")
	}
	return enrollments, nil
}

func (s *TrainingService) ListEnrollmentsByTrainee(ctx context.Context, traineeID string) ([]models.Enrollment, error) {
	enrollments, err := s.enrollments.ListByTrainee(ctx, traineeID)
	if err != nil {
		return nil, storageError(err, "failed to list enrollments")
	}
	return enrollments, nil
}

// Enroll registers a trainee in an existing programme and bumps its
// enrolled count. Repeat enrollments are accepted.
func (s *TrainingService) Enroll(ctx context.Context, req CreateEnrollmentRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid enrollment payload")
	}
	if err := s.ensureUserRole(ctx, req.TraineeID, models.RoleTrainee); err != nil {
		return nil, err
	}
	if _, err := s.GetProgramme(ctx, req.ProgrammeID); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.EnrollmentActive
	}

	enrollment, err := s.enrollments.Create(ctx, models.NewEnrollment{
		TraineeID:   req.TraineeID,
		ProgrammeID: req.ProgrammeID,
		Status:      status,
	})
	if err != nil {
		return nil, storageError(err, "failed to create enrollment")
	}

	s.logger.Info("trainee enrolled",
		zap.String("trainee_id", enrollment.TraineeID),
		zap.String("programme_id", enrollment.ProgrammeID))
	return enrollment, nil
}

func (s *TrainingService) UpdateEnrollment(ctx context.Context, id string, req UpdateEnrollmentRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid enrollment payload")
	}
	updated, err := s.enrollments.Update(ctx, id, models.EnrollmentPatch{Status: req.Status})
	if err != nil {
		return nil, storageError(err, "failed to update enrollment")
	}
	if updated == nil {
		return nil, notFound("enrollment not found")
	}
	return updated, nil
}

func (s *TrainingService) ensureUserRole(ctx context.Context, id string, role models.Role) error {
	return ensureUserRole(ctx, s.users, id, role)
}

func (s *TrainingService) ensureSessionInProgramme(ctx context.Context, sessionID, programmeID string) error {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return storageError(err, "failed to load session")
	}
	if session == nil || session.ProgrammeID != programmeID {
		return appErrors.Clone(appErrors.ErrValidation, "session does not belong to the programme")
	}
	return nil
}

// ensureUserRole fails with a validation error unless id names an existing
// user holding role.
func ensureUserRole(ctx context.Context, users userLookup, id string, role models.Role) error {
	user, err := users.FindByID(ctx, id)
	if err != nil {
		return storageError(err, "failed to load user")
	}
	if user == nil || user.Role != role {
		return appErrors.Clone(appErrors.ErrValidation, id+" is not a "+strings.ToLower(role.Title()))
	}
	return nil
}
