package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mindbuilders/dtmms/internal/models"
)

type attendanceRepository interface {
	FindByID(ctx context.Context, id string) (*models.AttendanceRecord, error)
	ListBySession(ctx context.Context, sessionID string) ([]models.AttendanceRecord, error)
	ListByTrainee(ctx context.Context, traineeID string) ([]models.AttendanceRecord, error)
	Create(ctx context.Context, in models.NewAttendanceRecord) (*models.AttendanceRecord, error)
	Update(ctx context.Context, id string, patch models.AttendancePatch) (*models.AttendanceRecord, error)
}

type sessionLookup interface {
	FindByID(ctx context.Context, id string) (*models.Session, error)
}

type CreateAttendanceRequest struct {
	SessionID string                  `json:"sessionId" validate:"required"`
	TraineeID string                  `json:"traineeId" validate:"required"`
	Status    models.AttendanceStatus `json:"status" validate:"required,oneof=present absent late excused"`
	Notes     string                  `json:"notes"`
}

type UpdateAttendanceRequest struct {
	Status *models.AttendanceStatus `json:"status" validate:"omitempty,oneof=present absent late excused"`
	Notes  *string                  `json:"notes"`
}

// AttendanceEntry is one trainee's mark in a whole-session save.
type AttendanceEntry struct {
	TraineeID string                  `json:"traineeId" validate:"required"`
	Status    models.AttendanceStatus `json:"status" validate:"required,oneof=present absent late excused"`
	Notes     string                  `json:"notes"`
}

type MarkSessionRequest struct {
	Entries []AttendanceEntry `json:"entries" validate:"required,min=1,dive"`
}

// AttendanceService records attendance marks.
type AttendanceService struct {
	records   attendanceRepository
	sessions  sessionLookup
	validator *validator.Validate
	logger    *zap.Logger
}

func NewAttendanceService(records attendanceRepository, sessions sessionLookup, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AttendanceService{records: records, sessions: sessions, validator: validate, logger: logger}
}

func (s *AttendanceService) ListBySession(ctx context.Context, sessionID string) ([]models.AttendanceRecord, error) {
	records, err := s.records.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, storageError(err, "failed to list attendance")
	}
	return records, nil
}

func (s *AttendanceService) ListByTrainee(ctx context.Context, traineeID string) ([]models.AttendanceRecord, error) {
	records, err := s.records.ListByTrainee(ctx, traineeID)
	if err != nil {
		return nil, storageError(err, "failed to list attendance")
	}
	return records, nil
}

// Create appends a single mark. It does not look for an earlier mark of the
// same trainee; MarkSession does.
func (s *AttendanceService) Create(ctx context.Context, markedBy string, req CreateAttendanceRequest) (*models.AttendanceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid attendance payload")
	}
	if err := s.ensureSession(ctx, req.SessionID); err != nil {
		return nil, err
	}

	record, err := s.records.Create(ctx, models.NewAttendanceRecord{
		SessionID: req.SessionID,
		TraineeID: req.TraineeID,
		Status:    req.Status,
		MarkedBy:  markedBy,
		Notes:     req.Notes,
	})
	if err != nil {
		return nil, storageError(err, "failed to create attendance")
	}
	return record, nil
}

func (s *AttendanceService) Update(ctx context.Context, id string, req UpdateAttendanceRequest) (*models.AttendanceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid attendance payload")
	}
	updated, err := s.records.Update(ctx, id, models.AttendancePatch{Status: req.Status, Notes: req.Notes})
	if err != nil {
		return nil, storageError(err, "failed to update attendance")
	}
	if updated == nil {
		return nil, notFound("attendance record not found")
	}
	return updated, nil
}

// MarkSession saves a whole register. A trainee who already has a mark for
// the session gets that mark's status and notes replaced; anyone else gets
// a new record marked by markedBy. The returned slice follows the entries.
func (s *AttendanceService) MarkSession(ctx context.Context, sessionID, markedBy string, req MarkSessionRequest) ([]models.AttendanceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid attendance payload")
	}
	if err := s.ensureSession(ctx, sessionID); err != nil {
		return nil, err
	}

	existing, err := s.records.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, storageError(err, "failed to list attendance")
	}
	byTrainee := make(map[string]string, len(existing))
	for _, record := range existing {
		if _, seen := byTrainee[record.TraineeID]; !seen {
			byTrainee[record.TraineeID] = record.ID
		}
	}

	saved := make([]models.AttendanceRecord, 0, len(req.Entries))
	for _, entry := range req.Entries {
		entry := entry
		var (
			record *models.AttendanceRecord
			err    error
		)
		if id, ok := byTrainee[entry.TraineeID]; ok {
			record, err = s.records.Update(ctx, id, models.AttendancePatch{Status: &entry.Status, Notes: &entry.Notes})
		} else {
			record, err = s.records.Create(ctx, models.NewAttendanceRecord{
				SessionID: sessionID,
				TraineeID: entry.TraineeID,
				Status:    entry.Status,
				MarkedBy:  markedBy,
				Notes:     entry.Notes,
			})
		}
		if err != nil {
			return nil, storageError(err, "failed to save attendance")
		}
		if record == nil {
			// removed between the listing and the update
			return nil, notFound("attendance record not found")
		}
		byTrainee[entry.TraineeID] = record.ID
		saved = append(saved, *record)
	}

	s.logger.Info("session attendance saved",
		zap.String("session_id", sessionID),
		zap.Int("entries", len(saved)))
	return saved, nil
}

func (s *AttendanceService) ensureSession(ctx context.Context, id string) error {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return storageError(err, "failed to load session")
	}
	if session == nil {
		return notFound("session not found")
	}
	return nil
}
