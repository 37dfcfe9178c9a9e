package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindbuilders/dtmms/internal/models"
	"github.com/mindbuilders/dtmms/internal/service"
	"github.com/mindbuilders/dtmms/pkg/response"
)

type mentorshipService interface {
	ListAssignments(ctx context.Context, mentorID, traineeID string) ([]models.MentorshipAssignment, error)
	Assign(ctx context.Context, req service.CreateMentorshipRequest) (*models.MentorshipAssignment, error)
	UpdateAssignment(ctx context.Context, id string, req service.UpdateMentorshipRequest) (*models.MentorshipAssignment, error)
	ListNotes(ctx context.Context, assignmentID string) ([]models.MentorshipNote, error)
	AddNote(ctx context.Context, mentorID, assignmentID string, req service.CreateNoteRequest) (*models.MentorshipNote, error)
	ListEvaluationsByTrainee(ctx context.Context, traineeID string) ([]models.PerformanceEvaluation, error)
	ListEvaluationsByProgramme(ctx context.Context, programmeID string) ([]models.PerformanceEvaluation, error)
	Evaluate(ctx context.Context, evaluator models.User, req service.CreateEvaluationRequest) (*models.PerformanceEvaluation, error)
	UpdateEvaluation(ctx context.Context, id string, req service.UpdateEvaluationRequest) (*models.PerformanceEvaluation, error)
}

// MentorshipHandler exposes mentor assignments, notes and evaluations.
type MentorshipHandler struct {
	service mentorshipService
}

func NewMentorshipHandler(svc mentorshipService) *MentorshipHandler {
	return &MentorshipHandler{service: svc}
}

// List godoc
// @Summary List mentorship assignments
// @Tags Mentorships
// @Produce json
// @Param mentorId query string false "Mentor ID"
// @Param traineeId query string false "Trainee ID"
// @Success 200 {object} response.Envelope
// @Router /mentorships [get]
func (h *MentorshipHandler) List(c *gin.Context) {
	h.listAssignments(c, c.Query("mentorId"), c.Query("traineeId"))
}

// ByMentor godoc
// @Summary Assignments of a mentor
// @Tags Mentorships
// @Produce json
// @Param id path string true "Mentor ID"
// @Success 200 {object} response.Envelope
// @Router /mentors/{id}/mentorships [get]
func (h *MentorshipHandler) ByMentor(c *gin.Context) {
	h.listAssignments(c, c.Param("id"), "")
}

// ByTrainee godoc
// @Summary Assignments of a trainee
// @Tags Mentorships
// @Produce json
// @Param id path string true "Trainee ID"
// @Success 200 {object} response.Envelope
// @Router /trainees/{id}/mentorships [get]
func (h *MentorshipHandler) ByTrainee(c *gin.Context) {
	h.listAssignments(c, "", c.Param("id"))
}

func (h *MentorshipHandler) listAssignments(c *gin.Context, mentorID, traineeID string) {
	assignments, err := h.service.ListAssignments(c.Request.Context(), mentorID, traineeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, assignments)
}

// Assign godoc
// @Summary Assign mentor
// @Tags Mentorships
// @Accept json
// @Produce json
// @Param payload body service.CreateMentorshipRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Router /mentorships [post]
func (h *MentorshipHandler) Assign(c *gin.Context) {
	var req service.CreateMentorshipRequest
	if !bindJSON(c, &req, "invalid mentorship payload") {
		return
	}
	assignment, err := h.service.Assign(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// Update godoc
// @Summary Change assignment status
// @Tags Mentorships
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param payload body service.UpdateMentorshipRequest true "New status"
// @Success 200 {object} response.Envelope
// @Router /mentorships/{id} [patch]
func (h *MentorshipHandler) Update(c *gin.Context) {
	var req service.UpdateMentorshipRequest
	if !bindJSON(c, &req, "invalid mentorship payload") {
		return
	}
	assignment, err := h.service.UpdateAssignment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignment)
}

// Notes godoc
// @Summary Notes of an assignment
// @Tags Mentorships
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} response.Envelope
// @Router /mentorships/{id}/notes [get]
func (h *MentorshipHandler) Notes(c *gin.Context) {
	notes, err := h.service.ListNotes(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, notes)
}

// AddNote godoc
// @Summary Write a mentorship note
// @Tags Mentorships
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param payload body service.CreateNoteRequest true "Note payload"
// @Success 201 {object} response.Envelope
// @Router /mentorships/{id}/notes [post]
func (h *MentorshipHandler) AddNote(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		return
	}
	var req service.CreateNoteRequest
	if !bindJSON(c, &req, "invalid note payload") {
		return
	}
	note, err := h.service.AddNote(c.Request.Context(), caller.ID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, note)
}

// TraineeEvaluations godoc
// @Summary Evaluations of a trainee
// @Tags Evaluations
// @Produce json
// @Param id path string true "Trainee ID"
// @Success 200 {object} response.Envelope
// @Router /trainees/{id}/evaluations [get]
func (h *MentorshipHandler) TraineeEvaluations(c *gin.Context) {
	evaluations, err := h.service.ListEvaluationsByTrainee(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, evaluations)
}

// ProgrammeEvaluations godoc
// @Summary Evaluations within a programme
// @Tags Evaluations
// @Produce json
// @Param id path string true "Programme ID"
// @Success 200 {object} response.Envelope
// @Router /programmes/{id}/evaluations [get]
func (h *MentorshipHandler) ProgrammeEvaluations(c *gin.Context) {
	evaluations, err := h.service.ListEvaluationsByProgramme(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, evaluations)
}

// Evaluate godoc
// @Summary Record performance evaluation
// @Tags Evaluations
// @Accept json
// @Produce json
// @Param payload body service.CreateEvaluationRequest true "Evaluation payload"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /evaluations [post]
func (h *MentorshipHandler) Evaluate(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		return
	}
	var req service.CreateEvaluationRequest
	if !bindJSON(c, &req, "invalid evaluation payload") {
		return
	}
	evaluation, err := h.service.Evaluate(c.Request.Context(), caller, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, evaluation)
}

// UpdateEvaluation godoc
// @Summary Update evaluation
// @Tags Evaluations
// @Accept json
// @Produce json
// @Param id path string true "Evaluation ID"
// @Param payload body service.UpdateEvaluationRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /evaluations/{id} [patch]
func (h *MentorshipHandler) UpdateEvaluation(c *gin.Context) {
	var req service.UpdateEvaluationRequest
	if !bindJSON(c, &req, "invalid evaluation payload") {
		return
	}
	evaluation, err := h.service.UpdateEvaluation(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, evaluation)
}
