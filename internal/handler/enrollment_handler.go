package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindbuilders/dtmms/internal/models"
	"github.com/mindbuilders/dtmms/internal/service"
	"github.com/mindbuilders/dtmms/pkg/response"
)

type enrollmentService interface {
	ListEnrollmentsByProgramme(ctx context.Context, programmeID string) ([]models.Enrollment, error)
	ListEnrollmentsByTrainee(ctx context.Context, traineeID string) ([]models.Enrollment, error)
	Enroll(ctx context.Context, req service.CreateEnrollmentRequest) (*models.Enrollment, error)
	UpdateEnrollment(ctx context.Context, id string, req service.UpdateEnrollmentRequest) (*models.Enrollment, error)
}

// EnrollmentHandler manages programme enrollment.
type EnrollmentHandler struct {
	service enrollmentService
}

func NewEnrollmentHandler(svc enrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: svc}
}

// ByProgramme godoc
// @Summary Enrollments of a programme
// @Tags Enrollments
// @Produce json
// @Param id path string true "Programme ID"
// @Success 200 {object} response.Envelope
// @Router /programmes/{id}/enrollments [get]
func (h *EnrollmentHandler) ByProgramme(c *gin.Context) {
	enrollments, err := h.service.ListEnrollmentsByProgramme(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, enrollments)
}

// ByTrainee godoc
// @Summary Enrollments of a trainee
// @Tags Enrollments
// @Produce json
// @Param id path string true "Trainee ID"
// @Success 200 {object} response.Envelope
// @Router /trainees/{id}/enrollments [get]
func (h *EnrollmentHandler) ByTrainee(c *gin.Context) {
	enrollments, err := h.service.ListEnrollmentsByTrainee(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, enrollments)
}

// Enroll godoc
// @Summary Enroll trainee
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body service.CreateEnrollmentRequest true "Enrollment payload"
// @Success 201 {object} response.Envelope
// @Router /enrollments [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req service.CreateEnrollmentRequest
	if !bindJSON(c, &req, "invalid enrollment payload") {
		return
	}
	enrollment, err := h.service.Enroll(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enrollment)
}

// Update godoc
// @Summary Change enrollment status
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param id path string true "Enrollment ID"
// @Param payload body service.UpdateEnrollmentRequest true "New status"
// @Success 200 {object} response.Envelope
// @Router /enrollments/{id} [patch]
func (h *EnrollmentHandler) Update(c *gin.Context) {
	var req service.UpdateEnrollmentRequest
	if !bindJSON(c, &req, "invalid enrollment payload") {
		return
	}
	enrollment, err := h.service.UpdateEnrollment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollment)
}
