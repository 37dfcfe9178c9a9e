package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindbuilders/dtmms/internal/models"
	"github.com/mindbuilders/dtmms/internal/service"
	"github.com/mindbuilders/dtmms/pkg/response"
)

type attendanceService interface {
	ListBySession(ctx context.Context, sessionID string) ([]models.AttendanceRecord, error)
	ListByTrainee(ctx context.Context, traineeID string) ([]models.AttendanceRecord, error)
	Create(ctx context.Context, markedBy string, req service.CreateAttendanceRequest) (*models.AttendanceRecord, error)
	Update(ctx context.Context, id string, req service.UpdateAttendanceRequest) (*models.AttendanceRecord, error)
	MarkSession(ctx context.Context, sessionID, markedBy string, req service.MarkSessionRequest) ([]models.AttendanceRecord, error)
}

// AttendanceHandler records and lists attendance marks.
type AttendanceHandler struct {
	service attendanceService
}

func NewAttendanceHandler(svc attendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: svc}
}

// BySession godoc
// @Summary Attendance of a session
// @Tags Attendance
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/attendance [get]
func (h *AttendanceHandler) BySession(c *gin.Context) {
	records, err := h.service.ListBySession(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, records)
}

// MarkSession godoc
// @Summary Save attendance for a whole session
// @Description Updates the existing mark of each listed trainee or creates one
// @Tags Attendance
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body service.MarkSessionRequest true "Marks"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/attendance [put]
func (h *AttendanceHandler) MarkSession(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		return
	}
	var req service.MarkSessionRequest
	if !bindJSON(c, &req, "invalid attendance payload") {
		return
	}
	records, err := h.service.MarkSession(c.Request.Context(), c.Param("id"), caller.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, records)
}

// ByTrainee godoc
// @Summary Attendance of a trainee
// @Tags Attendance
// @Produce json
// @Param id path string true "Trainee ID"
// @Success 200 {object} response.Envelope
// @Router /trainees/{id}/attendance [get]
func (h *AttendanceHandler) ByTrainee(c *gin.Context) {
	records, err := h.service.ListByTrainee(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, records)
}

// Create godoc
// @Summary Mark attendance
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body service.CreateAttendanceRequest true "Attendance payload"
// @Success 201 {object} response.Envelope
// @Router /attendance [post]
func (h *AttendanceHandler) Create(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		return
	}
	var req service.CreateAttendanceRequest
	if !bindJSON(c, &req, "invalid attendance payload") {
		return
	}
	record, err := h.service.Create(c.Request.Context(), caller.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Update godoc
// @Summary Change attendance mark
// @Tags Attendance
// @Accept json
// @Produce json
// @Param id path string true "Attendance record ID"
// @Param payload body service.UpdateAttendanceRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /attendance/{id} [patch]
func (h *AttendanceHandler) Update(c *gin.Context) {
	var req service.UpdateAttendanceRequest
	if !bindJSON(c, &req, "invalid attendance payload") {
		return
	}
	record, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}
