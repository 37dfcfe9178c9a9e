package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindbuilders/dtmms/internal/models"
	"github.com/mindbuilders/dtmms/pkg/response"
)

type dashboardService interface {
	ForUser(ctx context.Context, user models.User) (*models.Dashboard, error)
	Admin(ctx context.Context) (*models.AdminStats, error)
	Trainer(ctx context.Context, trainerID string) (*models.TrainerStats, error)
	Mentor(ctx context.Context, mentorID string) (*models.MentorStats, error)
	Trainee(ctx context.Context, traineeID string) (*models.TraineeStats, error)
}

// DashboardHandler wires the statistics service to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Mine godoc
// @Summary Dashboard for the caller's role
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Mine(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		return
	}
	dashboard, err := h.service.ForUser(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dashboard)
}

// Admin godoc
// @Summary System-wide statistics
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/admin [get]
func (h *DashboardHandler) Admin(c *gin.Context) {
	stats, err := h.service.Admin(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}

// Trainer godoc
// @Summary Statistics of one trainer
// @Tags Dashboard
// @Produce json
// @Param id path string true "Trainer ID"
// @Success 200 {object} response.Envelope
// @Router /dashboard/trainer/{id} [get]
func (h *DashboardHandler) Trainer(c *gin.Context) {
	stats, err := h.service.Trainer(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}

// Mentor godoc
// @Summary Statistics of one mentor
// @Tags Dashboard
// @Produce json
// @Param id path string true "Mentor ID"
// @Success 200 {object} response.Envelope
// @Router /dashboard/mentor/{id} [get]
func (h *DashboardHandler) Mentor(c *gin.Context) {
	stats, err := h.service.Mentor(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}

// Trainee godoc
// @Summary Statistics of one trainee
// @Tags Dashboard
// @Produce json
// @Param id path string true "Trainee ID"
// @Success 200 {object} response.Envelope
// @Router /dashboard/trainee/{id} [get]
func (h *DashboardHandler) Trainee(c *gin.Context) {
	stats, err := h.service.Trainee(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}
