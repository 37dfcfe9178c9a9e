package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindbuilders/dtmms/internal/models"
	"github.com/mindbuilders/dtmms/internal/service"
	"github.com/mindbuilders/dtmms/pkg/response"
)

type trainingService interface {
	ListProgrammes(ctx context.Context, filter service.ProgrammeFilter) ([]models.Programme, error)
	GetProgramme(ctx context.Context, id string) (*models.Programme, error)
	CreateProgramme(ctx context.Context, req service.CreateProgrammeRequest) (*models.Programme, error)
	UpdateProgramme(ctx context.Context, id string, req service.UpdateProgrammeRequest) (*models.Programme, error)
	DeleteProgramme(ctx context.Context, id string) error

	ListSessions(ctx context.Context, filter service.SessionFilter) ([]models.Session, error)
	GetSession(ctx context.Context, id string) (*models.Session, error)
	CreateSession(ctx context.Context, req service.CreateSessionRequest) (*models.Session, error)
	UpdateSession(ctx context.Context, id string, req service.UpdateSessionRequest) (*models.Session, error)
	DeleteSession(ctx context.Context, id string) error

	ListMaterials(ctx context.Context, programmeID, sessionID string) ([]models.TrainingMaterial, error)
	CreateMaterial(ctx context.Context, uploadedBy string, req service.CreateMaterialRequest) (*models.TrainingMaterial, error)
	UpdateMaterial(ctx context.Context, id string, req service.UpdateMaterialRequest) (*models.TrainingMaterial, error)
	DeleteMaterial(ctx context.Context, id string) error
}

// TrainingHandler exposes programmes, their sessions and materials.
type TrainingHandler struct {
	service trainingService
}

func NewTrainingHandler(svc trainingService) *TrainingHandler {
	return &TrainingHandler{service: svc}
}

// ListProgrammes godoc
// @Summary List programmes
// @Tags Programmes
// @Produce json
// @Param trainerId query string false "Trainer ID"
// @Param status query string false "upcoming, ongoing or completed"
// @Param search query string false "Title or category"
// @Success 200 {object} response.Envelope
// @Router /programmes [get]
func (h *TrainingHandler) ListProgrammes(c *gin.Context) {
	programmes, err := h.service.ListProgrammes(c.Request.Context(), service.ProgrammeFilter{
		TrainerID: c.Query("trainerId"),
		Status:    models.ProgrammeStatus(c.Query("status")),
		Search:    c.Query("search"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, programmes)
}

// GetProgramme godoc
// @Summary Get programme
// @Tags Programmes
// @Produce json
// @Param id path string true "Programme ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /programmes/{id} [get]
func (h *TrainingHandler) GetProgramme(c *gin.Context) {
	programme, err := h.service.GetProgramme(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, programme)
}

// CreateProgramme godoc
// @Summary Create programme
// @Tags Programmes
// @Accept json
// @Produce json
// @Param payload body service.CreateProgrammeRequest true "Programme payload"
// @Success 201 {object} response.Envelope
// @Router /programmes [post]
func (h *TrainingHandler) CreateProgramme(c *gin.Context) {
	var req service.CreateProgrammeRequest
	if !bindJSON(c, &req, "invalid programme payload") {
		return
	}
	programme, err := h.service.CreateProgramme(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, programme)
}

// UpdateProgramme godoc
// @Summary Update programme
// @Tags Programmes
// @Accept json
// @Produce json
// @Param id path string true "Programme ID"
// @Param payload body service.UpdateProgrammeRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /programmes/{id} [patch]
func (h *TrainingHandler) UpdateProgramme(c *gin.Context) {
	var req service.UpdateProgrammeRequest
	if !bindJSON(c, &req, "invalid programme payload") {
		return
	}
	programme, err := h.service.UpdateProgramme(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, programme)
}

// DeleteProgramme godoc
// @Summary Delete programme
// @Tags Programmes
// @Param id path string true "Programme ID"
// @Success 204
// @Router /programmes/{id} [delete]
func (h *TrainingHandler) DeleteProgramme(c *gin.Context) {
	if err := h.service.DeleteProgramme(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ProgrammeSessions godoc
// @Summary Sessions of a programme
// @Tags Programmes
// @Produce json
// @Param id path string true "Programme ID"
// @Success 200 {object} response.Envelope
// @Router /programmes/{id}/sessions [get]
func (h *TrainingHandler) ProgrammeSessions(c *gin.Context) {
	sessions, err := h.service.ListSessions(c.Request.Context(), service.SessionFilter{ProgrammeID: c.Param("id")})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, sessions)
}

// ProgrammeMaterials godoc
// @Summary Materials of a programme
// @Tags Programmes
// @Produce json
// @Param id path string true "Programme ID"
// @Param sessionId query string false "Only materials of this session"
// @Success 200 {object} response.Envelope
// @Router /programmes/{id}/materials [get]
func (h *TrainingHandler) ProgrammeMaterials(c *gin.Context) {
	materials, err := h.service.ListMaterials(c.Request.Context(), c.Param("id"), c.Query("sessionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, materials)
}

// ListSessions godoc
// @Summary List sessions
// @Tags Sessions
// @Produce json
// @Param programmeId query string false "Programme ID"
// @Param trainerId query string false "Trainer ID"
// @Success 200 {object} response.Envelope
// @Router /sessions [get]
func (h *TrainingHandler) ListSessions(c *gin.Context) {
	sessions, err := h.service.ListSessions(c.Request.Context(), service.SessionFilter{
		ProgrammeID: c.Query("programmeId"),
		TrainerID:   c.Query("trainerId"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, sessions)
}

// GetSession godoc
// @Summary Get session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id} [get]
func (h *TrainingHandler) GetSession(c *gin.Context) {
	session, err := h.service.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session)
}

// CreateSession godoc
// @Summary Schedule session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param payload body service.CreateSessionRequest true "Session payload"
// @Success 201 {object} response.Envelope
// @Router /sessions [post]
func (h *TrainingHandler) CreateSession(c *gin.Context) {
	var req service.CreateSessionRequest
	if !bindJSON(c, &req, "invalid session payload") {
		return
	}
	session, err := h.service.CreateSession(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, session)
}

// UpdateSession godoc
// @Summary Update session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body service.UpdateSessionRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id} [patch]
func (h *TrainingHandler) UpdateSession(c *gin.Context) {
	var req service.UpdateSessionRequest
	if !bindJSON(c, &req, "invalid session payload") {
		return
	}
	session, err := h.service.UpdateSession(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session)
}

// DeleteSession godoc
// @Summary Delete session
// @Tags Sessions
// @Param id path string true "Session ID"
// @Success 204
// @Router /sessions/{id} [delete]
func (h *TrainingHandler) DeleteSession(c *gin.Context) {
	if err := h.service.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// CreateMaterial godoc
// @Summary Upload material
// @Tags Materials
// @Accept json
// @Produce json
// @Param payload body service.CreateMaterialRequest true "Material payload"
// @Success 201 {object} response.Envelope
// @Router /materials [post]
func (h *TrainingHandler) CreateMaterial(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		return
	}
	var req service.CreateMaterialRequest
	if !bindJSON(c, &req, "invalid material payload") {
		return
	}
	material, err := h.service.CreateMaterial(c.Request.Context(), caller.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, material)
}

// UpdateMaterial godoc
// @Summary Update material
// @Tags Materials
// @Accept json
// @Produce json
// @Param id path string true "Material ID"
// @Param payload body service.UpdateMaterialRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /materials/{id} [patch]
func (h *TrainingHandler) UpdateMaterial(c *gin.Context) {
	var req service.UpdateMaterialRequest
	if !bindJSON(c, &req, "invalid material payload") {
		return
	}
	material, err := h.service.UpdateMaterial(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, material)
}

// DeleteMaterial godoc
// @Summary Delete material
// @Tags Materials
// @Param id path string true "Material ID"
// @Success 204
// @Router /materials/{id} [delete]
func (h *TrainingHandler) DeleteMaterial(c *gin.Context) {
	if err := h.service.DeleteMaterial(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
