package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mindbuilders/dtmms/internal/models"
	"github.com/mindbuilders/dtmms/internal/service"
	appErrors "github.com/mindbuilders/dtmms/pkg/errors"
	"github.com/mindbuilders/dtmms/pkg/export"
	"github.com/mindbuilders/dtmms/pkg/response"
)

type reportService interface {
	AttendanceReport(ctx context.Context, programmeID string) (*models.AttendanceReport, error)
	PerformanceReport(ctx context.Context, traineeID string) (*models.PerformanceReport, error)
}

type exportService interface {
	Export(ctx context.Context, kind service.ReportKind, id string, format export.Format) (*service.ExportResult, error)
}

// ReportHandler exposes reporting endpoints.
type ReportHandler struct {
	reports reportService
	exports exportService
}

// NewReportHandler constructs handler.
func NewReportHandler(reports reportService, exports exportService) *ReportHandler {
	return &ReportHandler{reports: reports, exports: exports}
}

// Attendance godoc
// @Summary Programme attendance report
// @Tags Reports
// @Produce json
// @Produce text/csv
// @Produce application/pdf
// @Param programmeId path string true "Programme ID"
// @Param format query string false "json, csv or pdf"
// @Success 200 {object} response.Envelope
// @Router /reports/attendance/{programmeId} [get]
func (h *ReportHandler) Attendance(c *gin.Context) {
	id := c.Param("programmeId")
	if h.exported(c, service.ReportAttendance, id) {
		return
	}
	report, err := h.reports.AttendanceReport(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// Performance godoc
// @Summary Trainee performance report
// @Tags Reports
// @Produce json
// @Produce text/csv
// @Produce application/pdf
// @Param traineeId path string true "Trainee ID"
// @Param format query string false "json, csv or pdf"
// @Success 200 {object} response.Envelope
// @Router /reports/performance/{traineeId} [get]
func (h *ReportHandler) Performance(c *gin.Context) {
	id := c.Param("traineeId")
	if h.exported(c, service.ReportPerformance, id) {
		return
	}
	report, err := h.reports.PerformanceReport(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// exported serves the report as a file when a non-JSON format is asked for
// and reports whether the response was written.
func (h *ReportHandler) exported(c *gin.Context, kind service.ReportKind, id string) bool {
	raw := strings.TrimSpace(c.Query("format"))
	if raw == "" || strings.EqualFold(raw, "json") {
		return false
	}
	format, err := export.ParseFormat(raw)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "format must be json, csv or pdf"))
		return true
	}
	result, err := h.exports.Export(c.Request.Context(), kind, id, format)
	if err != nil {
		response.Error(c, err)
		return true
	}
	response.File(c, result.Filename, result.ContentType, result.Content)
	return true
}
