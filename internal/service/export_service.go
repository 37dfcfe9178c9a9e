package service

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/mindbuilders/dtmms/internal/models"
	appErrors "github.com/mindbuilders/dtmms/pkg/errors"
	"github.com/mindbuilders/dtmms/pkg/export"
)

type reportBuilder interface {
	AttendanceReport(ctx context.Context, programmeID string) (*models.AttendanceReport, error)
	PerformanceReport(ctx context.Context, traineeID string) (*models.PerformanceReport, error)
}

// ReportKind selects which report an export renders.
type ReportKind string

const (
	ReportAttendance  ReportKind = "attendance"
	ReportPerformance ReportKind = "performance"
)

// ExportResult is a rendered report ready to be served as a download.
type ExportResult struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportService turns reports into CSV or PDF documents.
type ExportService struct {
	reports reportBuilder
	logger  *zap.Logger
}

func NewExportService(reports reportBuilder, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{reports: reports, logger: logger}
}

// Export renders the report of kind for id. id is a programme id for
// attendance reports and a trainee id for performance reports.
func (s *ExportService) Export(ctx context.Context, kind ReportKind, id string, format export.Format) (*ExportResult, error) {
	var (
		table export.Table
		base  string
	)
	switch kind {
	case ReportAttendance:
		report, err := s.reports.AttendanceReport(ctx, id)
		if err != nil {
			return nil, err
		}
		table, base = attendanceTable(report), "attendance-"+report.ProgrammeID
	case ReportPerformance:
		report, err := s.reports.PerformanceReport(ctx, id)
		if err != nil {
			return nil, err
		}
		table, base = performanceTable(report), "performance-"+report.TraineeID
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown report kind")
	}

	content, err := export.Render(format, table)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}
	s.logger.Debug("report exported",
		zap.String("kind", string(kind)),
		zap.String("id", id),
		zap.String("format", string(format)),
		zap.Int("bytes", len(content)))

	return &ExportResult{
		Filename:    format.Filename(base),
		ContentType: format.ContentType(),
		Content:     content,
	}, nil
}

func attendanceTable(report *models.AttendanceReport) export.Table {
	table := export.Table{
		Title:   report.ProgrammeName + " attendance",
		Headers: []string{"Trainee", "Present", "Late", "Absent", "Excused", "Rate (%)"},
	}
	for _, row := range report.TraineeStats {
		table.Rows = append(table.Rows, []string{
			row.TraineeName,
			strconv.Itoa(row.Present),
			strconv.Itoa(row.Late),
			strconv.Itoa(row.Absent),
			strconv.Itoa(row.Excused),
			strconv.Itoa(row.AttendanceRate),
		})
	}
	table.Rows = append(table.Rows, []string{
		"All trainees", "", "", "", "", strconv.Itoa(report.AverageAttendance),
	})
	return table
}

func performanceTable(report *models.PerformanceReport) export.Table {
	table := export.Table{
		Title:   report.TraineeName + " performance",
		Headers: []string{"Programme", "Evaluations", "Average score"},
	}
	for _, p := range report.Programmes {
		table.Rows = append(table.Rows, []string{
			p.ProgrammeName,
			strconv.Itoa(len(p.Evaluations)),
			strconv.FormatFloat(p.AverageScore, 'f', 1, 64),
		})
	}
	table.Rows = append(table.Rows, []string{
		"Overall", "", strconv.FormatFloat(report.OverallAverage, 'f', 1, 64),
	})
	return table
}
