package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindbuilders/dtmms/internal/models"
	appErrors "github.com/mindbuilders/dtmms/pkg/errors"
)

func TestReportServiceAttendanceReport(t *testing.T) {
	svc := newFixture(t).reports()

	report, err := svc.AttendanceReport(context.Background(), "prog-1")
	require.NoError(t, err)
	assert.Equal(t, "Digital Skills Bootcamp", report.ProgrammeName)
	assert.Equal(t, 3, report.TotalSessions)
	assert.Equal(t, 83, report.AverageAttendance)
	assert.Equal(t, []models.TraineeAttendanceStats{
		{TraineeID: "trainee-3", TraineeName: "Kofi Mensah", Present: 1, Late: 1, AttendanceRate: 100},
		{TraineeID: "trainee-1", TraineeName: "Oluwaseun Adebayo", Present: 2, AttendanceRate: 100},
		{TraineeID: "trainee-2", TraineeName: "Zainab Mohammed", Present: 1, Absent: 1, AttendanceRate: 50},
	}, report.TraineeStats)
}

func TestReportServiceAttendanceReportCountsExcusedAsMissed(t *testing.T) {
	svc := newFixture(t).reports()

	report, err := svc.AttendanceReport(context.Background(), "prog-2")
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalSessions)
	assert.Equal(t, 67, report.AverageAttendance)
	require.Len(t, report.TraineeStats, 3)
	assert.Equal(t, "Amina Bello", report.TraineeStats[0].TraineeName)
	assert.Equal(t, "Oluwaseun Adebayo", report.TraineeStats[2].TraineeName)
	assert.Equal(t, 1, report.TraineeStats[2].Excused)
	assert.Zero(t, report.TraineeStats[2].AttendanceRate)
}

func TestReportServiceAttendanceReportEmptyProgramme(t *testing.T) {
	svc := newFixture(t).reports()

	report, err := svc.AttendanceReport(context.Background(), "prog-3")
	require.NoError(t, err)
	assert.Zero(t, report.TotalSessions)
	assert.Zero(t, report.AverageAttendance)
	assert.NotNil(t, report.TraineeStats)
	assert.Empty(t, report.TraineeStats)

	_, err = svc.AttendanceReport(context.Background(), "prog-404")
	assertErrorCode(t, err, appErrors.ErrNotFound)
}

func TestReportServicePerformanceReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.repos.Evaluations.Create(ctx, models.NewEvaluation{
		TraineeID: "trainee-1", ProgrammeID: "prog-2", EvaluatorID: "mentor-1",
		EvaluatorRole: models.EvaluatorMentor, Scores: goodScores(), OverallScore: 4.2,
	})
	require.NoError(t, err)

	report, err := f.reports().PerformanceReport(ctx, "trainee-1")
	require.NoError(t, err)
	assert.Equal(t, "Oluwaseun Adebayo", report.TraineeName)
	require.Len(t, report.Programmes, 2)
	assert.Equal(t, "Digital Skills Bootcamp", report.Programmes[0].ProgrammeName)
	assert.InDelta(t, 4.6, report.Programmes[0].AverageScore, 1e-9)
	assert.Equal(t, "Leadership & Entrepreneurship", report.Programmes[1].ProgrammeName)
	assert.Len(t, report.Programmes[1].Evaluations, 1)
	assert.InDelta(t, 4.4, report.OverallAverage, 1e-9)
}

func TestReportServicePerformanceReportWithoutEvaluations(t *testing.T) {
	svc := newFixture(t).reports()

	report, err := svc.PerformanceReport(context.Background(), "trainee-5")
	require.NoError(t, err)
	assert.Empty(t, report.Programmes)
	assert.Zero(t, report.OverallAverage)

	_, err = svc.PerformanceReport(context.Background(), "trainee-404")
	assertErrorCode(t, err, appErrors.ErrNotFound)
}
