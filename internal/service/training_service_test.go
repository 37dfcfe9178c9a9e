package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindbuilders/dtmms/internal/models"
	appErrors "github.com/mindbuilders/dtmms/pkg/errors"
)

func validProgrammeRequest() CreateProgrammeRequest {
	return CreateProgrammeRequest{
		Title:           "Data Analysis Basics",
		Category:        "Technology",
		StartDate:       "2024-06-01",
		EndDate:         "2024-08-31",
		TrainerID:       "trainer-2",
		MaxParticipants: 25,
	}
}

func TestTrainingServiceCreateProgramme(t *testing.T) {
	svc := newFixture(t).training()

	programme, err := svc.CreateProgramme(context.Background(), validProgrammeRequest())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(programme.ID, "prog-"))
	assert.Equal(t, models.ProgrammeUpcoming, programme.Status)
	assert.Zero(t, programme.EnrolledCount)
}

func TestTrainingServiceCreateProgrammeRejects(t *testing.T) {
	svc := newFixture(t).training()

	backwards := validProgrammeRequest()
	backwards.EndDate = "2024-05-01"
	_, err := svc.CreateProgramme(context.Background(), backwards)
	assertErrorCode(t, err, appErrors.ErrValidation)

	notTrainer := validProgrammeRequest()
	notTrainer.TrainerID = "mentor-1"
	_, err = svc.CreateProgramme(context.Background(), notTrainer)
	assertErrorCode(t, err, appErrors.ErrValidation)

	badDate := validProgrammeRequest()
	badDate.StartDate = "01/06/2024"
	_, err = svc.CreateProgramme(context.Background(), badDate)
	assertErrorCode(t, err, appErrors.ErrValidation)
}

func TestTrainingServiceListProgrammes(t *testing.T) {
	svc := newFixture(t).training()
	ctx := context.Background()

	tech, err := svc.ListProgrammes(ctx, ProgrammeFilter{Search: "tech"})
	require.NoError(t, err)
	require.Len(t, tech, 2)
	assert.Equal(t, "prog-1", tech[0].ID)
	assert.Equal(t, "prog-5", tech[1].ID)

	ongoing, err := svc.ListProgrammes(ctx, ProgrammeFilter{Status: models.ProgrammeOngoing})
	require.NoError(t, err)
	assert.Len(t, ongoing, 2)

	mine, err := svc.ListProgrammes(ctx, ProgrammeFilter{TrainerID: "trainer-1", Search: "workshop"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "prog-3", mine[0].ID)
}

func TestTrainingServiceUpdateProgramme(t *testing.T) {
	svc := newFixture(t).training()
	ctx := context.Background()

	updated, err := svc.UpdateProgramme(ctx, "prog-3", UpdateProgrammeRequest{
		Status:    ptr(models.ProgrammeOngoing),
		TrainerID: ptr("trainer-2"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProgrammeOngoing, updated.Status)
	assert.Equal(t, "trainer-2", updated.TrainerID)
	assert.Equal(t, 15, updated.EnrolledCount)

	_, err = svc.UpdateProgramme(ctx, "prog-3", UpdateProgrammeRequest{EndDate: ptr("2024-01-01")})
	assertErrorCode(t, err, appErrors.ErrValidation)

	_, err = svc.UpdateProgramme(ctx, "prog-404", UpdateProgrammeRequest{Title: ptr("x")})
	assertErrorCode(t, err, appErrors.ErrNotFound)
}

func TestTrainingServiceDeleteProgrammeKeepsChildren(t *testing.T) {
	svc := newFixture(t).training()
	ctx := context.Background()

	require.NoError(t, svc.DeleteProgramme(ctx, "prog-1"))

	sessions, err := svc.ListSessions(ctx, SessionFilter{ProgrammeID: "prog-1"})
	require.NoError(t, err)
	assert.Len(t, sessions, 3)

	enrollments, err := svc.ListEnrollmentsByProgramme(ctx, "prog-1")
	require.NoError(t, err)
	assert.Len(t, enrollments, 3)

	assertErrorCode(t, svc.DeleteProgramme(ctx, "prog-1"), appErrors.ErrNotFound)
}

func TestTrainingServiceCreateSession(t *testing.T) {
	svc := newFixture(t).training()
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, CreateSessionRequest{
		ProgrammeID: "prog-1",
		Title:       "PowerPoint Basics",
		Date:        "2024-02-26",
		StartTime:   "09:00",
		EndTime:     "12:00",
		Venue:       "Computer Lab 1",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(session.ID, "session-"))
	assert.Equal(t, "trainer-1", session.TrainerID)

	_, err = svc.CreateSession(ctx, CreateSessionRequest{
		ProgrammeID: "prog-1", Title: "Backwards", Date: "2024-02-26",
		StartTime: "12:00", EndTime: "09:00", Venue: "Lab",
	})
	assertErrorCode(t, err, appErrors.ErrValidation)

	_, err = svc.CreateSession(ctx, CreateSessionRequest{
		ProgrammeID: "prog-404", Title: "Orphan", Date: "2024-02-26",
		StartTime: "09:00", EndTime: "10:00", Venue: "Lab",
	})
	assertErrorCode(t, err, appErrors.ErrNotFound)
}

func TestTrainingServiceMaterials(t *testing.T) {
	svc := newFixture(t).training()
	ctx := context.Background()

	_, err := svc.CreateMaterial(ctx, "trainer-1", CreateMaterialRequest{
		ProgrammeID: "prog-1", SessionID: "session-4", Title: "Wrong session",
		Type: models.MaterialPDF, URL: "/materials/x.pdf",
	})
	assertErrorCode(t, err, appErrors.ErrValidation)

	material, err := svc.CreateMaterial(ctx, "trainer-1", CreateMaterialRequest{
		ProgrammeID: "prog-1", SessionID: "session-3", Title: "Excel Cheatsheet",
		Type: models.MaterialPDF, URL: "/materials/excel.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "trainer-1", material.UploadedBy)

	bySession, err := svc.ListMaterials(ctx, "", "session-3")
	require.NoError(t, err)
	require.Len(t, bySession, 1)

	moved, err := svc.UpdateMaterial(ctx, material.ID, UpdateMaterialRequest{SessionID: ptr("session-1")})
	require.NoError(t, err)
	assert.Equal(t, "session-1", moved.SessionID)

	byProgramme, err := svc.ListMaterials(ctx, "prog-1", "")
	require.NoError(t, err)
	assert.Len(t, byProgramme, 3)

	require.NoError(t, svc.DeleteMaterial(ctx, material.ID))
	assertErrorCode(t, svc.DeleteMaterial(ctx, material.ID), appErrors.ErrNotFound)
}

func TestTrainingServiceEnroll(t *testing.T) {
	svc := newFixture(t).training()
	ctx := context.Background()

	enrollment, err := svc.Enroll(ctx, CreateEnrollmentRequest{TraineeID: "trainee-4", ProgrammeID: "prog-3"})
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentActive, enrollment.Status)

	programme, err := svc.GetProgramme(ctx, "prog-3")
	require.NoError(t, err)
	assert.Equal(t, 16, programme.EnrolledCount)

	_, err = svc.Enroll(ctx, CreateEnrollmentRequest{TraineeID: "mentor-1", ProgrammeID: "prog-3"})
	assertErrorCode(t, err, appErrors.ErrValidation)

	_, err = svc.Enroll(ctx, CreateEnrollmentRequest{TraineeID: "trainee-4", ProgrammeID: "prog-404"})
	assertErrorCode(t, err, appErrors.ErrNotFound)

	dropped, err := svc.UpdateEnrollment(ctx, enrollment.ID, UpdateEnrollmentRequest{Status: ptr(models.EnrollmentDropped)})
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentDropped, dropped.Status)

	programme, err = svc.GetProgramme(ctx, "prog-3")
	require.NoError(t, err)
	assert.Equal(t, 16, programme.EnrolledCount, "status changes leave the count alone")

	_, err = svc.UpdateEnrollment(ctx, "enroll-404", UpdateEnrollmentRequest{Status: ptr(models.EnrollmentCompleted)})
	assertErrorCode(t, err, appErrors.ErrNotFound)
}
