package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindbuilders/dtmms/internal/models"
	appErrors "github.com/mindbuilders/dtmms/pkg/errors"
)

func TestAttendanceServiceMarkSessionUpsertsPerTrainee(t *testing.T) {
	svc := newFixture(t).attendance()
	ctx := context.Background()

	first, err := svc.MarkSession(ctx, "session-3", "trainer-1", MarkSessionRequest{Entries: []AttendanceEntry{
		{TraineeID: "trainee-1", Status: models.AttendancePresent},
		{TraineeID: "trainee-2", Status: models.AttendanceLate, Notes: "bus delay"},
	}})
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := svc.MarkSession(ctx, "session-3", "admin-1", MarkSessionRequest{Entries: []AttendanceEntry{
		{TraineeID: "trainee-2", Status: models.AttendanceExcused},
		{TraineeID: "trainee-1", Status: models.AttendancePresent},
	}})
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, first[1].ID, second[0].ID)
	assert.Equal(t, models.AttendanceExcused, second[0].Status)
	assert.Empty(t, second[0].Notes)
	assert.Equal(t, "trainer-1", second[0].MarkedBy, "re-marking keeps the original marker")

	records, err := svc.ListBySession(ctx, "session-3")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestAttendanceServiceMarkSessionUpdatesSeededRecord(t *testing.T) {
	svc := newFixture(t).attendance()
	ctx := context.Background()

	saved, err := svc.MarkSession(ctx, "session-1", "trainer-1", MarkSessionRequest{Entries: []AttendanceEntry{
		{TraineeID: "trainee-1", Status: models.AttendanceAbsent, Notes: "ill"},
		{TraineeID: "trainee-4", Status: models.AttendancePresent},
	}})
	require.NoError(t, err)
	assert.Equal(t, "att-1", saved[0].ID)
	assert.Equal(t, "ill", saved[0].Notes)
	assert.NotEqual(t, "att-1", saved[1].ID)

	records, err := svc.ListBySession(ctx, "session-1")
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestAttendanceServiceMarkSessionRejects(t *testing.T) {
	svc := newFixture(t).attendance()
	ctx := context.Background()

	_, err := svc.MarkSession(ctx, "session-404", "trainer-1", MarkSessionRequest{Entries: []AttendanceEntry{
		{TraineeID: "trainee-1", Status: models.AttendancePresent},
	}})
	assertErrorCode(t, err, appErrors.ErrNotFound)

	_, err = svc.MarkSession(ctx, "session-1", "trainer-1", MarkSessionRequest{})
	assertErrorCode(t, err, appErrors.ErrValidation)

	_, err = svc.MarkSession(ctx, "session-1", "trainer-1", MarkSessionRequest{Entries: []AttendanceEntry{
		{TraineeID: "trainee-1", Status: "sleeping"},
	}})
	assertErrorCode(t, err, appErrors.ErrValidation)
}

func TestAttendanceServiceCreateAndUpdate(t *testing.T) {
	svc := newFixture(t).attendance()
	ctx := context.Background()

	record, err := svc.Create(ctx, "trainer-2", CreateAttendanceRequest{
		SessionID: "session-5", TraineeID: "trainee-4", Status: models.AttendanceLate,
	})
	require.NoError(t, err)
	assert.Equal(t, "trainer-2", record.MarkedBy)

	updated, err := svc.Update(ctx, record.ID, UpdateAttendanceRequest{Status: ptr(models.AttendancePresent)})
	require.NoError(t, err)
	assert.Equal(t, models.AttendancePresent, updated.Status)
	assert.Equal(t, "trainer-2", updated.MarkedBy)

	_, err = svc.Update(ctx, "att-404", UpdateAttendanceRequest{Notes: ptr("x")})
	assertErrorCode(t, err, appErrors.ErrNotFound)

	byTrainee, err := svc.ListByTrainee(ctx, "trainee-4")
	require.NoError(t, err)
	assert.Len(t, byTrainee, 2)
}
