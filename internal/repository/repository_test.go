package repository

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mindbuilders/dtmms/internal/models"
	"github.com/mindbuilders/dtmms/internal/seed"
	"github.com/mindbuilders/dtmms/internal/store"
	"github.com/mindbuilders/dtmms/pkg/kv"
	"github.com/mindbuilders/dtmms/pkg/password"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newSeededRepos(t *testing.T) (*Repositories, *store.Store) {
	t.Helper()
	hasher := password.NewHasher(bcrypt.MinCost)
	st := store.New(kv.NewMemory(),
		store.WithSeed(func() (*seed.Dataset, error) { return seed.Load(hasher) }),
		store.WithClock(func() time.Time { return fixedNow }),
	)
	_, err := st.InitializeIfAbsent(context.Background())
	require.NoError(t, err)
	return New(st), st
}

func ptr[T any](v T) *T { return &v }

func TestFindByIDAbsentIsNil(t *testing.T) {
	repos, _ := newSeededRepos(t)
	ctx := context.Background()

	user, err := repos.Users.FindByID(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, user)

	programme, err := repos.Programmes.FindByID(ctx, "prog-1")
	require.NoError(t, err)
	require.NotNil(t, programme)
	assert.Equal(t, "Digital Skills Bootcamp", programme.Title)
}

func TestUserFindByEmailIsCaseInsensitive(t *testing.T) {
	repos, _ := newSeededRepos(t)

	user, err := repos.Users.FindByEmail(context.Background(), "TRAINER@MindBuilders.org")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "trainer-1", user.ID)

	trainees, err := repos.Users.ListByRole(context.Background(), models.RoleTrainee)
	require.NoError(t, err)
	assert.Len(t, trainees, 5)
}

func TestUserCreateUsesRolePrefixAndClock(t *testing.T) {
	repos, _ := newSeededRepos(t)
	ctx := context.Background()

	created, err := repos.Users.Create(ctx, models.NewUser{
		Email:     "new@mindbuilders.org",
		Role:      models.RoleMentor,
		FirstName: "Ada",
		LastName:  "Eze",
		IsActive:  true,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.ID, "mentor-"))
	assert.Equal(t, fixedNow, created.CreatedAt)

	found, err := repos.Users.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)

	all, err := repos.Users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 11)
	assert.Equal(t, created.ID, all[10].ID, "appended in stored order")
}

func TestEnrollmentCreateIncrementsProgrammeCount(t *testing.T) {
	repos, _ := newSeededRepos(t)
	ctx := context.Background()

	before, err := repos.Programmes.FindByID(ctx, "prog-3")
	require.NoError(t, err)

	enrollment, err := repos.Enrollments.Create(ctx, models.NewEnrollment{
		TraineeID:   "trainee-5",
		ProgrammeID: "prog-3",
		Status:      models.EnrollmentActive,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(enrollment.ID, "enroll-"))
	assert.Equal(t, fixedNow, enrollment.EnrolledAt)

	after, err := repos.Programmes.FindByID(ctx, "prog-3")
	require.NoError(t, err)
	assert.Equal(t, before.EnrolledCount+1, after.EnrolledCount)
}

func TestEnrollmentCreateForUnknownProgramme(t *testing.T) {
	repos, _ := newSeededRepos(t)
	ctx := context.Background()

	before, err := repos.Programmes.List(ctx)
	require.NoError(t, err)

	_, err = repos.Enrollments.Create(ctx, models.NewEnrollment{TraineeID: "trainee-1", ProgrammeID: "prog-missing", Status: models.EnrollmentActive})
	require.NoError(t, err)

	enrollments, err := repos.Enrollments.List(ctx)
	require.NoError(t, err)
	assert.Len(t, enrollments, 9)

	after, err := repos.Programmes.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestEnrollmentCreateConcurrentKeepsEveryIncrement(t *testing.T) {
	repos, _ := newSeededRepos(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repos.Enrollments.Create(ctx, models.NewEnrollment{TraineeID: "trainee-1", ProgrammeID: "prog-5", Status: models.EnrollmentActive})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	programme, err := repos.Programmes.FindByID(ctx, "prog-5")
	require.NoError(t, err)
	assert.Equal(t, 18, programme.EnrolledCount)

	enrollments, err := repos.Enrollments.ListByProgramme(ctx, "prog-5")
	require.NoError(t, err)
	assert.Len(t, enrollments, 10)
}

func TestEnrollmentStatusChangeLeavesCountAlone(t *testing.T) {
	repos, _ := newSeededRepos(t)
	ctx := context.Background()

	updated, err := repos.Enrollments.Update(ctx, "enroll-1", models.EnrollmentPatch{Status: ptr(models.EnrollmentDropped)})
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentDropped, updated.Status)

	programme, err := repos.Programmes.FindByID(ctx, "prog-1")
	require.NoError(t, err)
	assert.Equal(t, 24, programme.EnrolledCount)
}

func TestUpdateEmptyPatchReturnsRecordUnchanged(t *testing.T) {
	repos, _ := newSeededRepos(t)
	ctx := context.Background()

	original, err := repos.Sessions.FindByID(ctx, "session-2")
	require.NoError(t, err)

	updated, err := repos.Sessions.Update(ctx, "session-2", models.SessionPatch{})
	require.NoError(t, err)
	assert.Equal(t, original, updated)
}

func TestUpdateAbsentIDDoesNotWrite(t *testing.T) {
	repos, _ := newSeededRepos(t)
	ctx := context.Background()

	updated, err := repos.Programmes.Update(ctx, "prog-missing", models.ProgrammePatch{Title: ptr("x")})
	require.NoError(t, err)
	assert.Nil(t, updated)

	all, err := repos.Programmes.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestUpdateIsShallowMerge(t *testing.T) {
	repos, _ := newSeededRepos(t)
	ctx := context.Background()

	scores := models.Scores{Participation: 1, Understanding: 1, Application: 1, Teamwork: 1, Punctuality: 1}
	updated, err := repos.Evaluations.Update(ctx, "eval-1", models.EvaluationPatch{Scores: &scores})
	require.NoError(t, err)
	assert.Equal(t, scores, updated.Scores)
	assert.InDelta(t, 4.6, updated.OverallScore, 0.0001, "overall score is not recomputed")
	assert.Equal(t, "trainee-1", updated.TraineeID)
}

func TestDeleteIsIdempotentAndDoesNotCascade(t *testing.T) {
	repos, _ := newSeededRepos(t)
	ctx := context.Background()

	removed, err := repos.Programmes.Delete(ctx, "prog-1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repos.Programmes.Delete(ctx, "prog-1")
	require.NoError(t, err)
	assert.False(t, removed)

	sessions, err := repos.Sessions.ListByProgramme(ctx, "prog-1")
	require.NoError(t, err)
	assert.Len(t, sessions, 3)

	materials, err := repos.Materials.ListByProgramme(ctx, "prog-1")
	require.NoError(t, err)
	assert.Len(t, materials, 2)
}

func TestMaterialReassignToSession(t *testing.T) {
	repos, _ := newSeededRepos(t)
	ctx := context.Background()

	updated, err := repos.Materials.Update(ctx, "mat-3", models.MaterialPatch{SessionID: ptr("session-4")})
	require.NoError(t, err)
	assert.Equal(t, "session-4", updated.SessionID)

	bySession, err := repos.Materials.ListBySession(ctx, "session-4")
	require.NoError(t, err)
	require.Len(t, bySession, 1)
	assert.Equal(t, "mat-3", bySession[0].ID)
}

func TestAttendanceDuplicatesAllowed(t *testing.T) {
	repos, _ := newSeededRepos(t)
	ctx := context.Background()

	_, err := repos.Attendance.Create(ctx, models.NewAttendanceRecord{SessionID: "session-1", TraineeID: "trainee-1", Status: models.AttendanceAbsent, MarkedBy: "trainer-1"})
	require.NoError(t, err)

	records, err := repos.Attendance.ListBySession(ctx, "session-1")
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestMessageMarkAsRead(t *testing.T) {
	repos, _ := newSeededRepos(t)
	ctx := context.Background()

	ok, err := repos.Messages.MarkAsRead(ctx, "msg-3")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repos.Messages.MarkAsRead(ctx, "msg-3")
	require.NoError(t, err)
	assert.True(t, ok, "marking twice still reports found")

	msg, err := repos.Messages.FindByID(ctx, "msg-3")
	require.NoError(t, err)
	assert.True(t, msg.IsRead)

	ok, err = repos.Messages.MarkAsRead(ctx, "msg-missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMessageCreateStartsUnread(t *testing.T) {
	repos, _ := newSeededRepos(t)
	ctx := context.Background()

	msg, err := repos.Messages.Create(ctx, models.NewMessage{SenderID: "trainee-2", ReceiverID: "mentor-1", Subject: "Hi", Content: "See you"})
	require.NoError(t, err)
	assert.False(t, msg.IsRead)
	assert.True(t, strings.HasPrefix(msg.ID, "msg-"))

	inbox, err := repos.Messages.Inbox(ctx, "mentor-1")
	require.NoError(t, err)
	assert.Len(t, inbox, 1)

	sent, err := repos.Messages.Sent(ctx, "mentor-1")
	require.NoError(t, err)
	assert.Len(t, sent, 1)

	all, err := repos.Messages.ListByUser(ctx, "mentor-1")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestNotificationLifecycle(t *testing.T) {
	repos, _ := newSeededRepos(t)
	ctx := context.Background()

	n, err := repos.Notifications.Create(ctx, models.NewNotification{UserID: "mentor-2", Title: "Welcome", Message: "Hello", Type: models.NotificationInfo})
	require.NoError(t, err)
	assert.False(t, n.IsRead)

	ok, err := repos.Notifications.MarkAsRead(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	mine, err := repos.Notifications.ListByUser(ctx, "mentor-2")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.True(t, mine[0].IsRead)
}

func TestMentorshipAndNoteAccessors(t *testing.T) {
	repos, _ := newSeededRepos(t)
	ctx := context.Background()

	byMentor, err := repos.Mentorships.ListByMentor(ctx, "mentor-1")
	require.NoError(t, err)
	assert.Len(t, byMentor, 3)

	byTrainee, err := repos.Mentorships.ListByTrainee(ctx, "trainee-3")
	require.NoError(t, err)
	require.Len(t, byTrainee, 1)
	assert.Equal(t, "mentor-2", byTrainee[0].MentorID)

	note, err := repos.MentorshipNotes.Create(ctx, models.NewMentorshipNote{AssignmentID: "mentor-assign-3", MentorID: "mentor-2", TraineeID: "trainee-3", Content: "Kick-off", Type: models.NoteMeeting})
	require.NoError(t, err)
	assert.Equal(t, fixedNow, note.CreatedAt)

	notes, err := repos.MentorshipNotes.ListByAssignment(ctx, "mentor-assign-1")
	require.NoError(t, err)
	assert.Len(t, notes, 2)

	mentorNotes, err := repos.MentorshipNotes.ListByMentor(ctx, "mentor-2")
	require.NoError(t, err)
	assert.Len(t, mentorNotes, 2)
}

func TestReturnedValuesAreDetached(t *testing.T) {
	repos, _ := newSeededRepos(t)
	ctx := context.Background()

	programmes, err := repos.Programmes.List(ctx)
	require.NoError(t, err)
	programmes[0].Title = "mutated"

	fresh, err := repos.Programmes.FindByID(ctx, programmes[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Digital Skills Bootcamp", fresh.Title)
}

func TestCorruptCollectionSurfacesError(t *testing.T) {
	medium := kv.NewMemory()
	ctx := context.Background()
	require.NoError(t, medium.Set(ctx, string(store.KeySessions), []byte(`{"broken"`)))
	repos := New(store.New(medium))

	_, err := repos.Sessions.List(ctx)
	var corrupt *store.CorruptDataError
	require.ErrorAs(t, err, &corrupt)
	assert.Equal(t, store.KeySessions, corrupt.Key)

	_, err = repos.Sessions.Create(ctx, models.NewSession{ProgrammeID: "prog-1"})
	require.ErrorAs(t, err, &corrupt, "writes do not clobber corrupt data")
}
