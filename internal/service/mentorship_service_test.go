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

func goodScores() models.Scores {
	return models.Scores{Participation: 4, Understanding: 4, Application: 5, Teamwork: 3, Punctuality: 4}
}

func TestMentorshipServiceAssign(t *testing.T) {
	svc := newFixture(t).mentorship()
	ctx := context.Background()

	assignment, err := svc.Assign(ctx, CreateMentorshipRequest{MentorID: "mentor-2", TraineeID: "trainee-5", ProgrammeID: "prog-2"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(assignment.ID, "mentor-assign-"))
	assert.Equal(t, models.MentorshipActive, assignment.Status)

	_, err = svc.Assign(ctx, CreateMentorshipRequest{MentorID: "trainer-1", TraineeID: "trainee-5", ProgrammeID: "prog-2"})
	assertErrorCode(t, err, appErrors.ErrValidation)

	_, err = svc.Assign(ctx, CreateMentorshipRequest{MentorID: "mentor-2", TraineeID: "mentor-1", ProgrammeID: "prog-2"})
	assertErrorCode(t, err, appErrors.ErrValidation)

	mine, err := svc.ListAssignments(ctx, "mentor-2", "")
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	paused, err := svc.UpdateAssignment(ctx, assignment.ID, UpdateMentorshipRequest{Status: ptr(models.MentorshipPaused)})
	require.NoError(t, err)
	assert.Equal(t, models.MentorshipPaused, paused.Status)
}

func TestMentorshipServiceNotes(t *testing.T) {
	svc := newFixture(t).mentorship()
	ctx := context.Background()

	_, err := svc.AddNote(ctx, "mentor-2", "mentor-assign-1", CreateNoteRequest{Content: "hello", Type: models.NoteProgress})
	assertErrorCode(t, err, appErrors.ErrForbidden)

	note, err := svc.AddNote(ctx, "mentor-1", "mentor-assign-1", CreateNoteRequest{Content: "Portfolio reviewed", Type: models.NoteFeedback})
	require.NoError(t, err)
	assert.Equal(t, "trainee-1", note.TraineeID)
	assert.Equal(t, "mentor-1", note.MentorID)

	notes, err := svc.ListNotes(ctx, "mentor-assign-1")
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, note.ID, notes[2].ID)

	_, err = svc.AddNote(ctx, "mentor-1", "mentor-assign-1", CreateNoteRequest{Content: "x", Type: "gossip"})
	assertErrorCode(t, err, appErrors.ErrValidation)

	_, err = svc.ListNotes(ctx, "mentor-assign-404")
	assertErrorCode(t, err, appErrors.ErrNotFound)
}

func TestMentorshipServiceEvaluate(t *testing.T) {
	svc := newFixture(t).mentorship()
	ctx := context.Background()
	trainer := models.User{ID: "trainer-1", Role: models.RoleTrainer}
	mentor := models.User{ID: "mentor-1", Role: models.RoleMentor}

	evaluation, err := svc.Evaluate(ctx, trainer, CreateEvaluationRequest{
		TraineeID: "trainee-3", ProgrammeID: "prog-1", Scores: goodScores(),
	})
	require.NoError(t, err)
	assert.Equal(t, models.EvaluatorTrainer, evaluation.EvaluatorRole)
	assert.InDelta(t, 4.0, evaluation.OverallScore, 1e-9)

	explicit, err := svc.Evaluate(ctx, mentor, CreateEvaluationRequest{
		TraineeID: "trainee-3", ProgrammeID: "prog-1", Scores: goodScores(), OverallScore: ptr(3.5),
	})
	require.NoError(t, err)
	assert.Equal(t, models.EvaluatorMentor, explicit.EvaluatorRole)
	assert.InDelta(t, 3.5, explicit.OverallScore, 1e-9)

	list, err := svc.ListEvaluationsByTrainee(ctx, "trainee-3")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestMentorshipServiceEvaluateRejects(t *testing.T) {
	svc := newFixture(t).mentorship()
	ctx := context.Background()
	trainer := models.User{ID: "trainer-1", Role: models.RoleTrainer}

	for _, role := range []models.Role{models.RoleAdmin, models.RoleTrainee} {
		_, err := svc.Evaluate(ctx, models.User{ID: "x", Role: role}, CreateEvaluationRequest{
			TraineeID: "trainee-3", ProgrammeID: "prog-1", Scores: goodScores(),
		})
		assertErrorCode(t, err, appErrors.ErrForbidden)
	}

	outOfRange := goodScores()
	outOfRange.Teamwork = 6
	_, err := svc.Evaluate(ctx, trainer, CreateEvaluationRequest{TraineeID: "trainee-3", ProgrammeID: "prog-1", Scores: outOfRange})
	assertErrorCode(t, err, appErrors.ErrValidation)

	_, err = svc.Evaluate(ctx, trainer, CreateEvaluationRequest{TraineeID: "trainee-3", ProgrammeID: "prog-404", Scores: goodScores()})
	assertErrorCode(t, err, appErrors.ErrValidation)

	_, err = svc.Evaluate(ctx, trainer, CreateEvaluationRequest{TraineeID: "trainer-2", ProgrammeID: "prog-1", Scores: goodScores()})
	assertErrorCode(t, err, appErrors.ErrValidation)
}

func TestMentorshipServiceUpdateEvaluation(t *testing.T) {
	svc := newFixture(t).mentorship()
	ctx := context.Background()

	updated, err := svc.UpdateEvaluation(ctx, "eval-2", UpdateEvaluationRequest{Comments: ptr("Improving steadily")})
	require.NoError(t, err)
	assert.Equal(t, "Improving steadily", updated.Comments)
	assert.InDelta(t, 3.6, updated.OverallScore, 1e-9)

	_, err = svc.UpdateEvaluation(ctx, "eval-404", UpdateEvaluationRequest{Comments: ptr("x")})
	assertErrorCode(t, err, appErrors.ErrNotFound)
}
